// neuroportal TUI - a terminal front end for the document QA backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/cli"
	"github.com/jeranaias/neuroportal-tui/internal/config"
	"github.com/jeranaias/neuroportal-tui/internal/portal"
	"github.com/jeranaias/neuroportal-tui/internal/ui/components"
	"github.com/jeranaias/neuroportal-tui/internal/ui/screens"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async config reloads
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdNamespaces:
		cli.HandleNamespaces(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) {
	cfg := config.Global()

	baseURL := cfg.Backend.BaseURL
	if args.BackendURL != "" {
		baseURL = args.BackendURL
	}
	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:       baseURL,
		QueryPath:     cfg.Backend.QueryPath,
		Timeout:       cfg.Timeout(),
		UploadTimeout: cfg.UploadTimeout(),
	})

	theme := styles.NewTheme()
	theme.SetCompact(cfg.UI.CompactMode)
	m := newModel(theme, client, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Reload the UI when the config file changes on disk.
	watcher, werr := config.NewWatcher(func(c *config.Config) {
		programMu.Lock()
		ref := programRef
		programMu.Unlock()
		if ref != nil {
			ref.Send(configReloadedMsg{})
		}
	})
	if werr == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running neuroportal: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// healthInterval is how often the backend is probed while the TUI runs.
const healthInterval = 30 * time.Second

// configReloadedMsg is sent by the config watcher after a reload.
type configReloadedMsg struct{}

// healthTickMsg schedules the next periodic health probe.
type healthTickMsg struct{}

// Model is the root Bubble Tea model. It owns the portal controller and
// routes messages to whichever screen the controller says is active.
type Model struct {
	ctrl   *portal.Controller
	client *backend.Client
	theme  *styles.Theme
	config *config.Config

	// Screens
	choice screens.Choice
	login  screens.Login
	query  screens.Query
	ingest screens.Ingest

	// Chrome
	header *components.Header
	toasts *components.ToastManager

	width  int
	height int
	online bool
	probed bool // at least one health probe has resolved
}

func newModel(theme *styles.Theme, client *backend.Client, cfg *config.Config) *Model {
	ctrl := portal.NewController(cfg.Auth.PortalPassword, nil)
	return &Model{
		ctrl:   ctrl,
		client: client,
		theme:  theme,
		config: cfg,
		choice: screens.NewChoice(ctrl, theme),
		login:  screens.NewLogin(ctrl, client, theme),
		query:  screens.NewQuery(ctrl, client, theme),
		ingest: screens.NewIngest(ctrl, client, theme),
		header: components.NewHeader(theme),
		toasts: components.NewToastManager(),
	}
}

// Init probes backend health and starts the toast ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		screens.HealthCmd(m.client),
		components.ToastTickCmd(),
	)
}

// Update routes messages to the active screen.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		bodyHeight := msg.Height - 2
		m.choice = m.choice.SetSize(msg.Width, bodyHeight)
		m.login = m.login.SetSize(msg.Width, bodyHeight)
		m.query = m.query.SetSize(msg.Width, bodyHeight)
		m.ingest = m.ingest.SetSize(msg.Width, bodyHeight)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case screens.HealthMsg:
		wasOnline := m.online
		m.online = msg.Online
		switch {
		case !m.probed && msg.Online:
			m.toasts.AddStatus("Connected to backend")
		case !m.probed && !msg.Online:
			m.toasts.AddWarning("Cannot reach the backend; check that it is running")
		case wasOnline && !msg.Online:
			m.toasts.AddWarning("Backend became unreachable")
		}
		m.probed = true
		return m, tea.Tick(healthInterval, func(time.Time) tea.Msg {
			return healthTickMsg{}
		})

	case healthTickMsg:
		return m, screens.HealthCmd(m.client)

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case configReloadedMsg:
		m.config = config.Global()
		m.theme.SetCompact(m.config.UI.CompactMode)
		m.toasts.AddStatus("Configuration reloaded")
		return m, nil

	case screens.ScreenChangedMsg:
		return m.syncActiveScreen(), nil

	// Backend outcomes go to their owning screen even when the view moved
	// on; the controller epoch check discards the stale result there.
	case screens.ValidateResultMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	case screens.QueryResultMsg:
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	case screens.NamespacesMsg, screens.ProcessResultMsg, screens.NextStepsMsg:
		var cmd tea.Cmd
		m.ingest, cmd = m.ingest.Update(msg)
		return m, cmd
	}

	return m.updateActive(msg)
}

// updateActive forwards a message to the screen the controller points at.
func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.ctrl.State().View {
	case portal.ViewPortalChoice:
		m.choice, cmd = m.choice.Update(msg)
	case portal.ViewLoginForm:
		m.login, cmd = m.login.Update(msg)
	case portal.ViewQuery:
		m.query, cmd = m.query.Update(msg)
	case portal.ViewIngest:
		m.ingest, cmd = m.ingest.Update(msg)
	}
	return m, cmd
}

// syncActiveScreen resets the screen that just became active so its local
// widgets match the controller state.
func (m *Model) syncActiveScreen() *Model {
	switch m.ctrl.State().View {
	case portal.ViewLoginForm:
		m.login = m.login.Reset()
	case portal.ViewIngest:
		m.ingest = m.ingest.Sync()
	}
	return m
}

// View renders the header, the active screen, and any toasts.
func (m *Model) View() string {
	state := m.ctrl.State()

	m.header.SetIdentity(state.Identity)
	m.header.SetOnline(m.online)
	switch state.Identity.Role {
	case portal.RoleUser:
		m.header.SetSession(state.Identity.SessionID)
	case portal.RoleAdmin:
		m.header.SetSession(state.ActiveSessionID)
	default:
		m.header.SetSession("")
	}

	var body string
	switch state.View {
	case portal.ViewPortalChoice:
		body = m.choice.View()
	case portal.ViewLoginForm:
		body = m.login.View()
	case portal.ViewQuery:
		body = m.query.View()
	case portal.ViewIngest:
		body = m.ingest.View()
	}

	out := m.header.View() + "\n" + body

	if m.toasts.HasToasts() {
		out += "\n" + components.RenderToastStack(m.toasts.Toasts(), m.width, 0)
	}
	return out
}
