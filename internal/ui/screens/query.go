// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/portal"
	"github.com/jeranaias/neuroportal-tui/internal/ui/components"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
	"github.com/jeranaias/neuroportal-tui/internal/util"
)

// =============================================================================
// QUERY SCREEN
// =============================================================================

// Query is the question-and-answer screen. Answers render as markdown in
// a scrollable viewport; the input line sits below it.
type Query struct {
	ctrl   *portal.Controller
	client *backend.Client
	theme  *styles.Theme
	keys   KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner
	renderer *glamour.TermRenderer

	// View-only data from the last answer. The controller tracks the
	// answer text and source count; the snippets are display detail.
	lastQuestion string
	sources      []string

	width  int
	height int
}

// NewQuery creates the query screen.
func NewQuery(ctrl *portal.Controller, client *backend.Client, theme *styles.Theme) Query {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents"
	input.CharLimit = 2000
	input.Width = 70
	input.Focus()

	vp := viewport.New(80, 16)

	return Query{
		ctrl:     ctrl,
		client:   client,
		theme:    theme,
		keys:     DefaultKeyMap(),
		viewport: vp,
		input:    input,
		spinner:  components.NewAnswerSpinner(),
	}
}

// SetSize updates the screen dimensions and rebuilds the markdown renderer
// for the new wrap width.
func (q Query) SetSize(width, height int) Query {
	q.width = width
	q.height = height

	vpHeight := height - 7
	if vpHeight < 4 {
		vpHeight = 4
	}
	q.viewport.Width = width - 4
	q.viewport.Height = vpHeight
	q.input.Width = width - 8

	wrap := q.theme.ContentWidth()
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	); err == nil {
		q.renderer = r
	}
	q.refreshViewport()
	return q
}

// Update handles key events and query outcomes.
func (q Query) Update(msg tea.Msg) (Query, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return q.handleKey(msg)

	case QueryResultMsg:
		if q.ctrl.FinishQuery(msg.Epoch, msg.Response, msg.Err) {
			q.spinner.Stop()
			if msg.Err == nil && msg.Response != nil {
				q.sources = append([]string(nil), msg.Response.RetrievedSources...)
			} else {
				q.sources = nil
			}
			q.refreshViewport()
		}
		return q, nil

	default:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		q.spinner, cmd = q.spinner.Update(msg)
		cmds = append(cmds, cmd)
		q.viewport, cmd = q.viewport.Update(msg)
		cmds = append(cmds, cmd)
		return q, tea.Batch(cmds...)
	}
}

func (q Query) handleKey(msg tea.KeyMsg) (Query, tea.Cmd) {
	switch {
	case key.Matches(msg, q.keys.Logout):
		q.ctrl.Logout()
		q.sources = nil
		q.lastQuestion = ""
		q.input.SetValue("")
		return q, screenChangedCmd()

	case key.Matches(msg, q.keys.Switch):
		if err := q.ctrl.SwitchToIngest(); err != nil {
			return q, nil
		}
		return q, screenChangedCmd()

	case key.Matches(msg, q.keys.Submit):
		return q.submit()
	}

	// Viewport scrolling keys only apply when they cannot be text input.
	switch msg.String() {
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		q.viewport, cmd = q.viewport.Update(msg)
		return q, cmd
	}

	var cmd tea.Cmd
	q.input, cmd = q.input.Update(msg)
	q.ctrl.SetQuestion(q.input.Value())
	return q, cmd
}

func (q Query) submit() (Query, tea.Cmd) {
	q.ctrl.SetQuestion(q.input.Value())
	epoch, req, err := q.ctrl.BeginQuery()
	if err != nil {
		return q, nil
	}
	q.lastQuestion = req.Question
	q.input.SetValue("")
	q.ctrl.SetQuestion("")
	q.refreshViewport()
	return q, tea.Batch(
		q.spinner.Start(),
		QueryCmd(q.client, epoch, req),
	)
}

// refreshViewport re-renders the conversation pane.
func (q *Query) refreshViewport() {
	state := q.ctrl.State()

	var b strings.Builder
	if q.lastQuestion != "" {
		b.WriteString(q.theme.Question.Render("> " + q.lastQuestion))
		b.WriteString("\n\n")
	}
	if state.Answer != "" {
		b.WriteString(q.renderMarkdown(state.Answer))
		b.WriteString("\n")
		if state.AnswerSources > 0 {
			b.WriteString(q.theme.SourceTag.Render(
				fmt.Sprintf("%d context passages used", state.AnswerSources)))
			b.WriteString("\n")
		}
		for i, src := range q.sources {
			snippet := util.TruncateWidth(util.CollapseSpace(src), q.theme.ContentWidth()-6)
			b.WriteString(q.theme.Source.Render(fmt.Sprintf("  [%d] %s", i+1, snippet)))
			b.WriteString("\n")
		}
	}

	q.viewport.SetContent(b.String())
	q.viewport.GotoBottom()
}

func (q Query) renderMarkdown(text string) string {
	if q.renderer == nil {
		return q.theme.Answer.Render(text)
	}
	out, err := q.renderer.Render(text)
	if err != nil {
		return q.theme.Answer.Render(text)
	}
	return strings.TrimRight(out, "\n")
}

// View renders the query screen.
func (q Query) View() string {
	state := q.ctrl.State()

	var banner string
	switch {
	case state.QueryInFlight:
		banner = q.spinner.View()
	case state.Error != "":
		banner = styles.RenderError(state.Error)
	case state.Success != "":
		banner = styles.RenderSuccess(state.Success)
	}

	hints := []string{"Enter to ask", "C-l log out"}
	if state.Identity.Role == portal.RoleAdmin {
		hints = append(hints, "C-t upload documents")
	}
	footer := q.theme.Footer.Render(strings.Join(hints, "  |  "))

	sections := []string{q.viewport.View()}
	if banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections,
		q.theme.InputFocused.Render(q.input.View()),
		footer,
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
