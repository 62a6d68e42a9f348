// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/portal"
	"github.com/jeranaias/neuroportal-tui/internal/ui/components"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// INGESTION CONSOLE
// =============================================================================

// Focus zones on the console, cycled with Tab.
const (
	ingestFocusMode = iota
	ingestFocusTarget // new-name input or namespace list, depending on mode
	ingestFocusURL
	ingestFocusFile
	ingestFocusSubmit
	ingestFocusCount
)

// Ingest is the admin document-ingestion console.
type Ingest struct {
	ctrl   *portal.Controller
	client *backend.Client
	theme  *styles.Theme
	keys   KeyMap

	newName  textinput.Model
	urlInput textinput.Model
	fileIn   textinput.Model
	focus    int
	listIdx  int
	spinner  components.Spinner

	width  int
	height int
}

// NewIngest creates the ingestion console.
func NewIngest(ctrl *portal.Controller, client *backend.Client, theme *styles.Theme) Ingest {
	newName := textinput.New()
	newName.Placeholder = "namespace name"
	newName.CharLimit = 128
	newName.Width = 40

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com/article"
	urlInput.CharLimit = 2000
	urlInput.Width = 56

	fileIn := textinput.New()
	fileIn.Placeholder = "/path/to/document.pdf"
	fileIn.CharLimit = 1000
	fileIn.Width = 56

	return Ingest{
		ctrl:     ctrl,
		client:   client,
		theme:    theme,
		keys:     DefaultKeyMap(),
		newName:  newName,
		urlInput: urlInput,
		fileIn:   fileIn,
		spinner:  components.NewUploadSpinner(),
	}
}

// SetSize updates the screen dimensions.
func (in Ingest) SetSize(width, height int) Ingest {
	in.width = width
	in.height = height
	return in
}

// Sync pulls the controller's form values into the inputs. Called after a
// transition onto the console, when the controller may have reset the form
// or generated a fresh namespace name.
func (in Ingest) Sync() Ingest {
	state := in.ctrl.State()
	in.newName.SetValue(state.NewName)
	in.urlInput.SetValue(state.URL)
	in.fileIn.SetValue(state.FilePath)
	in.listIdx = 0
	in.focus = ingestFocusMode
	return in
}

// Update handles key events and backend outcomes.
func (in Ingest) Update(msg tea.Msg) (Ingest, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return in.handleKey(msg)

	case NamespacesMsg:
		in.ctrl.FinishNamespaceFetch(msg.Epoch, msg.Namespaces, msg.Err)
		in.listIdx = 0
		return in, nil

	case ProcessResultMsg:
		if in.ctrl.FinishIngestion(msg.Epoch, msg.Response, msg.Err) {
			in.spinner.Stop()
			state := in.ctrl.State()
			if state.Error == "" {
				in.urlInput.SetValue("")
				in.fileIn.SetValue("")
				return in, NextStepsCmd(msg.Epoch)
			}
		}
		return in, nil

	case NextStepsMsg:
		in.ctrl.RevealNextSteps(msg.Epoch)
		return in, nil

	default:
		var cmd tea.Cmd
		in.spinner, cmd = in.spinner.Update(msg)
		return in, cmd
	}
}

func (in Ingest) handleKey(msg tea.KeyMsg) (Ingest, tea.Cmd) {
	state := in.ctrl.State()

	switch {
	case key.Matches(msg, in.keys.Logout):
		in.ctrl.Logout()
		return in, screenChangedCmd()

	case key.Matches(msg, in.keys.Switch):
		if err := in.ctrl.SwitchToQuery(); err != nil {
			return in, nil
		}
		return in, screenChangedCmd()
	}

	// After a successful ingestion the console offers follow-up actions.
	if state.ShowNextSteps {
		switch msg.String() {
		case "c":
			if err := in.ctrl.ChatWithDocument(); err == nil {
				return in, screenChangedCmd()
			}
			return in, nil
		case "u":
			if err := in.ctrl.UploadAnother(); err == nil {
				return in.Sync(), nil
			}
			return in, nil
		}
	}

	switch {
	case key.Matches(msg, in.keys.Next):
		return in.setFocus((in.focus + 1) % ingestFocusCount), nil

	case key.Matches(msg, in.keys.Prev):
		return in.setFocus((in.focus + ingestFocusCount - 1) % ingestFocusCount), nil

	case key.Matches(msg, in.keys.Submit):
		if in.focus == ingestFocusSubmit {
			return in.submit()
		}
		if in.focus == ingestFocusFile {
			return in.commitFile(), nil
		}
		return in.setFocus((in.focus + 1) % ingestFocusCount), nil
	}

	return in.handleFieldKey(msg)
}

func (in Ingest) handleFieldKey(msg tea.KeyMsg) (Ingest, tea.Cmd) {
	state := in.ctrl.State()
	var cmd tea.Cmd

	switch in.focus {
	case ingestFocusMode:
		switch {
		case key.Matches(msg, in.keys.Left):
			return in.chooseMode(portal.NamespaceNew)
		case key.Matches(msg, in.keys.Right):
			return in.chooseMode(portal.NamespaceExisting)
		case msg.String() == " ":
			if state.Mode == portal.NamespaceExisting {
				return in.chooseMode(portal.NamespaceNew)
			}
			return in.chooseMode(portal.NamespaceExisting)
		}

	case ingestFocusTarget:
		if state.Mode == portal.NamespaceExisting {
			switch {
			case key.Matches(msg, in.keys.Up):
				if in.listIdx > 0 {
					in.listIdx--
					in.selectCurrent()
				}
			case key.Matches(msg, in.keys.Down):
				if in.listIdx < len(state.Namespaces)-1 {
					in.listIdx++
					in.selectCurrent()
				}
			}
			return in, nil
		}
		in.newName, cmd = in.newName.Update(msg)
		in.ctrl.SetNewName(in.newName.Value())
		return in, cmd

	case ingestFocusURL:
		in.urlInput, cmd = in.urlInput.Update(msg)
		in.ctrl.SetURL(in.urlInput.Value())
		return in, cmd

	case ingestFocusFile:
		in.fileIn, cmd = in.fileIn.Update(msg)
		return in, cmd
	}
	return in, cmd
}

func (in Ingest) chooseMode(mode portal.NamespaceMode) (Ingest, tea.Cmd) {
	needFetch, epoch := in.ctrl.SetNamespaceMode(mode)
	in.newName.SetValue(in.ctrl.State().NewName)
	in.listIdx = 0
	if needFetch {
		return in, NamespacesCmd(in.client, epoch)
	}
	return in, nil
}

func (in *Ingest) selectCurrent() {
	state := in.ctrl.State()
	if in.listIdx >= 0 && in.listIdx < len(state.Namespaces) {
		// Selection of a fetched entry cannot fail membership.
		_ = in.ctrl.SelectNamespace(state.Namespaces[in.listIdx])
	}
}

// commitFile hands the typed path to the controller, which rejects
// anything that is not a PDF. On rejection the previous value stays.
func (in Ingest) commitFile() Ingest {
	path := strings.TrimSpace(in.fileIn.Value())
	if path == "" {
		in.ctrl.DetachFile()
		return in
	}
	if err := in.ctrl.AttachFile(path); err != nil {
		if errors.Is(err, portal.ErrNonPDF) {
			in.fileIn.SetValue(in.ctrl.State().FilePath)
		}
	}
	return in
}

func (in Ingest) submit() (Ingest, tea.Cmd) {
	in = in.commitFile()
	in.ctrl.SetURL(in.urlInput.Value())

	epoch, input, err := in.ctrl.BeginIngestion()
	if err != nil {
		return in, nil
	}
	return in, tea.Batch(
		in.spinner.Start(),
		ProcessCmd(in.client, epoch, input),
	)
}

func (in Ingest) setFocus(focus int) Ingest {
	in.focus = focus
	in.newName.Blur()
	in.urlInput.Blur()
	in.fileIn.Blur()

	state := in.ctrl.State()
	switch focus {
	case ingestFocusTarget:
		if state.Mode != portal.NamespaceExisting {
			in.newName.Focus()
		}
	case ingestFocusURL:
		in.urlInput.Focus()
	case ingestFocusFile:
		in.fileIn.Focus()
	}
	return in
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the ingestion console.
func (in Ingest) View() string {
	state := in.ctrl.State()

	sections := []string{
		in.theme.Title.Render("Admin Console"),
		"",
		in.renderModeRow(state),
		in.renderTarget(state),
		"",
		in.renderLabeled("Web URL", in.urlInput.View(), ingestFocusURL),
		in.renderLabeled("PDF document", in.fileIn.View(), ingestFocusFile),
		"",
		in.renderSubmit(state),
	}

	if state.IngestInFlight {
		sections = append(sections, "", in.spinner.View())
	}
	if state.Error != "" {
		sections = append(sections, "", styles.RenderError(state.Error))
	}
	if len(state.StatusLines) > 0 && !state.IngestInFlight {
		sections = append(sections, "", components.RenderStatusLines(state.StatusLines))
	}
	if state.ShowNextSteps {
		sections = append(sections, "", in.renderNextSteps())
	}

	sections = append(sections, "",
		in.theme.Footer.Render("Tab to move  |  Enter to submit  |  C-t chat  |  C-l log out"))

	return in.theme.Container.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (in Ingest) renderModeRow(state portal.State) string {
	newBtn := in.theme.Button
	existingBtn := in.theme.Button
	if state.Mode == portal.NamespaceNew {
		newBtn = in.theme.ButtonActive
	}
	if state.Mode == portal.NamespaceExisting {
		existingBtn = in.theme.ButtonActive
	}

	label := in.theme.Label.Render("Namespace")
	if in.focus == ingestFocusMode {
		label = in.theme.Label.Foreground(styles.FocusRing).Render("Namespace")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		label,
		lipgloss.JoinHorizontal(lipgloss.Center,
			newBtn.Render("Create new"), " ", existingBtn.Render("Use existing")),
	)
}

func (in Ingest) renderTarget(state portal.State) string {
	if state.Mode == portal.NamespaceExisting {
		return in.renderNamespaceList(state)
	}

	box := in.theme.Input
	if in.focus == ingestFocusTarget {
		box = in.theme.InputFocused
	}
	return box.Render(in.newName.View())
}

func (in Ingest) renderNamespaceList(state portal.State) string {
	if state.NamespacesLoading {
		return in.theme.Muted.Render("  loading namespaces...")
	}
	if len(state.Namespaces) == 0 {
		return in.theme.Muted.Render("  no namespaces yet")
	}

	lines := make([]string, 0, len(state.Namespaces))
	for i, ns := range state.Namespaces {
		line := "  " + ns
		if ns == state.SelectedNamespace {
			line = styles.StatusIndicators.Active + " " + ns
		}
		if in.focus == ingestFocusTarget && i == in.listIdx {
			line = in.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (in Ingest) renderLabeled(label, field string, focus int) string {
	box := in.theme.Input
	if in.focus == focus {
		box = in.theme.InputFocused
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		in.theme.Label.Render(label),
		box.Render(field),
	)
}

func (in Ingest) renderSubmit(state portal.State) string {
	style := in.theme.Button
	if in.ctrl.CanSubmitIngestion() && in.focus == ingestFocusSubmit {
		style = in.theme.ButtonActive
	}
	label := "Process documents"
	if !in.ctrl.CanSubmitIngestion() && !state.IngestInFlight {
		label = "Process documents (add a URL or PDF first)"
	}
	return style.Render(label)
}

func (in Ingest) renderNextSteps() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.RenderSuccess("Content is ready."),
		in.theme.Hint.Render("[c] chat with this document   [u] upload another"),
	)
}
