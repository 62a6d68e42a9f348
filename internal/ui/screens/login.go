// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
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
// LOGIN SCREEN
// =============================================================================

const (
	loginFieldSession = iota
	loginFieldPassword
	loginFieldCount
)

// Login is the user-portal login form: session ID plus portal password.
type Login struct {
	ctrl   *portal.Controller
	client *backend.Client
	theme  *styles.Theme
	keys   KeyMap

	session  textinput.Model
	password textinput.Model
	focus    int
	spinner  components.Spinner

	width  int
	height int
}

// NewLogin creates the login form.
func NewLogin(ctrl *portal.Controller, client *backend.Client, theme *styles.Theme) Login {
	session := textinput.New()
	session.Placeholder = "session ID"
	session.CharLimit = 128
	session.Width = 36
	session.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128
	password.Width = 36

	return Login{
		ctrl:     ctrl,
		client:   client,
		theme:    theme,
		keys:     DefaultKeyMap(),
		session:  session,
		password: password,
		spinner:  components.NewValidateSpinner(),
	}
}

// SetSize updates the screen dimensions.
func (l Login) SetSize(width, height int) Login {
	l.width = width
	l.height = height
	return l
}

// Reset clears the form, keeping focus on the session field.
func (l Login) Reset() Login {
	l.session.SetValue("")
	l.password.SetValue("")
	l.focus = loginFieldSession
	l.session.Focus()
	l.password.Blur()
	l.spinner.Stop()
	return l
}

// Update handles key events and validation outcomes.
func (l Login) Update(msg tea.Msg) (Login, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return l.handleKey(msg)

	case ValidateResultMsg:
		if l.ctrl.FinishUserLogin(msg.Epoch, msg.Validation, msg.Err) {
			l.spinner.Stop()
			if l.ctrl.State().View != portal.ViewLoginForm {
				return l, screenChangedCmd()
			}
		}
		return l, nil

	default:
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd
	}
}

func (l Login) handleKey(msg tea.KeyMsg) (Login, tea.Cmd) {
	switch {
	case key.Matches(msg, l.keys.Back):
		l.ctrl.Logout()
		return l.Reset(), screenChangedCmd()

	case key.Matches(msg, l.keys.Next), key.Matches(msg, l.keys.Down):
		return l.setFocus((l.focus + 1) % loginFieldCount), nil

	case key.Matches(msg, l.keys.Prev), key.Matches(msg, l.keys.Up):
		return l.setFocus((l.focus + loginFieldCount - 1) % loginFieldCount), nil

	case key.Matches(msg, l.keys.Submit):
		return l.submit()
	}

	var cmd tea.Cmd
	switch l.focus {
	case loginFieldSession:
		l.session, cmd = l.session.Update(msg)
	case loginFieldPassword:
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l Login) setFocus(field int) Login {
	l.focus = field
	if field == loginFieldSession {
		l.session.Focus()
		l.password.Blur()
	} else {
		l.session.Blur()
		l.password.Focus()
	}
	return l
}

func (l Login) submit() (Login, tea.Cmd) {
	epoch, err := l.ctrl.BeginUserLogin(l.session.Value(), l.password.Value())
	if err != nil {
		// Local rejection; the controller already recorded the message.
		return l, nil
	}
	// Validate the ID the controller stored, not the raw form value,
	// so surrounding whitespace never reaches the wire.
	return l, tea.Batch(
		l.spinner.Start(),
		ValidateCmd(l.client, epoch, l.ctrl.State().LoginSessionID),
	)
}

// View renders the login form.
func (l Login) View() string {
	state := l.ctrl.State()

	title := l.theme.Title.Render("User Portal")

	sessionBox := l.theme.Input
	passwordBox := l.theme.Input
	if l.focus == loginFieldSession {
		sessionBox = l.theme.InputFocused
	} else {
		passwordBox = l.theme.InputFocused
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		l.theme.Label.Render("Session ID"),
		sessionBox.Render(l.session.View()),
		"",
		l.theme.Label.Render("Password"),
		passwordBox.Render(l.password.View()),
	)

	var status string
	switch {
	case state.LoginInFlight:
		status = l.spinner.View()
	case state.LoginError != "":
		status = styles.RenderError(state.LoginError)
	default:
		status = l.theme.Hint.Render("Enter to sign in, Esc to go back")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, "", form, "", status)
	if l.width > 0 && l.height > 0 {
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}
