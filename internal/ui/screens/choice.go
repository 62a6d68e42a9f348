// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/portal"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// PORTAL CHOICE SCREEN
// =============================================================================

// Choice is the landing screen offering the user portal and the admin console.
type Choice struct {
	ctrl     *portal.Controller
	theme    *styles.Theme
	keys     KeyMap
	selected int // 0 = user portal, 1 = admin console
	width    int
	height   int
}

// NewChoice creates the portal chooser.
func NewChoice(ctrl *portal.Controller, theme *styles.Theme) Choice {
	return Choice{
		ctrl:  ctrl,
		theme: theme,
		keys:  DefaultKeyMap(),
	}
}

// SetSize updates the screen dimensions.
func (c Choice) SetSize(width, height int) Choice {
	c.width = width
	c.height = height
	return c
}

// Update handles key events.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Left), key.Matches(keyMsg, c.keys.Up):
		c.selected = 0
	case key.Matches(keyMsg, c.keys.Right), key.Matches(keyMsg, c.keys.Down):
		c.selected = 1
	case key.Matches(keyMsg, c.keys.Next):
		c.selected = (c.selected + 1) % 2
	case key.Matches(keyMsg, c.keys.Submit):
		if c.selected == 0 {
			c.ctrl.ChooseUserPortal()
		} else {
			c.ctrl.ChooseAdminPortal()
		}
		return c, screenChangedCmd()
	}
	return c, nil
}

// View renders the two portal cards.
func (c Choice) View() string {
	title := c.theme.Title.Render("neuroportal")
	subtitle := c.theme.Subtitle.Render("Ask questions about your documents, or upload new ones.")

	userCard := c.renderCard(0, "User Portal",
		"Chat with an existing\ndocument session.")
	adminCard := c.renderCard(1, "Admin Console",
		"Upload documents and\nmanage namespaces.")

	cards := lipgloss.JoinHorizontal(lipgloss.Top, userCard, "  ", adminCard)
	hint := c.theme.Hint.Render("arrows to choose, Enter to continue, C-c to quit")

	body := lipgloss.JoinVertical(lipgloss.Center, title, "", subtitle, "", cards, "", hint)
	if c.width > 0 && c.height > 0 {
		return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (c Choice) renderCard(index int, title, desc string) string {
	style := c.theme.Card
	if c.selected == index {
		style = c.theme.CardSelected
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		c.theme.CardTitle.Render(title),
		"",
		c.theme.CardDesc.Render(desc),
	)
	return style.Render(content)
}
