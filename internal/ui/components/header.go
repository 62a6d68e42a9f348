// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/portal"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar shown on every screen. It carries the brand,
// the signed-in identity, and the backend reachability indicator.
type Header struct {
	Title    string
	Identity portal.Identity
	Session  string // active session or namespace, empty when none
	Online   bool   // last known backend health
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "neuroportal",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetIdentity updates the displayed identity.
func (h *Header) SetIdentity(id portal.Identity) {
	h.Identity = id
}

// SetSession updates the displayed session or namespace.
func (h *Header) SetSession(session string) {
	h.Session = session
}

// SetOnline updates the backend reachability indicator.
func (h *Header) SetOnline(online bool) {
	h.Online = online
}

// View renders the header bar.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)
	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	left := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	var parts []string
	switch h.Identity.Role {
	case portal.RoleAdmin:
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.Amber).
			Bold(true).
			Render("ADMIN"))
	case portal.RoleUser:
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render("USER"))
	}
	if h.Session != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(h.Session))
	}
	if h.Online {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Render(styles.StatusIndicators.Active+" online"))
	} else {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.Rose).
			Render(styles.StatusIndicators.Error+" offline"))
	}
	right := strings.Join(parts, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(styles.SurfaceDim).
		Render(bar)
}
