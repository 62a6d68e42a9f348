// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LayoutMode describes how the UI should arrange itself for the current
// terminal width.
type LayoutMode int

const (
	// LayoutCompact is for narrow terminals (under 80 columns).
	LayoutCompact LayoutMode = iota
	// LayoutNormal is the standard layout (80-119 columns).
	LayoutNormal
	// LayoutWide is for wide terminals (120+ columns).
	LayoutWide
)

// Theme holds every style used by the portal screens. A Theme is built once
// at startup via NewTheme and resized with SetSize as the terminal changes.
type Theme struct {
	// Terminal capabilities
	Profile  termenv.Profile
	DarkMode bool

	// Dimensions
	Width  int
	Height int

	// ForceCompact pins the compact layout regardless of width,
	// driven by the ui.compact_mode setting.
	ForceCompact bool

	// App chrome
	App       lipgloss.Style
	Container lipgloss.Style
	Header    lipgloss.Style
	HeaderBar lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style

	// Portal choice cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardDesc     lipgloss.Style

	// Forms
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Hint         lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// Chat / answers
	Question  lipgloss.Style
	Answer    lipgloss.Style
	Source    lipgloss.Style
	SourceTag lipgloss.Style

	// Status lines
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
	StatusInfo lipgloss.Style
	StatusWarn lipgloss.Style

	// Misc
	Spinner   lipgloss.Style
	ErrorText lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Divider   lipgloss.Style
}

// NewTheme detects terminal capabilities and builds the default theme.
func NewTheme() *Theme {
	t := &Theme{
		Profile:  termenv.ColorProfile(),
		DarkMode: termenv.HasDarkBackground(),
		Width:    80,
		Height:   24,
	}
	t.initStyles()
	return t
}

// SetSize updates the theme dimensions and recomputes width-dependent styles.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
	t.initStyles()
}

// SetCompact toggles forced compact layout and recomputes the styles.
func (t *Theme) SetCompact(compact bool) {
	t.ForceCompact = compact
	t.initStyles()
}

// GetLayoutMode returns the layout mode for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.ForceCompact || t.Width < 80:
		return LayoutCompact
	case t.Width < 120:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// ContentWidth returns the usable width inside the main container.
func (t *Theme) ContentWidth() int {
	w := t.Width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (t *Theme) initStyles() {
	content := t.ContentWidth()
	compact := t.GetLayoutMode() == LayoutCompact

	// App chrome
	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	containerPad := 2
	if compact {
		containerPad = 1
	}
	t.Container = lipgloss.NewStyle().
		Padding(0, containerPad).
		Width(t.Width)

	t.Header = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Padding(0, 1)

	t.HeaderBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Width(t.Width).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(t.Width).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Portal choice cards
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)
	if compact {
		t.Card = t.Card.Padding(0, 1)
	}

	t.CardSelected = t.Card.
		BorderForeground(FocusRing).
		Bold(true)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Forms
	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Input = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputFocused = t.Input.
		BorderForeground(FocusRing)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan)

	// Chat / answers
	t.Question = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Width(content)

	t.Answer = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Width(content)

	t.Source = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SourceTag = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Status lines
	t.StatusOK = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.StatusErr = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.StatusInfo = lipgloss.NewStyle().
		Foreground(InfoHighContrast)

	t.StatusWarn = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	// Misc
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)

	t.Success = lipgloss.NewStyle().
		Foreground(Emerald)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Selected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary)

	t.Divider = lipgloss.NewStyle().
		Foreground(OverlayDim)
}
