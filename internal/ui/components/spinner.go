// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading spinner with a message and optional elapsed timer.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	showTimer bool
}

// NewSpinner creates a spinner with the given animation and message.
func NewSpinner(cfg styles.SpinnerConfig, message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: cfg.Frames,
		FPS:    cfg.Duration(),
	}
	return Spinner{
		spinner: s,
		message: message,
	}
}

// NewAnswerSpinner creates the spinner shown while a question is in flight.
func NewAnswerSpinner() Spinner {
	s := NewSpinner(styles.SpinnerDots, "Thinking")
	s.showTimer = true
	return s
}

// NewUploadSpinner creates the spinner shown while documents are processed.
// Uploads can take minutes, so the elapsed timer is always on.
func NewUploadSpinner() Spinner {
	s := NewSpinner(styles.SpinnerPulse, "Processing documents")
	s.showTimer = true
	return s
}

// NewValidateSpinner creates the spinner shown during session validation.
func NewValidateSpinner() Spinner {
	return NewSpinner(styles.SpinnerLine, "Validating session")
}

// SetMessage replaces the spinner message.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and returns the tick command.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive reports whether the spinner is running.
func (s Spinner) IsActive() bool {
	return s.active
}

// Elapsed returns the duration since Start.
func (s Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation while active.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, message, and timer.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}

	frame := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render(s.spinner.View())
	text := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.message + "...")

	out := frame + " " + text
	if s.showTimer && !s.startTime.IsZero() {
		out += lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(" (" + formatElapsed(time.Since(s.startTime)) + ")")
	}
	return out
}

// formatElapsed formats a duration as "12s" or "2m 05s".
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %02ds", secs/60, secs%60)
}
