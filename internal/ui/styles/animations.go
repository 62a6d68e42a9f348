// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"
)

// =============================================================================
// SPINNER CONFIGURATIONS
// =============================================================================

// SpinnerConfig defines a spinner animation sequence.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the frame duration for the spinner's FPS.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second / 10
	}
	return time.Second / time.Duration(s.FPS)
}

// SpinnerDots - Braille dot spinner, smooth and compact.
var SpinnerDots = SpinnerConfig{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    12,
}

// SpinnerLine - Classic rotating line.
var SpinnerLine = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    8,
}

// SpinnerPulse - Pulsing block for upload progress.
var SpinnerPulse = SpinnerConfig{
	Frames: []string{"█", "▓", "▒", "░", "▒", "▓"},
	FPS:    6,
}

// SpinnerThinking - Trailing-dot spinner for long backend answers.
var SpinnerThinking = SpinnerConfig{
	Frames: []string{"   ", ".  ", ".. ", "..."},
	FPS:    3,
}

// =============================================================================
// PROGRESS BAR RENDERING
// =============================================================================

// Progress bar characters.
const (
	ProgressFull  = "█"
	ProgressEmpty = "░"
)

// RenderProgressBar renders a progress bar of the given width for a ratio
// in [0.0, 1.0]. Ratios outside the range are clamped.
func RenderProgressBar(width int, ratio float64) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(ProgressFull, filled) + strings.Repeat(ProgressEmpty, width-filled)
}
