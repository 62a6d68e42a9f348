// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// INGESTION STATUS LINES
// =============================================================================

// Backends prefix per-source outcome lines with these markers.
const (
	markerOK   = "✓"
	markerFail = "✗"
)

// RenderStatusLine renders one ingestion detail line, mapping the backend's
// unicode outcome markers onto the accessible ASCII indicators.
func RenderStatusLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, markerOK):
		msg := strings.TrimSpace(strings.TrimPrefix(trimmed, markerOK))
		return styles.RenderSuccess(msg)
	case strings.HasPrefix(trimmed, markerFail):
		msg := strings.TrimSpace(strings.TrimPrefix(trimmed, markerFail))
		return styles.RenderError(msg)
	default:
		return lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(styles.StatusIndicators.Info + " " + trimmed)
	}
}

// RenderStatusLines renders a block of ingestion detail lines.
func RenderStatusLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, RenderStatusLine(line))
	}
	return strings.Join(out, "\n")
}
