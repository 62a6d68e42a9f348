// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Status indicator tests
// =============================================================================

func TestStatusIndicatorsASCII(t *testing.T) {
	indicators := []struct {
		name  string
		value string
	}{
		{"Success", StatusIndicators.Success},
		{"Error", StatusIndicators.Error},
		{"Warning", StatusIndicators.Warning},
		{"Info", StatusIndicators.Info},
		{"Pending", StatusIndicators.Pending},
		{"Active", StatusIndicators.Active},
	}
	for _, ind := range indicators {
		if ind.value == "" {
			t.Errorf("StatusIndicators.%s is empty", ind.name)
		}
		for _, r := range ind.value {
			if r > 127 {
				t.Errorf("StatusIndicators.%s = %q contains non-ASCII rune %q", ind.name, ind.value, r)
			}
		}
	}
}

func TestStatusIndicatorsDistinct(t *testing.T) {
	seen := map[string]string{}
	for name, v := range map[string]string{
		"Success": StatusIndicators.Success,
		"Error":   StatusIndicators.Error,
		"Warning": StatusIndicators.Warning,
		"Info":    StatusIndicators.Info,
		"Pending": StatusIndicators.Pending,
		"Active":  StatusIndicators.Active,
	} {
		if prev, ok := seen[v]; ok {
			t.Errorf("indicator %q shared by %s and %s", v, prev, name)
		}
		seen[v] = name
	}
}

func TestRenderStatusIncludesIndicator(t *testing.T) {
	tests := []struct {
		name    string
		render  func(string) string
		message string
		want    string
	}{
		{"success", RenderSuccess, "processed", StatusIndicators.Success},
		{"error", RenderError, "failed", StatusIndicators.Error},
		{"warning", RenderWarning, "careful", StatusIndicators.Warning},
		{"info", RenderInfo, "note", StatusIndicators.Info},
	}
	for _, tt := range tests {
		got := tt.render(tt.message)
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s render missing indicator %q in %q", tt.name, tt.want, got)
		}
		if !strings.Contains(got, tt.message) {
			t.Errorf("%s render missing message %q in %q", tt.name, tt.message, got)
		}
	}
}

func TestRenderStatusBranches(t *testing.T) {
	ok := RenderStatus(true, "m")
	fail := RenderStatus(false, "m")
	if !strings.Contains(ok, StatusIndicators.Success) {
		t.Errorf("RenderStatus(true) = %q, want success indicator", ok)
	}
	if !strings.Contains(fail, StatusIndicators.Error) {
		t.Errorf("RenderStatus(false) = %q, want error indicator", fail)
	}
}

// =============================================================================
// Theme tests
// =============================================================================

func TestNewThemeDefaults(t *testing.T) {
	th := NewTheme()
	if th.Width != 80 || th.Height != 24 {
		t.Errorf("NewTheme size = %dx%d, want 80x24", th.Width, th.Height)
	}
}

func TestThemeSetSize(t *testing.T) {
	th := NewTheme()
	th.SetSize(120, 40)
	if th.Width != 120 || th.Height != 40 {
		t.Errorf("SetSize gave %dx%d, want 120x40", th.Width, th.Height)
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutCompact},
		{79, LayoutCompact},
		{80, LayoutNormal},
		{119, LayoutNormal},
		{120, LayoutWide},
		{200, LayoutWide},
	}
	th := NewTheme()
	for _, tt := range tests {
		th.SetSize(tt.width, 24)
		if got := th.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestSetCompactForcesCompactLayout(t *testing.T) {
	th := NewTheme()
	th.SetSize(120, 40)
	if got := th.GetLayoutMode(); got != LayoutWide {
		t.Fatalf("GetLayoutMode() at width 120 = %v, want LayoutWide", got)
	}
	wide := th.Container.GetHorizontalPadding()

	th.SetCompact(true)
	if got := th.GetLayoutMode(); got != LayoutCompact {
		t.Errorf("GetLayoutMode() with compact forced = %v, want LayoutCompact", got)
	}
	if got := th.Container.GetHorizontalPadding(); got >= wide {
		t.Errorf("compact container padding = %d, want less than %d", got, wide)
	}

	th.SetCompact(false)
	if got := th.GetLayoutMode(); got != LayoutWide {
		t.Errorf("GetLayoutMode() after unforcing = %v, want LayoutWide", got)
	}
}

func TestContentWidthFloor(t *testing.T) {
	th := NewTheme()
	th.SetSize(10, 24)
	if got := th.ContentWidth(); got != 20 {
		t.Errorf("ContentWidth() at width 10 = %d, want floor 20", got)
	}
	th.SetSize(100, 24)
	if got := th.ContentWidth(); got != 96 {
		t.Errorf("ContentWidth() at width 100 = %d, want 96", got)
	}
}

// =============================================================================
// Spinner and progress bar tests
// =============================================================================

func TestSpinnerDuration(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{10, 100 * time.Millisecond},
		{4, 250 * time.Millisecond},
		{0, 100 * time.Millisecond},
		{-3, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		s := SpinnerConfig{Frames: []string{"|"}, FPS: tt.fps}
		if got := s.Duration(); got != tt.want {
			t.Errorf("Duration() with FPS %d = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestNamedSpinnersHaveFrames(t *testing.T) {
	for name, s := range map[string]SpinnerConfig{
		"SpinnerDots":     SpinnerDots,
		"SpinnerLine":     SpinnerLine,
		"SpinnerPulse":    SpinnerPulse,
		"SpinnerThinking": SpinnerThinking,
	} {
		if len(s.Frames) == 0 {
			t.Errorf("%s has no frames", name)
		}
		if s.FPS <= 0 {
			t.Errorf("%s has FPS %d, want positive", name, s.FPS)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		width int
		ratio float64
		want  string
	}{
		{4, 0.0, "░░░░"},
		{4, 0.5, "██░░"},
		{4, 1.0, "████"},
		{4, -0.5, "░░░░"},
		{4, 2.0, "████"},
		{0, 0.5, ""},
		{-3, 0.5, ""},
	}
	for _, tt := range tests {
		if got := RenderProgressBar(tt.width, tt.ratio); got != tt.want {
			t.Errorf("RenderProgressBar(%d, %v) = %q, want %q", tt.width, tt.ratio, got, tt.want)
		}
	}
}
