// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/neuroportal-tui/internal/portal"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// Toast manager tests
// =============================================================================

func TestToastManagerAddAndDismiss(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Error("new manager should have no toasts")
	}

	id := m.AddError("backend unreachable")
	if !m.HasToasts() {
		t.Error("expected toast after AddError")
	}
	toasts := m.Toasts()
	if len(toasts) != 1 {
		t.Fatalf("Toasts() returned %d, want 1", len(toasts))
	}
	if toasts[0].Kind != ToastError || toasts[0].Message != "backend unreachable" {
		t.Errorf("unexpected toast %+v", toasts[0])
	}

	m.Dismiss(id)
	if m.HasToasts() {
		t.Error("toast should be gone after Dismiss")
	}
}

func TestToastManagerNewestFirstAndCapped(t *testing.T) {
	m := NewToastManager()
	for _, msg := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		m.AddStatus(msg)
	}
	toasts := m.Toasts()
	if len(toasts) != 5 {
		t.Fatalf("got %d toasts, want cap of 5", len(toasts))
	}
	if toasts[0].Message != "g" {
		t.Errorf("newest toast is %q, want %q", toasts[0].Message, "g")
	}
}

func TestToastTickDropsExpired(t *testing.T) {
	m := NewToastManager()
	m.AddStatus("fresh")
	m.mu.Lock()
	m.toasts = append(m.toasts, Toast{
		ID:        99,
		Message:   "stale",
		CreatedAt: time.Now().Add(-time.Minute),
		Duration:  time.Second,
	})
	m.mu.Unlock()

	remaining := m.Tick()
	if len(remaining) != 1 || remaining[0].Message != "fresh" {
		t.Errorf("Tick() = %+v, want only the fresh toast", remaining)
	}
}

func TestToastDurationsByKind(t *testing.T) {
	m := NewToastManager()
	m.AddError("e")
	m.AddWarning("w")
	m.AddSuccess("s")
	toasts := m.Toasts()
	// Newest first: success, warning, error.
	if toasts[0].Duration != StatusToastDuration {
		t.Errorf("success duration = %v, want %v", toasts[0].Duration, StatusToastDuration)
	}
	if toasts[1].Duration != WarningToastDur {
		t.Errorf("warning duration = %v, want %v", toasts[1].Duration, WarningToastDur)
	}
	if toasts[2].Duration != ErrorToastDuration {
		t.Errorf("error duration = %v, want %v", toasts[2].Duration, ErrorToastDuration)
	}
}

func TestRenderToastContainsMessage(t *testing.T) {
	toast := Toast{ID: 1, Message: "saved", Kind: ToastSuccess, CreatedAt: time.Now(), Duration: time.Second}
	out := RenderToast(toast, 80)
	if !strings.Contains(out, "saved") {
		t.Errorf("RenderToast output missing message: %q", out)
	}
	if !strings.Contains(out, styles.StatusIndicators.Success) {
		t.Errorf("RenderToast output missing success indicator: %q", out)
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if got := RenderToastStack(nil, 80, 24); got != "" {
		t.Errorf("RenderToastStack(nil) = %q, want empty", got)
	}
}

// =============================================================================
// Status line tests
// =============================================================================

func TestRenderStatusLineMarkers(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"✓ URL processed: 12 chunks", styles.StatusIndicators.Success},
		{"✗ Document failed: unreadable PDF", styles.StatusIndicators.Error},
		{"processing started", styles.StatusIndicators.Info},
	}
	for _, tt := range tests {
		got := RenderStatusLine(tt.line)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RenderStatusLine(%q) = %q, want indicator %q", tt.line, got, tt.want)
		}
		if strings.Contains(got, markerOK) || strings.Contains(got, markerFail) {
			t.Errorf("RenderStatusLine(%q) kept unicode marker: %q", tt.line, got)
		}
	}
}

func TestRenderStatusLinesSkipsBlank(t *testing.T) {
	out := RenderStatusLines([]string{"✓ ok", "", "  ", "✗ bad"})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Errorf("RenderStatusLines rendered %d lines, want 2: %q", len(lines), out)
	}
}

func TestRenderStatusLinesEmpty(t *testing.T) {
	if got := RenderStatusLines(nil); got != "" {
		t.Errorf("RenderStatusLines(nil) = %q, want empty", got)
	}
}

// =============================================================================
// Spinner tests
// =============================================================================

func TestSpinnerLifecycle(t *testing.T) {
	s := NewAnswerSpinner()
	if s.IsActive() {
		t.Error("spinner active before Start")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner inactive after Start")
	}
	if !strings.Contains(s.View(), "Thinking") {
		t.Errorf("spinner view missing message: %q", s.View())
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner active after Stop")
	}
}

func TestSpinnerElapsedZeroBeforeStart(t *testing.T) {
	s := NewUploadSpinner()
	if got := s.Elapsed(); got != 0 {
		t.Errorf("Elapsed before Start = %v, want 0", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{65 * time.Second, "1m 05s"},
		{2*time.Minute + 30*time.Second, "2m 30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// Header tests
// =============================================================================

func TestHeaderView(t *testing.T) {
	th := styles.NewTheme()
	h := NewHeader(th)
	h.SetWidth(100)
	h.SetIdentity(portal.AdminIdentity())
	h.SetSession("research_docs")
	h.SetOnline(true)

	out := h.View()
	if !strings.Contains(out, "neuroportal") {
		t.Errorf("header missing brand: %q", out)
	}
	if !strings.Contains(out, "ADMIN") {
		t.Errorf("header missing admin badge: %q", out)
	}
	if !strings.Contains(out, "research_docs") {
		t.Errorf("header missing session: %q", out)
	}
	if !strings.Contains(out, "online") {
		t.Errorf("header missing health indicator: %q", out)
	}
}

func TestHeaderOffline(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetIdentity(portal.UserIdentity("s1"))
	h.SetOnline(false)
	out := h.View()
	if !strings.Contains(out, "offline") {
		t.Errorf("header missing offline indicator: %q", out)
	}
	if !strings.Contains(out, "USER") {
		t.Errorf("header missing user badge: %q", out)
	}
}

func TestHeaderAnonymousHasNoRoleBadge(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetIdentity(portal.Anonymous())
	out := h.View()
	if strings.Contains(out, "ADMIN") || strings.Contains(out, "USER") {
		t.Errorf("anonymous header should carry no role badge: %q", out)
	}
}
