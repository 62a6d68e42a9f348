// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Non-blocking toast notifications. Toasts render in the bottom-right
// corner and auto-dismiss, so transient errors never block input.
package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastStatus is an informational toast.
	ToastStatus ToastKind = iota
	// ToastError is an error toast.
	ToastError
	// ToastWarning is a warning toast.
	ToastWarning
	// ToastSuccess is a success toast.
	ToastSuccess
)

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	StatusToastDuration = 4 * time.Second
	WarningToastDur     = 6 * time.Second
	ErrorToastDuration  = 8 * time.Second
)

// Toast is a single notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the toast should be dismissed.
func (t Toast) Expired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toasts, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	max    int
}

// NewToastManager creates an empty manager showing at most five toasts.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1, max: 5}
}

func (m *ToastManager) add(message string, kind ToastKind, d time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	}
	m.nextID++
	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > m.max {
		m.toasts = m.toasts[:m.max]
	}
	return t.ID
}

// AddError adds an error toast and returns its ID.
func (m *ToastManager) AddError(message string) int {
	return m.add(message, ToastError, ErrorToastDuration)
}

// AddWarning adds a warning toast and returns its ID.
func (m *ToastManager) AddWarning(message string) int {
	return m.add(message, ToastWarning, WarningToastDur)
}

// AddStatus adds an informational toast and returns its ID.
func (m *ToastManager) AddStatus(message string) int {
	return m.add(message, ToastStatus, StatusToastDuration)
}

// AddSuccess adds a success toast and returns its ID.
func (m *ToastManager) AddSuccess(message string) int {
	return m.add(message, ToastSuccess, StatusToastDuration)
}

// Dismiss removes a toast by ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick drops expired toasts and returns the survivors.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired() {
			active = append(active, t)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Toasts returns a copy of the active toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// HasToasts reports whether any toasts are active.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks toasts every 100ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

func toastLook(kind ToastKind) (lipgloss.AdaptiveColor, string) {
	switch kind {
	case ToastError:
		return styles.Rose, styles.StatusIndicators.Error
	case ToastWarning:
		return styles.Amber, styles.StatusIndicators.Warning
	case ToastSuccess:
		return styles.Emerald, styles.StatusIndicators.Success
	default:
		return styles.Cyan, styles.StatusIndicators.Info
	}
}

// RenderToast renders a single toast box.
func RenderToast(t Toast, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	color, icon := toastLook(t.Kind)

	content := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" ") +
		lipgloss.NewStyle().Foreground(styles.TextPrimary).Width(maxWidth-8).Render(t.Message)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders the active toasts in the bottom-right corner.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, width))
	}
	stack := lipgloss.NewStyle().
		MarginRight(2).
		MarginBottom(1).
		Render(lipgloss.JoinVertical(lipgloss.Right, rendered...))

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
	}
	return stack
}
