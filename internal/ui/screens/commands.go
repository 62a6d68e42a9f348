// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
)

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// nextStepsDelay is how long the console waits after a successful ingestion
// before revealing the follow-up actions.
const nextStepsDelay = 2 * time.Second

// HealthCmd probes the backend and reports reachability.
func HealthCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := client.Health(ctx)
		return HealthMsg{Online: err == nil, Time: time.Now()}
	}
}

// ValidateCmd validates a session ID against the backend.
func ValidateCmd(client *backend.Client, epoch uint64, sessionID string) tea.Cmd {
	return func() tea.Msg {
		v, err := client.ValidateSession(context.Background(), sessionID)
		return ValidateResultMsg{Epoch: epoch, Validation: v, Err: err}
	}
}

// NamespacesCmd fetches the list of existing namespaces.
func NamespacesCmd(client *backend.Client, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		ns, err := client.Namespaces(context.Background())
		return NamespacesMsg{Epoch: epoch, Namespaces: ns, Err: err}
	}
}

// QueryCmd submits a question to the backend.
func QueryCmd(client *backend.Client, epoch uint64, req backend.QueryRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), req.Question, req.SessionID, req.IsAdmin)
		return QueryResultMsg{Epoch: epoch, Response: resp, Err: err}
	}
}

// ProcessCmd submits content sources for ingestion.
func ProcessCmd(client *backend.Client, epoch uint64, input backend.ProcessInput) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Process(context.Background(), input)
		return ProcessResultMsg{Epoch: epoch, Response: resp, Err: err}
	}
}

// NextStepsCmd fires NextStepsMsg after the post-ingestion delay.
func NextStepsCmd(epoch uint64) tea.Cmd {
	return tea.Tick(nextStepsDelay, func(time.Time) tea.Msg {
		return NextStepsMsg{Epoch: epoch}
	})
}

// screenChangedCmd notifies the root model of a view transition.
func screenChangedCmd() tea.Cmd {
	return func() tea.Msg { return ScreenChangedMsg{} }
}
