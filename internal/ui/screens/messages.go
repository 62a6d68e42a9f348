// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"time"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
)

// =============================================================================
// BACKEND OUTCOME MESSAGES
// =============================================================================

// HealthMsg reports a backend health probe result.
type HealthMsg struct {
	Online bool
	Time   time.Time
}

// ValidateResultMsg delivers the outcome of a session validation.
type ValidateResultMsg struct {
	Epoch      uint64
	Validation *backend.SessionValidation
	Err        error
}

// NamespacesMsg delivers the namespace list for the admin console.
type NamespacesMsg struct {
	Epoch      uint64
	Namespaces []string
	Err        error
}

// QueryResultMsg delivers the answer to a submitted question.
type QueryResultMsg struct {
	Epoch    uint64
	Response *backend.QueryResponse
	Err      error
}

// ProcessResultMsg delivers the outcome of a document ingestion.
type ProcessResultMsg struct {
	Epoch    uint64
	Response *backend.ProcessResponse
	Err      error
}

// NextStepsMsg fires after the post-ingestion delay to reveal the
// follow-up actions on the admin console.
type NextStepsMsg struct {
	Epoch uint64
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// ScreenChangedMsg tells the root model the controller moved to a new view.
// Screens emit it after a transition so the root can focus the right screen.
type ScreenChangedMsg struct{}
