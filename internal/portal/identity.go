// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal implements the session and submission controller behind
// the neuroportal TUI.
package portal

import "github.com/jeranaias/neuroportal-tui/internal/backend"

// =============================================================================
// IDENTITY
// =============================================================================

// Role is who the current operator is.
type Role int

const (
	// RoleAnonymous is the state before any login.
	RoleAnonymous Role = iota
	// RoleUser is an operator authenticated against one session namespace.
	RoleUser
	// RoleAdmin is the ingestion console operator. Admin carries no
	// session of its own; its queries span every namespace.
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is the current operator plus, for users, the session they
// validated against.
type Identity struct {
	Role      Role
	SessionID string
}

// Anonymous returns the pre-login identity.
func Anonymous() Identity {
	return Identity{Role: RoleAnonymous}
}

// UserIdentity returns an identity bound to a validated session.
func UserIdentity(sessionID string) Identity {
	return Identity{Role: RoleUser, SessionID: sessionID}
}

// AdminIdentity returns the admin identity.
func AdminIdentity() Identity {
	return Identity{Role: RoleAdmin}
}

// QueryScope returns the session identifier and admin flag a query made
// under this identity must carry. Admin queries use the backend's
// wildcard scope to search across all namespaces.
func (i Identity) QueryScope() (sessionID string, isAdmin bool) {
	if i.Role == RoleAdmin {
		return backend.AdminScope, true
	}
	return i.SessionID, false
}

// CanQuery reports whether this identity is allowed to submit questions.
func (i Identity) CanQuery() bool {
	return i.Role == RoleAdmin || (i.Role == RoleUser && i.SessionID != "")
}

// CanIngest reports whether this identity may use the ingestion console.
func (i Identity) CanIngest() bool {
	return i.Role == RoleAdmin
}
