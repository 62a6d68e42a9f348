// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal implements the session and submission controller behind
// the neuroportal TUI.
//
// The controller owns the UI's notion of identity (anonymous, user
// session, admin), the namespace being targeted for ingestion (new or
// existing), and the derived gating that decides which actions are
// currently legal: login, document submission, and querying.
//
// All transitions are synchronous and pure with respect to the
// controller's state; network work happens outside the controller, which
// only records intents (Begin*) and outcomes (Finish*). Every in-flight
// operation carries the epoch current at its start, and outcomes whose
// epoch no longer matches are dropped, so responses that outlive a
// logout or a role switch can never resurrect stale state.
package portal
