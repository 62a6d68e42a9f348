// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screens implements the Bubble Tea views of the neuroportal TUI:
// the portal chooser, the user login form, the query screen, and the admin
// ingestion console.
//
// Screens do not own application state. The portal.Controller is the single
// source of truth; a screen translates key events into controller transitions,
// issues backend commands tagged with the controller epoch, and renders from
// the controller's State snapshot. Outcome messages carry the epoch back so
// stale responses are dropped by the controller, never by view code.
package screens
