// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the neuroportal
// TUI: the header bar, loading spinners, toast notifications, and the
// ingestion status-line renderer. Components are plain Bubble Tea models
// or stateless render helpers; screens compose them.
package components
