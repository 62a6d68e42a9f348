// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of neuroportal:
// argument parsing plus the ask, chat, status, namespaces, and config
// command handlers. The default invocation with no command starts the
// full-screen TUI; everything here is the scriptable path around it.
package cli
