// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the neuroportal TUI.
//
// This package contains common helper functions used throughout the
// application for string display, session ID generation, and crash-safe
// file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width aware truncation (CJK safe)
//
// Session IDs:
//   - NewSessionID: compact timestamp-plus-entropy identifier
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
