// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal implements the session and submission controller behind
// the neuroportal TUI.
package portal

import "github.com/jeranaias/neuroportal-tui/internal/util"

// =============================================================================
// ID GENERATION
// =============================================================================

// IDGenerator produces candidate identifiers for new session namespaces.
// The controller never inspects the value; swapping the generator for a
// stronger one changes nothing else.
type IDGenerator interface {
	Next() string
}

// GeneratorFunc adapts a plain function to the IDGenerator interface.
type GeneratorFunc func() string

// Next implements IDGenerator.
func (f GeneratorFunc) Next() string {
	return f()
}

// DefaultGenerator returns the timestamp-plus-entropy generator used when
// no custom generator is supplied.
func DefaultGenerator() IDGenerator {
	return GeneratorFunc(util.NewSessionID)
}
