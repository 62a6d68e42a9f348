// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the neuroportal TUI.
package util

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID generates a compact session identifier of the form
// "<timestamp>_<entropy>" where the timestamp is the current Unix
// millisecond count in base36 and the entropy is five base36 characters
// drawn from a random UUID. IDs sort roughly by creation time and are
// safe to use as vector store namespace names.
func NewSessionID() string {
	return NewSessionIDAt(time.Now())
}

// NewSessionIDAt is NewSessionID with an explicit timestamp, for tests.
func NewSessionIDAt(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)

	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8])

	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteByte(base36Alphabet[n%36])
		n /= 36
	}
	return ts + "_" + b.String()
}

// ValidSessionID reports whether s looks like an identifier produced by
// NewSessionID or an equivalent generator: non-empty, lowercase base36
// segments joined by a single underscore.
func ValidSessionID(s string) bool {
	parts := strings.Split(s, "_")
	if len(parts) != 2 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, r := range part {
			if !strings.ContainsRune(base36Alphabet, r) {
				return false
			}
		}
	}
	return true
}
