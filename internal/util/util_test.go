// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the neuroportal TUI.
package util

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		input    string
		maxRunes int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"", 5, ""},
		{"héllo wörld", 8, "héllo..."},
		{"日本語テキスト", 5, "日本..."},
	}

	for _, tt := range tests {
		got := TruncateRunes(tt.input, tt.maxRunes)
		if got != tt.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 0, ""},
		// CJK characters are two columns wide.
		{"日本語", 10, "日本語"},
		{"日本語テキスト", 9, "日本語..."},
	}

	for _, tt := range tests {
		got := TruncateWidth(tt.input, tt.maxWidth)
		if got != tt.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
		}
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"hello", 5},
		{"", 0},
		{"日本語", 6},
		{"abc日本", 7},
	}

	for _, tt := range tests {
		got := StringWidth(tt.input)
		if got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  hello   world  ", "hello world"},
		{"one", "one"},
		{"", ""},
		{"\ttabs\nand newlines ", "tabs and newlines"},
	}

	for _, tt := range tests {
		got := CollapseSpace(tt.input)
		if got != tt.want {
			t.Errorf("CollapseSpace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHasPDFExtension(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{" notes.Pdf ", true},
		{"report.pdf.txt", false},
		{"report.txt", false},
		{"report", false},
		{"", false},
	}

	for _, tt := range tests {
		got := HasPDFExtension(tt.input)
		if got != tt.want {
			t.Errorf("HasPDFExtension(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// =============================================================================
// SESSION ID TESTS
// =============================================================================

func TestNewSessionIDFormat(t *testing.T) {
	id := NewSessionID()

	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		t.Fatalf("NewSessionID() = %q, want two underscore-separated parts", id)
	}
	if len(parts[1]) != 5 {
		t.Errorf("entropy part %q has length %d, want 5", parts[1], len(parts[1]))
	}
	if !ValidSessionID(id) {
		t.Errorf("ValidSessionID(%q) = false, want true", id)
	}
}

func TestNewSessionIDAtEncodesTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewSessionIDAt(now)

	wantPrefix := strconv.FormatInt(now.UnixMilli(), 36)
	if !strings.HasPrefix(id, wantPrefix+"_") {
		t.Errorf("NewSessionIDAt(%v) = %q, want prefix %q", now, id, wantPrefix)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		if seen[id] {
			t.Fatalf("duplicate session ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestValidSessionID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"m9x2k1_ab3z9", true},
		{"123_45", true},
		{"", false},
		{"nounderscore", false},
		{"too_many_parts", false},
		{"UPPER_case", false},
		{"ok_", false},
		{"_ok", false},
		{"spa ce_ab123", false},
	}

	for _, tt := range tests {
		got := ValidSessionID(tt.input)
		if got != tt.want {
			t.Errorf("ValidSessionID(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")
	data := []byte("hello, world!")

	err := AtomicWriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "subdir", "deep", "test.txt")

	err := AtomicWriteFile(path, []byte("test data"), 0644)
	if err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", string(content))
	}
}

func TestAtomicWriteFile_NoTempFileLeftBehind(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
