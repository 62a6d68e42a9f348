// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/config"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
	"github.com/jeranaias/neuroportal-tui/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	sourceStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// =============================================================================
// CLIENT CONSTRUCTION
// =============================================================================

// newBackendClient builds a backend client from the global config, with the
// --backend flag taking precedence.
func newBackendClient(args Args) *backend.Client {
	cfg := config.Global()
	cc := &backend.ClientConfig{
		BaseURL:       cfg.Backend.BaseURL,
		QueryPath:     cfg.Backend.QueryPath,
		Timeout:       cfg.Timeout(),
		UploadTimeout: cfg.UploadTimeout(),
	}
	if args.BackendURL != "" {
		cc.BaseURL = args.BackendURL
	}
	return backend.NewClientWithConfig(cc)
}

// resolveScope decides which session the query runs against. Admin wins,
// then the --session flag, then the remembered session from config.
func resolveScope(args Args) (sessionID string, isAdmin bool, err error) {
	if args.Admin {
		return backend.AdminScope, true, nil
	}
	session := strings.TrimSpace(args.Session)
	if session == "" {
		cfg := config.Global()
		if cfg.Auth.RememberSession {
			session = strings.TrimSpace(cfg.Auth.LastSessionID)
		}
	}
	if session == "" {
		return "", false, fmt.Errorf("no session: pass --session ID or --admin")
	}
	if args.Verbose && !util.ValidSessionID(session) {
		fmt.Fprintln(os.Stderr, infoStyle.Render(
			"note: "+session+" is not a generated session ID; treating it as a namespace name"))
	}
	return session, false, nil
}

// rememberSession persists the last used session when the config asks for it.
func rememberSession(sessionID string) {
	cfg := config.Global()
	if !cfg.Auth.RememberSession || sessionID == backend.AdminScope {
		return
	}
	if cfg.Auth.LastSessionID == sessionID {
		return
	}
	cfg.Auth.LastSessionID = sessionID
	// Best effort; the query already succeeded.
	_ = config.Save(cfg)
}

// exitErr prints an error and exits non-zero.
func exitErr(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
