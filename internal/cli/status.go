// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - backend health and namespace listing handlers.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/config"
	"github.com/jeranaias/neuroportal-tui/internal/ui/styles"
)

// statusJSONOutput is the shape of `status --json` output.
type statusJSONOutput struct {
	Backend string                 `json:"backend"`
	Healthy bool                   `json:"healthy"`
	Session *backend.SessionStatus `json:"session,omitempty"`
}

// HandleStatus reports backend health and, when a session ID is given,
// that session's indexing status.
func HandleStatus(args Args) {
	client := newBackendClient(args)
	cfg := config.Global()
	baseURL := cfg.Backend.BaseURL
	if args.BackendURL != "" {
		baseURL = args.BackendURL
	}

	healthy := client.Health(context.Background()) == nil

	var session *backend.SessionStatus
	if args.Session != "" && healthy {
		st, err := client.SessionStatus(context.Background(), args.Session)
		if err != nil {
			exitErr(err)
		}
		session = st
	}

	if args.JSON {
		_ = json.NewEncoder(os.Stdout).Encode(statusJSONOutput{
			Backend: baseURL,
			Healthy: healthy,
			Session: session,
		})
		if !healthy {
			os.Exit(1)
		}
		return
	}

	fmt.Println(infoStyle.Render("backend: " + baseURL))
	if healthy {
		fmt.Println(styles.RenderSuccess("backend is healthy"))
	} else {
		fmt.Println(styles.RenderError("backend is unreachable"))
		os.Exit(1)
	}

	if session != nil {
		if session.Exists {
			fmt.Println(styles.RenderInfo(fmt.Sprintf(
				"session %s: %d documents, status %s", session.SessionID, session.VectorCount, session.Status)))
		} else {
			fmt.Println(styles.RenderWarning("session " + session.SessionID + " not found"))
		}
	}
}

// HandleNamespaces lists the existing namespaces.
func HandleNamespaces(args Args) {
	client := newBackendClient(args)

	namespaces, err := client.Namespaces(context.Background())
	if err != nil {
		if backend.IsUnreachable(err) {
			exitErr(fmt.Errorf("cannot reach the backend; is it running?"))
		}
		exitErr(err)
	}

	if args.JSON {
		_ = json.NewEncoder(os.Stdout).Encode(map[string][]string{"namespaces": namespaces})
		return
	}

	if len(namespaces) == 0 {
		fmt.Println(infoStyle.Render("no namespaces yet"))
		return
	}
	for _, ns := range namespaces {
		fmt.Println("  " + ns)
	}
	if !args.Quiet {
		fmt.Println(infoStyle.Render(fmt.Sprintf("%d namespaces", len(namespaces))))
	}
}
