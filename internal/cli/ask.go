// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - single-question command handler.
//
// Command: ask [question]
//
// Examples:
//   neuroportal ask --session k2j3l_ab12c "What does chapter 3 cover?"
//   neuroportal ask --admin "Which documents mention kubernetes?"
//   neuroportal ask --admin --json "Summarize the corpus"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders answers for terminal display. nil when the
// terminal cannot support it; callers fall back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		markdownRenderer = r
	}
}

// renderMarkdown renders markdown content, falling back to the raw text.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

// displayAnswer renders markdown only when stdout is a terminal, so piped
// output stays clean.
func displayAnswer(answer string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(renderMarkdown(answer))
		return
	}
	fmt.Println(answer)
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// askJSONOutput is the shape of `ask --json` output.
type askJSONOutput struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	SessionID    string   `json:"session_id"`
	IsAdmin      bool     `json:"is_admin"`
	ContextCount int      `json:"context_count"`
	Sources      []string `json:"sources,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// HandleAsk sends a single question and prints the answer.
func HandleAsk(args Args) {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		exitErr(fmt.Errorf("no question given; usage: neuroportal ask \"question\""))
	}

	sessionID, isAdmin, err := resolveScope(args)
	if err != nil {
		exitErr(err)
	}

	client := newBackendClient(args)

	resp, err := client.Query(context.Background(), question, sessionID, isAdmin)
	if err != nil {
		if args.JSON {
			out := askJSONOutput{
				Question:  question,
				SessionID: sessionID,
				IsAdmin:   isAdmin,
				Error:     err.Error(),
			}
			_ = json.NewEncoder(os.Stdout).Encode(out)
			os.Exit(1)
		}
		if backend.IsUnreachable(err) {
			exitErr(fmt.Errorf("cannot reach the backend; is it running? (%w)", err))
		}
		exitErr(err)
	}

	if args.JSON {
		out := askJSONOutput{
			Question:     question,
			Answer:       resp.Answer,
			SessionID:    resp.SessionID,
			IsAdmin:      resp.IsAdminQuery,
			ContextCount: resp.ContextCount,
		}
		if args.Verbose {
			out.Sources = resp.RetrievedSources
		}
		_ = json.NewEncoder(os.Stdout).Encode(out)
		return
	}

	displayAnswer(resp.Answer)

	if !args.Quiet && resp.ContextCount > 0 {
		fmt.Println(infoStyle.Render(fmt.Sprintf("(%d context passages)", resp.ContextCount)))
	}
	if args.Verbose {
		for i, src := range resp.RetrievedSources {
			fmt.Println(sourceStyle.Render(fmt.Sprintf("  [%d] %s", i+1, src)))
		}
	}

	rememberSession(sessionID)
}
