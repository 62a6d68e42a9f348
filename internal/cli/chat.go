// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive chat command handler.
//
// Command: chat
//
// Examples:
//   neuroportal chat --session k2j3l_ab12c
//   neuroportal chat --admin
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /sources            Toggle source display
//   /session <id>       Switch to another session/namespace
//   /admin              Switch to admin-wide scope
//   /status             Show current scope and backend health
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/neuroportal-tui/internal/backend"
	"github.com/jeranaias/neuroportal-tui/internal/config"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatInput wraps liner with persistent history under the config dir.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	ci := &chatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	if f, err := os.Open(ci.historyFile); err == nil {
		ci.line.ReadHistory(f)
		f.Close()
	}
	return ci
}

func (c *chatInput) read(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *chatInput) close() {
	if f, err := os.Create(c.historyFile); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// chatSession holds the REPL state.
type chatSession struct {
	client      *backend.Client
	sessionID   string
	isAdmin     bool
	showSources bool
	turns       int
}

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) {
	sessionID, isAdmin, err := resolveScope(args)
	if err != nil {
		exitErr(err)
	}

	sess := &chatSession{
		client:      newBackendClient(args),
		sessionID:   sessionID,
		isAdmin:     isAdmin,
		showSources: config.Global().UI.ShowSources,
	}

	if !isAdmin {
		if err := sess.validate(); err != nil {
			exitErr(err)
		}
	}

	if !args.Quiet {
		sess.printWelcome()
	}

	input := newChatInput()
	defer input.close()

	for {
		line, err := input.read(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println(infoStyle.Render("bye"))
				return
			}
			// io.EOF from Ctrl+D, or a terminal failure
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if sess.handleCommand(line) {
				return
			}
			continue
		}
		sess.ask(line)
	}
}

func (s *chatSession) validate() error {
	v, err := s.client.ValidateSession(context.Background(), s.sessionID)
	if err != nil {
		if backend.IsUnreachable(err) {
			return fmt.Errorf("cannot reach the backend; is it running?")
		}
		return err
	}
	if !v.Valid {
		msg := v.Error
		if msg == "" {
			msg = "session not found"
		}
		if v.Suggestion != "" {
			msg += " (" + v.Suggestion + ")"
		}
		return fmt.Errorf("%s", msg)
	}
	fmt.Println(infoStyle.Render(
		fmt.Sprintf("session %s loaded, %d documents indexed", v.SessionID, v.VectorCount)))
	return nil
}

func (s *chatSession) printWelcome() {
	scope := s.sessionID
	if s.isAdmin {
		scope = "all namespaces (admin)"
	}
	fmt.Println(promptStyle.Render("neuroportal chat"))
	fmt.Println(infoStyle.Render("scope: " + scope))
	fmt.Println(infoStyle.Render("type /help for commands, /quit to exit"))
	fmt.Println()
}

// handleCommand executes a slash command. Returns true to exit the REPL.
func (s *chatSession) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/q", "/exit":
		if s.turns > 0 {
			fmt.Println(infoStyle.Render(fmt.Sprintf("%d questions asked", s.turns)))
		}
		return true

	case "/help", "/h":
		fmt.Println(infoStyle.Render(strings.TrimSpace(`
/sources        toggle source display
/session <id>   switch to another session or namespace
/admin          switch to admin-wide scope
/status         show current scope and backend health
/quit           exit`)))

	case "/sources":
		s.showSources = !s.showSources
		if s.showSources {
			fmt.Println(infoStyle.Render("sources on"))
		} else {
			fmt.Println(infoStyle.Render("sources off"))
		}

	case "/session":
		if len(fields) < 2 {
			fmt.Println(warningStyle.Render("usage: /session <id>"))
			return false
		}
		prev, prevAdmin := s.sessionID, s.isAdmin
		s.sessionID, s.isAdmin = fields[1], false
		if err := s.validate(); err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
			s.sessionID, s.isAdmin = prev, prevAdmin
		}

	case "/admin":
		s.sessionID, s.isAdmin = backend.AdminScope, true
		fmt.Println(infoStyle.Render("scope: all namespaces (admin)"))

	case "/status":
		s.printStatus()

	default:
		fmt.Println(warningStyle.Render("unknown command " + cmd + "; try /help"))
	}
	return false
}

func (s *chatSession) printStatus() {
	scope := s.sessionID
	if s.isAdmin {
		scope = "all namespaces (admin)"
	}
	fmt.Println(infoStyle.Render("scope: " + scope))
	if err := s.client.Health(context.Background()); err != nil {
		fmt.Println(warningStyle.Render("backend: unreachable"))
	} else {
		fmt.Println(infoStyle.Render("backend: healthy"))
	}
}

func (s *chatSession) ask(question string) {
	resp, err := s.client.Query(context.Background(), question, s.sessionID, s.isAdmin)
	if err != nil {
		if backend.IsUnreachable(err) {
			fmt.Println(warningStyle.Render("cannot reach the backend"))
		} else {
			fmt.Println(warningStyle.Render(err.Error()))
		}
		return
	}

	s.turns++
	displayAnswer(resp.Answer)
	if s.showSources {
		for i, src := range resp.RetrievedSources {
			fmt.Println(sourceStyle.Render(fmt.Sprintf("  [%d] %s", i+1, src)))
		}
	}
	fmt.Println()
	rememberSession(s.sessionID)
}
