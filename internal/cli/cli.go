// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command dispatch for neuroportal.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdNamespaces
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Backend selection
	BackendURL string // overrides config when set
	Session    string // session ID or namespace to query
	Admin      bool   // query across all namespaces

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `neuroportal - terminal client for the document QA backend

Neuroportal talks to a retrieval-augmented QA service: upload documents
into namespaces, then ask questions answered from their content.

Usage:
  neuroportal                      Start TUI (default)
  neuroportal ask "question"       Ask a single question
    --session ID                   Query one session/namespace (required unless --admin)
    --admin                        Query across all namespaces
    --json                         Output response as JSON
  neuroportal chat                 Interactive chat
    --session ID                   Chat against one session/namespace
    --admin                        Chat across all namespaces
  neuroportal status [session-id]  Backend health, optionally one session's status
  neuroportal namespaces           List existing namespaces
  neuroportal config [show|get|set|path]
                                   Configuration management
  neuroportal version              Show version information
  neuroportal help                 Show this help

Global flags:
  --backend URL   Backend base URL (overrides config and NEUROPORTAL_BACKEND_URL)
  --json          JSON output where supported
  -v, --verbose   Verbose output
  -q, --quiet     Minimal output

Config keys (neuroportal config set KEY VALUE):
  backend.base_url, backend.query_path, backend.timeout_secs,
  backend.upload_timeout_secs, auth.remember_session, auth.last_session_id,
  ui.theme, ui.show_sources, ui.compact_mode, ui.word_wrap

Environment:
  NEUROPORTAL_BACKEND_URL, NEUROPORTAL_QUERY_PATH, NEUROPORTAL_TIMEOUT_SECS,
  NEUROPORTAL_PASSWORD, NEUROPORTAL_THEME

Examples:
  neuroportal ask --session k2j3l_ab12c "What does chapter 3 cover?"
  neuroportal ask --admin "Which documents mention kubernetes?"
  neuroportal chat --session k2j3l_ab12c
  neuroportal status k2j3l_ab12c
  neuroportal config set backend.base_url http://10.0.0.5:8000
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out for testing.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		parseAskArgs(&args, remaining)
		return CmdAsk, args

	case "chat":
		parseChatArgs(&args, remaining)
		return CmdChat, args

	case "status", "s":
		if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
			args.Session = remaining[0]
		}
		return CmdStatus, args

	case "namespaces", "ns":
		return CmdNamespaces, args

	case "config", "cfg":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "version", "--version", "-V":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		// Unknown command: treat as a question for ask, matching the
		// "just type your question" habit from the chat portal.
		args.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts flags valid for every command.
func parseGlobalFlags(argv []string) ([]string, Args) {
	args := Args{}
	var remaining []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		case "--backend":
			if i+1 < len(argv) {
				i++
				args.BackendURL = argv[i]
			}
		default:
			if v, ok := strings.CutPrefix(arg, "--backend="); ok {
				args.BackendURL = v
				continue
			}
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

// parseSessionFlags handles the flags shared by ask and chat, returning
// the positional words left over.
func parseSessionFlags(args *Args, argv []string) []string {
	var words []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "--session", "-s":
			if i+1 < len(argv) {
				i++
				args.Session = argv[i]
			}
		case "--admin", "-a":
			args.Admin = true
		default:
			if v, ok := strings.CutPrefix(arg, "--session="); ok {
				args.Session = v
				continue
			}
			words = append(words, arg)
		}
	}
	return words
}

func parseAskArgs(args *Args, argv []string) {
	words := parseSessionFlags(args, argv)
	args.Query = strings.Join(words, " ")
}

func parseChatArgs(args *Args, argv []string) {
	parseSessionFlags(args, argv)
}

func parseConfigArgs(args *Args, argv []string) {
	if len(argv) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(argv[0])
	if len(argv) > 1 {
		args.ConfigKey = argv[1]
	}
	if len(argv) > 2 {
		args.ConfigVal = strings.Join(argv[2:], " ")
	}
}

// =============================================================================
// SIMPLE HANDLERS
// =============================================================================

// HandleVersion prints version information.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf(`{"version":%q,"commit":%q,"built":%q,"go":%q,"platform":"%s/%s"}%s`,
			Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH, "\n")
		return
	}
	fmt.Printf("neuroportal %s\n", Version)
	if args.Verbose {
		fmt.Printf("  commit:   %s\n", GitCommit)
		fmt.Printf("  built:    %s\n", BuildDate)
		fmt.Printf("  go:       %s\n", runtime.Version())
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
}

// HandleHelp prints the usage text.
func HandleHelp() {
	fmt.Print(usageText)
}
