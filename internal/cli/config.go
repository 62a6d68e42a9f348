// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration command handler.
//
// Command: config [show|get|set|path]
//
// Examples:
//   neuroportal config              Show current configuration
//   neuroportal config get backend.base_url
//   neuroportal config set backend.base_url http://10.0.0.5:8000
//   neuroportal config path         Show config file location
package cli

import (
	"fmt"

	"github.com/jeranaias/neuroportal-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		handleConfigShow()
	case "get":
		handleConfigGet(args)
	case "set":
		handleConfigSet(args)
	case "path":
		handleConfigPath()
	default:
		exitErr(fmt.Errorf("unknown config subcommand %q; use show, get, set, or path", args.Subcommand))
	}
}

func handleConfigShow() {
	cfg := config.Global()
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if key == "auth.portal_password" {
			value = "[REDACTED]"
		}
		fmt.Printf("%-28s = %v\n", key, value)
	}
}

func handleConfigGet(args Args) {
	if args.ConfigKey == "" {
		exitErr(fmt.Errorf("usage: neuroportal config get KEY"))
	}
	cfg := config.Global()
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		exitErr(err)
	}
	if args.ConfigKey == "auth.portal_password" {
		value = "[REDACTED]"
	}
	fmt.Printf("%v\n", value)
}

func handleConfigSet(args Args) {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		exitErr(fmt.Errorf("usage: neuroportal config set KEY VALUE"))
	}
	cfg := config.Global()
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		exitErr(err)
	}
	if err := cfg.Validate(); err != nil {
		exitErr(err)
	}
	if err := config.Save(cfg); err != nil {
		exitErr(err)
	}
	fmt.Printf("%s = %s\n", args.ConfigKey, args.ConfigVal)
}

func handleConfigPath() {
	path, err := config.ConfigPathTOML()
	if err != nil {
		exitErr(err)
	}
	fmt.Println(path)
}
