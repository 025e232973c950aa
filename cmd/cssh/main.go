// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the cssh command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/cssh"
	"github.com/matt-FFFFFF/cssh/cmd/cssh/config"
	"github.com/matt-FFFFFF/cssh/cmd/cssh/shell"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
	"github.com/matt-FFFFFF/cssh/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		config.ConfigCmd,
	},
	Flags:     shell.NewFlags(),
	Action:    shell.Action,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "cssh",
	Description: `cssh is a minimal command interpreter. It reads one command per line,
splits it on whitespace, applies '<', '>' and '>>' redirections and runs the program,
waiting for it to finish before reading the next line.

There is no quoting, no pipelines and no variable expansion. The first token of
a line names the program, which is looked up on PATH. 'exit' ends the session.`,
	Usage:     "cssh [--file script.cssh]",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancelCause(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel(nil)

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	watchdog := signalbroker.NewWatchdog()
	ctx = signalbroker.NewContext(ctx, watchdog)

	go watchdog.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", cssh.Version, cssh.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("session terminated due to cancellation", "error", context.Cause(ctx))
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Debug("command execution failed", "error", err)
		os.Exit(1)
	}
}
