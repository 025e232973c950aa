// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell is the root action of the CLI: it builds and runs an interpreter session.
package shell

import (
	"bytes"
	"context"
	"os"

	"github.com/matt-FFFFFF/cssh/internal/color"
	"github.com/matt-FFFFFF/cssh/internal/config"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
	"github.com/matt-FFFFFF/cssh/internal/launcher"
	"github.com/matt-FFFFFF/cssh/internal/lineinput"
	"github.com/matt-FFFFFF/cssh/internal/redirect"
	"github.com/matt-FFFFFF/cssh/internal/script"
	"github.com/matt-FFFFFF/cssh/internal/session"
	"github.com/matt-FFFFFF/cssh/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	// ConfigFlag names the YAML configuration file.
	ConfigFlag = "config"
	fileFlag   = "file"
	promptFlag = "prompt"
	noTTYFlag  = "no-tty"
	cliExitStr = ""

	// NoColorFlag disables ANSI colour in diagnostics and logs.
	NoColorFlag = "no-color"
	// LogFormatFlag selects the log output format, pretty or json.
	LogFormatFlag = "log-format"
)

// NewFlags returns the root command's flags.
func NewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      ConfigFlag,
			Aliases:   []string{"c"},
			Usage:     "Path of a YAML configuration file",
			TakesFile: true,
			Sources:   cli.EnvVars("CSSH_CONFIG"),
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Run the commands in a script instead of reading standard input. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     promptFlag,
			Usage:    "Prompt written before each line is read",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        noTTYFlag,
			Usage:       "Read lines without terminal line editing even when attached to a terminal",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        NoColorFlag,
			Usage:       "Disable coloured diagnostics and logs",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     LogFormatFlag,
			Usage:    "Log output format: pretty or json",
			Value:    ctxlog.FormatPretty,
			Sources:  cli.EnvVars("CSSH_LOG_FORMAT"),
			OnlyOnce: true,
		},
	}
}

// LoadConfig reads the configuration file named by the flags and applies flag overrides.
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(ConfigFlag))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(promptFlag) {
		cfg.Prompt = cmd.String(promptFlag)
	}

	return cfg, nil
}

// Action runs the interpreter until end of input, the exit command or a fatal error.
func Action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool(NoColorFlag) {
		color.SetEnabled(false)
	}

	base, ok := ctxlog.ForFormat(cmd.String(LogFormatFlag))
	if !ok {
		ctxlog.Error(ctx, "unknown log format", "format", cmd.String(LogFormatFlag))
		return cli.Exit(cliExitStr, 1)
	}

	ctx = ctxlog.New(ctx, base)
	logger := base.With("command", cmd.Name)

	cfg, err := LoadConfig(cmd)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	if level, ok := cfg.Level(); ok {
		ctxlog.LevelVar.Set(level)
	}

	perm, err := cfg.FileMode()
	if err != nil {
		logger.Error("invalid create mode", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	opts := session.Options{
		Prompt:      cfg.Prompt,
		ExitCommand: cfg.ExitCommand,
		Opener:      redirect.NewOpener(perm),
		Launcher:    launcher.New(),
		Stderr:      os.Stderr,
	}

	if w, ok := signalbroker.FromContext(ctx); ok {
		opts.Signals = w
	}

	reader, err := newReader(ctx, cmd, &opts)
	if err != nil {
		logger.Error("failed to open input", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	defer reader.Close() //nolint:errcheck

	opts.Reader = reader
	s := session.New(opts)

	if err := s.Run(ctx); err != nil {
		logger.Debug("session ended with error", "error", err, "lastStatus", s.LastStatus())
		return cli.Exit(cliExitStr, 1)
	}

	logger.Debug("session ended", "lastStatus", s.LastStatus())

	return nil
}

// newReader picks the line source: a fetched script, terminal line editing, or plain
// buffered standard input.
func newReader(ctx context.Context, cmd *cli.Command, opts *session.Options) (lineinput.Reader, error) {
	if u := cmd.String(fileFlag); u != "" {
		b, err := script.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}

		opts.NoPrompt = true

		return lineinput.NewBufio(bytes.NewReader(b), nil), nil
	}

	if !cmd.Bool(noTTYFlag) && lineinput.IsTerminal(os.Stdin, os.Stdout) {
		ctxlog.Debug(ctx, "using terminal line editing")
		return lineinput.NewLiner(), nil
	}

	return lineinput.NewBufio(os.Stdin, os.Stdout), nil
}
