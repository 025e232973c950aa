// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config implements the command that prints the effective configuration.
package config

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cssh/cmd/cssh/shell"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// ConfigCmd prints the configuration that the interpreter would run with.
var ConfigCmd = &cli.Command{
	Name:  "config",
	Usage: "Print the effective configuration as YAML",
	Description: `Print the configuration after applying the file given with --config
and any overriding flags. The output can be saved and used as a configuration file.`,
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := shell.LoadConfig(cmd)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	out, err := cfg.YAML()
	if err != nil {
		logger.Error("failed to render configuration", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	_, err = fmt.Fprint(cmd.Root().Writer, string(out))

	return err
}
