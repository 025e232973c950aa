// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
	"github.com/matt-FFFFFF/cssh/internal/redirect"
	"github.com/matt-FFFFFF/cssh/internal/session"
	"github.com/matt-FFFFFF/cssh/internal/tokenize"
	"github.com/spf13/afero"
)

const maxCreateMode = 0o777

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("cannot read configuration file")
	// ErrInvalidYaml is returned when the file is not valid YAML or has unknown keys.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig is returned by Validate, joined with every problem found.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrExitCommand is returned for an exit command that is not a single plain token.
	ErrExitCommand = errors.New("exit_command must be a single token that is not a redirection operator")
	// ErrCreateMode is returned for a create mode that is not an octal permission.
	ErrCreateMode = errors.New("create_mode must be an octal permission between 0001 and 0777")
	// ErrLogLevel is returned for an unknown log level.
	ErrLogLevel = errors.New("log_level must be one of DEBUG, INFO, WARN or ERROR")
)

// Config holds the interpreter settings.
type Config struct {
	Prompt      string `yaml:"prompt"`
	ExitCommand string `yaml:"exit_command"`
	CreateMode  string `yaml:"create_mode"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:      session.DefaultPrompt,
		ExitCommand: session.DefaultExitCommand,
		CreateMode:  fmt.Sprintf("%04o", redirect.DefaultPerm),
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYaml, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if toks := tokenize.Split(c.ExitCommand); len(toks) != 1 || toks[0] != c.ExitCommand {
		result = multierror.Append(result, fmt.Errorf("%w: %q", ErrExitCommand, c.ExitCommand))
	} else if _, isOp := redirect.ParseOperator(c.ExitCommand); isOp {
		result = multierror.Append(result, fmt.Errorf("%w: %q", ErrExitCommand, c.ExitCommand))
	}

	if _, err := c.FileMode(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.LogLevel != "" {
		if _, ok := ctxlog.ParseLevel(c.LogLevel); !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrLogLevel, c.LogLevel))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// FileMode parses CreateMode.
func (c *Config) FileMode() (os.FileMode, error) {
	m, err := strconv.ParseUint(c.CreateMode, 8, 32)
	if err != nil || m == 0 || m > maxCreateMode {
		return 0, fmt.Errorf("%w: %q", ErrCreateMode, c.CreateMode)
	}

	return os.FileMode(m), nil
}

// Level returns the configured log level, if one is set and valid.
func (c *Config) Level() (slog.Level, bool) {
	if c.LogLevel == "" {
		return slog.LevelWarn, false
	}

	return ctxlog.ParseLevel(c.LogLevel)
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
