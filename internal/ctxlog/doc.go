// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger for the interpreter.
// It uses the slog package for structured logging and supports different log levels.
//
// The default is a pretty console handler writing to stderr, so that log lines never
// end up in the output of a command or in a redirection target.
// The level is read from the CSSH_LOG_LEVEL environment variable and defaults to WARN.
package ctxlog
