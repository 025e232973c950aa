// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for the log handler and the
// interpreter's own diagnostics.
// Colour is disabled when NO_COLOR is set, forced on by FORCE_COLOR, and otherwise
// enabled only when stderr is a terminal (golang.org/x/term). Child programs never
// see these codes: they are only applied to text the interpreter writes itself.
package color
