// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package redirect recognises the redirection operators of a command line and
// opens the files they name.
//
// Resolve is pure: it validates the operators and strips them, together with their
// targets, from the argument vector. Opener then opens the targets so the launcher can
// hand them to the child as its standard input and output. The interpreter's own
// standard streams are never rebound.
//
// Operators are only recognised as whole tokens:
//
//	<   read standard input from a file
//	>   write standard output to a file, truncating it
//	>>  write standard output to a file, appending to it
package redirect
