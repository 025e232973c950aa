// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package session runs the read, tokenize, redirect, launch and wait cycle of the
// interpreter and decides which failures end it.
//
// A Session handles one line per Step. Errors that concern a single command are
// printed as a diagnostic and the session carries on; read, spawn and wait failures
// end it.
package session
