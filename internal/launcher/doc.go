// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher starts one external program, binds its standard streams and waits
// for it to finish.
//
// Failures are split by who can recover from them. ErrExec means the program could not
// be run (not found, not executable) and the caller may carry on with status 1.
// ErrSpawn and ErrWait mean the interpreter itself could not create or reap a process.
package launcher
