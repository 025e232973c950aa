// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package launcher

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// signalExitBase is added to the signal number of a killed child.
const signalExitBase = 128

// isExecError reports whether a start error is about the program image rather than
// about creating a process.
func isExecError(err error) bool {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return true
	}

	for _, errno := range []syscall.Errno{
		syscall.ENOEXEC,
		syscall.ENOTDIR,
		syscall.ETXTBSY,
		syscall.ENAMETOOLONG,
		syscall.ELOOP,
		syscall.EISDIR,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}

func exitStatus(ps *os.ProcessState) int {
	if ps == nil {
		return -1
	}

	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}

	return ps.ExitCode()
}
