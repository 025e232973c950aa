// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package launcher

import (
	"errors"
	"io/fs"
	"os"
)

func isExecError(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}

func exitStatus(ps *os.ProcessState) int {
	if ps == nil {
		return -1
	}

	return ps.ExitCode()
}
