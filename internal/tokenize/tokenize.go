// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tokenize splits an input line into argument tokens.
// There is no quoting, escaping or comment syntax: a token is any maximal run of
// characters that are not delimiters.
package tokenize

import "strings"

// Delimiters are the characters that separate tokens.
// Vertical tab is deliberately absent, so this differs from strings.Fields.
const Delimiters = " \t\r\f\n"

// IsDelimiter reports whether r separates tokens.
func IsDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// Split returns the tokens of line in order. Consecutive delimiters collapse and
// a line made only of delimiters yields an empty, non-nil slice.
func Split(line string) []string {
	return strings.FieldsFunc(line, IsDelimiter)
}
