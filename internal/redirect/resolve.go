// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package redirect

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrDuplicateOperator is the parent of both duplicate errors below.
	ErrDuplicateOperator = errors.New("duplicate redirection")
	// ErrDuplicateInput is returned for a second '<' in one command.
	ErrDuplicateInput = fmt.Errorf("%w: only one '<' is allowed", ErrDuplicateOperator)
	// ErrDuplicateOutput is returned for a second '>' or '>>' in one command.
	ErrDuplicateOutput = fmt.Errorf("%w: only one of '>' or '>>' is allowed", ErrDuplicateOperator)
	// ErrMissingTarget is returned when an operator is not followed by a file name.
	ErrMissingTarget = errors.New("missing redirection target")
)

// Kind is the direction and mode of a redirection.
type Kind int

const (
	// Input reads standard input from the target.
	Input Kind = iota
	// OutputTruncate writes standard output to the target after emptying it.
	OutputTruncate
	// OutputAppend writes standard output at the end of the target.
	OutputAppend
)

var operators = map[string]Kind{
	"<":  Input,
	">":  OutputTruncate,
	">>": OutputAppend,
}

// ParseOperator maps an operator token to its Kind.
func ParseOperator(token string) (Kind, bool) {
	k, ok := operators[token]
	return k, ok
}

// String returns the operator spelling.
func (k Kind) String() string {
	switch k {
	case Input:
		return "<"
	case OutputTruncate:
		return ">"
	case OutputAppend:
		return ">>"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsOutput reports whether k redirects standard output.
func (k Kind) IsOutput() bool {
	return k == OutputTruncate || k == OutputAppend
}

// Flags returns the os.OpenFile flags used for the target.
func (k Kind) Flags() int {
	switch k {
	case OutputTruncate:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case OutputAppend:
		return os.O_RDWR | os.O_CREATE | os.O_APPEND
	default:
		return os.O_RDONLY
	}
}

// Directive is one operator together with its target path.
type Directive struct {
	Kind Kind
	Path string
}

func (d Directive) String() string {
	return d.Kind.String() + " " + d.Path
}

// Plan is a command line with its redirections taken out.
type Plan struct {
	// Args is the argument vector for the program, in original order.
	Args []string
	// Directives are listed in the order they appeared.
	Directives []Directive
}

// Input returns the input directive, if any.
func (p *Plan) Input() (Directive, bool) {
	for _, d := range p.Directives {
		if d.Kind == Input {
			return d, true
		}
	}

	return Directive{}, false
}

// Output returns the output directive, if any.
func (p *Plan) Output() (Directive, bool) {
	for _, d := range p.Directives {
		if d.Kind.IsOutput() {
			return d, true
		}
	}

	return Directive{}, false
}

// Resolve scans tokens left to right and splits them into program arguments and
// redirection directives. At most one input and one output directive are accepted.
// The tokens slice is not modified.
func Resolve(tokens []string) (*Plan, error) {
	plan := &Plan{
		Args: make([]string, 0, len(tokens)),
	}

	var haveInput, haveOutput bool

	for i := 0; i < len(tokens); i++ {
		kind, ok := ParseOperator(tokens[i])
		if !ok {
			plan.Args = append(plan.Args, tokens[i])
			continue
		}

		switch {
		case kind == Input && haveInput:
			return nil, ErrDuplicateInput
		case kind.IsOutput() && haveOutput:
			return nil, ErrDuplicateOutput
		}

		if i+1 >= len(tokens) {
			return nil, fmt.Errorf("%w after '%s'", ErrMissingTarget, kind)
		}

		if next, isOp := ParseOperator(tokens[i+1]); isOp {
			return nil, fmt.Errorf("%w: unexpected '%s' after '%s'", ErrMissingTarget, next, kind)
		}

		if kind == Input {
			haveInput = true
		} else {
			haveOutput = true
		}

		plan.Directives = append(plan.Directives, Directive{Kind: kind, Path: tokens[i+1]})
		i++
	}

	return plan, nil
}
