// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

// State is the position of a Session within one cycle.
type State int

const (
	// Idle is between cycles.
	Idle State = iota
	// Reading is waiting for a line.
	Reading
	// EmptyLine means the line held no tokens.
	EmptyLine
	// Parsed means the line has been tokenized.
	Parsed
	// Terminate means the exit command was seen.
	Terminate
	// Spawning means a child is being created.
	Spawning
	// Spawned means the child exists.
	Spawned
	// WaitingForChild means the session is blocked until the child exits.
	WaitingForChild
	// Exit is terminal.
	Exit
)

var stateNames = [...]string{
	Idle:            "Idle",
	Reading:         "Reading",
	EmptyLine:       "EmptyLine",
	Parsed:          "Parsed",
	Terminate:       "Terminate",
	Spawning:        "Spawning",
	Spawned:         "Spawned",
	WaitingForChild: "WaitingForChild",
	Exit:            "Exit",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}

	return stateNames[s]
}
