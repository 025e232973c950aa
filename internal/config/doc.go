// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the interpreter's optional YAML configuration file.
//
// Example:
//
//	prompt: "cssh$ "
//	exit_command: exit
//	create_mode: "0600"
//	log_level: WARN
package config
