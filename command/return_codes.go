// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

// Success indicates a successful command execution.
const Success int = 0

// The following error group is intended for issues within the command's execution.
const (
	// FlagParseError indicates that a command was unable to successfully parse the flags/arguments provided to it.
	FlagParseError int = iota + 16

	// ConfigError indicates that there was an error in the scrub configuration.
	ConfigError

	// SetupError is returned when errors are encountered while setting up prerequisites for an agent run; e.g.
	// input and output files.
	SetupError
)

// The following error group is intended for issues with the agent.
const (
	// AgentExecutionError is returned when the agent returns an error to the calling command.
	AgentExecutionError int = iota + 32
)
