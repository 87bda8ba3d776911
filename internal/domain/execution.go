package domain

import "time"

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Argv     []string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	TimedOut bool
	Killed   bool
	Duration time.Duration
}

// OutputHandler receives captured stdout or stderr bytes. Returning a
// *SignalError whose signal is an exit signal ends the session.
type OutputHandler func(data []byte) error

// PreCommandHook runs before a command executes.
type PreCommandHook func(command, line string) error

// PostCommandHook runs after a command completes.
type PostCommandHook func(command, line string, exitCode int, stdout, stderr []byte) error
