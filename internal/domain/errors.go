package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidHistoryReference marks a !<n> reference that cannot be resolved.
var ErrInvalidHistoryReference = errors.New("invalid history reference")

// HistoryReferenceError describes a !<n> reference that is non-numeric or out of range.
type HistoryReferenceError struct {
	Reference  string
	Index      int
	OutOfRange bool
}

func (e *HistoryReferenceError) Error() string {
	if e.OutOfRange {
		return fmt.Sprintf("History index out of range: %d", e.Index)
	}
	return fmt.Sprintf("Invalid history reference: %s", e.Reference)
}

func (e *HistoryReferenceError) Unwrap() error {
	return ErrInvalidHistoryReference
}

// CommandNotFoundError is returned when the executable cannot be resolved.
type CommandNotFoundError struct {
	Argv []string
	Err  error
}

func (e *CommandNotFoundError) Error() string {
	return "Command not found: " + strings.Join(e.Argv, " ")
}

func (e *CommandNotFoundError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when a command exceeds its wall-clock budget.
// The accompanying ExecutionResult still carries the partial output.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Command timed out after %s", e.Timeout)
}

// ExecutionError wraps any other spawn or wait failure.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return "Error executing command: " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// HookStage names where a hook ran.
type HookStage string

const (
	HookPreCommand  HookStage = "Pre-command"
	HookPostCommand HookStage = "Post-command"
)

// HookError wraps a failing (or panicking) hook.
type HookError struct {
	Stage HookStage
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook error: %v", e.Stage, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// SignalError lets an output handler raise a signal. When the signal is in
// the configured exit set the session ends after the current command.
type SignalError struct {
	Signal Signal
}

func (e *SignalError) Error() string {
	return "signal: " + string(e.Signal)
}

// ExitSignal builds a SignalError for sig.
func ExitSignal(sig Signal) error {
	return &SignalError{Signal: sig}
}
