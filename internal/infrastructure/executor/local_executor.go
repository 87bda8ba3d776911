package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/ports"
)

// LocalExecutor runs commands directly on the host, without a shell.
type LocalExecutor struct {
	stdin     io.Reader
	waitDelay time.Duration
}

// NewLocalExecutor builds a new executor. stdin is handed to every child
// (nil means the null device); waitDelay defaults to domain.DefaultWaitDelay.
func NewLocalExecutor(stdin io.Reader, waitDelay time.Duration) *LocalExecutor {
	if waitDelay <= 0 {
		waitDelay = domain.DefaultWaitDelay
	}
	return &LocalExecutor{stdin: stdin, waitDelay: waitDelay}
}

// LookPath resolves program on PATH.
func (e *LocalExecutor) LookPath(program string) (string, error) {
	return exec.LookPath(program)
}

// Execute implements ports.CommandExecutor. A non-zero exit status is not an
// error; it is reported through ExecutionResult.ExitCode.
func (e *LocalExecutor) Execute(ctx context.Context, argv []string, timeout time.Duration) (domain.ExecutionResult, error) {
	if len(argv) == 0 {
		return domain.ExecutionResult{ExitCode: -1}, &domain.ExecutionError{Err: errors.New("empty command line")}
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	c.Stdin = e.stdin
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = e.waitDelay

	var killed atomic.Bool
	c.Cancel = func() error {
		killed.Store(true)
		return c.Process.Kill()
	}

	start := time.Now()
	err := c.Run()

	result := domain.ExecutionResult{
		Argv:     argv,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Killed:   killed.Load(),
		Duration: time.Since(start),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}
	if err == nil {
		return result, nil
	}

	if isNotFound(err) {
		return result, &domain.CommandNotFoundError{Argv: argv, Err: err}
	}
	if runCtx.Err() != nil {
		if ctx.Err() == nil {
			result.TimedOut = true
			return result, &domain.TimeoutError{Timeout: timeout}
		}
		return result, &domain.ExecutionError{Err: fmt.Errorf("command interrupted: %w", ctx.Err())}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}
	return result, &domain.ExecutionError{Err: err}
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
