// Package repl implements the replize session loop: read a line, dispatch
// builtins, resolve history references, run the base command with the line
// appended, and route its output.
package repl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/pkg/logger"
	"github.com/doeshing/replize-go/internal/pkg/shellwords"
	"github.com/doeshing/replize-go/internal/ports"
)

// Session owns the state of one REPL run. Fields are wired by internal/app;
// Log and Activity are optional.
type Session struct {
	ID       string
	Config   domain.Config
	Reader   ports.LineReader
	Renderer ports.Renderer
	Executor ports.CommandExecutor
	History  ports.HistoryRepository
	Clearer  ports.ScreenClearer
	Log      ports.SessionLog
	Activity ports.ActivityIndicator
	Logger   ports.Logger

	// NotifyInterrupt derives the context a running command is bound to, so
	// that an interrupt cancels the child instead of the whole program.
	// Defaults to signal.NotifyContext on os.Interrupt.
	NotifyInterrupt func(context.Context) (context.Context, context.CancelFunc)

	// OpenLog, when set and Log is nil, opens the session log once the base
	// command has been validated.
	OpenLog func() (ports.SessionLog, error)

	baseArgv []string
	counter  int
}

// Count returns the number of commands that reached the executor.
func (s *Session) Count() int {
	return s.counter
}

// Run drives the loop until an exit word, an exit signal, or a reader
// failure. Per-line problems are reported through the renderer and never end
// the session.
func (s *Session) Run(ctx context.Context) error {
	if err := s.prepare(); err != nil {
		return err
	}
	defer s.finish()

	s.Logger.Info("session started", map[string]interface{}{"command": s.Config.Command})
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ended, err := s.step(ctx)
		if err != nil {
			return err
		}
		if ended {
			return nil
		}
	}
}

func (s *Session) prepare() error {
	if s.Logger == nil {
		s.Logger = logger.NewDiscard()
	}
	if s.NotifyInterrupt == nil {
		s.NotifyInterrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		}
	}

	argv, err := shellwords.Split(s.Config.Command)
	if err != nil {
		return fmt.Errorf("parse base command: %w", err)
	}
	if len(argv) == 0 {
		return errors.New("base command must not be empty")
	}
	if s.Config.ValidateCommand {
		if _, err := s.Executor.LookPath(argv[0]); err != nil {
			return fmt.Errorf("Command '%s' not found in PATH", s.Config.Command)
		}
	}
	s.baseArgv = argv

	if s.Log == nil && s.OpenLog != nil {
		log, err := s.OpenLog()
		if err != nil {
			return fmt.Errorf("open session log: %w", err)
		}
		s.Log = log
	}
	return nil
}

func (s *Session) finish() {
	if s.Log != nil {
		if err := s.Log.Close(); err != nil {
			s.Logger.Error("close session log", err, nil)
		}
	}
	if s.Config.VerboseExit {
		s.Renderer.Message(domain.MessageSuccess, "Exiting replize")
	}
	s.Logger.Info("session ended", map[string]interface{}{"commands": s.counter})
}

// step runs one iteration of the loop and reports whether the session ended.
func (s *Session) step(ctx context.Context) (bool, error) {
	prompt := s.Config.Prompt(s.counter)
	outcome, err := s.Reader.ReadLine(ctx, prompt)
	if err != nil {
		return true, fmt.Errorf("read input: %w", err)
	}

	if outcome.IsSignal() {
		// No input can follow end-of-input, so it ends the session even
		// when it is not listed as an exit signal.
		if outcome.Signal == domain.SignalEndOfInput || s.Config.IsExitSignal(outcome.Signal) {
			s.Logger.Debug("exit signal", map[string]interface{}{"signal": outcome.Signal})
			return true, nil
		}
		return false, nil
	}

	line := strings.TrimSpace(outcome.Line)
	if line == "" {
		return false, nil
	}

	s.logInput(prompt, line)

	if s.Config.IsExitCommand(strings.Fields(line)[0]) {
		return true, nil
	}

	record := true
	switch d := s.dispatch(ctx, line); d.action {
	case builtinHandled:
		return false, nil
	case historyRewrite:
		s.Renderer.Message(domain.MessageNotice, "Re-running: "+d.line)
		line = d.line
		// A bare replay keeps pointing at the entry it came from; one with
		// extra arguments is a new command.
		record = d.extended
	}

	return s.execute(ctx, line, record)
}

// execute runs line, recording it in history when record is set, and routes
// the result. It reports whether an output handler asked to end the session.
func (s *Session) execute(ctx context.Context, line string, record bool) (bool, error) {
	args, err := shellwords.Split(line)
	if err != nil {
		s.report(err)
		return false, nil
	}

	if record {
		s.History.Append(line)
	}
	s.runPreHooks(line)

	argv := append(slices.Clone(s.baseArgv), args...)
	result, execErr := s.invoke(ctx, argv)
	defer func() { s.counter++ }()

	var timeoutErr *domain.TimeoutError
	if execErr != nil {
		s.report(execErr)
		if !errors.As(execErr, &timeoutErr) {
			return false, nil
		}
	}

	exit := s.routeOutput(result)

	if s.Config.ShowReturnCode && result.ExitCode != 0 {
		s.Renderer.Message(domain.MessageWarning, fmt.Sprintf("Return code: %d", result.ExitCode))
	}

	s.runPostHooks(line, result)
	return exit, nil
}

func (s *Session) invoke(ctx context.Context, argv []string) (domain.ExecutionResult, error) {
	runCtx, stop := s.NotifyInterrupt(ctx)
	defer stop()

	if s.Activity != nil {
		s.Activity.Start()
		defer s.Activity.Stop()
	}

	result, err := s.Executor.Execute(runCtx, argv, s.Config.Timeout)
	fields := map[string]interface{}{
		"argv":      shellwords.Join(argv),
		"exit_code": result.ExitCode,
		"duration":  result.Duration,
		"timed_out": result.TimedOut,
	}
	if err != nil {
		s.Logger.Error("command failed", err, fields)
	} else {
		s.Logger.Debug("command finished", fields)
	}
	return result, err
}

// routeOutput hands non-empty stdout then stderr to the configured handlers.
func (s *Session) routeOutput(result domain.ExecutionResult) bool {
	streams := []struct {
		data    []byte
		handler domain.OutputHandler
	}{
		{data: result.Stdout, handler: s.Config.Stdout},
		{data: result.Stderr, handler: s.Config.Stderr},
	}

	exit := false
	for _, stream := range streams {
		if len(stream.data) == 0 {
			continue
		}
		handler := stream.handler
		if handler == nil {
			handler = s.renderOutput
		}
		if err := handler(stream.data); err != nil {
			var sigErr *domain.SignalError
			if errors.As(err, &sigErr) && (sigErr.Signal == domain.SignalEndOfInput || s.Config.IsExitSignal(sigErr.Signal)) {
				exit = true
			} else {
				s.Renderer.Message(domain.MessageError, "Output handler error: "+err.Error())
			}
		}
		if s.Log != nil {
			if err := s.Log.WriteOutput(stream.data); err != nil {
				s.Logger.Error("write session log", err, nil)
			}
		}
	}
	return exit
}

func (s *Session) renderOutput(data []byte) error {
	s.Renderer.Output(string(data))
	return nil
}

func (s *Session) logInput(prompt, line string) {
	if s.Log == nil {
		return
	}
	if err := s.Log.WriteInput(prompt, line); err != nil {
		s.Logger.Error("write session log", err, nil)
	}
}

func (s *Session) report(err error) {
	s.Renderer.Message(domain.MessageError, err.Error())
}
