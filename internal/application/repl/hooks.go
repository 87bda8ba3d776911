package repl

import (
	"fmt"

	"github.com/doeshing/replize-go/internal/domain"
)

// Hooks run in registration order. A failing or panicking hook is reported
// and the remaining hooks still run.

func (s *Session) runPreHooks(line string) {
	for i, hook := range s.Config.PreCommandHooks {
		err := guard(func() error { return hook(s.Config.Command, line) })
		s.hookFailed(domain.HookPreCommand, i, err)
	}
}

func (s *Session) runPostHooks(line string, result domain.ExecutionResult) {
	for i, hook := range s.Config.PostCommandHooks {
		err := guard(func() error {
			return hook(s.Config.Command, line, result.ExitCode, result.Stdout, result.Stderr)
		})
		s.hookFailed(domain.HookPostCommand, i, err)
	}
}

func (s *Session) hookFailed(stage domain.HookStage, index int, err error) {
	if err == nil {
		return
	}
	hookErr := &domain.HookError{Stage: stage, Err: err}
	s.Logger.Warn("hook failed", map[string]interface{}{"stage": string(stage), "index": index})
	s.report(hookErr)
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
