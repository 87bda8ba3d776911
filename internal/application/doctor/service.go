package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/pkg/filesystem"
	"github.com/doeshing/replize-go/internal/pkg/shellwords"
	"github.com/doeshing/replize-go/internal/ports"
)

// Service runs environment diagnostics for a replize session.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Executor       ports.CommandExecutor
	// Interactive reports whether stdin and stdout are a terminal.
	Interactive bool
}

// Run checks that cfg can drive a session and returns a report. The error
// is non-nil when at least one check failed.
func (s *Service) Run(ctx context.Context, cfg domain.Config) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	if _, err := s.ConfigProvider.Load(ctx); err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
	} else {
		checks = append(checks, ok("Config file", "loaded"))
	}

	checks = append(checks, s.commandCheck(cfg))
	checks = append(checks, historyCheck(cfg))
	checks = append(checks, logCheck(cfg))
	checks = append(checks, s.terminalCheck(cfg))

	report := domain.HealthReport{Checks: checks}
	if report.Failed() {
		return report, fmt.Errorf("diagnostics found problems")
	}
	return report, nil
}

func (s *Service) commandCheck(cfg domain.Config) domain.HealthCheck {
	argv, err := shellwords.Split(cfg.Command)
	if err != nil {
		return fail("Command", err.Error())
	}
	if len(argv) == 0 {
		return fail("Command", "empty base command")
	}
	path, err := s.Executor.LookPath(argv[0])
	if err != nil {
		if !cfg.ValidateCommand {
			return warn("Command", fmt.Sprintf("%s not found in PATH (validation disabled)", argv[0]))
		}
		return fail("Command", fmt.Sprintf("%s not found in PATH", argv[0]))
	}
	return ok("Command", path)
}

func historyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.EnhancedInput || !cfg.EnableHistory {
		return ok("History file", "disabled")
	}
	details, err := checkWritable(filesystem.ExpandPath(cfg.HistoryFile))
	if err != nil {
		return warn("History file", err.Error())
	}
	return ok("History file", details)
}

func logCheck(cfg domain.Config) domain.HealthCheck {
	if cfg.LogFile == "" {
		return ok("Session log", "disabled")
	}
	details, err := checkWritable(filesystem.ExpandPath(cfg.LogFile))
	if err != nil {
		return fail("Session log", err.Error())
	}
	return ok("Session log", details)
}

func (s *Service) terminalCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.EnhancedInput {
		return ok("Terminal", "plain input requested")
	}
	if !s.Interactive {
		return warn("Terminal", "not a terminal, plain input will be used")
	}
	return ok("Terminal", "line editing available")
}

// checkWritable reports whether path can be appended to, or created when it
// does not exist yet. It never creates files or directories.
func checkWritable(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", path)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return "", err
		}
		return path, f.Close()
	case !errors.Is(err, fs.ErrNotExist):
		return "", err
	}

	dir := filepath.Dir(path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", dir)
			}
			return path + " (will be created)", nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no existing parent directory for %s", path)
		}
		dir = parent
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
