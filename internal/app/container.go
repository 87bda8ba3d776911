package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	appconfig "github.com/doeshing/replize-go/internal/application/config"
	"github.com/doeshing/replize-go/internal/application/doctor"
	"github.com/doeshing/replize-go/internal/application/repl"
	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/infrastructure/config"
	"github.com/doeshing/replize-go/internal/infrastructure/executor"
	"github.com/doeshing/replize-go/internal/infrastructure/history"
	"github.com/doeshing/replize-go/internal/infrastructure/sessionlog"
	"github.com/doeshing/replize-go/internal/pkg/logger"
	"github.com/doeshing/replize-go/internal/ports"
)

// Options describes how to build a session.
type Options struct {
	// Command is the base command every line is appended to.
	Command string
	// ConfigPath overrides config file discovery.
	ConfigPath string
	// Overrides is the highest-precedence settings layer, usually the CLI
	// flags that were set explicitly.
	Overrides domain.Settings
	// Customize adjusts the resolved config with values no file can express,
	// such as hooks, output handlers and extra exit signals.
	Customize func(*domain.Config)
	// Verbose enables debug logging to LogWriter (stderr by default).
	Verbose   bool
	LogWriter io.Writer
	// Stdin is handed to child processes.
	Stdin io.Reader
}

// Container wires up the session with infrastructure adapters. Terminal
// adapters (reader, renderer, clearer) are attached by the caller.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	Session        *repl.Session
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	Logger         *logger.Logger
}

// BuildContainer resolves configuration and constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	logWriter := opts.LogWriter
	if logWriter == nil {
		logWriter = os.Stderr
	}
	log := logger.New(logWriter, opts.Verbose)

	cfgLoader := config.NewFileLoader(opts.ConfigPath, log)
	cfg, err := ResolveConfig(ctx, cfgLoader, opts.Command, opts.Overrides)
	if err != nil {
		return nil, err
	}
	if opts.Customize != nil {
		opts.Customize(&cfg)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	sessionID := id.String()
	log = log.With(map[string]interface{}{"session_id": sessionID})

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	historyStore := history.NewSessionStore()
	localExecutor := executor.NewLocalExecutor(stdin, domain.DefaultWaitDelay)

	session := &repl.Session{
		ID:       sessionID,
		Config:   cfg,
		Executor: localExecutor,
		History:  historyStore,
		Logger:   log,
	}
	if cfg.LogFile != "" {
		session.OpenLog = func() (ports.SessionLog, error) {
			fileLog, err := sessionlog.Open(cfg.LogFile, cfg.Command, sessionID)
			if err != nil {
				return nil, err
			}
			log.Debug("session log opened", map[string]interface{}{"path": fileLog.Path()})
			return fileLog, nil
		}
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Executor:       localExecutor,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		Session:        session,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		Logger:         log,
	}, nil
}

// ResolveConfig layers the built-in defaults, the config file and overrides
// for command.
func ResolveConfig(ctx context.Context, provider ports.ConfigProvider, command string, overrides domain.Settings) (domain.Config, error) {
	defaults, err := config.Defaults()
	if err != nil {
		return domain.Config{}, err
	}
	file, err := provider.Load(ctx)
	if err != nil {
		return domain.Config{}, err
	}
	return appconfig.Resolve(command, defaults, file, overrides), nil
}
