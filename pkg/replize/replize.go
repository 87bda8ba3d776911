// Package replize turns any command into an interactive REPL.
//
// Each line the user types is appended as arguments to a base command and
// run as a subprocess:
//
//	err := replize.Run(ctx, "git",
//		replize.WithTimeout(30*time.Second),
//		replize.WithPostCommandHook(func(cmd, line string, code int, stdout, stderr []byte) error {
//			log.Printf("%s %s exited %d", cmd, line, code)
//			return nil
//		}),
//	)
package replize

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/doeshing/replize-go/internal/app"
	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/infrastructure/cli"
	"github.com/doeshing/replize-go/internal/ports"
)

type (
	// ReadOutcome is what a LineReader produces: a line or a Signal.
	ReadOutcome = domain.ReadOutcome
	// Signal tags a non-line read outcome such as end-of-input.
	Signal = domain.Signal
	// LineReader supplies input lines to the session.
	LineReader = ports.LineReader
	// OutputHandler receives a non-empty stdout or stderr capture.
	OutputHandler = domain.OutputHandler
	// PreCommandHook runs before each command with the base command and line.
	PreCommandHook = domain.PreCommandHook
	// PostCommandHook runs after each command with its exit code and output.
	PostCommandHook = domain.PostCommandHook
)

const (
	SignalEndOfInput = domain.SignalEndOfInput
	SignalInterrupt  = domain.SignalInterrupt
)

var (
	// Line wraps a line of input.
	Line = domain.LineOutcome
	// SignalOutcome wraps a signal.
	SignalOutcome = domain.SignalOutcome
	// ExitSignal returns an error an OutputHandler can use to end the session
	// after the current command, when sig is one of the exit signals.
	ExitSignal = domain.ExitSignal
)

type options struct {
	configPath string
	overrides  domain.Settings
	customize  []func(*domain.Config)
	reader     LineReader
	terminal   cli.Terminal
	verbose    bool
}

// Option configures Run.
type Option func(*options)

// Run starts a REPL for command and blocks until the session ends. Options
// take precedence over the config file.
func Run(ctx context.Context, command string, opts ...Option) error {
	o := options{terminal: cli.StdTerminal()}
	for _, opt := range opts {
		opt(&o)
	}

	container, err := app.BuildContainer(ctx, app.Options{
		Command:    command,
		ConfigPath: o.configPath,
		Overrides:  o.overrides,
		Customize: func(cfg *domain.Config) {
			for _, fn := range o.customize {
				fn(cfg)
			}
		},
		Verbose:   o.verbose,
		LogWriter: o.terminal.Err,
		Stdin:     o.terminal.In,
	})
	if err != nil {
		return err
	}

	session := container.Session
	session.Reader = o.reader
	cli.Attach(session, o.terminal)
	if o.reader == nil {
		defer session.Reader.Close()
	}
	return session.Run(ctx)
}

func customize(fn func(*domain.Config)) Option {
	return func(o *options) { o.customize = append(o.customize, fn) }
}

// WithConfigFile reads settings from path instead of the default locations.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configPath = path }
}

// WithPromptTemplate sets the prompt; {command} and {count} are substituted.
func WithPromptTemplate(template string) Option {
	return func(o *options) { o.overrides.PromptTemplate = &template }
}

// WithExitCommands replaces the words that end the session.
func WithExitCommands(words ...string) Option {
	return func(o *options) { o.overrides.ExitCommands = words }
}

// WithExitSignals adds signals that end the session, on top of end-of-input
// and interrupt.
func WithExitSignals(signals ...Signal) Option {
	return customize(func(cfg *domain.Config) {
		cfg.ExitSignals = append(cfg.ExitSignals, signals...)
	})
}

// WithOnlyExitSignals replaces the exit signals with signals. Interrupt then
// only discards the current line unless it is listed. End-of-input always
// ends the session.
func WithOnlyExitSignals(signals ...Signal) Option {
	return customize(func(cfg *domain.Config) {
		cfg.ExitSignals = slices.Clone(signals)
	})
}

// WithStdoutHandler replaces the default stdout printer.
func WithStdoutHandler(h OutputHandler) Option {
	return customize(func(cfg *domain.Config) { cfg.Stdout = h })
}

// WithStderrHandler replaces the default stderr printer.
func WithStderrHandler(h OutputHandler) Option {
	return customize(func(cfg *domain.Config) { cfg.Stderr = h })
}

// WithTimeout kills commands that run longer than d. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		seconds := d.Seconds()
		o.overrides.Timeout = &seconds
	}
}

// WithLogFile appends a transcript of the session to path.
func WithLogFile(path string) Option {
	return func(o *options) { o.overrides.LogFile = &path }
}

// WithHistoryFile sets the line editing history file.
func WithHistoryFile(path string) Option {
	return func(o *options) { o.overrides.HistoryFile = &path }
}

// WithPreCommandHook registers a hook run before every command.
func WithPreCommandHook(h PreCommandHook) Option {
	return customize(func(cfg *domain.Config) {
		cfg.PreCommandHooks = append(cfg.PreCommandHooks, h)
	})
}

// WithPostCommandHook registers a hook run after every command.
func WithPostCommandHook(h PostCommandHook) Option {
	return customize(func(cfg *domain.Config) {
		cfg.PostCommandHooks = append(cfg.PostCommandHooks, h)
	})
}

// WithShowReturnCode prints non-zero exit codes.
func WithShowReturnCode() Option {
	return func(o *options) {
		show := true
		o.overrides.ShowReturnCode = &show
	}
}

// WithVerboseExit announces the end of the session.
func WithVerboseExit() Option {
	return func(o *options) {
		verbose := true
		o.overrides.VerboseExit = &verbose
	}
}

// WithoutValidation skips checking that the command exists in PATH.
func WithoutValidation() Option {
	return func(o *options) {
		validate := false
		o.overrides.ValidateCommand = &validate
	}
}

// WithPlainIO disables line editing and coloured output.
func WithPlainIO() Option {
	return func(o *options) {
		off := false
		o.overrides.EnhancedInput = &off
		o.overrides.EnhancedOutput = &off
	}
}

// WithLineReader supplies input from r. The caller keeps ownership of r.
func WithLineReader(r LineReader) Option {
	return func(o *options) { o.reader = r }
}

// WithInput reads lines from r without line editing. r is also the stdin of
// the commands.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.terminal.In = r }
}

// WithOutput sends command output and messages to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.terminal.Out = w
		o.terminal.Err = w
	}
}

// WithDebugLogging writes diagnostic logs to the error stream.
func WithDebugLogging() Option {
	return func(o *options) { o.verbose = true }
}
