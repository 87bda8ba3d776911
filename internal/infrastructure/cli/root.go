package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/replize-go/internal/app"
	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose  bool
	Terminal Terminal
}

type rootFlags struct {
	promptTemplate string
	exitCommands   []string
	plainOutput    bool
	plainInput     bool
	historyFile    string
	noHistory      bool
	noCompletion   bool
	logFile        string
	timeout        float64
	showReturnCode bool
	noValidate     bool
	verboseExit    bool
	configPath     string
	printConfig    bool
	doctor         bool
	debug          bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Terminal.In == nil {
		opts.Terminal = StdTerminal()
	}
	var flags rootFlags

	root := &cobra.Command{
		Use:   "replize <command>",
		Short: "Turn any command into a REPL",
		Long: `replize runs <command> repeatedly, appending each line you type as arguments.

  $ replize git
  git >>> status
  git >>> log --oneline -5

Built-in words: help, ?, history, clear and !<n> to re-run history entry n.`,
		Args:          cobra.ExactArgs(1),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], flags, flags.overrides(cmd.Flags().Changed), opts)
		},
	}
	root.SetVersionTemplate(versionTemplate())
	root.SetOut(opts.Terminal.Out)
	root.SetErr(opts.Terminal.Err)

	f := root.Flags()
	f.StringVarP(&flags.promptTemplate, "prompt-template", "p", domain.DefaultPromptTemplate, "Prompt template; {command} and {count} are substituted")
	f.StringSliceVarP(&flags.exitCommands, "exit-commands", "e", domain.DefaultExitCommands, "Words that end the session")
	f.BoolVar(&flags.plainOutput, "plain-output", false, "Disable coloured output")
	f.BoolVar(&flags.plainInput, "plain-input", false, "Disable line editing")
	f.StringVar(&flags.historyFile, "history-file", "~/"+domain.DefaultHistoryFileName, "Line editing history file")
	f.BoolVar(&flags.noHistory, "no-history", false, "Do not persist line editing history")
	f.BoolVar(&flags.noCompletion, "no-completion", false, "Disable path completion")
	f.StringVarP(&flags.logFile, "log-file", "l", "", "Append a transcript of the session to this file")
	f.Float64VarP(&flags.timeout, "timeout", "t", 0, "Kill commands running longer than this many seconds (0 disables)")
	f.BoolVar(&flags.showReturnCode, "show-return-code", false, "Show non-zero exit codes")
	f.BoolVar(&flags.noValidate, "no-validate", false, "Do not check that the command exists in PATH")
	f.BoolVar(&flags.verboseExit, "verbose-exit", false, "Announce when the session ends")
	f.StringVarP(&flags.configPath, "config", "c", "", "Config file (TOML or YAML)")
	f.BoolVar(&flags.printConfig, "print-config", false, "Print the resolved configuration and exit")
	f.BoolVar(&flags.doctor, "doctor", false, "Check the command, config and files, then exit")
	f.BoolVar(&flags.debug, "debug", false, "Enable diagnostic logging to stderr")

	return root
}

// overrides converts the flags the user actually set into a settings layer so
// unset flags never shadow the config file.
func (f rootFlags) overrides(changed func(string) bool) domain.Settings {
	var s domain.Settings
	if changed("prompt-template") {
		s.PromptTemplate = &f.promptTemplate
	}
	if changed("exit-commands") {
		s.ExitCommands = f.exitCommands
	}
	if changed("plain-output") {
		enhanced := !f.plainOutput
		s.EnhancedOutput = &enhanced
	}
	if changed("plain-input") {
		enhanced := !f.plainInput
		s.EnhancedInput = &enhanced
	}
	if changed("history-file") {
		s.HistoryFile = &f.historyFile
	}
	if changed("no-history") {
		enabled := !f.noHistory
		s.EnableHistory = &enabled
	}
	if changed("no-completion") {
		enabled := !f.noCompletion
		s.EnableCompletion = &enabled
	}
	if changed("log-file") {
		s.LogFile = &f.logFile
	}
	if changed("timeout") {
		s.Timeout = &f.timeout
	}
	if changed("show-return-code") {
		s.ShowReturnCode = &f.showReturnCode
	}
	if changed("no-validate") {
		validate := !f.noValidate
		s.ValidateCommand = &validate
	}
	if changed("verbose-exit") {
		s.VerboseExit = &f.verboseExit
	}
	return s
}

func run(ctx context.Context, command string, flags rootFlags, overrides domain.Settings, opts Options) error {
	container, err := app.BuildContainer(ctx, app.Options{
		Command:    command,
		ConfigPath: flags.configPath,
		Overrides:  overrides,
		Verbose:    opts.Verbose || flags.debug,
		LogWriter:  opts.Terminal.Err,
		Stdin:      opts.Terminal.In,
	})
	if err != nil {
		return err
	}

	if flags.printConfig {
		return printConfig(opts.Terminal.Out, container.Config)
	}
	if flags.doctor {
		return runDoctor(ctx, opts.Terminal, container)
	}

	session := container.Session
	Attach(session, opts.Terminal)
	defer func() {
		if err := session.Reader.Close(); err != nil {
			container.Logger.Error("close line reader", err, nil)
		}
	}()

	return session.Run(ctx)
}

func runDoctor(ctx context.Context, t Terminal, container *app.Container) error {
	container.DoctorService.Interactive = IsTerminal(t.In) && IsTerminal(t.Out)
	report, err := container.DoctorService.Run(ctx, container.Config)

	// Display report even if there were errors
	displayHealthReport(t.Out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	return nil
}

type printedConfig struct {
	Command  string          `yaml:"command"`
	Settings domain.Settings `yaml:",inline"`
}

func printConfig(out io.Writer, cfg domain.Config) error {
	raw, err := yaml.Marshal(printedConfig{Command: cfg.Command, Settings: cfg.Settings()})
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = out.Write(raw)
	return err
}
