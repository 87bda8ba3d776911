package domain

import "time"

// Config is the resolved configuration of a single replize session.
// It is built once before the loop starts and never mutated afterwards.
type Config struct {
	Command          string
	PromptTemplate   string
	ExitCommands     []string
	ExitSignals      []Signal
	EnhancedOutput   bool
	EnhancedInput    bool
	HistoryFile      string
	EnableHistory    bool
	EnableCompletion bool
	Timeout          time.Duration
	LogFile          string
	VerboseExit      bool
	ShowReturnCode   bool
	ValidateCommand  bool

	Stdout           OutputHandler
	Stderr           OutputHandler
	PreCommandHooks  []PreCommandHook
	PostCommandHooks []PostCommandHook
}

// FileConfig mirrors a replize config file (TOML or YAML).
type FileConfig struct {
	Defaults Settings            `toml:"defaults" yaml:"defaults"`
	Commands map[string]Settings `toml:"commands" yaml:"commands"`
}

// Settings is one layer of file-expressible options. Nil fields leave the
// underlying layer untouched when merged.
type Settings struct {
	PromptTemplate   *string  `toml:"prompt_template" yaml:"prompt_template,omitempty"`
	ExitCommands     []string `toml:"exit_commands" yaml:"exit_commands,omitempty"`
	EnhancedOutput   *bool    `toml:"enhanced_output" yaml:"enhanced_output,omitempty"`
	EnhancedInput    *bool    `toml:"enhanced_input" yaml:"enhanced_input,omitempty"`
	HistoryFile      *string  `toml:"history_file" yaml:"history_file,omitempty"`
	EnableHistory    *bool    `toml:"enable_history" yaml:"enable_history,omitempty"`
	EnableCompletion *bool    `toml:"enable_completion" yaml:"enable_completion,omitempty"`
	Timeout          *float64 `toml:"timeout" yaml:"timeout,omitempty"`
	LogFile          *string  `toml:"log_file" yaml:"log_file,omitempty"`
	VerboseExit      *bool    `toml:"verbose_exit" yaml:"verbose_exit,omitempty"`
	ShowReturnCode   *bool    `toml:"show_return_code" yaml:"show_return_code,omitempty"`
	ValidateCommand  *bool    `toml:"validate_command" yaml:"validate_command,omitempty"`
}
