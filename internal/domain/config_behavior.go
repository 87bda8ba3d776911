package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// NewConfig returns a Config for command carrying the settings that cannot be
// expressed in a config file. File-expressible defaults are layered on top by
// the config resolver.
func NewConfig(command string) Config {
	return Config{
		Command:        command,
		PromptTemplate: DefaultPromptTemplate,
		ExitCommands:   slices.Clone(DefaultExitCommands),
		ExitSignals:    []Signal{SignalEndOfInput, SignalInterrupt},
	}
}

// Prompt renders the prompt template for the given command counter.
// Supported placeholders are {command} and {count}.
func (c Config) Prompt(count int) string {
	r := strings.NewReplacer(
		"{command}", c.Command,
		"{count}", strconv.Itoa(count),
	)
	return r.Replace(c.PromptTemplate)
}

// IsExitCommand reports whether word ends the session.
func (c Config) IsExitCommand(word string) bool {
	return slices.Contains(c.ExitCommands, word)
}

// IsExitSignal reports whether a reader or output handler signal ends the session.
func (c Config) IsExitSignal(sig Signal) bool {
	return slices.Contains(c.ExitSignals, sig)
}

// Apply overlays every non-nil field of s onto a copy of c.
func (c Config) Apply(s Settings) Config {
	if s.PromptTemplate != nil {
		c.PromptTemplate = *s.PromptTemplate
	}
	if s.ExitCommands != nil {
		c.ExitCommands = slices.Clone(s.ExitCommands)
	}
	if s.EnhancedOutput != nil {
		c.EnhancedOutput = *s.EnhancedOutput
	}
	if s.EnhancedInput != nil {
		c.EnhancedInput = *s.EnhancedInput
	}
	if s.HistoryFile != nil {
		c.HistoryFile = *s.HistoryFile
	}
	if s.EnableHistory != nil {
		c.EnableHistory = *s.EnableHistory
	}
	if s.EnableCompletion != nil {
		c.EnableCompletion = *s.EnableCompletion
	}
	if s.Timeout != nil {
		c.Timeout = secondsToDuration(*s.Timeout)
	}
	if s.LogFile != nil {
		c.LogFile = *s.LogFile
	}
	if s.VerboseExit != nil {
		c.VerboseExit = *s.VerboseExit
	}
	if s.ShowReturnCode != nil {
		c.ShowReturnCode = *s.ShowReturnCode
	}
	if s.ValidateCommand != nil {
		c.ValidateCommand = *s.ValidateCommand
	}
	return c
}

// Settings flattens the file-expressible part of c into a fully populated layer.
func (c Config) Settings() Settings {
	timeout := c.Timeout.Seconds()
	return Settings{
		PromptTemplate:   &c.PromptTemplate,
		ExitCommands:     slices.Clone(c.ExitCommands),
		EnhancedOutput:   &c.EnhancedOutput,
		EnhancedInput:    &c.EnhancedInput,
		HistoryFile:      &c.HistoryFile,
		EnableHistory:    &c.EnableHistory,
		EnableCompletion: &c.EnableCompletion,
		Timeout:          &timeout,
		LogFile:          &c.LogFile,
		VerboseExit:      &c.VerboseExit,
		ShowReturnCode:   &c.ShowReturnCode,
		ValidateCommand:  &c.ValidateCommand,
	}
}

// SettingsFor returns the file layers that apply to command, defaults first.
// A commands block is looked up by the exact base command and then by its
// program name, so "git --no-pager" picks up [commands.git].
func (f FileConfig) SettingsFor(command string) []Settings {
	layers := []Settings{f.Defaults}
	if s, ok := f.Commands[command]; ok {
		return append(layers, s)
	}
	if fields := strings.Fields(command); len(fields) > 0 {
		if s, ok := f.Commands[fields[0]]; ok {
			layers = append(layers, s)
		}
	}
	return layers
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
