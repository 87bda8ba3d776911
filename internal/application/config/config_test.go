package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/replize-go/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestResolvePrecedence(t *testing.T) {
	defaults := domain.Settings{
		PromptTemplate:  ptr("{command} >>> "),
		ExitCommands:    []string{"exit", "quit"},
		EnhancedOutput:  ptr(true),
		HistoryFile:     ptr("~/.replize_history"),
		Timeout:         ptr(0.0),
		ValidateCommand: ptr(true),
	}
	file := domain.FileConfig{
		Defaults: domain.Settings{
			PromptTemplate: ptr("file> "),
			Timeout:        ptr(10.0),
		},
		Commands: map[string]domain.Settings{
			"git": {
				PromptTemplate: ptr("git> "),
				ShowReturnCode: ptr(true),
			},
			"docker": {ShowReturnCode: ptr(false)},
		},
	}
	cli := domain.Settings{Timeout: ptr(1.5)}

	cfg := Resolve("git --no-pager", defaults, file, cli)

	assert.Equal(t, "git --no-pager", cfg.Command)
	assert.Equal(t, "git> ", cfg.PromptTemplate)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.ShowReturnCode)
	assert.True(t, cfg.EnhancedOutput)
	assert.True(t, cfg.ValidateCommand)
	assert.Equal(t, []string{"exit", "quit"}, cfg.ExitCommands)
	assert.Equal(t, []domain.Signal{domain.SignalEndOfInput, domain.SignalInterrupt}, cfg.ExitSignals)
}

func TestResolveWithoutFile(t *testing.T) {
	cfg := Resolve("ls", domain.Settings{PromptTemplate: ptr("$ ")}, domain.FileConfig{}, domain.Settings{})

	assert.Equal(t, "$ ", cfg.PromptTemplate)
	assert.Zero(t, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	valid := domain.NewConfig("ls")

	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "empty command", mutate: func(c *domain.Config) { c.Command = "  " }, wantErr: true},
		{name: "empty prompt", mutate: func(c *domain.Config) { c.PromptTemplate = "" }, wantErr: true},
		{name: "blank exit word", mutate: func(c *domain.Config) { c.ExitCommands = []string{"exit", " "} }, wantErr: true},
		{name: "multi word exit", mutate: func(c *domain.Config) { c.ExitCommands = []string{"good bye"} }, wantErr: true},
		{name: "no exit words", mutate: func(c *domain.Config) { c.ExitCommands = nil }, wantErr: true},
		{name: "negative timeout", mutate: func(c *domain.Config) { c.Timeout = -time.Second }, wantErr: true},
		{
			name: "history without file",
			mutate: func(c *domain.Config) {
				c.EnhancedInput = true
				c.EnableHistory = true
				c.HistoryFile = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
