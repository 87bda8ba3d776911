package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/pkg/logger"
)

const tomlConfig = `
[defaults]
prompt_template = "[{count}] {command}> "
timeout = 5

[commands.git]
show_return_code = true
exit_commands = ["q"]
`

const yamlConfig = `
defaults:
  enhanced_output: false
  timeout: 2.5
commands:
  docker:
    log_file: ~/docker.log
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	return home
}

func TestLoadTOML(t *testing.T) {
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "replize.toml"), tomlConfig)

	cfg, err := NewFileLoader(path, logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.PromptTemplate)
	assert.Equal(t, "[{count}] {command}> ", *cfg.Defaults.PromptTemplate)
	require.NotNil(t, cfg.Defaults.Timeout)
	assert.Equal(t, 5.0, *cfg.Defaults.Timeout)
	assert.Nil(t, cfg.Defaults.EnhancedOutput)

	git := cfg.Commands["git"]
	require.NotNil(t, git.ShowReturnCode)
	assert.True(t, *git.ShowReturnCode)
	assert.Equal(t, []string{"q"}, git.ExitCommands)
}

func TestLoadYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "replize.yml"), yamlConfig)

	cfg, err := NewFileLoader(path, logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.EnhancedOutput)
	assert.False(t, *cfg.Defaults.EnhancedOutput)
	require.NotNil(t, cfg.Defaults.Timeout)
	assert.Equal(t, 2.5, *cfg.Defaults.Timeout)
	require.NotNil(t, cfg.Commands["docker"].LogFile)
	assert.Equal(t, "~/docker.log", *cfg.Commands["docker"].LogFile)
}

func TestLoadUnknownFormatIsIgnored(t *testing.T) {
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "replize.json"), `{"defaults": {}}`)

	cfg, err := NewFileLoader(path, logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FileConfig{}, cfg)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	isolate(t)

	_, err := NewFileLoader(filepath.Join(t.TempDir(), "nope.toml"), logger.NewDiscard()).Load(context.Background())
	assert.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "bad.toml"), "[defaults\ntimeout = ")

	_, err := NewFileLoader(path, logger.NewDiscard()).Load(context.Background())
	assert.Error(t, err)
}

func TestLoadWithoutAnyFile(t *testing.T) {
	isolate(t)

	cfg, err := NewFileLoader("", logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FileConfig{}, cfg)
}

func TestLoadProbesDefaultPaths(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "replize", "config.yaml"), yamlConfig)
	writeFile(t, filepath.Join(home, ".replizerc"), tomlConfig)

	cfg, err := NewFileLoader("", logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)

	// ~/.replizerc comes first and is read as TOML.
	require.NotNil(t, cfg.Defaults.PromptTemplate)
	assert.Contains(t, cfg.Commands, "git")
}

func TestLoadHonoursEnvironment(t *testing.T) {
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "env.yaml"), yamlConfig)
	t.Setenv(EnvConfigPath, path)

	cfg, err := NewFileLoader("", logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cfg.Commands, "docker")
}

func TestLoadExpandsHome(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "cfg", "r.toml"), tomlConfig)

	cfg, err := NewFileLoader("~/cfg/r.toml", logger.NewDiscard()).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cfg.Commands, "git")
}

func TestDefaults(t *testing.T) {
	defaults, err := Defaults()
	require.NoError(t, err)

	resolved := domain.Config{Command: "ls"}.Apply(defaults)
	assert.Equal(t, domain.DefaultPromptTemplate, resolved.PromptTemplate)
	assert.Equal(t, domain.DefaultExitCommands, resolved.ExitCommands)
	assert.True(t, resolved.EnhancedOutput)
	assert.True(t, resolved.EnhancedInput)
	assert.True(t, resolved.EnableHistory)
	assert.True(t, resolved.EnableCompletion)
	assert.True(t, resolved.ValidateCommand)
	assert.False(t, resolved.ShowReturnCode)
	assert.Zero(t, resolved.Timeout)
	assert.Equal(t, "~/"+domain.DefaultHistoryFileName, resolved.HistoryFile)
}
