package cli

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTerminal struct {
	out, err bytes.Buffer
}

func (tt *testTerminal) terminal(input string) Terminal {
	return Terminal{In: strings.NewReader(input), Out: &tt.out, Err: &tt.err}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REPLIZE_CONFIG", "")
}

func execute(t *testing.T, input string, args ...string) (*testTerminal, error) {
	t.Helper()
	tt := &testTerminal{}
	root := NewRootCmd(Options{Terminal: tt.terminal(input)})
	root.SetArgs(args)
	return tt, root.ExecuteContext(context.Background())
}

func TestRootRequiresCommand(t *testing.T) {
	isolate(t)

	_, err := execute(t, "")
	assert.Error(t, err)

	_, err = execute(t, "", "ls", "extra")
	assert.Error(t, err)
}

func TestRootPrintConfig(t *testing.T) {
	isolate(t)

	tt, err := execute(t, "", "git", "--print-config", "--timeout", "2.5", "-e", "q,bye", "--plain-output")
	require.NoError(t, err)

	out := tt.out.String()
	assert.Contains(t, out, "command: git")
	assert.Contains(t, out, "timeout: 2.5")
	assert.Contains(t, out, "- q\n")
	assert.Contains(t, out, "- bye\n")
	assert.Contains(t, out, "enhanced_output: false")
	assert.Contains(t, out, "enhanced_input: true")
}

func TestRootRunsSession(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX echo")
	}
	isolate(t)

	tt, err := execute(t, "hello world\nhistory\nexit\n", "echo", "--plain-output", "--plain-input")
	require.NoError(t, err)

	out := tt.out.String()
	assert.Contains(t, out, "echo >>> hello world\n")
	assert.Contains(t, out, "Command History:\n  0: hello world\n")
}

func TestRootReportsMissingCommand(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "replize-definitely-missing-command")
	require.Error(t, err)
	assert.Equal(t, "Command 'replize-definitely-missing-command' not found in PATH", err.Error())
}

func TestRootVersion(t *testing.T) {
	tt, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, tt.out.String(), "replize version")
}

func TestOverridesOnlyChangedFlags(t *testing.T) {
	flags := rootFlags{
		promptTemplate: "ignored",
		plainOutput:    true,
		noValidate:     true,
		timeout:        4,
	}
	changed := map[string]bool{"plain-output": true, "no-validate": true, "timeout": true}

	s := flags.overrides(func(name string) bool { return changed[name] })

	assert.Nil(t, s.PromptTemplate)
	assert.Nil(t, s.ExitCommands)
	require.NotNil(t, s.EnhancedOutput)
	assert.False(t, *s.EnhancedOutput)
	require.NotNil(t, s.ValidateCommand)
	assert.False(t, *s.ValidateCommand)
	require.NotNil(t, s.Timeout)
	assert.Equal(t, 4.0, *s.Timeout)
	assert.Nil(t, s.EnhancedInput)
}

func TestRootDoctor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX echo")
	}
	isolate(t)

	tt, err := execute(t, "", "echo", "--doctor", "--plain-input")
	require.NoError(t, err)
	assert.Contains(t, tt.out.String(), "[OK] Command - ")
	assert.Contains(t, tt.out.String(), "[OK] Terminal - plain input requested")

	tt, err = execute(t, "", "replize-definitely-missing-command", "--doctor")
	require.Error(t, err)
	assert.Contains(t, tt.out.String(), "[ERROR] Command - replize-definitely-missing-command not found in PATH")
}
