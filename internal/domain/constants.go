package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// LogFilePermissions is the permission for session logs (rw-r--r--)
	LogFilePermissions = 0o644
)

// Prompt and exit defaults
const (
	// DefaultPromptTemplate is used when no template is configured
	DefaultPromptTemplate = "{command} >>> "
	// DefaultHistoryFileName is the readline history file under the home directory
	DefaultHistoryFileName = ".replize_history"
)

// DefaultExitCommands end the session when typed as the first word.
var DefaultExitCommands = []string{"exit", "quit"}

// Execution constants
const (
	// DefaultWaitDelay bounds how long output pipes are drained after a child is killed
	DefaultWaitDelay = 2 * time.Second
)

// Session log format
const (
	// SessionLogHeaderFormat opens every session in the log file (command, session id)
	SessionLogHeaderFormat = "\n=== New replize session: %s (%s) ===\n"
)

// HelpText is printed by the help builtin.
const HelpText = `
Built-in commands:
  help, ?          Show this help message
  history          Show command history
  clear            Clear the screen
  !<n>             Re-run command number <n> from history
  exit, quit       Exit the REPL
`
