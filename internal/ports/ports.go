// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The REPL session in internal/application/repl depends only on these
// interfaces. Concrete adapters (readline, lipgloss, os/exec, files) live in
// the infrastructure layer and are wired together by internal/app.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/replize-go/internal/domain"
)

// ConfigProvider loads the config file layers from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.FileConfig, error)
}

// LineReader obtains one line of user input, or a signal when input ended or
// was interrupted. An error means the reader itself failed.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (domain.ReadOutcome, error)
	Close() error
}

// Renderer presents plain strings to the user. Plain and styled variants are
// selected at configuration time.
type Renderer interface {
	// Output writes decoded subprocess output verbatim.
	Output(text string)
	// Message writes a single message styled according to kind.
	Message(kind domain.MessageKind, text string)
}

// CommandExecutor runs a fully tokenized command line.
type CommandExecutor interface {
	Execute(ctx context.Context, argv []string, timeout time.Duration) (domain.ExecutionResult, error)
	LookPath(program string) (string, error)
}

// HistoryRepository stores the session history. Indices are positions and
// are stable once assigned.
type HistoryRepository interface {
	Append(line string) int
	Get(index int) (domain.HistoryEntry, bool)
	List() []domain.HistoryEntry
	Len() int
}

// SessionLog records the transcript of a session.
type SessionLog interface {
	WriteInput(prompt, line string) error
	WriteOutput(data []byte) error
	Close() error
}

// ScreenClearer clears the terminal for the clear builtin.
type ScreenClearer interface {
	Clear(ctx context.Context) error
}

// ActivityIndicator shows progress while a command is running.
type ActivityIndicator interface {
	Start()
	Stop()
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, discard).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
