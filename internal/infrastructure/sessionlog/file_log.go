package sessionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/pkg/filesystem"
	"github.com/doeshing/replize-go/internal/ports"
)

// FileLog appends a plain-text transcript of a session to a file.
// Writes go straight to the file descriptor, so every record is on disk as
// soon as the call returns.
type FileLog struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens (or creates) path for appending and writes the session header.
func Open(path, command, sessionID string) (*FileLog, error) {
	path = filesystem.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.LogFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log := &FileLog{file: file, path: path}
	if _, err := fmt.Fprintf(file, domain.SessionLogHeaderFormat, command, sessionID); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write log header: %w", err)
	}
	return log, nil
}

// WriteInput records the prompt and the line the user entered.
func (l *FileLog) WriteInput(prompt, line string) error {
	return l.write([]byte(prompt + line + "\n"))
}

// WriteOutput records raw subprocess output.
func (l *FileLog) WriteOutput(data []byte) error {
	return l.write(data)
}

// Path returns the resolved log path.
func (l *FileLog) Path() string {
	return l.path
}

// Close releases the file handle. It is safe to call more than once.
func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *FileLog) write(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return os.ErrClosed
	}
	_, err := l.file.Write(data)
	return err
}

var _ ports.SessionLog = (*FileLog)(nil)
