package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/pkg/filesystem"
	"github.com/doeshing/replize-go/internal/ports"
)

// ReadlineReader is the line-editing reader used on interactive terminals.
// It keeps the persistent history file and offers path completion.
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader builds a reader from the history and completion settings
// of cfg.
func NewReadlineReader(cfg domain.Config) (*ReadlineReader, error) {
	rc := &readline.Config{
		InterruptPrompt:   "^C",
		HistorySearchFold: true,
	}
	if cfg.EnableHistory && cfg.HistoryFile != "" {
		path := filesystem.ExpandPath(cfg.HistoryFile)
		if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
		rc.HistoryFile = path
	}
	if cfg.EnableCompletion {
		rc.AutoComplete = NewPathCompleter()
	}

	rl, err := readline.NewEx(rc)
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &ReadlineReader{rl: rl}, nil
}

// ReadLine implements ports.LineReader.
func (r *ReadlineReader) ReadLine(ctx context.Context, prompt string) (domain.ReadOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReadOutcome{}, err
	}
	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return domain.SignalOutcome(domain.SignalInterrupt), nil
	case errors.Is(err, io.EOF):
		return domain.SignalOutcome(domain.SignalEndOfInput), nil
	case err != nil:
		return domain.ReadOutcome{}, err
	}
	return domain.LineOutcome(line), nil
}

// Close implements ports.LineReader.
func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

var _ ports.LineReader = (*ReadlineReader)(nil)
