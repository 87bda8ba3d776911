package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/doeshing/replize-go/internal/application/repl"
	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/ports"
)

// Terminal holds the streams a session talks to.
type Terminal struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdTerminal returns the process streams.
func StdTerminal() Terminal {
	return Terminal{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Attach fills in the terminal-facing adapters of s that the caller left
// unset. Enhanced input uses readline when both ends are the process
// terminal; enhanced output adds colour and a spinner.
func Attach(s *repl.Session, t Terminal) {
	cfg := s.Config

	if s.Renderer == nil {
		if cfg.EnhancedOutput {
			s.Renderer = NewStyledRenderer(t.Out, t.Err)
		} else {
			s.Renderer = NewPlainRenderer(t.Out, t.Err)
		}
	}
	if s.Activity == nil && cfg.EnhancedOutput && IsTerminal(t.Err) {
		s.Activity = NewSpinner(t.Err)
	}
	if s.Clearer == nil {
		s.Clearer = NewScreenClearer(t.Out)
	}
	if s.Config.Stdout == nil {
		s.Config.Stdout = NewOutputHandler(t.Out)
	}
	if s.Config.Stderr == nil {
		s.Config.Stderr = NewOutputHandler(t.Err)
	}
	if s.Reader == nil {
		s.Reader = newLineReader(s, cfg, t)
	}
}

func newLineReader(s *repl.Session, cfg domain.Config, t Terminal) ports.LineReader {
	if cfg.EnhancedInput && t.In == os.Stdin && t.Out == os.Stdout && IsTerminal(t.In) && IsTerminal(t.Out) {
		r, err := NewReadlineReader(cfg)
		if err == nil {
			return r
		}
		if s.Logger != nil {
			s.Logger.Warn("line editing unavailable, falling back to plain input", map[string]interface{}{"error": err.Error()})
		}
	}
	return NewPlainReader(t.In, t.Out)
}
