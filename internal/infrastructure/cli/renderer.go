package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/ports"
)

// PlainRenderer writes unstyled text. Warnings and errors go to errOut.
type PlainRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

// NewPlainRenderer builds a renderer over the given streams, defaulting to
// stdout and stderr.
func NewPlainRenderer(out, errOut io.Writer) *PlainRenderer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &PlainRenderer{out: out, errOut: errOut}
}

// Output implements ports.Renderer.
func (r *PlainRenderer) Output(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, text)
}

// Message implements ports.Renderer.
func (r *PlainRenderer) Message(kind domain.MessageKind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.target(kind), text)
}

func (r *PlainRenderer) target(kind domain.MessageKind) io.Writer {
	if kind.IsDiagnostic() {
		return r.errOut
	}
	return r.out
}

// StyledRenderer colours messages with lipgloss. The colour profile follows
// the output stream, so redirected output stays free of escape codes.
type StyledRenderer struct {
	PlainRenderer
	styles map[domain.MessageKind]lipgloss.Style
}

// NewStyledRenderer builds a styled renderer over the given streams.
func NewStyledRenderer(out, errOut io.Writer) *StyledRenderer {
	plain := NewPlainRenderer(out, errOut)
	lr := lipgloss.NewRenderer(plain.out)

	return &StyledRenderer{
		PlainRenderer: PlainRenderer{out: plain.out, errOut: plain.errOut},
		styles: map[domain.MessageKind]lipgloss.Style{
			domain.MessageHeading: lr.NewStyle().Bold(true),
			domain.MessageHelp:    lr.NewStyle().Foreground(lipgloss.Color("6")),
			domain.MessageNotice:  lr.NewStyle().Faint(true),
			domain.MessageWarning: lr.NewStyle().Foreground(lipgloss.Color("3")),
			domain.MessageError:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
			domain.MessageSuccess: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		},
	}
}

// Message implements ports.Renderer.
func (r *StyledRenderer) Message(kind domain.MessageKind, text string) {
	if style, ok := r.styles[kind]; ok {
		// Styled line by line so lipgloss does not pad multi-line blocks.
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = style.Render(line)
		}
		text = strings.Join(lines, "\n")
	}
	r.PlainRenderer.Message(kind, text)
}

var (
	_ ports.Renderer = (*PlainRenderer)(nil)
	_ ports.Renderer = (*StyledRenderer)(nil)
)
