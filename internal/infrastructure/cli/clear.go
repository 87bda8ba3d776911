package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/doeshing/replize-go/internal/ports"
)

const ansiClear = "\033[H\033[2J"

// ScreenClearer clears the terminal using the platform tool, falling back to
// ANSI escapes when the tool is unavailable.
type ScreenClearer struct {
	out     io.Writer
	command func(ctx context.Context) *exec.Cmd
}

// NewScreenClearer builds a clearer writing to out.
func NewScreenClearer(out io.Writer) *ScreenClearer {
	if out == nil {
		out = os.Stdout
	}
	return &ScreenClearer{out: out, command: clearCommand}
}

func clearCommand(ctx context.Context) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/c", "cls")
	}
	return exec.CommandContext(ctx, "clear")
}

// Clear implements ports.ScreenClearer.
func (c *ScreenClearer) Clear(ctx context.Context) error {
	cmd := c.command(ctx)
	cmd.Stdout = c.out
	if err := cmd.Run(); err == nil {
		return nil
	}
	if _, err := fmt.Fprint(c.out, ansiClear); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	return nil
}

var _ ports.ScreenClearer = (*ScreenClearer)(nil)
