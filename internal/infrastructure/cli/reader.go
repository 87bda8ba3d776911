package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/ports"
)

type readResult struct {
	line string
	err  error
}

// PlainReader reads lines from a plain stream such as a pipe or a dumb
// terminal. The blocking read runs on a helper goroutine so an interrupt can
// be reported while waiting; an abandoned read is picked up by the next call.
type PlainReader struct {
	in      *bufio.Reader
	out     io.Writer
	pending chan readResult
	eof     bool

	notify func(chan<- os.Signal)
	stop   func(chan<- os.Signal)
}

// NewPlainReader constructs a reader over in, writing prompts to out.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &PlainReader{
		in:     bufio.NewReader(in),
		out:    out,
		notify: func(c chan<- os.Signal) { signal.Notify(c, os.Interrupt) },
		stop:   func(c chan<- os.Signal) { signal.Stop(c) },
	}
}

// ReadLine implements ports.LineReader.
func (r *PlainReader) ReadLine(ctx context.Context, prompt string) (domain.ReadOutcome, error) {
	if r.eof {
		return domain.SignalOutcome(domain.SignalEndOfInput), nil
	}
	fmt.Fprint(r.out, prompt)

	if r.pending == nil {
		r.pending = make(chan readResult, 1)
		go func(ch chan<- readResult) {
			line, err := r.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}(r.pending)
	}

	interrupts := make(chan os.Signal, 1)
	r.notify(interrupts)
	defer r.stop(interrupts)

	select {
	case res := <-r.pending:
		r.pending = nil
		return r.outcome(res)
	case <-interrupts:
		fmt.Fprintln(r.out)
		return domain.SignalOutcome(domain.SignalInterrupt), nil
	case <-ctx.Done():
		return domain.ReadOutcome{}, ctx.Err()
	}
}

func (r *PlainReader) outcome(res readResult) (domain.ReadOutcome, error) {
	line := strings.TrimRight(res.line, "\r\n")
	if res.err != nil {
		if !errors.Is(res.err, io.EOF) {
			return domain.ReadOutcome{}, res.err
		}
		r.eof = true
		if line == "" {
			fmt.Fprintln(r.out)
			return domain.SignalOutcome(domain.SignalEndOfInput), nil
		}
	}
	return domain.LineOutcome(line), nil
}

// Close implements ports.LineReader. The underlying stream is owned by the
// caller.
func (r *PlainReader) Close() error {
	return nil
}

var _ ports.LineReader = (*PlainReader)(nil)
