package repl

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/doeshing/replize-go/internal/domain"
)

// scriptReader replays a fixed list of outcomes and then reports end-of-input.
type scriptReader struct {
	outcomes []domain.ReadOutcome
	prompts  []string
}

func lines(in ...string) *scriptReader {
	r := &scriptReader{}
	for _, line := range in {
		r.outcomes = append(r.outcomes, domain.LineOutcome(line))
	}
	return r
}

func (r *scriptReader) ReadLine(_ context.Context, prompt string) (domain.ReadOutcome, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.outcomes) == 0 {
		return domain.SignalOutcome(domain.SignalEndOfInput), nil
	}
	next := r.outcomes[0]
	r.outcomes = r.outcomes[1:]
	return next, nil
}

func (r *scriptReader) Close() error { return nil }

type recordingExecutor struct {
	calls   [][]string
	result  domain.ExecutionResult
	err     error
	lookErr error
	looked  []string
}

func (e *recordingExecutor) Execute(_ context.Context, argv []string, _ time.Duration) (domain.ExecutionResult, error) {
	e.calls = append(e.calls, slices.Clone(argv))
	result := e.result
	result.Argv = slices.Clone(argv)
	return result, e.err
}

func (e *recordingExecutor) LookPath(program string) (string, error) {
	e.looked = append(e.looked, program)
	if e.lookErr != nil {
		return "", e.lookErr
	}
	return "/usr/bin/" + program, nil
}

type message struct {
	kind domain.MessageKind
	text string
}

type bufferRenderer struct {
	outputs  []string
	messages []message
}

func (r *bufferRenderer) Output(text string) {
	r.outputs = append(r.outputs, text)
}

func (r *bufferRenderer) Message(kind domain.MessageKind, text string) {
	r.messages = append(r.messages, message{kind: kind, text: text})
}

func (r *bufferRenderer) texts(kind domain.MessageKind) []string {
	var out []string
	for _, m := range r.messages {
		if m.kind == kind {
			out = append(out, m.text)
		}
	}
	return out
}

type memoryLog struct {
	entries []string
	closed  bool
}

func (l *memoryLog) WriteInput(prompt, line string) error {
	l.entries = append(l.entries, prompt+line+"\n")
	return nil
}

func (l *memoryLog) WriteOutput(data []byte) error {
	l.entries = append(l.entries, string(data))
	return nil
}

func (l *memoryLog) Close() error {
	l.closed = true
	return nil
}

type countingClearer struct {
	calls int
	err   error
}

func (c *countingClearer) Clear(context.Context) error {
	c.calls++
	return c.err
}

type countingActivity struct {
	starts, stops int
}

func (a *countingActivity) Start() { a.starts++ }
func (a *countingActivity) Stop() { a.stops++ }

var errBoom = errors.New("boom")
