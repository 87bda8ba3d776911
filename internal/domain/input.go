package domain

// Signal tags a non-line outcome of reading input.
type Signal string

const (
	SignalEndOfInput Signal = "eof"
	SignalInterrupt  Signal = "interrupt"
)

// ReadOutcome is the result of asking the line reader for one line: either a
// line of text or a signal such as end-of-input, interrupt, or a custom tag.
type ReadOutcome struct {
	Line   string
	Signal Signal
}

// LineOutcome wraps a line of input.
func LineOutcome(line string) ReadOutcome {
	return ReadOutcome{Line: line}
}

// SignalOutcome wraps a signal.
func SignalOutcome(sig Signal) ReadOutcome {
	return ReadOutcome{Signal: sig}
}

// IsSignal reports whether the outcome carries a signal instead of a line.
func (o ReadOutcome) IsSignal() bool {
	return o.Signal != ""
}
