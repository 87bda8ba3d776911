package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/replize-go/internal/domain"
)

type builtinAction int

const (
	notBuiltin builtinAction = iota
	builtinHandled
	historyRewrite
)

type dispatchResult struct {
	action builtinAction
	line   string
	// extended is set when a reference carried extra arguments.
	extended bool
}

// dispatch handles the builtin words and !<n> references. A resolved
// reference comes back as historyRewrite with the line to run instead.
func (s *Session) dispatch(ctx context.Context, line string) dispatchResult {
	word := strings.Fields(line)[0]

	switch {
	case word == "help" || word == "?":
		s.Renderer.Message(domain.MessageHelp, domain.HelpText)
	case word == "history":
		s.showHistory()
	case word == "clear":
		if s.Clearer == nil {
			return dispatchResult{action: builtinHandled}
		}
		if err := s.Clearer.Clear(ctx); err != nil {
			s.Logger.Warn("clear screen failed", map[string]interface{}{"error": err.Error()})
		}
	case isHistoryReference(word):
		resolved, extended, err := s.resolveReference(line, word)
		if err != nil {
			s.report(err)
			return dispatchResult{action: builtinHandled}
		}
		return dispatchResult{action: historyRewrite, line: resolved, extended: extended}
	default:
		return dispatchResult{action: notBuiltin, line: line}
	}
	return dispatchResult{action: builtinHandled}
}

func (s *Session) showHistory() {
	entries := s.History.List()
	if len(entries) == 0 {
		s.Renderer.Message(domain.MessageNotice, "No command history")
		return
	}
	s.Renderer.Message(domain.MessageHeading, "Command History:")
	for _, entry := range entries {
		s.Renderer.Message(domain.MessagePlain, fmt.Sprintf("  %d: %s", entry.Index, entry.Line))
	}
}

// isHistoryReference matches "!" followed by anything; a bare "!" is an
// ordinary argument.
func isHistoryReference(word string) bool {
	return len(word) > 1 && word[0] == '!'
}

// resolveReference expands !<n> to history entry n. Text after the reference
// is appended to the entry unchanged, and extended reports whether there was
// any.
func (s *Session) resolveReference(line, word string) (resolved string, extended bool, err error) {
	digits := word[1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false, &domain.HistoryReferenceError{Reference: word}
		}
	}
	index, convErr := strconv.Atoi(digits)
	if convErr != nil {
		return "", false, &domain.HistoryReferenceError{Reference: word}
	}

	entry, ok := s.History.Get(index)
	if !ok {
		return "", false, &domain.HistoryReferenceError{Index: index, OutOfRange: true}
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, word))
	if rest == "" {
		return entry.Line, false, nil
	}
	return entry.Line + " " + rest, true, nil
}
