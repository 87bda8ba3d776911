// Package shellwords splits a command line into arguments the way a POSIX
// shell would, without expansion, globbing, or operators.
package shellwords

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUnterminatedQuote = errors.New("no closing quotation")
	ErrTrailingEscape    = errors.New("no escaped character")
)

// TokenizeError reports malformed quoting in an input line.
type TokenizeError struct {
	Input string
	Err   error
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Input, e.Err)
}

func (e *TokenizeError) Unwrap() error {
	return e.Err
}

// Split tokenizes s. Single quotes preserve their content literally; inside
// double quotes a backslash only escapes \ " $ ` and newline; elsewhere a
// backslash escapes the next rune. Quoted and unquoted segments that touch
// form one argument, and an empty quoted string is an empty argument.
// Bytes that are not valid UTF-8 are kept as they are.
func Split(s string) ([]string, error) {
	var (
		args     []string
		cur      strings.Builder
		inToken  bool
		quote    rune
		escaped  bool
		escQuote rune
	)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		raw := s[i : i+size]
		i += size

		if escaped {
			if escQuote == '"' && !strings.ContainsRune("\\\"$`\n", r) {
				cur.WriteRune('\\')
			}
			cur.WriteString(raw)
			escaped = false
			continue
		}

		switch quote {
		case '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteString(raw)
			}
			continue
		case '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped, escQuote = true, '"'
			default:
				cur.WriteString(raw)
			}
			continue
		}

		switch {
		case unicode.IsSpace(r):
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		case r == '\\':
			escaped, escQuote, inToken = true, 0, true
		case r == '\'' || r == '"':
			quote, inToken = r, true
		default:
			cur.WriteString(raw)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, &TokenizeError{Input: s, Err: ErrUnterminatedQuote}
	}
	if escaped {
		return nil, &TokenizeError{Input: s, Err: ErrTrailingEscape}
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}

// Join quotes args so that Split(Join(args)) returns args.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quote(arg)
	}
	return strings.Join(quoted, " ")
}

func quote(arg string) string {
	if arg == "" {
		return "''"
	}
	safe := true
	for _, r := range arg {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@%+=:,./-_", r)) {
			safe = false
			break
		}
	}
	if safe {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}
