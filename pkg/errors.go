package algoritmo

import (
	"errors"
	"fmt"
	"strings"
)

// LexError reports an unexpected character or an unterminated string.
type LexError struct {
	Loc        *Location
	Msg        string
	Incomplete bool
}

func newLexError(loc *Location, incomplete bool, format string, args ...interface{}) *LexError {
	return &LexError{
		Loc:        loc,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s lex error: %s", e.Loc, e.Msg)
}

// ParseError reports the first grammar violation found by the parser.
// Expected and Found are filled in when the violation is a token mismatch.
type ParseError struct {
	Loc        *Location
	Msg        string
	Expected   string
	Found      string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error: %s", e.Loc, e.Msg)
}

// RuntimeError aborts an interpreter run. Err holds the underlying cause
// when the failure came from a port or from cancellation.
type RuntimeError struct {
	Loc *Location
	Msg string
	Err error
}

func newRuntimeError(loc *Location, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Loc: loc,
		Msg: fmt.Sprintf(format, args...),
	}
}

func (e *RuntimeError) Error() string {
	if e.Loc == nil {
		return "runtime error: " + e.Msg
	}

	return fmt.Sprintf("%s runtime error: %s", e.Loc, e.Msg)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// UnsupportedError is returned by the IR generator for constructs outside
// the numeric subset it can lower.
type UnsupportedError struct {
	Loc       *Location
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not supported by the IR backend: %s", e.Loc, e.Construct)
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// IsIncomplete reports whether err was caused by the source ending early,
// meaning more input could still turn it into a valid program.
func IsIncomplete(err error) bool {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Incomplete
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Incomplete
	}

	return false
}

// FormatError renders err with a snippet of src and a caret under the
// offending column. Errors without a location are returned as plain text.
func FormatError(err error, src string) string {
	var (
		header string
		loc    *Location
		msg    string
	)

	var lexErr *LexError
	var parseErr *ParseError
	var runtimeErr *RuntimeError
	var unsupportedErr *UnsupportedError

	switch {
	case errors.As(err, &lexErr):
		header, loc, msg = "LEXICAL ERROR", lexErr.Loc, lexErr.Msg
	case errors.As(err, &parseErr):
		header, loc, msg = "PARSE ERROR", parseErr.Loc, parseErr.Msg
	case errors.As(err, &runtimeErr):
		header, loc, msg = "RUNTIME ERROR", runtimeErr.Loc, runtimeErr.Msg
	case errors.As(err, &unsupportedErr):
		header, loc, msg = "UNSUPPORTED", unsupportedErr.Loc, unsupportedErr.Construct
	default:
		return err.Error()
	}

	if loc == nil {
		return fmt.Sprintf("%s: %s\n", header, msg)
	}

	return snippet(src, header, loc.Line, loc.Col, msg)
}

// snippet shows at most one line of context on each side of line.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", caretPad(lines[line-1], col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}

	return b.String()
}

// caretPad keeps tabs from the source line so the caret lines up.
func caretPad(line string, width int) string {
	var b strings.Builder
	for i, r := range []rune(line) {
		if i >= width {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}

	for i := len([]rune(line)); i < width; i++ {
		b.WriteRune(' ')
	}

	return b.String()
}
