package algoritmo

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	// EOF marks the end of input. It is not a valid rune, so a NUL in the
	// source is scanned like any other character.
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenKeyword
	TokenIdentifier
	TokenOperator
	TokenString
	TokenNumber
	TokenBoolean
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenBracket
	TokenCloseBracket
	TokenAssignment
	TokenComma
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenKeyword:
		return "KEYWORD"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenOperator:
		return "OPERATOR"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenBoolean:
		return "BOOLEAN"
	case TokenOpenParentheses:
		return "PAREN_LEFT"
	case TokenCloseParentheses:
		return "PAREN_RIGHT"
	case TokenOpenBracket:
		return "BRACKET_LEFT"
	case TokenCloseBracket:
		return "BRACKET_RIGHT"
	case TokenAssignment:
		return "ASSIGNMENT"
	case TokenComma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

var keywordTable = map[string]bool{
	"algoritmo": true, "finalgoritmo": true, "escribir": true, "leer": true, "dimension": true,
	"si": true, "finsi": true, "sino": true, "entonces": true,
	"segun": true, "de": true, "otro": true, "modo": true, "finsegun": true, "caso": true,
	"mientras": true, "hacer": true, "finmientras": true,
	"repetir": true, "hasta": true, "que": true,
	"para": true, "con": true, "paso": true, "finpara": true,
}

var punctuationTable = map[rune]TokenType{
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
	'[': TokenOpenBracket,
	']': TokenCloseBracket,
	',': TokenComma,
}

const singleOperators = "+-*/<>=:&|"

// IsKeyword reports whether word is reserved, ignoring case.
func IsKeyword(word string) bool {
	return keywordTable[strings.ToLower(word)]
}

type Location struct {
	Line int
	Col  int
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

// Is reports whether the token has the given type and, when value is not
// empty, the given value compared case-insensitively.
func (t Token) Is(typ TokenType, value string) bool {
	if t.Typ != typ {
		return false
	}

	return value == "" || strings.EqualFold(t.Value, value)
}

type Lexer struct {
	reader *bufio.Reader
	line   int
	col    int

	start  Location
	tokens []Token
	err    error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
		col:    1,
	}
}

// Tokenize scans the whole source and returns its tokens in order.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(strings.NewReader(src)).Run()
}

// Run drives the state machine to completion. A Lexer is single use.
func (l *Lexer) Run() ([]Token, error) {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.mark()

		switch r := l.peek(); {
		case r == EOF:
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case r == '"':
			return stringState
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r):
			return wordState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emmitValue(TokenNumber, num.String())
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for r := l.next(); r != '"'; r = l.next() {
		if r == EOF {
			return l.errorf(true, "unterminated string literal")
		}

		str.WriteRune(r)
	}

	return l.emmitValue(TokenString, str.String())
}

func wordState(l *Lexer) stateFunc {
	var word strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peek() {
		word.WriteRune(l.next())
	}

	w := word.String()
	switch lower := strings.ToLower(w); {
	case lower == "verdadero" || lower == "falso":
		return l.emmitValue(TokenBoolean, w)
	case keywordTable[lower]:
		return l.emmitValue(TokenKeyword, w)
	default:
		return l.emmitValue(TokenIdentifier, w)
	}
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	switch r { // Some operators can be two runes
	case '/':
		if l.peek() == '/' {
			return lineCommentState
		}
	case '<':
		switch l.peek() {
		case '-':
			l.next()
			return l.emmitValue(TokenAssignment, "<-")
		case '=', '>':
			return l.emmitValue(TokenOperator, string(r)+string(l.next()))
		}
	case '>':
		if l.peek() == '=' {
			return l.emmitValue(TokenOperator, string(r)+string(l.next()))
		}
	}

	if strings.ContainsRune(singleOperators, r) {
		return l.emmitValue(TokenOperator, string(r))
	}

	if tok, ok := punctuationTable[r]; ok {
		return l.emmitValue(tok, string(r))
	}

	if !unicode.IsPrint(r) {
		return l.errorf(false, "unexpected character %U", r)
	}

	return l.errorf(false, "unexpected character '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		l.next()
	}

	return defaultState
}

func (l *Lexer) errorf(incomplete bool, format string, args ...interface{}) stateFunc {
	loc := l.start
	l.err = newLexError(&loc, incomplete, format, args...)

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	loc := l.start
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
		Loc:   &loc,
	})

	return defaultState
}

// mark records the position where the next token starts.
func (l *Lexer) mark() {
	l.start = Location{Line: l.line, Col: l.col}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}
	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}
