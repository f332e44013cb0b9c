package algoritmo

import (
	"errors"
	"strings"
	"testing"

	"go.algoritmo.dev/internal/test"

	"github.com/stretchr/testify/assert"
)

func loc(line, col int) *Location {
	return &Location{Line: line, Col: col}
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect []Token
	}{
		{
			"Escribir \"Hola\"",
			false,
			[]Token{
				{TokenKeyword, "Escribir", loc(1, 1)},
				{TokenString, "Hola", loc(1, 10)},
			},
		},
		{
			"x <- 1 + 2",
			false,
			[]Token{
				{TokenIdentifier, "x", loc(1, 1)},
				{TokenAssignment, "<-", loc(1, 3)},
				{TokenNumber, "1", loc(1, 6)},
				{TokenOperator, "+", loc(1, 8)},
				{TokenNumber, "2", loc(1, 10)},
			},
		},
		{
			"a<=b",
			false,
			[]Token{
				{TokenIdentifier, "a", loc(1, 1)},
				{TokenOperator, "<=", loc(1, 2)},
				{TokenIdentifier, "b", loc(1, 4)},
			},
		},
		{
			"a<>b>=c",
			false,
			[]Token{
				{TokenIdentifier, "a", loc(1, 1)},
				{TokenOperator, "<>", loc(1, 2)},
				{TokenIdentifier, "b", loc(1, 4)},
				{TokenOperator, ">=", loc(1, 5)},
				{TokenIdentifier, "c", loc(1, 7)},
			},
		},
		{
			"a<-b<c",
			false,
			[]Token{
				{TokenIdentifier, "a", loc(1, 1)},
				{TokenAssignment, "<-", loc(1, 2)},
				{TokenIdentifier, "b", loc(1, 4)},
				{TokenOperator, "<", loc(1, 5)},
				{TokenIdentifier, "c", loc(1, 6)},
			},
		},
		{
			"// this is a comment\nx <- 1",
			false,
			[]Token{
				{TokenIdentifier, "x", loc(2, 1)},
				{TokenAssignment, "<-", loc(2, 3)},
				{TokenNumber, "1", loc(2, 6)},
			},
		},
		{
			"verdadero FALSO",
			false,
			[]Token{
				{TokenBoolean, "verdadero", loc(1, 1)},
				{TokenBoolean, "FALSO", loc(1, 11)},
			},
		},
		{
			"x1 <- v[2]",
			false,
			[]Token{
				{TokenIdentifier, "x1", loc(1, 1)},
				{TokenAssignment, "<-", loc(1, 4)},
				{TokenIdentifier, "v", loc(1, 7)},
				{TokenOpenBracket, "[", loc(1, 8)},
				{TokenNumber, "2", loc(1, 9)},
				{TokenCloseBracket, "]", loc(1, 10)},
			},
		},
		{
			"año <- 3",
			false,
			[]Token{
				{TokenIdentifier, "año", loc(1, 1)},
				{TokenAssignment, "<-", loc(1, 5)},
				{TokenNumber, "3", loc(1, 8)},
			},
		},
		{
			"f(a, b)",
			false,
			[]Token{
				{TokenIdentifier, "f", loc(1, 1)},
				{TokenOpenParentheses, "(", loc(1, 2)},
				{TokenIdentifier, "a", loc(1, 3)},
				{TokenComma, ",", loc(1, 4)},
				{TokenIdentifier, "b", loc(1, 6)},
				{TokenCloseParentheses, ")", loc(1, 7)},
			},
		},
		{
			"12ab",
			false,
			[]Token{
				{TokenNumber, "12", loc(1, 1)},
				{TokenIdentifier, "ab", loc(1, 3)},
			},
		},
		{
			"Caso 1:",
			false,
			[]Token{
				{TokenKeyword, "Caso", loc(1, 1)},
				{TokenNumber, "1", loc(1, 6)},
				{TokenOperator, ":", loc(1, 7)},
			},
		},
		{
			"\"\"",
			false,
			[]Token{
				{TokenString, "", loc(1, 1)},
			},
		},
		{
			"",
			false,
			nil,
		},
		{
			"3.5",
			true,
			nil,
		},
		{
			"\"unclosed string",
			true,
			nil,
		},
		{
			"@",
			true,
			nil,
		},
	}

	for _, c := range cases {
		r := strings.NewReader(c.data)
		l := NewLexer(r)

		toks, err := l.Run()
		if c.fail {
			assert.Error(t, err, c.data)
		} else {
			assert.NoError(t, err, c.data)
		}

		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		data       string
		loc        *Location
		incomplete bool
	}{
		{"x <- \"abc", loc(1, 6), true},
		{"x @", loc(1, 3), false},
		{"x <- 1\n  #", loc(2, 3), false},
		{"Algoritmo A\nFinAlgoritmo\x00 @@@", loc(2, 13), false},
		{"x\x00", loc(1, 2), false},
	}

	for _, c := range cases {
		_, err := Tokenize(c.data)

		var lexErr *LexError
		if assert.True(t, errors.As(err, &lexErr), c.data) {
			assert.Equal(t, c.loc, lexErr.Loc, c.data)
			assert.Equal(t, c.incomplete, lexErr.Incomplete, c.data)
			assert.Equal(t, c.incomplete, IsIncomplete(err), c.data)
		}
	}
}

func TestLexerControlCharacter(t *testing.T) {
	_, err := Tokenize("Escribir 1\x00")
	assert.EqualError(t, err, "1:11 lex error: unexpected character U+0000")
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	toks, err := Tokenize("ALGORITMO finAlgoritmo escribir")
	assert.NoError(t, err)

	for _, tok := range toks {
		assert.Equal(t, TokenKeyword, tok.Typ, tok.Value)
	}

	assert.True(t, IsKeyword("FinMientras"))
	assert.False(t, IsKeyword("verdadero"))
	assert.False(t, IsKeyword("contador"))
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "PAREN_LEFT", TokenOpenParentheses.String())
	assert.Equal(t, "ASSIGNMENT", TokenAssignment.String())
	assert.Equal(t, "EOF", TokenEOF.String())
	assert.Equal(t, "UNKNOWN", TokenType(999).String())
}

func TestLexerRandomTokens(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		data := test.GetRandomTokensWithSep(200, " ", seed)

		toks, err := Tokenize(data)
		if assert.NoError(t, err, "seed %d", seed) {
			assert.LessOrEqual(t, len(toks), 200, "seed %d", seed)
		}
	}
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		r := strings.NewReader(data)
		l := NewLexer(r)

		var err error
		b.StartTimer()

		benchResult, err = l.Run()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
