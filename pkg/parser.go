package algoritmo

import (
	"fmt"
	"strconv"
	"strings"
)

type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds a Program from the full token sequence of one source text.
func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).Run()
}

// Run parses a single program. It stops at the first grammar violation.
func (p *Parser) Run() (*Program, error) {
	if _, err := p.expect(TokenKeyword, "algoritmo"); err != nil {
		return nil, err
	}

	name, ok := p.match(TokenIdentifier, "")
	if !ok {
		return nil, p.unexpected("program name after 'algoritmo'")
	}

	body, err := p.block("finalgoritmo")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenKeyword, "finalgoritmo"); err != nil {
		return nil, err
	}

	if !p.check(TokenEOF, "") {
		return nil, p.unexpected("end of input after 'finalgoritmo'")
	}

	return &Program{
		Name: name.Value,
		Body: body,
	}, nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		tok := Token{Typ: TokenEOF}
		if n := len(p.tokens); n > 0 {
			tok.Loc = p.tokens[n-1].Loc
		}

		return tok
	}

	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType, value string) bool {
	return p.peek().Is(typ, value)
}

// match consumes the next token when it matches.
func (p *Parser) match(typ TokenType, value string) (Token, bool) {
	if !p.check(typ, value) {
		return Token{}, false
	}

	return p.next(), true
}

func (p *Parser) expect(typ TokenType, value string) (Token, error) {
	if tok, ok := p.match(typ, value); ok {
		return tok, nil
	}

	if value != "" {
		return Token{}, p.unexpected(fmt.Sprintf("'%s'", strings.ToLower(value)))
	}

	return Token{}, p.unexpected(typ.String())
}

func (p *Parser) consume(typ TokenType, value string) bool {
	_, ok := p.match(typ, value)
	return ok
}

// unexpected reports the current token as a mismatch against expected.
func (p *Parser) unexpected(expected string) error {
	tok := p.peek()
	found := describe(tok)

	return &ParseError{
		Loc:        tok.Loc,
		Msg:        fmt.Sprintf("expected %s, found %s", expected, found),
		Expected:   expected,
		Found:      found,
		Incomplete: tok.Typ == TokenEOF,
	}
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	return &ParseError{
		Loc:        tok.Loc,
		Msg:        fmt.Sprintf(format, args...),
		Found:      describe(tok),
		Incomplete: tok.Typ == TokenEOF,
	}
}

func describe(tok Token) string {
	if tok.Typ == TokenEOF {
		return "end of input"
	}

	return fmt.Sprintf("'%s'", tok.Value)
}

// block parses statements until one of the terminator keywords is next.
// The terminator itself is left for the caller.
func (p *Parser) block(terminators ...string) ([]Statement, error) {
	var stmts []Statement
	for !p.atKeyword(terminators...) {
		if p.check(TokenEOF, "") {
			return nil, p.unexpected(fmt.Sprintf("'%s'", terminators[len(terminators)-1]))
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func (p *Parser) atKeyword(keywords ...string) bool {
	for _, kw := range keywords {
		if p.check(TokenKeyword, kw) {
			return true
		}
	}

	return false
}

func (p *Parser) statement() (Statement, error) {
	tok := p.peek()
	if tok.Typ == TokenIdentifier {
		return p.assignment()
	}

	if tok.Typ != TokenKeyword {
		return nil, p.errorf(tok, "invalid statement: %s", describe(tok))
	}

	switch strings.ToLower(tok.Value) {
	case "escribir":
		return p.printStmt()
	case "leer":
		return p.readStmt()
	case "si":
		return p.ifStmt()
	case "segun":
		return p.switchStmt()
	case "mientras":
		return p.whileStmt()
	case "repetir":
		return p.repeatStmt()
	case "para":
		return p.forStmt()
	case "dimension":
		return p.arrayDecl()
	default:
		return nil, p.errorf(tok, "invalid statement: %s", describe(tok))
	}
}

func (p *Parser) printStmt() (Statement, error) {
	start := p.next().Loc // escribir keyword

	var exprs []Expression
	for {
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)

		if !p.consume(TokenComma, "") {
			break
		}
	}

	return &PrintStmt{Loc: start, Exprs: exprs}, nil
}

func (p *Parser) readStmt() (Statement, error) {
	start := p.next().Loc // leer keyword

	var targets []*Identifier
	for {
		id, err := p.variableName()
		if err != nil {
			return nil, err
		}
		targets = append(targets, id)

		if !p.consume(TokenComma, "") {
			break
		}
	}

	return &ReadStmt{Loc: start, Targets: targets}, nil
}

func (p *Parser) ifStmt() (Statement, error) {
	start := p.next().Loc // si keyword

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenKeyword, "entonces"); err != nil {
		return nil, err
	}

	then, err := p.block("sino", "finsi")
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Loc: start, Cond: cond, Then: then}
	if p.consume(TokenKeyword, "sino") {
		els, err := p.block("finsi")
		if err != nil {
			return nil, err
		}

		if els == nil {
			els = []Statement{}
		}
		stmt.Else = els
	}

	if _, err := p.expect(TokenKeyword, "finsi"); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) switchStmt() (Statement, error) {
	start := p.next().Loc // segun keyword

	tok, err := p.expect(TokenIdentifier, "")
	if err != nil {
		return nil, err
	}

	// Constants are valid subjects
	var subject Expression = &Identifier{Loc: tok.Loc, Name: tok.Value}
	if v, ok := constantValue(tok.Value); ok {
		subject = &NumberLiteral{Loc: tok.Loc, Value: v}
	}

	if _, err := p.expect(TokenKeyword, "hacer"); err != nil {
		return nil, err
	}

	stmt := &SwitchStmt{Loc: start, Subject: subject}
	for !p.atKeyword("de", "finsegun") {
		if _, err := p.expect(TokenKeyword, "caso"); err != nil {
			return nil, err
		}

		label, err := p.expr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenOperator, ":"); err != nil {
			return nil, err
		}

		body, err := p.block("caso", "de", "finsegun")
		if err != nil {
			return nil, err
		}

		stmt.Cases = append(stmt.Cases, label)
		stmt.Blocks = append(stmt.Blocks, body)
	}

	if p.consume(TokenKeyword, "de") {
		for _, kw := range []string{"otro", "modo"} {
			if _, err := p.expect(TokenKeyword, kw); err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(TokenOperator, ":"); err != nil {
			return nil, err
		}

		stmt.Default, err = p.block("finsegun")
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenKeyword, "finsegun"); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) whileStmt() (Statement, error) {
	start := p.next().Loc // mientras keyword

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenKeyword, "hacer"); err != nil {
		return nil, err
	}

	body, err := p.block("finmientras")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenKeyword, "finmientras"); err != nil {
		return nil, err
	}

	return &WhileStmt{Loc: start, Cond: cond, Body: body}, nil
}

func (p *Parser) repeatStmt() (Statement, error) {
	start := p.next().Loc // repetir keyword

	body, err := p.block("hasta")
	if err != nil {
		return nil, err
	}

	for _, kw := range []string{"hasta", "que"} {
		if _, err := p.expect(TokenKeyword, kw); err != nil {
			return nil, err
		}
	}

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &RepeatStmt{Loc: start, Body: body, Cond: cond}, nil
}

func (p *Parser) forStmt() (Statement, error) {
	start := p.next().Loc // para keyword

	id, err := p.variableName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenAssignment, ""); err != nil {
		return nil, err
	}

	from, err := p.signedNumber()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenKeyword, "hasta"); err != nil {
		return nil, err
	}

	to, err := p.signedNumber()
	if err != nil {
		return nil, err
	}

	step := 1.0
	if p.consume(TokenKeyword, "con") {
		if _, err := p.expect(TokenKeyword, "paso"); err != nil {
			return nil, err
		}

		step, err = p.signedNumber()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenKeyword, "hacer"); err != nil {
		return nil, err
	}

	body, err := p.block("finpara")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenKeyword, "finpara"); err != nil {
		return nil, err
	}

	return &ForStmt{
		Loc:  start,
		Var:  id.Name,
		From: from,
		To:   to,
		Step: step,
		Body: body,
	}, nil
}

func (p *Parser) arrayDecl() (Statement, error) {
	start := p.next().Loc // dimension keyword

	id, err := p.variableName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenOpenBracket, ""); err != nil {
		return nil, err
	}

	size, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseBracket, ""); err != nil {
		return nil, err
	}

	return &ArrayDecl{Loc: start, Name: id.Name, Size: size}, nil
}

// assignment handles both `x <- v` and `x[i] <- v`.
func (p *Parser) assignment() (Statement, error) {
	tok := p.next()

	var index Expression
	if p.consume(TokenOpenBracket, "") {
		var err error
		if index, err = p.expr(); err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenCloseBracket, ""); err != nil {
			return nil, err
		}
	}

	if !p.consume(TokenAssignment, "") {
		return nil, p.errorf(p.peek(), "invalid statement after '%s': found %s", tok.Value, describe(p.peek()))
	}

	if isConstant(tok.Value) {
		return nil, p.errorf(tok, "invalid variable name '%s': predefined constant", tok.Value)
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	if index != nil {
		return &ArrayAssign{Loc: tok.Loc, Name: tok.Value, Index: index, Value: value}, nil
	}

	return &Assignment{Loc: tok.Loc, Name: tok.Value, Value: value}, nil
}

// variableName accepts a plain identifier that may be bound by the program.
func (p *Parser) variableName() (*Identifier, error) {
	tok := p.peek()
	if tok.Typ != TokenIdentifier {
		return nil, p.unexpected("identifier")
	}

	if isConstant(tok.Value) {
		return nil, p.errorf(tok, "invalid variable name '%s': predefined constant", tok.Value)
	}

	p.next()
	return &Identifier{Loc: tok.Loc, Name: tok.Value}, nil
}

func (p *Parser) signedNumber() (float64, error) {
	negative := p.consume(TokenOperator, "-")

	tok, err := p.expect(TokenNumber, "")
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, p.errorf(tok, "invalid number %s", describe(tok))
	}

	if negative {
		return -n, nil
	}

	return n, nil
}

// expr folds operators strictly left to right: every operator has the same
// precedence, so `2 + 3 * 4` is `(2 + 3) * 4`. A ':' ends the expression
// because it closes case labels.
func (p *Parser) expr() (Expression, error) {
	lhs, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	for tok := p.peek(); tok.Typ == TokenOperator && tok.Value != ":"; tok = p.peek() {
		p.next()

		rhs, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Loc:       tok.Loc,
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) unaryExpr() (Expression, error) {
	if tok, ok := p.match(TokenOperator, "-"); ok { // Unary negative
		operand, err := p.primary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Loc:       tok.Loc,
			Operation: UnaryNegative,
			Operand:   operand,
		}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expression, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		return p.identifier()
	}

	return p.literal()
}

func (p *Parser) parenthesisedExpression() (Expression, error) {
	p.next() // Skip (

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, ""); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) identifier() (Expression, error) {
	tok := p.next()

	if v, ok := constantValue(tok.Value); ok {
		return &NumberLiteral{Loc: tok.Loc, Value: v}, nil
	}

	if p.check(TokenOpenParentheses, "") {
		return p.funcCall(tok)
	}

	if p.consume(TokenOpenBracket, "") {
		index, err := p.expr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenCloseBracket, ""); err != nil {
			return nil, err
		}

		return &ArrayAccess{Loc: tok.Loc, Name: tok.Value, Index: index}, nil
	}

	return &Identifier{Loc: tok.Loc, Name: tok.Value}, nil
}

func (p *Parser) funcCall(name Token) (Expression, error) {
	p.next() // Skip (

	var args []Expression
	if !p.check(TokenCloseParentheses, "") {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.consume(TokenComma, "") {
				break
			}
		}
	}

	if _, err := p.expect(TokenCloseParentheses, ""); err != nil {
		return nil, err
	}

	return &FuncCall{Loc: name.Loc, Name: name.Value, Args: args}, nil
}

func (p *Parser) literal() (Expression, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenString:
		p.next()
		return &StringLiteral{Loc: tok.Loc, Value: tok.Value}, nil
	case TokenNumber:
		p.next()
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number %s", describe(tok))
		}

		return &NumberLiteral{Loc: tok.Loc, Value: n}, nil
	case TokenBoolean:
		p.next()
		return &BooleanLiteral{Loc: tok.Loc, Value: strings.EqualFold(tok.Value, "verdadero")}, nil
	default:
		return nil, p.unexpected("expression")
	}
}
