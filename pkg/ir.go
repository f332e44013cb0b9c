package algoritmo

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ValueLookup maps variable names to their stack slots.
type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IRGenerator interface {
	Do() (IR, error)
}

type IR interface {
	fmt.Stringer
}

// LLVMIRBuilder lowers the numeric subset of the language. Every variable
// is a double; booleans are stored as 0 or 1.
type LLVMIRBuilder struct {
	mod    *ir.Module
	fn     *ir.Func
	entry  *ir.Block
	block  *ir.Block
	values *ValueLookup

	printf  *ir.Func
	libm    map[string]*ir.Func
	strings map[string]constant.Constant
	labels  int
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:     ir.NewModule(),
		values:  NewValueLookup(),
		libm:    make(map[string]*ir.Func),
		strings: make(map[string]constant.Constant),
	}

	defineBuiltins(builder)
	return builder
}

var libmNames = map[string]string{
	"sqrt":  "sqrt",
	"raiz":  "sqrt",
	"sin":   "sin",
	"sen":   "sin",
	"cos":   "cos",
	"tan":   "tan",
	"abs":   "fabs",
	"log":   "log10",
	"ln":    "log",
	"exp":   "exp",
	"trunc": "trunc",
	"floor": "floor",
	"ceil":  "ceil",
	"round": "floor", // round(x) is floor(x + 0.5)
}

func defineBuiltins(b *LLVMIRBuilder) {
	b.printf = b.mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	b.printf.Sig.Variadic = true
}

// libmFunc declares a C math function on first use.
func (b *LLVMIRBuilder) libmFunc(name string) *ir.Func {
	if f, ok := b.libm[name]; ok {
		return f
	}

	f := b.mod.NewFunc(name, types.Double, ir.NewParam("x", types.Double))
	b.libm[name] = f
	return f
}

// cString interns s as a NUL-terminated global and returns an i8* to it.
func (b *LLVMIRBuilder) cString(s string) constant.Constant {
	if ptr, ok := b.strings[s]; ok {
		return ptr
	}

	data := s + "\x00"
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strings)), constant.NewCharArrayFromString(data))
	glob.Immutable = true

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(types.NewArray(uint64(len(data)), types.I8), glob, zero, zero)
	b.strings[s] = ptr

	return ptr
}

func (b *LLVMIRBuilder) newBlock(prefix string) *ir.Block {
	blk := b.fn.NewBlock(fmt.Sprintf("%s.%d", prefix, b.labels))
	b.labels++

	return blk
}

// slot returns the stack slot of a variable, allocating it zeroed in the
// entry block on first use.
func (b *LLVMIRBuilder) slot(name string) value.Value {
	if v, ok := b.values.Get(name); ok {
		return v
	}

	v := b.entry.NewAlloca(types.Double)
	v.SetName(name + ".addr")
	b.entry.NewStore(constant.NewFloat(types.Double, 0), v)
	b.values.Set(name, v)

	return v
}

func (b *LLVMIRBuilder) program(p *Program) error {
	b.fn = b.mod.NewFunc("main", types.I32)
	b.entry = b.fn.NewBlock("entry")

	body := b.newBlock("body")
	b.block = body

	if err := b.statements(p.Body); err != nil {
		return err
	}

	b.entry.NewBr(body)
	b.block.NewRet(constant.NewInt(types.I32, 0))
	return nil
}

func (b *LLVMIRBuilder) statements(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := b.statement(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (b *LLVMIRBuilder) statement(stmt Statement) error {
	switch s := stmt.(type) {
	case *Assignment:
		v, err := b.expression(s.Value)
		if err != nil {
			return err
		}

		b.block.NewStore(v, b.slot(s.Name))
		return nil
	case *PrintStmt:
		return b.print(s)
	case *IfStmt:
		return b.ifStmt(s)
	case *SwitchStmt:
		return b.switchStmt(s)
	case *WhileStmt:
		return b.whileStmt(s)
	case *RepeatStmt:
		return b.repeatStmt(s)
	case *ForStmt:
		return b.forStmt(s)
	case *ArrayDecl, *ArrayAssign:
		return &UnsupportedError{Loc: stmt.GetLocation(), Construct: "arrays"}
	case *ReadStmt:
		return &UnsupportedError{Loc: stmt.GetLocation(), Construct: "Leer"}
	default:
		return &UnsupportedError{Loc: stmt.GetLocation(), Construct: fmt.Sprintf("%T", stmt)}
	}
}

func (b *LLVMIRBuilder) print(s *PrintStmt) error {
	for _, expr := range s.Exprs {
		if lit, ok := expr.(*StringLiteral); ok {
			b.block.NewCall(b.printf, b.cString("%s"), b.cString(lit.Value))
			continue
		}

		v, err := b.expression(expr)
		if err != nil {
			return err
		}

		b.block.NewCall(b.printf, b.cString("%.15g"), v)
	}

	b.block.NewCall(b.printf, b.cString("\n"))
	return nil
}

func (b *LLVMIRBuilder) ifStmt(s *IfStmt) error {
	cond, err := b.condition(s.Cond)
	if err != nil {
		return err
	}

	then, els, end := b.newBlock("if.then"), b.newBlock("if.else"), b.newBlock("if.end")
	b.block.NewCondBr(cond, then, els)

	b.block = then
	if err := b.statements(s.Then); err != nil {
		return err
	}
	b.block.NewBr(end)

	b.block = els
	if err := b.statements(s.Else); err != nil {
		return err
	}
	b.block.NewBr(end)

	b.block = end
	return nil
}

func (b *LLVMIRBuilder) switchStmt(s *SwitchStmt) error {
	subject, err := b.expression(s.Subject)
	if err != nil {
		return err
	}

	end := b.newBlock("switch.end")
	for i, label := range s.Cases {
		v, err := b.expression(label)
		if err != nil {
			return err
		}

		body, next := b.newBlock("switch.case"), b.newBlock("switch.next")
		b.block.NewCondBr(b.block.NewFCmp(enum.FPredOEQ, subject, v), body, next)

		b.block = body
		if err := b.statements(s.Blocks[i]); err != nil {
			return err
		}
		b.block.NewBr(end)

		b.block = next
	}

	if err := b.statements(s.Default); err != nil {
		return err
	}
	b.block.NewBr(end)

	b.block = end
	return nil
}

func (b *LLVMIRBuilder) whileStmt(s *WhileStmt) error {
	head, body, end := b.newBlock("while.cond"), b.newBlock("while.body"), b.newBlock("while.end")
	b.block.NewBr(head)

	b.block = head
	cond, err := b.condition(s.Cond)
	if err != nil {
		return err
	}
	b.block.NewCondBr(cond, body, end)

	b.block = body
	if err := b.statements(s.Body); err != nil {
		return err
	}
	b.block.NewBr(head)

	b.block = end
	return nil
}

func (b *LLVMIRBuilder) repeatStmt(s *RepeatStmt) error {
	body, end := b.newBlock("repeat.body"), b.newBlock("repeat.end")
	b.block.NewBr(body)

	b.block = body
	if err := b.statements(s.Body); err != nil {
		return err
	}

	cond, err := b.condition(s.Cond)
	if err != nil {
		return err
	}
	b.block.NewCondBr(cond, end, body)

	b.block = end
	return nil
}

func (b *LLVMIRBuilder) forStmt(s *ForStmt) error {
	counter := b.slot(s.Var)
	b.block.NewStore(constant.NewFloat(types.Double, s.From), counter)

	head, body, end := b.newBlock("for.cond"), b.newBlock("for.body"), b.newBlock("for.end")
	b.block.NewBr(head)

	b.block = head
	cur := b.block.NewLoad(types.Double, counter)
	b.block.NewCondBr(b.block.NewFCmp(enum.FPredOLE, cur, constant.NewFloat(types.Double, s.To)), body, end)

	b.block = body
	if err := b.statements(s.Body); err != nil {
		return err
	}
	next := b.block.NewFAdd(b.block.NewLoad(types.Double, counter), constant.NewFloat(types.Double, s.Step))
	b.block.NewStore(next, counter)
	b.block.NewBr(head)

	b.block = end
	return nil
}

// condition turns a double into an i1. NaN counts as false.
func (b *LLVMIRBuilder) condition(expr Expression) (value.Value, error) {
	v, err := b.expression(expr)
	if err != nil {
		return nil, err
	}

	return b.truth(v), nil
}

func (b *LLVMIRBuilder) truth(v value.Value) value.Value {
	return b.block.NewFCmp(enum.FPredONE, v, constant.NewFloat(types.Double, 0))
}

func (b *LLVMIRBuilder) boolean(v value.Value) value.Value {
	return b.block.NewUIToFP(v, types.Double)
}

func (b *LLVMIRBuilder) expression(expr Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *NumberLiteral:
		return constant.NewFloat(types.Double, e.Value), nil
	case *BooleanLiteral:
		if e.Value {
			return constant.NewFloat(types.Double, 1), nil
		}

		return constant.NewFloat(types.Double, 0), nil
	case *Identifier:
		slot, ok := b.values.Get(e.Name)
		if !ok {
			return nil, &UnsupportedError{Loc: e.Loc, Construct: fmt.Sprintf("read of '%s' before any assignment", e.Name)}
		}

		return b.block.NewLoad(types.Double, slot), nil
	case *UnaryExpr:
		v, err := b.expression(e.Operand)
		if err != nil {
			return nil, err
		}

		return b.block.NewFSub(constant.NewFloat(types.Double, 0), v), nil
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *FuncCall:
		return b.functionCall(e)
	case *StringLiteral:
		return nil, &UnsupportedError{Loc: e.Loc, Construct: "text values outside Escribir"}
	case *ArrayAccess:
		return nil, &UnsupportedError{Loc: e.Loc, Construct: "arrays"}
	default:
		return nil, &UnsupportedError{Loc: expr.GetLocation(), Construct: fmt.Sprintf("%T", expr)}
	}
}

var comparisonPredicates = map[BinaryOp]enum.FPred{
	BinaryGreater:      enum.FPredOGT,
	BinaryLess:         enum.FPredOLT,
	BinaryGreaterEqual: enum.FPredOGE,
	BinaryLessEqual:    enum.FPredOLE,
	BinaryEqual:        enum.FPredOEQ,
	BinaryNotEqual:     enum.FPredUNE,
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.expression(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := b.expression(expr.Op2)
	if err != nil {
		return nil, err
	}

	if pred, ok := comparisonPredicates[expr.Operation]; ok {
		return b.boolean(b.block.NewFCmp(pred, v1, v2)), nil
	}

	switch expr.Operation {
	case BinaryAddition:
		return b.block.NewFAdd(v1, v2), nil
	case BinarySubtraction:
		return b.block.NewFSub(v1, v2), nil
	case BinaryMultiplication:
		return b.block.NewFMul(v1, v2), nil
	case BinaryDivision:
		return b.block.NewFDiv(v1, v2), nil
	case BinaryAnd:
		return b.boolean(b.block.NewAnd(b.truth(v1), b.truth(v2))), nil
	case BinaryOr:
		return b.boolean(b.block.NewOr(b.truth(v1), b.truth(v2))), nil
	default:
		return nil, &UnsupportedError{Loc: expr.Loc, Construct: fmt.Sprintf("operator '%s'", expr.Operation)}
	}
}

func (b *LLVMIRBuilder) functionCall(expr *FuncCall) (value.Value, error) {
	name, ok := libmNames[strings.ToLower(expr.Name)]
	if !ok {
		return nil, &UnsupportedError{Loc: expr.Loc, Construct: fmt.Sprintf("function '%s'", expr.Name)}
	}

	if len(expr.Args) != 1 {
		return nil, &UnsupportedError{Loc: expr.Loc, Construct: fmt.Sprintf("%s with %d arguments", expr.Name, len(expr.Args))}
	}

	arg, err := b.expression(expr.Args[0])
	if err != nil {
		return nil, err
	}

	if strings.ToLower(expr.Name) == "round" {
		arg = b.block.NewFAdd(arg, constant.NewFloat(types.Double, 0.5))
	}

	return b.block.NewCall(b.libmFunc(name), arg), nil
}

type LLVMGenerator struct {
	prog *Program
}

func NewLLVMGenerator(prog *Program) *LLVMGenerator {
	return &LLVMGenerator{
		prog: prog,
	}
}

func (g LLVMGenerator) Do() (IR, error) {
	builder := NewLLVMIRBuilder()
	if err := builder.program(g.prog); err != nil {
		return nil, err
	}

	return builder.mod, nil
}
