package algoritmo

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxArraySize is the largest Dimension accepted unless
// WithMaxArraySize says otherwise.
const DefaultMaxArraySize = 1 << 20

type Option func(*Interpreter)

func WithOutput(out Output) Option {
	return func(it *Interpreter) { it.out = out }
}

func WithInput(in Input) Option {
	return func(it *Interpreter) { it.in = in }
}

// WithMaxSteps bounds the number of statements and loop iterations a run
// may execute. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(it *Interpreter) { it.maxSteps = n }
}

// WithMaxArraySize bounds the number of elements a Dimension may declare.
// Values below one keep DefaultMaxArraySize.
func WithMaxArraySize(n int) Option {
	return func(it *Interpreter) {
		if n > 0 {
			it.maxArraySize = n
		}
	}
}

// WithRand sets the random source used by aleatorio and azar.
func WithRand(rng *rand.Rand) Option {
	return func(it *Interpreter) { it.rng = rng }
}

func WithLogger(logger *slog.Logger) Option {
	return func(it *Interpreter) { it.logger = logger }
}

// Interpreter walks a Program against a fresh Environment on every Run.
type Interpreter struct {
	out          Output
	in           Input
	rng          *rand.Rand
	maxSteps     int
	maxArraySize int
	logger       *slog.Logger

	env   *Environment
	steps int
}

func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		out:          WriterOutput(os.Stdout),
		in:           ReaderInput(os.Stdin),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		maxArraySize: DefaultMaxArraySize,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(it)
	}

	return it
}

// Environment returns the environment of the latest run.
func (it *Interpreter) Environment() *Environment {
	return it.env
}

// Run executes the program. The first error aborts the run. Cancelling ctx
// stops the run at the next statement or loop iteration.
func (it *Interpreter) Run(ctx context.Context, p *Program) error {
	it.env = NewEnvironment(Builtins(it.rng))
	it.steps = 0

	log := it.logger.With("run_id", uuid.NewString(), "program", p.Name)
	log.Debug("run started", "statements", len(p.Body))

	start := time.Now()
	if err := it.execBlock(ctx, p.Body); err != nil {
		log.Debug("run failed", "steps", it.steps, "error", err)
		return err
	}

	log.Debug("run finished", "steps", it.steps, "elapsed", time.Since(start))
	return nil
}

// checkpoint is the interruption hook, called before every statement and
// every loop iteration.
func (it *Interpreter) checkpoint(ctx context.Context, loc *Location) error {
	if err := ctx.Err(); err != nil {
		return &RuntimeError{Loc: loc, Msg: "execution interrupted", Err: err}
	}

	it.steps++
	if it.maxSteps > 0 && it.steps > it.maxSteps {
		return newRuntimeError(loc, "step limit of %d exceeded", it.maxSteps)
	}

	return nil
}

func (it *Interpreter) execBlock(ctx context.Context, stmts []Statement) error {
	for _, stmt := range stmts {
		if err := it.exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

func (it *Interpreter) exec(ctx context.Context, stmt Statement) error {
	if err := it.checkpoint(ctx, stmt.GetLocation()); err != nil {
		return err
	}

	switch s := stmt.(type) {
	case *Assignment:
		v, err := it.eval(s.Value)
		if err != nil {
			return err
		}

		if !it.env.Set(s.Name, v) {
			return newRuntimeError(s.Loc, "cannot assign to constant '%s'", s.Name)
		}
	case *ArrayDecl:
		return it.declareArray(s)
	case *ArrayAssign:
		return it.assignElement(s)
	case *PrintStmt:
		return it.print(s)
	case *ReadStmt:
		return it.read(ctx, s)
	case *IfStmt:
		cond, err := it.eval(s.Cond)
		if err != nil {
			return err
		}

		if cond.Truthy() {
			return it.execBlock(ctx, s.Then)
		}

		return it.execBlock(ctx, s.Else)
	case *SwitchStmt:
		return it.execSwitch(ctx, s)
	case *WhileStmt:
		for {
			if err := it.checkpoint(ctx, s.Loc); err != nil {
				return err
			}

			cond, err := it.eval(s.Cond)
			if err != nil {
				return err
			}

			if !cond.Truthy() {
				return nil
			}

			if err := it.execBlock(ctx, s.Body); err != nil {
				return err
			}
		}
	case *RepeatStmt:
		for {
			if err := it.checkpoint(ctx, s.Loc); err != nil {
				return err
			}

			if err := it.execBlock(ctx, s.Body); err != nil {
				return err
			}

			cond, err := it.eval(s.Cond)
			if err != nil {
				return err
			}

			if cond.Truthy() {
				return nil
			}
		}
	case *ForStmt:
		// A step that never reaches To loops until the checkpoint stops it.
		for v := s.From; v <= s.To; v += s.Step {
			if err := it.checkpoint(ctx, s.Loc); err != nil {
				return err
			}

			if !it.env.Set(s.Var, Number(v)) {
				return newRuntimeError(s.Loc, "cannot assign to constant '%s'", s.Var)
			}

			if err := it.execBlock(ctx, s.Body); err != nil {
				return err
			}
		}
	default:
		return newRuntimeError(stmt.GetLocation(), "unsupported statement %T", stmt)
	}

	return nil
}

func (it *Interpreter) declareArray(s *ArrayDecl) error {
	size, err := it.eval(s.Size)
	if err != nil {
		return err
	}

	if it.env.Has(s.Name) {
		return newRuntimeError(s.Loc, "variable '%s' already exists", s.Name)
	}

	if size.Kind != KindNumber || size.Num < 0 || size.Num != math.Trunc(size.Num) {
		return newRuntimeError(s.Loc, "invalid array size %s for '%s'", size, s.Name)
	}

	if size.Num > float64(it.maxArraySize) {
		return newRuntimeError(s.Loc, "invalid array size %s for '%s': limit is %d", size, s.Name, it.maxArraySize)
	}

	it.env.Set(s.Name, NewArray(int(size.Num)))
	return nil
}

func (it *Interpreter) assignElement(s *ArrayAssign) error {
	arr, err := it.lookupArray(s.Loc, s.Name)
	if err != nil {
		return err
	}

	idx, err := it.index(s.Loc, s.Name, arr, s.Index)
	if err != nil {
		return err
	}

	v, err := it.eval(s.Value)
	if err != nil {
		return err
	}

	arr.Elems[idx] = v
	return nil
}

func (it *Interpreter) lookupArray(loc *Location, name string) (*Array, error) {
	v, ok := it.env.Get(name)
	if !ok {
		return nil, newRuntimeError(loc, "undefined variable '%s'", name)
	}

	if v.Kind != KindArray {
		return nil, newRuntimeError(loc, "'%s' is not an array", name)
	}

	return v.Arr, nil
}

// index evaluates a 1-based index and returns the matching 0-based slot.
func (it *Interpreter) index(loc *Location, name string, arr *Array, expr Expression) (int, error) {
	v, err := it.eval(expr)
	if err != nil {
		return 0, err
	}

	if v.Kind != KindNumber || v.Num != math.Trunc(v.Num) {
		return 0, newRuntimeError(loc, "invalid index %s for '%s'", v, name)
	}

	if v.Num < 1 || v.Num > float64(len(arr.Elems)) {
		return 0, newRuntimeError(loc, "index %s out of range [1, %d] for '%s'", v, len(arr.Elems), name)
	}

	return int(v.Num) - 1, nil
}

func (it *Interpreter) print(s *PrintStmt) error {
	var line []byte
	for _, expr := range s.Exprs {
		v, err := it.eval(expr)
		if err != nil {
			return err
		}

		line = append(line, v.String()...)
	}

	if err := it.out.WriteLine(string(line)); err != nil {
		return &RuntimeError{Loc: s.Loc, Msg: "output failed", Err: err}
	}

	return nil
}

func (it *Interpreter) read(ctx context.Context, s *ReadStmt) error {
	for _, target := range s.Targets {
		line, err := it.in.ReadLine(ctx, target.Name)
		if err != nil {
			return &RuntimeError{Loc: target.Loc, Msg: "reading '" + target.Name + "' failed", Err: err}
		}

		if !it.env.Set(target.Name, coerceInput(line)) {
			return newRuntimeError(target.Loc, "cannot assign to constant '%s'", target.Name)
		}
	}

	return nil
}

// execSwitch runs the first case whose label equals the subject. Labels are
// evaluated in order and scanning stops at the first match.
func (it *Interpreter) execSwitch(ctx context.Context, s *SwitchStmt) error {
	subject, err := it.eval(s.Subject)
	if err != nil {
		return err
	}

	for i, label := range s.Cases {
		v, err := it.eval(label)
		if err != nil {
			return err
		}

		if v.Equal(subject) {
			return it.execBlock(ctx, s.Blocks[i])
		}
	}

	return it.execBlock(ctx, s.Default)
}

func (it *Interpreter) eval(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *StringLiteral:
		return Text(e.Value), nil
	case *NumberLiteral:
		return Number(e.Value), nil
	case *BooleanLiteral:
		return Boolean(e.Value), nil
	case *Identifier:
		v, ok := it.env.Get(e.Name)
		if !ok {
			return Value{}, newRuntimeError(e.Loc, "undefined variable '%s'", e.Name)
		}

		return v, nil
	case *UnaryExpr:
		v, err := it.eval(e.Operand)
		if err != nil {
			return Value{}, err
		}

		if e.Operation != UnaryNegative || v.Kind != KindNumber {
			return Value{}, newRuntimeError(e.Loc, "cannot apply unary '%s' to %s", e.Operation, v.Kind)
		}

		return Number(-v.Num), nil
	case *BinaryExpr:
		lhs, err := it.eval(e.Op1)
		if err != nil {
			return Value{}, err
		}

		rhs, err := it.eval(e.Op2)
		if err != nil {
			return Value{}, err
		}

		return applyBinary(e.Loc, e.Operation, lhs, rhs)
	case *ArrayAccess:
		arr, err := it.lookupArray(e.Loc, e.Name)
		if err != nil {
			return Value{}, err
		}

		idx, err := it.index(e.Loc, e.Name, arr, e.Index)
		if err != nil {
			return Value{}, err
		}

		return arr.Elems[idx], nil
	case *FuncCall:
		return it.call(e)
	default:
		return Value{}, newRuntimeError(expr.GetLocation(), "unsupported expression %T", expr)
	}
}

func (it *Interpreter) call(e *FuncCall) (Value, error) {
	fn, ok := it.env.Function(e.Name)
	if !ok {
		return Value{}, newRuntimeError(e.Loc, "undefined function '%s'", e.Name)
	}

	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := it.eval(arg)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	if err := fn.checkArity(len(args)); err != nil {
		return Value{}, newRuntimeError(e.Loc, "%s", err)
	}

	v, err := fn.Fn(args)
	if err != nil {
		return Value{}, newRuntimeError(e.Loc, "%s", err)
	}

	return v, nil
}

func applyBinary(loc *Location, op BinaryOp, lhs, rhs Value) (Value, error) {
	bothNumbers := lhs.Kind == KindNumber && rhs.Kind == KindNumber

	switch op {
	case BinaryAddition:
		if bothNumbers {
			return Number(lhs.Num + rhs.Num), nil
		}

		if lhs.Kind == KindText || rhs.Kind == KindText {
			return Text(lhs.String() + rhs.String()), nil
		}
	case BinarySubtraction, BinaryMultiplication, BinaryDivision:
		if !bothNumbers {
			break
		}

		switch op {
		case BinarySubtraction:
			return Number(lhs.Num - rhs.Num), nil
		case BinaryMultiplication:
			return Number(lhs.Num * rhs.Num), nil
		default:
			if rhs.Num == 0 {
				return Value{}, newRuntimeError(loc, "division by zero")
			}

			return Number(lhs.Num / rhs.Num), nil
		}
	case BinaryGreater, BinaryLess, BinaryGreaterEqual, BinaryLessEqual:
		var cmp int
		switch {
		case bothNumbers:
			if math.IsNaN(lhs.Num) || math.IsNaN(rhs.Num) {
				return Boolean(false), nil
			}
			cmp = compareNumbers(lhs.Num, rhs.Num)
		case lhs.Kind == KindText && rhs.Kind == KindText:
			cmp = compareStrings(lhs.Str, rhs.Str)
		default:
			return Value{}, newRuntimeError(loc, "cannot compare %s and %s with '%s'", lhs.Kind, rhs.Kind, op)
		}

		switch op {
		case BinaryGreater:
			return Boolean(cmp > 0), nil
		case BinaryLess:
			return Boolean(cmp < 0), nil
		case BinaryGreaterEqual:
			return Boolean(cmp >= 0), nil
		default:
			return Boolean(cmp <= 0), nil
		}
	case BinaryEqual:
		return Boolean(lhs.Equal(rhs)), nil
	case BinaryNotEqual:
		return Boolean(!lhs.Equal(rhs)), nil
	case BinaryAnd:
		return Boolean(lhs.Truthy() && rhs.Truthy()), nil
	case BinaryOr:
		return Boolean(lhs.Truthy() || rhs.Truthy()), nil
	default:
		return Value{}, newRuntimeError(loc, "unsupported operator '%s'", op)
	}

	return Value{}, newRuntimeError(loc, "cannot apply '%s' to %s and %s", op, lhs.Kind, rhs.Kind)
}

func compareNumbers(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
