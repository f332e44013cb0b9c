package algoritmo

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// NativeFunc is a host function callable from programs. MaxArgs < 0 means
// no upper bound.
type NativeFunc struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(args []Value) (Value, error)
}

func (f *NativeFunc) checkArity(n int) error {
	if n < f.MinArgs || (f.MaxArgs >= 0 && n > f.MaxArgs) {
		switch {
		case f.MinArgs == f.MaxArgs:
			return fmt.Errorf("%s expects %d argument(s), got %d", f.Name, f.MinArgs, n)
		case f.MaxArgs < 0:
			return fmt.Errorf("%s expects at least %d argument(s), got %d", f.Name, f.MinArgs, n)
		default:
			return fmt.Errorf("%s expects %d to %d arguments, got %d", f.Name, f.MinArgs, f.MaxArgs, n)
		}
	}

	return nil
}

// MathFunctions maps the single-argument numeric builtins to their Go
// implementation. The IR generator lowers the same names to libm calls.
var MathFunctions = map[string]func(float64) float64{
	"sqrt":  math.Sqrt,
	"raiz":  math.Sqrt,
	"sin":   math.Sin,
	"sen":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"abs":   math.Abs,
	"log":   math.Log10,
	"ln":    math.Log,
	"exp":   math.Exp,
	"round": roundHalfUp,
	"trunc": math.Trunc,
	"floor": math.Floor,
	"ceil":  math.Ceil,
}

// roundHalfUp rounds .5 towards positive infinity, so round(-2.5) is -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Builtins returns the native function table. rng backs aleatorio and azar.
func Builtins(rng *rand.Rand) []*NativeFunc {
	var funcs []*NativeFunc
	for name, fn := range MathFunctions {
		funcs = append(funcs, mathBuiltin(name, fn))
	}

	return append(funcs,
		&NativeFunc{Name: "aleatorio", MinArgs: 0, MaxArgs: 2, Fn: func(args []Value) (Value, error) {
			lo, hi := 0.0, 1.0
			if len(args) > 0 {
				n, err := numberArg("aleatorio", args[0])
				if err != nil {
					return Value{}, err
				}
				lo = n
			}
			if len(args) > 1 {
				n, err := numberArg("aleatorio", args[1])
				if err != nil {
					return Value{}, err
				}
				hi = n
			}

			return Number(lo + rng.Float64()*(hi-lo)), nil
		}},
		&NativeFunc{Name: "azar", MinArgs: 0, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
			hi := 100.0
			if len(args) > 0 {
				n, err := numberArg("azar", args[0])
				if err != nil {
					return Value{}, err
				}
				hi = n
			}

			return Number(math.Floor(rng.Float64()*hi) + 1), nil
		}},
		&NativeFunc{Name: "longitud", MinArgs: 1, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
			switch v := args[0]; v.Kind {
			case KindText:
				return Number(float64(len([]rune(v.Str)))), nil
			case KindArray:
				return Number(float64(len(v.Arr.Elems))), nil
			default:
				return Value{}, fmt.Errorf("longitud expects text or an array, got %s", v.Kind)
			}
		}},
		&NativeFunc{Name: "concatenar", MinArgs: 2, MaxArgs: -1, Fn: func(args []Value) (Value, error) {
			var b strings.Builder
			for _, a := range args {
				b.WriteString(a.String())
			}

			return Text(b.String()), nil
		}},
		&NativeFunc{Name: "subcadena", MinArgs: 3, MaxArgs: 3, Fn: func(args []Value) (Value, error) {
			start, err := numberArg("subcadena", args[1])
			if err != nil {
				return Value{}, err
			}
			end, err := numberArg("subcadena", args[2])
			if err != nil {
				return Value{}, err
			}

			return Text(substring(args[0].String(), start-1, end)), nil
		}},
		&NativeFunc{Name: "convertiranumero", MinArgs: 1, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
			return Number(toNumber(args[0])), nil
		}},
		&NativeFunc{Name: "convertiratexto", MinArgs: 1, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
			return Text(args[0].String()), nil
		}},
	)
}

func mathBuiltin(name string, fn func(float64) float64) *NativeFunc {
	return &NativeFunc{
		Name:    name,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []Value) (Value, error) {
			n, err := numberArg(name, args[0])
			if err != nil {
				return Value{}, err
			}

			return Number(fn(n)), nil
		},
	}
}

func numberArg(fn string, v Value) (float64, error) {
	if v.Kind != KindNumber {
		return 0, fmt.Errorf("%s expects a number, got %s", fn, v.Kind)
	}

	return v.Num, nil
}

// substring takes runes [from, to) after clamping both bounds into the
// text and swapping them when reversed.
func substring(s string, from, to float64) string {
	runes := []rune(s)
	clamp := func(f float64) int {
		switch {
		case math.IsNaN(f) || f < 0:
			return 0
		case f > float64(len(runes)):
			return len(runes)
		default:
			return int(f)
		}
	}

	i, j := clamp(from), clamp(to)
	if i > j {
		i, j = j, i
	}

	return string(runes[i:j])
}

func toNumber(v Value) float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBoolean:
		if v.Bool {
			return 1
		}

		return 0
	case KindText:
		trimmed := strings.TrimSpace(v.Str)
		if trimmed == "" {
			return 0
		}

		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}

		return n
	default:
		return math.NaN()
	}
}
