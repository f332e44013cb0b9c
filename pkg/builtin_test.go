package algoritmo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callBuiltin(t *testing.T, name string, args ...Value) (Value, error) {
	t.Helper()

	env := NewEnvironment(Builtins(rand.New(rand.NewSource(3))))
	fn, ok := env.Function(name)
	require.True(t, ok, name)

	if err := fn.checkArity(len(args)); err != nil {
		return Value{}, err
	}

	return fn.Fn(args)
}

func TestBuiltins(t *testing.T) {
	cases := []struct {
		name   string
		args   []Value
		fail   bool
		expect Value
	}{
		{"raiz", []Value{Number(9)}, false, Number(3)},
		{"SQRT", []Value{Number(16)}, false, Number(4)},
		{"abs", []Value{Number(-2)}, false, Number(2)},
		{"ln", []Value{Number(1)}, false, Number(0)},
		{"round", []Value{Number(2.5)}, false, Number(3)},
		{"round", []Value{Number(-2.5)}, false, Number(-2)},
		{"trunc", []Value{Number(-2.7)}, false, Number(-2)},
		{"floor", []Value{Number(-2.2)}, false, Number(-3)},
		{"ceil", []Value{Number(2.2)}, false, Number(3)},
		{"sen", []Value{Number(0)}, false, Number(0)},
		{"raiz", []Value{Text("9")}, true, Value{}},
		{"raiz", nil, true, Value{}},
		{"longitud", []Value{Text("año")}, false, Number(3)},
		{"longitud", []Value{NewArray(4)}, false, Number(4)},
		{"longitud", []Value{Number(4)}, true, Value{}},
		{"concatenar", []Value{Text("a"), Number(1), Boolean(true)}, false, Text("a1verdadero")},
		{"concatenar", []Value{Text("a")}, true, Value{}},
		{"subcadena", []Value{Text("algoritmo"), Number(1), Number(4)}, false, Text("algo")},
		{"subcadena", []Value{Text("algoritmo"), Number(5), Number(100)}, false, Text("ritmo")},
		{"subcadena", []Value{Text("algoritmo"), Number(4), Number(1)}, false, Text("lg")},
		{"subcadena", []Value{Text("ñandú"), Number(-3), Number(2)}, false, Text("ña")},
		{"subcadena", []Value{Text("abc"), Text("1"), Number(2)}, true, Value{}},
		{"convertiranumero", []Value{Text(" 12 ")}, false, Number(12)},
		{"convertiranumero", []Value{Text("")}, false, Number(0)},
		{"convertiranumero", []Value{Boolean(true)}, false, Number(1)},
		{"convertiratexto", []Value{Number(0.25)}, false, Text("0.25")},
	}

	for _, c := range cases {
		v, err := callBuiltin(t, c.name, c.args...)
		if c.fail {
			assert.Error(t, err, c.name)
			continue
		}

		if assert.NoError(t, err, c.name) {
			assert.Equal(t, c.expect, v, c.name)
		}
	}
}

func TestLogarithms(t *testing.T) {
	v, err := callBuiltin(t, "log", Number(1000))
	require.NoError(t, err)
	assert.InDelta(t, 3, v.Num, 1e-12)

	v, err = callBuiltin(t, "exp", Number(1))
	require.NoError(t, err)
	assert.InDelta(t, math.E, v.Num, 1e-12)
}

func TestConvertirANumeroInvalid(t *testing.T) {
	v, err := callBuiltin(t, "convertiranumero", Text("hola"))
	require.NoError(t, err)

	assert.Equal(t, KindNumber, v.Kind)
	assert.True(t, math.IsNaN(v.Num))
}

func TestRandomBuiltins(t *testing.T) {
	for i := 0; i < 200; i++ {
		v, err := callBuiltin(t, "azar", Number(6))
		require.NoError(t, err)
		assert.True(t, v.Num >= 1 && v.Num <= 6, v.Num)
		assert.Equal(t, math.Trunc(v.Num), v.Num)

		v, err = callBuiltin(t, "aleatorio", Number(10), Number(20))
		require.NoError(t, err)
		assert.True(t, v.Num >= 10 && v.Num < 20, v.Num)

		v, err = callBuiltin(t, "aleatorio")
		require.NoError(t, err)
		assert.True(t, v.Num >= 0 && v.Num < 1, v.Num)
	}

	_, err := callBuiltin(t, "aleatorio", Number(1), Number(2), Number(3))
	assert.Error(t, err)
}

func TestCheckArityMessages(t *testing.T) {
	exact := &NativeFunc{Name: "f", MinArgs: 1, MaxArgs: 1}
	ranged := &NativeFunc{Name: "g", MinArgs: 0, MaxArgs: 2}
	open := &NativeFunc{Name: "h", MinArgs: 2, MaxArgs: -1}

	assert.EqualError(t, exact.checkArity(2), "f expects 1 argument(s), got 2")
	assert.EqualError(t, ranged.checkArity(3), "g expects 0 to 2 arguments, got 3")
	assert.EqualError(t, open.checkArity(1), "h expects at least 2 argument(s), got 1")
	assert.NoError(t, open.checkArity(10))
}
