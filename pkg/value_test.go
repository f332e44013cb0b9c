package algoritmo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	arr := NewArray(3)
	arr.Arr.Elems[0] = Number(1)
	arr.Arr.Elems[2] = Text("c")

	cases := []struct {
		value  Value
		expect string
	}{
		{Number(20), "20"},
		{Number(0.5), "0.5"},
		{Number(-3.25), "-3.25"},
		{Number(1e21), "1000000000000000000000"},
		{Number(math.Copysign(0, -1)), "0"},
		{Number(math.NaN()), "NaN"},
		{Number(math.Inf(1)), "Infinity"},
		{Number(math.Inf(-1)), "-Infinity"},
		{Text("hola"), "hola"},
		{Boolean(true), "verdadero"},
		{Boolean(false), "falso"},
		{Uninitialized, ""},
		{arr, "1,,c"},
		{NewArray(0), ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.value.String())
	}
}

func TestValueTruthy(t *testing.T) {
	assert.True(t, Number(2).Truthy())
	assert.False(t, Number(0).Truthy())
	assert.False(t, Number(math.NaN()).Truthy())
	assert.True(t, Text("a").Truthy())
	assert.False(t, Text("").Truthy())
	assert.True(t, Boolean(true).Truthy())
	assert.False(t, Boolean(false).Truthy())
	assert.False(t, Uninitialized.Truthy())
	assert.True(t, NewArray(0).Truthy())
}

func TestValueEqual(t *testing.T) {
	arr := NewArray(1)

	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Text("1")))
	assert.False(t, Number(math.NaN()).Equal(Number(math.NaN())))
	assert.True(t, Text("a").Equal(Text("a")))
	assert.True(t, Boolean(false).Equal(Boolean(false)))
	assert.True(t, Uninitialized.Equal(Uninitialized))
	assert.True(t, arr.Equal(arr))
	assert.False(t, arr.Equal(NewArray(1)))
}

func TestCoerceInput(t *testing.T) {
	cases := []struct {
		line   string
		expect Value
	}{
		{"42", Number(42)},
		{" 3.5 ", Number(3.5)},
		{"-7", Number(-7)},
		{"1e3", Number(1000)},
		{"hola", Text("hola")},
		{"", Text("")},
		{"  ", Text("  ")},
		{"NaN", Text("NaN")},
		{"12abc", Text("12abc")},
		{"inf", Text("inf")},
		{"infinity", Text("infinity")},
		{"0x1p3", Text("0x1p3")},
		{"0x10", Text("0x10")},
		{"Infinity", Number(math.Inf(1))},
		{"-Infinity", Number(math.Inf(-1))},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, coerceInput(c.line), c.line)
	}
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "unknown", ValueKind(42).String())
}
