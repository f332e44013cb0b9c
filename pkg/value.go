package algoritmo

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindUninitialized ValueKind = iota
	KindNumber
	KindText
	KindBoolean
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindUninitialized:
		return "uninitialized"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is the tagged runtime value. Only the field selected by Kind is
// meaningful. Arrays are shared by reference.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
	Arr  *Array
}

type Array struct {
	Elems []Value
}

// Uninitialized fills freshly declared arrays.
var Uninitialized = Value{Kind: KindUninitialized}

func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

func Boolean(b bool) Value {
	return Value{Kind: KindBoolean, Bool: b}
}

func NewArray(size int) Value {
	elems := make([]Value, size)
	for i := range elems {
		elems[i] = Uninitialized
	}

	return Value{Kind: KindArray, Arr: &Array{Elems: elems}}
}

// String is the form written by Escribir.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return formatNumber(v.Num)
	case KindText:
		return v.Str
	case KindBoolean:
		if v.Bool {
			return "verdadero"
		}

		return "falso"
	case KindArray:
		parts := make([]string, len(v.Arr.Elems))
		for i, e := range v.Arr.Elems {
			parts[i] = e.String()
		}

		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0" // also covers -0
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Truthy follows the usual dynamic-language rules: zero, NaN, empty text,
// falso and uninitialized are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindText:
		return v.Str != ""
	case KindBoolean:
		return v.Bool
	case KindArray:
		return true
	default:
		return false
	}
}

// Equal is strict equality: kinds must match. Arrays compare by identity.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindText:
		return v.Str == o.Str
	case KindBoolean:
		return v.Bool == o.Bool
	case KindArray:
		return v.Arr == o.Arr
	default:
		return true
	}
}

// coerceInput turns a line typed by the user into a Number when it parses
// as one and keeps it as Text otherwise.
func coerceInput(line string) Value {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Text(line)
	}

	if !isDecimal(trimmed) {
		return Text(line)
	}

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) {
		return Number(n)
	}

	return Text(line)
}

// isDecimal rejects the hex and inf forms strconv accepts. Infinity is kept
// so that printed values can be read back.
func isDecimal(s string) bool {
	if strings.TrimLeft(s, "+-") == "Infinity" {
		return true
	}

	return strings.Trim(s, "0123456789+-.eE") == "" && strings.ContainsAny(s, "0123456789")
}
