package algoritmo

import (
	"math"
	"sort"
	"strings"
)

var predefinedValues = map[string]float64{
	"PI": math.Pi,
	"E":  math.E,
}

func isConstant(name string) bool {
	_, ok := predefinedValues[name]
	return ok
}

func constantValue(name string) (float64, bool) {
	v, ok := predefinedValues[name]
	return v, ok
}

// Environment is the single flat namespace of one run. Constants and
// native functions live in their own tables and cannot be overwritten.
type Environment struct {
	vars      map[string]Value
	constants map[string]Value
	funcs     map[string]*NativeFunc
}

func NewEnvironment(funcs []*NativeFunc) *Environment {
	env := &Environment{
		vars:      make(map[string]Value),
		constants: make(map[string]Value, len(predefinedValues)),
		funcs:     make(map[string]*NativeFunc, len(funcs)),
	}

	for name, v := range predefinedValues {
		env.constants[name] = Number(v)
	}

	for _, f := range funcs {
		env.funcs[strings.ToLower(f.Name)] = f
	}

	return env
}

func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.constants[name]; ok {
		return v, true
	}

	v, ok := e.vars[name]
	return v, ok
}

// Has reports whether name is bound to a variable or a constant.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Set creates or overwrites a variable. It returns false for constants.
func (e *Environment) Set(name string, v Value) bool {
	if _, ok := e.constants[name]; ok {
		return false
	}

	e.vars[name] = v
	return true
}

// Function looks a native function up ignoring case.
func (e *Environment) Function(name string) (*NativeFunc, bool) {
	f, ok := e.funcs[strings.ToLower(name)]
	return f, ok
}

// Names lists the bound variables in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
