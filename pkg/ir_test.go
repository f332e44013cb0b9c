package algoritmo

import (
	"errors"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueLookup(t *testing.T) {
	vals := NewValueLookup()

	val1 := constant.NewInt(types.I32, 1)
	val2 := constant.NewInt(types.I32, 2)

	vals.Set("id1", val1)
	vals.Set("id2", val2)

	got, ok := vals.Get("id1")
	assert.True(t, ok)
	assert.Equal(t, val1, got)

	got, ok = vals.Get("id2")
	assert.True(t, ok)
	assert.Equal(t, val2, got)

	_, ok = vals.Get("id3")
	assert.False(t, ok)
}

func generateIR(t *testing.T, body string) (string, error) {
	t.Helper()

	prog, err := NewCompiler().CompileString(wrap(body))
	require.NoError(t, err)

	out, err := NewLLVMGenerator(prog).Do()
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

func TestLLVMGenerator(t *testing.T) {
	cases := []struct {
		body     string
		contains []string
	}{
		{
			"x <- 2 * 10\nEscribir x",
			[]string{"define i32 @main()", "@printf(", "%x.addr = alloca double", "fmul double", "ret i32 0"},
		},
		{
			`Escribir "Hola", 1`,
			[]string{"@.str.", "Hola"},
		},
		{
			"s <- 0\nPara i <- 1 Hasta 10 Con Paso 2 Hacer\ns <- s + i\nFinPara\nEscribir s",
			[]string{"for.cond.", "for.body.", "fcmp ole double", "fadd double"},
		},
		{
			"x <- 3\nSi x > 1 & verdadero Entonces\nEscribir 1\nSino\nEscribir 0\nFinSi",
			[]string{"if.then.", "if.else.", "fcmp ogt double", "and i1", "br i1"},
		},
		{
			"x <- 2\nSegun x Hacer\nCaso 1:\nEscribir 1\nCaso 2:\nEscribir 2\nDe Otro Modo:\nEscribir 0\nFinSegun",
			[]string{"switch.case.", "switch.end.", "fcmp oeq double"},
		},
		{
			"x <- 0\nMientras x < 3 Hacer\nx <- x + 1\nFinMientras",
			[]string{"while.cond.", "while.body.", "fcmp olt double"},
		},
		{
			"x <- 0\nRepetir\nx <- x + 1\nHasta Que x >= 3",
			[]string{"repeat.body.", "fcmp oge double"},
		},
		{
			"Escribir raiz(16), round(5 / 2), -PI",
			[]string{"@sqrt(", "@floor(", "fsub double"},
		},
	}

	for _, c := range cases {
		out, err := generateIR(t, c.body)
		if !assert.NoError(t, err, c.body) {
			continue
		}

		for _, s := range c.contains {
			assert.Contains(t, out, s, c.body)
		}
	}
}

func TestLLVMGeneratorUnsupported(t *testing.T) {
	cases := []string{
		"Dimension v[3]",
		"Leer x",
		`x <- "texto"`,
		`Escribir longitud("abc")`,
		"Escribir y",
		"Escribir raiz(1, 2)",
	}

	for _, body := range cases {
		_, err := generateIR(t, body)

		var unsupported *UnsupportedError
		assert.True(t, errors.As(err, &unsupported), body)
	}
}

func TestLLVMGeneratorDeclaresLibmOnce(t *testing.T) {
	out, err := generateIR(t, "Escribir raiz(4)\nEscribir sqrt(9)")
	require.NoError(t, err)

	assert.Equal(t, 1, countDeclarations(out, "@sqrt("))
}

func countDeclarations(ir, fn string) int {
	n := 0
	for _, line := range strings.Split(ir, "\n") {
		if strings.HasPrefix(line, "declare ") && strings.Contains(line, fn) {
			n++
		}
	}

	return n
}
