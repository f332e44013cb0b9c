package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hola = `Algoritmo hola
	Escribir "Hola"
FinAlgoritmo
`

// runCLI executes the root command with an isolated configuration.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[console]\ncolor = false\n"), 0o644))
	t.Setenv("ALGORITMO_CONFIG", cfg)

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "programa.alg")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRun(t *testing.T) {
	out, _, err := runCLI(t, "", "run", writeProgram(t, hola))
	require.NoError(t, err)
	assert.Equal(t, "Hola\n", out)
}

func TestRunStdin(t *testing.T) {
	out, _, err := runCLI(t, hola, "run", "-")
	require.NoError(t, err)
	assert.Equal(t, "Hola\n", out)
}

func TestRunReadsInput(t *testing.T) {
	src := "Algoritmo doble\nLeer n\nEscribir n * 2\nFinAlgoritmo\n"

	out, _, err := runCLI(t, "21\n", "run", writeProgram(t, src))
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestRunParseError(t *testing.T) {
	_, stderr, err := runCLI(t, "", "run", writeProgram(t, "Algoritmo p\nSi verdadero Entonces\n"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "PARSE ERROR at 2:14")
	assert.Contains(t, stderr, "expected 'finsi'")
}

func TestRunMaxSteps(t *testing.T) {
	src := "Algoritmo p\nMientras verdadero Hacer\nFinMientras\nFinAlgoritmo\n"

	_, stderr, err := runCLI(t, "", "run", "--max-steps", "10", writeProgram(t, src))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "step limit of 10 exceeded")
}

func TestRunTimeout(t *testing.T) {
	src := "Algoritmo p\nMientras verdadero Hacer\nFinMientras\nFinAlgoritmo\n"

	_, stderr, err := runCLI(t, "", "run", "--timeout", "20ms", writeProgram(t, src))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "execution interrupted")
}

func TestRunSeed(t *testing.T) {
	path := writeProgram(t, "Algoritmo p\nEscribir azar(1000)\nFinAlgoritmo\n")

	first, _, err := runCLI(t, "", "run", "--seed", "9", path)
	require.NoError(t, err)

	second, _, err := runCLI(t, "", "run", "--seed", "9", path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "run", filepath.Join(t.TempDir(), "missing.alg"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestTokens(t *testing.T) {
	out, _, err := runCLI(t, "", "tokens", writeProgram(t, hola))
	require.NoError(t, err)

	assert.Contains(t, out, "KEYWORD")
	assert.Contains(t, out, `"Hola"`)
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestAst(t *testing.T) {
	out, _, err := runCLI(t, "", "ast", writeProgram(t, hola))
	require.NoError(t, err)

	assert.Contains(t, out, "node: Program")
	assert.Contains(t, out, "name: hola")
	assert.Contains(t, out, "node: Print")
}

func TestIR(t *testing.T) {
	out, _, err := runCLI(t, "", "ir", writeProgram(t, "Algoritmo p\nx <- raiz(2)\nEscribir x\nFinAlgoritmo\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "define i32 @main()")

	_, stderr, err := runCLI(t, "", "ir", writeProgram(t, "Algoritmo p\nDimension v[2]\nFinAlgoritmo\n"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "UNSUPPORTED")
}

func TestIRHelp(t *testing.T) {
	out, _, err := runCLI(t, "", "ir", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "variables start at 0")
	assert.Contains(t, out, "Escribir prints 1 and 0")
}

func TestRepl(t *testing.T) {
	input := strings.Join([]string{
		"Algoritmo uno",
		"Escribir 1",
		"FinAlgoritmo",
		"",
		"Algoritmo dos",
		"Leer x",
		"Escribir x + 1",
		"FinAlgoritmo",
		"41",
		"Algoritmo roto",
		"FinSi",
		"Algoritmo tres",
		"Escribir 3",
		"FinAlgoritmo",
	}, "\n")

	out, stderr, err := runCLI(t, input, "repl")
	require.NoError(t, err)

	assert.Equal(t, "1\n42\n3\n", out)
	assert.Contains(t, stderr, "invalid statement: 'FinSi'")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "algoritmo dev\n", out)
}

func TestConfigFlag(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "limits.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[interpreter]\nmax_steps = 3\n[console]\ncolor = false\n"), 0o644))

	src := "Algoritmo p\nPara i <- 1 Hasta 10 Hacer\nFinPara\nFinAlgoritmo\n"
	_, stderr, err := runCLI(t, "", "--config", cfg, "run", writeProgram(t, src))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "step limit of 3 exceeded")

	_, _, err = runCLI(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "version")
	assert.Error(t, err)
}
