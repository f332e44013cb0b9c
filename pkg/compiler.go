package algoritmo

import (
	"context"
	"io"
	"os"
)

// Compiler runs the front end: source text to a Program.
type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(filename string) (*Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return c.CompileFromReader(f)
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*Program, error) {
	tokens, err := NewLexer(reader).Run()
	if err != nil {
		return nil, err
	}

	return NewParser(tokens).Run()
}

func (c *Compiler) CompileString(src string) (*Program, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	return NewParser(tokens).Run()
}

// Execute compiles src and runs it on a fresh interpreter.
func Execute(ctx context.Context, src string, opts ...Option) error {
	prog, err := NewCompiler().CompileString(src)
	if err != nil {
		return err
	}

	return NewInterpreter(opts...).Run(ctx, prog)
}
