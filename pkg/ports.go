package algoritmo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned by input ports that have run out of lines.
var ErrNoInput = errors.New("no more input")

// Output receives one line per Escribir statement, without the terminator.
type Output interface {
	WriteLine(line string) error
}

// Input supplies one line per Leer target. prompt names the target
// variable; ports may show it or ignore it.
type Input interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

type OutputFunc func(line string) error

func (f OutputFunc) WriteLine(line string) error {
	return f(line)
}

type InputFunc func(ctx context.Context, prompt string) (string, error)

func (f InputFunc) ReadLine(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// WriterOutput writes each line followed by "\n".
func WriterOutput(w io.Writer) Output {
	return OutputFunc(func(line string) error {
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

type readerInput struct {
	reader *bufio.Reader
}

// ReaderInput reads newline-terminated lines from r. A final line without
// a terminator is still returned.
func ReaderInput(r io.Reader) Input {
	return &readerInput{reader: bufio.NewReader(r)}
}

func (r *readerInput) ReadLine(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err == io.EOF {
			return "", ErrNoInput
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// LinesInput serves the given lines in order, then ErrNoInput.
func LinesInput(lines ...string) Input {
	pos := 0
	return InputFunc(func(ctx context.Context, _ string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if pos >= len(lines) {
			return "", ErrNoInput
		}

		line := lines[pos]
		pos++
		return line, nil
	})
}

// Recorder is an Output keeping every line in memory.
type Recorder struct {
	Lines []string
}

func (r *Recorder) WriteLine(line string) error {
	r.Lines = append(r.Lines, line)
	return nil
}
