package main

import (
	"context"
	"errors"
	"io"

	"github.com/peterh/liner"

	algoritmo "go.algoritmo.dev/pkg"
)

// consoleInput serves Leer through the line editor. Ctrl-C at the prompt
// interrupts the program.
type consoleInput struct {
	state *liner.State
}

func (c *consoleInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := c.state.Prompt(prompt + "? ")
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, liner.ErrPromptAborted):
		return "", context.Canceled
	case errors.Is(err, io.EOF):
		return "", algoritmo.ErrNoInput
	default:
		return "", err
	}
}
