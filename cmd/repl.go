package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	algoritmo "go.algoritmo.dev/pkg"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive console",
		Long: `Read programs one line at a time. A program runs as soon as it is
complete (FinAlgoritmo); lines are accumulated while it is not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isInteractive(cmd.InOrStdin()) {
				return a.bufferedREPL(cmd, bufio.NewReader(cmd.InOrStdin()))
			}

			return a.interactiveREPL(cmd)
		},
	}
}

// feed appends a line to buffer and runs the program once it compiles.
// While more input may follow, an incomplete program stays buffered.
func (a *app) feed(cmd *cobra.Command, buffer *strings.Builder, line string, more bool, in algoritmo.Input) {
	buffer.WriteString(line)

	src := buffer.String()
	if strings.TrimSpace(src) == "" {
		buffer.Reset()
		return
	}

	prog, err := algoritmo.NewCompiler().CompileString(src)
	if err != nil {
		if algoritmo.IsIncomplete(err) && more {
			return
		}

		_ = a.report(cmd, err, src)
		buffer.Reset()
		return
	}

	buffer.Reset()
	if err := a.execute(cmd, prog, in, a.limits()); err != nil {
		_ = a.report(cmd, err, src)
	}
}

func (a *app) bufferedREPL(cmd *cobra.Command, reader *bufio.Reader) error {
	var buffer strings.Builder
	in := algoritmo.ReaderInput(reader)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read error: %w", err)
		}

		eof := errors.Is(err, io.EOF)
		a.feed(cmd, &buffer, line, !eof, in)

		if eof {
			return nil
		}
	}
}

func (a *app) interactiveREPL(cmd *cobra.Command) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := a.cfg.Console.HistoryFile
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	in := &consoleInput{state: state}
	out := cmd.OutOrStdout()

	var buffer strings.Builder
	for {
		prompt := a.cfg.Console.Prompt
		if buffer.Len() > 0 {
			prompt = a.cfg.Console.ContinuePrompt
		}

		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(out)
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(out)
				return nil
			default:
				return fmt.Errorf("read error: %w", err)
			}
		}

		if trimmed := strings.TrimSpace(input); trimmed != "" {
			state.AppendHistory(trimmed)
		}

		a.feed(cmd, &buffer, input+"\n", true, in)
	}
}
