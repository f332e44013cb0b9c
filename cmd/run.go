package main

import (
	"context"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	algoritmo "go.algoritmo.dev/pkg"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		timeout  time.Duration
		maxSteps int
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Run a program",
		Long: `Run a program read from a file, or from standard input when the
argument is "-". Leer reads from the terminal through a line editor, or
line by line from standard input when it is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			prog, err := algoritmo.NewCompiler().CompileString(src)
			if err != nil {
				return a.report(cmd, err, src)
			}

			l := a.limits()
			if cmd.Flags().Changed("timeout") {
				l.timeout = timeout
			}
			if cmd.Flags().Changed("max-steps") {
				l.maxSteps = maxSteps
			}
			if cmd.Flags().Changed("seed") {
				l.seed = seed
			}

			var in algoritmo.Input
			if args[0] != "-" && isInteractive(cmd.InOrStdin()) {
				state := liner.NewLiner()
				defer state.Close()
				state.SetCtrlCAborts(true)

				in = &consoleInput{state: state}
			} else {
				in = algoritmo.ReaderInput(cmd.InOrStdin())
			}

			if err := a.execute(cmd, prog, in, l); err != nil {
				return a.report(cmd, err, src)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "stop the program after this long (0 disables)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop the program after this many statements and loop iterations (0 disables)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for aleatorio and azar (0 picks one from the clock)")

	return cmd
}

func readSource(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}

	data, err := os.ReadFile(arg)
	return string(data), err
}

// execute runs prog until it finishes, fails, hits a limit or receives an
// interrupt.
func (a *app) execute(cmd *cobra.Command, prog *algoritmo.Program, in algoritmo.Input, l limits) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	opts := []algoritmo.Option{
		algoritmo.WithOutput(algoritmo.WriterOutput(cmd.OutOrStdout())),
		algoritmo.WithInput(in),
		algoritmo.WithLogger(a.logger),
		algoritmo.WithMaxSteps(l.maxSteps),
	}
	if l.seed != 0 {
		opts = append(opts, algoritmo.WithRand(rand.New(rand.NewSource(l.seed))))
	}

	return algoritmo.NewInterpreter(opts...).Run(ctx, prog)
}
