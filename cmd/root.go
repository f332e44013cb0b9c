package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"go.algoritmo.dev/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errReported is returned once a diagnostic has been written to stderr.
var errReported = errors.New("error already reported")

type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
	diag   diagnostics
}

// limits bound a single program run.
type limits struct {
	timeout  time.Duration
	maxSteps int
	seed     int64
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "algoritmo",
		Short: "Spanish pseudocode interpreter",
		Long: `algoritmo runs programs written in Spanish pseudocode
(Algoritmo ... FinAlgoritmo).

Commands:
  run      - run a program
  repl     - interactive console
  tokens   - print the tokens of a program
  ast      - print the syntax tree as YAML
  ir       - generate LLVM IR for the numeric subset`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $ALGORITMO_CONFIG or ./algoritmo.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCmd(a),
		newReplCmd(a),
		newTokensCmd(a),
		newAstCmd(a),
		newIRCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) setup(stderr io.Writer) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	a.logger, err = newLogger(a.cfg.Log, a.verbose, stderr)
	if err != nil {
		return err
	}

	a.diag = diagnostics{color: a.cfg.ColorEnabled()}
	a.logger.Debug("configuration loaded", "max_steps", a.cfg.Interpreter.MaxSteps, "timeout", a.cfg.Interpreter.Timeout.Duration)

	return nil
}

func (a *app) limits() limits {
	return limits{
		timeout:  a.cfg.Interpreter.Timeout.Duration,
		maxSteps: a.cfg.Interpreter.MaxSteps,
		seed:     a.cfg.Interpreter.Seed,
	}
}

// report writes a diagnostic for err and returns errReported.
func (a *app) report(cmd *cobra.Command, err error, src string) error {
	fmt.Fprint(cmd.ErrOrStderr(), a.diag.render(err, src))
	return errReported
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "algoritmo", version)
		},
	}
}

func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}
