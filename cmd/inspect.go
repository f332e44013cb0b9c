package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	algoritmo "go.algoritmo.dev/pkg"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the tokens of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			toks, err := algoritmo.Tokenize(src)
			if err != nil {
				return a.report(cmd, err, src)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range toks {
				fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Loc, tok.Typ, tok.Value)
			}

			return w.Flush()
		},
	}
}

func newAstCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file|->",
		Short: "Print the syntax tree of a program as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			prog, err := algoritmo.NewCompiler().CompileString(src)
			if err != nil {
				return a.report(cmd, err, src)
			}

			out, err := algoritmo.DumpYAML(prog)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newIRCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ir <file|->",
		Short: "Print the LLVM IR of a numeric program",
		Long: `Lower a program to LLVM IR. Only numbers, booleans, the control
statements, Escribir and the math functions are supported; arrays, Leer and
text values are rejected.

The compiled program differs from the interpreter in two ways:
  - variables start at 0, so reading one that was only assigned in a branch
    not taken prints 0 instead of failing with "undefined variable"
  - booleans are numbers, so Escribir prints 1 and 0 instead of verdadero
    and falso`,
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

			out, err := algoritmo.NewLLVMGenerator(prog).Do()
			if err != nil {
				return a.report(cmd, err, src)
			}

			a.logger.Debug("ir generated", "program", prog.Name)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return err
		},
	}
}
