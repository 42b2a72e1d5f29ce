package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/diag"
	"github.com/opal-lang/opal/internal/dump"
	"github.com/opal-lang/opal/internal/parser"
	"github.com/opal-lang/opal/internal/source"
)

func newReplCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:           "repl",
		Short:         "Parse one line at a time and print its AST dump",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout(), *cfg)
		},
	}
}

func runRepl(out io.Writer, cfg config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "opal> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	for i := 1; ; i++ {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		src := source.New(fmt.Sprintf("<repl:%d>", i), []byte(line))
		a := ast.New(cfg.ArenaReserve, cfg.ArenaCommit)
		sink := diag.New(out)

		scope, err := parser.Parse(src, a, sink)
		if err != nil {
			continue // the sink already printed the failure report
		}
		if err := dump.New(a, out).Scope(scope); err != nil {
			fmt.Fprintf(out, "dump error: %v\n", err)
			continue
		}
		fmt.Fprintln(out)
	}
}
