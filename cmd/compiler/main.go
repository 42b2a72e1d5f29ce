// Command compiler drives the front end described by the Opal
// specification: it loads a source file, tokenizes and parses it, runs
// the integer-width and label-resolution sketch checks, and optionally
// prints the token stream or the AST dump.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opal-lang/opal/internal/ast"
	"github.com/opal-lang/opal/internal/diag"
	"github.com/opal-lang/opal/internal/dump"
	"github.com/opal-lang/opal/internal/parser"
	"github.com/opal-lang/opal/internal/source"
	"github.com/opal-lang/opal/internal/typeck"
)

func main() {
	cfg := defaultConfig()
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "opalc <path>",
		Short:         "Parse an Opal source file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				merged, err := loadConfigFile(defaultConfig(), cfgPath)
				if err != nil {
					return err
				}
				// Flags set explicitly on the command line win over the file.
				keep := map[string]func(){
					"arena-reserve": func() { merged.ArenaReserve = cfg.ArenaReserve },
					"arena-commit":  func() { merged.ArenaCommit = cfg.ArenaCommit },
					"max-path-len":  func() { merged.MaxPathLen = cfg.MaxPathLen },
					"dump-tokens":   func() { merged.DumpTokens = cfg.DumpTokens },
					"dump-ast":      func() { merged.DumpAST = cfg.DumpAST },
					"ast-format":    func() { merged.ASTFormat = cfg.ASTFormat },
				}
				for name, apply := range keep {
					if cmd.Flags().Changed(name) {
						apply()
					}
				}
				cfg = merged
			}
			return runCompile(cmd, args[0], cfg)
		},
	}

	rootCmd.Flags().StringVar(&cfgPath, "config", "", "YAML configuration file")
	rootCmd.Flags().BoolVar(&cfg.DumpTokens, "dump-tokens", cfg.DumpTokens, "print the token stream and exit")
	rootCmd.Flags().BoolVar(&cfg.DumpAST, "dump-ast", cfg.DumpAST, "print the AST dump")
	rootCmd.Flags().StringVar(&cfg.ASTFormat, "ast-format", cfg.ASTFormat, "AST dump format (only \"json\" is implemented)")
	rootCmd.Flags().IntVar(&cfg.ArenaReserve, "arena-reserve", cfg.ArenaReserve, "arena virtual reservation size in bytes")
	rootCmd.Flags().IntVar(&cfg.ArenaCommit, "arena-commit", cfg.ArenaCommit, "arena commission step in bytes")
	rootCmd.Flags().IntVar(&cfg.MaxPathLen, "max-path-len", cfg.MaxPathLen, "longest accepted source path in bytes (the loader's own 255-byte limit still applies)")

	rootCmd.AddCommand(newReplCommand(&cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "opalc: %v\n", err)
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, path string, cfg config) error {
	if len(path) > cfg.MaxPathLen {
		return fmt.Errorf("path %q exceeds the configured maximum of %d bytes", path, cfg.MaxPathLen)
	}
	src, err := source.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if cfg.DumpTokens {
		return dumpTokens(out, src)
	}

	a := ast.New(cfg.ArenaReserve, cfg.ArenaCommit)
	sink := diag.New(out)

	scope, err := parser.Parse(src, a, sink)
	if err != nil {
		return err
	}

	if err := runSketchChecks(a, src, sink, scope); err != nil {
		return err
	}

	if cfg.DumpAST {
		if cfg.ASTFormat != "json" {
			return fmt.Errorf("unsupported --ast-format %q", cfg.ASTFormat)
		}
		return dump.New(a, out).Scope(scope)
	}

	fmt.Fprintf(out, "ok: %d tokens, %d nodes\n", sink.TokenCount(), sink.NodeCount())
	return nil
}

// runSketchChecks applies the integer-width and label-resolution sketch
// (SPEC_FULL.md's supplemented features) recursively over scope and every
// nested routine/child scope it owns.
func runSketchChecks(a *ast.Arena, src *source.Source, sink *diag.Sink, scope ast.ScopeID) error {
	if err := typeck.CheckLabels(a, src, sink, scope); err != nil {
		return err
	}
	s := a.Scope(scope)
	for _, vid := range s.Values {
		v := a.Value(vid)
		if err := typeck.CheckValue(a, src, sink, v); err != nil {
			return err
		}
		if err := typeck.CheckPrimitiveOnly(a, src, sink, v.Type); err != nil {
			return err
		}
		if err := typeck.CheckPrimitiveOnly(a, src, sink, v.Init); err != nil {
			return err
		}
	}
	for _, stmt := range s.Statements {
		if err := typeck.CheckPrimitiveOnly(a, src, sink, stmt); err != nil {
			return err
		}
		n := a.Node(stmt)
		if n.Kind == ast.KindScope {
			if err := runSketchChecks(a, src, sink, n.Scope); err != nil {
				return err
			}
		}
	}
	for _, rid := range s.Routines {
		if r := a.Routine(rid); r.Scope != ast.NilID {
			if err := runSketchChecks(a, src, sink, r.Scope); err != nil {
				return err
			}
		}
	}
	return nil
}
