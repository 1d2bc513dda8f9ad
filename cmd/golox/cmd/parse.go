package cmd

import (
	"fmt"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var parseDumpTree bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Lox source and print its syntax tree",
	Long: `Parse Lox source code and print it back out. By default each top-level
statement is rendered as readable Lox-like source; --sexp instead prints
each expression statement in fully-parenthesized form (spec.md §8's
round-trip property), while other statements are still rendered as source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpTree, "sexp", false, "print the fully-parenthesized expression form")
}

func runParse(_ *cobra.Command, args []string) error {
	source, err := sourceFromArgs(evalExpr, args)
	if err != nil {
		return err
	}

	errs := diagnostics.New()
	tokens := scanner.New(source, errs).ScanTokens()
	if errs.HadCompileError {
		return fmt.Errorf("lexing failed")
	}

	stmts := parser.New(tokens, errs).Parse()
	if errs.HadCompileError {
		return fmt.Errorf("parsing failed")
	}

	for _, s := range stmts {
		if parseDumpTree {
			if exprStmt, ok := s.(*ast.Expression); ok {
				fmt.Println(ast.Print(exprStmt.Expr))
				continue
			}
		}
		fmt.Println(s.String())
	}
	return nil
}
