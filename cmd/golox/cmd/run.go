package cmd

import (
	"fmt"
	"os"

	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/interpreter"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox file or expression",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

// runScript implements spec.md §6's run_file entry point (plus the -e
// inline-source affordance): exit 65 if the source couldn't be read, 64 if
// compiling it recorded an error, 70 if evaluating it did, 0 otherwise.
func runScript(_ *cobra.Command, args []string) {
	var source string

	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		s, err := readSource(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(65)
		}
		source = s
	default:
		fmt.Fprintln(os.Stderr, "either provide a file path or use -e for inline code")
		os.Exit(65)
	}

	errs := diagnostics.New()
	interp := interpreter.New(os.Stdout, errs)
	run(source, interp, errs, os.Stdout, false)

	switch {
	case errs.HadCompileError:
		os.Exit(64)
	case errs.HadRuntimeError:
		os.Exit(70)
	}
}
