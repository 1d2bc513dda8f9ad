package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/interpreter"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox prompt",
	Long: `Read Lox source a line at a time and evaluate each one immediately.

A bare expression typed at the prompt has its value printed; every other
statement form behaves exactly as it would in a file (spec.md §6).`,
	Run: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl implements spec.md §6's run_prompt: read a line, run the
// pipeline with the REPL flag set, reset both sticky error flags, and loop
// until EOF. A runtime error ends that line's evaluation but not the
// session; both HadCompileError and HadRuntimeError are cleared each
// iteration so one line's error can't block the next from compiling or
// running — spec.md's explicit override of the Python source, where
// run_prompt's `had_error = False` only shadows a local and never resets
// the module's real error state.
func runRepl(_ *cobra.Command, _ []string) {
	errs := diagnostics.New()
	interp := interpreter.New(os.Stdout, errs)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		run(scanner.Text(), interp, errs, os.Stdout, true)
		errs.Reset()
	}
}
