package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/scanner"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file or expression",
	Long: `Tokenize a Lox program and print the resulting token stream, one
token per line. Reads from stdin if no file or -e flag is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runLex(_ *cobra.Command, args []string) error {
	source, err := sourceFromArgs(evalExpr, args)
	if err != nil {
		return err
	}

	errs := diagnostics.New()
	tokens := scanner.New(source, errs).ScanTokens()
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	if errs.HadCompileError {
		return fmt.Errorf("lexing failed")
	}
	return nil
}

// sourceFromArgs resolves golox's common "-e expr | file arg | stdin"
// input convention, shared by `lex` and `parse` (which, unlike `run`, are
// debugging commands that accept stdin).
func sourceFromArgs(eval string, args []string) (string, error) {
	switch {
	case eval != "":
		return eval, nil
	case len(args) == 1:
		return readSource(args[0])
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}
}
