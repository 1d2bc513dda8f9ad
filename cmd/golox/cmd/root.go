package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "golox",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of Lox, the scripting language from
Crafting Interpreters.

Source runs through four stages: scan, parse, resolve, evaluate. Each
stage only runs if the one before it recorded no errors.`,
	Version: Version,
}

// Execute runs the root command, terminating the process with a non-zero
// exit code if the command tree itself reports an error (exit codes for
// compile/runtime failures within `run` are set directly by that command
// per spec.md §6 and never flow through here; `repl` sets none).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
