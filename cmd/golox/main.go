// Command golox is the Lox interpreter's command-line driver.
package main

import "github.com/golox-lang/golox/cmd/golox/cmd"

func main() {
	cmd.Execute()
}
