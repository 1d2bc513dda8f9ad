package cmd

import (
	"io"

	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/interpreter"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
)

// run composes the full scan -> parse -> resolve -> evaluate pipeline
// (spec.md §2, §7), gating each stage on the reporter's sticky error flags
// exactly as run_file/run_prompt require. interp is reused across REPL
// lines so global state (and the reporter's flags, reset by the caller)
// persists between them.
func run(source string, interp *interpreter.Interpreter, errs *diagnostics.Reporter, stdout io.Writer, repl bool) {
	sc := scanner.New(source, errs)
	tokens := sc.ScanTokens()
	if errs.HadCompileError {
		return
	}

	p := parser.New(tokens, errs)
	stmts := p.Parse()
	if errs.HadCompileError {
		return
	}

	res := resolver.New(errs)
	resolution := res.Resolve(stmts)
	if errs.HadCompileError {
		return
	}

	interp.SetResolution(resolution)
	interp.Interpret(stmts, repl)
}
