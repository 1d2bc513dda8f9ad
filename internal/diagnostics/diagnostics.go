// Package diagnostics is the single collaborator every pipeline stage
// reports errors through: scanner, parser and resolver report compile
// errors, the evaluator reports the (at most one) runtime error. It tracks
// the two sticky flags the driver gates later stages on.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/golox-lang/golox/internal/token"
)

// CompileError is a single scan/parse/resolve error, optionally anchored to
// a token (so "at end" / "at 'lexeme'" can be rendered) rather than just a
// bare line number.
type CompileError struct {
	Line    int
	Where   string // "" (line-only), "end", or "'<lexeme>'"
	Message string
}

// Error implements the error interface using the same wire format Report
// writes to stderr, so CompileError can also be used as a plain Go error.
func (e *CompileError) Error() string {
	return e.format()
}

func (e *CompileError) format() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] error at %s: %s", e.Line, e.Where, e.Message)
}

// RuntimeError is the single runtime error a run can produce. Evaluation
// stops as soon as one occurs.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

// Reporter accumulates diagnostics for one run (one file, or one REPL
// line) and writes them to an error stream. The two flags mirror spec.md
// §7: later pipeline stages consult HadCompileError before running at all,
// and a recorded RuntimeError always ends the run.
type Reporter struct {
	Stderr           io.Writer
	HadCompileError  bool
	HadRuntimeError  bool
}

// New builds a Reporter writing to os.Stderr.
func New() *Reporter {
	return &Reporter{Stderr: os.Stderr}
}

// Reset clears both sticky flags. The REPL driver calls this before each
// new line (spec.md §7).
func (r *Reporter) Reset() {
	r.HadCompileError = false
	r.HadRuntimeError = false
}

// Error reports a compile error anchored only to a line (used by the
// scanner, which has no token to point at yet).
func (r *Reporter) Error(line int, message string) {
	r.report(&CompileError{Line: line, Message: message})
}

// ErrorAtToken reports a compile error anchored to a token (used by the
// parser and resolver), rendering "at end" for EOF and "at '<lexeme>'"
// otherwise, per spec.md §6.
func (r *Reporter) ErrorAtToken(tok token.Token, message string) *CompileError {
	where := fmt.Sprintf("'%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = "end"
	}
	ce := &CompileError{Line: tok.Line, Where: where, Message: message}
	r.report(ce)
	return ce
}

func (r *Reporter) report(ce *CompileError) {
	r.HadCompileError = true
	fmt.Fprintln(r.Stderr, ce.format())
}

// RuntimeErrorf reports the run's runtime error.
func (r *Reporter) RuntimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	re := &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
	r.HadRuntimeError = true
	fmt.Fprintln(r.Stderr, re.Error())
	return re
}
