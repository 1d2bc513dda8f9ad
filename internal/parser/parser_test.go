package parser_test

import (
	"testing"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/scanner"
)

func parseSource(t *testing.T, src string) ([]ast.Stmt, *diagnostics.Reporter) {
	t.Helper()
	r := diagnostics.New()
	toks := scanner.New(src, r).ScanTokens()
	stmts := parser.New(toks, r).Parse()
	return stmts, r
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	stmts, r := parseSource(t, src+";")
	if r.HadCompileError {
		t.Fatalf("unexpected parse error for %q", src)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	return stmts[0].(*ast.Expression).Expr
}

func TestPrecedenceClimbing(t *testing.T) {
	got := ast.Print(parseExpr(t, "1 + 2 * 3"))
	want := "(+ 1 (* 2 3))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	got := ast.Print(parseExpr(t, "(1 + 2) * 3"))
	want := "(* (group (+ 1 2)) 3)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripForAllExpressionForms(t *testing.T) {
	sources := []string{
		`1`,
		`"hi"`,
		`nil`,
		`true`,
		`a`,
		`a = 1`,
		`-a`,
		`!a`,
		`1 + 2`,
		`1 < 2`,
		`a and b`,
		`a or b`,
		`(a)`,
		`f(1, 2)`,
		`a.b`,
		`a.b = 1`,
		`this`,
		`super.m`,
	}
	for _, src := range sources {
		first := parseExpr(t, src)
		printed := ast.Print(first)

		reparsed, err := ast.Read(printed)
		if err != nil {
			t.Errorf("%q: printed form %q did not re-parse: %v", src, printed, err)
			continue
		}
		if !ast.Equal(first, reparsed) {
			t.Errorf("%q: re-parsed tree (from %q) not equivalent to the original:\n got  %s\n want %s",
				src, printed, ast.Print(reparsed), printed)
		}
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	stmts, r := parseSource(t, `for (var i = 0; i < 5; i = i + 1) print i;`)
	if r.HadCompileError {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	outer, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected outer Block, got %T", stmts[0])
	}
	if len(outer.Statements) != 2 {
		t.Fatalf("expected [init, while], got %d statements", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.Var); !ok {
		t.Errorf("expected first statement to be Var init, got %T", outer.Statements[0])
	}
	whileStmt, ok := outer.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("expected second statement to be While, got %T", outer.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok {
		t.Fatalf("expected while body to be a Block wrapping [body, increment], got %T", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected [body, increment], got %d", len(body.Statements))
	}
}

func TestInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	stmts, r := parseSource(t, `1 = 2; print "still here";`)
	if !r.HadCompileError {
		t.Fatalf("expected reported error for invalid assignment target")
	}
	if len(stmts) != 2 {
		t.Fatalf("parser should keep going after the error, got %d statements", len(stmts))
	}
	if _, ok := stmts[1].(*ast.Print); !ok {
		t.Errorf("expected second statement to still parse as Print, got %T", stmts[1])
	}
}

func TestSynchronizeReachesEOFWithoutLooping(t *testing.T) {
	// Two malformed declarations in a row: if synchronize() ever failed to
	// make progress, this call would hang and the test would time out.
	stmts, r := parseSource(t, `var = ; var = ; print "ok";`)
	if !r.HadCompileError {
		t.Fatalf("expected reported errors")
	}
	if len(stmts) == 0 {
		t.Fatalf("expected at least the trailing print statement to recover")
	}
}

func TestClassDeclarationWithSuperclass(t *testing.T) {
	stmts, r := parseSource(t, `class B < A { speak() { return 1; } }`)
	if r.HadCompileError {
		t.Fatalf("unexpected parse error")
	}
	class, ok := stmts[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected Class, got %T", stmts[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Errorf("expected superclass A, got %+v", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "speak" {
		t.Errorf("expected one method 'speak', got %+v", class.Methods)
	}
}

func TestArgumentLimitReportsButContinues(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	_, r := parseSource(t, src)
	if !r.HadCompileError {
		t.Fatalf("expected error for >255 arguments")
	}
}
