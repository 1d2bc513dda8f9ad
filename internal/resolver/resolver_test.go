package resolver_test

import (
	"testing"

	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
)

func resolveSource(t *testing.T, src string) (resolver.Resolution, *diagnostics.Reporter) {
	t.Helper()
	r := diagnostics.New()
	toks := scanner.New(src, r).ScanTokens()
	stmts := parser.New(toks, r).Parse()
	if r.HadCompileError {
		t.Fatalf("unexpected parse error for %q", src)
	}
	res := resolver.New(r).Resolve(stmts)
	return res, r
}

func TestRedeclarationInSameScopeIsReported(t *testing.T) {
	_, r := resolveSource(t, `{ var a = 1; var a = 2; }`)
	if !r.HadCompileError {
		t.Fatalf("expected redeclaration error")
	}
}

func TestShadowingInNestedScopeIsFine(t *testing.T) {
	_, r := resolveSource(t, `var a = 1; { var a = 2; }`)
	if r.HadCompileError {
		t.Fatalf("unexpected error shadowing in a nested scope")
	}
}

func TestReadingOwnInitializerIsReported(t *testing.T) {
	_, r := resolveSource(t, `{ var a = "outer"; { var a = a; } }`)
	if !r.HadCompileError {
		t.Fatalf("expected 'own initializer' error")
	}
}

func TestReturnOutsideFunctionIsReported(t *testing.T) {
	_, r := resolveSource(t, `return 1;`)
	if !r.HadCompileError {
		t.Fatalf("expected top-level return error")
	}
}

func TestReturnValueFromInitializerIsReported(t *testing.T) {
	_, r := resolveSource(t, `class A { init() { return 1; } }`)
	if !r.HadCompileError {
		t.Fatalf("expected initializer-return error")
	}
}

func TestBareReturnFromInitializerIsFine(t *testing.T) {
	_, r := resolveSource(t, `class A { init() { return; } }`)
	if r.HadCompileError {
		t.Fatalf("unexpected error for bare return in initializer")
	}
}

func TestThisOutsideClassIsReported(t *testing.T) {
	_, r := resolveSource(t, `print this;`)
	if !r.HadCompileError {
		t.Fatalf("expected 'this' outside class error")
	}
}

func TestSuperOutsideClassIsReported(t *testing.T) {
	_, r := resolveSource(t, `fun f() { super.x(); }`)
	if !r.HadCompileError {
		t.Fatalf("expected 'super' outside class error")
	}
}

func TestSuperWithoutSuperclassIsReported(t *testing.T) {
	_, r := resolveSource(t, `class A { m() { super.x(); } }`)
	if !r.HadCompileError {
		t.Fatalf("expected 'super' without superclass error")
	}
}

func TestClassInheritingFromItselfIsReported(t *testing.T) {
	_, r := resolveSource(t, `class A < A {}`)
	if !r.HadCompileError {
		t.Fatalf("expected self-inheritance error")
	}
}

func TestResolutionDistanceForClosureExample(t *testing.T) {
	src := `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "block";
  showA();
}`
	res, r := resolveSource(t, src)
	if r.HadCompileError {
		t.Fatalf("unexpected error")
	}
	// The "print a;" inside showA refers to the *global* a: it should be
	// absent from the resolution map entirely (global lookup), regardless
	// of the later shadowing "var a" in the block. Only the two "showA"
	// references (block-local) are recorded.
	if len(res) != 2 {
		t.Errorf("expected only the two showA references to be resolved, got %v", res)
	}
	for id, dist := range res {
		if dist < 0 {
			t.Errorf("node %d has negative distance %d", id, dist)
		}
	}
}
