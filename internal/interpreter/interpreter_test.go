package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/interpreter"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/scanner"
)

// runProgram scans, parses, resolves, and evaluates src, returning its
// stdout and the reporter that recorded any error.
func runProgram(t *testing.T, src string) (string, *diagnostics.Reporter) {
	t.Helper()
	var stderr bytes.Buffer
	errs := &diagnostics.Reporter{Stderr: &stderr}

	toks := scanner.New(src, errs).ScanTokens()
	stmts := parser.New(toks, errs).Parse()
	if errs.HadCompileError {
		t.Fatalf("unexpected compile error for %q: %s", src, stderr.String())
	}
	resolution := resolver.New(errs).Resolve(stmts)
	if errs.HadCompileError {
		t.Fatalf("unexpected resolve error for %q: %s", src, stderr.String())
	}

	var stdout bytes.Buffer
	interp := interpreter.New(&stdout, errs)
	interp.SetResolution(resolution)
	interp.Interpret(stmts, false)
	return stdout.String(), errs
}

func TestArithmeticPrecedence(t *testing.T) {
	out, errs := runProgram(t, `print 1 + 2 * 3;`)
	if errs.HadRuntimeError {
		t.Fatalf("unexpected runtime error")
	}
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

func TestStringConcatenation(t *testing.T) {
	out, _ := runProgram(t, `print "foo" + "bar";`)
	if out != "foobar\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, errs := runProgram(t, `print 1 / 0;`)
	if !errs.HadRuntimeError {
		t.Fatalf("expected a runtime error for division by zero")
	}
}

func TestMismatchedOperandsIsRuntimeError(t *testing.T) {
	_, errs := runProgram(t, `print "a" - 1;`)
	if !errs.HadRuntimeError {
		t.Fatalf("expected a runtime error")
	}
}

func TestLogicalAndShortCircuits(t *testing.T) {
	out, _ := runProgram(t, `
		fun sideEffect() { print "evaluated"; return true; }
		false and sideEffect();
	`)
	if out != "" {
		t.Fatalf("right operand of 'and' should not run when left is falsey, got %q", out)
	}
}

func TestLogicalOrShortCircuits(t *testing.T) {
	out, _ := runProgram(t, `
		fun sideEffect() { print "evaluated"; return true; }
		true or sideEffect();
	`)
	if out != "" {
		t.Fatalf("right operand of 'or' should not run when left is truthy, got %q", out)
	}
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	out, _ := runProgram(t, `
		fun trace(x) { print x; return x; }
		fun sum(a, b) { return a + b; }
		sum(trace(1), trace(2));
	`)
	if out != "1\n2\n" {
		t.Fatalf("got %q, want left-to-right argument evaluation order", out)
	}
}

func TestClosureCapturesByReference(t *testing.T) {
	out, _ := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				print count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	if out != "1\n2\n" {
		t.Fatalf("got %q, want a shared mutable closure over count", out)
	}
}

func TestClosureShadowingResolvesAtDefinitionTime(t *testing.T) {
	out, _ := runProgram(t, `
		var a = "global";
		{
			fun showA() { print a; }
			showA();
			var a = "block";
			showA();
		}
	`)
	want := "global\nglobal\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestClassInitAndMethod(t *testing.T) {
	out, _ := runProgram(t, `
		class Greeter {
			init(name) { this.name = name; }
			hi() { print "hello " + this.name; }
		}
		Greeter("world").hi();
	`)
	if out != "hello world\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSuperDispatch(t *testing.T) {
	out, _ := runProgram(t, `
		class A { speak() { print "A"; } }
		class B < A { speak() { super.speak(); print "B"; } }
		B().speak();
	`)
	if out != "A\nB\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBoundMethodRetainsItsInstance(t *testing.T) {
	out, _ := runProgram(t, `
		class Counter {
			init() { this.count = 0; }
			increment() { this.count = this.count + 1; print this.count; }
		}
		var c = Counter();
		var bump = c.increment;
		bump();
		bump();
	`)
	if out != "1\n2\n" {
		t.Fatalf("got %q, a bound method must keep referring to the instance it was fetched from", out)
	}
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, errs := runProgram(t, `
		class Empty {}
		print Empty().missing;
	`)
	if !errs.HadRuntimeError {
		t.Fatalf("expected a runtime error for an undefined property")
	}
}

func TestFibonacciViaForLoop(t *testing.T) {
	out, _ := runProgram(t, `
		var a = 0; var b = 1;
		for (var i = 0; i < 5; i = i + 1) { print a; var t = a + b; a = b; b = t; }
	`)
	want := "0\n1\n1\n2\n3\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestNumberStringificationHasNoTrailingDotZero(t *testing.T) {
	out, _ := runProgram(t, `print 4.0;`)
	if strings.Contains(out, ".0") {
		t.Fatalf("integral numbers should not print a trailing .0, got %q", out)
	}
	if out != "4\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursiveFunction(t *testing.T) {
	out, _ := runProgram(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}
