// Package interpreter is the tree-walking evaluator: it executes the
// statement list the parser produced using the scope distances the resolver
// computed, the last stage of spec.md §2's pipeline.
//
// Grounded in the teacher's internal/interp/runtime.Evaluator shape (an
// Interpreter struct carrying globals, a current environment, and an error
// reporter, with one Eval method per ast node reached by a type switch)
// rather than a visitor: see SPEC_FULL.md's interpreter section.
package interpreter

import (
	"fmt"
	"io"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/resolver"
	"github.com/golox-lang/golox/internal/token"
)

// Interpreter walks a resolved statement list and executes it against a
// chain of Environments.
type Interpreter struct {
	globals    *Environment
	env        *Environment
	resolution resolver.Resolution
	errs       *diagnostics.Reporter
	stdout     io.Writer
}

// New builds an Interpreter that prints `print` output to stdout and
// reports runtime errors through errs. The global environment is seeded
// with the native functions spec.md's Non-goals allow (clock).
func New(stdout io.Writer, errs *diagnostics.Reporter) *Interpreter {
	globals := NewEnvironment()
	defineNatives(globals)
	return &Interpreter{
		globals:    globals,
		env:        globals,
		resolution: resolver.Resolution{},
		errs:       errs,
		stdout:     stdout,
	}
}

// SetResolution installs the scope-distance map the resolver computed for
// the statement list about to be run.
func (i *Interpreter) SetResolution(r resolver.Resolution) {
	i.resolution = r
}

// Interpret executes stmts in program order, stopping at the first runtime
// error (spec.md §4.5, §7). In repl mode, a top-level expression statement
// has its value printed rather than discarded — the one affordance spec.md
// §6 carves out for interactive use; nested expression statements (inside a
// block, loop, or function body) are never affected.
func (i *Interpreter) Interpret(stmts []ast.Stmt, repl bool) {
	for _, s := range stmts {
		if repl {
			if exprStmt, ok := s.(*ast.Expression); ok {
				val, err := i.evaluate(exprStmt.Expr)
				if err != nil {
					return
				}
				fmt.Fprintln(i.stdout, stringify(val))
				continue
			}
		}
		if _, err := i.execute(s); err != nil {
			return
		}
	}
}

// runtimeErrorf reports tok/format as the run's runtime error and returns it
// as an error — the Reporter has already printed it, so callers up the
// stack only need to propagate the error, never re-report it.
func (i *Interpreter) runtimeErrorf(tok token.Token, format string, args ...any) error {
	return i.errs.RuntimeErrorf(tok, format, args...)
}

// ---- statements -----------------------------------------------------------

// execute runs one statement, returning a non-nil *signal only when a
// `return` unwound through it.
func (i *Interpreter) execute(s ast.Stmt) (*signal, error) {
	switch n := s.(type) {
	case *ast.Expression:
		_, err := i.evaluate(n.Expr)
		return nil, err

	case *ast.Print:
		v, err := i.evaluate(n.Expr)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.stdout, stringify(v))
		return nil, nil

	case *ast.Var:
		var v Value = Nil
		if n.Initializer != nil {
			var err error
			v, err = i.evaluate(n.Initializer)
			if err != nil {
				return nil, err
			}
		}
		i.env.Define(n.Name.Lexeme, v)
		return nil, nil

	case *ast.Block:
		return i.executeBlock(n.Statements, NewEnclosedEnvironment(i.env))

	case *ast.If:
		cond, err := i.evaluate(n.Condition)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return i.execute(n.Then)
		}
		if n.Else != nil {
			return i.execute(n.Else)
		}
		return nil, nil

	case *ast.While:
		for {
			cond, err := i.evaluate(n.Condition)
			if err != nil {
				return nil, err
			}
			if !IsTruthy(cond) {
				return nil, nil
			}
			sig, err := i.execute(n.Body)
			if err != nil || sig != nil {
				return sig, err
			}
		}

	case *ast.Function:
		fn := NewFunction(n, i.env, false)
		i.env.Define(n.Name.Lexeme, fn)
		return nil, nil

	case *ast.Return:
		var v Value = Nil
		if n.Value != nil {
			var err error
			v, err = i.evaluate(n.Value)
			if err != nil {
				return nil, err
			}
		}
		return &signal{kind: signalReturn, value: v}, nil

	case *ast.Class:
		return i.executeClass(n)

	default:
		panic("interpreter: unhandled statement type")
	}
}

// executeBlock runs stmts against env, restoring the interpreter's previous
// environment on every exit path (normal, signal, or error). Callers pass a
// fresh environment for each block entry and each call frame (spec.md
// §4.4).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (*signal, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		sig, err := i.execute(s)
		if err != nil || sig != nil {
			return sig, err
		}
	}
	return nil, nil
}

// executeClass implements spec.md §4.5's five-step class-declaration
// protocol: evaluate and validate the superclass, declare the name as nil
// (so methods can refer to the class recursively), push a `super` scope
// around method-table construction when there is one, build the method
// table, then pop the super scope and bind the finished Class value.
func (i *Interpreter) executeClass(n *ast.Class) (*signal, error) {
	var superclass *Class
	if n.Superclass != nil {
		v, err := i.evaluate(n.Superclass)
		if err != nil {
			return nil, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return nil, i.runtimeErrorf(n.Superclass.Name, "superclass must be a class")
		}
		superclass = sc
	}

	i.env.Define(n.Name.Lexeme, Nil)

	if superclass != nil {
		i.env = NewEnclosedEnvironment(i.env)
		i.env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, i.env, m.Name.Lexeme == "init")
	}

	class := &Class{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}

	if superclass != nil {
		i.env = i.env.outer
	}

	i.env.Assign(n.Name, class)
	return nil, nil
}

// ---- expressions ------------------------------------------------------------

func (i *Interpreter) evaluate(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil

	case *ast.Grouping:
		return i.evaluate(n.Expression)

	case *ast.Variable:
		return i.lookupVariable(n.Name, n)

	case *ast.Assign:
		v, err := i.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.resolution[n.ID()]; ok {
			i.env.AssignAt(distance, n.Name.Lexeme, v)
		} else if err := i.globals.Assign(n.Name, v); err != nil {
			return nil, i.runtimeErrorf(n.Name, "%s", err)
		}
		return v, nil

	case *ast.Unary:
		return i.evalUnary(n)

	case *ast.Binary:
		return i.evalBinary(n)

	case *ast.Logical:
		return i.evalLogical(n)

	case *ast.Call:
		return i.evalCall(n)

	case *ast.Get:
		obj, err := i.evaluate(n.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, i.runtimeErrorf(n.Name, "only instances have properties")
		}
		v, found := inst.Get(n.Name.Lexeme)
		if !found {
			return nil, i.runtimeErrorf(n.Name, "%s", undefinedPropertyError(n.Name.Lexeme))
		}
		return v, nil

	case *ast.Set:
		obj, err := i.evaluate(n.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, i.runtimeErrorf(n.Name, "only instances have fields")
		}
		v, err := i.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(n.Name.Lexeme, v)
		return v, nil

	case *ast.This:
		return i.lookupVariable(n.Keyword, n)

	case *ast.Super:
		distance, ok := i.resolution[n.ID()]
		if !ok {
			return nil, i.runtimeErrorf(n.Keyword, "unresolved 'super' reference")
		}
		superclass := i.env.GetAt(distance, "super").(*Class)
		instance := i.env.GetAt(distance-1, "this").(*Instance)
		method := superclass.findMethod(n.Method.Lexeme)
		if method == nil {
			return nil, i.runtimeErrorf(n.Method, "%s", undefinedPropertyError(n.Method.Lexeme))
		}
		return method.Bind(instance), nil

	default:
		panic("interpreter: unhandled expression type")
	}
}

// lookupVariable resolves name either through the resolver's recorded
// distance or, for globals (and REPL top-level declarations, which are
// never resolved), through the global environment directly (spec.md §4.3's
// "absent means global" rule).
func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := i.resolution[expr.ID()]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	v, err := i.globals.Get(name)
	if err != nil {
		return nil, i.runtimeErrorf(name, "%s", err)
	}
	return v, nil
}

func literalValue(v token.Literal) Value {
	switch t := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue{Value: t}
	case float64:
		return NumberValue{Value: t}
	case string:
		return StringValue{Value: t}
	default:
		panic(fmt.Sprintf("interpreter: unhandled literal type %T", v))
	}
}

func (i *Interpreter) evalUnary(n *ast.Unary) (Value, error) {
	right, err := i.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.Minus:
		num, ok := right.(NumberValue)
		if !ok {
			return nil, i.runtimeErrorf(n.Operator, "operand must be a number")
		}
		return NumberValue{Value: -num.Value}, nil
	case token.Bang:
		return BoolValue{Value: !IsTruthy(right)}, nil
	default:
		panic("interpreter: unhandled unary operator")
	}
}

func (i *Interpreter) evalLogical(n *ast.Logical) (Value, error) {
	left, err := i.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(n.Right)
}

// evalBinary implements spec.md §4.5's arithmetic, string-concatenation,
// comparison, and equality operators. `+` is overloaded for numbers and
// strings; every other arithmetic/comparison operator requires both
// operands to be numbers; `/` by zero is a reported runtime error rather
// than producing Inf/NaN.
func (i *Interpreter) evalBinary(n *ast.Binary) (Value, error) {
	left, err := i.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.Plus:
		if ln, ok := left.(NumberValue); ok {
			if rn, ok := right.(NumberValue); ok {
				return NumberValue{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, ok := left.(StringValue); ok {
			if rs, ok := right.(StringValue); ok {
				return StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, i.runtimeErrorf(n.Operator, "operands must be two numbers or two strings")
	case token.Minus:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return NumberValue{Value: ln - rn}, nil
	case token.Star:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return NumberValue{Value: ln * rn}, nil
	case token.Slash:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, i.runtimeErrorf(n.Operator, "division by zero")
		}
		return NumberValue{Value: ln / rn}, nil
	case token.Greater:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue{Value: ln > rn}, nil
	case token.GreaterEqual:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue{Value: ln >= rn}, nil
	case token.Less:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue{Value: ln < rn}, nil
	case token.LessEqual:
		ln, rn, err := i.numberOperands(n.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue{Value: ln <= rn}, nil
	case token.EqualEqual:
		return BoolValue{Value: IsEqual(left, right)}, nil
	case token.BangEqual:
		return BoolValue{Value: !IsEqual(left, right)}, nil
	default:
		panic("interpreter: unhandled binary operator")
	}
}

func (i *Interpreter) numberOperands(op token.Token, left, right Value) (float64, float64, error) {
	ln, ok := left.(NumberValue)
	if !ok {
		return 0, 0, i.runtimeErrorf(op, "operands must be numbers")
	}
	rn, ok := right.(NumberValue)
	if !ok {
		return 0, 0, i.runtimeErrorf(op, "operands must be numbers")
	}
	return ln.Value, rn.Value, nil
}

// evalCall implements spec.md §4.5's call semantics: the callee must
// evaluate to something callable, and the argument count must exactly match
// its declared arity.
func (i *Interpreter) evalCall(n *ast.Call) (Value, error) {
	callee, err := i.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(n.Arguments))
	for idx, a := range n.Arguments {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, i.runtimeErrorf(n.Paren, "can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return nil, i.runtimeErrorf(n.Paren, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(i, args)
}

// stringify renders a Value for `print` and REPL-echo output (spec.md
// §4.5) by deferring to the value's own String(); NilValue and NumberValue
// supply the "nil" and no-trailing-".0" forms there.
func stringify(v Value) string {
	return v.String()
}
