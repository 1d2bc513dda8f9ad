package interpreter

import "github.com/golox-lang/golox/internal/ast"

// Callable is anything `Call` syntax can invoke: a user-defined Function, a
// bound method, a Class (construction), or a Native.
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or method value. Its closure is the
// environment active when the `fun`/method declaration executed (spec.md
// §3's closure definition) — captured by reference, so later assignments
// to names in that environment are visible through every Function sharing
// it.
type Function struct {
	declaration   *ast.Function
	closure       *Environment
	isInitializer bool
}

// NewFunction wraps declaration with the environment active at its
// declaration site.
func NewFunction(declaration *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Type() string { return "FUNCTION" }
func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

// Call builds a fresh environment enclosed by the closure, binds
// parameters positionally, and executes the body (spec.md §4.5). A
// recorded `return` unwinds here; an initializer always yields `this`
// regardless of what it returned (spec.md §4.5's initializer rule).
func (f *Function) Call(i *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	sig, err := i.executeBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if sig != nil && sig.kind == signalReturn {
		return sig.value, nil
	}
	return Nil, nil
}

// Bind produces a new Function that closes over an environment defining
// `this` as instance, without mutating the class's method table (spec.md
// §4.5's "Bind" operation) — this is how the same method declaration backs
// a bound method per-instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

// Native is a host-provided callable with no Lox-level closure, such as
// clock() (spec.md §4.5, the sole standard-library function per spec.md's
// Non-goals).
type Native struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []Value) (Value, error)
}

func (n *Native) Type() string       { return "NATIVE" }
func (n *Native) String() string     { return "<native fn " + n.name + ">" }
func (n *Native) Arity() int         { return n.arity }
func (n *Native) Call(i *Interpreter, args []Value) (Value, error) {
	return n.fn(i, args)
}
