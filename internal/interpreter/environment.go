package interpreter

import (
	"fmt"

	"github.com/golox-lang/golox/internal/token"
)

// Environment is a lexically nested name->value table (spec.md §3, §4.4).
// Grounded directly in the teacher's internal/interp/runtime/environment.go
// shape (store + outer pointer, Define/Get/Assign method names); unlike the
// teacher's ident.Map-backed store, Lox is case-sensitive (a language
// invariant, not a style choice), so a plain Go map is enough.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates a root environment with no enclosing scope — used
// once, for the interpreter's global scope (spec.md §3 invariant: "the
// global environment has no enclosing").
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosedEnvironment creates an environment nested inside outer, for
// block entry, function calls, and class-declaration scopes (spec.md §3).
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Value), outer: outer}
}

// Define inserts or overwrites name in the current scope. Idempotent by
// design (spec.md §4.4) — redeclaring a global or re-running a REPL line
// that re-declares a var must not error.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get walks the enclosing chain looking for name, erroring if it is
// undefined anywhere in the chain.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.store[name.Lexeme]; ok {
		return v, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, fmt.Errorf("undefined variable '%s'", name.Lexeme)
}

// Assign walks the enclosing chain to find where name is already defined
// and overwrites it there, erroring if it is undefined anywhere in the
// chain. Unlike Define, Assign never creates a new binding.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.store[name.Lexeme]; ok {
		e.store[name.Lexeme] = value
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return fmt.Errorf("undefined variable '%s'", name.Lexeme)
}

// GetAt skips exactly distance enclosing links, then looks up name
// directly — the resolver having already proven the binding is there
// means this never fails (spec.md §4.4).
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).store[name]
}

// AssignAt is GetAt's counterpart for stores.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).store[name] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}
