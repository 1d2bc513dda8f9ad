// Package resolver implements Lox's static scope pass: it walks the
// statement tree once before execution and, for every variable-reference
// expression, records how many enclosing lexical scopes away its binding
// lives (spec.md §4.3).
//
// It is grounded in the teacher's semantic analyzer shape
// (internal/semantic.Analyzer): a struct holding scope/stack state,
// `current*` tag fields for context-sensitive checks, and errors reported
// through the shared diagnostics.Reporter rather than kept in a slice of
// its own. Unlike the
// teacher's analyzer, which performs full type-checking, this resolver
// only computes scope distances and the handful of context checks spec.md
// §4.3 names (no type system exists for Lox).
package resolver

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/diagnostics"
	"github.com/golox-lang/golox/internal/token"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// binding is one entry in a scope: whether the name has been declared
// (reserved, not yet assignable) or defined (fully ready to read).
type binding struct{ defined bool }

type scope map[string]*binding

// Resolution maps an expression's stable ID (ast.Expr.ID()) to its scope
// distance: the
// number of enclosing environments to walk at runtime (spec.md §3, §4.3).
// An expression absent from this map is treated as a global reference.
type Resolution map[int]int

// Resolver performs the static scope pass.
type Resolver struct {
	errs   *diagnostics.Reporter
	scopes []scope

	currentFunction functionKind
	currentClass    classKind

	resolution Resolution
}

// New creates a Resolver reporting to errs.
func New(errs *diagnostics.Reporter) *Resolver {
	return &Resolver{errs: errs, resolution: Resolution{}}
}

// Resolve walks the whole program and returns the expression-ID->distance
// map.
// Globals never push a scope (spec.md §4.3), so top-level declarations are
// resolved against an empty scope stack.
func (r *Resolver) Resolve(stmts []ast.Stmt) Resolution {
	r.resolveStmts(stmts)
	return r.resolution
}

// ---- scope stack ------------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare reserves name in the current (innermost) scope. Redeclaring a
// name already reserved in the same local scope is always reported
// (spec.md §8 resolver invariant).
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, exists := s[name.Lexeme]; exists {
		r.errs.ErrorAtToken(name, "variable with this name already exists in this scope")
	}
	s[name.Lexeme] = &binding{defined: false}
}

// define marks name as fully initialized in the current scope, making it
// readable.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = &binding{defined: true}
}

// resolveLocal scans the scope stack top-down; on a hit it records the
// distance and stops. A miss leaves the expression unmapped (global).
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.resolution[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ---- statements ---------------------------------------------------------------

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, fnFunction)
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Expression:
		r.resolveExpr(n.Expr)
	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.Print:
		r.resolveExpr(n.Expr)
	case *ast.Return:
		if r.currentFunction == fnNone {
			r.errs.ErrorAtToken(n.Keyword, "can't return from top-level code")
		}
		if n.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errs.ErrorAtToken(n.Keyword, "can't return a value from an initializer")
			}
			r.resolveExpr(n.Value)
		}
	case *ast.While:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveClass(c *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.errs.ErrorAtToken(c.Superclass.Name, "a class can't inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = &binding{defined: true}
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &binding{defined: true}

	for _, method := range c.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

// ---- expressions --------------------------------------------------------------

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if b, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !b.defined {
				r.errs.ErrorAtToken(n.Name, "can't read local variable in its own initializer")
			}
		}
		r.resolveLocal(n, n.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Arguments {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Grouping:
		r.resolveExpr(n.Expression)
	case *ast.Literal:
		// no sub-expressions, no identifier to resolve
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.Super:
		if r.currentClass == classNone {
			r.errs.ErrorAtToken(n.Keyword, "can't use 'super' outside of a class")
		} else if r.currentClass != classSubclass {
			r.errs.ErrorAtToken(n.Keyword, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(n, "super")
	case *ast.This:
		if r.currentClass == classNone {
			r.errs.ErrorAtToken(n.Keyword, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(n, "this")
	case *ast.Unary:
		r.resolveExpr(n.Right)
	default:
		panic("resolver: unhandled expression type")
	}
}
