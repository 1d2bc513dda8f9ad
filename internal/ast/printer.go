package ast

import (
	"fmt"
	"strings"
)

// Print renders an expression in a fully-parenthesized, Lisp-like form
// (`(+ 1 (* 2 3))`), used by `golox parse` and by the parser's round-trip
// test (spec.md §8): printing a parsed expression this way and re-parsing
// the result must yield an equivalent tree.
func Print(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return n.String()
	case *Variable:
		return n.Name.Lexeme
	case *Assign:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *Unary:
		return parenthesize(n.Operator.Lexeme, n.Right)
	case *Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Grouping:
		return parenthesize("group", n.Expression)
	case *Call:
		parts := append([]Expr{n.Callee}, n.Arguments...)
		return parenthesize("call", parts...)
	case *Get:
		return parenthesize("get "+n.Name.Lexeme, n.Object)
	case *Set:
		return parenthesize("set "+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + n.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(Print(e))
	}
	sb.WriteString(")")
	return sb.String()
}
