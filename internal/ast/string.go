package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// String implementations below render each node as Lox source text (not the
// fully-parenthesized debug form — see Print in printer.go for that). They
// exist mostly for %v-style debugging and the `golox parse` command.

func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return "?"
	}
}

func (v *Variable) String() string { return v.Name.Lexeme }
func (a *Assign) String() string   { return a.Name.Lexeme + " = " + a.Value.String() }
func (u *Unary) String() string    { return u.Operator.Lexeme + u.Right.String() }
func (b *Binary) String() string {
	return b.Left.String() + " " + b.Operator.Lexeme + " " + b.Right.String()
}
func (l *Logical) String() string {
	return l.Left.String() + " " + l.Operator.Lexeme + " " + l.Right.String()
}
func (g *Grouping) String() string { return "(" + g.Expression.String() + ")" }
func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}
func (g *Get) String() string   { return g.Object.String() + "." + g.Name.Lexeme }
func (s *Set) String() string   { return s.Object.String() + "." + s.Name.Lexeme + " = " + s.Value.String() }
func (t *This) String() string  { return "this" }
func (s *Super) String() string { return "super." + s.Method.Lexeme }

func (e *Expression) String() string { return e.Expr.String() + ";" }
func (p *Print) String() string      { return "print " + p.Expr.String() + ";" }
func (v *Var) String() string {
	if v.Initializer == nil {
		return "var " + v.Name.Lexeme + ";"
	}
	return "var " + v.Name.Lexeme + " = " + v.Initializer.String() + ";"
}
func (b *Block) String() string {
	var buf bytes.Buffer
	buf.WriteString("{ ")
	for _, s := range b.Statements {
		buf.WriteString(s.String())
		buf.WriteString(" ")
	}
	buf.WriteString("}")
	return buf.String()
}
func (i *If) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}
func (w *While) String() string { return "while (" + w.Condition.String() + ") " + w.Body.String() }
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}
func (f *Function) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	return "fun " + f.Name.Lexeme + "(" + strings.Join(names, ", ") + ") { ... }"
}
func (c *Class) String() string {
	s := "class " + c.Name.Lexeme
	if c.Superclass != nil {
		s += " < " + c.Superclass.Name.Lexeme
	}
	return s + " { ... }"
}
