package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golox-lang/golox/internal/token"
)

// Read parses the fully-parenthesized form Print produces back into an
// equivalent Expr tree, so spec.md §8's round-trip property ("printing a
// parsed expression and re-parsing the result yields an equivalent tree")
// can be exercised as an actual re-parse rather than mere idempotence of
// Print — see the parser package's round-trip test. Read only understands
// the small fixed grammar Print emits (an atom, or a parenthesized head
// followed by its operands); it is not a general Lox parser.
func Read(s string) (Expr, error) {
	toks, err := tokenizeSexp(s)
	if err != nil {
		return nil, err
	}
	r := &sexpReader{toks: toks}
	e, err := r.readExpr()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.toks) {
		return nil, fmt.Errorf("ast.Read: trailing input after %q", s)
	}
	return e, nil
}

// lexemeKind maps an operator's printed lexeme back to the token.Kind
// Unary/Binary/Logical expect their Operator token to carry.
var lexemeKind = map[string]token.Kind{
	"+": token.Plus, "-": token.Minus, "*": token.Star, "/": token.Slash,
	"<": token.Less, "<=": token.LessEqual, ">": token.Greater, ">=": token.GreaterEqual,
	"==": token.EqualEqual, "!=": token.BangEqual, "!": token.Bang,
	"and": token.And, "or": token.Or,
}

func tokenizeSexp(s string) ([]string, error) {
	var toks []string
	i, n := 0, len(s)
	for i < n {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '"':
			j := i + 1
			for j < n && s[j] != '"' {
				if s[j] == '\\' && j+1 < n {
					j++
				}
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("ast.Read: unterminated string in %q", s)
			}
			toks = append(toks, s[i:j+1])
			i = j + 1
		default:
			j := i
			for j < n && s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '\r' && s[j] != '(' && s[j] != ')' {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks, nil
}

type sexpReader struct {
	toks []string
	pos  int
	gen  IDGen
}

func (r *sexpReader) peek() (string, bool) {
	if r.pos >= len(r.toks) {
		return "", false
	}
	return r.toks[r.pos], true
}

func (r *sexpReader) next() (string, error) {
	t, ok := r.peek()
	if !ok {
		return "", fmt.Errorf("ast.Read: unexpected end of input")
	}
	r.pos++
	return t, nil
}

func (r *sexpReader) expectClose() error {
	t, err := r.next()
	if err != nil {
		return err
	}
	if t != ")" {
		return fmt.Errorf("ast.Read: expected ')', got %q", t)
	}
	return nil
}

func (r *sexpReader) readExpr() (Expr, error) {
	t, err := r.next()
	if err != nil {
		return nil, err
	}
	if t == "(" {
		return r.readForm()
	}
	return r.readAtom(t)
}

func (r *sexpReader) readAtom(t string) (Expr, error) {
	switch t {
	case "nil":
		return NewLiteral(&r.gen, nil), nil
	case "true":
		return NewLiteral(&r.gen, true), nil
	case "false":
		return NewLiteral(&r.gen, false), nil
	case "this":
		return NewThis(&r.gen, token.New(token.This, "this", nil, 0)), nil
	}
	if strings.HasPrefix(t, `"`) {
		s, err := strconv.Unquote(t)
		if err != nil {
			return nil, fmt.Errorf("ast.Read: bad string literal %q: %w", t, err)
		}
		return NewLiteral(&r.gen, s), nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return NewLiteral(&r.gen, f), nil
	}
	return NewVariable(&r.gen, token.New(token.Identifier, t, nil, 0)), nil
}

func (r *sexpReader) readForm() (Expr, error) {
	head, err := r.next()
	if err != nil {
		return nil, err
	}
	switch head {
	case "group":
		inner, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		if err := r.expectClose(); err != nil {
			return nil, err
		}
		return NewGrouping(&r.gen, inner), nil

	case "call":
		callee, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		var args []Expr
		for {
			t, ok := r.peek()
			if !ok {
				return nil, fmt.Errorf("ast.Read: unterminated call")
			}
			if t == ")" {
				r.pos++
				break
			}
			a, err := r.readExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return NewCall(&r.gen, callee, token.New(token.RightParen, ")", nil, 0), args), nil

	case "get":
		name, err := r.next()
		if err != nil {
			return nil, err
		}
		obj, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		if err := r.expectClose(); err != nil {
			return nil, err
		}
		return NewGet(&r.gen, obj, token.New(token.Identifier, name, nil, 0)), nil

	case "set":
		name, err := r.next()
		if err != nil {
			return nil, err
		}
		obj, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		val, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		if err := r.expectClose(); err != nil {
			return nil, err
		}
		return NewSet(&r.gen, obj, token.New(token.Identifier, name, nil, 0), val), nil

	case "=":
		name, err := r.next()
		if err != nil {
			return nil, err
		}
		val, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		if err := r.expectClose(); err != nil {
			return nil, err
		}
		return NewAssign(&r.gen, token.New(token.Identifier, name, nil, 0), val), nil

	case "super":
		method, err := r.next()
		if err != nil {
			return nil, err
		}
		if err := r.expectClose(); err != nil {
			return nil, err
		}
		return NewSuper(&r.gen, token.New(token.Super, "super", nil, 0), token.New(token.Identifier, method, nil, 0)), nil

	default:
		kind, ok := lexemeKind[head]
		if !ok {
			return nil, fmt.Errorf("ast.Read: unrecognized operator %q", head)
		}
		var operands []Expr
		for {
			t, ok := r.peek()
			if !ok {
				return nil, fmt.Errorf("ast.Read: unterminated form %q", head)
			}
			if t == ")" {
				r.pos++
				break
			}
			e, err := r.readExpr()
			if err != nil {
				return nil, err
			}
			operands = append(operands, e)
		}
		op := token.New(kind, head, nil, 0)
		switch len(operands) {
		case 1:
			return NewUnary(&r.gen, op, operands[0]), nil
		case 2:
			if head == "and" || head == "or" {
				return NewLogical(&r.gen, operands[0], op, operands[1]), nil
			}
			return NewBinary(&r.gen, operands[0], op, operands[1]), nil
		default:
			return nil, fmt.Errorf("ast.Read: operator %q takes 1 or 2 operands, got %d", head, len(operands))
		}
	}
}

// Equal reports whether a and b are structurally equivalent expression
// trees, ignoring node IDs — an ID is assigned once per parse and carries
// no meaning of its own, so two trees built from separate parses (or one
// parsed and one reconstructed by Read) can still be equivalent.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name.Lexeme == y.Name.Lexeme
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Name.Lexeme == y.Name.Lexeme && Equal(x.Value, y.Value)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Operator.Lexeme == y.Operator.Lexeme && Equal(x.Right, y.Right)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Operator.Lexeme == y.Operator.Lexeme && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Logical:
		y, ok := b.(*Logical)
		return ok && x.Operator.Lexeme == y.Operator.Lexeme && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Grouping:
		y, ok := b.(*Grouping)
		return ok && Equal(x.Expression, y.Expression)
	case *Call:
		y, ok := b.(*Call)
		if !ok || !Equal(x.Callee, y.Callee) || len(x.Arguments) != len(y.Arguments) {
			return false
		}
		for i := range x.Arguments {
			if !Equal(x.Arguments[i], y.Arguments[i]) {
				return false
			}
		}
		return true
	case *Get:
		y, ok := b.(*Get)
		return ok && x.Name.Lexeme == y.Name.Lexeme && Equal(x.Object, y.Object)
	case *Set:
		y, ok := b.(*Set)
		return ok && x.Name.Lexeme == y.Name.Lexeme && Equal(x.Object, y.Object) && Equal(x.Value, y.Value)
	case *This:
		_, ok := b.(*This)
		return ok
	case *Super:
		y, ok := b.(*Super)
		return ok && x.Method.Lexeme == y.Method.Lexeme
	default:
		return false
	}
}
