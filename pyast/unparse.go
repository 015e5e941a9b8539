package pyast

import (
	"errors"
	"fmt"
	"strings"

	"go.jacobcolvin.com/pyvalrepr/pyval"
)

// ErrUnsupported indicates a node that [Unparse] cannot print, such as an
// unknown node type or an invalid operator.
var ErrUnsupported = errors.New("unsupported node")

type precedence int

// Operator precedence, loosest first.
const (
	precTuple precedence = iota
	precTest
	precOr
	precAnd
	precNot
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precFactor
	precPower
	precAtom
)

var binOpPrecedence = map[BinOperator]precedence{
	BitOr:    precBitOr,
	BitXor:   precBitXor,
	BitAnd:   precBitAnd,
	LShift:   precShift,
	RShift:   precShift,
	Add:      precArith,
	Sub:      precArith,
	Mult:     precTerm,
	Div:      precTerm,
	FloorDiv: precTerm,
	Mod:      precTerm,
	MatMult:  precTerm,
	Pow:      precPower,
}

// Unparse returns Python source text for n, parenthesized as needed so that
// parsing it again yields an equivalent tree.
func Unparse(n Node) (string, error) {
	u := &unparser{}

	err := u.node(n, precTest)
	if err != nil {
		return "", err
	}

	return u.sb.String(), nil
}

// NeedsParens reports whether outer must parenthesize its operand inner to
// keep the tree's shape when printed. Only operator nodes ever need to.
func NeedsParens(outer, inner Expr) bool {
	switch o := outer.(type) {
	case *BinOp:
		op, ok := binOpPrecedence[o.Op]
		if !ok {
			return false
		}

		in := exprPrecedence(inner)
		if in < op {
			return true
		}

		if in == op {
			if o.Op == Pow {
				return inner == o.Left
			}

			return inner == o.Right
		}

	case *UnaryOp:
		want := precFactor
		if o.Op == Not {
			want = precNot
		}

		return exprPrecedence(inner) < want

	case *BoolOp:
		want := precOr
		if o.Op == And {
			want = precAnd
		}

		return exprPrecedence(inner) <= want
	}

	return false
}

func exprPrecedence(e Expr) precedence {
	switch n := e.(type) {
	case *IfExp:
		return precTest
	case *BoolOp:
		if n.Op == And {
			return precAnd
		}

		return precOr
	case *UnaryOp:
		if n.Op == Not {
			return precNot
		}

		return precFactor
	case *Compare:
		return precCmp
	case *BinOp:
		if p, ok := binOpPrecedence[n.Op]; ok {
			return p
		}
	case *Constant:
		if isNegativeNumber(n.Value) {
			return precFactor
		}
	}

	return precAtom
}

func isNegativeNumber(v pyval.Value) bool {
	switch n := v.(type) {
	case pyval.Int:
		return n.V != nil && n.V.Sign() < 0
	case pyval.Float:
		return n < 0
	}

	return false
}

type unparser struct {
	sb strings.Builder
}

func (u *unparser) write(s ...string) {
	for _, part := range s {
		u.sb.WriteString(part)
	}
}

// paren writes fn's output, parenthesized when the node binds looser than
// the surrounding context requires.
func (u *unparser) paren(own, ctx precedence, fn func() error) error {
	if own < ctx {
		u.write("(")
	}

	if err := fn(); err != nil {
		return err
	}

	if own < ctx {
		u.write(")")
	}

	return nil
}

func (u *unparser) node(n Node, ctx precedence) error {
	switch n := n.(type) {
	case *Constant:
		return u.constant(n, ctx)

	case *Name:
		u.write(n.ID)

	case *Attribute:
		if err := u.node(n.Value, precAtom); err != nil {
			return err
		}

		if c, ok := n.Value.(*Constant); ok {
			if _, isInt := c.Value.(pyval.Int); isInt {
				u.write(" ")
			}
		}

		u.write(".", n.Attr)

	case *Subscript:
		if err := u.node(n.Value, precAtom); err != nil {
			return err
		}

		u.write("[")

		if t, ok := n.Slice.(*Tuple); ok && len(t.Elts) > 0 {
			if err := u.list(t.Elts, precTest); err != nil {
				return err
			}

			if len(t.Elts) == 1 {
				u.write(",")
			}
		} else if err := u.node(n.Slice, precTuple); err != nil {
			return err
		}

		u.write("]")

	case *Slice:
		return u.slice(n)

	case *Call:
		return u.call(n)

	case *Starred:
		u.write("*")

		return u.node(n.Value, precBitOr)

	case *Keyword:
		if n.Arg == "" {
			u.write("**")
		} else {
			u.write(n.Arg, "=")
		}

		return u.node(n.Value, precTest)

	case *UnaryOp:
		return u.unaryOp(n, ctx)

	case *BinOp:
		return u.binOp(n, ctx)

	case *BoolOp:
		return u.boolOp(n, ctx)

	case *Compare:
		return u.compare(n, ctx)

	case *IfExp:
		return u.paren(precTest, ctx, func() error {
			if err := u.node(n.Body, precTest+1); err != nil {
				return err
			}

			u.write(" if ")

			if err := u.node(n.Test, precTest+1); err != nil {
				return err
			}

			u.write(" else ")

			return u.node(n.OrElse, precTest)
		})

	case *List:
		u.write("[")

		if err := u.list(n.Elts, precTest); err != nil {
			return err
		}

		u.write("]")

	case *Tuple:
		u.write("(")

		if err := u.list(n.Elts, precTest); err != nil {
			return err
		}

		if len(n.Elts) == 1 {
			u.write(",")
		}

		u.write(")")

	case *Set:
		if len(n.Elts) == 0 {
			u.write("{*()}")

			return nil
		}

		u.write("{")

		if err := u.list(n.Elts, precTest); err != nil {
			return err
		}

		u.write("}")

	case *Dict:
		return u.dict(n)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupported, n)
	}

	return nil
}

func (u *unparser) constant(n *Constant, ctx precedence) error {
	if n.Value == nil {
		return fmt.Errorf("%w: constant without a value", ErrUnsupported)
	}

	if _, ok := n.Value.(pyval.EllipsisType); ok {
		u.write("...")

		return nil
	}

	s, err := pyval.Repr(n.Value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	return u.paren(exprPrecedence(n), ctx, func() error {
		u.write(s)

		return nil
	})
}

func (u *unparser) list(elts []Expr, ctx precedence) error {
	for i, e := range elts {
		if i > 0 {
			u.write(", ")
		}

		if err := u.node(e, ctx); err != nil {
			return err
		}
	}

	return nil
}

func (u *unparser) slice(n *Slice) error {
	if n.Lower != nil {
		if err := u.node(n.Lower, precTest); err != nil {
			return err
		}
	}

	u.write(":")

	if n.Upper != nil {
		if err := u.node(n.Upper, precTest); err != nil {
			return err
		}
	}

	if n.Step != nil {
		u.write(":")

		return u.node(n.Step, precTest)
	}

	return nil
}

func (u *unparser) call(n *Call) error {
	if err := u.node(n.Func, precAtom); err != nil {
		return err
	}

	u.write("(")

	if err := u.list(n.Args, precTest); err != nil {
		return err
	}

	for i, kw := range n.Keywords {
		if i > 0 || len(n.Args) > 0 {
			u.write(", ")
		}

		if err := u.node(kw, precTest); err != nil {
			return err
		}
	}

	u.write(")")

	return nil
}

func (u *unparser) unaryOp(n *UnaryOp, ctx precedence) error {
	own := precFactor
	text := n.Op.String()

	switch n.Op {
	case Not:
		own = precNot
		text = "not "
	case UAdd, USub, Invert:
	default:
		return fmt.Errorf("%w: unary operator %d", ErrUnsupported, n.Op)
	}

	return u.paren(own, ctx, func() error {
		u.write(text)

		return u.node(n.Operand, own)
	})
}

func (u *unparser) binOp(n *BinOp, ctx precedence) error {
	own, ok := binOpPrecedence[n.Op]
	if !ok {
		return fmt.Errorf("%w: binary operator %d", ErrUnsupported, n.Op)
	}

	left, right := own, own+1
	if n.Op == Pow {
		left, right = own+1, own
	}

	return u.paren(own, ctx, func() error {
		if err := u.node(n.Left, left); err != nil {
			return err
		}

		u.write(" ", n.Op.String(), " ")

		return u.node(n.Right, right)
	})
}

func (u *unparser) boolOp(n *BoolOp, ctx precedence) error {
	own := precOr

	switch n.Op {
	case And:
		own = precAnd
	case Or:
	default:
		return fmt.Errorf("%w: boolean operator %d", ErrUnsupported, n.Op)
	}

	return u.paren(own, ctx, func() error {
		for i, v := range n.Values {
			if i > 0 {
				u.write(" ", n.Op.String(), " ")
			}

			if err := u.node(v, own+1); err != nil {
				return err
			}
		}

		return nil
	})
}

func (u *unparser) compare(n *Compare, ctx precedence) error {
	if len(n.Ops) != len(n.Comparators) {
		return fmt.Errorf("%w: comparison with %d operators and %d operands",
			ErrUnsupported, len(n.Ops), len(n.Comparators))
	}

	return u.paren(precCmp, ctx, func() error {
		if err := u.node(n.Left, precCmp+1); err != nil {
			return err
		}

		for i, op := range n.Ops {
			text := op.String()
			if text == "" {
				return fmt.Errorf("%w: comparison operator %d", ErrUnsupported, op)
			}

			u.write(" ", text, " ")

			if err := u.node(n.Comparators[i], precCmp+1); err != nil {
				return err
			}
		}

		return nil
	})
}

func (u *unparser) dict(n *Dict) error {
	if len(n.Keys) != len(n.Values) {
		return fmt.Errorf("%w: dict with %d keys and %d values",
			ErrUnsupported, len(n.Keys), len(n.Values))
	}

	u.write("{")

	for i, k := range n.Keys {
		if i > 0 {
			u.write(", ")
		}

		if k == nil {
			u.write("**")

			if err := u.node(n.Values[i], precBitOr); err != nil {
				return err
			}

			continue
		}

		if err := u.node(k, precTest); err != nil {
			return err
		}

		u.write(": ")

		if err := u.node(n.Values[i], precTest); err != nil {
			return err
		}
	}

	u.write("}")

	return nil
}
