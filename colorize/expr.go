package colorize

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"go.jacobcolvin.com/pyvalrepr/markup"
	"go.jacobcolvin.com/pyvalrepr/pyast"
	"go.jacobcolvin.com/pyvalrepr/pyval"
	"go.jacobcolvin.com/pyvalrepr/sre"
)

var (
	reCompileName      = []string{"re", "compile"}
	reCompileSignature = pyast.NewSignature([]string{"pattern"}, "flags")
)

var unaryOperatorText = map[pyast.UnaryOperator]string{
	pyast.USub:   "-",
	pyast.UAdd:   "+",
	pyast.Not:    "not ",
	pyast.Invert: "~",
}

// node renders a syntax tree node.
func (r *run) node(n pyast.Node) error {
	switch n := n.(type) {
	case *pyast.Constant:
		if _, ok := n.Value.(pyval.EllipsisType); ok {
			return r.output(markup.EllipsisText, markup.StyleEllipsis)
		}

		return r.value(n.Value)

	case *pyast.UnaryOp:
		return r.unaryOp(n)
	case *pyast.BinOp:
		return r.binOp(n)
	case *pyast.BoolOp:
		return r.boolOp(n)

	case *pyast.List:
		return r.multiline(func() error { return iter(r, "[", "]", n.Elts) })
	case *pyast.Tuple:
		return r.multiline(func() error { return iter(r, "(", ")", n.Elts) })
	case *pyast.Set:
		return r.multiline(func() error { return iter(r, "set([", "])", n.Elts) })
	case *pyast.Dict:
		if len(n.Keys) != len(n.Values) {
			return r.generic(n)
		}

		entries := make([]entry, len(n.Keys))
		for i, k := range n.Keys {
			entries[i] = entry{value: n.Values[i]}
			if k != nil {
				entries[i].key = k
			}
		}

		return r.multiline(func() error { return r.dict(entries) })

	case *pyast.Name:
		return r.link(n.ID, markup.StyleLink)
	case *pyast.Attribute:
		name, ok := pyast.DottedName(n)
		if !ok {
			return r.generic(n)
		}

		return r.link(strings.Join(name, "."), markup.StyleLink)

	case *pyast.Subscript:
		return r.subscript(n)
	case *pyast.Call:
		return r.call(n)

	case *pyast.Starred:
		if err := r.output("*", markup.StyleNone); err != nil {
			return err
		}

		return r.node(n.Value)

	case *pyast.Keyword:
		prefix := "**"
		if n.Arg != "" {
			prefix = n.Arg + "="
		}

		if err := r.output(prefix, markup.StyleNone); err != nil {
			return err
		}

		return r.node(n.Value)
	}

	return r.generic(n)
}

// generic renders n as unparsed source text, or as the unknown marker when
// n cannot be unparsed.
func (r *run) generic(n pyast.Node) error {
	s, err := pyast.Unparse(n)
	if err != nil {
		r.c.logger.Debug("cannot unparse node", slog.Any("err", err))
		r.fragments = append(r.fragments, markup.Unknown())

		return nil
	}

	return r.output(s, markup.StyleNone)
}

// operand renders an operand of outer, parenthesized when needed to keep
// the tree's shape.
func (r *run) operand(outer, inner pyast.Expr) error {
	if !pyast.NeedsParens(outer, inner) {
		return r.value(inner)
	}

	return r.parenthesized(inner)
}

// primary renders the base of a subscript or call, parenthesizing operator
// expressions.
func (r *run) primary(e pyast.Expr) error {
	switch e.(type) {
	case *pyast.UnaryOp, *pyast.BinOp, *pyast.BoolOp, *pyast.Compare, *pyast.IfExp:
		return r.parenthesized(e)
	}

	return r.value(e)
}

// callee renders the function of a call. Unlike [run.primary] it does not
// count toward the score.
func (r *run) callee(e pyast.Expr) error {
	switch e.(type) {
	case *pyast.UnaryOp, *pyast.BinOp, *pyast.BoolOp, *pyast.Compare, *pyast.IfExp:
		return r.parenthesized(e)
	}

	return r.node(e)
}

func (r *run) parenthesized(e pyast.Expr) error {
	if err := r.output("(", markup.StyleGroup); err != nil {
		return err
	}

	if err := r.value(e); err != nil {
		return err
	}

	return r.output(")", markup.StyleGroup)
}

func (r *run) unaryOp(n *pyast.UnaryOp) error {
	text, ok := unaryOperatorText[n.Op]
	if !ok {
		return r.generic(n)
	}

	if err := r.output(text, markup.StyleNone); err != nil {
		return err
	}

	return r.operand(n, n.Operand)
}

func (r *run) binOp(n *pyast.BinOp) error {
	text := n.Op.String()
	if text == "" {
		return r.generic(n)
	}

	if err := r.operand(n, n.Left); err != nil {
		return err
	}

	if err := r.output(text, markup.StyleNone); err != nil {
		return err
	}

	return r.operand(n, n.Right)
}

func (r *run) boolOp(n *pyast.BoolOp) error {
	var sep string

	switch n.Op {
	case pyast.And:
		sep = " and "
	case pyast.Or:
		sep = " or "
	default:
		return r.generic(n)
	}

	for i, v := range n.Values {
		if i > 0 {
			if err := r.output(sep, markup.StyleNone); err != nil {
				return err
			}
		}

		if err := r.operand(n, v); err != nil {
			return err
		}
	}

	return nil
}

func (r *run) subscript(n *pyast.Subscript) error {
	if err := r.primary(n.Value); err != nil {
		return err
	}

	if err := r.output("[", markup.StyleGroup); err != nil {
		return err
	}

	var err error

	switch idx := n.Slice.(type) {
	case *pyast.Tuple:
		err = r.multiline(func() error { return iter(r, "", "", idx.Elts) })
	case *pyast.Slice:
		r.wordBreak()
		err = r.generic(idx)
	default:
		r.wordBreak()
		err = r.node(idx)
	}

	if err != nil {
		return err
	}

	return r.output("]", markup.StyleGroup)
}

// call renders a call. Calls to `re.compile` with a literal pattern render
// the pattern as a raw regular expression; any other call, or a pattern that
// does not parse, renders generically.
func (r *run) call(n *pyast.Call) error {
	name, ok := pyast.DottedName(n.Func)
	if !ok || !slices.Equal(name, reCompileName) {
		return r.genericCall(n)
	}

	args, err := reCompileSignature.Bind(n)
	if err != nil {
		r.c.logger.Debug("cannot bind re.compile arguments", slog.Any("err", err))

		return r.genericCall(n)
	}

	pattern, ok := patternSource(args)
	if !ok {
		return r.genericCall(n)
	}

	m := r.mark()

	err = r.reCompileCall(n, pattern, args)
	if err == nil || !errors.Is(err, sre.ErrSyntax) {
		return err
	}

	r.c.logger.Debug("cannot parse pattern", slog.Any("err", err))
	r.restore(m)

	return r.genericCall(n)
}

// patternSource returns the bound pattern argument when it is a string or
// bytes literal.
func patternSource(args *pyast.BoundArguments) (string, bool) {
	e, ok := args.Get("pattern")
	if !ok {
		return "", false
	}

	c, ok := e.(*pyast.Constant)
	if !ok {
		return "", false
	}

	switch v := c.Value.(type) {
	case pyval.Str:
		return string(v), true
	case pyval.Bytes:
		return string(v), true
	}

	return "", false
}

func (r *run) reCompileCall(n *pyast.Call, pattern string, args *pyast.BoundArguments) error {
	if err := r.node(n.Func); err != nil {
		return err
	}

	if err := r.output("(", markup.StyleGroup); err != nil {
		return err
	}

	indent := r.charpos

	if err := r.output("r", markup.StyleNone); err != nil {
		return err
	}

	if err := r.output("'", markup.StyleQuote); err != nil {
		return err
	}

	if err := r.pattern(pattern, 0); err != nil {
		return err
	}

	if err := r.output("'", markup.StyleQuote); err != nil {
		return err
	}

	if flags, ok := args.Get("flags"); ok {
		if err := r.comma(indent); err != nil {
			return err
		}

		if err := r.node(flags); err != nil {
			return err
		}
	}

	return r.output(")", markup.StyleGroup)
}

// genericCall renders positional and keyword arguments as two separate
// compact-first blocks. The comma between them follows the enclosing break
// state.
func (r *run) genericCall(n *pyast.Call) error {
	if err := r.callee(n.Func); err != nil {
		return err
	}

	if err := r.output("(", markup.StyleGroup); err != nil {
		return err
	}

	indent := r.charpos

	if err := r.multiline(func() error { return iter(r, "", "", n.Args) }); err != nil {
		return err
	}

	if len(n.Args) > 0 && len(n.Keywords) > 0 {
		if err := r.comma(indent); err != nil {
			return err
		}
	}

	if err := r.multiline(func() error { return iter(r, "", "", n.Keywords) }); err != nil {
		return err
	}

	return r.output(")", markup.StyleGroup)
}
