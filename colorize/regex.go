package colorize

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.jacobcolvin.com/pyvalrepr/markup"
	"go.jacobcolvin.com/pyvalrepr/pyval"
	"go.jacobcolvin.com/pyvalrepr/sre"
)

// regexSpecial holds the characters escaped in pattern literals. The quote
// is included since patterns render inside single quotes.
const regexSpecial = `.^$\*+?{}[]|()'`

var categoryText = map[sre.CategoryCode]string{
	sre.CategoryDigit:    `\d`,
	sre.CategoryNotDigit: `\D`,
	sre.CategorySpace:    `\s`,
	sre.CategoryNotSpace: `\S`,
	sre.CategoryWord:     `\w`,
	sre.CategoryNotWord:  `\W`,
}

var atText = map[sre.AtCode]string{
	sre.AtBeginningString: `\A`,
	sre.AtBeginning:       `^`,
	sre.AtEnd:             `$`,
	sre.AtBoundary:        `\b`,
	sre.AtNonBoundary:     `\B`,
	sre.AtEndString:       `\Z`,
}

// livePattern renders a compiled pattern as a `re.compile` call with its
// flags inlined. A source that does not parse falls back to the repr.
func (r *run) livePattern(p pyval.Pattern) error {
	m := r.mark()

	err := r.livePatternCall(p)
	if err == nil || !errors.Is(err, sre.ErrSyntax) {
		return err
	}

	r.c.logger.Debug("cannot parse pattern", slog.Any("err", err))
	r.restore(m)

	s, err := pyval.Repr(p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return r.output(s, markup.StyleNone)
}

func (r *run) livePatternCall(p pyval.Pattern) error {
	if err := r.output("re.compile(r'", markup.StyleNone); err != nil {
		return err
	}

	if p.Flags != 0 {
		if err := r.output("(?"+p.Flags.Letters()+")", markup.StyleReFlags); err != nil {
			return err
		}
	}

	if err := r.pattern(p.Source, p.Flags); err != nil {
		return err
	}

	return r.output("')", markup.StyleNone)
}

// pattern parses source and renders its elements.
func (r *run) pattern(source string, flags sre.Flag) error {
	tree, err := sre.Parse(source, flags)
	if err != nil {
		return err
	}

	return r.reSeq(tree.Items, true, tree.GroupNames)
}

// reSeq renders a sequence of elements, grouped in parentheses when it has
// more than one element and noparen is false.
func (r *run) reSeq(items []sre.Node, noparen bool, names map[int]string) error {
	paren := len(items) > 1 && !noparen

	if paren {
		if err := r.output("(", markup.StyleReGroup); err != nil {
			return err
		}
	}

	for _, item := range items {
		if err := r.reNode(item, names); err != nil {
			return err
		}
	}

	if paren {
		return r.output(")", markup.StyleReGroup)
	}

	return nil
}

func (r *run) reNode(n sre.Node, names map[int]string) error {
	switch n := n.(type) {
	case sre.Literal:
		return r.output(escapeRegexLiteral(n.Char), markup.StyleReChar)

	case sre.NotLiteral:
		if err := r.output("[^", markup.StyleReGroup); err != nil {
			return err
		}

		if err := r.output(escapeRegexLiteral(n.Char), markup.StyleReChar); err != nil {
			return err
		}

		return r.output("]", markup.StyleReGroup)

	case sre.Any:
		return r.output(".", markup.StyleReChar)

	case sre.Branch:
		for i, alt := range n.Alternatives {
			if i > 0 {
				if err := r.output("|", markup.StyleReOp); err != nil {
					return err
				}
			}

			if err := r.reSeq(alt, true, names); err != nil {
				return err
			}
		}

		return nil

	case sre.In:
		if len(n.Items) == 1 {
			if _, ok := n.Items[0].(sre.Category); ok {
				return r.reSeq(n.Items, false, names)
			}
		}

		if err := r.output("[", markup.StyleReGroup); err != nil {
			return err
		}

		if err := r.reSeq(n.Items, true, names); err != nil {
			return err
		}

		return r.output("]", markup.StyleReGroup)

	case sre.Category:
		text, ok := categoryText[n.Code]
		if !ok {
			return fmt.Errorf("%w: unknown category %d", ErrInternal, n.Code)
		}

		return r.output(text, markup.StyleReChar)

	case sre.At:
		text, ok := atText[n.Code]
		if !ok {
			return fmt.Errorf("%w: unknown position %d", ErrInternal, n.Code)
		}

		return r.output(text, markup.StyleReChar)

	case sre.Repeat:
		if err := r.reSeq(n.Body, false, names); err != nil {
			return err
		}

		return r.output(quantifier(n), markup.StyleReOp)

	case sre.Group:
		if err := r.groupOpen(n, names); err != nil {
			return err
		}

		if err := r.reSeq(n.Body, true, names); err != nil {
			return err
		}

		return r.output(")", markup.StyleReGroup)

	case sre.GroupRef:
		return r.output(`\`+strconv.Itoa(n.Index), markup.StyleReRef)

	case sre.Range:
		if err := r.output(escapeRegexLiteral(n.Lo), markup.StyleReChar); err != nil {
			return err
		}

		if err := r.output("-", markup.StyleReOp); err != nil {
			return err
		}

		return r.output(escapeRegexLiteral(n.Hi), markup.StyleReChar)

	case sre.Negate:
		return r.output("^", markup.StyleReOp)

	case sre.Assert:
		open := "(?"
		if n.Behind {
			open += "<"
		}

		if n.Negative {
			open += "!"
		} else {
			open += "="
		}

		if err := r.output(open, markup.StyleReGroup); err != nil {
			return err
		}

		if err := r.reSeq(n.Body, true, names); err != nil {
			return err
		}

		return r.output(")", markup.StyleReGroup)
	}

	return fmt.Errorf("%w: unknown pattern element %T", ErrInternal, n)
}

// groupOpen renders the opening of a group: `(?:` for non-capturing groups,
// `(?P<name>` for named groups and `(` for numbered groups.
func (r *run) groupOpen(g sre.Group, names map[int]string) error {
	name := g.Name
	if g.Index > 0 && names[g.Index] != "" {
		name = names[g.Index]
	}

	switch {
	case name != "":
		if err := r.output("(?P<", markup.StyleReGroup); err != nil {
			return err
		}

		if err := r.output(name, markup.StyleReRef); err != nil {
			return err
		}

		return r.output(">", markup.StyleReGroup)

	case g.Index == 0:
		return r.output("(?:", markup.StyleReGroup)
	}

	return r.output("(", markup.StyleReGroup)
}

func quantifier(n sre.Repeat) string {
	var q string

	switch {
	case n.Max == sre.Unbounded && n.Min == 0:
		q = "*"
	case n.Max == sre.Unbounded && n.Min == 1:
		q = "+"
	case n.Max == sre.Unbounded:
		q = fmt.Sprintf("{%d,}", n.Min)
	case n.Min == 0 && n.Max == 1:
		q = "?"
	case n.Min == 0:
		q = fmt.Sprintf("{,%d}", n.Max)
	case n.Min == n.Max:
		q = fmt.Sprintf("{%d}", n.Max)
	default:
		q = fmt.Sprintf("{%d,%d}", n.Min, n.Max)
	}

	if n.Lazy {
		q += "?"
	}

	return q
}

func escapeRegexLiteral(c rune) string {
	switch c {
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\v':
		return `\v`
	}

	switch {
	case strings.ContainsRune(regexSpecial, c):
		return `\` + string(c)
	case c > 0xffff:
		return fmt.Sprintf(`\U%08x`, c)
	case c > 0xff:
		return fmt.Sprintf(`\u%04x`, c)
	case c < 0x20 || c >= 0x7f:
		return fmt.Sprintf(`\x%02x`, c)
	}

	return string(c)
}
