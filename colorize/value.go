package colorize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.jacobcolvin.com/pyvalrepr/markup"
	"go.jacobcolvin.com/pyvalrepr/pyast"
	"go.jacobcolvin.com/pyvalrepr/pyval"
)

// Score adjustments.
const (
	scoreVisit         = 1
	scoreUnrenderable  = -100
	scoreGenericObject = -5
)

var genericObjectRe = regexp.MustCompile(`(?i)^<(?P<descr>.*) at (?P<addr>0x[0-9a-f]+)>$`)

// value renders any value: syntax tree nodes, [pyval.Value] values, and Go
// values converted with [pyval.FromGo].
func (r *run) value(v any) error {
	r.score += scoreVisit

	switch v := v.(type) {
	case pyast.Node:
		return r.node(v)
	case pyval.Value:
		return r.pyval(v)
	}

	return r.pyval(pyval.FromGo(v))
}

// pyval dispatches on the exact type of v. Values without a dedicated
// rendering go through their repr.
func (r *run) pyval(v pyval.Value) error {
	switch v := v.(type) {
	case pyval.NoneType:
		return r.link("None", markup.StyleConst)
	case pyval.NotImplementedType:
		return r.link("NotImplemented", markup.StyleConst)
	case pyval.Bool:
		if v {
			return r.link("True", markup.StyleConst)
		}

		return r.link("False", markup.StyleConst)

	case pyval.Int:
		return r.output(v.String(), markup.StyleNumber)
	case pyval.Float:
		return r.output(pyval.FloatRepr(float64(v)), markup.StyleNumber)
	case pyval.Complex:
		return r.output(pyval.ComplexRepr(complex128(v)), markup.StyleNumber)

	case pyval.Str:
		return r.quoted(string(v), "", escapeStr)
	case pyval.Bytes:
		return r.quoted(string(v), "b", escapeBytes)

	case pyval.Tuple:
		return r.multiline(func() error { return iter(r, "(", ")", v) })
	case pyval.List:
		return r.multiline(func() error { return iter(r, "[", "]", v) })
	case pyval.Set:
		return r.multiline(func() error { return iter(r, "set([", "])", v) })
	case pyval.FrozenSet:
		return r.multiline(func() error { return iter(r, "frozenset([", "])", v) })

	case pyval.Dict:
		entries := make([]entry, len(v))
		for i, item := range v {
			entries[i] = entry{key: item.Key, value: item.Value}
		}

		return r.multiline(func() error { return r.dict(entries) })

	case pyval.Pattern:
		return r.livePattern(v)
	}

	return r.opaque(v)
}

// opaque renders v through its repr. Generic object reprs lose their
// address, and values whose repr fails become the unknown marker.
func (r *run) opaque(v pyval.Value) error {
	s, err := pyval.Repr(v)
	if err != nil {
		r.c.logger.Debug("value has no repr", slog.Any("err", err))

		r.score += scoreUnrenderable
		r.fragments = append(r.fragments, markup.Unknown())

		return nil
	}

	m := genericObjectRe.FindStringSubmatch(s)
	if m == nil {
		return r.output(s, markup.StyleNone)
	}

	r.score += scoreGenericObject

	return r.output("<"+m[genericObjectRe.SubexpIndex("descr")]+">", markup.StyleNone)
}

// iter renders items between prefix and suffix, separated by commas, with a
// word break opportunity before each item. Continuation lines are indented
// to the column after prefix.
func iter[T any](r *run, prefix, suffix string, items []T) error {
	if prefix != "" {
		if err := r.output(prefix, markup.StyleGroup); err != nil {
			return err
		}
	}

	indent := r.charpos

	for i, item := range items {
		if i > 0 {
			if err := r.comma(indent); err != nil {
				return err
			}
		}

		r.wordBreak()

		if err := r.value(item); err != nil {
			return err
		}
	}

	if suffix != "" {
		return r.output(suffix, markup.StyleGroup)
	}

	return nil
}

// entry is a dict item. A nil key renders as a `**value` unpacking.
type entry struct {
	key   any
	value any
}

func (r *run) dict(entries []entry) error {
	if err := r.output("{", markup.StyleGroup); err != nil {
		return err
	}

	indent := r.charpos

	for i, e := range entries {
		if i > 0 {
			if err := r.comma(indent); err != nil {
				return err
			}
		}

		r.wordBreak()

		if e.key == nil {
			if err := r.output("**", markup.StyleNone); err != nil {
				return err
			}
		} else {
			if err := r.value(e.key); err != nil {
				return err
			}

			if err := r.output(": ", markup.StyleColon); err != nil {
				return err
			}
		}

		if err := r.value(e.value); err != nil {
			return err
		}
	}

	return r.output("}", markup.StyleGroup)
}

// quoted renders a string literal. Triple quotes are used when the body has
// a newline and breaks are allowed; the body is then split into real lines.
func (r *run) quoted(body, prefix string, escape func(string) string) error {
	quote := "'"
	if strings.Contains(body, "\n") && r.lineBreaks {
		quote = "'''"
	}

	lines := []string{body}
	if r.lineBreaks {
		lines = strings.Split(body, "\n")
	}

	if err := r.output(prefix+quote, markup.StyleQuote); err != nil {
		return err
	}

	for i, line := range lines {
		if i > 0 {
			if err := r.output("\n", markup.StyleNone); err != nil {
				return err
			}
		}

		if err := r.output(escape(line), markup.StyleString); err != nil {
			return err
		}
	}

	return r.output(quote, markup.StyleQuote)
}

// escapeStr escapes single quotes and every character up to U+00FF that is
// not printable ASCII. Characters above U+00FF are kept.
func escapeStr(s string) string {
	var sb strings.Builder

	for _, c := range s {
		switch {
		case c == '\'':
			sb.WriteString(`\'`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || (c >= 0x7f && c <= 0xff):
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteRune(c)
		}
	}

	return sb.String()
}

func escapeBytes(s string) string {
	return pyval.EscapeBytes([]byte(s), '\'')
}
