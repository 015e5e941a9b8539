package pyval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"go.jacobcolvin.com/pyvalrepr/sre"
)

// ErrNoRepr indicates a value whose textual form could not be computed.
var ErrNoRepr = errors.New("no repr")

// Repr returns the text Python's repr() gives for v.
func Repr(v Value) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil value", ErrNoRepr)
	case NoneType:
		return "None", nil
	case NotImplementedType:
		return "NotImplemented", nil
	case EllipsisType:
		return "Ellipsis", nil
	case Bool:
		if v {
			return "True", nil
		}

		return "False", nil
	case Int:
		return v.String(), nil
	case Float:
		return FloatRepr(float64(v)), nil
	case Complex:
		return ComplexRepr(complex128(v)), nil
	case Str:
		return StrRepr(string(v)), nil
	case Bytes:
		return BytesRepr(v), nil
	case Tuple:
		if len(v) == 1 {
			s, err := Repr(v[0])
			if err != nil {
				return "", err
			}

			return "(" + s + ",)", nil
		}

		return seqRepr(v, "(", ")")
	case List:
		return seqRepr(v, "[", "]")
	case Set:
		if len(v) == 0 {
			return "set()", nil
		}

		return seqRepr(v, "{", "}")
	case FrozenSet:
		if len(v) == 0 {
			return "frozenset()", nil
		}

		return seqRepr(v, "frozenset({", "})")
	case Dict:
		return dictRepr(v)
	case Pattern:
		s := "re.compile(" + StrRepr(v.Source)
		if flags := v.Flags &^ sre.FlagUnicode; flags != 0 {
			s += ", " + flags.String()
		}

		return s + ")", nil
	case Opaque:
		if v.ReprFunc == nil {
			return "", fmt.Errorf("%w: opaque value without repr", ErrNoRepr)
		}

		s, err := v.ReprFunc()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoRepr, err)
		}

		return s, nil
	}

	return "", fmt.Errorf("%w: unsupported value %T", ErrNoRepr, v)
}

func seqRepr(items []Value, open, closing string) (string, error) {
	parts := make([]string, 0, len(items))

	for _, item := range items {
		s, err := Repr(item)
		if err != nil {
			return "", err
		}

		parts = append(parts, s)
	}

	return open + strings.Join(parts, ", ") + closing, nil
}

func dictRepr(d Dict) (string, error) {
	parts := make([]string, 0, len(d))

	for _, item := range d {
		k, err := Repr(item.Key)
		if err != nil {
			return "", err
		}

		v, err := Repr(item.Value)
		if err != nil {
			return "", err
		}

		parts = append(parts, k+": "+v)
	}

	return "{" + strings.Join(parts, ", ") + "}", nil
}

// String returns the decimal form of i.
func (i Int) String() string {
	if i.V == nil {
		return "0"
	}

	return i.V.String()
}

// FloatRepr formats f the way Python's float repr does: the shortest
// representation that round-trips, in positional notation with a trailing
// ".0" when the decimal exponent is in [-4, 16), in exponent notation
// otherwise.
func FloatRepr(f float64) string {
	return formatFloat(f, true)
}

// ComplexRepr formats c the way Python's complex repr does.
func ComplexRepr(c complex128) string {
	re, im := real(c), imag(c)

	if re == 0 && !math.Signbit(re) {
		return formatFloat(im, false) + "j"
	}

	imStr := formatFloat(im, false)
	if !strings.HasPrefix(imStr, "-") {
		imStr = "+" + imStr
	}

	return "(" + formatFloat(re, false) + imStr + "j)"
}

func formatFloat(f float64, addDotZero bool) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	exp, _ := strconv.Atoi(exponent)

	if decpt := exp + 1; decpt > 16 || decpt <= -4 {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}

		return fmt.Sprintf("%se%s%02d", mantissa, sign, exp)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if addDotZero && !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// StrRepr quotes s the way Python's str repr does. Single quotes are used
// unless s contains a single quote and no double quote.
func StrRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var sb strings.Builder

	sb.WriteRune(quote)

	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x7f || unicode.IsPrint(r):
			sb.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}

	sb.WriteRune(quote)

	return sb.String()
}

// BytesRepr quotes b the way Python's bytes repr does.
func BytesRepr(b []byte) string {
	quote := byte('\'')
	if strings.IndexByte(string(b), '\'') >= 0 && strings.IndexByte(string(b), '"') < 0 {
		quote = '"'
	}

	return "b" + string(quote) + EscapeBytes(b, quote) + string(quote)
}

// EscapeBytes escapes b for use between quote characters: backslashes,
// quote, tabs, newlines and carriage returns are backslash-escaped, other
// bytes outside printable ASCII become \xhh.
func EscapeBytes(b []byte, quote byte) string {
	var sb strings.Builder

	for _, c := range b {
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
