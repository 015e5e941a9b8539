package pyval_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/pyvalrepr/pyval"
	"go.jacobcolvin.com/pyvalrepr/sre"
)

func TestRepr(t *testing.T) {
	t.Parallel()

	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	tcs := map[string]struct {
		value pyval.Value
		want  string
	}{
		"none":            {value: pyval.None, want: "None"},
		"not implemented": {value: pyval.NotImplemented, want: "NotImplemented"},
		"ellipsis":        {value: pyval.Ellipsis, want: "Ellipsis"},
		"true":            {value: pyval.Bool(true), want: "True"},
		"false":           {value: pyval.Bool(false), want: "False"},
		"int":             {value: pyval.NewInt(-42), want: "-42"},
		"zero int":        {value: pyval.Int{}, want: "0"},
		"big int":         {value: pyval.Int{V: huge}, want: "123456789012345678901234567890"},
		"float":           {value: pyval.Float(1.5), want: "1.5"},
		"complex":         {value: pyval.Complex(complex(1, 2)), want: "(1+2j)"},
		"str":             {value: pyval.Str("hi"), want: "'hi'"},
		"bytes":           {value: pyval.Bytes("hi"), want: "b'hi'"},
		"empty tuple":     {value: pyval.Tuple{}, want: "()"},
		"one tuple":       {value: pyval.Tuple{pyval.NewInt(1)}, want: "(1,)"},
		"tuple":           {value: pyval.Tuple{pyval.NewInt(1), pyval.Str("a")}, want: "(1, 'a')"},
		"list":            {value: pyval.List{pyval.NewInt(1), pyval.None}, want: "[1, None]"},
		"empty set":       {value: pyval.Set{}, want: "set()"},
		"set":             {value: pyval.Set{pyval.NewInt(1)}, want: "{1}"},
		"empty frozenset": {value: pyval.FrozenSet{}, want: "frozenset()"},
		"frozenset":       {value: pyval.FrozenSet{pyval.NewInt(1), pyval.NewInt(2)}, want: "frozenset({1, 2})"},
		"dict": {
			value: pyval.Dict{
				{Key: pyval.Str("a"), Value: pyval.NewInt(1)},
				{Key: pyval.NewInt(2), Value: pyval.List{}},
			},
			want: "{'a': 1, 2: []}",
		},
		"pattern": {
			value: pyval.Pattern{Source: `\d+`},
			want:  `re.compile('\\d+')`,
		},
		"pattern with flags": {
			value: pyval.Pattern{Source: "a", Flags: sre.FlagIgnoreCase | sre.FlagUnicode | sre.FlagMultiline},
			want:  "re.compile('a', re.IGNORECASE|re.MULTILINE)",
		},
		"opaque": {
			value: pyval.NewOpaque("<thing>"),
			want:  "<thing>",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := pyval.Repr(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReprErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tcs := map[string]struct {
		value pyval.Value
		err   error
	}{
		"nil": {
			value: nil,
			err:   pyval.ErrNoRepr,
		},
		"opaque without func": {
			value: pyval.Opaque{},
			err:   pyval.ErrNoRepr,
		},
		"failing opaque": {
			value: pyval.FailingOpaque(errBoom),
			err:   errBoom,
		},
		"failing element": {
			value: pyval.List{pyval.NewInt(1), pyval.FailingOpaque(errBoom)},
			err:   errBoom,
		},
		"failing dict value": {
			value: pyval.Dict{{Key: pyval.Str("k"), Value: pyval.FailingOpaque(errBoom)}},
			err:   pyval.ErrNoRepr,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pyval.Repr(tc.value)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestFloatRepr(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input float64
	}{
		"integral":          {input: 1, want: "1.0"},
		"fraction":          {input: 0.1, want: "0.1"},
		"negative zero":     {input: math.Copysign(0, -1), want: "-0.0"},
		"large positional":  {input: 1e15, want: "1000000000000000.0"},
		"exponent boundary": {input: 1e16, want: "1e+16"},
		"small positional":  {input: 0.0001, want: "0.0001"},
		"small exponent":    {input: 0.00001, want: "1e-05"},
		"mantissa":          {input: 1.5e300, want: "1.5e+300"},
		"shortest":          {input: 123.456, want: "123.456"},
		"inf":               {input: math.Inf(1), want: "inf"},
		"negative inf":      {input: math.Inf(-1), want: "-inf"},
		"nan":               {input: math.NaN(), want: "nan"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, pyval.FloatRepr(tc.input))
		})
	}
}

func TestComplexRepr(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input complex128
	}{
		"imaginary":      {input: complex(0, 2), want: "2j"},
		"zero":           {input: 0, want: "0j"},
		"fractional":     {input: complex(0, 1.5), want: "1.5j"},
		"both parts":     {input: complex(1, 2), want: "(1+2j)"},
		"negative imag":  {input: complex(1, -2), want: "(1-2j)"},
		"zero imag":      {input: complex(1.5, 0), want: "(1.5+0j)"},
		"negative real":  {input: complex(-1, math.Copysign(0, -1)), want: "(-1-0j)"},
		"negative zero":  {input: complex(math.Copysign(0, -1), 1), want: "(-0+1j)"},
		"infinite parts": {input: complex(math.Inf(1), 1), want: "(inf+1j)"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, pyval.ComplexRepr(tc.input))
		})
	}
}

func TestStrRepr(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"plain":              {input: "abc", want: "'abc'"},
		"empty":              {input: "", want: "''"},
		"single quote":       {input: "it's", want: `"it's"`},
		"both quotes":        {input: `a'b"c`, want: `'a\'b"c'`},
		"double quote":       {input: `"x"`, want: `'"x"'`},
		"backslash":          {input: `a\b`, want: `'a\\b'`},
		"control characters": {input: "a\nb\tc\r\x00\x7f", want: `'a\nb\tc\r\x00\x7f'`},
		"latin":              {input: "é", want: "'é'"},
		"non-breaking space": {input: "\u00a0", want: `'\xa0'`},
		"format character":   {input: "\u200b", want: `'\u200b'`},
		"emoji":              {input: "😀", want: "'😀'"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, pyval.StrRepr(tc.input))
		})
	}
}

func TestBytesRepr(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input []byte
	}{
		"plain":        {input: []byte("abc"), want: "b'abc'"},
		"single quote": {input: []byte("it's"), want: `b"it's"`},
		"both quotes":  {input: []byte(`'"`), want: `b'\'"'`},
		"binary":       {input: []byte{0, 0xff, '\n'}, want: `b'\x00\xff\n'`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, pyval.BytesRepr(tc.input))
		})
	}
}

func TestEscapeBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `it\'s`, pyval.EscapeBytes([]byte("it's"), '\''))
	assert.Equal(t, `say "hi"`, pyval.EscapeBytes([]byte(`say "hi"`), '\''))
}
