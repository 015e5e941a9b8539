package colorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/pyvalrepr/markup"
	"go.jacobcolvin.com/pyvalrepr/sre"
)

func TestTrimFragments(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input []markup.Fragment
		n     int
		want  []markup.Fragment
	}{
		"within one fragment": {
			input: []markup.Fragment{markup.Text("abc"), markup.Text("defg")},
			n:     3,
			want:  []markup.Fragment{markup.Text("abc"), markup.Text("d")},
		},
		"across fragments": {
			input: []markup.Fragment{markup.Text("abc"), markup.Text("de")},
			n:     3,
			want:  []markup.Fragment{markup.Text("ab")},
		},
		"breaks dropped": {
			input: []markup.Fragment{markup.Text("abcd"), markup.WordBreak(), markup.Newline()},
			n:     1,
			want:  []markup.Fragment{markup.Text("abc")},
		},
		"link keeps target": {
			input: []markup.Fragment{markup.Link("a.b.c", markup.StyleLink)},
			n:     2,
			want: []markup.Fragment{
				{Kind: markup.KindLink, Text: "a.b", Style: markup.StyleLink, Target: "a.b.c"},
			},
		},
		"runes": {
			input: []markup.Fragment{markup.Text("aπé")},
			n:     2,
			want:  []markup.Fragment{markup.Text("a")},
		},
		"everything": {
			input: []markup.Fragment{markup.Text("ab")},
			n:     3,
			want:  []markup.Fragment{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := trimFragments(tc.input, tc.n)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUnknownPatternElements(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input sre.Node
	}{
		"category": {input: sre.Category{Code: 99}},
		"position": {input: sre.At{Code: 99}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := &run{c: New(), state: state{lineno: 1, lineBreaks: true}}

			err := r.reNode(tc.input, nil)
			require.ErrorIs(t, err, ErrInternal)
		})
	}
}

func TestMultilineRollback(t *testing.T) {
	t.Parallel()

	r := &run{c: New(WithLineWidth(4)), state: state{lineno: 1, lineBreaks: true}}

	calls := 0
	err := r.multiline(func() error {
		calls++
		r.score++

		return r.output("abcdef", markup.StyleNone)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, r.score)
	assert.Equal(t, 2, r.lineno)
	assert.True(t, r.lineBreaks)
}
