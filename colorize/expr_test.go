package colorize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/pyvalrepr/colorize"
	"go.jacobcolvin.com/pyvalrepr/markup"
	"go.jacobcolvin.com/pyvalrepr/pyast"
	"go.jacobcolvin.com/pyvalrepr/pyval"
)

func TestColorizeExpressions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"name":             {input: "a", want: "a"},
		"dotted name":      {input: "a.b.c", want: "a.b.c"},
		"ellipsis":         {input: "...", want: "..."},
		"grouped operands": {input: "(1+2)*3", want: "(1+2)*3"},
		"no extra parens":  {input: "1+2*3", want: "1+2*3"},
		"right operand":    {input: "a-(b-c)", want: "a-(b-c)"},
		"power":            {input: "(a**b)**c", want: "(a**b)**c"},
		"unary":            {input: "-x", want: "-x"},
		"not":              {input: "a and not b", want: "a and not b"},
		"nested bool":      {input: "a or (b or c)", want: "a or (b or c)"},
		"mixed bool":       {input: "(a or b) and c", want: "(a or b) and c"},
		"list":             {input: "[1, 'a']", want: "[1, 'a']"},
		"tuple":            {input: "(1, 2)", want: "(1, 2)"},
		"set":              {input: "{1}", want: "set([1])"},
		"dict unpacking":   {input: "{'a': 1, **b}", want: "{'a': 1, **b}"},
		"subscript":        {input: "x[1]", want: "x[1]"},
		"slice":            {input: "x[1:2]", want: "x[1:2]"},
		"tuple subscript":  {input: "x[1, 2]", want: "x[1, 2]"},
		"operator base":    {input: "(a+b)[0]", want: "(a+b)[0]"},
		"call":             {input: "f(1, a=2)", want: "f(1,\n  a=2)"},
		"call no args":     {input: "f()", want: "f()"},
		"call unpacking":   {input: "f(*args, **kw)", want: "f(*args,\n  **kw)"},
		"attribute call":   {input: "f(x).y", want: "f(x).y"},
		"comparison":       {input: "a < b", want: "a < b"},
		"conditional":      {input: "1 if x else 2", want: "1 if x else 2"},
		"re.compile":       {input: `re.compile(r"a|b")`, want: `re.compile(r'a|b')`},
		"re.compile flags": {input: `re.compile(r"\d+", re.I)`, want: "re.compile(r'\\d+',\n           re.I)"},
		"re.compile bytes": {input: `re.compile(b"[a-z_]")`, want: `re.compile(r'[a-z_]')`},
		"keyword pattern":  {input: `re.compile(pattern="x?")`, want: `re.compile(r'x?')`},
		"invalid pattern":  {input: `re.compile("(")`, want: `re.compile('(')`},
		"pattern variable": {input: `re.compile(p)`, want: `re.compile(p)`},
		"too many args":    {input: `re.compile("a", 0, 1)`, want: `re.compile('a', 0, 1)`},
		"starred pattern":  {input: `re.compile(*args)`, want: `re.compile(*args)`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			expr, err := pyast.Parse(tc.input)
			require.NoError(t, err)

			got, err := colorize.Value(expr)
			require.NoError(t, err)

			assert.Equal(t, tc.want, got.String())
			assert.True(t, got.Complete)
		})
	}
}

func TestColorizeExpressionLinks(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []string
	}{
		"names":      {input: "f(a, b.c)", want: []string{"f", "a", "b.c"}},
		"re.compile": {input: `re.compile("x", re.I)`, want: []string{"re.compile", "re.I"}},
		"constants":  {input: "[None, True]", want: []string{"None", "True"}},
		"generic":    {input: "a if b else c", want: nil},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			expr, err := pyast.Parse(tc.input)
			require.NoError(t, err)

			got, err := colorize.Value(expr)
			require.NoError(t, err)

			assert.Equal(t, tc.want, got.Document.Links())
		})
	}
}

func TestColorizeExpressionLayout(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input     string
		colorizer *colorize.Colorizer
		want      string
	}{
		"positional arguments break together": {
			colorizer: colorize.New(colorize.WithLineWidth(10)),
			input:     "f(1111, 2222, 3333)",
			want:      "f(1111,\n  2222,\n  3333)",
		},
		"keywords start a new line": {
			colorizer: colorize.New(colorize.WithLineWidth(80)),
			input:     "f(1, 2, a=3, b=4)",
			want:      "f(1, 2,\n  a=3, b=4)",
		},
		"keywords only stay compact": {
			colorizer: colorize.New(colorize.WithLineWidth(80)),
			input:     "f(a=1, b=2)",
			want:      "f(a=1, b=2)",
		},
		"nested call stays compact": {
			colorizer: colorize.New(colorize.WithLineWidth(80)),
			input:     "[f(1, a=2)]",
			want:      "[f(1, a=2)]",
		},
		"flags on a single line": {
			colorizer: colorize.New(colorize.WithLineBreaks(false)),
			input:     `re.compile(r"\d+", re.I)`,
			want:      `re.compile(r'\d+', re.I)`,
		},
		"flags line budget": {
			colorizer: colorize.New(colorize.WithMaxLines(1)),
			input:     `re.compile(r"\d+", re.I)`,
			want:      "re.compile(r'\\d+',\n...",
		},
		"inline call": {
			colorizer: colorize.New(colorize.WithLineWidth(0), colorize.WithLineBreaks(false)),
			input:     "f(1111, a=2222)",
			want:      "f(1111, a=2222)",
		},
		"tuple subscript breaks": {
			colorizer: colorize.New(colorize.WithLineWidth(8)),
			input:     "x[1111, 2222]",
			want:      "x[1111,\n  2222]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			expr, err := pyast.Parse(tc.input)
			require.NoError(t, err)

			got, err := tc.colorizer.Colorize(expr)
			require.NoError(t, err)

			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestColorizeExpressionScore(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  int
	}{
		"name":          {input: "f", want: 1},
		"constant":      {input: "1", want: 2},
		"call":          {input: "f(1)", want: 3},
		"dotted call":   {input: "a.b.f()", want: 1},
		"operator call": {input: "(f or g)()", want: 4},
		"subscript":     {input: "x[1]", want: 3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			expr, err := pyast.Parse(tc.input)
			require.NoError(t, err)

			got, err := colorize.Value(expr)
			require.NoError(t, err)

			assert.Equal(t, tc.want, got.Score)
		})
	}
}

func TestColorizeUnsupportedNode(t *testing.T) {
	t.Parallel()

	// Mismatched keys and values cannot be unparsed either.
	expr := &pyast.Dict{Keys: []pyast.Expr{&pyast.Name{ID: "a"}}}

	got, err := colorize.Value(expr)
	require.NoError(t, err)

	assert.Equal(t, []markup.Fragment{markup.Unknown()}, got.Document.Fragments)
}

func TestColorizeUnknownOperator(t *testing.T) {
	t.Parallel()

	expr := &pyast.BinOp{
		Left:  &pyast.Constant{Value: pyval.NewInt(1)},
		Op:    pyast.BinOperator(99),
		Right: &pyast.Constant{Value: pyval.NewInt(2)},
	}

	got, err := colorize.Value(expr)
	require.NoError(t, err)

	assert.Equal(t, []markup.Fragment{markup.Unknown()}, got.Document.Fragments)
}
