package markup_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/pyvalrepr/markup"
)

func sampleDocument() markup.Document {
	return markup.Document{Fragments: []markup.Fragment{
		markup.Styled("[", markup.StyleGroup),
		markup.WordBreak(),
		markup.Link("None", markup.StyleConst),
		markup.Styled(",", markup.StyleComma),
		markup.Newline(),
		markup.Text(" "),
		markup.WordBreak(),
		markup.Styled("'", markup.StyleQuote),
		markup.Styled("a<b", markup.StyleString),
		markup.Styled("'", markup.StyleQuote),
		markup.Styled("]", markup.StyleGroup),
	}}
}

func TestDocumentString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc  markup.Document
		want string
	}{
		"empty": {
			doc:  markup.Document{},
			want: "",
		},
		"newlines and word breaks": {
			doc:  sampleDocument(),
			want: "[None,\n 'a<b']",
		},
		"markers": {
			doc: markup.Document{Fragments: []markup.Fragment{
				markup.Text("ab"),
				markup.LineWrap(),
				markup.Newline(),
				markup.Unknown(),
				markup.Ellipsis(),
			}},
			want: "ab↵\n??...",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.doc.String())
		})
	}
}

func TestDocumentLines(t *testing.T) {
	t.Parallel()

	lines := sampleDocument().Lines()
	require.Len(t, lines, 2)

	assert.Len(t, lines[0], 4)
	assert.Equal(t, markup.Text(" "), lines[1][0])
}

func TestDocumentLinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"None"}, sampleDocument().Links())
	assert.Empty(t, markup.Document{}.Links())
}

func TestFragment(t *testing.T) {
	t.Parallel()

	assert.True(t, markup.LineWrap().IsLineWrap())
	assert.False(t, markup.Ellipsis().IsLineWrap())
	assert.Equal(t, 1, markup.LineWrap().Len())
	assert.Equal(t, 0, markup.WordBreak().Len())

	link := markup.Link("re.compile", markup.StyleLink)
	assert.Equal(t, markup.KindLink, link.Kind)
	assert.Equal(t, "re.compile", link.Target)
}

func TestStyleClass(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		style markup.Style
		want  string
	}{
		"quote":    {style: markup.StyleQuote, want: "variable-quote"},
		"string":   {style: markup.StyleString, want: "variable-string"},
		"link":     {style: markup.StyleLink, want: "variable-link"},
		"ellipsis": {style: markup.StyleEllipsis, want: "variable-ellipsis"},
		"linewrap": {style: markup.StyleLineWrap, want: "variable-linewrap"},
		"unknown":  {style: markup.StyleUnknown, want: "variable-unknown"},
		"re group": {style: markup.StyleReGroup, want: "re-group"},
		"re ref":   {style: markup.StyleReRef, want: "re-ref"},
		"re op":    {style: markup.StyleReOp, want: "re-op"},
		"re flags": {style: markup.StyleReFlags, want: "re-flags"},
		"number":   {style: markup.StyleNumber, want: ""},
		"none":     {style: markup.StyleNone, want: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.style.Class())
		})
	}
}

func TestGetAllStyles(t *testing.T) {
	t.Parallel()

	styles := markup.GetAllStyles()
	assert.Len(t, styles, 16)
	assert.NotContains(t, styles, markup.StyleNone)
}

func TestDocumentJSON(t *testing.T) {
	t.Parallel()

	doc := markup.Document{Fragments: []markup.Fragment{
		markup.Link("True", markup.StyleConst),
		markup.Newline(),
	}}

	got, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"fragments":[{"kind":"link","text":"True","style":"const","target":"True"},{"kind":"newline"}]}`,
		string(got))
}
