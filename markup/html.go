package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts doc into a `<code>` element. Styled fragments become
// `<span>` elements carrying the style's CSS class, resolved links become
// `<a>` elements, newlines become `<br>` and word-break opportunities
// become `<wbr>`. A nil linker leaves every link unresolved.
func HTML(doc Document, linker Linker) *html.Node {
	code := newElement(atom.Code)

	for _, f := range doc.Fragments {
		code.AppendChild(fragmentNode(f, linker))
	}

	return code
}

// RenderHTML writes the HTML form of doc to w.
func RenderHTML(w io.Writer, doc Document, linker Linker) error {
	err := html.Render(w, HTML(doc, linker))
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	return nil
}

func fragmentNode(f Fragment, linker Linker) *html.Node {
	switch f.Kind {
	case KindNewline:
		return newElement(atom.Br)
	case KindWordBreak:
		return newElement(atom.Wbr)
	case KindLink:
		if linker == nil {
			break
		}

		url, ok := linker.Resolve(f.Target)
		if !ok {
			break
		}

		a := newElement(atom.A, html.Attribute{Key: "href", Val: url})
		if class := f.Style.Class(); class != "" {
			a.Attr = append(a.Attr, html.Attribute{Key: "class", Val: class})
		}

		a.AppendChild(&html.Node{Type: html.TextNode, Data: f.Text})

		return a
	}

	text := &html.Node{Type: html.TextNode, Data: f.Text}

	class := f.Style.Class()
	if class == "" {
		return text
	}

	span := newElement(atom.Span, html.Attribute{Key: "class", Val: class})
	span.AppendChild(text)

	return span
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
