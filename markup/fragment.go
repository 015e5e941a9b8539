package markup

import (
	"strings"
	"unicode/utf8"
)

// Kind identifies what a [Fragment] represents.
type Kind string

// Fragment kinds.
const (
	KindText      Kind = "text"
	KindLink      Kind = "link"
	KindNewline   Kind = "newline"
	KindWordBreak Kind = "wbr"
)

// Marker texts.
const (
	// LineWrapGlyph marks a line that was split to respect the width budget.
	LineWrapGlyph = "↵"
	// EllipsisText marks truncated output and the `...` literal.
	EllipsisText = "..."
	// UnknownText replaces values that could not be rendered.
	UnknownText = "??"
)

// Fragment is one element of a [Document].
type Fragment struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text,omitempty"`
	Style  Style  `json:"style,omitempty"`
	Target string `json:"target,omitempty"`
}

// Text returns an unstyled text fragment.
func Text(s string) Fragment {
	return Fragment{Kind: KindText, Text: s}
}

// Styled returns a text fragment tagged with style.
func Styled(s string, style Style) Fragment {
	return Fragment{Kind: KindText, Text: s, Style: style}
}

// Link returns a link candidate whose target is the dotted name s.
func Link(s string, style Style) Fragment {
	return Fragment{Kind: KindLink, Text: s, Style: style, Target: s}
}

// Newline returns a hard line break.
func Newline() Fragment {
	return Fragment{Kind: KindNewline}
}

// WordBreak returns a word-break opportunity. It has no textual content.
func WordBreak() Fragment {
	return Fragment{Kind: KindWordBreak}
}

// LineWrap returns the marker appended where a line was wrapped.
func LineWrap() Fragment {
	return Styled(LineWrapGlyph, StyleLineWrap)
}

// Ellipsis returns the truncation marker.
func Ellipsis() Fragment {
	return Styled(EllipsisText, StyleEllipsis)
}

// Unknown returns the placeholder for values that could not be rendered.
func Unknown() Fragment {
	return Styled(UnknownText, StyleUnknown)
}

// IsLineWrap reports whether f is a line-wrap marker.
func (f Fragment) IsLineWrap() bool {
	return f.Kind == KindText && f.Style == StyleLineWrap
}

// Len returns the number of characters f contributes to its line.
func (f Fragment) Len() int {
	return utf8.RuneCountInString(f.Text)
}

// Document is an ordered sequence of fragments.
type Document struct {
	Fragments []Fragment `json:"fragments"`
}

// String reconstructs the plain text of d. Word-break opportunities are
// dropped and newlines become "\n".
func (d Document) String() string {
	var sb strings.Builder

	for _, f := range d.Fragments {
		switch f.Kind {
		case KindNewline:
			sb.WriteByte('\n')
		case KindWordBreak:
		default:
			sb.WriteString(f.Text)
		}
	}

	return sb.String()
}

// Lines splits d at its newline fragments.
func (d Document) Lines() [][]Fragment {
	lines := [][]Fragment{nil}

	for _, f := range d.Fragments {
		if f.Kind == KindNewline {
			lines = append(lines, nil)

			continue
		}

		lines[len(lines)-1] = append(lines[len(lines)-1], f)
	}

	return lines
}

// Links returns the targets of all link fragments in d, in order.
func (d Document) Links() []string {
	var links []string

	for _, f := range d.Fragments {
		if f.Kind == KindLink {
			links = append(links, f.Target)
		}
	}

	return links
}
