package colorize

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"go.jacobcolvin.com/pyvalrepr/markup"
)

// Budget signals. They unwind rendering to the nearest [run.multiline] call
// or to the top level, and never leave this package.
var (
	errMaxLines  = errors.New("maximum number of lines exceeded")
	errLineBreak = errors.New("line break not allowed")
)

// state is the layout cursor of one colorization.
type state struct {
	fragments  []markup.Fragment
	charpos    int
	lineno     int
	score      int
	lineBreaks bool
}

// snapshot is a restore point for [state]. Fragments emitted after it are
// discarded by restore, not copied.
type snapshot struct {
	length     int
	charpos    int
	lineno     int
	score      int
	lineBreaks bool
}

func (s *state) mark() snapshot {
	return snapshot{
		length:     len(s.fragments),
		charpos:    s.charpos,
		lineno:     s.lineno,
		score:      s.score,
		lineBreaks: s.lineBreaks,
	}
}

func (s *state) restore(m snapshot) {
	s.fragments = s.fragments[:m.length]
	s.charpos = m.charpos
	s.lineno = m.lineno
	s.score = m.score
	s.lineBreaks = m.lineBreaks
}

// run is a single colorization: the configuration plus its own state.
type run struct {
	c *Colorizer
	state
}

func (r *run) output(s string, style markup.Style) error {
	return r.emit(s, style, false)
}

func (r *run) link(s string, style markup.Style) error {
	return r.emit(s, style, true)
}

// emit appends s, wrapping it at the line width. Each "\n" in s starts a new
// line, subject to the line budget and the line break flag. Links are never
// wrapped.
func (r *run) emit(s string, style markup.Style, link bool) error {
	segments := strings.Split(s, "\n")

	for i := 0; i < len(segments); i++ {
		segment := segments[i]

		if i > 0 {
			if r.lineno+1 > r.c.maxLines {
				return errMaxLines
			}

			if !r.lineBreaks {
				return errLineBreak
			}

			r.fragments = append(r.fragments, markup.Newline())
			r.lineno++
			r.charpos = 0
		}

		n := utf8.RuneCountInString(segment)

		if r.c.lineWidth <= 0 || r.charpos+n <= r.c.lineWidth || link {
			r.charpos += n
			r.appendText(segment, style, link)

			continue
		}

		head, tail := splitRunes(segment, max(r.c.lineWidth-r.charpos, 0))

		r.appendText(head, style, false)
		r.fragments = append(r.fragments, markup.LineWrap())
		segments = slices.Insert(segments, i+1, tail)
	}

	return nil
}

func (r *run) appendText(s string, style markup.Style, link bool) {
	switch {
	case link:
		r.fragments = append(r.fragments, markup.Link(s, style))
	case s != "":
		r.fragments = append(r.fragments, markup.Styled(s, style))
	}
}

func (r *run) wordBreak() {
	r.fragments = append(r.fragments, markup.WordBreak())
}

// multiline runs fn with line breaks disallowed. If fn needs a line break and
// breaks were allowed on entry, the output is rolled back and fn runs again
// with breaks allowed.
func (r *run) multiline(fn func() error) error {
	lineBreaks := r.lineBreaks
	m := r.mark()

	r.lineBreaks = false

	err := fn()
	if err == nil {
		r.lineBreaks = lineBreaks

		return nil
	}

	if !errors.Is(err, errLineBreak) || !lineBreaks {
		return err
	}

	r.restore(m)

	return fn()
}

// comma separates container elements: a comma followed by a newline indented
// to indent when breaks are allowed, ", " otherwise.
func (r *run) comma(indent int) error {
	if !r.lineBreaks {
		return r.output(", ", markup.StyleComma)
	}

	err := r.output(",", markup.StyleComma)
	if err != nil {
		return err
	}

	return r.output("\n"+strings.Repeat(" ", indent), markup.StyleNone)
}

// splitRunes splits s after n runes.
func splitRunes(s string, n int) (string, string) {
	i := 0

	for n > 0 && i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n--
	}

	return s[:i], s[i:]
}

// trimFragments removes n characters from the end of frags, dropping
// fragments that become empty. Line and word breaks are dropped without
// counting toward n.
func trimFragments(frags []markup.Fragment, n int) []markup.Fragment {
	for n > 0 && len(frags) > 0 {
		last := &frags[len(frags)-1]

		if last.Kind == markup.KindNewline || last.Kind == markup.KindWordBreak {
			frags = frags[:len(frags)-1]

			continue
		}

		runes := []rune(last.Text)
		cut := min(n, len(runes))
		last.Text = string(runes[:len(runes)-cut])
		n -= cut

		if last.Text == "" {
			frags = frags[:len(frags)-1]
		}
	}

	return frags
}
