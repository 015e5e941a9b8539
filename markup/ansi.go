package markup

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme maps styles to terminal styles for [ANSI]. Styles missing from the
// theme are written without escape sequences.
type Theme map[Style]lipgloss.Style

// DefaultTheme returns the theme used by the pyvalrepr command.
func DefaultTheme() Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Theme{
		StyleQuote:    fg("#7F848E"),
		StyleString:   fg("#98C379"),
		StyleNumber:   fg("#D19A66"),
		StyleConst:    fg("#C678DD"),
		StyleLink:     fg("#61AFEF"),
		StyleEllipsis: fg("#5C6370").Bold(true),
		StyleLineWrap: fg("#5C6370"),
		StyleUnknown:  fg("#E06C75").Bold(true),
		StyleReGroup:  fg("#E5C07B"),
		StyleReRef:    fg("#56B6C2"),
		StyleReOp:     fg("#C678DD"),
		StyleReFlags:  fg("#D19A66").Italic(true),
	}
}

// ANSI renders doc for a terminal using theme. Link fragments are
// underlined in addition to their style.
func ANSI(doc Document, theme Theme) string {
	var sb strings.Builder

	for _, f := range doc.Fragments {
		switch f.Kind {
		case KindNewline:
			sb.WriteByte('\n')

			continue
		case KindWordBreak:
			continue
		}

		if f.Text == "" {
			continue
		}

		style, ok := theme[f.Style]
		if f.Kind == KindLink {
			style = style.Underline(true)
			ok = true
		}

		if !ok {
			sb.WriteString(f.Text)

			continue
		}

		sb.WriteString(style.Render(f.Text))
	}

	return sb.String()
}
