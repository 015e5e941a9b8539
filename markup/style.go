package markup

// Style tags the syntactic role of a text fragment.
type Style string

// Styles emitted by the colorizer. The zero value is unstyled text.
const (
	StyleNone     Style = ""
	StyleQuote    Style = "quote"
	StyleString   Style = "string"
	StyleNumber   Style = "number"
	StyleConst    Style = "const"
	StyleGroup    Style = "group"
	StyleComma    Style = "comma"
	StyleColon    Style = "colon"
	StyleLink     Style = "link"
	StyleEllipsis Style = "ellipsis"
	StyleLineWrap Style = "linewrap"
	StyleUnknown  Style = "unknown"
	StyleReChar   Style = "re-char"
	StyleReGroup  Style = "re-group"
	StyleReRef    Style = "re-ref"
	StyleReOp     Style = "re-op"
	StyleReFlags  Style = "re-flags"
)

var cssClasses = map[Style]string{
	StyleQuote:    "variable-quote",
	StyleString:   "variable-string",
	StyleGroup:    "variable-group",
	StyleComma:    "variable-op",
	StyleColon:    "variable-op",
	StyleLink:     "variable-link",
	StyleEllipsis: "variable-ellipsis",
	StyleLineWrap: "variable-linewrap",
	StyleUnknown:  "variable-unknown",
	StyleReGroup:  "re-group",
	StyleReRef:    "re-ref",
	StyleReOp:     "re-op",
	StyleReFlags:  "re-flags",
}

// Class returns the CSS class used for s in HTML output, or an empty string
// when s is rendered without a class (numbers, constants, regex characters).
func (s Style) Class() string {
	return cssClasses[s]
}

// GetAllStyles returns every non-empty [Style], in declaration order.
func GetAllStyles() []Style {
	return []Style{
		StyleQuote, StyleString, StyleNumber, StyleConst, StyleGroup,
		StyleComma, StyleColon, StyleLink, StyleEllipsis, StyleLineWrap,
		StyleUnknown, StyleReChar, StyleReGroup, StyleReRef, StyleReOp,
		StyleReFlags,
	}
}
