package pyast

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.jacobcolvin.com/pyvalrepr/pyval"
)

// ErrSyntax indicates that source text is not a supported Python
// expression.
var ErrSyntax = errors.New("invalid syntax")

// SyntaxError describes a parse failure at a byte offset of the source.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNumber
	tokString
	tokOp
)

type token struct {
	value pyval.Value
	text  string
	kind  tokenKind
	pos   int
}

// Longest first.
var operators = []string{
	"...", "**", "//", "<<", ">>", "<=", ">=", "==", "!=", ":=", "->",
	"+", "-", "*", "/", "%", "@", "|", "^", "&", "~", "<", ">",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", "=", ";",
}

type lexer struct {
	src  string
	toks []token
	pos  int
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}

	for {
		l.skipSpace()

		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, pos: l.pos})

			return l.toks, nil
		}

		err := l.next()
		if err != nil {
			return nil, err
		}
	}
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Offset: pos}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			l.pos++
		case c == '\\' && strings.HasPrefix(l.src[l.pos+1:], "\n"):
			l.pos += 2
		case c == '#':
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += end
			}
		default:
			return
		}
	}
}

func (l *lexer) next() error {
	start := l.pos
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == '\'' || r == '"':
		return l.lexString(start, "")

	case isDigit(r) || (r == '.' && l.pos+1 < len(l.src) && isDigit(rune(l.src[l.pos+1]))):
		return l.lexNumber(start)

	case isNameStart(r):
		for l.pos < len(l.src) {
			c, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isNameChar(c) {
				break
			}

			l.pos += size
		}

		name := l.src[start:l.pos]
		if l.pos < len(l.src) && (l.src[l.pos] == '\'' || l.src[l.pos] == '"') && isStringPrefix(name) {
			return l.lexString(start, strings.ToLower(name))
		}

		l.toks = append(l.toks, token{kind: tokName, text: name, pos: start})

		return nil
	}

	for _, op := range operators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			l.toks = append(l.toks, token{kind: tokOp, text: op, pos: start})

			return nil
		}
	}

	return l.errorf(start, "invalid character %q", r)
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "br", "rb", "f", "fr", "rf":
		return true
	}

	return false
}

func (l *lexer) lexNumber(start int) error {
	src := l.src

	if src[l.pos] == '0' && l.pos+1 < len(src) {
		base := 0

		switch src[l.pos+1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		if base != 0 {
			l.pos += 2
			digits := l.scanDigits(func(c byte) bool { return isDigitInBase(c, base) })

			n, ok := new(big.Int).SetString(strings.ReplaceAll(digits, "_", ""), base)
			if !ok || !validUnderscores(strings.TrimPrefix(digits, "_")) {
				return l.errorf(start, "invalid number literal %q", src[start:l.pos])
			}

			return l.finishNumber(start, pyval.Int{V: n})
		}
	}

	intPart := l.scanDigits(isDecimal)
	isFloat := false

	if l.pos < len(src) && src[l.pos] == '.' {
		isFloat = true
		l.pos++
		l.scanDigits(isDecimal)
	}

	if l.pos < len(src) && (src[l.pos] == 'e' || src[l.pos] == 'E') {
		save := l.pos
		l.pos++

		if l.pos < len(src) && (src[l.pos] == '+' || src[l.pos] == '-') {
			l.pos++
		}

		if exp := l.scanDigits(isDecimal); exp == "" {
			l.pos = save
		} else {
			isFloat = true
		}
	}

	text := src[start:l.pos]
	if !validUnderscores(text) {
		return l.errorf(start, "invalid decimal literal %q", text)
	}

	clean := strings.ReplaceAll(text, "_", "")

	if l.pos < len(src) && (src[l.pos] == 'j' || src[l.pos] == 'J') {
		l.pos++

		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return l.errorf(start, "invalid imaginary literal %q", text)
		}

		return l.finishNumber(start, pyval.Complex(complex(0, f)))
	}

	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return l.errorf(start, "invalid float literal %q", text)
		}

		return l.finishNumber(start, pyval.Float(f))
	}

	if len(intPart) > 1 && intPart[0] == '0' && strings.Trim(intPart, "0_") != "" {
		return l.errorf(start, "leading zeros in decimal integer literals are not permitted")
	}

	n, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return l.errorf(start, "invalid decimal literal %q", text)
	}

	return l.finishNumber(start, pyval.Int{V: n})
}

func (l *lexer) finishNumber(start int, v pyval.Value) error {
	if l.pos < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		if isNameChar(r) {
			return l.errorf(start, "invalid number literal %q", l.src[start:l.pos+1])
		}
	}

	l.toks = append(l.toks, token{kind: tokNumber, text: l.src[start:l.pos], value: v, pos: start})

	return nil
}

func (l *lexer) scanDigits(ok func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.src) && (ok(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}

	return l.src[start:l.pos]
}

// validUnderscores reports whether every underscore in s sits between two
// digits.
func validUnderscores(s string) bool {
	for i := range len(s) {
		if s[i] != '_' {
			continue
		}

		if i == 0 || i == len(s)-1 || !isHexDigit(s[i-1]) || !isHexDigit(s[i+1]) {
			return false
		}
	}

	return true
}

func (l *lexer) lexString(start int, prefix string) error {
	if strings.Contains(prefix, "f") {
		return l.errorf(start, "f-strings are not supported")
	}

	raw := strings.Contains(prefix, "r")
	isBytes := strings.Contains(prefix, "b")

	l.pos = start + len(prefix)
	quote := l.src[l.pos]
	delim := string(quote)

	if strings.HasPrefix(l.src[l.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}

	l.pos += len(delim)

	var (
		str []rune
		buf []byte
	)

	emit := func(r rune) {
		if isBytes {
			buf = append(buf, byte(r))
		} else {
			str = append(str, r)
		}
	}

	for {
		if l.pos >= len(l.src) {
			return l.errorf(start, "unterminated string literal")
		}

		if strings.HasPrefix(l.src[l.pos:], delim) {
			l.pos += len(delim)

			break
		}

		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r == '\n' && len(delim) == 1 {
			return l.errorf(start, "unterminated string literal")
		}

		if isBytes && r >= utf8.RuneSelf {
			return l.errorf(l.pos, "bytes can only contain ASCII literal characters")
		}

		if r != '\\' {
			emit(r)

			l.pos += size

			continue
		}

		if l.pos+1 >= len(l.src) {
			return l.errorf(start, "unterminated string literal")
		}

		if raw {
			esc, escSize := utf8.DecodeRuneInString(l.src[l.pos+1:])
			emit('\\')
			emit(esc)

			l.pos += 1 + escSize

			continue
		}

		err := l.escape(isBytes, emit)
		if err != nil {
			return err
		}
	}

	var v pyval.Value = pyval.Str(string(str))
	if isBytes {
		v = pyval.Bytes(buf)
		if buf == nil {
			v = pyval.Bytes{}
		}
	}

	l.toks = append(l.toks, token{kind: tokString, text: l.src[start:l.pos], value: v, pos: start})

	return nil
}

var simpleEscapes = map[byte]rune{
	'\n': -1,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// escape decodes the escape sequence at l.pos, which holds a backslash.
func (l *lexer) escape(isBytes bool, emit func(rune)) error {
	start := l.pos
	c := l.src[l.pos+1]
	l.pos += 2

	if r, ok := simpleEscapes[c]; ok {
		if r >= 0 {
			emit(r)
		}

		return nil
	}

	switch {
	case c >= '0' && c <= '7':
		n := rune(c - '0')

		for i := 0; i < 2 && l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7'; i++ {
			n = n*8 + rune(l.src[l.pos]-'0')
			l.pos++
		}

		if isBytes {
			n &= 0xff
		}

		emit(n)

		return nil

	case c == 'x', !isBytes && c == 'u', !isBytes && c == 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
		if l.pos+width > len(l.src) {
			return l.errorf(start, "truncated \\%cXX escape", c)
		}

		n, err := strconv.ParseUint(l.src[l.pos:l.pos+width], 16, 32)
		if err != nil {
			return l.errorf(start, "truncated \\%cXX escape", c)
		}

		if n > unicode.MaxRune {
			return l.errorf(start, "illegal Unicode character")
		}

		l.pos += width
		emit(rune(n))

		return nil

	case !isBytes && c == 'N':
		return l.errorf(start, "named Unicode escapes are not supported")
	}

	// Unknown escapes are kept verbatim.
	r, size := utf8.DecodeRuneInString(l.src[l.pos-1:])
	l.pos += size - 1

	if isBytes && r >= utf8.RuneSelf {
		return l.errorf(start, "bytes can only contain ASCII literal characters")
	}

	emit('\\')
	emit(r)

	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigitInBase(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	default:
		return isHexDigit(c)
	}
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
