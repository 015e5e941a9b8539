package sre

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrSyntax indicates a pattern that is not valid regular expression syntax.
var ErrSyntax = errors.New("invalid regular expression")

// maxRepeat bounds explicit repeat counts.
const maxRepeat = 1<<32 - 1

// Error describes a syntax error in a pattern.
type Error struct {
	Msg     string
	Pattern string
	// Pos is the offset in characters where the error was detected.
	Pos int
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// Unwrap returns [ErrSyntax].
func (e *Error) Unwrap() error {
	return ErrSyntax
}

var controlEscapes = map[rune]rune{
	'a':  '\a',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
}

var categoryEscapes = map[rune]CategoryCode{
	'd': CategoryDigit,
	'D': CategoryNotDigit,
	's': CategorySpace,
	'S': CategoryNotSpace,
	'w': CategoryWord,
	'W': CategoryNotWord,
}

var anchorEscapes = map[rune]AtCode{
	'A': AtBeginningString,
	'Z': AtEndString,
	'b': AtBoundary,
	'B': AtNonBoundary,
}

type parser struct {
	names      map[string]int
	groupNames map[int]string
	open       map[int]bool
	pattern    string
	src        []rune
	pos        int
	groups     int
	flags      Flag
}

// Parse parses pattern with the given flags. Global inline flags found in
// the pattern are added to [Pattern.Flags].
func Parse(pattern string, flags Flag) (*Pattern, error) {
	p := &parser{
		pattern:    pattern,
		src:        []rune(pattern),
		flags:      flags,
		names:      map[string]int{},
		groupNames: map[int]string{},
		open:       map[int]bool{},
	}

	items, err := p.parseSub(flags&FlagVerbose != 0)
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, p.errorf(p.pos, "unbalanced parenthesis")
	}

	return &Pattern{
		Source:     pattern,
		Flags:      p.flags,
		Items:      items,
		Groups:     p.groups,
		GroupNames: p.groupNames,
	}, nil
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &Error{
		Msg:     fmt.Sprintf(format, args...),
		Pattern: p.pattern,
		Pos:     pos,
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}

	return p.src[p.pos], true
}

func (p *parser) next() (rune, bool) {
	c, ok := p.peek()
	if ok {
		p.pos++
	}

	return c, ok
}

func (p *parser) match(c rune) bool {
	if next, ok := p.peek(); ok && next == c {
		p.pos++

		return true
	}

	return false
}

// parseSub parses alternatives separated by `|`.
func (p *parser) parseSub(verbose bool) ([]Node, error) {
	var alts [][]Node

	for {
		items, err := p.parseSeq(verbose)
		if err != nil {
			return nil, err
		}

		alts = append(alts, items)

		if !p.match('|') {
			break
		}
	}

	if len(alts) == 1 {
		return alts[0], nil
	}

	return []Node{Branch{Alternatives: alts}}, nil
}

// parseSeq parses a sequence up to `|`, `)` or the end of the pattern.
func (p *parser) parseSeq(verbose bool) ([]Node, error) {
	var items []Node

	for !p.eof() {
		start := p.pos

		c := p.src[p.pos]
		if c == '|' || c == ')' {
			break
		}

		p.pos++

		if verbose {
			if isSpace(c) {
				continue
			}

			if c == '#' {
				for r, ok := p.next(); ok && r != '\n'; r, ok = p.next() {
				}

				continue
			}
		}

		switch c {
		case '\\':
			n, err := p.parseEscape(start)
			if err != nil {
				return nil, err
			}

			items = append(items, n)

		case '[':
			n, err := p.parseClass(start)
			if err != nil {
				return nil, err
			}

			items = append(items, n)

		case '.':
			items = append(items, Any{})

		case '^':
			items = append(items, At{Code: AtBeginning})

		case '$':
			items = append(items, At{Code: AtEnd})

		case '(':
			n, v, err := p.parseGroup(start, verbose)
			if err != nil {
				return nil, err
			}

			verbose = v

			if n != nil {
				items = append(items, n)
			}

		case '*', '+', '?', '{':
			lo, hi, ok, err := p.parseQuantifier(c)
			if err != nil {
				return nil, err
			}

			if !ok {
				items = append(items, Literal{Char: c})

				continue
			}

			if len(items) == 0 {
				return nil, p.errorf(start, "nothing to repeat")
			}

			last := items[len(items)-1]
			switch last.(type) {
			case At:
				return nil, p.errorf(start, "nothing to repeat")
			case Repeat:
				return nil, p.errorf(start, "multiple repeat")
			}

			items[len(items)-1] = Repeat{
				Body: []Node{last},
				Min:  lo,
				Max:  hi,
				Lazy: p.match('?'),
			}

		default:
			items = append(items, Literal{Char: c})
		}
	}

	return items, nil
}

// parseQuantifier parses the quantifier starting with c, which has already
// been consumed. It reports false when a `{` does not start a valid repeat
// and must be taken literally.
func (p *parser) parseQuantifier(c rune) (int, int, bool, error) {
	switch c {
	case '*':
		return 0, Unbounded, true, nil
	case '+':
		return 1, Unbounded, true, nil
	case '?':
		return 0, 1, true, nil
	}

	start := p.pos - 1
	here := p.pos

	if next, ok := p.peek(); ok && next == '}' {
		return 0, 0, false, nil
	}

	lo := p.digits()
	hi := lo

	if p.match(',') {
		hi = p.digits()
	}

	if !p.match('}') {
		p.pos = here

		return 0, 0, false, nil
	}

	minCount, maxCount := 0, Unbounded

	if lo != "" {
		n, err := strconv.ParseInt(lo, 10, 64)
		if err != nil || n >= maxRepeat {
			return 0, 0, false, p.errorf(start, "the repetition number is too large")
		}

		minCount = int(n)
	}

	if hi != "" {
		n, err := strconv.ParseInt(hi, 10, 64)
		if err != nil || n >= maxRepeat {
			return 0, 0, false, p.errorf(start, "the repetition number is too large")
		}

		if int(n) < minCount {
			return 0, 0, false, p.errorf(start, "min repeat greater than max repeat")
		}

		maxCount = int(n)
	}

	return minCount, maxCount, true, nil
}

func (p *parser) digits() string {
	start := p.pos
	for c, ok := p.peek(); ok && c >= '0' && c <= '9'; c, ok = p.peek() {
		p.pos++
	}

	return string(p.src[start:p.pos])
}

// parseEscape parses an escape outside a class; the backslash has been
// consumed.
func (p *parser) parseEscape(start int) (Node, error) {
	c, ok := p.next()
	if !ok {
		return nil, p.errorf(start, "bad escape (end of pattern)")
	}

	if code, ok := anchorEscapes[c]; ok {
		return At{Code: code}, nil
	}

	if code, ok := categoryEscapes[c]; ok {
		return In{Items: []Node{Category{Code: code}}}, nil
	}

	if lit, ok := controlEscapes[c]; ok {
		return Literal{Char: lit}, nil
	}

	switch {
	case c == 'x' || c == 'u' || c == 'U':
		r, err := p.hexEscape(start, c)
		if err != nil {
			return nil, err
		}

		return Literal{Char: r}, nil

	case c == '0':
		return Literal{Char: p.octal(c, 2)}, nil

	case c >= '1' && c <= '9':
		digits := string(c)

		if next, ok := p.peek(); ok && next >= '0' && next <= '9' {
			if isOctal(c) && isOctal(next) && p.pos+1 < len(p.src) && isOctal(p.src[p.pos+1]) {
				r := p.octal(c, 2)
				if r > 0o377 {
					return nil, p.errorf(start, "octal escape value \\%s outside of range 0-0o377",
						string(p.src[start+1:p.pos]))
				}

				return Literal{Char: r}, nil
			}

			p.pos++
			digits += string(next)
		}

		group, _ := strconv.Atoi(digits)
		if group > p.groups {
			return nil, p.errorf(start, "invalid group reference %d", group)
		}

		if p.open[group] {
			return nil, p.errorf(start, "cannot refer to an open group")
		}

		return GroupRef{Index: group}, nil

	case isASCIILetter(c):
		return nil, p.errorf(start, "bad escape \\%c", c)
	}

	return Literal{Char: c}, nil
}

// parseClassEscape parses an escape inside a class; the backslash has been
// consumed.
func (p *parser) parseClassEscape(start int) (Node, error) {
	c, ok := p.next()
	if !ok {
		return nil, p.errorf(start, "bad escape (end of pattern)")
	}

	if code, ok := categoryEscapes[c]; ok {
		return Category{Code: code}, nil
	}

	if c == 'b' {
		return Literal{Char: '\b'}, nil
	}

	if lit, ok := controlEscapes[c]; ok {
		return Literal{Char: lit}, nil
	}

	switch {
	case c == 'x' || c == 'u' || c == 'U':
		r, err := p.hexEscape(start, c)
		if err != nil {
			return nil, err
		}

		return Literal{Char: r}, nil

	case isOctal(c):
		r := p.octal(c, 2)
		if r > 0o377 {
			return nil, p.errorf(start, "octal escape value \\%s outside of range 0-0o377",
				string(p.src[start+1:p.pos]))
		}

		return Literal{Char: r}, nil

	case c >= '0' && c <= '9', isASCIILetter(c):
		return nil, p.errorf(start, "bad escape \\%c", c)
	}

	return Literal{Char: c}, nil
}

func (p *parser) hexEscape(start int, kind rune) (rune, error) {
	width := map[rune]int{'x': 2, 'u': 4, 'U': 8}[kind]

	begin := p.pos
	for c, ok := p.peek(); ok && p.pos-begin < width && isHex(c); c, ok = p.peek() {
		p.pos++
	}

	digits := string(p.src[begin:p.pos])
	if len(digits) != width {
		return 0, p.errorf(start, "incomplete escape \\%c%s", kind, digits)
	}

	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || n > unicode.MaxRune {
		return 0, p.errorf(start, "bad escape \\%c%s", kind, digits)
	}

	return rune(n), nil
}

// octal reads up to extra more octal digits after first.
func (p *parser) octal(first rune, extra int) rune {
	n := first - '0'

	for i := 0; i < extra; i++ {
		c, ok := p.peek()
		if !ok || !isOctal(c) {
			break
		}

		p.pos++
		n = n*8 + (c - '0')
	}

	return n
}

// parseClass parses a character class; the `[` has been consumed.
func (p *parser) parseClass(start int) (Node, error) {
	var items []Node

	negate := p.match('^')

	for {
		loPos := p.pos

		c, ok := p.next()
		if !ok {
			return nil, p.errorf(start, "unterminated character set")
		}

		if c == ']' && len(items) > 0 {
			break
		}

		lo, err := p.classItem(c, loPos)
		if err != nil {
			return nil, err
		}

		if !p.match('-') {
			items = append(items, lo)

			continue
		}

		pos := p.pos

		c, ok = p.next()
		if !ok {
			return nil, p.errorf(start, "unterminated character set")
		}

		if c == ']' {
			items = append(items, lo, Literal{Char: '-'})

			break
		}

		hi, err := p.classItem(c, pos)
		if err != nil {
			return nil, err
		}

		loLit, ok1 := lo.(Literal)
		hiLit, ok2 := hi.(Literal)

		if !ok1 || !ok2 || hiLit.Char < loLit.Char {
			return nil, p.errorf(loPos, "bad character range %s", string(p.src[loPos:p.pos]))
		}

		items = append(items, Range{Lo: loLit.Char, Hi: hiLit.Char})
	}

	items = uniq(items)

	if len(items) == 1 {
		if lit, ok := items[0].(Literal); ok {
			if negate {
				return NotLiteral(lit), nil
			}

			return lit, nil
		}
	}

	if negate {
		items = append([]Node{Negate{}}, items...)
	}

	return In{Items: items}, nil
}

func (p *parser) classItem(c rune, pos int) (Node, error) {
	if c == '\\' {
		return p.parseClassEscape(pos)
	}

	return Literal{Char: c}, nil
}

// parseGroup parses a group; the `(` has been consumed. It returns a nil
// node for comments and global flag groups, and the verbose mode in effect
// after the group.
func (p *parser) parseGroup(start int, verbose bool) (Node, bool, error) {
	capture := true
	name := ""

	var addFlags, delFlags Flag

	if p.match('?') {
		c, ok := p.next()
		if !ok {
			return nil, verbose, p.errorf(start, "unexpected end of pattern")
		}

		switch {
		case c == 'P':
			switch {
			case p.match('<'):
				n, err := p.groupName('>')
				if err != nil {
					return nil, verbose, err
				}

				name = n

			case p.match('='):
				ref, err := p.groupName(')')
				if err != nil {
					return nil, verbose, err
				}

				gid, ok := p.names[ref]
				if !ok {
					return nil, verbose, p.errorf(start, "unknown group name %q", ref)
				}

				if p.open[gid] {
					return nil, verbose, p.errorf(start, "cannot refer to an open group")
				}

				return GroupRef{Index: gid}, verbose, nil

			default:
				c, ok := p.next()
				if !ok {
					return nil, verbose, p.errorf(start, "unexpected end of pattern")
				}

				return nil, verbose, p.errorf(start, "unknown extension ?P%c", c)
			}

		case c == ':':
			capture = false

		case c == '#':
			for {
				r, ok := p.next()
				if !ok {
					return nil, verbose, p.errorf(start, "missing ), unterminated comment")
				}

				if r == ')' {
					return nil, verbose, nil
				}
			}

		case c == '=' || c == '!' || c == '<':
			behind := false

			if c == '<' {
				c, ok = p.next()
				if !ok {
					return nil, verbose, p.errorf(start, "unexpected end of pattern")
				}

				if c != '=' && c != '!' {
					return nil, verbose, p.errorf(start, "unknown extension ?<%c", c)
				}

				behind = true
			}

			body, err := p.parseSub(verbose)
			if err != nil {
				return nil, verbose, err
			}

			if !p.match(')') {
				return nil, verbose, p.errorf(start, "missing ), unterminated subpattern")
			}

			return Assert{Body: body, Behind: behind, Negative: c == '!'}, verbose, nil

		case c == '(':
			return nil, verbose, p.errorf(start, "conditional groups are not supported")

		case c == '-' || isFlagLetter(c):
			add, del, global, err := p.parseFlags(start, c)
			if err != nil {
				return nil, verbose, err
			}

			if global {
				p.flags |= add

				return nil, verbose || add&FlagVerbose != 0, nil
			}

			addFlags, delFlags = add, del
			capture = false

		default:
			return nil, verbose, p.errorf(start, "unknown extension ?%c", c)
		}
	}

	index := 0

	if capture {
		p.groups++
		index = p.groups

		if name != "" {
			if prev, dup := p.names[name]; dup {
				return nil, verbose, p.errorf(start,
					"redefinition of group name %q as group %d; was group %d", name, index, prev)
			}

			p.names[name] = index
			p.groupNames[index] = name
		}

		p.open[index] = true
	}

	subVerbose := (verbose || addFlags&FlagVerbose != 0) && delFlags&FlagVerbose == 0

	body, err := p.parseSub(subVerbose)
	if err != nil {
		return nil, verbose, err
	}

	if !p.match(')') {
		return nil, verbose, p.errorf(start, "missing ), unterminated subpattern")
	}

	delete(p.open, index)

	return Group{Index: index, Name: name, Body: body}, verbose, nil
}

func (p *parser) groupName(term rune) (string, error) {
	start := p.pos

	for {
		c, ok := p.next()
		if !ok {
			return "", p.errorf(start, "missing %c, unterminated name", term)
		}

		if c == term {
			break
		}
	}

	name := string(p.src[start : p.pos-1])
	if name == "" {
		return "", p.errorf(start, "missing group name")
	}

	if !isIdentifier(name) {
		return "", p.errorf(start, "bad character in group name %q", name)
	}

	return name, nil
}

// parseFlags parses inline flags starting with c. It reports whether the
// flags are global, as in `(?i)`, rather than scoped, as in `(?i:...)`.
func (p *parser) parseFlags(start int, c rune) (Flag, Flag, bool, error) {
	const typeFlags = FlagASCII | FlagLocale | FlagUnicode

	var add, del Flag

	ok := true

	if c != '-' {
		for {
			if c == 'L' {
				return 0, 0, false, p.errorf(start, "bad inline flags: cannot use 'L' flag with a str pattern")
			}

			flag, _ := flagForLetter(c)
			add |= flag

			if flag&typeFlags != 0 && add&typeFlags != flag {
				return 0, 0, false, p.errorf(start, "bad inline flags: flags 'a', 'u' and 'L' are incompatible")
			}

			c, ok = p.next()
			if !ok {
				return 0, 0, false, p.errorf(start, "missing -, : or )")
			}

			if c == ')' || c == '-' || c == ':' {
				break
			}

			if !isFlagLetter(c) {
				return 0, 0, false, p.errorf(start, "unknown flag")
			}
		}
	}

	if c == ')' {
		return add, 0, true, nil
	}

	if add&FlagTemplate != 0 {
		return 0, 0, false, p.errorf(start, "bad inline flags: cannot turn on global flag")
	}

	if c == '-' {
		c, ok = p.next()
		if !ok {
			return 0, 0, false, p.errorf(start, "missing flag")
		}

		if !isFlagLetter(c) {
			return 0, 0, false, p.errorf(start, "unknown flag")
		}

		for {
			flag, _ := flagForLetter(c)
			if flag&typeFlags != 0 {
				return 0, 0, false, p.errorf(start, "bad inline flags: cannot turn off flags 'a', 'u' and 'L'")
			}

			del |= flag

			c, ok = p.next()
			if !ok {
				return 0, 0, false, p.errorf(start, "missing :")
			}

			if c == ':' {
				break
			}

			if !isFlagLetter(c) {
				return 0, 0, false, p.errorf(start, "unknown flag")
			}
		}
	}

	if del&FlagTemplate != 0 {
		return 0, 0, false, p.errorf(start, "bad inline flags: cannot turn off global flag")
	}

	if add&del != 0 {
		return 0, 0, false, p.errorf(start, "bad inline flags: flag turned on and off")
	}

	return add, del, false, nil
}

func uniq(items []Node) []Node {
	out := make([]Node, 0, len(items))

	for _, item := range items {
		seen := false

		for _, o := range out {
			if o == item {
				seen = true

				break
			}
		}

		if !seen {
			out = append(out, item)
		}
	}

	return out
}

func isFlagLetter(c rune) bool {
	_, ok := flagForLetter(c)

	return ok
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

func isOctal(c rune) bool {
	return c >= '0' && c <= '7'
}

func isHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifier(s string) bool {
	for i, c := range s {
		if c == '_' || unicode.IsLetter(c) {
			continue
		}

		if i > 0 && unicode.IsDigit(c) {
			continue
		}

		return false
	}

	return s != ""
}
