package sre

// Unbounded is the [Repeat.Max] of repeats without an upper bound.
const Unbounded = -1

// Node is an element of a parsed pattern.
type Node interface {
	node()
}

// Literal matches a single character.
type Literal struct {
	Char rune
}

// NotLiteral matches any character except Char. It is the parsed form of a
// negated class with a single literal, such as `[^x]`.
type NotLiteral struct {
	Char rune
}

// Any matches any character, `.`.
type Any struct{}

// In is a character class. Items holds [Literal], [Range], [Category] and a
// leading [Negate] for negated classes.
type In struct {
	Items []Node
}

// Branch is an alternation of two or more sequences.
type Branch struct {
	Alternatives [][]Node
}

// CategoryCode identifies a character category escape.
type CategoryCode int

// Category codes.
const (
	CategoryDigit CategoryCode = iota + 1
	CategoryNotDigit
	CategorySpace
	CategoryNotSpace
	CategoryWord
	CategoryNotWord
)

// Category matches a character category, such as `\d`.
type Category struct {
	Code CategoryCode
}

// AtCode identifies a zero-width anchor.
type AtCode int

// Anchor codes. [AtBeginningLine] and [AtEndLine] are never produced by
// [Parse]; `^` and `$` always parse as [AtBeginning] and [AtEnd], and the
// multiline flag decides their meaning at match time.
const (
	AtBeginning AtCode = iota + 1
	AtBeginningLine
	AtBeginningString
	AtBoundary
	AtNonBoundary
	AtEnd
	AtEndLine
	AtEndString
)

// At is a zero-width anchor.
type At struct {
	Code AtCode
}

// Repeat repeats Body between Min and Max times. Max is [Unbounded] for open
// repeats. Lazy repeats match as few times as possible.
type Repeat struct {
	Body []Node
	Min  int
	Max  int
	Lazy bool
}

// Group is a parenthesized sub-pattern. Index is the capture group number,
// or 0 for non-capturing groups. Name is set for named groups.
type Group struct {
	Name  string
	Body  []Node
	Index int
}

// GroupRef is a backreference to the capture group Index.
type GroupRef struct {
	Index int
}

// Range is a character range inside a class.
type Range struct {
	Lo rune
	Hi rune
}

// Negate marks a negated class. It is always the first item of [In].
type Negate struct{}

// Assert is a lookaround assertion. Behind selects lookbehind, Negative
// selects the `(?!` / `(?<!` forms.
type Assert struct {
	Body     []Node
	Behind   bool
	Negative bool
}

func (Literal) node()    {}
func (NotLiteral) node() {}
func (Any) node()        {}
func (In) node()         {}
func (Branch) node()     {}
func (Category) node()   {}
func (At) node()         {}
func (Repeat) node()     {}
func (Group) node()      {}
func (GroupRef) node()   {}
func (Range) node()      {}
func (Negate) node()     {}
func (Assert) node()     {}

// Pattern is a parsed regular expression.
type Pattern struct {
	// GroupNames maps capture group numbers to names, for named groups.
	GroupNames map[int]string
	Source     string
	Items      []Node
	// Groups is the number of capture groups.
	Groups int
	// Flags holds the flags passed to [Parse] combined with global inline
	// flags such as `(?i)`.
	Flags Flag
}
