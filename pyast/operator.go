package pyast

// UnaryOperator is the operator of a [UnaryOp].
type UnaryOperator int

// Unary operators.
const (
	UAdd UnaryOperator = iota + 1
	USub
	Not
	Invert
)

// String returns the operator's source text.
func (op UnaryOperator) String() string {
	switch op {
	case UAdd:
		return "+"
	case USub:
		return "-"
	case Not:
		return "not"
	case Invert:
		return "~"
	}

	return ""
}

// BinOperator is the operator of a [BinOp].
type BinOperator int

// Binary operators.
const (
	Add BinOperator = iota + 1
	Sub
	Mult
	Div
	FloorDiv
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	MatMult
)

var binOperatorText = map[BinOperator]string{
	Add:      "+",
	Sub:      "-",
	Mult:     "*",
	Div:      "/",
	FloorDiv: "//",
	Mod:      "%",
	Pow:      "**",
	LShift:   "<<",
	RShift:   ">>",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	MatMult:  "@",
}

// String returns the operator's source text, or an empty string for
// unknown operators.
func (op BinOperator) String() string {
	return binOperatorText[op]
}

// BoolOperator is the operator of a [BoolOp].
type BoolOperator int

// Boolean operators.
const (
	And BoolOperator = iota + 1
	Or
)

// String returns the operator's source text.
func (op BoolOperator) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	}

	return ""
}

// CmpOperator is a comparison operator of a [Compare].
type CmpOperator int

// Comparison operators.
const (
	Eq CmpOperator = iota + 1
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpOperatorText = map[CmpOperator]string{
	Eq:    "==",
	NotEq: "!=",
	Lt:    "<",
	LtE:   "<=",
	Gt:    ">",
	GtE:   ">=",
	Is:    "is",
	IsNot: "is not",
	In:    "in",
	NotIn: "not in",
}

// String returns the operator's source text.
func (op CmpOperator) String() string {
	return cmpOperatorText[op]
}
