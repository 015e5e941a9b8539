package pyast

import "go.jacobcolvin.com/pyvalrepr/pyval"

// Node is any syntax tree node.
type Node interface {
	node()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

type (
	// Constant is a literal. Value is one of the [pyval] scalar types:
	// None, Bool, Int, Float, Complex, Str, Bytes, or Ellipsis for `...`.
	Constant struct {
		Value pyval.Value
	}

	// Name is an identifier.
	Name struct {
		ID string
	}

	// Attribute is `Value.Attr`.
	Attribute struct {
		Value Expr
		Attr  string
	}

	// Subscript is `Value[Slice]`. A subscript with several indices has a
	// [*Tuple] slice.
	Subscript struct {
		Value Expr
		Slice Expr
	}

	// Slice is `Lower:Upper:Step`; each part may be nil.
	Slice struct {
		Lower Expr
		Upper Expr
		Step  Expr
	}

	// Call is `Func(Args..., Keywords...)`.
	Call struct {
		Func     Expr
		Args     []Expr
		Keywords []*Keyword
	}

	// Starred is `*Value`, in calls and displays.
	Starred struct {
		Value Expr
	}

	// UnaryOp is `Op Operand`.
	UnaryOp struct {
		Operand Expr
		Op      UnaryOperator
	}

	// BinOp is `Left Op Right`.
	BinOp struct {
		Left  Expr
		Right Expr
		Op    BinOperator
	}

	// BoolOp is `Values[0] Op Values[1] Op ...`.
	BoolOp struct {
		Values []Expr
		Op     BoolOperator
	}

	// Compare is `Left Ops[0] Comparators[0] Ops[1] Comparators[1] ...`.
	Compare struct {
		Left        Expr
		Ops         []CmpOperator
		Comparators []Expr
	}

	// IfExp is `Body if Test else OrElse`.
	IfExp struct {
		Test   Expr
		Body   Expr
		OrElse Expr
	}

	// List is `[Elts...]`.
	List struct {
		Elts []Expr
	}

	// Tuple is `(Elts...)`.
	Tuple struct {
		Elts []Expr
	}

	// Set is `{Elts...}`.
	Set struct {
		Elts []Expr
	}

	// Dict is `{Keys[i]: Values[i], ...}`. A nil key is a `**Values[i]`
	// unpacking.
	Dict struct {
		Keys   []Expr
		Values []Expr
	}
)

// Keyword is a keyword argument of a [Call]. An empty Arg is a `**Value`
// unpacking.
type Keyword struct {
	Value Expr
	Arg   string
}

func (*Constant) node()  {}
func (*Name) node()      {}
func (*Attribute) node() {}
func (*Subscript) node() {}
func (*Slice) node()     {}
func (*Call) node()      {}
func (*Starred) node()   {}
func (*UnaryOp) node()   {}
func (*BinOp) node()     {}
func (*BoolOp) node()    {}
func (*Compare) node()   {}
func (*IfExp) node()     {}
func (*List) node()      {}
func (*Tuple) node()     {}
func (*Set) node()       {}
func (*Dict) node()      {}
func (*Keyword) node()   {}

func (*Constant) expr()  {}
func (*Name) expr()      {}
func (*Attribute) expr() {}
func (*Subscript) expr() {}
func (*Slice) expr()     {}
func (*Call) expr()      {}
func (*Starred) expr()   {}
func (*UnaryOp) expr()   {}
func (*BinOp) expr()     {}
func (*BoolOp) expr()    {}
func (*Compare) expr()   {}
func (*IfExp) expr()     {}
func (*List) expr()      {}
func (*Tuple) expr()     {}
func (*Set) expr()       {}
func (*Dict) expr()      {}

// DottedName returns the parts of a name made of a [*Name] followed by any
// number of attribute accesses, such as `os.path.join`. It reports false for
// any other expression.
func DottedName(e Expr) ([]string, bool) {
	var parts []string

	for {
		switch n := e.(type) {
		case *Attribute:
			parts = append(parts, n.Attr)
			e = n.Value
		case *Name:
			parts = append(parts, n.ID)

			for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
				parts[i], parts[j] = parts[j], parts[i]
			}

			return parts, true
		default:
			return nil, false
		}
	}
}
