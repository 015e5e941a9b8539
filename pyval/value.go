package pyval

import (
	"math/big"

	"go.jacobcolvin.com/pyvalrepr/sre"
)

// Value is a Python runtime value.
type Value interface {
	value()
}

type (
	// NoneType is the type of [None].
	NoneType struct{}
	// NotImplementedType is the type of [NotImplemented].
	NotImplementedType struct{}
	// EllipsisType is the type of [Ellipsis].
	EllipsisType struct{}
)

// Singletons.
var (
	None           = NoneType{}
	NotImplemented = NotImplementedType{}
	Ellipsis       = EllipsisType{}
)

// Bool is a Python bool.
type Bool bool

// Int is an arbitrary-precision Python int. The zero value is 0.
type Int struct {
	V *big.Int
}

// NewInt returns the [Int] for n.
func NewInt(n int64) Int {
	return Int{V: big.NewInt(n)}
}

// Float is a Python float.
type Float float64

// Complex is a Python complex.
type Complex complex128

// Str is a Python str.
type Str string

// Bytes is a Python bytes object.
type Bytes []byte

// Tuple is a Python tuple.
type Tuple []Value

// List is a Python list.
type List []Value

// Set is a Python set, in iteration order.
type Set []Value

// FrozenSet is a Python frozenset, in iteration order.
type FrozenSet []Value

// Item is a key/value pair of a [Dict].
type Item struct {
	Key   Value
	Value Value
}

// Dict is a Python dict, in insertion order.
type Dict []Item

// Pattern is a compiled regular expression object.
type Pattern struct {
	Source string
	Flags  sre.Flag
}

// Opaque is a value with no structure known to this package. ReprFunc
// computes its textual form; it may fail, and a nil ReprFunc always fails.
type Opaque struct {
	ReprFunc func() (string, error)
}

// NewOpaque returns an [Opaque] whose repr is s.
func NewOpaque(s string) Opaque {
	return Opaque{ReprFunc: func() (string, error) { return s, nil }}
}

// FailingOpaque returns an [Opaque] whose repr fails with err.
func FailingOpaque(err error) Opaque {
	return Opaque{ReprFunc: func() (string, error) { return "", err }}
}

func (NoneType) value()           {}
func (NotImplementedType) value() {}
func (EllipsisType) value()       {}
func (Bool) value()               {}
func (Int) value()                {}
func (Float) value()              {}
func (Complex) value()            {}
func (Str) value()                {}
func (Bytes) value()              {}
func (Tuple) value()              {}
func (List) value()               {}
func (Set) value()                {}
func (FrozenSet) value()          {}
func (Dict) value()               {}
func (Pattern) value()            {}
func (Opaque) value()             {}
