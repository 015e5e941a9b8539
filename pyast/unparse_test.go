package pyast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"go.jacobcolvin.com/pyvalrepr/pyast"
	"go.jacobcolvin.com/pyvalrepr/pyval"
)

func TestUnparseTrees(t *testing.T) {
	t.Parallel()

	one := &pyast.Constant{Value: pyval.NewInt(1)}
	a := &pyast.Name{ID: "a"}

	tcs := map[string]struct {
		input pyast.Node
		want  string
	}{
		"negative constant operand": {
			input: &pyast.BinOp{Left: &pyast.Constant{Value: pyval.NewInt(-2)}, Op: pyast.Pow, Right: one},
			want:  "(-2) ** 1",
		},
		"empty set": {
			input: &pyast.Set{},
			want:  "{*()}",
		},
		"keyword node": {
			input: &pyast.Keyword{Arg: "flags", Value: a},
			want:  "flags=a",
		},
		"keyword unpacking": {
			input: &pyast.Keyword{Value: a},
			want:  "**a",
		},
		"standalone slice": {
			input: &pyast.Slice{Lower: one, Step: a},
			want:  "1::a",
		},
		"starred binop": {
			input: &pyast.Starred{Value: &pyast.BoolOp{Op: pyast.Or, Values: []pyast.Expr{a, one}}},
			want:  "*(a or 1)",
		},
		"ellipsis": {
			input: &pyast.Constant{Value: pyval.Ellipsis},
			want:  "...",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := pyast.Unparse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUnparseErrors(t *testing.T) {
	t.Parallel()

	a := &pyast.Name{ID: "a"}

	tcs := map[string]struct {
		input pyast.Node
	}{
		"unknown binary operator": {
			input: &pyast.BinOp{Left: a, Op: pyast.BinOperator(99), Right: a},
		},
		"unknown unary operator": {
			input: &pyast.UnaryOp{Op: pyast.UnaryOperator(99), Operand: a},
		},
		"unknown bool operator": {
			input: &pyast.BoolOp{Op: pyast.BoolOperator(99), Values: []pyast.Expr{a, a}},
		},
		"unknown comparison operator": {
			input: &pyast.Compare{Left: a, Ops: []pyast.CmpOperator{99}, Comparators: []pyast.Expr{a}},
		},
		"mismatched comparison": {
			input: &pyast.Compare{Left: a, Ops: []pyast.CmpOperator{pyast.Lt}},
		},
		"mismatched dict": {
			input: &pyast.Dict{Keys: []pyast.Expr{a}},
		},
		"nested failure": {
			input: &pyast.List{Elts: []pyast.Expr{a, &pyast.Constant{}}},
		},
		"failing repr": {
			input: &pyast.Constant{Value: pyval.FailingOpaque(assert.AnError)},
		},
		"nil node": {
			input: nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := pyast.Unparse(tc.input)
			require.ErrorIs(t, err, pyast.ErrUnsupported)
		})
	}
}

func TestNeedsParens(t *testing.T) {
	t.Parallel()

	a := &pyast.Name{ID: "a"}
	sum := &pyast.BinOp{Left: a, Op: pyast.Add, Right: a}
	pow := &pyast.BinOp{Left: a, Op: pyast.Pow, Right: a}
	or := &pyast.BoolOp{Op: pyast.Or, Values: []pyast.Expr{a, a}}

	tcs := map[string]struct {
		outer pyast.Expr
		inner pyast.Expr
		want  bool
	}{
		"atom":               {outer: &pyast.BinOp{Left: a, Op: pyast.Mult, Right: a}, inner: a, want: false},
		"looser operand":     {outer: &pyast.BinOp{Left: sum, Op: pyast.Mult, Right: a}, inner: sum, want: true},
		"tighter operand":    {outer: &pyast.BinOp{Left: pow, Op: pyast.Add, Right: a}, inner: pow, want: false},
		"same level left":    {outer: &pyast.BinOp{Left: sum, Op: pyast.Sub, Right: a}, inner: sum, want: false},
		"same level right":   {outer: &pyast.BinOp{Left: a, Op: pyast.Sub, Right: sum}, inner: sum, want: true},
		"power left":         {outer: &pyast.BinOp{Left: pow, Op: pyast.Pow, Right: a}, inner: pow, want: true},
		"power right":        {outer: &pyast.BinOp{Left: a, Op: pyast.Pow, Right: pow}, inner: pow, want: false},
		"unary of sum":       {outer: &pyast.UnaryOp{Op: pyast.USub, Operand: sum}, inner: sum, want: true},
		"not of sum":         {outer: &pyast.UnaryOp{Op: pyast.Not, Operand: sum}, inner: sum, want: false},
		"or inside and":      {outer: &pyast.BoolOp{Op: pyast.And, Values: []pyast.Expr{or, a}}, inner: or, want: true},
		"not a binary op":    {outer: &pyast.Call{Func: a}, inner: sum, want: false},
		"and inside or":      {outer: or, inner: &pyast.BoolOp{Op: pyast.And, Values: []pyast.Expr{a, a}}, want: false},
		"comparison in or":   {outer: or, inner: &pyast.Compare{Left: a}, want: false},
		"conditional in sum": {outer: sum, inner: &pyast.IfExp{Test: a, Body: a, OrElse: a}, want: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, pyast.NeedsParens(tc.outer, tc.inner))
		})
	}
}

var names = []string{"a", "b", "foo", "x1", "_y"}

func drawExpr(rt *rapid.T, depth int) pyast.Expr {
	maxKind := 2
	if depth > 0 {
		maxKind = 11
	}

	kind := rapid.IntRange(0, maxKind).Draw(rt, "kind")

	child := func() pyast.Expr { return drawExpr(rt, depth-1) }
	children := func(lo, hi int) []pyast.Expr {
		n := rapid.IntRange(lo, hi).Draw(rt, "n")
		elts := make([]pyast.Expr, 0, n)

		for range n {
			elts = append(elts, child())
		}

		return elts
	}

	switch kind {
	case 0:
		return &pyast.Name{ID: rapid.SampledFrom(names).Draw(rt, "name")}
	case 1:
		return &pyast.Constant{Value: pyval.NewInt(rapid.Int64Range(0, 1000).Draw(rt, "int"))}
	case 2:
		return &pyast.Constant{Value: pyval.Str(rapid.StringMatching(`[a-z' ]{0,4}`).Draw(rt, "str"))}
	case 3:
		op := rapid.IntRange(int(pyast.Add), int(pyast.MatMult)).Draw(rt, "binop")

		return &pyast.BinOp{Left: child(), Op: pyast.BinOperator(op), Right: child()}
	case 4:
		op := rapid.IntRange(int(pyast.UAdd), int(pyast.Invert)).Draw(rt, "unaryop")

		return &pyast.UnaryOp{Op: pyast.UnaryOperator(op), Operand: child()}
	case 5:
		op := rapid.IntRange(int(pyast.And), int(pyast.Or)).Draw(rt, "boolop")

		return &pyast.BoolOp{Op: pyast.BoolOperator(op), Values: children(2, 3)}
	case 6:
		comparators := children(1, 2)
		ops := make([]pyast.CmpOperator, len(comparators))

		for i := range ops {
			ops[i] = pyast.CmpOperator(rapid.IntRange(int(pyast.Eq), int(pyast.NotIn)).Draw(rt, "cmpop"))
		}

		return &pyast.Compare{Left: child(), Ops: ops, Comparators: comparators}
	case 7:
		return &pyast.List{Elts: children(0, 3)}
	case 8:
		return &pyast.Tuple{Elts: children(0, 3)}
	case 9:
		call := &pyast.Call{Func: &pyast.Name{ID: rapid.SampledFrom(names).Draw(rt, "func")}, Args: children(0, 2)}
		if rapid.Bool().Draw(rt, "keyword") {
			call.Keywords = []*pyast.Keyword{{Arg: "k", Value: child()}}
		}

		return call
	case 10:
		return &pyast.Attribute{Value: &pyast.Name{ID: rapid.SampledFrom(names).Draw(rt, "base")}, Attr: "attr"}
	default:
		return &pyast.IfExp{Test: child(), Body: child(), OrElse: child()}
	}
}

func TestUnparseRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		expr := drawExpr(rt, 3)

		src, err := pyast.Unparse(expr)
		require.NoError(rt, err)

		reparsed, err := pyast.Parse(src)
		require.NoError(rt, err, "source: %s", src)

		again, err := pyast.Unparse(reparsed)
		require.NoError(rt, err)
		assert.Equal(rt, src, again)
	})
}
