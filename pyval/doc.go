// Package pyval models Python runtime values.
//
// The set of value types is closed: every [Value] is one of the types
// declared here, so consumers can dispatch on the concrete type with a type
// switch. Values the model has no structure for are represented by
// [Opaque], which only knows how to produce its textual form (and may fail
// to).
//
// [Repr] produces the text Python's repr() would, and [FromGo] converts
// ordinary Go values:
//
//	v := pyval.FromGo(map[string]any{"a": []int{1, 2}})
//	s, _ := pyval.Repr(v) // {'a': [1, 2]}
//
// [DecodeYAML] reads YAML documents into values, keeping mapping order.
package pyval
