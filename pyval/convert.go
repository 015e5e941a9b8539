package pyval

import (
	"cmp"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Reprer is implemented by Go values that know their Python repr.
// [FromGo] turns them into [Opaque] values.
type Reprer interface {
	PyRepr() (string, error)
}

// FromGo converts a Go value to a [Value].
//
// Values that already implement [Value] are returned as is. Scalars map to
// their Python counterparts, slices to lists, arrays to tuples, maps to dicts
// with keys sorted by repr, [yaml.MapSlice] to dicts in order, and
// [*regexp.Regexp] to patterns. [Reprer] and [fmt.Stringer] values become
// [Opaque] values, pointers to structs become opaque objects in the
// `<type object at 0x...>` form, and structs are shown like dataclasses.
func FromGo(v any) Value {
	switch v := v.(type) {
	case nil:
		return None
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return NewInt(int64(v))
	case int64:
		return NewInt(v)
	case uint64:
		return Int{V: new(big.Int).SetUint64(v)}
	case *big.Int:
		if v == nil {
			return None
		}

		return Int{V: new(big.Int).Set(v)}
	case float64:
		return Float(v)
	case string:
		return Str(v)
	case []byte:
		return Bytes(v)
	case *regexp.Regexp:
		return Pattern{Source: v.String()}
	case yaml.MapSlice:
		d := make(Dict, 0, len(v))
		for _, item := range v {
			d = append(d, Item{Key: FromGo(item.Key), Value: FromGo(item.Value)})
		}

		return d
	case Reprer:
		return Opaque{ReprFunc: v.PyRepr}
	case fmt.Stringer:
		return Opaque{ReprFunc: func() (string, error) { return v.String(), nil }}
	}

	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Int{V: new(big.Int).SetUint64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return Complex(rv.Complex())
	case reflect.String:
		return Str(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes())
		}

		return List(elements(rv))
	case reflect.Array:
		return Tuple(elements(rv))
	case reflect.Map:
		return mapToDict(rv)
	case reflect.Interface:
		if rv.IsNil() {
			return None
		}

		return FromGo(rv.Elem().Interface())
	case reflect.Pointer:
		if rv.IsNil() {
			return None
		}

		if rv.Elem().Kind() == reflect.Struct {
			return objectAt(rv.Elem().Type().String(), rv.Pointer())
		}

		return FromGo(rv.Elem().Interface())
	case reflect.Struct:
		return structValue(rv)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return None
		}

		return objectAt(rv.Type().String(), rv.Pointer())
	}

	if !rv.IsValid() {
		return None
	}

	return NewOpaque(fmt.Sprintf("%v", rv.Interface()))
}

func elements(rv reflect.Value) []Value {
	items := make([]Value, rv.Len())
	for i := range items {
		items[i] = FromGo(rv.Index(i).Interface())
	}

	return items
}

func mapToDict(rv reflect.Value) Dict {
	type entry struct {
		key   Value
		value Value
		sort  string
	}

	entries := make([]entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key := FromGo(iter.Key().Interface())

		sortKey, err := Repr(key)
		if err != nil {
			sortKey = fmt.Sprint(iter.Key().Interface())
		}

		entries = append(entries, entry{
			key:   key,
			value: FromGo(iter.Value().Interface()),
			sort:  sortKey,
		})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.sort, b.sort)
	})

	d := make(Dict, 0, len(entries))
	for _, e := range entries {
		d = append(d, Item{Key: e.key, Value: e.value})
	}

	return d
}

func objectAt(typeName string, addr uintptr) Opaque {
	return NewOpaque(fmt.Sprintf("<%s object at %#x>", typeName, addr))
}

// structValue shows a struct the way a Python dataclass repr does, using
// its exported fields.
func structValue(rv reflect.Value) Opaque {
	typ := rv.Type()

	return Opaque{ReprFunc: func() (string, error) {
		var parts []string

		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}

			s, err := Repr(FromGo(rv.Field(i).Interface()))
			if err != nil {
				return "", err
			}

			parts = append(parts, field.Name+"="+s)
		}

		return typ.Name() + "(" + strings.Join(parts, ", ") + ")", nil
	}}
}
