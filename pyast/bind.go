package pyast

import (
	"errors"
	"fmt"
)

// ErrBind indicates call arguments that do not match a [Signature].
var ErrBind = errors.New("cannot bind arguments")

// Param is a positional-or-keyword parameter.
type Param struct {
	Name       string
	HasDefault bool
}

// Signature describes the parameters of a function, such as
// `compile(pattern, flags=0)`.
type Signature struct {
	Params []Param
}

// NewSignature returns a [Signature] with required parameters followed by
// parameters that have defaults.
func NewSignature(required []string, optional ...string) Signature {
	var s Signature

	for _, name := range required {
		s.Params = append(s.Params, Param{Name: name})
	}

	for _, name := range optional {
		s.Params = append(s.Params, Param{Name: name, HasDefault: true})
	}

	return s
}

// BoundArguments maps parameter names to the argument expressions of a
// call. Parameters left to their defaults are absent.
type BoundArguments struct {
	values map[string]Expr
}

// Get returns the expression bound to the named parameter.
func (b *BoundArguments) Get(name string) (Expr, bool) {
	e, ok := b.values[name]

	return e, ok
}

// Len returns the number of bound parameters.
func (b *BoundArguments) Len() int {
	return len(b.values)
}

// Bind matches the arguments of call against s. Keyword unpackings
// (`**kwargs`) are ignored, since their contents are unknown.
func (s Signature) Bind(call *Call) (*BoundArguments, error) {
	if len(call.Args) > len(s.Params) {
		return nil, fmt.Errorf("%w: too many positional arguments", ErrBind)
	}

	b := &BoundArguments{values: make(map[string]Expr, len(s.Params))}

	for i, arg := range call.Args {
		if _, ok := arg.(*Starred); ok {
			return nil, fmt.Errorf("%w: cannot bind starred argument", ErrBind)
		}

		b.values[s.Params[i].Name] = arg
	}

	for _, kw := range call.Keywords {
		if kw.Arg == "" {
			continue
		}

		if !s.has(kw.Arg) {
			return nil, fmt.Errorf("%w: got an unexpected keyword argument %q", ErrBind, kw.Arg)
		}

		if _, dup := b.values[kw.Arg]; dup {
			return nil, fmt.Errorf("%w: multiple values for argument %q", ErrBind, kw.Arg)
		}

		b.values[kw.Arg] = kw.Value
	}

	for _, p := range s.Params {
		if _, ok := b.values[p.Name]; !ok && !p.HasDefault {
			return nil, fmt.Errorf("%w: missing a required argument: %q", ErrBind, p.Name)
		}
	}

	return b, nil
}

func (s Signature) has(name string) bool {
	for _, p := range s.Params {
		if p.Name == name {
			return true
		}
	}

	return false
}
