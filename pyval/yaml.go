package pyval

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// ErrDecode indicates input that could not be decoded into values.
var ErrDecode = errors.New("decode values")

// DecodeYAML reads every YAML document from r and converts each to a
// [Value] with [FromGo]. Mappings become [Dict] values in document order.
func DecodeYAML(r io.Reader) ([]Value, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())

	var values []Value

	for {
		var v any

		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}

		values = append(values, FromGo(v))
	}

	return values, nil
}
