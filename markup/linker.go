package markup

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// PythonDocsURL is the default base URL for [PythonBuiltins].
const PythonDocsURL = "https://docs.python.org/3/library/"

// ErrInvalidLinks indicates a link map that could not be decoded.
var ErrInvalidLinks = errors.New("invalid link map")

// Linker resolves the dotted name of a link candidate to a URL.
type Linker interface {
	Resolve(name string) (string, bool)
}

// LinkerFunc adapts a function to the [Linker] interface.
type LinkerFunc func(name string) (string, bool)

// Resolve calls f.
func (f LinkerFunc) Resolve(name string) (string, bool) {
	return f(name)
}

// MapLinker resolves names found in the map.
type MapLinker map[string]string

// Resolve implements [Linker].
func (m MapLinker) Resolve(name string) (string, bool) {
	url, ok := m[name]

	return url, ok
}

// Chain returns a [Linker] that tries each linker in order and returns the
// first resolution. Nil linkers are skipped.
func Chain(linkers ...Linker) Linker {
	return LinkerFunc(func(name string) (string, bool) {
		for _, l := range linkers {
			if l == nil {
				continue
			}

			if url, ok := l.Resolve(name); ok {
				return url, true
			}
		}

		return "", false
	})
}

var pythonBuiltinPages = map[string]string{
	"None":           "constants.html#None",
	"True":           "constants.html#True",
	"False":          "constants.html#False",
	"NotImplemented": "constants.html#NotImplemented",
	"Ellipsis":       "constants.html#Ellipsis",
	"re":             "re.html",
	"re.compile":     "re.html#re.compile",
	"re.ASCII":       "re.html#re.ASCII",
	"re.A":           "re.html#re.A",
	"re.IGNORECASE":  "re.html#re.IGNORECASE",
	"re.I":           "re.html#re.I",
	"re.LOCALE":      "re.html#re.LOCALE",
	"re.L":           "re.html#re.L",
	"re.MULTILINE":   "re.html#re.MULTILINE",
	"re.M":           "re.html#re.M",
	"re.DOTALL":      "re.html#re.DOTALL",
	"re.S":           "re.html#re.S",
	"re.VERBOSE":     "re.html#re.VERBOSE",
	"re.X":           "re.html#re.X",
}

// PythonBuiltins returns a [Linker] for the Python constants and the names
// of the re module, relative to baseURL (usually [PythonDocsURL]).
func PythonBuiltins(baseURL string) Linker {
	return LinkerFunc(func(name string) (string, bool) {
		page, ok := pythonBuiltinPages[name]
		if !ok {
			return "", false
		}

		return baseURL + page, true
	})
}

// LoadLinks decodes a YAML mapping of dotted names to URLs.
func LoadLinks(data []byte) (MapLinker, error) {
	links := MapLinker{}

	err := yaml.Unmarshal(data, &links)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLinks, err)
	}

	return links, nil
}
