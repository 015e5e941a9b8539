package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/pyvalrepr/colorize"
	"go.jacobcolvin.com/pyvalrepr/markup"
)

// Format is an output format name.
type Format string

// Output formats.
const (
	// FormatAuto selects [FormatANSI] on a terminal and [FormatText]
	// otherwise.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatANSI Format = "ansi"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates an unrecognized output format string.
var ErrUnknownFormat = errors.New("unknown output format")

var allFormats = []Format{FormatAuto, FormatText, FormatANSI, FormatHTML, FormatJSON}

// ParseFormat parses an output format string.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(allFormats, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// GetAllFormatStrings returns the names of all output formats.
func GetAllFormatStrings() []string {
	out := make([]string, len(allFormats))
	for i, f := range allFormats {
		out[i] = string(f)
	}

	return out
}

// record is the JSON form of one rendered input.
type record struct {
	Result *colorize.Result `json:"result"`
	Input  string           `json:"input" jsonschema:"the expression or file the value came from"`
}

// writeRecords writes records to w in format. Text, ANSI and HTML output put
// each document on its own line.
func writeRecords(w io.Writer, format Format, records []record, linker markup.Linker) error {
	var err error

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if records == nil {
			records = []record{}
		}

		err = enc.Encode(records)

	case FormatHTML:
		for _, r := range records {
			err = markup.RenderHTML(w, r.Result.Document, linker)
			if err != nil {
				break
			}

			_, err = io.WriteString(w, "\n")
			if err != nil {
				break
			}
		}

	case FormatANSI:
		theme := markup.DefaultTheme()
		for _, r := range records {
			_, err = fmt.Fprintln(w, markup.ANSI(r.Result.Document, theme))
			if err != nil {
				break
			}
		}

	default:
		for _, r := range records {
			_, err = fmt.Fprintln(w, r.Result.String())
			if err != nil {
				break
			}
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// writeSchema writes the JSON Schema of the --format json output.
func writeSchema(w io.Writer) error {
	schema, err := jsonschema.For[[]record](nil)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
