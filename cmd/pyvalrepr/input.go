package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"go.jacobcolvin.com/pyvalrepr/markup"
	"go.jacobcolvin.com/pyvalrepr/pyast"
	"go.jacobcolvin.com/pyvalrepr/pyval"
)

// input is one value to render, named for output and error messages.
type input struct {
	value any
	name  string
}

// loadInputs parses args as expressions, then reads every file given with
// --file. It returns the inputs that loaded and the errors of those that
// did not.
func (a *app) loadInputs(args []string) ([]input, error) {
	var (
		inputs []input
		errs   error
	)

	for _, arg := range args {
		expr, err := pyast.Parse(arg)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q: %w", ErrParseInput, arg, err))

			continue
		}

		inputs = append(inputs, input{name: arg, value: expr})
	}

	for _, path := range a.files {
		values, err := a.readValues(path)
		if err != nil {
			errs = multierr.Append(errs, err)

			continue
		}

		a.logger.Debug("read values", slog.String("file", path), slog.Int("documents", len(values)))

		for i, v := range values {
			name := path
			if len(values) > 1 {
				name = fmt.Sprintf("%s[%d]", path, i)
			}

			inputs = append(inputs, input{name: name, value: v})
		}
	}

	return inputs, errs
}

func (a *app) readValues(path string) ([]pyval.Value, error) {
	data, err := a.readFile(path)
	if err != nil {
		return nil, err
	}

	values, err := pyval.DecodeYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	return values, nil
}

func (a *app) readFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}

		return data, nil
	}

	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return data, nil
}

// linker resolves names to the Python documentation, after the user's link
// map when --links is set.
func (a *app) linker() (markup.Linker, error) {
	builtins := markup.PythonBuiltins(markup.PythonDocsURL)
	if a.links == "" {
		return builtins, nil
	}

	data, err := a.readFile(a.links)
	if err != nil {
		return nil, err
	}

	links, err := markup.LoadLinks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.links, err)
	}

	return markup.Chain(links, builtins), nil
}
