// Command pyvalrepr renders Python values and expressions as colorized,
// length-limited representations.
//
// Arguments are parsed as Python expressions. Values can also be read from
// YAML files, where every document is one value. Output is plain text, ANSI
// colored text, HTML or JSON.
//
// # Usage
//
//	pyvalrepr [flags] [EXPR...]
//	pyvalrepr -f values.yaml --format html
//	pyvalrepr --interactive 're.compile(r"[a-z]+\d*", re.I)'
//
// Use `pyvalrepr schema` to print the JSON Schema of the JSON output.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"go.jacobcolvin.com/pyvalrepr/colorize"
	"go.jacobcolvin.com/pyvalrepr/log"
	"go.jacobcolvin.com/pyvalrepr/profile"
	"go.jacobcolvin.com/pyvalrepr/version"
)

var (
	// ErrNoInput indicates that no expression or file was given.
	ErrNoInput = errors.New("no input")
	// ErrReadInput indicates an input file that could not be read.
	ErrReadInput = errors.New("read input")
	// ErrParseInput indicates an expression that could not be parsed.
	ErrParseInput = errors.New("parse input")
	// ErrWriteOutput indicates a failure writing output.
	ErrWriteOutput = errors.New("write output")
)

func main() {
	a := &app{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		terminal: func() (int, bool) {
			fd := int(os.Stdout.Fd())
			if !term.IsTerminal(fd) {
				return 0, false
			}

			w, _, err := term.GetSize(fd)
			if err != nil {
				return 0, true
			}

			return w, true
		},
		runViewer: runViewer,
	}

	err := a.execute(os.Args[1:])
	if err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(os.Stderr, "%v\n", e)
		}

		os.Exit(1)
	}
}

// app holds the command's dependencies and flag values.
type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// terminal reports the width of stdout and whether it is a terminal.
	// A width of zero means unknown.
	terminal func() (int, bool)
	// runViewer runs the interactive viewer.
	runViewer func(*viewer) error

	logger   *slog.Logger
	profiler *profile.Profiler
	colorCfg *colorize.Config
	logCfg   *log.Config
	profCfg  *profile.Config

	files       []string
	format      string
	links       string
	fit         bool
	interactive bool
}

func newRootCommand(a *app) *cobra.Command {
	a.colorCfg = colorize.NewConfig()
	a.logCfg = log.NewConfig()
	a.profCfg = profile.NewConfig()
	a.logger = slog.New(slog.DiscardHandler)

	rootCmd := &cobra.Command{
		Use:   "pyvalrepr [flags] [EXPR...]",
		Short: "Render Python values as colorized, length-limited reprs",
		Long: `pyvalrepr renders Python values and expressions the way API documentation
shows them: syntax highlighted, wrapped to a line width and truncated after a
number of lines. Calls to re.compile show their pattern as a highlighted raw
regular expression.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := a.logCfg.NewLogger(a.stderr)
			if err != nil {
				return err
			}

			a.logger = logger
			a.profiler = a.profCfg.NewProfiler(a.fs)

			return a.profiler.Start()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&a.files, "file", "f", nil,
		"read values from a YAML file, one per document; - reads stdin")
	flags.StringVar(&a.format, "format", string(FormatAuto),
		fmt.Sprintf("output format, one of: %s", GetAllFormatStrings()))
	flags.StringVar(&a.links, "links", "",
		"YAML file mapping dotted names to URLs for HTML links")
	flags.BoolVar(&a.fit, "fit", false, "use the terminal width as the line width")
	flags.BoolVar(&a.interactive, "interactive", false,
		"open the first input in an interactive viewer")

	a.colorCfg.RegisterFlags(flags)
	a.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	a.profCfg.RegisterFlags(rootCmd.PersistentFlags())

	registerCompletions(rootCmd, a)

	rootCmd.AddCommand(newSchemaCommand(a), newVersionCommand(a))

	return rootCmd
}

// execute runs the command with args and writes any enabled profiles.
func (a *app) execute(args []string) error {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if a.profiler != nil {
		err = multierr.Append(err, a.profiler.Stop())
	}

	return err
}

func registerCompletions(rootCmd *cobra.Command, a *app) {
	err := multierr.Combine(
		rootCmd.RegisterFlagCompletionFunc("format",
			cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp)),
		rootCmd.MarkFlagFilename("file", "yaml", "yml"),
		rootCmd.MarkFlagFilename("links", "yaml", "yml"),
		a.colorCfg.RegisterCompletions(rootCmd),
		a.logCfg.RegisterCompletions(rootCmd),
		a.profCfg.RegisterCompletions(rootCmd),
	)
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}
}

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of --format json output",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return writeSchema(a.stdout)
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(a.stdout, version.Get())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return nil
		},
	}
}

// run loads every input, renders each one and writes the results. Failing
// inputs do not stop the others; their errors are returned together.
func (a *app) run(_ *cobra.Command, args []string) error {
	if len(args) == 0 && len(a.files) == 0 {
		return fmt.Errorf("%w: pass an expression or --file", ErrNoInput)
	}

	format, err := ParseFormat(a.format)
	if err != nil {
		return err
	}

	width, isTerminal := a.terminal()
	if format == FormatAuto {
		format = FormatText
		if isTerminal {
			format = FormatANSI
		}
	}

	if a.fit && width > 0 {
		a.colorCfg.LineWidth = width
	}

	col, err := a.colorCfg.NewColorizer(a.logger)
	if err != nil {
		return err
	}

	linker, err := a.linker()
	if err != nil {
		return err
	}

	inputs, errs := a.loadInputs(args)

	if a.interactive {
		if len(inputs) == 0 {
			return multierr.Append(errs, fmt.Errorf("%w: nothing to view", ErrNoInput))
		}

		v := newViewer(inputs[0], a.colorCfg, a.logger)

		return multierr.Append(errs, a.runViewer(v))
	}

	results := make([]record, 0, len(inputs))

	for _, in := range inputs {
		res, err := a.colorCfg.Colorize(col, in.value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", in.name, err))

			continue
		}

		a.logger.Debug("rendered input",
			slog.String("input", in.name),
			slog.Int("score", res.Score),
			slog.Bool("complete", res.Complete),
		)

		results = append(results, record{Input: in.name, Result: res})
	}

	err = writeRecords(a.stdout, format, results, linker)
	if err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}
