package colorize

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for colorizer configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	LineWidth    string
	MaxLines     string
	NoLineBreaks string
	Inline       string
	MinScore     string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		LineWidth: 80,
		MaxLines:  7,
		Flags:     f,
	}
}

// Config holds CLI flag values for colorizer configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewColorizer] to create a [Colorizer].
type Config struct {
	MinScore     OptionalInt
	Flags        Flags
	LineWidth    int
	MaxLines     int
	NoLineBreaks bool
	Inline       bool
}

// NewConfig returns a new [Config] with the defaults of [Value].
func NewConfig() *Config {
	f := Flags{
		LineWidth:    "line-width",
		MaxLines:     "max-lines",
		NoLineBreaks: "no-line-breaks",
		Inline:       "inline",
		MinScore:     "min-score",
	}

	return f.NewConfig()
}

// RegisterFlags adds colorizer flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.LineWidth, c.Flags.LineWidth, c.LineWidth,
		"maximum characters per line, 0 for unlimited")
	flags.IntVar(&c.MaxLines, c.Flags.MaxLines, c.MaxLines,
		"maximum number of lines before truncating")
	flags.BoolVar(&c.NoLineBreaks, c.Flags.NoLineBreaks, c.NoLineBreaks,
		"render on a single line")
	flags.BoolVar(&c.Inline, c.Flags.Inline, c.Inline,
		"render on a single line of unlimited width")
	flags.Var(&c.MinScore, c.Flags.MinScore,
		"replace output scoring below this value with a placeholder")
}

// RegisterCompletions registers shell completions for colorizer flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, name := range []string{c.Flags.LineWidth, c.Flags.MaxLines, c.Flags.MinScore} {
		err := cmd.RegisterFlagCompletionFunc(name, cobra.NoFileCompletions)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Options returns the [Option] values described by c.
func (c *Config) Options() []Option {
	if c.Inline {
		return []Option{WithLineWidth(0), WithMaxLines(c.MaxLines), WithLineBreaks(false)}
	}

	return []Option{
		WithLineWidth(c.LineWidth),
		WithMaxLines(c.MaxLines),
		WithLineBreaks(!c.NoLineBreaks),
	}
}

// NewColorizer validates c and creates a [Colorizer] logging to logger.
func (c *Config) NewColorizer(logger *slog.Logger) (*Colorizer, error) {
	if c.MaxLines < 1 {
		return nil, fmt.Errorf("%w: max lines must be at least 1, got %d", ErrInvalidOption, c.MaxLines)
	}

	return New(append(c.Options(), WithLogger(logger))...), nil
}

// Colorize renders v with col, applying the minimum score when one is set.
func (c *Config) Colorize(col *Colorizer, v any) (*Result, error) {
	if minScore, ok := c.MinScore.Get(); ok {
		return col.ColorizeScored(v, minScore)
	}

	return col.Colorize(v)
}

// OptionalInt is an int flag value that records whether it was set.
// It implements [pflag.Value].
type OptionalInt struct {
	value int
	set   bool
}

// Get returns the value and whether it was set.
func (o *OptionalInt) Get() (int, bool) {
	return o.value, o.set
}

// String implements [pflag.Value].
func (o *OptionalInt) String() string {
	if !o.set {
		return ""
	}

	return strconv.Itoa(o.value)
}

// Set implements [pflag.Value].
func (o *OptionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	o.value = n
	o.set = true

	return nil
}

// Type implements [pflag.Value].
func (o *OptionalInt) Type() string {
	return "int"
}
