package colorize

import (
	"errors"
	"fmt"
	"log/slog"

	"go.jacobcolvin.com/pyvalrepr/markup"
)

// Default budgets of [New].
const (
	DefaultLineWidth = 75
	DefaultMaxLines  = 5
)

var (
	// ErrInternal indicates a pattern element or code that the renderer does
	// not understand. It signals a bug, not bad input.
	ErrInternal = errors.New("internal error")
	// ErrInvalidOption indicates an invalid configuration value.
	ErrInvalidOption = errors.New("invalid option")
)

// Colorizer renders values within a fixed layout budget. It is immutable
// and safe for concurrent use.
//
// Create instances with [New].
type Colorizer struct {
	logger     *slog.Logger
	lineWidth  int
	maxLines   int
	lineBreaks bool
}

// Option configures a [Colorizer].
type Option func(*Colorizer)

// WithLineWidth sets the maximum number of characters per line. Zero or a
// negative width disables wrapping.
func WithLineWidth(n int) Option {
	return func(c *Colorizer) {
		c.lineWidth = n
	}
}

// WithMaxLines sets the maximum number of lines. Output that needs more
// lines is truncated.
func WithMaxLines(n int) Option {
	return func(c *Colorizer) {
		c.maxLines = n
	}
}

// WithLineBreaks sets whether output may span several lines. Without line
// breaks, output is a single line and strings with newlines are escaped.
func WithLineBreaks(ok bool) Option {
	return func(c *Colorizer) {
		c.lineBreaks = ok
	}
}

// WithLogger sets the logger used for debug messages about fallbacks and
// truncation.
func WithLogger(l *slog.Logger) Option {
	return func(c *Colorizer) {
		c.logger = l
	}
}

// New creates a new [Colorizer] with [DefaultLineWidth], [DefaultMaxLines]
// and line breaks allowed, then applies opts.
func New(opts ...Option) *Colorizer {
	c := &Colorizer{
		lineWidth:  DefaultLineWidth,
		maxLines:   DefaultMaxLines,
		lineBreaks: true,
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	return c
}

// Value colorizes v with an 80 character width and up to 7 lines.
func Value(v any) (*Result, error) {
	return New(WithLineWidth(80), WithMaxLines(7)).Colorize(v)
}

// Inline colorizes v on a single line of unlimited width, for compact
// contexts such as table cells.
func Inline(v any) (*Result, error) {
	return New(WithLineWidth(0), WithMaxLines(7), WithLineBreaks(false)).Colorize(v)
}

// Result is the output of a colorization.
type Result struct {
	Document markup.Document `json:"document"`
	// Score estimates how informative the rendering is. Each rendered value
	// adds one; generic object reprs and failed reprs subtract.
	Score int `json:"score"`
	// Complete is false when the output was truncated.
	Complete bool `json:"complete"`
}

// String returns the plain text of the document.
func (r *Result) String() string {
	return r.Document.String()
}

// Colorize renders v. It returns an error wrapping [ErrInternal] only when
// the renderer meets a structure it does not understand; every other value
// renders, possibly as a placeholder.
func (c *Colorizer) Colorize(v any) (*Result, error) {
	return c.colorize(v, nil)
}

// ColorizeScored renders v like [Colorizer.Colorize], but replaces the
// document with a single unknown marker when the score is below minScore.
func (c *Colorizer) ColorizeScored(v any, minScore int) (*Result, error) {
	return c.colorize(v, &minScore)
}

func (c *Colorizer) colorize(v any, minScore *int) (*Result, error) {
	r := &run{c: c, state: state{lineno: 1, lineBreaks: c.lineBreaks}}
	complete := true

	err := r.value(v)

	switch {
	case err == nil:
	case errors.Is(err, errMaxLines), errors.Is(err, errLineBreak):
		c.logger.Debug("truncating output", slog.Any("reason", err), slog.Int("lines", r.lineno))

		complete = false
		r.truncate()
	default:
		return nil, fmt.Errorf("colorize: %w", err)
	}

	if minScore != nil && r.score < *minScore {
		c.logger.Debug("score below minimum",
			slog.Int("score", r.score),
			slog.Int("min", *minScore),
		)

		r.fragments = []markup.Fragment{markup.Unknown()}
	}

	return &Result{
		Document: markup.Document{Fragments: r.fragments},
		Score:    r.score,
		Complete: complete,
	}, nil
}

// truncate ends the output with an ellipsis, on its own line when breaks are
// allowed, or in place of the last few characters otherwise.
func (r *run) truncate() {
	if r.c.lineBreaks {
		r.fragments = append(r.fragments, markup.Newline(), markup.Ellipsis())

		return
	}

	if n := len(r.fragments); n > 0 && r.fragments[n-1].IsLineWrap() {
		r.fragments = r.fragments[:n-1]
	}

	r.fragments = append(trimFragments(r.fragments, len(markup.EllipsisText)), markup.Ellipsis())
}
