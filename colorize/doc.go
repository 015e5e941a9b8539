// Package colorize renders Python values and expressions as styled,
// line-wrapped [markup.Document] values.
//
// A [Colorizer] accepts runtime values ([pyval.Value], or any Go value, which
// is converted with [pyval.FromGo]) and syntax trees ([pyast.Node]). Output
// respects a line width and a line count budget: containers are first
// rendered on a single line, and only broken over several lines when they do
// not fit. Output that exceeds the line budget is truncated and ends with an
// ellipsis.
//
//	c := colorize.New(colorize.WithLineWidth(40), colorize.WithMaxLines(3))
//
//	res, err := c.Colorize(pyval.List{pyval.NewInt(1), pyval.Str("a")})
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(res.Document) // [1, 'a']
//
// Every [Result] carries a score estimating how useful the rendering is.
// Values that only have a generic `<Foo object at 0x...>` form score low, and
// values whose repr fails score very low. [Colorizer.ColorizeScored] replaces
// documents scoring below a threshold with a placeholder.
//
// Calls of the form `re.compile('...')` and compiled [pyval.Pattern] values
// are rendered as raw regular expression literals, with each element of the
// pattern styled separately.
package colorize
