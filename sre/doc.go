// Package sre parses Python regular expression syntax into a structural
// element tree.
//
// The tree mirrors the element kinds of Python's own pattern parser
// (literals, classes, repeats, groups, anchors, lookaround assertions) but
// keeps the structure of the source: alternations are not folded into
// character classes and common prefixes are not factored out, so rendering
// the tree back gives text close to what was written.
//
//	p, err := sre.Parse(`(?P<word>\w+)\s*=\s*\d{1,3}`, 0)
//	if err != nil {
//		// errors.Is(err, sre.ErrSyntax)
//	}
//
// Parse errors are reported as [*Error] values wrapping [ErrSyntax].
package sre
