// Package markup holds the styled fragment model produced by
// [go.jacobcolvin.com/pyvalrepr/colorize] and the renderers that turn it into
// HTML, ANSI terminal output, or plain text.
//
// A [Document] is an ordered list of [Fragment] values. Each fragment is
// either text (optionally carrying a [Style]), a link candidate, a newline,
// or a word-break opportunity. Link candidates carry a dotted name in
// [Fragment.Target] which a [Linker] may resolve to a URL when rendering:
//
//	linker := markup.Chain(
//		markup.MapLinker{"mypkg.CONST": "https://example.com/mypkg#CONST"},
//		markup.PythonBuiltins(markup.PythonDocsURL),
//	)
//
//	err := markup.RenderHTML(w, doc, linker)
//
// Unresolved links are rendered as plain text.
package markup
