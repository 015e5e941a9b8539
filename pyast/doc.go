// Package pyast represents Python expressions as syntax trees.
//
// [Parse] reads a single expression (literals, names, attribute access,
// subscripts, calls and operators) into a tree of [Node] values, and
// [Unparse] prints any tree back to source text. Lambdas, comprehensions,
// f-strings and assignment expressions are outside the supported grammar
// and are reported as syntax errors.
//
//	expr, err := pyast.Parse(`re.compile(r"a|b", flags=re.I)`)
//	if err != nil {
//		return err
//	}
//
//	call := expr.(*pyast.Call)
//	name, _ := pyast.DottedName(call.Func) // ["re", "compile"]
//
// [Signature.Bind] matches call arguments to parameters the way Python
// binds them, which lets callers recognize calls to known functions.
package pyast
