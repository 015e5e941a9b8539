package pyast

import (
	"fmt"

	"go.jacobcolvin.com/pyvalrepr/pyval"
)

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

var (
	shiftOps = map[string]BinOperator{"<<": LShift, ">>": RShift}
	arithOps = map[string]BinOperator{"+": Add, "-": Sub}
	termOps  = map[string]BinOperator{
		"*": Mult, "/": Div, "//": FloorDiv, "%": Mod, "@": MatMult,
	}
	factorOps = map[string]UnaryOperator{"+": UAdd, "-": USub, "~": Invert}
	cmpOps    = map[string]CmpOperator{
		"==": Eq, "!=": NotEq, "<": Lt, "<=": LtE, ">": Gt, ">=": GtE,
	}
)

// Parse parses src as a single Python expression. A top-level
// comma-separated sequence parses as a [*Tuple].
//
// Errors wrap [ErrSyntax] and are of type [*SyntaxError].
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}

	e, err := p.parseStarExprs()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok)
	}

	return e, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+n]
}

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}

	return tok
}

func (p *parser) isOp(op string) bool {
	tok := p.peek()

	return tok.kind == tokOp && tok.text == op
}

func (p *parser) isKeyword(kw string) bool {
	tok := p.peek()

	return tok.kind == tokName && tok.text == kw
}

func (p *parser) acceptOp(op string) bool {
	if p.isOp(op) {
		p.advance()

		return true
	}

	return false
}

func (p *parser) acceptKeyword(kw string) bool {
	if p.isKeyword(kw) {
		p.advance()

		return true
	}

	return false
}

func (p *parser) expectOp(op string) error {
	if !p.acceptOp(op) {
		tok := p.peek()
		if tok.kind == tokEOF {
			return &SyntaxError{Msg: fmt.Sprintf("expected %q", op), Offset: tok.pos}
		}

		return &SyntaxError{Msg: fmt.Sprintf("expected %q, got %q", op, tok.text), Offset: tok.pos}
	}

	return nil
}

func (p *parser) unexpected(tok token) error {
	switch {
	case tok.kind == tokEOF:
		return &SyntaxError{Msg: "unexpected end of input", Offset: tok.pos}
	case tok.kind == tokName && tok.text == "lambda":
		return &SyntaxError{Msg: "lambda expressions are not supported", Offset: tok.pos}
	case tok.kind == tokName && (tok.text == "for" || tok.text == "async"):
		return &SyntaxError{Msg: "comprehensions are not supported", Offset: tok.pos}
	case tok.kind == tokOp && tok.text == ":=":
		return &SyntaxError{Msg: "assignment expressions are not supported", Offset: tok.pos}
	}

	return &SyntaxError{Msg: fmt.Sprintf("unexpected %q", tok.text), Offset: tok.pos}
}

// atEnd reports whether the next token closes the current expression list.
func (p *parser) atEnd() bool {
	tok := p.peek()
	if tok.kind == tokEOF {
		return true
	}

	if tok.kind != tokOp {
		return false
	}

	switch tok.text {
	case ")", "]", "}", "=", ":", ";":
		return true
	}

	return false
}

func (p *parser) parseStarExprs() (Expr, error) {
	first, err := p.parseStarExpr()
	if err != nil {
		return nil, err
	}

	if !p.isOp(",") {
		return first, nil
	}

	elts := []Expr{first}

	for p.acceptOp(",") && !p.atEnd() {
		e, err := p.parseStarExpr()
		if err != nil {
			return nil, err
		}

		elts = append(elts, e)
	}

	return &Tuple{Elts: elts}, nil
}

func (p *parser) parseStarExpr() (Expr, error) {
	if p.acceptOp("*") {
		e, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}

		return &Starred{Value: e}, nil
	}

	return p.parseExpr()
}

// parseExpr parses a conditional expression, the `test` production.
func (p *parser) parseExpr() (Expr, error) {
	if p.isKeyword("lambda") {
		return nil, p.unexpected(p.peek())
	}

	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.isOp(":=") {
		return nil, p.unexpected(p.peek())
	}

	if !p.acceptKeyword("if") {
		return body, nil
	}

	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.acceptKeyword("else") {
		return nil, &SyntaxError{Msg: "expected 'else' after 'if' expression", Offset: p.peek().pos}
	}

	orElse, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &IfExp{Test: test, Body: body, OrElse: orElse}, nil
}

func (p *parser) parseOr() (Expr, error) {
	return p.parseBoolOp("or", Or, p.parseAnd)
}

func (p *parser) parseAnd() (Expr, error) {
	return p.parseBoolOp("and", And, p.parseNot)
}

func (p *parser) parseBoolOp(kw string, op BoolOperator, operand func() (Expr, error)) (Expr, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}

	if !p.isKeyword(kw) {
		return first, nil
	}

	values := []Expr{first}

	for p.acceptKeyword(kw) {
		e, err := operand()
		if err != nil {
			return nil, err
		}

		values = append(values, e)
	}

	return &BoolOp{Op: op, Values: values}, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.acceptKeyword("not") {
		e, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		return &UnaryOp{Op: Not, Operand: e}, nil
	}

	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	cmp := &Compare{Left: left}

	for {
		op, ok := p.cmpOperator()
		if !ok {
			break
		}

		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}

		cmp.Ops = append(cmp.Ops, op)
		cmp.Comparators = append(cmp.Comparators, right)
	}

	if len(cmp.Ops) == 0 {
		return left, nil
	}

	return cmp, nil
}

func (p *parser) cmpOperator() (CmpOperator, bool) {
	tok := p.peek()

	if tok.kind == tokOp {
		op, ok := cmpOps[tok.text]
		if ok {
			p.advance()
		}

		return op, ok
	}

	switch {
	case p.acceptKeyword("in"):
		return In, true
	case p.isKeyword("not") && p.peekAt(1).kind == tokName && p.peekAt(1).text == "in":
		p.advance()
		p.advance()

		return NotIn, true
	case p.acceptKeyword("is"):
		if p.acceptKeyword("not") {
			return IsNot, true
		}

		return Is, true
	}

	return 0, false
}

func (p *parser) parseBitOr() (Expr, error) {
	return p.parseBinary(map[string]BinOperator{"|": BitOr}, p.parseBitXor)
}

func (p *parser) parseBitXor() (Expr, error) {
	return p.parseBinary(map[string]BinOperator{"^": BitXor}, p.parseBitAnd)
}

func (p *parser) parseBitAnd() (Expr, error) {
	return p.parseBinary(map[string]BinOperator{"&": BitAnd}, p.parseShift)
}

func (p *parser) parseShift() (Expr, error) {
	return p.parseBinary(shiftOps, p.parseArith)
}

func (p *parser) parseArith() (Expr, error) {
	return p.parseBinary(arithOps, p.parseTerm)
}

func (p *parser) parseTerm() (Expr, error) {
	return p.parseBinary(termOps, p.parseFactor)
}

// parseBinary parses a left-associative chain of the given operators.
func (p *parser) parseBinary(ops map[string]BinOperator, operand func() (Expr, error)) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokOp {
			return left, nil
		}

		op, ok := ops[tok.text]
		if !ok {
			return left, nil
		}

		p.advance()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &BinOp{Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseFactor() (Expr, error) {
	tok := p.peek()
	if tok.kind == tokOp {
		if op, ok := factorOps[tok.text]; ok {
			p.advance()

			e, err := p.parseFactor()
			if err != nil {
				return nil, err
			}

			return &UnaryOp{Op: op, Operand: e}, nil
		}
	}

	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	if p.isKeyword("await") {
		return nil, &SyntaxError{Msg: "await expressions are not supported", Offset: p.peek().pos}
	}

	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if !p.acceptOp("**") {
		return base, nil
	}

	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	return &BinOp{Left: base, Op: Pow, Right: exp}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.acceptOp("."):
			tok := p.advance()
			if tok.kind != tokName || keywords[tok.text] {
				return nil, &SyntaxError{Msg: "expected attribute name", Offset: tok.pos}
			}

			e = &Attribute{Value: e, Attr: tok.text}

		case p.acceptOp("("):
			e, err = p.parseCall(e)
			if err != nil {
				return nil, err
			}

		case p.acceptOp("["):
			slice, err := p.parseSlices()
			if err != nil {
				return nil, err
			}

			e = &Subscript{Value: e, Slice: slice}

		default:
			return e, nil
		}
	}
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()

	switch tok.kind {
	case tokName:
		switch tok.text {
		case "None":
			p.advance()

			return &Constant{Value: pyval.None}, nil
		case "True":
			p.advance()

			return &Constant{Value: pyval.Bool(true)}, nil
		case "False":
			p.advance()

			return &Constant{Value: pyval.Bool(false)}, nil
		}

		if keywords[tok.text] {
			return nil, p.unexpected(tok)
		}

		p.advance()

		return &Name{ID: tok.text}, nil

	case tokNumber:
		p.advance()

		return &Constant{Value: tok.value}, nil

	case tokString:
		return p.parseStrings()

	case tokOp:
		switch tok.text {
		case "...":
			p.advance()

			return &Constant{Value: pyval.Ellipsis}, nil
		case "(":
			p.advance()

			return p.parseParen()
		case "[":
			p.advance()

			elts, err := p.parseElements("]")
			if err != nil {
				return nil, err
			}

			return &List{Elts: elts}, nil
		case "{":
			p.advance()

			return p.parseBrace()
		}
	}

	return nil, p.unexpected(tok)
}

// parseStrings concatenates adjacent string literals.
func (p *parser) parseStrings() (Expr, error) {
	first := p.advance()

	switch v := first.value.(type) {
	case pyval.Bytes:
		out := append(pyval.Bytes{}, v...)

		for p.peek().kind == tokString {
			tok := p.advance()

			b, ok := tok.value.(pyval.Bytes)
			if !ok {
				return nil, &SyntaxError{Msg: "cannot mix bytes and nonbytes literals", Offset: tok.pos}
			}

			out = append(out, b...)
		}

		return &Constant{Value: out}, nil

	default:
		out := first.value.(pyval.Str)

		for p.peek().kind == tokString {
			tok := p.advance()

			s, ok := tok.value.(pyval.Str)
			if !ok {
				return nil, &SyntaxError{Msg: "cannot mix bytes and nonbytes literals", Offset: tok.pos}
			}

			out += s
		}

		return &Constant{Value: out}, nil
	}
}

func (p *parser) parseParen() (Expr, error) {
	if p.acceptOp(")") {
		return &Tuple{}, nil
	}

	if p.isKeyword("yield") {
		return nil, &SyntaxError{Msg: "yield expressions are not supported", Offset: p.peek().pos}
	}

	first, err := p.parseStarExpr()
	if err != nil {
		return nil, err
	}

	if p.isKeyword("for") || p.isKeyword("async") {
		return nil, p.unexpected(p.peek())
	}

	if p.acceptOp(")") {
		if _, ok := first.(*Starred); ok {
			return nil, &SyntaxError{Msg: "cannot use starred expression here", Offset: p.peek().pos}
		}

		return first, nil
	}

	if err := p.expectOp(","); err != nil {
		return nil, err
	}

	elts := []Expr{first}

	if !p.isOp(")") {
		rest, err := p.parseElements(")")
		if err != nil {
			return nil, err
		}

		return &Tuple{Elts: append(elts, rest...)}, nil
	}

	p.advance()

	return &Tuple{Elts: elts}, nil
}

// parseElements parses a comma-separated list of starred expressions up to
// and including the closing token.
func (p *parser) parseElements(closing string) ([]Expr, error) {
	var elts []Expr

	for !p.acceptOp(closing) {
		e, err := p.parseStarExpr()
		if err != nil {
			return nil, err
		}

		if p.isKeyword("for") || p.isKeyword("async") {
			return nil, p.unexpected(p.peek())
		}

		elts = append(elts, e)

		if !p.acceptOp(",") {
			if err := p.expectOp(closing); err != nil {
				return nil, err
			}

			break
		}
	}

	return elts, nil
}

func (p *parser) parseBrace() (Expr, error) {
	if p.acceptOp("}") {
		return &Dict{}, nil
	}

	if !p.isOp("**") {
		first, err := p.parseStarExpr()
		if err != nil {
			return nil, err
		}

		if !p.isOp(":") {
			if p.isKeyword("for") || p.isKeyword("async") {
				return nil, p.unexpected(p.peek())
			}

			elts := []Expr{first}

			if p.acceptOp(",") {
				rest, err := p.parseElements("}")
				if err != nil {
					return nil, err
				}

				elts = append(elts, rest...)
			} else if err := p.expectOp("}"); err != nil {
				return nil, err
			}

			return &Set{Elts: elts}, nil
		}

		if _, ok := first.(*Starred); ok {
			return nil, &SyntaxError{Msg: "cannot use a starred expression in a dictionary key", Offset: p.peek().pos}
		}

		p.advance()

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		d := &Dict{Keys: []Expr{first}, Values: []Expr{value}}
		if !p.acceptOp(",") {
			return d, p.expectOp("}")
		}

		return p.parseDictItems(d)
	}

	return p.parseDictItems(&Dict{})
}

func (p *parser) parseDictItems(d *Dict) (Expr, error) {
	for !p.acceptOp("}") {
		if p.acceptOp("**") {
			value, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}

			d.Keys = append(d.Keys, nil)
			d.Values = append(d.Values, value)
		} else {
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if err := p.expectOp(":"); err != nil {
				return nil, err
			}

			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			d.Keys = append(d.Keys, key)
			d.Values = append(d.Values, value)
		}

		if p.isKeyword("for") || p.isKeyword("async") {
			return nil, p.unexpected(p.peek())
		}

		if !p.acceptOp(",") {
			if err := p.expectOp("}"); err != nil {
				return nil, err
			}

			break
		}
	}

	return d, nil
}

func (p *parser) parseCall(fn Expr) (Expr, error) {
	call := &Call{Func: fn}

	for !p.acceptOp(")") {
		tok := p.peek()

		switch {
		case p.acceptOp("**"):
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			call.Keywords = append(call.Keywords, &Keyword{Value: value})

		case p.acceptOp("*"):
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			call.Args = append(call.Args, &Starred{Value: value})

		case tok.kind == tokName && !keywords[tok.text] &&
			p.peekAt(1).kind == tokOp && p.peekAt(1).text == "=":
			p.advance()
			p.advance()

			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			for _, kw := range call.Keywords {
				if kw.Arg == tok.text {
					return nil, &SyntaxError{Msg: fmt.Sprintf("keyword argument repeated: %s", tok.text), Offset: tok.pos}
				}
			}

			call.Keywords = append(call.Keywords, &Keyword{Arg: tok.text, Value: value})

		default:
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if p.isKeyword("for") || p.isKeyword("async") {
				return nil, p.unexpected(p.peek())
			}

			if len(call.Keywords) > 0 {
				msg := "positional argument follows keyword argument"
				if call.Keywords[len(call.Keywords)-1].Arg == "" {
					msg += " unpacking"
				}

				return nil, &SyntaxError{Msg: msg, Offset: tok.pos}
			}

			call.Args = append(call.Args, value)
		}

		if !p.acceptOp(",") {
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}

			break
		}
	}

	return call, nil
}

// parseSlices parses subscript indices up to and including the closing
// bracket.
func (p *parser) parseSlices() (Expr, error) {
	var (
		items    []Expr
		trailing bool
	)

	for !p.acceptOp("]") {
		item, err := p.parseSlice()
		if err != nil {
			return nil, err
		}

		items = append(items, item)
		trailing = p.acceptOp(",")

		if !trailing {
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}

			break
		}
	}

	switch {
	case len(items) == 0:
		return nil, &SyntaxError{Msg: "expected subscript", Offset: p.peek().pos}
	case len(items) == 1 && !trailing:
		return items[0], nil
	}

	return &Tuple{Elts: items}, nil
}

func (p *parser) parseSlice() (Expr, error) {
	var (
		s   Slice
		err error
	)

	if !p.isOp(":") {
		lower, err := p.parseStarExpr()
		if err != nil {
			return nil, err
		}

		if !p.isOp(":") {
			return lower, nil
		}

		s.Lower = lower
	}

	p.advance()

	if !p.isOp(":") && !p.isOp(",") && !p.isOp("]") {
		s.Upper, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if p.acceptOp(":") && !p.isOp(",") && !p.isOp("]") {
		s.Step, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	return &s, nil
}
