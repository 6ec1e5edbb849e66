// Package parser implements a hand-written recursive-descent parser that
// turns a token.Lexer's stream into an ast.Regex tree.
//
// Grammar (bottom-up):
//
//	alternation     := sequence ('|' sequence)*
//	sequence        := quantifiedAtom*
//	quantifiedAtom  := atom quantifier?
//	atom            := literal | charType | dot | anchor | assertion | keep |
//	                   backref | unicode | charClass | group | conditional |
//	                   define | pcreVerb | subroutine | callout | comment
//	group           := '(' groupModifier? alternation ')'
//
// Group-modifier dispatch and extended-mode scoping are the parser's
// responsibility, layered on the lexer's raw byte cursor; see groups.go.
package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/token"
)

type flagScope struct {
	extended bool
	ungreedy bool
}

// Parser drives a token.Lexer and builds an ast.Regex.
type Parser struct {
	cfg   Config
	body  []byte
	lx    *token.Lexer
	cur   token.Token
	depth int

	groupSeq int
	flags    []flagScope

	errors []*ParseError
}

// New creates a Parser over an already-split pattern body.
func New(body []byte, cfg Config) *Parser {
	lx := token.NewLexer(body)
	return &Parser{
		cfg:   cfg,
		body:  body,
		lx:    lx,
		flags: []flagScope{{}},
	}
}

// Parse splits a delimited regex literal and parses its body into an
// ast.Regex. In tolerant mode it returns a partial tree plus the collected
// errors instead of failing on the first one.
func Parse(source string, cfg Config) (*ast.Regex, []*ParseError, error) {
	if len(source) > cfg.MaxPatternLength {
		return nil, nil, &ParseError{Kind: ErrResourceLimit, Code: "regex.resource.pattern-too-long",
			Message: "pattern exceeds configured maximum length"}
	}

	delim, body, closeDelim, flags, err := token.Split(source)
	if err != nil {
		return nil, nil, &ParseError{Kind: ErrSyntax, Code: "regex.syntax.unmatched-delimiter",
			Message: err.Error()}
	}

	p := New([]byte(body), cfg)
	if strings.ContainsRune(flags, 'x') {
		p.flags[0].extended = true
		p.lx.SetExtended(true)
	}
	if strings.ContainsRune(flags, 'U') {
		p.flags[0].ungreedy = true
	}

	p.advance()
	pattern := p.parseAlternation()

	if p.cur.Kind != token.KEOF {
		p.fail(ErrSyntax, "regex.syntax.trailing-input", p.cur.Start, "",
			"unexpected trailing input at top level")
	}

	root := ast.NewRegex(ast.Span{Start: 0, End: len(body)}, body, delim, closeDelim, flags, pattern)

	if p.cfg.Tolerant {
		return root, p.errors, nil
	}
	if len(p.errors) > 0 {
		return root, p.errors, p.errors[0]
	}
	return root, nil, nil
}

// -----------------------------------------------------------------------
// Token stream plumbing
// -----------------------------------------------------------------------

func (p *Parser) advance() {
	tok, err := p.lx.Next()
	if err != nil {
		p.failLexer(err)
		p.cur = token.Token{Kind: token.KEOF, Start: p.lx.Pos(), End: p.lx.Pos()}
		return
	}
	p.cur = tok
}

func (p *Parser) failLexer(err error) {
	msg := err.Error()
	offset := p.lx.Pos()
	if lexErr, ok := err.(*token.LexerError); ok {
		offset = lexErr.Position
	}
	p.fail(ErrSyntax, "regex.syntax.lexer-error", offset, "", msg)
}

func (p *Parser) fail(kind ErrorKind, code string, offset int, hint, message string) {
	pe := newParseError(kind, code, p.body, offset, hint, message)
	p.errors = append(p.errors, pe)
}

func (p *Parser) topFlags() flagScope {
	return p.flags[len(p.flags)-1]
}

func (p *Parser) pushScope(s flagScope) {
	p.flags = append(p.flags, s)
	p.lx.SetExtended(s.extended)
}

func (p *Parser) popScope() {
	p.flags = p.flags[:len(p.flags)-1]
	p.lx.SetExtended(p.topFlags().extended)
}

func (p *Parser) enterRecursion(offset int) bool {
	p.depth++
	if p.depth > p.cfg.MaxRecursionDepth {
		p.fail(ErrRecursionLimit, "regex.resource.recursion-limit", offset, "simplify nested groups",
			"parser exceeded the configured maximum recursion depth")
		return false
	}
	return true
}

func (p *Parser) exitRecursion() { p.depth-- }

// -----------------------------------------------------------------------
// Grammar
// -----------------------------------------------------------------------

func (p *Parser) parseAlternation() ast.Node {
	start := p.cur.Start
	if !p.enterRecursion(start) {
		return ast.NewSequence(ast.Span{Start: start, End: start}, nil)
	}
	defer p.exitRecursion()

	alts := []ast.Node{p.parseSequence()}
	for p.cur.Kind == token.KAlternationBar {
		p.advance()
		alts = append(alts, p.parseSequence())
	}
	if len(alts) == 1 {
		return alts[0]
	}
	end := alts[len(alts)-1].Span().End
	return ast.NewAlternation(ast.Span{Start: start, End: end}, alts)
}

func (p *Parser) parseSequence() ast.Node {
	start := p.cur.Start
	var children []ast.Node
	for p.atAtomStart() {
		node := p.parseQuantifiedAtom()
		if node == nil {
			break
		}
		children = mergeLiteral(children, node)
	}
	end := start
	if len(children) > 0 {
		end = children[len(children)-1].Span().End
	}
	return ast.NewSequence(ast.Span{Start: start, End: end}, children)
}

// mergeLiteral appends node to children, fusing it into the previous
// sibling when both are plain, unquantified Literal nodes. A quantifier
// always binds to the last atom only, so merging happens after
// quantifiers are already resolved.
func mergeLiteral(children []ast.Node, node ast.Node) []ast.Node {
	if len(children) == 0 {
		return append(children, node)
	}
	prevLit, prevOk := children[len(children)-1].(*ast.Literal)
	curLit, curOk := node.(*ast.Literal)
	if prevOk && curOk {
		span := ast.Span{Start: prevLit.Span().Start, End: curLit.Span().End}
		merged := ast.NewLiteral(span, append(append([]byte{}, prevLit.Bytes...), curLit.Bytes...))
		children[len(children)-1] = merged
		return children
	}
	return append(children, node)
}

func (p *Parser) atAtomStart() bool {
	switch p.cur.Kind {
	case token.KEOF, token.KAlternationBar, token.KGroupClose:
		return false
	}
	return true
}

func (p *Parser) parseQuantifiedAtom() ast.Node {
	atom := p.parseAtom()
	if atom == nil {
		return nil
	}
	if p.cur.Kind != token.KQuantifier {
		return atom
	}

	quantTok := p.cur
	if isEmptyQuantifierTarget(atom) {
		p.fail(ErrSemantic, "regex.semantic.quantifier-without-target", quantTok.Start, "",
			"quantifier must follow a non-empty atom")
		p.advance()
		return atom
	}

	min, max, kind, ok := parseQuantifierSpec(quantTok.Value, p.topFlags().ungreedy)
	if !ok {
		p.fail(ErrSyntax, "regex.syntax.bad-quantifier", quantTok.Start, "",
			"malformed quantifier")
		p.advance()
		return atom
	}
	if min > max && max != -1 {
		p.fail(ErrSemantic, "regex.semantic.quantifier-bounds", quantTok.Start, "min must be <= max",
			"quantifier {m,n} requires m <= n")
	}
	span := ast.Span{Start: atom.Span().Start, End: quantTok.End}
	p.advance()
	return ast.NewQuantifier(span, atom, min, max, kind, quantTok.Value, quantTok.Start)
}

func isEmptyQuantifierTarget(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Anchor:
		return true
	case *ast.Assertion:
		return true
	case *ast.Keep:
		return true
	case *ast.Group:
		switch v.GroupType {
		case ast.GroupLookaheadPositive, ast.GroupLookaheadNegative,
			ast.GroupLookbehindPositive, ast.GroupLookbehindNegative:
			return true
		}
		return v.Child == nil
	}
	return false
}

// parseQuantifierSpec decodes raw quantifier text ("*", "+?", "{2,5}+", ...)
// into (min, max, kind). ungreedy flips the meaning of a trailing '?'
// between lazy and greedy, per PCRE's U flag.
func parseQuantifierSpec(raw string, ungreedy bool) (min, max int, kind ast.QuantKind, ok bool) {
	body := raw
	suffix := byte(0)
	if len(body) > 1 {
		last := body[len(body)-1]
		if last == '?' || last == '+' {
			suffix = last
			body = body[:len(body)-1]
		}
	}

	switch body {
	case "*":
		min, max = 0, -1
	case "+":
		min, max = 1, -1
	case "?":
		min, max = 0, 1
	default:
		if len(body) < 2 || body[0] != '{' || body[len(body)-1] != '}' {
			return 0, 0, ast.QuantGreedy, false
		}
		inner := body[1 : len(body)-1]
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) == 1 {
			n, err := strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, ast.QuantGreedy, false
			}
			min, max = n, n
		} else {
			if parts[0] == "" {
				min = 0
			} else if n, err := strconv.Atoi(parts[0]); err == nil {
				min = n
			} else {
				return 0, 0, ast.QuantGreedy, false
			}
			if parts[1] == "" {
				max = -1
			} else if n, err := strconv.Atoi(parts[1]); err == nil {
				max = n
			} else {
				return 0, 0, ast.QuantGreedy, false
			}
		}
	}

	kind = ast.QuantGreedy
	switch suffix {
	case '?':
		if ungreedy {
			kind = ast.QuantGreedy
		} else {
			kind = ast.QuantLazy
		}
	case '+':
		kind = ast.QuantPossessive
	default:
		if ungreedy {
			kind = ast.QuantLazy
		}
	}
	return min, max, kind, true
}

func (p *Parser) parseAtom() ast.Node {
	tok := p.cur
	switch tok.Kind {
	case token.KLiteral:
		p.advance()
		return ast.NewLiteral(ast.Span{Start: tok.Start, End: tok.End}, []byte(tok.Value))
	case token.KLiteralEscaped:
		p.advance()
		return ast.NewLiteral(ast.Span{Start: tok.Start, End: tok.End}, []byte(tok.Value))
	case token.KCharType:
		p.advance()
		return ast.NewCharType(ast.Span{Start: tok.Start, End: tok.End}, tok.Value[0])
	case token.KDot:
		p.advance()
		return ast.NewDot(ast.Span{Start: tok.Start, End: tok.End})
	case token.KAnchorCaret:
		p.advance()
		return ast.NewAnchor(ast.Span{Start: tok.Start, End: tok.End}, ast.AnchorCaret)
	case token.KAnchorDollar:
		p.advance()
		return ast.NewAnchor(ast.Span{Start: tok.Start, End: tok.End}, ast.AnchorDollar)
	case token.KAssertion:
		p.advance()
		return ast.NewAssertion(ast.Span{Start: tok.Start, End: tok.End}, tok.Value)
	case token.KKeep:
		p.advance()
		return ast.NewKeep(ast.Span{Start: tok.Start, End: tok.End})
	case token.KBackref:
		p.advance()
		n, _ := strconv.Atoi(tok.Value)
		return ast.NewBackref(ast.Span{Start: tok.Start, End: tok.End}, n, "")
	case token.KGroupRefG:
		p.advance()
		if n, err := strconv.Atoi(tok.Value); err == nil {
			if strings.HasPrefix(tok.Value, "+") {
				n += p.groupSeq // \g{+n}: the nth group opened after this point
			}
			return ast.NewBackref(ast.Span{Start: tok.Start, End: tok.End}, n, "")
		}
		return ast.NewBackref(ast.Span{Start: tok.Start, End: tok.End}, 0, tok.Value)
	case token.KGroupRefK:
		p.advance()
		return ast.NewBackref(ast.Span{Start: tok.Start, End: tok.End}, 0, tok.Value)
	case token.KOctalLegacy, token.KOctalBraced, token.KHex, token.KHexBraced, token.KUnicodeNamed:
		p.advance()
		return charLiteralFromToken(tok)
	case token.KControlChar:
		p.advance()
		var cp rune
		if tok.Value != "" {
			cp = []rune(tok.Value)[0]
		}
		return ast.NewCharLiteral(ast.Span{Start: tok.Start, End: tok.End}, cp, tok.Text, ast.CharHex)
	case token.KUnicodeProp:
		p.advance()
		return ast.NewUnicodeProp(ast.Span{Start: tok.Start, End: tok.End}, tok.Value,
			strings.Contains(tok.Text, "{"), tok.Aux == "1")
	case token.KPcreVerb:
		p.advance()
		return verbNodeFromToken(tok)
	case token.KQuoteStart:
		return p.parseQuoteLiteral()
	case token.KClassOpen, token.KClassOpenNeg:
		return p.parseCharClass()
	case token.KGroupOpen:
		return p.parseCapturingGroup()
	case token.KGroupModifierOpen:
		return p.parseGroupModifier()
	default:
		p.fail(ErrSyntax, "regex.syntax.unexpected-token", tok.Start, "",
			"unexpected token "+tok.Kind.String())
		p.advance()
		return nil
	}
}

func charLiteralFromToken(tok token.Token) ast.Node {
	span := ast.Span{Start: tok.Start, End: tok.End}
	var cp rune
	if tok.Value != "" {
		cp, _ = utf8.DecodeRuneInString(tok.Value)
	}
	switch tok.Kind {
	case token.KHex:
		return ast.NewCharLiteral(span, cp, tok.Text, ast.CharHex)
	case token.KHexBraced:
		return ast.NewCharLiteral(span, cp, tok.Text, ast.CharUnicodeBraced)
	case token.KOctalBraced:
		return ast.NewCharLiteral(span, cp, tok.Text, ast.CharOctal)
	case token.KOctalLegacy:
		return ast.NewCharLiteral(span, cp, tok.Text, ast.CharOctalLegacy)
	case token.KUnicodeNamed:
		return ast.NewCharLiteral(span, 0, tok.Text, ast.CharUnicodeNamed)
	}
	return ast.NewCharLiteral(span, cp, tok.Text, ast.CharHex)
}

func verbNodeFromToken(tok token.Token) ast.Node {
	span := ast.Span{Start: tok.Start, End: tok.End}
	switch tok.Value {
	case "LIMIT_MATCH":
		n, _ := strconv.Atoi(tok.Aux)
		return ast.NewLimitMatch(span, n)
	}
	return ast.NewPcreVerb(span, tok.Value, tok.Aux)
}

func (p *Parser) parseQuoteLiteral() ast.Node {
	start := p.cur.Start
	p.advance() // consume KQuoteStart

	if p.cur.Kind == token.KQuoteEnd {
		end := p.cur.End
		p.advance()
		return ast.NewLiteral(ast.Span{Start: start, End: end}, nil)
	}

	body := p.cur
	text := []byte(body.Value)
	p.advance()
	end := body.End
	if p.cur.Kind == token.KQuoteEnd {
		end = p.cur.End
		p.advance()
	}
	return ast.NewLiteral(ast.Span{Start: start, End: end}, text)
}

func (p *Parser) parseCapturingGroup() ast.Node {
	start := p.cur.Start
	p.groupSeq++
	number := p.groupSeq
	p.advance() // consume '('

	p.pushScope(p.topFlags())
	child := p.parseAlternation()
	p.popScope()

	end := p.expectGroupClose(start)
	return ast.NewGroup(ast.Span{Start: start, End: end}, ast.GroupCapturing, number, "", child)
}

func (p *Parser) expectGroupClose(openStart int) int {
	if p.cur.Kind != token.KGroupClose {
		p.fail(ErrSyntax, "regex.syntax.unterminated-group", openStart, "add a closing ')'",
			"group opened here was never closed")
		return p.cur.Start
	}
	end := p.cur.End
	p.advance()
	return end
}
