package parser

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/token"
)

// advanceClass fetches the next character-class-interior token. Character
// classes use a different sublexer entry point (token.Lexer.NextClassItem)
// than the rest of the grammar, so class parsing keeps its own advance
// until the matching ']' is consumed, then falls back to the ordinary
// advance() for whatever follows.
func (p *Parser) advanceClass() {
	tok, err := p.lx.NextClassItem()
	if err != nil {
		p.failLexer(err)
		p.cur = token.Token{Kind: token.KEOF, Start: p.lx.Pos(), End: p.lx.Pos()}
		return
	}
	p.cur = tok
}

func (p *Parser) parseCharClass() ast.Node {
	openTok := p.cur
	negated := openTok.Kind == token.KClassOpenNeg
	p.advanceClass()

	inner := p.parseClassSetExpr()

	end := p.cur.End
	if p.cur.Kind != token.KClassClose {
		p.fail(ErrSyntax, "regex.syntax.unterminated-class", openTok.Start, "add a closing ']'",
			"character class opened here was never closed")
	} else {
		p.advance() // consume ']' with the ordinary lexer, resuming outer context
	}

	return ast.NewCharClass(ast.Span{Start: openTok.Start, End: end}, negated, inner)
}

// parseClassSetExpr handles the optional PCRE2 set-operation suffix:
// [a-z&&[^aeiou]] or [a-z--[aeiou]].
func (p *Parser) parseClassSetExpr() ast.Node {
	left := p.parseClassUnion()
	if p.cur.Kind == token.KClassIntersect || p.cur.Kind == token.KClassSubtract {
		kind := ast.ClassOpIntersection
		if p.cur.Kind == token.KClassSubtract {
			kind = ast.ClassOpSubtraction
		}
		p.advanceClass()
		right := p.parseClassSetExpr()
		span := ast.Span{Start: left.Span().Start, End: right.Span().End}
		return ast.NewClassOperation(span, kind, left, right)
	}
	return left
}

// parseClassUnion collects the implicitly-unioned members of a class run:
// literals, escapes, POSIX classes, and a-z style ranges.
func (p *Parser) parseClassUnion() ast.Node {
	start := p.cur.Start
	var members []ast.Node

	for !p.atClassBoundary() {
		atom := p.parseClassAtom()
		if atom == nil {
			break
		}
		if p.cur.Kind == token.KClassRange && isRangeableAtom(atom) {
			dashTok := p.cur
			p.advanceClass()
			if p.atRangeEndStart() {
				endAtom := p.parseClassAtom()
				span := ast.Span{Start: atom.Span().Start, End: endAtom.Span().End}
				members = append(members, ast.NewRange(span, atom, endAtom))
				continue
			}
			members = append(members, atom)
			members = append(members, ast.NewLiteral(ast.Span{Start: dashTok.Start, End: dashTok.End}, []byte("-")))
			continue
		}
		members = append(members, atom)
	}

	if len(members) == 0 {
		return ast.NewLiteral(ast.Span{Start: start, End: start}, nil)
	}
	if len(members) == 1 {
		return members[0]
	}
	end := members[len(members)-1].Span().End
	return ast.NewAlternation(ast.Span{Start: start, End: end}, members)
}

func (p *Parser) atClassBoundary() bool {
	switch p.cur.Kind {
	case token.KClassClose, token.KClassIntersect, token.KClassSubtract, token.KEOF:
		return true
	}
	return false
}

func (p *Parser) atRangeEndStart() bool {
	switch p.cur.Kind {
	case token.KLiteral, token.KHex, token.KHexBraced, token.KOctalLegacy, token.KOctalBraced, token.KControlChar:
		return true
	}
	return false
}

func isRangeableAtom(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Literal:
		return len(v.Bytes) > 0
	case *ast.CharLiteral:
		return true
	}
	return false
}

// parseClassAtom parses one member of a character class: a literal byte,
// a codepoint escape, a character-type shorthand, a Unicode property, or
// a nested POSIX class.
func (p *Parser) parseClassAtom() ast.Node {
	tok := p.cur
	switch tok.Kind {
	case token.KLiteral:
		p.advanceClass()
		return ast.NewLiteral(ast.Span{Start: tok.Start, End: tok.End}, []byte(tok.Value))
	case token.KClassRange: // a bare '-' not forming a range, e.g. leading "[-az]"
		p.advanceClass()
		return ast.NewLiteral(ast.Span{Start: tok.Start, End: tok.End}, []byte("-"))
	case token.KOctalLegacy, token.KOctalBraced, token.KHex, token.KHexBraced, token.KUnicodeNamed:
		p.advanceClass()
		return charLiteralFromToken(tok)
	case token.KControlChar:
		p.advanceClass()
		var cp rune
		if tok.Value != "" {
			cp = []rune(tok.Value)[0]
		}
		return ast.NewCharLiteral(ast.Span{Start: tok.Start, End: tok.End}, cp, tok.Text, ast.CharHex)
	case token.KUnicodeProp:
		p.advanceClass()
		return ast.NewUnicodeProp(ast.Span{Start: tok.Start, End: tok.End}, tok.Value, true, tok.Aux == "1")
	case token.KCharType:
		p.advanceClass()
		return ast.NewCharType(ast.Span{Start: tok.Start, End: tok.End}, tok.Value[0])
	case token.KPosixClass:
		p.advanceClass()
		return ast.NewPosixClass(ast.Span{Start: tok.Start, End: tok.End}, tok.Value, tok.Aux == "1")
	case token.KAssertion:
		// \b inside a class is rewritten to a literal backspace by the
		// lexer; any other assertion letter reaching here is lenient
		// fallback for tolerant-mode parsing.
		p.advanceClass()
		return ast.NewLiteral(ast.Span{Start: tok.Start, End: tok.End}, []byte(tok.Value))
	case token.KClassOpen, token.KClassOpenNeg:
		return p.parseCharClass()
	default:
		p.fail(ErrSyntax, "regex.syntax.unexpected-class-token", tok.Start, "",
			"unexpected token inside character class: "+tok.Kind.String())
		p.advanceClass()
		return nil
	}
}
