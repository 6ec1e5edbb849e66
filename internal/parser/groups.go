package parser

import (
	"strconv"
	"strings"

	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/token"
)

// parseGroupModifier is entered with p.cur holding the "(?" token; the
// lexer's raw byte cursor sits immediately after it. It examines the next
// one or two bytes to dispatch to the right construct, exactly as spec
// §4.3 describes: the tokenizer stays context-light and the parser drives
// the byte cursor directly for this one dispatch point.
func (p *Parser) parseGroupModifier() ast.Node {
	start := p.cur.Start

	b, ok := p.lx.PeekByte()
	if !ok {
		p.fail(ErrSyntax, "regex.syntax.unterminated-group", start, "", "unterminated group modifier")
		p.advance()
		return nil
	}

	switch b {
	case ':':
		p.lx.AdvanceByte()
		return p.parseScopedGroup(start, ast.GroupNonCapturing, "", 0)
	case '>':
		p.lx.AdvanceByte()
		return p.parseScopedGroup(start, ast.GroupAtomic, "", 0)
	case '|':
		p.lx.AdvanceByte()
		return p.parseBranchReset(start)
	case '=':
		p.lx.AdvanceByte()
		return p.parseScopedGroup(start, ast.GroupLookaheadPositive, "", 0)
	case '!':
		p.lx.AdvanceByte()
		return p.parseScopedGroup(start, ast.GroupLookaheadNegative, "", 0)
	case '#':
		return p.parseGroupComment(start)
	case '&':
		p.lx.AdvanceByte()
		return p.parseSubroutineByName(start)
	case 'R':
		if next, ok := p.lx.PeekByteAt(1); ok && next == ')' {
			p.lx.AdvanceByte()
			return p.parseWholeRecursion(start)
		}
	case '<':
		return p.parseAngledGroup(start)
	case 'P':
		return p.parsePGroup(start)
	case '\'':
		return p.parseNamedCapture(start, '\'', '\'')
	case '(':
		p.lx.AdvanceByte()
		return p.parseConditional(start)
	case '*':
		return p.parseVerbInModifier(start)
	case 'C':
		p.lx.AdvanceByte()
		return p.parseCallout(start)
	case '^':
		p.lx.AdvanceByte()
		return p.parseInlineFlags(start, true)
	}

	if b == '-' || b == '+' || (b >= '0' && b <= '9') {
		return p.parseSubroutineByNumber(start)
	}
	if isFlagLetter(b) {
		return p.parseInlineFlags(start, false)
	}

	p.fail(ErrSyntax, "regex.syntax.unknown-group-modifier", start, "",
		"unrecognized group modifier after '(?'")
	p.advance()
	return nil
}

func isFlagLetter(b byte) bool {
	switch b {
	case 'i', 'm', 's', 'u', 'U', 'x', 'X', 'A', 'J', 'D', 'n', '-':
		return true
	}
	return false
}

// parseScopedGroup parses "(?MODIFIER:alternation)" forms that recurse
// into a child alternation and own their own flag scope.
func (p *Parser) parseScopedGroup(start int, gt ast.GroupType, name string, number int) ast.Node {
	p.advance()
	p.pushScope(p.topFlags())
	child := p.parseAlternation()
	p.popScope()
	end := p.expectGroupClose(start)
	return ast.NewGroup(ast.Span{Start: start, End: end}, gt, number, name, child)
}

func (p *Parser) parseAngledGroup(start int) ast.Node {
	next, ok := p.lx.PeekByteAt(1)
	if ok && next == '=' {
		p.lx.AdvanceByte()
		p.lx.AdvanceByte()
		return p.parseScopedGroup(start, ast.GroupLookbehindPositive, "", 0)
	}
	if ok && next == '!' {
		p.lx.AdvanceByte()
		p.lx.AdvanceByte()
		return p.parseScopedGroup(start, ast.GroupLookbehindNegative, "", 0)
	}
	return p.parseNamedCapture(start, '<', '>')
}

func (p *Parser) parsePGroup(start int) ast.Node {
	next, ok := p.lx.PeekByteAt(1)
	if !ok {
		p.fail(ErrSyntax, "regex.syntax.unterminated-group", start, "", "unterminated '(?P'")
		p.advance()
		return nil
	}
	switch next {
	case '<':
		p.lx.AdvanceByte() // 'P'
		return p.parseNamedCapture(start, '<', '>')
	case '\'':
		p.lx.AdvanceByte()
		return p.parseNamedCapture(start, '\'', '\'')
	case '=':
		p.lx.AdvanceByte() // 'P'
		p.lx.AdvanceByte() // '='
		return p.parseBackrefRewrite(start)
	case '>':
		p.lx.AdvanceByte() // 'P'
		p.lx.AdvanceByte() // '>'
		return p.parseSubroutineByName(start)
	}
	p.fail(ErrSyntax, "regex.syntax.unknown-group-modifier", start, "", "unrecognized '(?P' form")
	p.advance()
	return nil
}

// parseNamedCapture parses "(?<name>...)", "(?'name'...)", "(?P<name>...)".
// open/close are the name's delimiter bytes (already confirmed present;
// only the opener itself still needs consuming here).
func (p *Parser) parseNamedCapture(start int, open, close byte) ast.Node {
	p.lx.AdvanceByte() // consume opener
	name := p.scanUntilByte(close)
	p.lx.AdvanceByte() // consume closer

	p.groupSeq++
	number := p.groupSeq

	p.advance()
	p.pushScope(p.topFlags())
	child := p.parseAlternation()
	p.popScope()
	end := p.expectGroupClose(start)
	return ast.NewGroup(ast.Span{Start: start, End: end}, ast.GroupNamed, number, name, child)
}

func (p *Parser) parseBackrefRewrite(start int) ast.Node {
	name := p.scanUntilByte(')')
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte() // ')'
	p.advance()
	return ast.NewBackref(ast.Span{Start: start, End: end}, 0, name)
}

func (p *Parser) parseSubroutineByName(start int) ast.Node {
	name := p.scanUntilByte(')')
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte()
	p.advance()
	return ast.NewSubroutine(ast.Span{Start: start, End: end}, 0, name, "(?&"+name+")", false)
}

func (p *Parser) parseWholeRecursion(start int) ast.Node {
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte() // ')'
	p.advance()
	return ast.NewSubroutine(ast.Span{Start: start, End: end}, 0, "", "(?R)", true)
}

func (p *Parser) parseSubroutineByNumber(start int) ast.Node {
	raw := p.scanWhile(func(b byte) bool { return b == '-' || b == '+' || (b >= '0' && b <= '9') })
	n, _ := strconv.Atoi(raw)
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte() // ')'
	p.advance()
	whole := n == 0 && raw == "0"
	return ast.NewSubroutine(ast.Span{Start: start, End: end}, n, "", "(?"+raw+")", whole)
}

func (p *Parser) parseGroupComment(start int) ast.Node {
	p.lx.AdvanceByte() // '#'
	text := p.scanUntilByte(')')
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte()
	p.advance()
	return ast.NewComment(ast.Span{Start: start, End: end}, text)
}

func (p *Parser) parseCallout(start int) ast.Node {
	b, ok := p.lx.PeekByte()
	if ok && b == '"' {
		p.lx.AdvanceByte()
		text := p.scanUntilByte('"')
		p.lx.AdvanceByte() // closing quote
		end := p.lx.Pos() + 1
		p.lx.AdvanceByte() // ')'
		p.advance()
		return ast.NewCallout(ast.Span{Start: start, End: end}, -1, text)
	}
	digits := p.scanWhile(func(b byte) bool { return b >= '0' && b <= '9' })
	n := 0
	if digits != "" {
		n, _ = strconv.Atoi(digits)
	}
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte() // ')'
	p.advance()
	return ast.NewCallout(ast.Span{Start: start, End: end}, n, "")
}

func (p *Parser) parseVerbInModifier(start int) ast.Node {
	p.lx.AdvanceByte() // '*'
	name := p.scanWhile(func(b byte) bool { return b != ')' && b != ':' })
	arg := ""
	if b, ok := p.lx.PeekByte(); ok && b == ':' {
		p.lx.AdvanceByte()
		arg = p.scanUntilByte(')')
	}
	end := p.lx.Pos() + 1
	p.lx.AdvanceByte() // ')'
	p.advance()
	return ast.NewPcreVerb(ast.Span{Start: start, End: end}, name, arg)
}

// parseInlineFlags parses "(?flags)" (bleeds to the end of the enclosing
// group) and "(?flags:...)" (a self-contained scope). caretReset marks
// the "(?^flags)" form, which first resets to the default flag set.
func (p *Parser) parseInlineFlags(start int, caretReset bool) ast.Node {
	setLetters := p.scanWhile(func(b byte) bool { return b != '-' && b != ')' && b != ':' })
	unsetLetters := ""
	if b, ok := p.lx.PeekByte(); ok && b == '-' {
		p.lx.AdvanceByte()
		unsetLetters = p.scanWhile(func(b byte) bool { return b != ')' && b != ':' })
	}

	next, ok := p.lx.PeekByte()
	if ok && next == ':' {
		p.lx.AdvanceByte()
		scope := p.topFlags()
		if caretReset {
			scope = flagScope{}
		}
		applyFlags(&scope, setLetters, unsetLetters)
		p.advance()
		p.pushScope(scope)
		child := p.parseAlternation()
		p.popScope()
		end := p.expectGroupClose(start)
		g := ast.NewGroup(ast.Span{Start: start, End: end}, ast.GroupInlineFlags, 0,
			setLetters+"-"+unsetLetters, child)
		g.FlagsSet, g.FlagsUnset = setLetters, unsetLetters
		return g
	}

	end := p.lx.Pos() + 1
	p.lx.AdvanceByte() // ')'
	scope := &p.flags[len(p.flags)-1]
	if caretReset {
		*scope = flagScope{}
	}
	applyFlags(scope, setLetters, unsetLetters)
	p.lx.SetExtended(scope.extended)
	p.advance()
	g := ast.NewGroup(ast.Span{Start: start, End: end}, ast.GroupInlineFlags, 0, setLetters+"-"+unsetLetters, nil)
	g.FlagsSet, g.FlagsUnset = setLetters, unsetLetters
	return g
}

func applyFlags(scope *flagScope, set, unset string) {
	if strings.ContainsRune(set, 'x') {
		scope.extended = true
	}
	if strings.ContainsRune(unset, 'x') {
		scope.extended = false
	}
	if strings.ContainsRune(set, 'U') {
		scope.ungreedy = true
	}
	if strings.ContainsRune(unset, 'U') {
		scope.ungreedy = false
	}
}

// parseBranchReset parses "(?|alt1|alt2|...)": numbered captures inside
// each alternative share numbers across branches.
func (p *Parser) parseBranchReset(start int) ast.Node {
	p.advance()
	baseNumber := p.groupSeq
	maxSeen := baseNumber

	p.pushScope(p.topFlags())
	var alts []ast.Node
	for {
		p.groupSeq = baseNumber
		alts = append(alts, p.parseSequence())
		if p.groupSeq > maxSeen {
			maxSeen = p.groupSeq
		}
		if p.cur.Kind != token.KAlternationBar {
			break
		}
		p.advance()
	}
	p.popScope()
	p.groupSeq = maxSeen

	var child ast.Node
	if len(alts) == 1 {
		child = alts[0]
	} else {
		end := alts[len(alts)-1].Span().End
		child = ast.NewAlternation(ast.Span{Start: start, End: end}, alts)
	}

	end := p.expectGroupClose(start)
	return ast.NewGroup(ast.Span{Start: start, End: end}, ast.GroupBranchReset, 0, "", child)
}

// -----------------------------------------------------------------------
// Conditionals
// -----------------------------------------------------------------------

func (p *Parser) parseConditional(start int) ast.Node {
	cond, isDefine := p.parseConditionBody()

	p.pushScope(p.topFlags())
	yes := p.parseSequence()
	var no ast.Node
	if p.cur.Kind == token.KAlternationBar {
		p.advance()
		no = p.parseSequence()
	}
	p.popScope()

	if isDefine {
		end := p.expectGroupClose(start)
		return ast.NewDefine(ast.Span{Start: start, End: end}, yes)
	}

	end := p.expectGroupClose(start)
	return ast.NewConditional(ast.Span{Start: start, End: end}, cond, yes, no)
}

// parseConditionBody is entered right after the condition's opening '('
// has been consumed (it was itself the byte following "(?"). It reads the
// condition, then consumes the condition's own closing ')'. The bool
// result marks the "(?(DEFINE)...)" form, whose "yes" branch is never
// matched directly.
func (p *Parser) parseConditionBody() (ast.Node, bool) {
	condStart := p.lx.Pos()

	b, ok := p.lx.PeekByte()
	if !ok {
		p.fail(ErrSyntax, "regex.syntax.unterminated-group", condStart, "", "unterminated conditional")
		return nil, false
	}

	if matchesKeyword(p.lx, "DEFINE)") {
		p.scanUntilByte(')')
		p.lx.AdvanceByte()
		p.advance()
		return nil, true
	}

	if matchesKeyword(p.lx, "VERSION") {
		p.scanWhile(func(b byte) bool { return b != '>' && b != '=' })
		op := ""
		if b, ok := p.lx.PeekByte(); ok && b == '>' {
			op = ">="
			p.lx.AdvanceByte()
			p.lx.AdvanceByte() // '='
		} else if ok && b == '=' {
			op = "="
			p.lx.AdvanceByte()
		}
		version := p.scanUntilByte(')')
		end := p.lx.Pos()
		p.lx.AdvanceByte() // ')'
		p.advance()
		return ast.NewVersionCondition(ast.Span{Start: condStart, End: end}, op, version), false
	}

	if b == 'R' {
		return p.parseRecursionCondition(condStart), false
	}

	if b == '?' {
		p.lx.AdvanceByte()
		node := p.parseLookaroundCondition(condStart)
		return node, false
	}

	if b == '<' || b == '\'' {
		closer := byte('>')
		if b == '\'' {
			closer = '\''
		}
		p.lx.AdvanceByte()
		name := p.scanUntilByte(closer)
		p.lx.AdvanceByte()
		end := p.lx.Pos()
		p.lx.AdvanceByte() // ')'
		p.advance()
		return ast.NewBackref(ast.Span{Start: condStart, End: end}, 0, name), false
	}

	if b == '-' || b == '+' || (b >= '0' && b <= '9') {
		raw := p.scanWhile(func(b byte) bool { return b == '-' || b == '+' || (b >= '0' && b <= '9') })
		n, _ := strconv.Atoi(raw)
		end := p.lx.Pos()
		p.lx.AdvanceByte() // ')'
		p.advance()
		return ast.NewBackref(ast.Span{Start: condStart, End: end}, n, ""), false
	}

	name := p.scanUntilByte(')')
	end := p.lx.Pos()
	p.lx.AdvanceByte()
	p.advance()
	return ast.NewBackref(ast.Span{Start: condStart, End: end}, 0, name), false
}

func (p *Parser) parseRecursionCondition(condStart int) ast.Node {
	p.lx.AdvanceByte() // 'R'
	b, ok := p.lx.PeekByte()
	if ok && b == '&' {
		p.lx.AdvanceByte()
		name := p.scanUntilByte(')')
		end := p.lx.Pos()
		p.lx.AdvanceByte()
		p.advance()
		return ast.NewSubroutine(ast.Span{Start: condStart, End: end}, 0, name, "(?(R&"+name+"))", false)
	}
	raw := p.scanWhile(func(b byte) bool { return b == '-' || (b >= '0' && b <= '9') })
	end := p.lx.Pos()
	p.lx.AdvanceByte() // ')'
	p.advance()
	if raw == "" {
		return ast.NewSubroutine(ast.Span{Start: condStart, End: end}, 0, "", "(?(R))", true)
	}
	n, _ := strconv.Atoi(raw)
	return ast.NewSubroutine(ast.Span{Start: condStart, End: end}, n, "", "(?(R"+raw+"))", false)
}

// parseLookaroundCondition handles "(?(?=assert)yes|no)" style
// assertion-based conditions: the '?' has just been consumed, so what
// remains mirrors an ordinary lookaround group modifier, except its own
// closing ')' only terminates the condition, not the whole conditional.
func (p *Parser) parseLookaroundCondition(condStart int) ast.Node {
	b, _ := p.lx.PeekByte()
	var gt ast.GroupType
	switch b {
	case '=':
		p.lx.AdvanceByte()
		gt = ast.GroupLookaheadPositive
	case '!':
		p.lx.AdvanceByte()
		gt = ast.GroupLookaheadNegative
	case '<':
		next, _ := p.lx.PeekByteAt(1)
		p.lx.AdvanceByte()
		p.lx.AdvanceByte()
		if next == '!' {
			gt = ast.GroupLookbehindNegative
		} else {
			gt = ast.GroupLookbehindPositive
		}
	default:
		gt = ast.GroupLookaheadPositive
	}
	p.advance()
	p.pushScope(p.topFlags())
	child := p.parseAlternation()
	p.popScope()
	end := p.cur.Start
	if p.cur.Kind == token.KGroupClose {
		end = p.cur.End
		p.advance()
	}
	return ast.NewGroup(ast.Span{Start: condStart, End: end}, gt, 0, "", child)
}

// -----------------------------------------------------------------------
// Raw-byte scanning helpers
// -----------------------------------------------------------------------

func (p *Parser) scanUntilByte(target byte) string {
	start := p.lx.Pos()
	for {
		b, ok := p.lx.PeekByte()
		if !ok || b == target {
			break
		}
		p.lx.AdvanceByte()
	}
	end := p.lx.Pos()
	return bytesBetween(p, start, end)
}

func (p *Parser) scanWhile(pred func(byte) bool) string {
	start := p.lx.Pos()
	for {
		b, ok := p.lx.PeekByte()
		if !ok || !pred(b) {
			break
		}
		p.lx.AdvanceByte()
	}
	end := p.lx.Pos()
	return bytesBetween(p, start, end)
}

func bytesBetween(p *Parser, start, end int) string {
	return string(p.body[start:end])
}

func matchesKeyword(lx *token.Lexer, kw string) bool {
	for i := 0; i < len(kw); i++ {
		b, ok := lx.PeekByteAt(i)
		if !ok || b != kw[i] {
			return false
		}
	}
	return true
}
