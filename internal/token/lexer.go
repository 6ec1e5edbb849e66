package token

import "unicode/utf8"

// Lexer tokenizes a PCRE pattern body over raw bytes. It exposes both a
// token-at-a-time Next()/NextClassItem() API and a raw byte cursor
// (PeekByte, PeekByteAt, AdvanceByte) that the parser uses directly for
// group-modifier dispatch — see parser.Parser's
// use of these, mirroring spec §4.3's note that group-modifier dispatch
// and extended-mode scoping are parser responsibilities layered on top of
// the lexer's byte stream.
type Lexer struct {
	src      []byte
	pos      int
	extended bool
	inQuote  bool
	pending  []Token

	// classJustOpened is set right after emitting KClassOpen/KClassOpenNeg
	// so the next NextClassItem call knows a leading ']' is literal.
	classJustOpened bool
}

// NewLexer creates a Lexer over body. extended controls whether `x`-mode
// whitespace/comment skipping is active; the parser toggles this as it
// enters and leaves inline flag scopes.
func NewLexer(body []byte) *Lexer {
	return &Lexer{src: body}
}

func (lx *Lexer) SetExtended(v bool) { lx.extended = v }
func (lx *Lexer) Extended() bool     { return lx.extended }

func (lx *Lexer) Pos() int  { return lx.pos }
func (lx *Lexer) Len() int  { return len(lx.src) }
func (lx *Lexer) Eof() bool { return lx.pos >= len(lx.src) }

func (lx *Lexer) PeekByte() (byte, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.pos], true
}

func (lx *Lexer) PeekByteAt(offset int) (byte, bool) {
	i := lx.pos + offset
	if i < 0 || i >= len(lx.src) {
		return 0, false
	}
	return lx.src[i], true
}

// AdvanceByte consumes and returns the current byte. Callers must check
// Eof first.
func (lx *Lexer) AdvanceByte() byte {
	b := lx.src[lx.pos]
	lx.pos++
	return b
}

// SeekTo moves the cursor to an absolute byte offset.
func (lx *Lexer) SeekTo(pos int) { lx.pos = pos }

// -----------------------------------------------------------------------
// Extended-mode trivia
// -----------------------------------------------------------------------

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// skipTrivia skips whitespace and `#...\n` comments when extended mode is
// active. It never runs inside a character class or inside a \Q...\E run
// (the parser never asks for trivia skipping in those contexts: class
// interior uses NextClassItem, quote runs are consumed atomically).
func (lx *Lexer) skipTrivia() {
	if !lx.extended {
		return
	}
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case isWhitespace(c):
			lx.pos++
		case c == '#':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		default:
			return
		}
	}
}

// -----------------------------------------------------------------------
// Default (non-class) tokenization
// -----------------------------------------------------------------------

// Next returns the next token outside a character class.
func (lx *Lexer) Next() (Token, error) {
	if len(lx.pending) > 0 {
		t := lx.pending[0]
		lx.pending = lx.pending[1:]
		return t, nil
	}

	if lx.inQuote {
		return lx.lexQuoteBody()
	}

	lx.skipTrivia()

	if lx.Eof() {
		return Token{Kind: KEOF, Start: lx.pos, End: lx.pos}, nil
	}

	start := lx.pos
	c := lx.src[lx.pos]

	switch c {
	case '\\':
		return lx.lexEscape(false)
	case '.':
		lx.pos++
		return Token{Kind: KDot, Text: ".", Start: start, End: lx.pos}, nil
	case '^':
		lx.pos++
		return Token{Kind: KAnchorCaret, Text: "^", Start: start, End: lx.pos}, nil
	case '$':
		lx.pos++
		return Token{Kind: KAnchorDollar, Text: "$", Start: start, End: lx.pos}, nil
	case '|':
		lx.pos++
		return Token{Kind: KAlternationBar, Text: "|", Start: start, End: lx.pos}, nil
	case '(':
		return lx.lexGroupOrVerb()
	case ')':
		lx.pos++
		return Token{Kind: KGroupClose, Text: ")", Start: start, End: lx.pos}, nil
	case '[':
		return lx.lexClassOpen()
	case '*', '+', '?':
		return lx.lexQuantifierSymbol()
	case '{':
		if tok, ok := lx.tryLexInterval(); ok {
			return tok, nil
		}
		lx.pos++
		return Token{Kind: KLiteral, Text: "{", Value: "{", Start: start, End: lx.pos}, nil
	default:
		return lx.lexLiteralRune()
	}
}

func (lx *Lexer) lexLiteralRune() (Token, error) {
	start := lx.pos
	r, size := utf8.DecodeRune(lx.src[lx.pos:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	lx.pos += size
	text := string(lx.src[start:lx.pos])
	return Token{Kind: KLiteral, Text: text, Value: text, Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexQuoteBody() (Token, error) {
	start := lx.pos
	for lx.pos < len(lx.src) {
		if lx.src[lx.pos] == '\\' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == 'E' {
			break
		}
		lx.pos++
	}
	text := string(lx.src[start:lx.pos])
	lx.inQuote = false
	if lx.pos+1 < len(lx.src) || (lx.pos < len(lx.src) && lx.src[lx.pos] == '\\') {
		if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == '\\' && lx.src[lx.pos+1] == 'E' {
			endStart := lx.pos
			lx.pos += 2
			if text == "" {
				return Token{Kind: KQuoteEnd, Text: `\E`, Start: endStart, End: lx.pos}, nil
			}
			lx.pending = append(lx.pending, Token{Kind: KQuoteEnd, Text: `\E`, Start: endStart, End: lx.pos})
			return Token{Kind: KQuoteBody, Text: text, Value: text, Start: start, End: endStart}, nil
		}
	}
	if text == "" {
		return lx.Next()
	}
	return Token{Kind: KQuoteBody, Text: text, Value: text, Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexGroupOrVerb() (Token, error) {
	start := lx.pos
	lx.pos++ // consume '('
	next, ok := lx.PeekByte()
	if ok && next == '?' {
		lx.pos++ // consume '?'
		return Token{Kind: KGroupModifierOpen, Text: "(?", Start: start, End: lx.pos}, nil
	}
	if ok && next == '*' {
		if tok, lexOk := lx.tryLexVerb(start); lexOk {
			return tok, nil
		}
	}
	return Token{Kind: KGroupOpen, Text: "(", Start: start, End: lx.pos}, nil
}

// tryLexVerb scans "(*NAME)" / "(*NAME:arg)" / "(*NAME=n)" starting with
// the cursor positioned right after "(" and looking at "*".
func (lx *Lexer) tryLexVerb(groupStart int) (Token, bool) {
	save := lx.pos
	lx.pos++ // consume '*'
	nameStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != ')' && lx.src[lx.pos] != ':' && lx.src[lx.pos] != '=' {
		lx.pos++
	}
	if lx.pos >= len(lx.src) || lx.pos == nameStart {
		lx.pos = save
		return Token{}, false
	}
	name := string(lx.src[nameStart:lx.pos])
	arg := ""
	if lx.src[lx.pos] == ':' || lx.src[lx.pos] == '=' {
		lx.pos++
		argStart := lx.pos
		for lx.pos < len(lx.src) && lx.src[lx.pos] != ')' {
			lx.pos++
		}
		if lx.pos >= len(lx.src) {
			lx.pos = save
			return Token{}, false
		}
		arg = string(lx.src[argStart:lx.pos])
	}
	lx.pos++ // consume ')'
	return Token{Kind: KPcreVerb, Text: string(lx.src[groupStart:lx.pos]), Value: name, Aux: arg, Start: groupStart, End: lx.pos}, true
}

func (lx *Lexer) lexClassOpen() (Token, error) {
	start := lx.pos
	lx.pos++ // consume '['
	if b, ok := lx.PeekByte(); ok && b == '^' {
		lx.pos++
		lx.classJustOpened = true
		return Token{Kind: KClassOpenNeg, Text: "[^", Start: start, End: lx.pos}, nil
	}
	lx.classJustOpened = true
	return Token{Kind: KClassOpen, Text: "[", Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexQuantifierSymbol() (Token, error) {
	start := lx.pos
	sym := lx.src[lx.pos]
	lx.pos++
	text := string(sym)
	if b, ok := lx.PeekByte(); ok {
		if b == '?' {
			lx.pos++
			text += "?"
		} else if b == '+' {
			lx.pos++
			text += "+"
		}
	}
	return Token{Kind: KQuantifier, Text: text, Value: text, Start: start, End: lx.pos}, nil
}

// tryLexInterval scans "{m}", "{m,}", "{m,n}", "{,n}" at the cursor
// (positioned at '{'). Returns ok=false (no bytes consumed) if the
// braces don't form a valid interval, so the caller can fall back to a
// literal '{'.
func (lx *Lexer) tryLexInterval() (Token, bool) {
	save := lx.pos
	start := lx.pos
	lx.pos++ // consume '{'
	digitsStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
		lx.pos++
	}
	hasMin := lx.pos > digitsStart
	hasComma := false
	if b, ok := lx.PeekByte(); ok && b == ',' {
		hasComma = true
		lx.pos++
	}
	maxStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
		lx.pos++
	}
	hasMax := lx.pos > maxStart
	if !hasMin && !hasMax {
		lx.pos = save
		return Token{}, false
	}
	if b, ok := lx.PeekByte(); !ok || b != '}' {
		lx.pos = save
		return Token{}, false
	}
	lx.pos++ // consume '}'
	text := string(lx.src[start:lx.pos])
	_ = hasComma
	if b, ok := lx.PeekByte(); ok {
		if b == '?' {
			lx.pos++
			text += "?"
		} else if b == '+' {
			lx.pos++
			text += "+"
		}
	}
	return Token{Kind: KQuantifier, Text: text, Value: text, Start: start, End: lx.pos}, true
}

// -----------------------------------------------------------------------
// Character-class interior
// -----------------------------------------------------------------------

// NextClassItem returns the next token inside a character class.
func (lx *Lexer) NextClassItem() (Token, error) {
	justOpened := lx.classJustOpened
	lx.classJustOpened = false

	if lx.Eof() {
		return Token{}, &LexerError{Position: lx.pos, Kind: ErrUnterminatedClass}
	}

	start := lx.pos
	c := lx.src[lx.pos]

	if c == ']' && !justOpened {
		lx.pos++
		return Token{Kind: KClassClose, Text: "]", Start: start, End: lx.pos}, nil
	}

	switch c {
	case '\\':
		return lx.lexEscape(true)
	case '-':
		if b, ok := lx.PeekByteAt(1); ok && b == '-' {
			lx.pos += 2
			return Token{Kind: KClassSubtract, Text: "--", Start: start, End: lx.pos}, nil
		}
		lx.pos++
		return Token{Kind: KClassRange, Text: "-", Value: "-", Start: start, End: lx.pos}, nil
	case '&':
		if b, ok := lx.PeekByteAt(1); ok && b == '&' {
			lx.pos += 2
			return Token{Kind: KClassIntersect, Text: "&&", Start: start, End: lx.pos}, nil
		}
	case '[':
		if b, ok := lx.PeekByteAt(1); ok && b == ':' {
			if tok, ok := lx.tryLexPosixClass(); ok {
				return tok, nil
			}
		}
	}

	return lx.lexLiteralRune()
}

func (lx *Lexer) tryLexPosixClass() (Token, bool) {
	save := lx.pos
	start := lx.pos
	lx.pos += 2 // consume "[:"
	negated := false
	if b, ok := lx.PeekByte(); ok && b == '^' {
		negated = true
		lx.pos++
	}
	nameStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != ':' && lx.src[lx.pos] != ']' {
		lx.pos++
	}
	if lx.pos+1 >= len(lx.src) || lx.src[lx.pos] != ':' || lx.src[lx.pos+1] != ']' {
		lx.pos = save
		return Token{}, false
	}
	name := string(lx.src[nameStart:lx.pos])
	lx.pos += 2 // consume ":]"
	aux := ""
	if negated {
		aux = "1"
	}
	return Token{Kind: KPosixClass, Text: string(lx.src[start:lx.pos]), Value: name, Aux: aux, Start: start, End: lx.pos}, true
}
