package token

import (
	"strconv"
	"unicode/utf8"
)

// lexEscape tokenizes a backslash sequence. inClass distinguishes a
// handful of escapes whose meaning differs inside a character class
// (only \b, which becomes a backspace literal instead of a word-boundary
// assertion).
func (lx *Lexer) lexEscape(inClass bool) (Token, error) {
	start := lx.pos
	if lx.pos+1 >= len(lx.src) {
		return Token{}, &LexerError{Position: start, Bytes: `\`, Kind: ErrInvalidEscape}
	}
	next := lx.src[lx.pos+1]

	switch next {
	case 'Q':
		lx.pos += 2
		lx.inQuote = true
		return Token{Kind: KQuoteStart, Text: `\Q`, Start: start, End: lx.pos}, nil
	case 'E':
		lx.pos += 2
		return lx.Next()
	case 'b':
		if inClass {
			lx.pos += 2
			return Token{Kind: KLiteral, Text: `\b`, Value: "\b", Start: start, End: lx.pos}, nil
		}
		return lx.lexAssertionMaybeGrapheme(start, 'b')
	case 'B':
		return lx.lexAssertionMaybeGrapheme(start, 'B')
	case 'A', 'z', 'Z', 'G':
		lx.pos += 2
		return Token{Kind: KAssertion, Text: string([]byte{'\\', next}), Value: string(next), Start: start, End: lx.pos}, nil
	case 'K':
		lx.pos += 2
		return Token{Kind: KKeep, Text: `\K`, Start: start, End: lx.pos}, nil
	case 'd', 'D', 'w', 'W', 's', 'S', 'h', 'H', 'v', 'V', 'R', 'X', 'C':
		lx.pos += 2
		return Token{Kind: KCharType, Text: string([]byte{'\\', next}), Value: string(next), Start: start, End: lx.pos}, nil
	case 'N':
		if b, ok := lx.PeekByteAt(2); ok && b == '{' {
			return lx.lexUnicodeNamed(start)
		}
		lx.pos += 2
		return Token{Kind: KCharType, Text: `\N`, Value: "N", Start: start, End: lx.pos}, nil
	case 'p', 'P':
		return lx.lexUnicodeProp(start, next)
	case 'c':
		return lx.lexControlChar(start)
	case 'x':
		return lx.lexHex(start)
	case 'o':
		if b, ok := lx.PeekByteAt(2); ok && b == '{' {
			return lx.lexOctalBraced(start)
		}
		lx.pos += 2
		return Token{Kind: KLiteralEscaped, Text: `\o`, Value: "o", Start: start, End: lx.pos}, nil
	case 'g':
		return lx.lexGroupRefG(start)
	case 'k':
		return lx.lexGroupRefK(start)
	case '0':
		return lx.lexOctalLegacy(start)
	}

	if next >= '1' && next <= '9' {
		return lx.lexBackref(start)
	}

	r, size := utf8.DecodeRune(lx.src[lx.pos+1:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	lx.pos += 1 + size
	text := string(lx.src[start:lx.pos])
	return Token{Kind: KLiteralEscaped, Text: text, Value: string(r), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexAssertionMaybeGrapheme(start int, letter byte) (Token, error) {
	lx.pos += 2 // consume "\" + letter
	if lx.matchAhead("{g}") {
		lx.pos += 3
		return Token{Kind: KAssertion, Text: string(lx.src[start:lx.pos]), Value: string(letter) + "{g}", Start: start, End: lx.pos}, nil
	}
	return Token{Kind: KAssertion, Text: string(lx.src[start:lx.pos]), Value: string(letter), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) matchAhead(s string) bool {
	if lx.pos+len(s) > len(lx.src) {
		return false
	}
	return string(lx.src[lx.pos:lx.pos+len(s)]) == s
}

func (lx *Lexer) lexUnicodeNamed(start int) (Token, error) {
	lx.pos += 2 // "\N"
	lx.pos++    // "{"
	nameStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '}' {
		lx.pos++
	}
	if lx.Eof() {
		return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrBadUnicodeName}
	}
	name := string(lx.src[nameStart:lx.pos])
	lx.pos++ // "}"
	return Token{Kind: KUnicodeNamed, Text: string(lx.src[start:lx.pos]), Value: name, Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexUnicodeProp(start int, letter byte) (Token, error) {
	lx.pos += 2 // "\p" or "\P"
	var name string
	if b, ok := lx.PeekByte(); ok && b == '{' {
		lx.pos++
		nameStart := lx.pos
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '}' {
			lx.pos++
		}
		if lx.Eof() {
			return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrInvalidEscape}
		}
		name = string(lx.src[nameStart:lx.pos])
		lx.pos++ // "}"
	} else if b, ok := lx.PeekByte(); ok {
		name = string(b)
		lx.pos++
	} else {
		return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrInvalidEscape}
	}

	innerNegated := false
	if len(name) > 0 && name[0] == '^' {
		innerNegated = true
		name = name[1:]
	}
	negated := (letter == 'P') != innerNegated
	aux := ""
	if negated {
		aux = "1"
	}
	return Token{Kind: KUnicodeProp, Text: string(lx.src[start:lx.pos]), Value: name, Aux: aux, Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexControlChar(start int) (Token, error) {
	lx.pos += 2 // "\c"
	if lx.Eof() {
		return Token{}, &LexerError{Position: start, Bytes: `\c`, Kind: ErrInvalidEscape}
	}
	x := lx.src[lx.pos]
	lx.pos++
	val := controlCharValue(x)
	return Token{Kind: KControlChar, Text: string(lx.src[start:lx.pos]), Value: string(rune(val)), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexHex(start int) (Token, error) {
	lx.pos += 2 // "\x"
	if b, ok := lx.PeekByte(); ok && b == '{' {
		lx.pos++
		digitsStart := lx.pos
		for lx.pos < len(lx.src) && isHexDigit(lx.src[lx.pos]) {
			lx.pos++
		}
		if lx.Eof() || lx.src[lx.pos] != '}' || lx.pos == digitsStart {
			return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrInvalidEscape}
		}
		digits := string(lx.src[digitsStart:lx.pos])
		lx.pos++ // "}"
		cp := hexToRune(digits)
		return Token{Kind: KHexBraced, Text: string(lx.src[start:lx.pos]), Value: string(cp), Start: start, End: lx.pos}, nil
	}
	digitsStart := lx.pos
	for lx.pos < len(lx.src) && lx.pos < digitsStart+2 && isHexDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	digits := string(lx.src[digitsStart:lx.pos])
	var cp rune
	if digits != "" {
		cp = hexToRune(digits)
	}
	return Token{Kind: KHex, Text: string(lx.src[start:lx.pos]), Value: string(cp), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexOctalBraced(start int) (Token, error) {
	lx.pos += 2 // "\o"
	lx.pos++    // "{"
	digitsStart := lx.pos
	for lx.pos < len(lx.src) && isOctalDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.Eof() || lx.src[lx.pos] != '}' || lx.pos == digitsStart {
		return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrInvalidEscape}
	}
	digits := string(lx.src[digitsStart:lx.pos])
	lx.pos++ // "}"
	cp := octalToRune(digits)
	return Token{Kind: KOctalBraced, Text: string(lx.src[start:lx.pos]), Value: string(cp), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexOctalLegacy(start int) (Token, error) {
	lx.pos++ // "\"
	digitsStart := lx.pos
	for lx.pos < len(lx.src) && lx.pos < digitsStart+3 && isOctalDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	digits := string(lx.src[digitsStart:lx.pos])
	cp := octalToRune(digits)
	return Token{Kind: KOctalLegacy, Text: string(lx.src[start:lx.pos]), Value: string(cp), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) lexBackref(start int) (Token, error) {
	lx.pos++ // "\"
	digitsStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
		lx.pos++
	}
	digits := string(lx.src[digitsStart:lx.pos])
	return Token{Kind: KBackref, Text: string(lx.src[start:lx.pos]), Value: digits, Start: start, End: lx.pos}, nil
}

// lexGroupRefG tokenizes \g{N}, \g{-N}, \g<N>, \g<name>, \g'name'.
func (lx *Lexer) lexGroupRefG(start int) (Token, error) {
	lx.pos += 2 // "\g"
	open, ok := lx.PeekByte()
	if !ok {
		return Token{}, &LexerError{Position: start, Bytes: `\g`, Kind: ErrInvalidEscape}
	}
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '<':
		closer = '>'
	case '\'':
		closer = '\''
	default:
		// \gN or \g-N with no delimiter
		lx.pos++
		digitsStart := lx.pos - 1
		for lx.pos < len(lx.src) && (lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9') {
			lx.pos++
		}
		inner := string(lx.src[digitsStart:lx.pos])
		return Token{Kind: KGroupRefG, Text: string(lx.src[start:lx.pos]), Value: inner, Start: start, End: lx.pos}, nil
	}
	lx.pos++ // consume opener
	innerStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != closer {
		lx.pos++
	}
	if lx.Eof() {
		return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrInvalidEscape}
	}
	inner := string(lx.src[innerStart:lx.pos])
	lx.pos++ // consume closer
	return Token{Kind: KGroupRefG, Text: string(lx.src[start:lx.pos]), Value: inner, Start: start, End: lx.pos}, nil
}

// lexGroupRefK tokenizes \k<name>, \k'name', \k{name}.
func (lx *Lexer) lexGroupRefK(start int) (Token, error) {
	lx.pos += 2 // "\k"
	open, ok := lx.PeekByte()
	if !ok {
		return Token{}, &LexerError{Position: start, Bytes: `\k`, Kind: ErrInvalidEscape}
	}
	var closer byte
	switch open {
	case '<':
		closer = '>'
	case '\'':
		closer = '\''
	case '{':
		closer = '}'
	default:
		return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:lx.pos]), Kind: ErrInvalidEscape}
	}
	lx.pos++
	innerStart := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != closer {
		lx.pos++
	}
	if lx.Eof() {
		return Token{}, &LexerError{Position: start, Bytes: string(lx.src[start:]), Kind: ErrInvalidEscape}
	}
	name := string(lx.src[innerStart:lx.pos])
	lx.pos++
	return Token{Kind: KGroupRefK, Text: string(lx.src[start:lx.pos]), Value: name, Start: start, End: lx.pos}, nil
}

// ParseDigits is a small conversion helper in the teacher's
// parseInt(v any)-style: the tokenizer hands back raw digit text, the
// parser converts it on demand.
func ParseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
