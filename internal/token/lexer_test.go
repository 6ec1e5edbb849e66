package token

import "testing"

func collectKinds(t *testing.T, body string) []Kind {
	t.Helper()
	lx := NewLexer([]byte(body))
	var kinds []Kind
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error on %q: %v", body, err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == KEOF {
			break
		}
	}
	return kinds
}

func TestNextBasicTokens(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Kind
	}{
		{"literal run", "abc", []Kind{KLiteral, KLiteral, KLiteral, KEOF}},
		{"dot", ".", []Kind{KDot, KEOF}},
		{"anchors", "^a$", []Kind{KAnchorCaret, KLiteral, KAnchorDollar, KEOF}},
		{"alternation", "a|b", []Kind{KLiteral, KAlternationBar, KLiteral, KEOF}},
		{"group", "(a)", []Kind{KGroupOpen, KLiteral, KGroupClose, KEOF}},
		{"group modifier", "(?:a)", []Kind{KGroupModifierOpen, KLiteral, KLiteral, KGroupClose, KEOF}},
		{"star quantifier", "a*", []Kind{KLiteral, KQuantifier, KEOF}},
		{"lazy quantifier", "a*?", []Kind{KLiteral, KQuantifier, KEOF}},
		{"possessive quantifier", "a++", []Kind{KLiteral, KQuantifier, KEOF}},
		{"interval", "a{2,5}", []Kind{KLiteral, KQuantifier, KEOF}},
		{"interval open ended", "a{2,}", []Kind{KLiteral, KQuantifier, KEOF}},
		{"brace literal fallback", "a{x}", []Kind{KLiteral, KLiteral, KLiteral, KLiteral, KEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectKinds(t, tt.body)
			if len(got) != len(tt.want) {
				t.Fatalf("collectKinds(%q) = %v, want %v", tt.body, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("collectKinds(%q)[%d] = %v, want %v", tt.body, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexEscapeVariants(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  Kind
		wantValue string
	}{
		{"digit class", `\d`, KCharType, "d"},
		{"word boundary", `\b`, KAssertion, "b"},
		{"word boundary grapheme", `\b{g}`, KAssertion, "b{g}"},
		{"string start", `\A`, KAssertion, "A"},
		{"keep", `\K`, KKeep, ""},
		{"named backref k angle", `\k<foo>`, KGroupRefK, "foo"},
		{"named backref k quote", `\k'foo'`, KGroupRefK, "foo"},
		{"group ref g numeric", `\g{1}`, KGroupRefG, "1"},
		{"group ref g relative", `\g{-1}`, KGroupRefG, "-1"},
		{"group ref g angle name", `\g<foo>`, KGroupRefG, "foo"},
		{"unicode prop", `\p{L}`, KUnicodeProp, "L"},
		{"unicode prop negated", `\P{L}`, KUnicodeProp, "L"},
		{"unicode prop double negated", `\P{^L}`, KUnicodeProp, "L"},
		{"unicode named", `\N{LATIN SMALL LETTER A}`, KUnicodeNamed, "LATIN SMALL LETTER A"},
		{"control char", `\cA`, KControlChar, "\x01"},
		{"control char lowercase", `\ca`, KControlChar, "\x01"},
		{"hex two digit", `\x41`, KHex, "A"},
		{"hex braced", `\x{41}`, KHexBraced, "A"},
		{"octal braced", `\o{101}`, KOctalBraced, "A"},
		{"octal legacy", `\012`, KOctalLegacy, "\n"},
		{"backref", `\1`, KBackref, "1"},
		{"literal escaped punct", `\.`, KLiteralEscaped, "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := NewLexer([]byte(tt.body))
			tok, err := lx.Next()
			if err != nil {
				t.Fatalf("Next() error on %q: %v", tt.body, err)
			}
			if tok.Kind != tt.wantKind {
				t.Errorf("Next(%q).Kind = %v, want %v", tt.body, tok.Kind, tt.wantKind)
			}
			if tok.Value != tt.wantValue {
				t.Errorf("Next(%q).Value = %q, want %q", tt.body, tok.Value, tt.wantValue)
			}
		})
	}
}

func TestUnicodePropNegationFlag(t *testing.T) {
	lx := NewLexer([]byte(`\P{^L}`))
	tok, err := lx.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Aux != "" {
		t.Errorf("\\P{^L} should collapse to non-negated, got Aux=%q", tok.Aux)
	}

	lx = NewLexer([]byte(`\p{^L}`))
	tok, err = lx.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Aux != "1" {
		t.Errorf("\\p{^L} should be negated, got Aux=%q", tok.Aux)
	}
}

func TestBackspaceInClassVsAssertion(t *testing.T) {
	lx := NewLexer([]byte(`\b`))
	tok, err := lx.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Kind != KAssertion {
		t.Errorf("\\b outside class should be KAssertion, got %v", tok.Kind)
	}

	lx2 := NewLexer([]byte(`\b`))
	tok2, err := lx2.NextClassItem()
	if err != nil {
		t.Fatalf("NextClassItem() error: %v", err)
	}
	if tok2.Kind != KLiteral || tok2.Value != "\b" {
		t.Errorf("\\b inside class should be backspace literal, got kind=%v value=%q", tok2.Kind, tok2.Value)
	}
}

func TestQuoteBody(t *testing.T) {
	lx := NewLexer([]byte(`\Qa.b\Ec`))
	kinds := []Kind{}
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == KEOF {
			break
		}
	}
	want := []Kind{KQuoteStart, KQuoteBody, KQuoteEnd, KLiteral, KEOF}
	if len(kinds) != len(want) {
		t.Fatalf("quote kinds = %v, want %v", kinds, want)
	}
	for i := range kinds {
		if kinds[i] != want[i] {
			t.Errorf("quote kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestClassInterior(t *testing.T) {
	lx := NewLexer([]byte(`]a-z&&[:alpha:]]`))
	lx.classJustOpened = true

	tok, err := lx.NextClassItem()
	if err != nil {
		t.Fatalf("NextClassItem() error: %v", err)
	}
	if tok.Kind != KLiteral || tok.Value != "]" {
		t.Fatalf("leading ']' after open should be literal, got %v %q", tok.Kind, tok.Value)
	}

	tok, _ = lx.NextClassItem() // 'a'
	tok, _ = lx.NextClassItem() // '-'
	if tok.Kind != KClassRange {
		t.Fatalf("expected KClassRange for '-', got %v", tok.Kind)
	}
	tok, _ = lx.NextClassItem() // 'z'
	tok, err = lx.NextClassItem()
	if err != nil {
		t.Fatalf("NextClassItem() error: %v", err)
	}
	if tok.Kind != KClassIntersect {
		t.Fatalf("expected KClassIntersect for '&&', got %v", tok.Kind)
	}
	tok, err = lx.NextClassItem()
	if err != nil {
		t.Fatalf("NextClassItem() error: %v", err)
	}
	if tok.Kind != KPosixClass || tok.Value != "alpha" {
		t.Fatalf("expected KPosixClass 'alpha', got %v %q", tok.Kind, tok.Value)
	}
	tok, err = lx.NextClassItem()
	if err != nil {
		t.Fatalf("NextClassItem() error: %v", err)
	}
	if tok.Kind != KClassClose {
		t.Fatalf("expected KClassClose, got %v", tok.Kind)
	}
}

func TestUnterminatedClassError(t *testing.T) {
	lx := NewLexer([]byte(`a`))
	lx.classJustOpened = true
	_, err := lx.NextClassItem() // 'a'
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = lx.NextClassItem()
	if err == nil {
		t.Fatalf("expected unterminated class error at EOF")
	}
	if lexErr, ok := err.(*LexerError); !ok || lexErr.Kind != ErrUnterminatedClass {
		t.Errorf("expected ErrUnterminatedClass, got %v", err)
	}
}

func TestPcreVerb(t *testing.T) {
	lx := NewLexer([]byte(`(*FAIL)`))
	tok, err := lx.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Kind != KPcreVerb || tok.Value != "FAIL" {
		t.Errorf("(*FAIL) = %v %q, want KPcreVerb %q", tok.Kind, tok.Value, "FAIL")
	}

	lx = NewLexer([]byte(`(*MARK:foo)`))
	tok, err = lx.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if tok.Kind != KPcreVerb || tok.Value != "MARK" || tok.Aux != "foo" {
		t.Errorf("(*MARK:foo) = %v %q/%q, want KPcreVerb MARK/foo", tok.Kind, tok.Value, tok.Aux)
	}
}
