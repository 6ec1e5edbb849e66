package nfa

import (
	"testing"

	"github.com/yoeunes/regexlab/internal/parser"
)

// accepts is a tiny test-only NFA simulator (not a matching engine — the
// module explicitly ships none) used to sanity-check Thompson
// construction: does it build a graph that accepts the right exact-match
// language?
func accepts(n *Nfa, s string) bool {
	current := n.EpsilonClosure([]StateID{n.Start})
	for i := 0; i < len(s); i++ {
		current = n.EpsilonClosure(n.Move(current, s[i]))
		if len(current) == 0 {
			return false
		}
	}
	return n.IsAccepting(current)
}

func build(t *testing.T, pattern string, cfg Config) *Nfa {
	t.Helper()
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse(%q) failed: %v %v", pattern, err, errs)
	}
	n, err := Build(root, cfg)
	if err != nil {
		t.Fatalf("Build(%q) failed: %v", pattern, err)
	}
	return n
}

func TestLiteralConcatenation(t *testing.T) {
	n := build(t, "/abc/", DefaultConfig())
	if !accepts(n, "abc") {
		t.Errorf("expected to accept \"abc\"")
	}
	if accepts(n, "ab") || accepts(n, "abcd") || accepts(n, "") {
		t.Errorf("expected to reject partial/extra input")
	}
}

func TestAlternation(t *testing.T) {
	n := build(t, "/cat|dog/", DefaultConfig())
	for _, s := range []string{"cat", "dog"} {
		if !accepts(n, s) {
			t.Errorf("expected to accept %q", s)
		}
	}
	if accepts(n, "cow") {
		t.Errorf("expected to reject \"cow\"")
	}
}

func TestStarQuantifier(t *testing.T) {
	n := build(t, "/ab*c/", DefaultConfig())
	for _, s := range []string{"ac", "abc", "abbbbc"} {
		if !accepts(n, s) {
			t.Errorf("expected to accept %q", s)
		}
	}
	if accepts(n, "abbx") {
		t.Errorf("expected to reject \"abbx\"")
	}
}

func TestPlusQuantifier(t *testing.T) {
	n := build(t, "/ab+c/", DefaultConfig())
	if accepts(n, "ac") {
		t.Errorf("+ requires at least one repetition")
	}
	if !accepts(n, "abc") || !accepts(n, "abbc") {
		t.Errorf("expected to accept one-or-more b")
	}
}

func TestOptionalQuantifier(t *testing.T) {
	n := build(t, "/colou?r/", DefaultConfig())
	if !accepts(n, "color") || !accepts(n, "colour") {
		t.Errorf("expected both spellings accepted")
	}
	if accepts(n, "colouur") {
		t.Errorf("expected at most one u")
	}
}

func TestBoundedInterval(t *testing.T) {
	n := build(t, "/a{2,3}/", DefaultConfig())
	if accepts(n, "a") {
		t.Errorf("expected to reject below minimum")
	}
	if !accepts(n, "aa") || !accepts(n, "aaa") {
		t.Errorf("expected to accept within bounds")
	}
	if accepts(n, "aaaa") {
		t.Errorf("expected to reject above maximum")
	}
}

func TestUnboundedAtLeast(t *testing.T) {
	n := build(t, "/a{2,}/", DefaultConfig())
	if accepts(n, "a") {
		t.Errorf("expected to reject below minimum")
	}
	for _, s := range []string{"aa", "aaa", "aaaaaa"} {
		if !accepts(n, s) {
			t.Errorf("expected to accept %q", s)
		}
	}
}

func TestCharacterClass(t *testing.T) {
	n := build(t, "/[a-c]/", DefaultConfig())
	for _, s := range []string{"a", "b", "c"} {
		if !accepts(n, s) {
			t.Errorf("expected to accept %q", s)
		}
	}
	if accepts(n, "d") {
		t.Errorf("expected to reject \"d\"")
	}
}

func TestNegatedCharacterClass(t *testing.T) {
	n := build(t, "/[^a-c]/", DefaultConfig())
	if accepts(n, "a") {
		t.Errorf("expected to reject \"a\"")
	}
	if !accepts(n, "z") {
		t.Errorf("expected to accept \"z\"")
	}
}

func TestDotExcludesNewlineByDefault(t *testing.T) {
	n := build(t, "/./", DefaultConfig())
	if !accepts(n, "x") {
		t.Errorf("expected '.' to accept any non-newline byte")
	}
	if accepts(n, "\n") {
		t.Errorf("expected '.' to reject newline without dotAll")
	}
}

func TestDotAllIncludesNewline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DotAll = true
	n := build(t, "/./", cfg)
	if !accepts(n, "\n") {
		t.Errorf("expected '.' to accept newline under dotAll")
	}
}

func TestCaseInsensitiveUnionsCounterpart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CaseInsensitive = true
	n := build(t, "/abc/", cfg)
	if !accepts(n, "ABC") || !accepts(n, "aBc") {
		t.Errorf("expected case-insensitive matching")
	}
}

func TestBackreferenceRaisesComplexityError(t *testing.T) {
	root, errs, err := parser.Parse(`/(a)\1/`, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse failed: %v %v", err, errs)
	}
	_, buildErr := Build(root, DefaultConfig())
	if buildErr == nil {
		t.Fatalf("expected ComplexityError for backreference")
	}
	if _, ok := buildErr.(*ComplexityError); !ok {
		t.Fatalf("expected *ComplexityError, got %T", buildErr)
	}
}

func TestLookaroundRaisesComplexityError(t *testing.T) {
	root, errs, err := parser.Parse(`/a(?=b)/`, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse failed: %v %v", err, errs)
	}
	if _, err := Build(root, DefaultConfig()); err == nil {
		t.Fatalf("expected ComplexityError for lookahead")
	}
}

func TestStateBudgetExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStates = 2
	root, errs, err := parser.Parse("/abc/", parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse failed: %v %v", err, errs)
	}
	if _, err := Build(root, cfg); err == nil {
		t.Fatalf("expected ComplexityError for exceeded state budget")
	}
}
