package dfa

import (
	"testing"

	"github.com/yoeunes/regexlab/internal/automaton/nfa"
	"github.com/yoeunes/regexlab/internal/parser"
)

func buildDfa(t *testing.T, pattern string) *Dfa {
	t.Helper()
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse(%q) failed: %v %v", pattern, err, errs)
	}
	n, err := nfa.Build(root, nfa.DefaultConfig())
	if err != nil {
		t.Fatalf("nfa.Build(%q) failed: %v", pattern, err)
	}
	d, err := Build(n, DefaultConfig())
	if err != nil {
		t.Fatalf("dfa.Build(%q) failed: %v", pattern, err)
	}
	return d
}

func runDfa(d *Dfa, s string) bool {
	cur := d.Start
	for i := 0; i < len(s); i++ {
		cur = d.Step(cur, s[i])
	}
	return d.Accepting[cur]
}

func TestSubsetConstructionAcceptsSameLanguage(t *testing.T) {
	cases := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"/abc/", []string{"abc"}, []string{"ab", "abcd", ""}},
		{"/cat|dog/", []string{"cat", "dog"}, []string{"cow"}},
		{"/ab*c/", []string{"ac", "abc", "abbbbc"}, []string{"abbx"}},
		{"/a{2,3}/", []string{"aa", "aaa"}, []string{"a", "aaaa"}},
		{"/[a-c]+/", []string{"a", "abcabc"}, []string{"d", ""}},
	}
	for _, c := range cases {
		d := buildDfa(t, c.pattern)
		for _, s := range c.accept {
			if !runDfa(d, s) {
				t.Errorf("%s: expected to accept %q", c.pattern, s)
			}
		}
		for _, s := range c.reject {
			if runDfa(d, s) {
				t.Errorf("%s: expected to reject %q", c.pattern, s)
			}
		}
	}
}

func TestDfaIsTotal(t *testing.T) {
	d := buildDfa(t, "/abc/")
	numClasses := d.Classes.Len()
	for s := range d.Trans {
		if len(d.Trans[s]) != numClasses {
			t.Fatalf("state %d has %d transitions, want %d", s, len(d.Trans[s]), numClasses)
		}
	}
}

func TestDeadStateSelfLoops(t *testing.T) {
	d := buildDfa(t, "/abc/")
	for c := 0; c < d.Classes.Len(); c++ {
		if d.Trans[d.Dead][c] != d.Dead {
			t.Errorf("dead state should self-loop on every class, got %d for class %d", d.Trans[d.Dead][c], c)
		}
	}
	if d.Accepting[d.Dead] {
		t.Errorf("dead state must not be accepting")
	}
}

func TestMinimizeHopcroftPreservesLanguage(t *testing.T) {
	d := buildDfa(t, "/(ab|ab)*c/")
	m, err := Minimize(d, DefaultConfig())
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	for _, s := range []string{"c", "abc", "ababc", "ababab"} {
		want := runDfa(d, s)
		cur := m.Start
		for i := 0; i < len(s); i++ {
			cur = m.Step(cur, s[i])
		}
		got := m.Accepting[cur]
		if got != want {
			t.Errorf("minimized DFA disagrees with original on %q: got %v want %v", s, got, want)
		}
	}
}

func TestMinimizeMooreAndHopcroftAgreeOnStateCount(t *testing.T) {
	d := buildDfa(t, "/(ab|ab)*c/")

	cfgHopcroft := DefaultConfig()
	cfgHopcroft.Algorithm = Hopcroft
	mh, err := Minimize(d, cfgHopcroft)
	if err != nil {
		t.Fatalf("hopcroft minimize failed: %v", err)
	}

	cfgMoore := DefaultConfig()
	cfgMoore.Algorithm = Moore
	mm, err := Minimize(d, cfgMoore)
	if err != nil {
		t.Fatalf("moore minimize failed: %v", err)
	}

	if mh.NumStates() != mm.NumStates() {
		t.Errorf("hopcroft produced %d states, moore produced %d", mh.NumStates(), mm.NumStates())
	}
}

func TestDfaStateBudgetExceeded(t *testing.T) {
	root, errs, err := parser.Parse("/a{1,50}/", parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse failed: %v %v", err, errs)
	}
	n, err := nfa.Build(root, nfa.DefaultConfig())
	if err != nil {
		t.Fatalf("nfa build failed: %v", err)
	}
	cfg := DefaultConfig()
	cfg.MaxStates = 2
	if _, err := Build(n, cfg); err == nil {
		t.Fatalf("expected ComplexityError for exceeded DFA state budget")
	}
}
