package solver

import (
	"testing"

	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/parser"
)

func parseOrFail(t *testing.T, pattern string) *ast.Regex {
	t.Helper()
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse(%q) failed: %v %v", pattern, err, errs)
	}
	return root
}

func TestEquivalentAlternationAndClass(t *testing.T) {
	left := parseOrFail(t, "/a|b/")
	right := parseOrFail(t, "/[ab]/")
	res, err := Equivalent(left, right, DefaultOptions())
	if err != nil {
		t.Fatalf("Equivalent failed: %v", err)
	}
	if !res.Equivalent {
		t.Fatalf("expected equivalent, got witnesses %q / %q", res.LeftNotRight, res.RightNotLeft)
	}
}

func TestSubsetOfPlusWithinStar(t *testing.T) {
	plus := parseOrFail(t, "/a+/")
	star := parseOrFail(t, "/a*/")

	forward, err := SubsetOf(plus, star, DefaultOptions())
	if err != nil {
		t.Fatalf("SubsetOf failed: %v", err)
	}
	if !forward.Subset {
		t.Fatalf("expected a+ subset of a*")
	}

	backward, err := SubsetOf(star, plus, DefaultOptions())
	if err != nil {
		t.Fatalf("SubsetOf failed: %v", err)
	}
	if backward.Subset {
		t.Fatalf("expected a* not subset of a+")
	}
	if backward.CounterExample != "" {
		t.Fatalf("expected empty-string counter-example, got %q", backward.CounterExample)
	}
}

func TestIntersectionShortestWitness(t *testing.T) {
	// a(b*)c has members "ac", "abc", "abbc", ...; a.c matches exactly
	// a-any-c (length 3). The only string both accept is "abc".
	left := parseOrFail(t, "/ab*c/")
	right := parseOrFail(t, "/a.c/")
	res, err := Intersection(left, right, DefaultOptions())
	if err != nil {
		t.Fatalf("Intersection failed: %v", err)
	}
	if res.Empty {
		t.Fatalf("expected non-empty intersection")
	}
	if res.Witness != "abc" {
		t.Fatalf("expected shortest witness %q, got %q", "abc", res.Witness)
	}
}

// TestWorkedScenarioSixIntersectionIsEmpty checks the literal patterns
// from spec §8 scenario 6, /ab*/ vs /a.c/. The scenario's own claimed
// witness ("abc" or "ac") is unreachable: /ab*/ never contains the byte
// 'c' under FULL match semantics, while every /a.c/ match ends in 'c',
// so the two languages cannot share a string. Recorded as an Open
// Question decision in DESIGN.md; this test pins down the verified-
// correct result rather than the spec's example.
func TestWorkedScenarioSixIntersectionIsEmpty(t *testing.T) {
	left := parseOrFail(t, "/ab*/")
	right := parseOrFail(t, "/a.c/")
	res, err := Intersection(left, right, DefaultOptions())
	if err != nil {
		t.Fatalf("Intersection failed: %v", err)
	}
	if !res.Empty {
		t.Fatalf("expected empty intersection per the traced languages, got witness %q", res.Witness)
	}
}

func TestDisjointPatternsHaveEmptyIntersection(t *testing.T) {
	left := parseOrFail(t, "/cat/")
	right := parseOrFail(t, "/dog/")
	res, err := Intersection(left, right, DefaultOptions())
	if err != nil {
		t.Fatalf("Intersection failed: %v", err)
	}
	if !res.Empty {
		t.Fatalf("expected empty intersection, got witness %q", res.Witness)
	}
}

func TestPartialModeWrapsSearchSemantics(t *testing.T) {
	root := parseOrFail(t, "/abc/")
	opts := DefaultOptions()
	opts.MatchMode = Partial
	d, err := Compile(root, opts)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	cur := d.Start
	for i := 0; i < len("xxabcxx"); i++ {
		cur = d.Step(cur, "xxabcxx"[i])
	}
	if !d.Accepting[cur] {
		t.Errorf("expected PARTIAL mode to accept a string merely containing abc")
	}

	full := DefaultOptions()
	fd, err := Compile(root, full)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	cur = fd.Start
	for i := 0; i < len("xxabcxx"); i++ {
		cur = fd.Step(cur, "xxabcxx"[i])
	}
	if fd.Accepting[cur] {
		t.Errorf("expected FULL mode to reject a string with leading/trailing noise")
	}
}
