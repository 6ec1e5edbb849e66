package redos

import (
	"testing"

	"github.com/yoeunes/regexlab/internal/parser"
)

func analyze(t *testing.T, pattern string) Analysis {
	t.Helper()
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse(%q) failed: %v %v", pattern, err, errs)
	}
	return Analyze(root, []byte(pattern), pattern, DefaultConfig())
}

func TestNestedUnboundedQuantifierIsCritical(t *testing.T) {
	a := analyze(t, `/(a+)+b/`)
	if a.Severity != SeverityCritical {
		t.Fatalf("expected critical, got %s", a.Severity)
	}
	if a.Score != 10 {
		t.Fatalf("expected score 10, got %d", a.Score)
	}
	if len(a.Hotspots) == 0 {
		t.Fatalf("expected at least one hotspot")
	}
	found := false
	for _, h := range a.Hotspots {
		if h.Rule == "nested-unbounded-quantifier" {
			found = true
			if h.Offset != 4 {
				t.Errorf("expected the hotspot to point at the outer + (offset 4), got %d", h.Offset)
			}
		}
	}
	if !found {
		t.Errorf("expected a nested-unbounded-quantifier hotspot")
	}
}

func TestSafePatternHasNoFindings(t *testing.T) {
	a := analyze(t, `/abc/`)
	if a.Severity != SeveritySafe {
		t.Fatalf("expected safe, got %s", a.Severity)
	}
	if len(a.Hotspots) != 0 {
		t.Errorf("expected no hotspots, got %d", len(a.Hotspots))
	}
}

func TestAtomicGroupMitigatesNestedUnbounded(t *testing.T) {
	a := analyze(t, `/(?>(a+)+)b/`)
	if a.Severity == SeverityCritical {
		t.Fatalf("expected atomic wrapping to downgrade severity below critical, got %s", a.Severity)
	}
	if !a.FalsePositiveRisk {
		t.Errorf("expected FalsePositiveRisk when the only finding was mitigated")
	}
}

func TestUnmitigatedFindingWinsOverHigherRankedMitigatedOne(t *testing.T) {
	// The atomic-wrapped (a+)+ is a mitigated critical finding; the
	// trailing (a?)+ is a separate, unmitigated medium finding. The
	// reported severity must reflect the real unmitigated risk, not the
	// already-safe mitigated one just because it ranks higher.
	a := analyze(t, `/(?>(a+)+)(a?)+/`)
	if a.Severity != SeverityMedium {
		t.Fatalf("expected the unmitigated medium finding to win, got %s", a.Severity)
	}
	if a.FalsePositiveRisk {
		t.Errorf("expected FalsePositiveRisk false since not every finding was mitigated")
	}
}

func TestOverlappingAlternationUnderRepetition(t *testing.T) {
	a := analyze(t, `/(a|aa)+/`)
	if a.Severity != SeverityHigh {
		t.Fatalf("expected high, got %s", a.Severity)
	}
}

func TestBackreferenceInQuantifiedScope(t *testing.T) {
	a := analyze(t, `/(\w+)\1+/`)
	if a.Severity != SeverityHigh {
		t.Fatalf("expected high, got %s", a.Severity)
	}
}

func TestQuantifiedEmptyMatchTarget(t *testing.T) {
	a := analyze(t, `/(a?)+/`)
	if a.Severity != SeverityMedium {
		t.Fatalf("expected medium, got %s", a.Severity)
	}
}

func TestAmbiguousAdjacentQuantifiers(t *testing.T) {
	a := analyze(t, `/a+a+/`)
	if a.Severity != SeverityMedium {
		t.Fatalf("expected medium, got %s", a.Severity)
	}
}

func TestLargeBoundedRepeat(t *testing.T) {
	a := analyze(t, `/a{1,2000}/`)
	if a.Severity != SeverityLow {
		t.Fatalf("expected low, got %s", a.Severity)
	}
}

func TestIgnoredPatternIsSafe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RedosIgnoredPatterns = []string{`/(a+)+b/`}
	root, errs, err := parser.Parse(`/(a+)+b/`, parser.DefaultConfig())
	if err != nil || len(errs) > 0 {
		t.Fatalf("parse failed: %v %v", err, errs)
	}
	a := Analyze(root, []byte(`/(a+)+b/`), `/(a+)+b/`, cfg)
	if a.Severity != SeveritySafe {
		t.Fatalf("expected ignored pattern to report safe, got %s", a.Severity)
	}
}

func TestRecommendationExplain(t *testing.T) {
	a := analyze(t, `/(a+)+b/`)
	if len(a.Recommendations) == 0 {
		t.Fatalf("expected at least one recommendation")
	}
	if a.Recommendations[0].String() == "" {
		t.Errorf("expected a non-empty Explain/String rendering")
	}
}
