package regexlab

import (
	"testing"

	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/automaton/solver"
	"github.com/yoeunes/regexlab/internal/token"
)

func TestTokenizeProducesEofTerminatedStream(t *testing.T) {
	stream, err := Tokenize(`/abc/`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(stream) == 0 {
		t.Fatalf("expected a non-empty token stream")
	}
	if stream[len(stream)-1].Kind != token.KEOF {
		t.Errorf("expected the stream to end with KEOF")
	}
}

func TestParseTolerantCollectsErrors(t *testing.T) {
	res := Parse(`/a(b/`, true, DefaultConfig())
	if res.Err != nil {
		t.Fatalf("tolerant parse should not fail outright: %v", res.Err)
	}
	if len(res.Errors) == 0 {
		t.Errorf("expected at least one recoverable error for an unbalanced group")
	}
}

func TestValidateRejectsUnknownGroupReference(t *testing.T) {
	res := Validate(`/(?<x>a)\k<y>/`, DefaultConfig())
	if res.IsValid {
		t.Fatalf("expected an invalid result for an unresolved group reference")
	}
	if res.ErrorCode != "regex.semantic.unknown-group-name" {
		t.Errorf("unexpected error code %q", res.ErrorCode)
	}
}

func TestRedosFlagsNestedUnboundedQuantifier(t *testing.T) {
	a := Redos(`/(a+)+b/`, DefaultConfig())
	if a.Severity != "critical" {
		t.Fatalf("expected critical severity, got %s", a.Severity)
	}
}

func TestSolveEquivalentAlternationAndClass(t *testing.T) {
	s := NewSolve(DefaultConfig())
	res, err := s.Equivalent(`/a|b/`, `/[ab]/`, solver.Full)
	if err != nil {
		t.Fatalf("Equivalent: %v", err)
	}
	if !res.Equivalent {
		t.Errorf("expected /a|b/ and /[ab]/ to be equivalent")
	}
}

func TestSolveSubsetOfPlusWithinStar(t *testing.T) {
	s := NewSolve(DefaultConfig())
	res, err := s.SubsetOf(`/a+/`, `/a*/`, solver.Full)
	if err != nil {
		t.Fatalf("SubsetOf: %v", err)
	}
	if !res.Subset {
		t.Errorf("expected /a+/ to be a subset of /a*/")
	}
}

func TestAnalyzeCombinesAllThreePasses(t *testing.T) {
	result := Analyze(`/(a+)+b/`, DefaultConfig(), AnalyzeCallbacks{})
	if result.Ast == nil {
		t.Fatalf("expected a populated Ast")
	}
	if !result.Validation.IsValid {
		t.Errorf("expected a well-formed pattern to validate")
	}
	if result.Redos.Severity != "critical" {
		t.Errorf("expected the redos pass to flag the nested quantifier")
	}
	if result.Lint != nil || result.Explain != nil || result.Highlight != nil {
		t.Errorf("expected the out-of-scope collaborators to stay nil without callbacks")
	}
}

func TestAnalyzeRunsSuppliedCallbacks(t *testing.T) {
	cb := AnalyzeCallbacks{
		Lint: func(root *ast.Regex) LintResult {
			return "ok"
		},
	}
	result := Analyze(`/abc/`, DefaultConfig(), cb)
	if result.Lint != "ok" {
		t.Errorf("expected the supplied Lint callback to populate the result, got %v", result.Lint)
	}
}
