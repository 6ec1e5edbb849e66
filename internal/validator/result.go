package validator

import "github.com/yoeunes/regexlab/internal/diag"

// Severity distinguishes a hard error from an informational note — both
// share the same Diagnostic shape, but only errors flip IsValid to false.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
	SeverityInfo  Severity = "info"
)

// Diagnostic is one finding from a single validator rule.
type Diagnostic struct {
	Code     string
	Severity Severity
	Category diag.Category
	Offset   int
	Snippet  string
	Hint     string
	Message  string
}

// Result is spec §4.5's ValidationResult: isValid, error?, errorCode,
// offset?, caretSnippet?, hint?, complexityScore, category. Error/ErrorCode/
// Offset/CaretSnippet/Hint mirror the first Diagnostic with Severity ==
// SeverityError (nil/zero when the pattern is valid); Diagnostics carries
// every finding, including informational ones, for callers that want more
// than spec's single-error summary.
type Result struct {
	IsValid         bool
	Error           *Diagnostic
	ErrorCode       string
	Offset          int
	CaretSnippet    string
	Hint            string
	ComplexityScore int
	Category        diag.Category
	Diagnostics     []Diagnostic
}

func buildResult(diags []Diagnostic, complexity int) Result {
	res := Result{
		IsValid:         true,
		ComplexityScore: complexity,
		Diagnostics:     diags,
	}
	for i := range diags {
		if diags[i].Severity == SeverityError {
			d := diags[i]
			res.IsValid = false
			res.Error = &d
			res.ErrorCode = d.Code
			res.Offset = d.Offset
			res.CaretSnippet = d.Snippet
			res.Hint = d.Hint
			res.Category = d.Category
			break
		}
	}
	if res.IsValid && len(diags) > 0 {
		res.Category = diags[0].Category
	}
	return res
}
