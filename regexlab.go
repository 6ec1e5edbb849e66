// Package regexlab is the public facade spec §6 names: tokenize, parse,
// validate, redos, solve.intersection/subsetOf/equivalent, and analyze.
// It never executes a pattern against input — every operation is static
// analysis over the source text: lexing, parsing, semantic checking, a
// catastrophic-backtracking shape check, and byte-alphabet automata
// built from the parsed AST.
package regexlab

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/automaton/solver"
	"github.com/yoeunes/regexlab/internal/parser"
	"github.com/yoeunes/regexlab/internal/redos"
	"github.com/yoeunes/regexlab/internal/token"
	"github.com/yoeunes/regexlab/internal/validator"
)

// TokenStream is the flat token sequence tokenize(source) returns.
type TokenStream []token.Token

// Tokenize splits a delimited regex literal and lexes its body into a
// flat TokenStream, stopping at the first lexer error.
func Tokenize(source string) (TokenStream, error) {
	_, body, _, flags, err := token.Split(source)
	if err != nil {
		return nil, err
	}

	lx := token.NewLexer([]byte(body))
	if len(flags) > 0 {
		for i := 0; i < len(flags); i++ {
			if flags[i] == 'x' {
				lx.SetExtended(true)
			}
		}
	}

	var out TokenStream
	for {
		tok, err := lx.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.KEOF {
			return out, nil
		}
	}
}

// ParseResult is parse(source, tolerant)'s return shape: Ast is always
// populated on success or in tolerant mode with recoverable errors; Err
// is non-nil only for a fatal (non-tolerant, or resource-limit) failure.
type ParseResult struct {
	Ast    *ast.Regex
	Errors []*parser.ParseError
	Err    error
}

// Parse turns source into an AST. In tolerant mode a malformed pattern
// still returns a best-effort Ast plus the collected recoverable errors
// instead of failing outright.
func Parse(source string, tolerant bool, cfg Config) ParseResult {
	pcfg := cfg.Parser
	pcfg.Tolerant = tolerant
	root, errs, err := parser.Parse(source, pcfg)
	return ParseResult{Ast: root, Errors: errs, Err: err}
}

// Validate parses source and runs the semantic validator over the
// result, per spec §4.5. A parse failure is reported as a single
// error-severity ValidationResult rather than propagated as a Go error,
// matching spec's "validate never panics, always returns a result" rule.
func Validate(source string, cfg Config) validator.Result {
	root, errs, err := parser.Parse(source, cfg.Parser)
	if err != nil {
		return parseFailureResult(source, err)
	}
	if len(errs) > 0 {
		return parseFailureResult(source, errs[0])
	}
	return validator.Validate(root, []byte(source), cfg.Validator)
}

func parseFailureResult(source string, err error) validator.Result {
	diag := validator.Diagnostic{
		Code:     "regex.syntax.parse-failed",
		Severity: validator.SeverityError,
		Message:  err.Error(),
	}
	if pe, ok := err.(*parser.ParseError); ok {
		diag.Offset = pe.Offset
		diag.Snippet = pe.Snippet
		diag.Hint = pe.Hint
	}
	return validator.Result{
		IsValid:     false,
		Error:       &diag,
		ErrorCode:   diag.Code,
		Offset:      diag.Offset,
		Diagnostics: []validator.Diagnostic{diag},
	}
}

// Redos parses source and runs the ReDoS analyzer over the result, per
// spec §4.6. A pattern that fails to parse is reported safe with zero
// confidence rather than raised, since a malformed pattern can never
// reach a real backtracking engine to begin with.
func Redos(source string, cfg Config) redos.Analysis {
	root, errs, err := parser.Parse(source, cfg.Parser)
	if err != nil || len(errs) > 0 {
		return redos.Analysis{Severity: redos.SeveritySafe}
	}
	return redos.Analyze(root, []byte(source), source, cfg.Redos)
}

// Solve groups the three product-automaton queries spec §6 names as
// solve.intersection/subsetOf/equivalent, each taking two regex sources
// directly so a caller never touches internal/ast.
type Solve struct{ cfg Config }

// NewSolve binds a Config to the three solver operations.
func NewSolve(cfg Config) Solve { return Solve{cfg: cfg} }

func (s Solve) parseBoth(left, right string) (*ast.Regex, *ast.Regex, error) {
	l, errs, err := parser.Parse(left, s.cfg.Parser)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) > 0 {
		return nil, nil, errs[0]
	}
	r, errs, err := parser.Parse(right, s.cfg.Parser)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) > 0 {
		return nil, nil, errs[0]
	}
	return l, r, nil
}

// Intersection reports whether left and right's languages overlap,
// with the shortest (and lexicographically smallest among ties) witness
// string when they do.
func (s Solve) Intersection(left, right string, mode solver.MatchMode) (solver.IntersectionResult, error) {
	l, r, err := s.parseBoth(left, right)
	if err != nil {
		return solver.IntersectionResult{}, err
	}
	return solver.Intersection(l, r, s.cfg.solverOptions(mode))
}

// SubsetOf reports whether left's language is a subset of right's, with
// a counter-example accepted by left but not right otherwise.
func (s Solve) SubsetOf(left, right string, mode solver.MatchMode) (solver.SubsetResult, error) {
	l, r, err := s.parseBoth(left, right)
	if err != nil {
		return solver.SubsetResult{}, err
	}
	return solver.SubsetOf(l, r, s.cfg.solverOptions(mode))
}

// Equivalent reports whether left and right accept exactly the same
// language, with a witness for whichever direction fails first.
func (s Solve) Equivalent(left, right string, mode solver.MatchMode) (solver.EquivalenceResult, error) {
	l, r, err := s.parseBoth(left, right)
	if err != nil {
		return solver.EquivalenceResult{}, err
	}
	return solver.Equivalent(l, r, s.cfg.solverOptions(mode))
}

// LintResult, ExplainResult, and HighlightResult are the out-of-scope
// collaborators analyze() consults via stable callbacks (spec §6, §5
// Non-goals) — this module never implements them itself.
type LintResult any
type ExplainResult any
type HighlightResult any

// AnalyzeResult is analyze(source)'s combined shape: ast, validation,
// and redos are always populated; Lint/Explain/Highlight stay nil
// unless a caller supplies the matching callback, since those
// collaborators are explicitly out of scope here.
type AnalyzeResult struct {
	Ast        *ast.Regex
	Validation validator.Result
	Redos      redos.Analysis
	Lint       LintResult
	Explain    ExplainResult
	Highlight  HighlightResult
}

// AnalyzeCallbacks lets a caller wire in the excluded collaborators
// without this module depending on their implementations.
type AnalyzeCallbacks struct {
	Lint      func(*ast.Regex) LintResult
	Explain   func(*ast.Regex) ExplainResult
	Highlight func(*ast.Regex) HighlightResult
}

// Analyze runs parse, validate, and redos over source in one call, then
// consults any supplied AnalyzeCallbacks for the collaborators this
// module does not implement.
func Analyze(source string, cfg Config, cb AnalyzeCallbacks) AnalyzeResult {
	root, errs, err := parser.Parse(source, cfg.Parser)
	result := AnalyzeResult{Ast: root}
	if err != nil {
		result.Validation = parseFailureResult(source, err)
		result.Redos = redos.Analysis{Severity: redos.SeveritySafe}
		return result
	}
	if len(errs) > 0 {
		result.Validation = parseFailureResult(source, errs[0])
		result.Redos = redos.Analysis{Severity: redos.SeveritySafe}
		return result
	}

	result.Validation = validator.Validate(root, []byte(source), cfg.Validator)
	result.Redos = redos.Analyze(root, []byte(source), source, cfg.Redos)

	if cb.Lint != nil {
		result.Lint = cb.Lint(root)
	}
	if cb.Explain != nil {
		result.Explain = cb.Explain(root)
	}
	if cb.Highlight != nil {
		result.Highlight = cb.Highlight(root)
	}
	return result
}
