package nfa

import "github.com/yoeunes/regexlab/internal/diag"

// ComplexityError is raised when a pattern escapes the regular subset spec
// §4.7.1 defines (lookarounds, backreferences, subroutines, conditionals,
// verbs, \K, Unicode property classes) or exceeds the state budget.
// Aliased onto the shared diag.ComplexityError so NFA, DFA, and solver
// callers compare against one type instead of three near-identical ones.
type ComplexityError = diag.ComplexityError

func errAt(offset int, format string, args ...any) *ComplexityError {
	return diag.ComplexityErrorf(offset, format, args...)
}
