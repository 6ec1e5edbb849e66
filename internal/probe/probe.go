// Package probe implements spec §4.5's optional runtime cross-check: when
// a caller asks for it, the validator submits the whole pattern to a real
// regex engine as a compile-only probe, surfacing failures the static
// analysis can't (recursion, backreferences, and other constructs a
// backtracking-engine compiler itself rejects).
//
// github.com/dlclark/regexp2 is the host engine: unlike stdlib regexp
// (RE2, no backreferences or lookaround), regexp2 accepts the full .NET/PCRE-
// style feature set this library analyzes, making it the only pack
// dependency that can compile-check these patterns at all.
package probe

import "github.com/dlclark/regexp2"

// CompileError wraps the host engine's rejection of a pattern.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "runtime probe rejected pattern: " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }

// RuntimePcreValidation compiles body (without delimiters) against the
// flags string using regexp2, returning nil when the host engine accepts
// it and a *CompileError otherwise. It never executes the pattern against
// input — compilation only.
func RuntimePcreValidation(body, flags string) error {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		}
	}
	if _, err := regexp2.Compile(body, opts); err != nil {
		return &CompileError{Pattern: body, Err: err}
	}
	return nil
}
