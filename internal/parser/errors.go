package parser

import "github.com/yoeunes/regexlab/internal/diag"

// ErrorKind is the parser's closed set of raised failure kinds, aliased
// onto the shared diag taxonomy so parser, validator, and ReDoS callers
// can compare kinds without importing three different enums.
type ErrorKind = diag.Kind

const (
	ErrSyntax         = diag.KindSyntaxError
	ErrSemantic       = diag.KindSemanticError
	ErrRecursionLimit = diag.KindRecursionLimit
	ErrResourceLimit  = diag.KindResourceLimit
)

// ParseError is raised in strict mode and collected in tolerant mode.
type ParseError = diag.Error

func newParseError(kind ErrorKind, code string, body []byte, offset int, hint, message string) *ParseError {
	return diag.New(kind, code, body, offset, hint, message)
}
