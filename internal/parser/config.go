package parser

// Config bounds the parser's recursion and tolerates or rejects malformed
// input. Mirrors the teacher's habit of a small closed options struct
// (internal/renderer/styles.go's Config/DefaultConfig shape) rather than a
// long argument list.
type Config struct {
	// MaxRecursionDepth bounds alternation/sequence/group nesting.
	MaxRecursionDepth int

	// MaxPatternLength rejects oversized bodies before any token is read.
	MaxPatternLength int

	// Tolerant, when true, makes the parser record RecoverableErrors and
	// keep going, synchronizing at ')' and '|', instead of failing on the
	// first error.
	Tolerant bool
}

// DefaultConfig returns the parser's defaults.
func DefaultConfig() Config {
	return Config{
		MaxRecursionDepth: 1024,
		MaxPatternLength:  1 << 16,
		Tolerant:          false,
	}
}
