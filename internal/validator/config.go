package validator

// Config holds the validator's tunable budgets, grounded on the same
// DefaultConfig()-constructor shape the rest of this module uses
// (internal/parser.Config, internal/parser.DefaultConfig).
type Config struct {
	// MaxLookbehindLength bounds the statically computed maximum length of
	// any lookbehind alternative, unless overridden in-pattern by
	// (*LIMIT_LOOKBEHIND=n).
	MaxLookbehindLength int

	// TargetVersion gates version-dependent features (script runs, the
	// (?(VERSION>=n.n)) conditional, (?n:) PCRE2-version groups) against
	// the engine version the caller claims to target.
	TargetVersion string

	// RuntimeProbe enables the optional compile-only cross-check against
	// a real engine (internal/probe), surfaced with Category "runtime".
	RuntimeProbe bool
}

// DefaultConfig returns the validator defaults from spec §6's
// configuration table: maxLookbehindLength 255, no runtime probe.
func DefaultConfig() Config {
	return Config{
		MaxLookbehindLength: 255,
		TargetVersion:       "10.42",
		RuntimeProbe:        false,
	}
}
