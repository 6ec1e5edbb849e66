package dfa

// Algorithm selects the minimization strategy spec §4.7.5 offers.
type Algorithm int

const (
	// Hopcroft is the default: worklist refinement, O(n log n) typical.
	Hopcroft Algorithm = iota
	// Moore is the baseline partition-refinement algorithm, offered as
	// an interchangeable alternative per spec §4.7.5.
	Moore
)

// Config holds the subset-construction and minimization budgets from
// spec §4.7.4/§4.7.5.
type Config struct {
	MaxStates               int
	MaxTransitionsProcessed int
	Algorithm               Algorithm
}

// DefaultConfig returns maxDfaStates = 10000, Hopcroft minimization, per
// spec §6's configuration table and §4.7.5's stated default.
func DefaultConfig() Config {
	return Config{MaxStates: 10000, MaxTransitionsProcessed: 1_000_000, Algorithm: Hopcroft}
}
