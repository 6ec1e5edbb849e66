package solver

import (
	"github.com/yoeunes/regexlab/internal/automaton/dfa"
	"github.com/yoeunes/regexlab/internal/automaton/nfa"
)

// MatchMode mirrors nfa.MatchMode at the solver's public boundary so
// callers never need to import internal/automaton/nfa directly.
type MatchMode int

const (
	Full MatchMode = iota
	Partial
)

// Options configures both DFAs a solver operation builds.
type Options struct {
	MatchMode              MatchMode
	NfaConfig              nfa.Config
	DfaConfig              dfa.Config
	MaxTransitionsProcessed int
}

// DefaultOptions returns FULL match mode with the nfa/dfa packages'
// default budgets and a one-million-transition BFS budget.
func DefaultOptions() Options {
	return Options{
		MatchMode:               Full,
		NfaConfig:                nfa.DefaultConfig(),
		DfaConfig:                dfa.DefaultConfig(),
		MaxTransitionsProcessed: 1_000_000,
	}
}
