package regexlab

import (
	"github.com/yoeunes/regexlab/internal/automaton/dfa"
	"github.com/yoeunes/regexlab/internal/automaton/nfa"
	"github.com/yoeunes/regexlab/internal/automaton/solver"
	"github.com/yoeunes/regexlab/internal/parser"
	"github.com/yoeunes/regexlab/internal/redos"
	"github.com/yoeunes/regexlab/internal/validator"
)

// Config aggregates every sub-package's tunables behind one entry point,
// the same shape spec §6's configuration table describes — callers tune
// one struct rather than importing internal/parser, internal/validator,
// internal/redos, and internal/automaton/* directly.
type Config struct {
	Parser    parser.Config
	Validator validator.Config
	Redos     redos.Config
	Nfa       nfa.Config
	Dfa       dfa.Config
}

// DefaultConfig wires every sub-package's own DefaultConfig together.
func DefaultConfig() Config {
	return Config{
		Parser:    parser.DefaultConfig(),
		Validator: validator.DefaultConfig(),
		Redos:     redos.DefaultConfig(),
		Nfa:       nfa.DefaultConfig(),
		Dfa:       dfa.DefaultConfig(),
	}
}

// solverOptions projects the facade Config onto solver.Options for the
// given match mode, so Solve* callers only ever touch Config.
func (c Config) solverOptions(mode solver.MatchMode) solver.Options {
	return solver.Options{
		MatchMode:               mode,
		NfaConfig:               c.Nfa,
		DfaConfig:               c.Dfa,
		MaxTransitionsProcessed: c.Dfa.MaxTransitionsProcessed,
	}
}
