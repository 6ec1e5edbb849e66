package solver

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/automaton/dfa"
	"github.com/yoeunes/regexlab/internal/automaton/nfa"
)

// Compile builds a minimized total DFA for root under opts' match mode,
// per spec §4.7.6: FULL models the exact-match language L; PARTIAL models
// Σ* L Σ* (search semantics), via nfa.WrapPartial before determinizing.
func Compile(root *ast.Regex, opts Options) (*dfa.Dfa, error) {
	nc := opts.NfaConfig
	if opts.MatchMode == Partial {
		nc.MatchMode = nfa.Partial
	} else {
		nc.MatchMode = nfa.Full
	}

	n, err := nfa.Build(root, nc)
	if err != nil {
		return nil, err
	}
	if opts.MatchMode == Partial {
		n, err = nfa.WrapPartial(n, nc)
		if err != nil {
			return nil, err
		}
	}

	d, err := dfa.Build(n, opts.DfaConfig)
	if err != nil {
		return nil, err
	}
	return dfa.Minimize(d, opts.DfaConfig)
}
