package nfa

import "github.com/yoeunes/regexlab/internal/charset"

// WrapPartial rewrites n to model PARTIAL match-mode's search semantics:
// the accepted language becomes Σ* L Σ* instead of L (spec §4.7.6),
// splicing a "any byte" Kleene loop around both the existing start state
// and the existing match state rather than rebuilding the automaton from
// scratch.
func WrapPartial(n *Nfa, cfg Config) (*Nfa, error) {
	states := append([]State(nil), n.States...)
	add := func(s State) (StateID, error) {
		if len(states) >= cfg.MaxStates {
			return InvalidState, errAt(0, "NFA exceeds the configured state budget (%d) while wrapping for PARTIAL match mode", cfg.MaxStates)
		}
		states = append(states, s)
		return StateID(len(states) - 1), nil
	}

	matchID := InvalidState
	for i, st := range states {
		if st.Kind == KindMatch {
			matchID = StateID(i)
			break
		}
	}
	if matchID == InvalidState {
		return n, nil
	}

	any := charset.Full()

	prefixLoop, err := add(State{Kind: KindByteRange, Set: any, Next: InvalidState})
	if err != nil {
		return nil, err
	}
	prefixSplit, err := add(State{Kind: KindSplit, Left: prefixLoop, Right: n.Start})
	if err != nil {
		return nil, err
	}
	states[prefixLoop].Next = prefixSplit

	newMatch, err := add(State{Kind: KindMatch})
	if err != nil {
		return nil, err
	}
	suffixLoop, err := add(State{Kind: KindByteRange, Set: any, Next: InvalidState})
	if err != nil {
		return nil, err
	}
	suffixSplit, err := add(State{Kind: KindSplit, Left: suffixLoop, Right: newMatch})
	if err != nil {
		return nil, err
	}
	states[suffixLoop].Next = suffixSplit

	// The old match state is no longer a terminal: reaching it now feeds
	// the suffix loop-or-accept split.
	states[matchID] = State{Kind: KindEpsilon, Next: suffixSplit}

	return &Nfa{Start: prefixSplit, States: states}, nil
}
