package nfa

import "github.com/yoeunes/regexlab/internal/charset"

// StateID indexes into an Nfa's States slice.
type StateID int

// InvalidState marks a not-yet-patched (dangling) transition target.
const InvalidState StateID = -1

// Kind distinguishes the handful of state shapes a Thompson construction
// ever produces.
type Kind int

const (
	KindByteRange Kind = iota
	KindEpsilon
	KindSplit
	KindMatch
)

// State is one node of the NFA graph. Fields unused by Kind are zero.
type State struct {
	Kind  Kind
	Set   charset.CharSet // KindByteRange: the guard
	Next  StateID         // KindByteRange / KindEpsilon
	Left  StateID         // KindSplit
	Right StateID         // KindSplit
}

// Nfa is spec §4.7.3's (startStateId, states[]) pair.
type Nfa struct {
	Start  StateID
	States []State
}

// EpsilonClosure returns the set of states reachable from any state in
// seed via zero or more epsilon/split transitions, including seed itself.
func (n *Nfa) EpsilonClosure(seed []StateID) []StateID {
	seen := map[StateID]bool{}
	var stack []StateID
	stack = append(stack, seed...)
	for _, s := range seed {
		seen[s] = true
	}
	var out []StateID
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, id)
		st := n.States[id]
		var next []StateID
		switch st.Kind {
		case KindEpsilon:
			if st.Next != InvalidState {
				next = append(next, st.Next)
			}
		case KindSplit:
			if st.Left != InvalidState {
				next = append(next, st.Left)
			}
			if st.Right != InvalidState {
				next = append(next, st.Right)
			}
		}
		for _, nx := range next {
			if !seen[nx] {
				seen[nx] = true
				stack = append(stack, nx)
			}
		}
	}
	return out
}

// Move returns every state directly reachable from any state in from by
// consuming byte b.
func (n *Nfa) Move(from []StateID, b byte) []StateID {
	var out []StateID
	for _, id := range from {
		st := n.States[id]
		if st.Kind == KindByteRange && st.Set.Contains(b) {
			out = append(out, st.Next)
		}
	}
	return out
}

// IsAccepting reports whether any state in the set is a KindMatch state.
func (n *Nfa) IsAccepting(set []StateID) bool {
	for _, id := range set {
		if n.States[id].Kind == KindMatch {
			return true
		}
	}
	return false
}
