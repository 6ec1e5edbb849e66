// Package dfa implements spec §4.7.4's subset construction: turning a
// Thompson NFA into a total, deterministic automaton over a compressed
// byte alphabet, ready for minimization and for the solver's product
// construction.
package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yoeunes/regexlab/internal/automaton/nfa"
	"github.com/yoeunes/regexlab/internal/charset"
	"github.com/yoeunes/regexlab/internal/diag"
)

// StateID indexes into a Dfa's Trans/Accepting slices.
type StateID int

// Dfa is a total deterministic automaton over Classes' compressed
// alphabet: every (state, class) pair has a defined target, including the
// implicit Dead state spec §4.7.4 requires.
type Dfa struct {
	Classes   charset.Classes
	Trans     [][]StateID
	Accepting []bool
	Start     StateID
	Dead      StateID
}

// Step follows the transition for byte b from state s.
func (d *Dfa) Step(s StateID, b byte) StateID {
	return d.Trans[s][d.Classes.Get(b)]
}

// NumStates returns the number of states in the automaton.
func (d *Dfa) NumStates() int { return len(d.Trans) }

type worklistEntry struct {
	id  StateID
	set []nfa.StateID
}

// Build runs subset construction over n, deriving the transition alphabet
// from every byte-range guard n actually uses (spec's "compressed alphabet
// pass reused by both DFA construction and minimization").
func Build(n *nfa.Nfa, cfg Config) (*Dfa, error) {
	cb := charset.NewClassesBuilder()
	for _, st := range n.States {
		if st.Kind == nfa.KindByteRange {
			cb.Add(st.Set)
		}
	}
	classes := cb.Build()
	reps := classes.Representatives()

	d := &Dfa{Classes: classes}
	seen := map[string]StateID{}
	var worklist []worklistEntry

	canonical := func(set []nfa.StateID) (string, []nfa.StateID) {
		cp := append([]nfa.StateID(nil), set...)
		sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
		uniq := cp[:0]
		var last nfa.StateID = -1
		var first = true
		for _, s := range cp {
			if first || s != last {
				uniq = append(uniq, s)
				last = s
				first = false
			}
		}
		var sb strings.Builder
		for _, s := range uniq {
			sb.WriteString(strconv.Itoa(int(s)))
			sb.WriteByte(',')
		}
		return sb.String(), uniq
	}

	addState := func(set []nfa.StateID) (StateID, error) {
		key, sorted := canonical(set)
		if id, ok := seen[key]; ok {
			return id, nil
		}
		if len(d.Trans) >= cfg.MaxStates {
			return 0, diag.ComplexityErrorf(0, "DFA exceeds the configured state budget (%d)", cfg.MaxStates)
		}
		id := StateID(len(d.Trans))
		seen[key] = id
		d.Trans = append(d.Trans, make([]StateID, len(reps)))
		d.Accepting = append(d.Accepting, n.IsAccepting(sorted))
		worklist = append(worklist, worklistEntry{id: id, set: sorted})
		return id, nil
	}

	deadID, err := addState(nil)
	if err != nil {
		return nil, err
	}
	d.Dead = deadID

	startClosure := n.EpsilonClosure([]nfa.StateID{n.Start})
	startID, err := addState(startClosure)
	if err != nil {
		return nil, err
	}
	d.Start = startID

	processed := 0
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		for classIdx, rep := range reps {
			processed++
			if processed > cfg.MaxTransitionsProcessed {
				return nil, diag.ComplexityErrorf(0, "DFA construction exceeded the transitions-processed budget (%d)", cfg.MaxTransitionsProcessed)
			}
			moved := n.Move(cur.set, rep)
			closure := n.EpsilonClosure(moved)
			targetID, err := addState(closure)
			if err != nil {
				return nil, err
			}
			d.Trans[cur.id][classIdx] = targetID
		}
	}
	return d, nil
}
