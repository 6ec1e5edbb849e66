package solver

import (
	"github.com/yoeunes/regexlab/internal/automaton/dfa"
	"github.com/yoeunes/regexlab/internal/diag"
)

type pair struct {
	l, r dfa.StateID
}

// bfsProduct explores the product automaton of l and r breadth-first from
// (l.Start, r.Start), stopping at the first pair goal accepts. Edges out
// of each dequeued pair are tried in ascending byte order and the queue is
// strict FIFO, which together guarantee the returned witness is shortest
// by byte length and, among ties, lexicographically smallest (spec
// §4.7.6's BFS contract).
func bfsProduct(l, r *dfa.Dfa, goal func(l, r dfa.StateID) bool, maxTransitions int) (bool, []byte, error) {
	start := pair{l.Start, r.Start}
	if goal(start.l, start.r) {
		return true, nil, nil
	}

	type queued struct {
		p      pair
		prefix []byte
	}
	visited := map[pair]bool{start: true}
	queue := []queued{{start, nil}}
	processed := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for b := 0; b < 256; b++ {
			processed++
			if processed > maxTransitions {
				return false, nil, diag.ComplexityErrorf(0, "solver exceeded the transitions-processed budget (%d)", maxTransitions)
			}
			byt := byte(b)
			next := pair{l.Step(cur.p.l, byt), r.Step(cur.p.r, byt)}
			if visited[next] {
				continue
			}
			visited[next] = true
			path := make([]byte, len(cur.prefix)+1)
			copy(path, cur.prefix)
			path[len(cur.prefix)] = byt
			if goal(next.l, next.r) {
				return true, path, nil
			}
			queue = append(queue, queued{next, path})
		}
	}
	return false, nil, nil
}
