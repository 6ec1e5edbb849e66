package dfa

import (
	"strconv"
	"strings"

	"github.com/yoeunes/regexlab/internal/diag"
)

// Minimize reduces d to its minimal equivalent automaton (spec §4.7.5),
// using whichever of the two interchangeable algorithms cfg.Algorithm
// selects. Both start from the same {accepting, non-accepting} partition
// and refine over d's compressed alphabet.
func Minimize(d *Dfa, cfg Config) (*Dfa, error) {
	switch cfg.Algorithm {
	case Moore:
		return minimizeMoore(d, cfg)
	default:
		return minimizeHopcroft(d, cfg)
	}
}

// minimizeMoore is the baseline: repeatedly refine the partition by state
// signature (its own block plus, for every symbol, the block its
// transition lands in) until the block count stops growing.
func minimizeMoore(d *Dfa, cfg Config) (*Dfa, error) {
	n := d.NumStates()
	if n == 0 {
		return d, nil
	}
	numClasses := len(d.Trans[0])

	block := make([]int, n)
	for s := 0; s < n; s++ {
		if d.Accepting[s] {
			block[s] = 1
		}
	}
	prevCount := 2

	processed := 0
	for {
		sig := make([]string, n)
		for s := 0; s < n; s++ {
			var sb strings.Builder
			sb.WriteString(strconv.Itoa(block[s]))
			for c := 0; c < numClasses; c++ {
				processed++
				if processed > cfg.MaxTransitionsProcessed {
					return nil, diag.ComplexityErrorf(0, "DFA minimization exceeded the transitions-processed budget (%d)", cfg.MaxTransitionsProcessed)
				}
				sb.WriteByte('|')
				sb.WriteString(strconv.Itoa(block[d.Trans[s][c]]))
			}
			sig[s] = sb.String()
		}

		sigToBlock := map[string]int{}
		newBlock := make([]int, n)
		next := 0
		for s := 0; s < n; s++ {
			id, ok := sigToBlock[sig[s]]
			if !ok {
				id = next
				sigToBlock[sig[s]] = id
				next++
			}
			newBlock[s] = id
		}
		block = newBlock
		if next == prevCount {
			break
		}
		prevCount = next
	}
	return rebuild(d, block), nil
}

// minimizeHopcroft is the default: a worklist of splitter blocks, each
// popped block's preimage under every symbol used to split any partition
// block it straddles. When the split block was already pending, both
// halves end up pending; otherwise only the smaller half is queued.
func minimizeHopcroft(d *Dfa, cfg Config) (*Dfa, error) {
	n := d.NumStates()
	if n == 0 {
		return d, nil
	}
	numClasses := len(d.Trans[0])

	var accepting, nonAccepting []StateID
	for s := 0; s < n; s++ {
		if d.Accepting[s] {
			accepting = append(accepting, StateID(s))
		} else {
			nonAccepting = append(nonAccepting, StateID(s))
		}
	}

	blocks := map[int][]StateID{}
	stateBlock := make([]int, n)
	nextID := 0
	inWorklist := map[int]bool{}
	var worklist []int

	addBlock := func(members []StateID) int {
		id := nextID
		nextID++
		blocks[id] = members
		for _, s := range members {
			stateBlock[s] = id
		}
		return id
	}
	enqueue := func(id int) {
		worklist = append(worklist, id)
		inWorklist[id] = true
	}

	if len(accepting) > 0 {
		enqueue(addBlock(accepting))
	}
	if len(nonAccepting) > 0 {
		enqueue(addBlock(nonAccepting))
	}

	processed := 0
	for len(worklist) > 0 {
		aID := worklist[0]
		worklist = worklist[1:]
		inWorklist[aID] = false
		aSet := make(map[StateID]bool, len(blocks[aID]))
		for _, s := range blocks[aID] {
			aSet[s] = true
		}

		for c := 0; c < numClasses; c++ {
			processed++
			if processed > cfg.MaxTransitionsProcessed {
				return nil, diag.ComplexityErrorf(0, "DFA minimization exceeded the transitions-processed budget (%d)", cfg.MaxTransitionsProcessed)
			}

			var x []StateID
			for s := 0; s < n; s++ {
				if aSet[d.Trans[s][c]] {
					x = append(x, StateID(s))
				}
			}
			if len(x) == 0 {
				continue
			}
			xSet := make(map[StateID]bool, len(x))
			for _, s := range x {
				xSet[s] = true
			}

			touched := map[int]bool{}
			for _, s := range x {
				touched[stateBlock[s]] = true
			}
			for yID := range touched {
				yMembers := blocks[yID]
				var y1, y2 []StateID
				for _, s := range yMembers {
					if xSet[s] {
						y1 = append(y1, s)
					} else {
						y2 = append(y2, s)
					}
				}
				if len(y1) == 0 || len(y2) == 0 {
					continue
				}
				blocks[yID] = y1
				for _, s := range y1 {
					stateBlock[s] = yID
				}
				y2ID := addBlock(y2)

				if inWorklist[yID] {
					enqueue(y2ID)
				} else if len(y1) <= len(y2) {
					enqueue(yID)
				} else {
					enqueue(y2ID)
				}
			}
		}
	}

	block := make([]int, n)
	for s := 0; s < n; s++ {
		block[s] = stateBlock[s]
	}
	return rebuild(d, block), nil
}

// rebuild collapses d's states according to block (a state->block-id
// assignment where block ids are contiguous from 0) into a new, smaller
// total Dfa.
func rebuild(d *Dfa, block []int) *Dfa {
	n := d.NumStates()
	numClasses := 0
	if n > 0 {
		numClasses = len(d.Trans[0])
	}
	numBlocks := 0
	rep := map[int]int{}
	for s := 0; s < n; s++ {
		b := block[s]
		if b+1 > numBlocks {
			numBlocks = b + 1
		}
		if _, ok := rep[b]; !ok {
			rep[b] = s
		}
	}

	out := &Dfa{
		Classes:   d.Classes,
		Trans:     make([][]StateID, numBlocks),
		Accepting: make([]bool, numBlocks),
		Start:     StateID(block[d.Start]),
		Dead:      StateID(block[d.Dead]),
	}
	for b := 0; b < numBlocks; b++ {
		s := rep[b]
		out.Accepting[b] = d.Accepting[s]
		out.Trans[b] = make([]StateID, numClasses)
		for c := 0; c < numClasses; c++ {
			out.Trans[b][c] = StateID(block[d.Trans[s][c]])
		}
	}
	return out
}
