// Package solver decides equivalence, subset, and intersection between
// two regexes' modeled languages by building their DFAs and traversing
// the product automaton (spec §4.7.6). It never executes a regex against
// input; every answer is derived structurally from the two automata.
package solver

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/automaton/dfa"
)

// IntersectionResult answers whether two regexes can ever both match the
// same string.
type IntersectionResult struct {
	Empty   bool
	Witness string
}

// SubsetResult answers whether every string left's language accepts is
// also accepted by right's language.
type SubsetResult struct {
	Subset         bool
	CounterExample string
}

// EquivalenceResult answers whether left and right model the same
// language, with an independent witness per failing direction.
type EquivalenceResult struct {
	Equivalent   bool
	LeftNotRight string
	RightNotLeft string
}

// Intersection decides whether left and right's languages share any
// string, returning the shortest (lexicographically smallest among ties)
// such string as a witness when they do.
func Intersection(left, right *ast.Regex, opts Options) (IntersectionResult, error) {
	ldfa, err := Compile(left, opts)
	if err != nil {
		return IntersectionResult{}, err
	}
	rdfa, err := Compile(right, opts)
	if err != nil {
		return IntersectionResult{}, err
	}
	return intersectionOf(ldfa, rdfa, opts)
}

func intersectionOf(ldfa, rdfa *dfa.Dfa, opts Options) (IntersectionResult, error) {
	found, witness, err := bfsProduct(ldfa, rdfa, func(l, r dfa.StateID) bool {
		return ldfa.Accepting[l] && rdfa.Accepting[r]
	}, opts.MaxTransitionsProcessed)
	if err != nil {
		return IntersectionResult{}, err
	}
	return IntersectionResult{Empty: !found, Witness: string(witness)}, nil
}

// SubsetOf decides whether left's language is a subset of right's,
// returning a counter-example accepted by left but not right when it
// isn't (spec §4.7.6: computed via the product with right's complement).
func SubsetOf(left, right *ast.Regex, opts Options) (SubsetResult, error) {
	ldfa, err := Compile(left, opts)
	if err != nil {
		return SubsetResult{}, err
	}
	rdfa, err := Compile(right, opts)
	if err != nil {
		return SubsetResult{}, err
	}
	return subsetOfCompiled(ldfa, rdfa, opts)
}

func subsetOfCompiled(ldfa, rdfa *dfa.Dfa, opts Options) (SubsetResult, error) {
	rComplement := dfa.Complement(rdfa)
	found, witness, err := bfsProduct(ldfa, rComplement, func(l, r dfa.StateID) bool {
		return ldfa.Accepting[l] && rComplement.Accepting[r]
	}, opts.MaxTransitionsProcessed)
	if err != nil {
		return SubsetResult{}, err
	}
	return SubsetResult{Subset: !found, CounterExample: string(witness)}, nil
}

// Equivalent decides left == right as the conjunction of both subset
// directions, each with its own independent witness (spec §4.7.6).
func Equivalent(left, right *ast.Regex, opts Options) (EquivalenceResult, error) {
	ldfa, err := Compile(left, opts)
	if err != nil {
		return EquivalenceResult{}, err
	}
	rdfa, err := Compile(right, opts)
	if err != nil {
		return EquivalenceResult{}, err
	}

	lr, err := subsetOfCompiled(ldfa, rdfa, opts)
	if err != nil {
		return EquivalenceResult{}, err
	}
	rl, err := subsetOfCompiled(rdfa, ldfa, opts)
	if err != nil {
		return EquivalenceResult{}, err
	}

	return EquivalenceResult{
		Equivalent:   lr.Subset && rl.Subset,
		LeftNotRight: lr.CounterExample,
		RightNotLeft: rl.CounterExample,
	}, nil
}
