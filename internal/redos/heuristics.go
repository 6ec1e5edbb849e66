package redos

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/charset"
)

// finding is one heuristic detection before severities are reconciled
// into a single Analysis.
type finding struct {
	rule       string
	severity   Severity
	score      int
	confidence Confidence
	offset     int
	message    string
	mitigated  bool
}

func buildParents(root ast.Node) map[ast.Node]ast.Node {
	parents := map[ast.Node]ast.Node{}
	var rec func(n ast.Node)
	rec = func(n ast.Node) {
		for _, c := range ast.Children(n) {
			if c == nil {
				continue
			}
			parents[c] = n
			rec(c)
		}
	}
	rec(root)
	return parents
}

func hasAtomicAncestor(n ast.Node, parents map[ast.Node]ast.Node) bool {
	for p := parents[n]; p != nil; p = parents[p] {
		if g, ok := p.(*ast.Group); ok && g.GroupType == ast.GroupAtomic {
			return true
		}
	}
	return false
}

func isUnboundedQuantifier(n ast.Node) bool {
	q, ok := n.(*ast.Quantifier)
	return ok && q.Max == -1
}

func hasBackref(n ast.Node) bool {
	return ast.Find(n, func(x ast.Node) bool {
		_, ok := x.(*ast.Backref)
		return ok
	}) != nil
}

// detectStarHeight flags a quantifier whose target transitively contains
// another unbounded quantifier: (a+)+, (.*)*.
func detectStarHeight(root ast.Node, parents map[ast.Node]ast.Node) []finding {
	var out []finding
	ast.Walk(root, func(n ast.Node) bool {
		q, ok := n.(*ast.Quantifier)
		if !ok || q.Max != -1 {
			return true
		}
		if ast.Find(q.Target, isUnboundedQuantifier) == nil {
			return true
		}
		out = append(out, finding{
			rule:       "nested-unbounded-quantifier",
			severity:   SeverityCritical,
			score:      10,
			confidence: ConfidenceHigh,
			offset:     q.OperatorStart,
			message:    "a quantifier repeats a target that itself contains an unbounded quantifier; exponential backtracking on mismatch",
			mitigated:  q.Kind_ == ast.QuantPossessive || hasAtomicAncestor(q, parents) || isAtomic(q.Target),
		})
		return true
	})
	return out
}

// detectOverlappingAlternation flags an alternation under repetition
// whose branches share a non-empty accepting prefix: (a|aa)+.
func detectOverlappingAlternation(root ast.Node, parents map[ast.Node]ast.Node) []finding {
	var out []finding
	ast.Walk(root, func(n ast.Node) bool {
		q, ok := n.(*ast.Quantifier)
		if !ok || q.Max != -1 {
			return true
		}
		target := q.Target
		if g, ok := target.(*ast.Group); ok {
			target = g.Child
		}
		alt, ok := target.(*ast.Alternation)
		if !ok {
			return true
		}
		for i := 0; i < len(alt.Alternatives); i++ {
			for j := i + 1; j < len(alt.Alternatives); j++ {
				a := characterSet(alt.Alternatives[i])
				b := characterSet(alt.Alternatives[j])
				if charset.Intersect(a, b).IsEmpty() {
					continue
				}
				out = append(out, finding{
					rule:       "overlapping-alternation-under-repetition",
					severity:   SeverityHigh,
					score:      7,
					confidence: ConfidenceMedium,
					offset:     q.OperatorStart,
					message:    "quantified alternation branches share a common starting byte, letting the engine match the same input multiple ways",
					mitigated:  q.Kind_ == ast.QuantPossessive || hasAtomicAncestor(q, parents),
				})
				return true
			}
		}
		return true
	})
	return out
}

// detectBackrefInQuantifiedScope flags a quantifier whose target contains
// a backreference: (\w+)\1+.
func detectBackrefInQuantifiedScope(root ast.Node, parents map[ast.Node]ast.Node) []finding {
	var out []finding
	ast.Walk(root, func(n ast.Node) bool {
		q, ok := n.(*ast.Quantifier)
		if !ok || q.Max != -1 {
			return true
		}
		if !hasBackref(q.Target) {
			return true
		}
		out = append(out, finding{
			rule:       "backreference-in-quantified-scope",
			severity:   SeverityHigh,
			score:      7,
			confidence: ConfidenceMedium,
			offset:     q.OperatorStart,
			message:    "a repeated backreference can re-match a variable-length capture in more than one way, enabling ambiguous backtracking",
			mitigated:  q.Kind_ == ast.QuantPossessive || hasAtomicAncestor(q, parents),
		})
		return true
	})
	return out
}

// detectQuantifiedEmptyMatch flags an unbounded quantifier whose target
// can match the empty string: (a?)+, (\b)+.
func detectQuantifiedEmptyMatch(root ast.Node, parents map[ast.Node]ast.Node) []finding {
	var out []finding
	ast.Walk(root, func(n ast.Node) bool {
		q, ok := n.(*ast.Quantifier)
		if !ok || q.Max != -1 {
			return true
		}
		if !mayMatchEmpty(q.Target) {
			return true
		}
		out = append(out, finding{
			rule:       "quantified-empty-match-target",
			severity:   SeverityMedium,
			score:      4,
			confidence: ConfidenceMedium,
			offset:     q.OperatorStart,
			message:    "quantifier target can match the empty string, risking a highly ambiguous zero-width repetition",
			mitigated:  q.Kind_ == ast.QuantPossessive || hasAtomicAncestor(q, parents),
		})
		return true
	})
	return out
}

// detectAdjacentQuantifiers flags two adjacent quantified atoms in a
// sequence whose character sets overlap: a+a+, \w+\d+.
func detectAdjacentQuantifiers(root ast.Node, parents map[ast.Node]ast.Node) []finding {
	var out []finding
	ast.Walk(root, func(n ast.Node) bool {
		seq, ok := n.(*ast.Sequence)
		if !ok {
			return true
		}
		for i := 0; i+1 < len(seq.Children); i++ {
			a, okA := seq.Children[i].(*ast.Quantifier)
			b, okB := seq.Children[i+1].(*ast.Quantifier)
			if !okA || !okB {
				continue
			}
			if a.Max == 0 || a.Max == 1 || b.Max == 0 || b.Max == 1 {
				continue
			}
			setA, setB := characterSet(a.Target), characterSet(b.Target)
			if charset.Intersect(setA, setB).IsEmpty() {
				continue
			}
			out = append(out, finding{
				rule:       "ambiguous-adjacent-quantifiers",
				severity:   SeverityMedium,
				score:      4,
				confidence: ConfidenceLow,
				offset:     a.OperatorStart,
				message:    "two adjacent quantified atoms accept overlapping bytes, letting the engine redistribute the same input between them",
				mitigated:  a.Kind_ == ast.QuantPossessive || b.Kind_ == ast.QuantPossessive || hasAtomicAncestor(a, parents),
			})
		}
		return true
	})
	return out
}

// detectLargeBoundedRepeat flags a bounded {m,n} with n over the
// configured threshold.
func detectLargeBoundedRepeat(root ast.Node, cfg Config) []finding {
	var out []finding
	ast.Walk(root, func(n ast.Node) bool {
		q, ok := n.(*ast.Quantifier)
		if !ok || q.Max == -1 || q.Max <= cfg.LargeBoundedRepeat {
			return true
		}
		out = append(out, finding{
			rule:       "large-bounded-repeat",
			severity:   SeverityLow,
			score:      2,
			confidence: ConfidenceHigh,
			offset:     q.OperatorStart,
			message:    "bounded repeat count is unusually large, inflating backtracking cost even without ambiguity",
		})
		return true
	})
	return out
}
