package nfa

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/charset"
)

func dotCharSet(dotAll bool) charset.CharSet {
	if dotAll {
		return charset.Full()
	}
	return charset.Subtract(charset.Full(), charset.Single('\n'))
}

func (b *Builder) buildOneByte(byt byte) (frag, error) {
	return b.buildByteSet(charset.Single(byt))
}

func (b *Builder) buildByteSet(cs charset.CharSet) (frag, error) {
	if b.cfg.CaseInsensitive {
		cs = applyCaseInsensitive(cs)
	}
	if cs.IsEmpty() {
		// An empty transition must never be added to the NFA (spec
		// §4.7.2); model it as a dead split state with no targets and no
		// dangling pointers, so nothing after it is reachable through it.
		id, err := b.add(State{Kind: KindSplit, Left: InvalidState, Right: InvalidState})
		if err != nil {
			return frag{}, err
		}
		return frag{start: id}, nil
	}
	id, err := b.add(State{Kind: KindByteRange, Set: cs, Next: InvalidState})
	if err != nil {
		return frag{}, err
	}
	return frag{start: id, out: []dangling{{id, fieldNext}}}, nil
}

func (b *Builder) buildAnchor(a *ast.Anchor) (frag, error) {
	if b.cfg.MatchMode != Full {
		return frag{}, errAt(a.Span().Start, "anchors are only modeled in FULL match mode")
	}
	return b.buildEmpty()
}

func (b *Builder) buildGroup(g *ast.Group) (frag, error) {
	switch g.GroupType {
	case ast.GroupCapturing, ast.GroupNonCapturing, ast.GroupNamed, ast.GroupAtomic, ast.GroupInlineFlags, ast.GroupBranchReset:
		// Captures and atomicity are irrelevant to the modeled language
		// (spec §4.7.1: "groups are treated as grouping only").
		if g.Child == nil {
			return b.buildEmpty()
		}
		return b.build(g.Child)
	case ast.GroupLookaheadPositive, ast.GroupLookaheadNegative,
		ast.GroupLookbehindPositive, ast.GroupLookbehindNegative:
		return frag{}, errAt(g.Span().Start, "lookaround assertions are outside the regular subset")
	default:
		return frag{}, errAt(g.Span().Start, "unsupported group type in automaton construction")
	}
}

// buildQuantifier implements the classic Thompson repetition constructs:
// '*' (star), '+' (plus), '?' (optional), and bounded/unbounded {m,n} via
// m mandatory copies followed by a star or a nested-optional tail.
// Possessive/lazy quantifiers model the same language as greedy ones —
// backtracking order only matters to a matching engine, which this
// package explicitly is not (spec §1).
func (b *Builder) buildQuantifier(q *ast.Quantifier) (frag, error) {
	build := func() (frag, error) { return b.build(q.Target) }

	switch {
	case q.Min == 0 && q.Max == -1:
		return b.star(build)
	case q.Min == 1 && q.Max == -1:
		return b.plus(build)
	case q.Min == 0 && q.Max == 1:
		return b.optional(build)
	case q.Max == -1:
		return b.atLeast(q.Min, build)
	default:
		return b.bounded(q.Min, q.Max, build)
	}
}

func (b *Builder) star(build func() (frag, error)) (frag, error) {
	inner, err := build()
	if err != nil {
		return frag{}, err
	}
	splitID, err := b.add(State{Kind: KindSplit, Left: inner.start, Right: InvalidState})
	if err != nil {
		return frag{}, err
	}
	b.patch(inner.out, splitID)
	return frag{start: splitID, out: []dangling{{splitID, fieldRight}}}, nil
}

func (b *Builder) plus(build func() (frag, error)) (frag, error) {
	inner, err := build()
	if err != nil {
		return frag{}, err
	}
	splitID, err := b.add(State{Kind: KindSplit, Left: inner.start, Right: InvalidState})
	if err != nil {
		return frag{}, err
	}
	b.patch(inner.out, splitID)
	return frag{start: inner.start, out: []dangling{{splitID, fieldRight}}}, nil
}

func (b *Builder) optional(build func() (frag, error)) (frag, error) {
	inner, err := build()
	if err != nil {
		return frag{}, err
	}
	splitID, err := b.add(State{Kind: KindSplit, Left: inner.start, Right: InvalidState})
	if err != nil {
		return frag{}, err
	}
	return frag{start: splitID, out: append(inner.out, dangling{splitID, fieldRight})}, nil
}

// atLeast builds {m,}: m-1 mandatory copies concatenated with a final
// plus-wrapped copy (m copies total, the last one repeatable), or a bare
// star when m == 0.
func (b *Builder) atLeast(m int, build func() (frag, error)) (frag, error) {
	if m == 0 {
		return b.star(build)
	}
	// m-1 plain mandatory copies, then a final copy wrapped in a plus
	// loop so it (and everything after it) can repeat.
	var head frag
	hasHead := m > 1
	if hasHead {
		var err error
		head, err = build()
		if err != nil {
			return frag{}, err
		}
		for i := 1; i < m-1; i++ {
			next, err := build()
			if err != nil {
				return frag{}, err
			}
			b.patch(head.out, next.start)
			head = frag{start: head.start, out: next.out}
		}
	}

	lastCopy, err := build()
	if err != nil {
		return frag{}, err
	}
	splitID, err := b.add(State{Kind: KindSplit, Left: lastCopy.start, Right: InvalidState})
	if err != nil {
		return frag{}, err
	}
	b.patch(lastCopy.out, splitID)
	tail := frag{start: lastCopy.start, out: []dangling{{splitID, fieldRight}}}

	if !hasHead {
		return tail, nil
	}
	b.patch(head.out, tail.start)
	return frag{start: head.start, out: tail.out}, nil
}

// bounded builds {m,n}: m mandatory copies, then (n-m) nested optional
// copies so that skipping one forces skipping every copy after it.
func (b *Builder) bounded(m, n int, build func() (frag, error)) (frag, error) {
	var mandatory frag
	var err error
	hasMandatory := m > 0
	if hasMandatory {
		mandatory, err = build()
		if err != nil {
			return frag{}, err
		}
		for i := 1; i < m; i++ {
			next, err := build()
			if err != nil {
				return frag{}, err
			}
			b.patch(mandatory.out, next.start)
			mandatory = frag{start: mandatory.start, out: next.out}
		}
	}

	extra := n - m
	if extra == 0 {
		if !hasMandatory {
			return b.buildEmpty()
		}
		return mandatory, nil
	}

	tail, err := b.nestedOptional(extra, build)
	if err != nil {
		return frag{}, err
	}
	if !hasMandatory {
		return tail, nil
	}
	b.patch(mandatory.out, tail.start)
	return frag{start: mandatory.start, out: tail.out}, nil
}

// nestedOptional builds k optional copies where taking copy i+1 requires
// having taken copy i, via right-fold wrapping.
func (b *Builder) nestedOptional(k int, build func() (frag, error)) (frag, error) {
	if k == 0 {
		return b.buildEmpty()
	}
	innerTail, err := b.nestedOptional(k-1, build)
	if err != nil {
		return frag{}, err
	}
	copyFrag, err := build()
	if err != nil {
		return frag{}, err
	}
	b.patch(copyFrag.out, innerTail.start)
	wrapped := frag{start: copyFrag.start, out: innerTail.out}
	splitID, serr := b.add(State{Kind: KindSplit, Left: wrapped.start, Right: InvalidState})
	if serr != nil {
		return frag{}, serr
	}
	return frag{start: splitID, out: append(append([]dangling{}, wrapped.out...), dangling{splitID, fieldRight})}, nil
}
