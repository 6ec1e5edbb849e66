// Package charset implements the byte-range set algebra spec §4.7.2 needs
// to translate character classes into automaton transitions: a CharSet is
// a sorted, non-overlapping, non-adjacent list of [lo, hi] byte ranges
// over the closed interval [0, 255].
//
// The automata core is explicitly byte-oriented, not Unicode-aware (spec
// Non-goals): multi-byte UTF-8 sequences and \p{...} properties are
// rejected by internal/automaton/nfa before reaching this package.
package charset

import "sort"

// Range is an inclusive byte range.
type Range struct {
	Lo, Hi byte
}

// CharSet is a canonical union of byte ranges: sorted by Lo, no two
// ranges overlap or touch (adjacent ranges are always merged).
type CharSet struct {
	ranges []Range
}

// Empty returns the empty set.
func Empty() CharSet { return CharSet{} }

// Full returns the set containing every byte 0..255.
func Full() CharSet { return CharSet{ranges: []Range{{0, 255}}} }

// Single returns the set containing exactly one byte.
func Single(b byte) CharSet { return CharSet{ranges: []Range{{b, b}}} }

// New returns the set containing exactly [lo, hi].
func New(lo, hi byte) CharSet {
	if lo > hi {
		lo, hi = hi, lo
	}
	return CharSet{ranges: []Range{{lo, hi}}}
}

// FromRanges builds a canonical CharSet from an arbitrary (possibly
// overlapping, unsorted) list of ranges.
func FromRanges(rs []Range) CharSet {
	var cs CharSet
	cs.ranges = append(cs.ranges, rs...)
	cs.normalize()
	return cs
}

// IsEmpty reports whether the set has no members.
func (cs CharSet) IsEmpty() bool { return len(cs.ranges) == 0 }

// Ranges returns the canonical range list. Callers must not mutate it.
func (cs CharSet) Ranges() []Range { return cs.ranges }

// Contains reports whether b is a member of cs.
func (cs CharSet) Contains(b byte) bool {
	lo, hi := 0, len(cs.ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := cs.ranges[mid]
		switch {
		case b < r.Lo:
			hi = mid - 1
		case b > r.Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// normalize sorts and merges overlapping/adjacent ranges in place.
func (cs *CharSet) normalize() {
	rs := cs.ranges
	if len(rs) == 0 {
		return
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Lo != rs[j].Lo {
			return rs[i].Lo < rs[j].Lo
		}
		return rs[i].Hi < rs[j].Hi
	})
	merged := rs[:1]
	for _, r := range rs[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi || (last.Hi < 255 && r.Lo == last.Hi+1) {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	cs.ranges = merged
}

// Union returns a ∪ b.
func Union(a, b CharSet) CharSet {
	rs := make([]Range, 0, len(a.ranges)+len(b.ranges))
	rs = append(rs, a.ranges...)
	rs = append(rs, b.ranges...)
	return FromRanges(rs)
}

// Intersect returns a ∩ b.
func Intersect(a, b CharSet) CharSet {
	var out []Range
	i, j := 0, 0
	for i < len(a.ranges) && j < len(b.ranges) {
		ra, rb := a.ranges[i], b.ranges[j]
		lo := max8(ra.Lo, rb.Lo)
		hi := min8(ra.Hi, rb.Hi)
		if lo <= hi {
			out = append(out, Range{lo, hi})
		}
		if ra.Hi < rb.Hi {
			i++
		} else {
			j++
		}
	}
	return FromRanges(out)
}

// Complement returns the set of every byte not in cs.
func Complement(cs CharSet) CharSet {
	var out []Range
	next := 0
	for _, r := range cs.ranges {
		if int(r.Lo) > next {
			out = append(out, Range{byte(next), r.Lo - 1})
		}
		next = int(r.Hi) + 1
	}
	if next <= 255 {
		out = append(out, Range{byte(next), 255})
	}
	return FromRanges(out)
}

// Subtract returns a \ b (every byte in a that isn't in b).
func Subtract(a, b CharSet) CharSet {
	return Intersect(a, Complement(b))
}

// Equal reports whether a and b contain exactly the same bytes.
func Equal(a, b CharSet) bool {
	if len(a.ranges) != len(b.ranges) {
		return false
	}
	for i := range a.ranges {
		if a.ranges[i] != b.ranges[i] {
			return false
		}
	}
	return true
}

// SampleByte returns one byte that is a member of cs, and ok=false if cs
// is empty. The byte returned is the smallest member. Used to resolve a
// class range's start endpoint to a single byte.
func SampleByte(cs CharSet) (byte, bool) {
	if cs.IsEmpty() {
		return 0, false
	}
	return cs.ranges[0].Lo, true
}

func max8(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}

func min8(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}
