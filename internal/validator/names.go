package validator

import "github.com/yoeunes/regexlab/internal/ast"

// groupInfo records where a named or numbered capture was declared.
type groupInfo struct {
	name   string
	number int
	offset int
}

// nameRegistry is the gather-all-named-captures pass spec §4.5 requires
// before any reference can be resolved.
type nameRegistry struct {
	byName    map[string][]groupInfo
	maxNumber int
	allNames  []string
}

func buildNameRegistry(root ast.Node) *nameRegistry {
	reg := &nameRegistry{byName: map[string][]groupInfo{}}
	ast.Walk(root, func(n ast.Node) bool {
		g, ok := n.(*ast.Group)
		if !ok || g.Number == 0 {
			return true
		}
		if g.Number > reg.maxNumber {
			reg.maxNumber = g.Number
		}
		if g.GroupType == ast.GroupNamed && g.Name != "" {
			info := groupInfo{name: g.Name, number: g.Number, offset: g.Span().Start}
			reg.byName[g.Name] = append(reg.byName[g.Name], info)
			reg.allNames = append(reg.allNames, g.Name)
		}
		return true
	})
	return reg
}

func (r *nameRegistry) has(name string) bool {
	return len(r.byName[name]) > 0
}

// suggest finds the closest registered name within edit distance 1 of
// name, or "" if none qualifies.
func (r *nameRegistry) suggest(name string) string {
	best := ""
	for _, candidate := range r.allNames {
		if candidate == name {
			continue
		}
		if editDistance1(name, candidate) {
			best = candidate
			break
		}
	}
	return best
}

// editDistance1 reports whether a and b differ by a single insertion,
// deletion, or substitution. It is a small hand-rolled check rather than a
// general Levenshtein matrix because the spec only ever needs the
// distance-1 boundary for "did you mean" suggestions — no example repo in
// the corpus carries a string-distance library, so this stays on the
// standard library rather than inventing a dependency (see DESIGN.md).
func editDistance1(a, b string) bool {
	if a == b {
		return false
	}
	la, lb := len(a), len(b)
	if abs(la-lb) > 1 {
		return false
	}
	// Equal length: exactly one substitution.
	if la == lb {
		diffs := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diffs++
				if diffs > 1 {
					return false
				}
			}
		}
		return diffs == 1
	}
	// Off by one length: walk both, allow a single skip on the longer side.
	longer, shorter := a, b
	if lb > la {
		longer, shorter = b, a
	}
	i, j, skipped := 0, 0, false
	for i < len(longer) && j < len(shorter) {
		if longer[i] == shorter[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		i++
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
