package validator

import "github.com/yoeunes/regexlab/internal/ast"

// lookbehindLength statically computes the maximum match length of a
// lookbehind alternative, per spec §4.5: '?' and '{m,n}' contribute n;
// '*', '+', and unbounded '{m,}' disqualify the alternative. Returns
// (length, bounded, disqualifier), where disqualifier is the specific
// subnode that broke boundedness (nil when bounded is true), so a caller
// can report an offset pointing at the actual offending construct rather
// than the enclosing lookbehind group.
func lookbehindLength(n ast.Node) (int, bool, ast.Node) {
	switch x := n.(type) {
	case *ast.Sequence:
		total := 0
		for _, c := range x.Children {
			l, ok, bad := lookbehindLength(c)
			if !ok {
				return 0, false, bad
			}
			total += l
		}
		return total, true, nil
	case *ast.Alternation:
		max := 0
		for _, alt := range x.Alternatives {
			l, ok, bad := lookbehindLength(alt)
			if !ok {
				return 0, false, bad
			}
			if l > max {
				max = l
			}
		}
		return max, true, nil
	case *ast.Literal:
		return len(x.Bytes), true, nil
	case *ast.CharLiteral, *ast.CharType, *ast.Dot, *ast.CharClass, *ast.UnicodeProp:
		return 1, true, nil
	case *ast.Anchor, *ast.Assertion, *ast.Keep, *ast.Comment, *ast.PcreVerb, *ast.Callout, *ast.LimitMatch:
		return 0, true, nil
	case *ast.Quantifier:
		if x.Max < 0 {
			return 0, false, x.Target // '*' , '+', or unbounded '{m,}'
		}
		inner, ok, bad := lookbehindLength(x.Target)
		if !ok {
			return 0, false, bad
		}
		return inner * x.Max, true, nil
	case *ast.Group:
		switch x.GroupType {
		case ast.GroupLookaheadPositive, ast.GroupLookaheadNegative,
			ast.GroupLookbehindPositive, ast.GroupLookbehindNegative:
			return 0, true, nil // zero-width, contributes nothing to the outer length
		}
		if x.Child == nil {
			return 0, true, nil
		}
		return lookbehindLength(x.Child)
	case *ast.Backref, *ast.Subroutine:
		// A backreference's matched length is not statically known; PCRE2
		// itself disqualifies these from fixed-length lookbehind support.
		return 0, false, x
	default:
		return 0, false, x
	}
}
