package redos

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/charset"
)

var asciiDigits = charset.New('0', '9')
var asciiWord = charset.Union(charset.Union(charset.New('a', 'z'), charset.New('A', 'Z')),
	charset.Union(asciiDigits, charset.Single('_')))
var asciiSpace = charset.FromRanges([]charset.Range{
	{Lo: ' ', Hi: ' '}, {Lo: '\t', Hi: '\t'}, {Lo: '\n', Hi: '\n'},
	{Lo: '\v', Hi: '\v'}, {Lo: '\f', Hi: '\f'}, {Lo: '\r', Hi: '\r'},
})

// mayMatchEmpty approximates whether n can match the empty string, the
// reachability primitive spec §4.6 names for the quantified-empty-match
// heuristic ((a?)+, (\b)+).
func mayMatchEmpty(n ast.Node) bool {
	switch x := n.(type) {
	case nil:
		return true
	case *ast.Sequence:
		for _, c := range x.Children {
			if !mayMatchEmpty(c) {
				return false
			}
		}
		return true
	case *ast.Alternation:
		for _, a := range x.Alternatives {
			if mayMatchEmpty(a) {
				return true
			}
		}
		return false
	case *ast.Quantifier:
		return x.Min == 0 || mayMatchEmpty(x.Target)
	case *ast.Group:
		return mayMatchEmpty(x.Child)
	case *ast.Conditional:
		return mayMatchEmpty(x.Yes) || (x.No != nil && mayMatchEmpty(x.No))
	case *ast.Literal:
		return len(x.Bytes) == 0
	case *ast.Dot, *ast.CharLiteral, *ast.CharType, *ast.CharClass, *ast.PosixClass, *ast.UnicodeProp:
		return false
	case *ast.Backref, *ast.Subroutine:
		// Length is not statically known; assume the worst (could match
		// empty) rather than under-reporting a real empty-match risk.
		return true
	default:
		return true
	}
}

// isAtomic reports whether n is an atomic group, the "mitigators" signal
// spec §4.6 names — atomic wrapping rules out the ambiguous backtracking
// a quantified-repetition heuristic is worried about.
func isAtomic(n ast.Node) bool {
	g, ok := n.(*ast.Group)
	if !ok {
		return false
	}
	if g.GroupType == ast.GroupAtomic {
		return true
	}
	return isAtomic(g.Child)
}

// characterSet approximates the set of bytes n can start matching with.
// Best-effort: constructs with no static byte guard (lookarounds,
// backreferences, subroutines) contribute the empty set rather than an
// error, since this is a heuristic overlap detector, not the automaton
// builder.
func characterSet(n ast.Node) charset.CharSet {
	switch x := n.(type) {
	case nil:
		return charset.Empty()
	case *ast.Sequence:
		cs := charset.Empty()
		for _, c := range x.Children {
			cs = charset.Union(cs, characterSet(c))
			if !mayMatchEmpty(c) {
				break
			}
		}
		return cs
	case *ast.Alternation:
		cs := charset.Empty()
		for _, a := range x.Alternatives {
			cs = charset.Union(cs, characterSet(a))
		}
		return cs
	case *ast.Quantifier:
		return characterSet(x.Target)
	case *ast.Group:
		switch x.GroupType {
		case ast.GroupLookaheadPositive, ast.GroupLookaheadNegative,
			ast.GroupLookbehindPositive, ast.GroupLookbehindNegative:
			return charset.Empty()
		}
		return characterSet(x.Child)
	case *ast.Literal:
		if len(x.Bytes) == 0 {
			return charset.Empty()
		}
		return charset.Single(x.Bytes[0])
	case *ast.CharLiteral:
		if x.CodePoint > 255 || x.CodePoint < 0 {
			return charset.Empty()
		}
		return charset.Single(byte(x.CodePoint))
	case *ast.Dot:
		return charset.Subtract(charset.Full(), charset.Single('\n'))
	case *ast.CharType:
		return charTypeApprox(x.Letter)
	case *ast.CharClass:
		inner := characterSet(x.Inner)
		if x.Negated {
			return charset.Complement(inner)
		}
		return inner
	case *ast.Range:
		lo, okLo := charset.SampleByte(characterSet(x.Start))
		hiSet := characterSet(x.End)
		rs := hiSet.Ranges()
		if !okLo || len(rs) == 0 {
			return charset.Empty()
		}
		return charset.New(lo, rs[len(rs)-1].Hi)
	case *ast.ClassOperation:
		left := characterSet(x.Left)
		right := characterSet(x.Right)
		if x.Kind_ == ast.ClassOpSubtraction {
			return charset.Subtract(left, right)
		}
		return charset.Intersect(left, right)
	case *ast.PosixClass:
		return posixApprox(x.Name)
	default:
		return charset.Empty()
	}
}

func charTypeApprox(letter byte) charset.CharSet {
	switch letter {
	case 'd':
		return asciiDigits
	case 'D':
		return charset.Complement(asciiDigits)
	case 'w':
		return asciiWord
	case 'W':
		return charset.Complement(asciiWord)
	case 's':
		return asciiSpace
	case 'S':
		return charset.Complement(asciiSpace)
	default:
		return charset.Empty()
	}
}

func posixApprox(name string) charset.CharSet {
	switch name {
	case "alpha":
		return charset.Union(charset.New('a', 'z'), charset.New('A', 'Z'))
	case "digit":
		return asciiDigits
	case "alnum":
		return charset.Union(charset.Union(charset.New('a', 'z'), charset.New('A', 'Z')), asciiDigits)
	case "space":
		return asciiSpace
	default:
		return charset.Empty()
	}
}
