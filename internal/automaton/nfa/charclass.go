package nfa

import (
	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/charset"
)

var asciiDigits = charset.New('0', '9')

var asciiWord = charset.Union(charset.Union(charset.New('a', 'z'), charset.New('A', 'Z')),
	charset.Union(asciiDigits, charset.Single('_')))

var asciiHSpace = charset.FromRanges([]charset.Range{{' ', ' '}, {'\t', '\t'}})
var asciiVSpace = charset.FromRanges([]charset.Range{{'\n', '\n'}, {'\v', '\v'}, {'\f', '\f'}, {'\r', '\r'}})
var asciiSpace = charset.Union(asciiHSpace, asciiVSpace)

// charSetOf resolves a class-interior AST node (the members of a
// character class, or its range/operation combinators) into a CharSet.
// Only the byte-oriented subset spec §4.7.1 allows is supported; anything
// resting on Unicode semantics raises ComplexityError.
func charSetOf(n ast.Node) (charset.CharSet, error) {
	switch x := n.(type) {
	case *ast.Literal:
		cs := charset.Empty()
		for _, b := range x.Bytes {
			cs = charset.Union(cs, charset.Single(b))
		}
		return cs, nil
	case *ast.CharLiteral:
		if x.CodePoint > 255 {
			return charset.CharSet{}, errAt(x.Span().Start, "codepoint U+%X outside the byte-oriented automaton's range", x.CodePoint)
		}
		return charset.Single(byte(x.CodePoint)), nil
	case *ast.CharType:
		return charTypeSet(x)
	case *ast.PosixClass:
		cs, err := posixClassSet(x.Name)
		if err != nil {
			return charset.CharSet{}, errAt(x.Span().Start, "%s", err.Error())
		}
		if x.Negated {
			cs = charset.Complement(cs)
		}
		return cs, nil
	case *ast.UnicodeProp:
		return charset.CharSet{}, errAt(x.Span().Start, "Unicode property class \\p{%s} is outside the byte-oriented automaton's scope", x.Name)
	case *ast.Range:
		startSet, err := charSetOf(x.Start)
		if err != nil {
			return charset.CharSet{}, err
		}
		endSet, err := charSetOf(x.End)
		if err != nil {
			return charset.CharSet{}, err
		}
		lo, okLo := charset.SampleByte(startSet)
		hi, okHi := lastByte(endSet)
		if !okLo || !okHi {
			return charset.CharSet{}, errAt(x.Span().Start, "character class range endpoints must resolve to single bytes")
		}
		return charset.New(lo, hi), nil
	case *ast.ClassOperation:
		left, err := charSetOf(x.Left)
		if err != nil {
			return charset.CharSet{}, err
		}
		right, err := charSetOf(x.Right)
		if err != nil {
			return charset.CharSet{}, err
		}
		if x.Kind_ == ast.ClassOpSubtraction {
			return charset.Subtract(left, right), nil
		}
		return charset.Intersect(left, right), nil
	case *ast.Alternation:
		cs := charset.Empty()
		for _, alt := range x.Alternatives {
			member, err := charSetOf(alt)
			if err != nil {
				return charset.CharSet{}, err
			}
			cs = charset.Union(cs, member)
		}
		return cs, nil
	case *ast.CharClass:
		inner, err := charSetOf(x.Inner)
		if err != nil {
			return charset.CharSet{}, err
		}
		if x.Negated {
			inner = charset.Complement(inner)
		}
		return inner, nil
	default:
		return charset.CharSet{}, errAt(n.Span().Start, "unsupported character class member")
	}
}

func lastByte(cs charset.CharSet) (byte, bool) {
	rs := cs.Ranges()
	if len(rs) == 0 {
		return 0, false
	}
	return rs[len(rs)-1].Hi, true
}

func charTypeSet(ct *ast.CharType) (charset.CharSet, error) {
	switch ct.Letter {
	case 'd':
		return asciiDigits, nil
	case 'D':
		return charset.Complement(asciiDigits), nil
	case 'w':
		return asciiWord, nil
	case 'W':
		return charset.Complement(asciiWord), nil
	case 's':
		return asciiSpace, nil
	case 'S':
		return charset.Complement(asciiSpace), nil
	case 'h':
		return asciiHSpace, nil
	case 'H':
		return charset.Complement(asciiHSpace), nil
	case 'v':
		return asciiVSpace, nil
	case 'V':
		return charset.Complement(asciiVSpace), nil
	default:
		// \R (any linebreak sequence) and \X (grapheme cluster) can match
		// more than one byte as a unit; a single-byte CharSet can't model
		// that, so they escape the regular subset.
		return charset.CharSet{}, errAt(ct.Span().Start, "\\%c is not representable as a single-byte transition", ct.Letter)
	}
}

func posixClassSet(name string) (charset.CharSet, error) {
	switch name {
	case "alpha":
		return charset.Union(charset.New('a', 'z'), charset.New('A', 'Z')), nil
	case "digit":
		return asciiDigits, nil
	case "alnum":
		return charset.Union(charset.Union(charset.New('a', 'z'), charset.New('A', 'Z')), asciiDigits), nil
	case "upper":
		return charset.New('A', 'Z'), nil
	case "lower":
		return charset.New('a', 'z'), nil
	case "space":
		return asciiSpace, nil
	case "blank":
		return asciiHSpace, nil
	case "punct":
		return charset.Union(charset.New('!', '/'), charset.Union(charset.New(':', '@'),
			charset.Union(charset.New('[', '`'), charset.New('{', '~')))), nil
	case "cntrl":
		return charset.Union(charset.New(0, 0x1f), charset.Single(0x7f)), nil
	case "print":
		return charset.New(0x20, 0x7e), nil
	case "graph":
		return charset.New(0x21, 0x7e), nil
	case "xdigit":
		return charset.Union(asciiDigits, charset.Union(charset.New('a', 'f'), charset.New('A', 'F'))), nil
	default:
		return charset.CharSet{}, errAt(0, "unknown POSIX class [:%s:]", name)
	}
}

// applyCaseInsensitive unions every ASCII letter byte in cs with its case
// counterpart, per spec §4.7.1 ("each character set that contains an
// ASCII letter is union'd with its case counterpart").
func applyCaseInsensitive(cs charset.CharSet) charset.CharSet {
	out := cs
	for _, r := range cs.Ranges() {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			if b >= 'a' && b <= 'z' {
				out = charset.Union(out, charset.Single(byte(b-'a'+'A')))
			} else if b >= 'A' && b <= 'Z' {
				out = charset.Union(out, charset.Single(byte(b-'A'+'a')))
			}
		}
	}
	return out
}
