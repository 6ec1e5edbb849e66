package nfa

import "github.com/yoeunes/regexlab/internal/ast"

// field selects which dangling pointer of a State a patch targets.
type field byte

const (
	fieldNext field = iota
	fieldLeft
	fieldRight
)

type dangling struct {
	state StateID
	field field
}

// frag is a partially built subgraph: one entry state and the list of
// dangling out-pointers still to be wired to whatever comes next. This is
// the classic Thompson-construction "fragment with patch list" — states
// are appended to the builder eagerly, and composing operators only ever
// rewrites Next/Left/Right on states already created.
type frag struct {
	start StateID
	out   []dangling
}

// Builder constructs an Nfa via repeated fragment composition. Grounded on
// _examples/coregx-coregex/nfa/builder.go's State-table/AddX shape,
// adapted from coregex's PikeVM-oriented builder (which targets execution)
// to a pure Thompson-construction builder whose only consumer is the
// subset-construction DFA builder in internal/automaton/dfa.
type Builder struct {
	states []State
	cfg    Config
}

// NewBuilder returns a Builder honoring cfg's state budget and options.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

func (b *Builder) add(s State) (StateID, error) {
	if len(b.states) >= b.cfg.MaxStates {
		return InvalidState, errAt(0, "NFA exceeds the configured state budget (%d)", b.cfg.MaxStates)
	}
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id, nil
}

func (b *Builder) patch(out []dangling, target StateID) {
	for _, d := range out {
		switch d.field {
		case fieldNext:
			b.states[d.state].Next = target
		case fieldLeft:
			b.states[d.state].Left = target
		case fieldRight:
			b.states[d.state].Right = target
		}
	}
}

// Build compiles root into an Nfa, per spec §4.7.1, and appends the single
// KindMatch state every dangling exit of the pattern is wired to.
func Build(root *ast.Regex, cfg Config) (*Nfa, error) {
	b := NewBuilder(cfg)
	f, err := b.build(root.Pattern)
	if err != nil {
		return nil, err
	}
	matchID, err := b.add(State{Kind: KindMatch})
	if err != nil {
		return nil, err
	}
	b.patch(f.out, matchID)
	return &Nfa{Start: f.start, States: b.states}, nil
}

func (b *Builder) build(n ast.Node) (frag, error) {
	switch x := n.(type) {
	case *ast.Sequence:
		return b.buildSequence(x)
	case *ast.Alternation:
		return b.buildAlternation(x)
	case *ast.Literal:
		return b.buildLiteralBytes(x)
	case *ast.CharLiteral, *ast.CharType, *ast.CharClass, *ast.PosixClass, *ast.UnicodeProp:
		cs, err := charSetOf(n)
		if err != nil {
			return frag{}, err
		}
		return b.buildByteSet(cs)
	case *ast.Dot:
		cs := dotCharSet(b.cfg.DotAll)
		return b.buildByteSet(cs)
	case *ast.Anchor:
		return b.buildAnchor(x)
	case *ast.Quantifier:
		return b.buildQuantifier(x)
	case *ast.Group:
		return b.buildGroup(x)
	case *ast.Comment:
		return b.buildEmpty()
	case *ast.Backref:
		return frag{}, errAt(x.Span().Start, "backreferences are outside the regular subset")
	case *ast.Subroutine:
		return frag{}, errAt(x.Span().Start, "subroutine/recursion calls are outside the regular subset")
	case *ast.Conditional:
		return frag{}, errAt(x.Span().Start, "conditional groups are outside the regular subset")
	case *ast.Define:
		return frag{}, errAt(x.Span().Start, "(?(DEFINE)...) is outside the regular subset")
	case *ast.PcreVerb:
		return frag{}, errAt(x.Span().Start, "backtracking-control verbs are outside the regular subset")
	case *ast.Callout:
		return frag{}, errAt(x.Span().Start, "callouts are outside the regular subset")
	case *ast.Keep:
		return frag{}, errAt(x.Span().Start, "\\K is outside the regular subset")
	case *ast.Assertion:
		return frag{}, errAt(x.Span().Start, "zero-width assertions other than ^/$ are outside the regular subset")
	case *ast.ScriptRun:
		return frag{}, errAt(x.Span().Start, "script-run groups are outside the regular subset")
	case *ast.VersionCondition:
		return frag{}, errAt(x.Span().Start, "version conditions are outside the regular subset")
	case *ast.LimitMatch:
		return b.buildEmpty()
	default:
		return frag{}, errAt(n.Span().Start, "unsupported node in automaton construction")
	}
}

func (b *Builder) buildEmpty() (frag, error) {
	id, err := b.add(State{Kind: KindEpsilon, Next: InvalidState})
	if err != nil {
		return frag{}, err
	}
	return frag{start: id, out: []dangling{{id, fieldNext}}}, nil
}

func (b *Builder) buildSequence(seq *ast.Sequence) (frag, error) {
	if len(seq.Children) == 0 {
		return b.buildEmpty()
	}
	result, err := b.build(seq.Children[0])
	if err != nil {
		return frag{}, err
	}
	for _, child := range seq.Children[1:] {
		next, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		b.patch(result.out, next.start)
		result = frag{start: result.start, out: next.out}
	}
	return result, nil
}

func (b *Builder) buildAlternation(alt *ast.Alternation) (frag, error) {
	if len(alt.Alternatives) == 0 {
		return b.buildEmpty()
	}
	result, err := b.build(alt.Alternatives[0])
	if err != nil {
		return frag{}, err
	}
	for _, branch := range alt.Alternatives[1:] {
		next, err := b.build(branch)
		if err != nil {
			return frag{}, err
		}
		splitID, err := b.add(State{Kind: KindSplit, Left: result.start, Right: next.start})
		if err != nil {
			return frag{}, err
		}
		result = frag{start: splitID, out: append(result.out, next.out...)}
	}
	return result, nil
}

func (b *Builder) buildLiteralBytes(lit *ast.Literal) (frag, error) {
	if len(lit.Bytes) == 0 {
		return b.buildEmpty()
	}
	result, err := b.buildOneByte(lit.Bytes[0])
	if err != nil {
		return frag{}, err
	}
	for _, byt := range lit.Bytes[1:] {
		next, err := b.buildOneByte(byt)
		if err != nil {
			return frag{}, err
		}
		b.patch(result.out, next.start)
		result = frag{start: result.start, out: next.out}
	}
	return result, nil
}
