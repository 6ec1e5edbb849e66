package token

// Token is one lexical unit: a kind tag, the raw source text it covers,
// a decoded semantic payload (meaning depends on Kind — a code letter, a
// group name, a class name, a numeric literal as text), and its byte
// span. Numeric payloads travel as strings and are converted by the
// parser with strconv, mirroring how a PEG-action grammar hands raw
// capture text to small conversion helpers.
type Token struct {
	Kind  Kind
	Text  string
	Value string
	Aux   string
	Start int
	End   int
}

func (t Token) Span() (start, end int) { return t.Start, t.End }
