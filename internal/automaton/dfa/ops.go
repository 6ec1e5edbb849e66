package dfa

// Complement returns a Dfa accepting exactly the strings d rejects, by
// flipping every state's accepting bit. d must already be total — which
// Build and Minimize always produce — so no transition needs to change.
func Complement(d *Dfa) *Dfa {
	accepting := make([]bool, len(d.Accepting))
	for i, a := range d.Accepting {
		accepting[i] = !a
	}
	return &Dfa{
		Classes:   d.Classes,
		Trans:     d.Trans,
		Accepting: accepting,
		Start:     d.Start,
		Dead:      d.Dead,
	}
}
