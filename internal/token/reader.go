package token

import "fmt"

// UnmatchedDelimiterError reports a delimited regex literal whose opening
// delimiter was never closed.
type UnmatchedDelimiterError struct {
	Source    string
	Delimiter byte
}

func (e *UnmatchedDelimiterError) Error() string {
	return fmt.Sprintf("unmatched delimiter %q in %q", e.Delimiter, e.Source)
}

var pairedClosers = map[byte]byte{
	'{': '}',
	'(': ')',
	'[': ']',
	'<': '>',
}

// isDelimiterByte reports whether b is legal as an opening delimiter:
// non-alphanumeric, non-backslash, non-whitespace.
func isDelimiterByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return false
	case b >= 'a' && b <= 'z':
		return false
	case b >= 'A' && b <= 'Z':
		return false
	case b == '\\':
		return false
	case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v':
		return false
	}
	return true
}

// Split decomposes a delimited regex literal "/body/flags" (or the
// bracket-paired form "{body}flags") into its delimiter, body, closing
// delimiter, and flag string. The closing delimiter is found by scanning
// for its last unescaped occurrence, matching PCRE conventions: a
// backslash-escaped closing delimiter inside the body does not terminate
// it.
func Split(source string) (delimiter byte, body string, closing byte, flags string, err error) {
	if len(source) == 0 {
		return 0, "", 0, "", &UnmatchedDelimiterError{Source: source}
	}
	open := source[0]
	if !isDelimiterByte(open) {
		return 0, "", 0, "", &UnmatchedDelimiterError{Source: source, Delimiter: open}
	}
	close := open
	if paired, ok := pairedClosers[open]; ok {
		close = paired
	}

	rest := source[1:]
	idx := lastUnescaped(rest, close)
	if idx < 0 {
		return 0, "", 0, "", &UnmatchedDelimiterError{Source: source, Delimiter: open}
	}

	body = rest[:idx]
	flags = rest[idx+1:]
	return open, body, close, flags, nil
}

// lastUnescaped returns the byte offset of the last occurrence of target
// in s that is not itself escaped by an odd run of preceding backslashes.
func lastUnescaped(s string, target byte) int {
	last := -1
	for i := 0; i < len(s); i++ {
		if s[i] != target {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			last = i
		}
	}
	return last
}
