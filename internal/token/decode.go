package token

import "unicode/utf8"

// Codepoint-decoding helpers for the tokenizer's escape handling: hex
// (\xNN, \x{...}), legacy and braced octal (\NNN, \o{...}), and control
// characters (\cX). Adapted from the teacher's host-string-literal
// unescaper (internal/unescape/unescape.go), repurposed from decoding a
// Java/C# string literal's escapes into decoding a PCRE pattern's own
// codepoint escapes — the byte-level hex/octal arithmetic is the same
// shape, the caller and meaning differ.

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func hexToRune(s string) rune {
	var val rune
	for i := 0; i < len(s); i++ {
		val <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			val |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			val |= rune(c-'A') + 10
		}
	}
	if !utf8.ValidRune(val) {
		val = utf8.RuneError
	}
	return val
}

func octalToRune(s string) rune {
	var val rune
	for i := 0; i < len(s); i++ {
		val = val*8 + rune(s[i]-'0')
	}
	return val
}

// controlCharValue computes the byte produced by \cX: letters are
// uppercased first, then XOR'd with 0x40, following PCRE2's convention
// (\cA and \ca both -> 0x01, \c{ -> 0x3B, etc.).
func controlCharValue(x byte) byte {
	if x >= 'a' && x <= 'z' {
		x -= 'a' - 'A'
	}
	return x ^ 0x40
}
