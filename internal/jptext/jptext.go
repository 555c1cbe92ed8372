// Package jptext holds small helpers for Japanese-script text: counting
// Japanese code points and normalizing full-width digits.
package jptext

import "strings"

// CountJapanese returns the number of Japanese-script runes in s:
// Hiragana (U+3040–U+309F), Katakana (U+30A0–U+30FF) and CJK unified
// ideographs (U+4E00–U+9FFF). Latin text, digits and punctuation do not
// count, so a scanned PDF whose text layer holds only mojibake or layout
// artifacts scores near zero.
func CountJapanese(s string) int {
	n := 0
	for _, r := range s {
		if isJapanese(r) {
			n++
		}
	}
	return n
}

func isJapanese(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	}
	return false
}

// ToHalfWidth converts full-width ASCII forms (U+FF01–U+FF5E) to their
// half-width equivalents by the fixed -0xFEE0 offset. Other runes pass
// through unchanged. "１０倍" becomes "10倍".
func ToHalfWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0xFF01 && r <= 0xFF5E {
			r -= 0xFEE0
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDigits converts full-width digits in s to half-width and strips
// thousands separators (both "," and "，"). Used for yen amounts.
func NormalizeDigits(s string) string {
	s = ToHalfWidth(s)
	s = strings.ReplaceAll(s, ",", "")
	return s
}
