package typo

import "unicode/utf8"

// CJK Unified Ideographs block.
const (
	cjkLo = 0x4E00
	cjkHi = 0x9FFF
)

// ContainsCJK reports whether s contains at least one CJK ideograph.
// Malformed UTF-8 sequences classify as non-CJK so that broken input
// is left unchanged by the quote remapping passes.
func ContainsCJK(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		if r >= cjkLo && r <= cjkHi {
			return true
		}
		i += size
	}
	return false
}

func isCJKRune(r rune) bool {
	return r >= cjkLo && r <= cjkHi
}
