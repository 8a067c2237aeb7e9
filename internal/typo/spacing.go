package typo

import (
	"strings"
	"unicode"

	"github.com/dgallion1/typograph/internal/doctree"
	"golang.org/x/text/width"
)

// PadCJK inserts a plain space at every boundary between a CJK
// ideograph and an adjacent Latin letter or digit, and folds fullwidth
// alphanumerics to their halfwidth forms. Fullwidth CJK punctuation is
// left alone. Format-independent; runs before the quote passes.
func PadCJK(doc *doctree.Document) *doctree.Document {
	doctree.WalkText(doc.Blocks, padCJKText)
	return doc
}

func padCJKText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prev := rune(0)
	for _, r := range s {
		r = narrowAlnum(r)
		if prev != 0 && needsPad(prev, r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

// narrowAlnum folds a fullwidth letter or digit to its halfwidth form.
func narrowAlnum(r rune) rune {
	p := width.LookupRune(r)
	if p.Kind() != width.EastAsianFullwidth {
		return r
	}
	n := p.Narrow()
	if n != 0 && (unicode.IsLetter(n) || unicode.IsDigit(n)) && !isCJKRune(n) {
		return n
	}
	return r
}

func needsPad(a, b rune) bool {
	return (isCJKRune(a) && isLatinWord(b)) || (isLatinWord(a) && isCJKRune(b))
}

func isLatinWord(r rune) bool {
	return r < 0x2E80 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
