package typo

import (
	"unicode"

	"github.com/dgallion1/typograph/internal/doctree"
)

// Container classes recognized as bibliography content.
var bibClasses = []string{"references", "csl-bib-body", "csl-entry"}

// IsBibliography reports whether a container's class list marks it as
// bibliography content.
func IsBibliography(a *doctree.Attr) bool {
	for _, c := range bibClasses {
		if a.HasClass(c) {
			return true
		}
	}
	return false
}

// CapitalizeBibliography capitalizes the first letter of a word that
// follows a colon or em dash inside bibliography containers, the
// convention for English subtitle casing in reference lists. URLs,
// protocol prefixes, alphanumeric identifiers, and already-capitalized
// words never trigger a change. Re-running the pass on its own output
// is a no-op.
func CapitalizeBibliography(doc *doctree.Document) *doctree.Document {
	capitalizeBlocks(doc.Blocks, false)
	return doc
}

func capitalizeBlocks(blocks []doctree.Block, inBib bool) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Para:
			if inBib {
				b.Inlines, _ = capitalizeInlines(b.Inlines, false)
			}
		case *doctree.Plain:
			if inBib {
				b.Inlines, _ = capitalizeInlines(b.Inlines, false)
			}
		case *doctree.Div:
			capitalizeBlocks(b.Blocks, inBib || IsBibliography(&b.Attr))
		case *doctree.BlockQuote:
			capitalizeBlocks(b.Blocks, inBib)
		case *doctree.BulletList:
			for _, item := range b.Items {
				capitalizeBlocks(item, inBib)
			}
		case *doctree.OrderedList:
			for _, item := range b.Items {
				capitalizeBlocks(item, inBib)
			}
		}
	}
}

// capitalizeInlines is a single left-to-right pass over an inline
// sequence. The one piece of carried state is pending: "the next
// eligible word must be capitalized". Formatting wrappers are rebuilt
// by recursing with the current pending and propagating the returned
// value outward, so the flag threads across wrapper boundaries.
// Unrecognized nodes pass through unchanged and clear pending: no
// capitalization across an opaque boundary.
func capitalizeInlines(inlines []doctree.Inline, pending bool) ([]doctree.Inline, bool) {
	out := make([]doctree.Inline, 0, len(inlines))
	for _, in := range inlines {
		switch n := in.(type) {
		case *doctree.Text:
			s := capitalizeAfterMarks(n.Value)
			if pending {
				var consumed bool
				s, consumed = capitalizeFirst(s)
				if consumed {
					pending = false
				}
			}
			if endsWithTrigger(s) {
				pending = true
			}
			out = append(out, &doctree.Text{Value: s})
		case *doctree.Space, *doctree.SoftBreak, *doctree.LineBreak:
			out = append(out, in)
		case *doctree.Emph:
			var kids []doctree.Inline
			kids, pending = capitalizeInlines(n.Inlines, pending)
			out = append(out, &doctree.Emph{Inlines: kids})
		case *doctree.Strong:
			var kids []doctree.Inline
			kids, pending = capitalizeInlines(n.Inlines, pending)
			out = append(out, &doctree.Strong{Inlines: kids})
		case *doctree.SmallCaps:
			var kids []doctree.Inline
			kids, pending = capitalizeInlines(n.Inlines, pending)
			out = append(out, &doctree.SmallCaps{Inlines: kids})
		case *doctree.Span:
			var kids []doctree.Inline
			kids, pending = capitalizeInlines(n.Inlines, pending)
			out = append(out, &doctree.Span{Attr: n.Attr, Inlines: kids})
		case *doctree.Quoted:
			var kids []doctree.Inline
			kids, pending = capitalizeInlines(n.Inlines, pending)
			out = append(out, &doctree.Quoted{Kind: n.Kind, Inlines: kids})
		default:
			out = append(out, in)
			pending = false
		}
	}
	return out, pending
}

// capitalizeAfterMarks uppercases, within one fragment, the lowercase
// letter that follows a colon or em dash after a run of space or
// punctuation. The colon trigger needs a letter right before it (so
// identifiers like "e2105061118:" do not fire) and is suppressed when
// the run is empty or contains a slash ("http://", "a:b"). The em
// dash has no suppression.
func capitalizeAfterMarks(s string) string {
	rs := []rune(s)
	changed := false
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r != ':' && r != '—' {
			continue
		}
		if r == ':' && (i == 0 || !unicode.IsLetter(rs[i-1])) {
			continue
		}
		j := i + 1
		slash := false
		for j < len(rs) && isSkipRune(rs[j]) {
			if rs[j] == '/' {
				slash = true
			}
			j++
		}
		if r == ':' && (j == i+1 || slash) {
			continue
		}
		if j < len(rs) && unicode.IsLower(rs[j]) {
			rs[j] = unicode.ToUpper(rs[j])
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(rs)
}

// capitalizeFirst applies the first-word rule: strip leading space and
// punctuation, then capitalize the first word when it is a lowercase
// run of letters, apostrophes, and hyphens ending at a word boundary.
// The second result reports whether the pending flag was consumed. An
// already-capitalized word consumes without change; a token that fails
// eligibility (digit lead, alphanumeric identifier) leaves the flag
// for the next fragment.
func capitalizeFirst(s string) (string, bool) {
	rs := []rune(s)
	i := 0
	for i < len(rs) && isSkipRune(rs[i]) {
		i++
	}
	if i == len(rs) {
		return s, false
	}
	r := rs[i]
	if !unicode.IsLetter(r) {
		return s, false
	}
	j := i + 1
	for j < len(rs) && isWordRune(rs[j]) {
		j++
	}
	if j < len(rs) && !isSkipRune(rs[j]) {
		return s, false // identifier-like token, not a capitalizable word
	}
	if unicode.IsLower(r) {
		rs[i] = unicode.ToUpper(r)
		return string(rs), true
	}
	return s, true
}

// endsWithTrigger reports whether the fragment's tail, ignoring
// trailing space and punctuation, is itself a colon or em dash. The
// colon carries the same guards as capitalizeAfterMarks: a letter must
// precede it, and a slash in the trailing run suppresses it.
func endsWithTrigger(s string) bool {
	rs := []rune(s)
	slash := false
	for i := len(rs) - 1; i >= 0; i-- {
		r := rs[i]
		if r == '—' {
			return true
		}
		if r == ':' {
			return !slash && i > 0 && unicode.IsLetter(rs[i-1])
		}
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			if r == '/' {
				slash = true
			}
			continue
		}
		return false
	}
	return false
}

func isSkipRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '’' || r == '-'
}
