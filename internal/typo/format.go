// Package typo corrects East-Asian/Western typography on a parsed
// document tree: quote-pair resolution and glyph remapping,
// bibliography capitalization, CJK/Latin spacing, and LaTeX heading
// regeneration. Every transform takes the whole tree and returns a
// tree of the same shape, mutated only in the targeted text and
// attribute fields.
package typo

import "fmt"

// Format identifies the output target for one document conversion.
// Every stage reads it at entry and becomes the identity transform
// when it does not apply.
type Format string

const (
	FormatHTML  Format = "html"
	FormatEPUB  Format = "epub"
	FormatLaTeX Format = "latex"
	FormatTypst Format = "typst"
	FormatDocx  Format = "docx"
)

// Formats lists all recognized output formats.
var Formats = []Format{FormatHTML, FormatEPUB, FormatLaTeX, FormatTypst, FormatDocx}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %q", s)
}

// typesetting reports whether the format is one of the typesetting
// markup targets (LaTeX or Typst).
func (f Format) typesetting() bool {
	return f == FormatLaTeX || f == FormatTypst
}

// markupLike reports whether the format renders to tag-based markup
// where CJK quotes conventionally use corner brackets.
func (f Format) markupLike() bool {
	return f == FormatHTML || f == FormatEPUB
}
