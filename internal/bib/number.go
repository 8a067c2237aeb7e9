// Package bib groups and numbers bibliography entries: Western
// entries first in alphabetical order, Chinese entries after them,
// each entry prefixed with a width-aligned numeric label emitted for
// every output format at once.
package bib

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
	"github.com/dgallion1/typograph/internal/typo"
)

// Minimum separation between the numeric label and the entry text.
const labelGapEm = 0.5

// Approximate width of one label character in em.
const labelCharEm = 0.43

// Figure space (U+2007) pads word-processor labels so digits align.
const figureSpace = ' '

// Number sorts the entries of the first references container and
// prepends a numeric label to each. Chinese entries (detected by
// ideograph content) are grouped after Western ones; within each group
// entries sort by their flattened text. Pinyin collation for the
// Chinese group is left to the surrounding toolchain. Documents
// without a references container pass through unchanged.
func Number(doc *doctree.Document) *doctree.Document {
	refs := findReferences(doc.Blocks)
	if refs == nil {
		return doc
	}

	var western, chinese []*doctree.Div
	for _, b := range refs.Blocks {
		entry, ok := b.(*doctree.Div)
		if !ok || !entry.Attr.HasClass("csl-entry") {
			continue
		}
		if typo.ContainsCJK(doctree.StringifyBlocks(entry.Blocks)) {
			chinese = append(chinese, entry)
		} else {
			western = append(western, entry)
		}
	}
	if len(western)+len(chinese) == 0 {
		return doc
	}

	sort.SliceStable(western, func(i, j int) bool {
		return strings.ToLower(doctree.StringifyBlocks(western[i].Blocks)) <
			strings.ToLower(doctree.StringifyBlocks(western[j].Blocks))
	})
	sort.SliceStable(chinese, func(i, j int) bool {
		return doctree.StringifyBlocks(chinese[i].Blocks) <
			doctree.StringifyBlocks(chinese[j].Blocks)
	})

	entries := append(western, chinese...)
	maxLabelChars := len(fmt.Sprintf("[%d]", len(entries)))
	labelWidthEm := float64(maxLabelChars) * labelCharEm

	blocks := make([]doctree.Block, 0, len(entries))
	for i, entry := range entries {
		label := fmt.Sprintf("[%d]", i+1)
		prependLabel(entry, label, labelWidthEm, maxLabelChars)
		blocks = append(blocks, entry)
	}
	refs.Blocks = blocks
	return doc
}

func findReferences(blocks []doctree.Block) *doctree.Div {
	for _, b := range blocks {
		d, ok := b.(*doctree.Div)
		if !ok {
			continue
		}
		if d.Attr.HasClass("references") {
			return d
		}
		if inner := findReferences(d.Blocks); inner != nil {
			return inner
		}
	}
	return nil
}

// prependLabel inserts the label and a fixed gap at the start of the
// entry's first paragraph, one raw inline per output family.
func prependLabel(entry *doctree.Div, label string, widthEm float64, maxLabelChars int) {
	if len(entry.Blocks) == 0 {
		return
	}
	para, ok := entry.Blocks[0].(*doctree.Para)
	if !ok {
		return
	}

	inlines := labelInlines(label, widthEm, maxLabelChars)
	inlines = append(inlines, gapInlines(labelGapEm)...)
	para.Inlines = append(inlines, para.Inlines...)
}

// labelInlines renders a right-aligned, width-constrained label for
// each output family.
func labelInlines(label string, widthEm float64, maxLabelChars int) []doctree.Inline {
	w := fmt.Sprintf("%.4fem", widthEm)

	padded := label
	if pad := maxLabelChars - len(label); pad > 0 {
		padded = strings.Repeat(string(figureSpace), pad) + label
	}

	return []doctree.Inline{
		&doctree.RawInline{Format: "latex",
			Text: fmt.Sprintf(`\makebox[%s][r]{%s}`, w, label)},
		&doctree.RawInline{Format: "html",
			Text: fmt.Sprintf(`<span style="display:inline-block;width:%s;text-align:right;">%s</span>`, w, label)},
		&doctree.RawInline{Format: "openxml",
			Text: fmt.Sprintf(`<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, padded)},
	}
}

// gapInlines renders a fixed horizontal gap for each output family.
// Formats without precise width control get space characters at
// roughly four per em.
func gapInlines(em float64) []doctree.Inline {
	w := fmt.Sprintf("%.4fem", em)
	spaces := int(em * 4)
	if spaces < 1 {
		spaces = 1
	}
	return []doctree.Inline{
		&doctree.RawInline{Format: "latex",
			Text: fmt.Sprintf(`\hspace{%s}`, w)},
		&doctree.RawInline{Format: "html",
			Text: fmt.Sprintf(`<span style="display:inline-block;width:%s;"></span>`, w)},
		&doctree.RawInline{Format: "openxml",
			Text: fmt.Sprintf(`<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, strings.Repeat(" ", spaces))},
	}
}
