// Package pipeline sequences the typography stages over one document.
// Each stage is a pure tree-to-tree transform; stages compose by
// sequential application, not by shared state, and every stage is the
// identity when the active output format is not its target.
package pipeline

import (
	"github.com/dgallion1/typograph/internal/bib"
	"github.com/dgallion1/typograph/internal/doctree"
	"github.com/dgallion1/typograph/internal/typo"
)

// Stage is one tree-to-tree transform.
type Stage struct {
	Name  string
	Apply func(*doctree.Document, typo.Format) *doctree.Document
}

// Stages returns the transform sequence in application order. The
// slice is built per call so stages never share mutable state across
// documents.
func Stages() []Stage {
	return []Stage{
		{"pad-cjk", func(d *doctree.Document, _ typo.Format) *doctree.Document {
			return typo.PadCJK(d)
		}},
		{"swap-corners", typo.SwapCorners},
		{"remap-quotes", typo.RemapQuotes},
		{"pair-quotes", typo.PairQuotes},
		{"capitalize-bibliography", func(d *doctree.Document, _ typo.Format) *doctree.Document {
			return typo.CapitalizeBibliography(d)
		}},
		{"number-bibliography", func(d *doctree.Document, _ typo.Format) *doctree.Document {
			return bib.Number(d)
		}},
		{"prepare-headings", typo.PrepareHeadings},
		{"emit-headings", typo.EmitHeadings},
	}
}

// Transform runs the full stage sequence over one document for the
// given output format. The caller must own the tree: concurrent
// invocation is safe only across independent documents.
func Transform(doc *doctree.Document, f typo.Format) *doctree.Document {
	for _, stage := range Stages() {
		doc = stage.Apply(doc, f)
	}
	return doc
}
