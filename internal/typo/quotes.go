package typo

import (
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
)

// glyphMap holds the CJK quote convention for one output format.
// Tables are built per stage invocation, never shared mutable state.
type glyphMap struct {
	dblOpen, dblClose rune
	sglOpen, sglClose rune
}

func cornerGlyphs() glyphMap {
	return glyphMap{dblOpen: '「', dblClose: '」', sglOpen: '『', sglClose: '』'}
}

func guillemetGlyphs() glyphMap {
	return glyphMap{dblOpen: '«', dblClose: '»', sglOpen: '‹', sglClose: '›'}
}

func (g glyphMap) remap(r rune) rune {
	switch r {
	case '“':
		return g.dblOpen
	case '”':
		return g.dblClose
	case '‘':
		return g.sglOpen
	case '’':
		return g.sglClose
	}
	return r
}

// cornerToGuillemet is the straight character-class mapping applied to
// every text node for the typesetting targets, before any
// script-sensitive quote resolution. No exceptions, no classification.
var cornerToGuillemet = strings.NewReplacer(
	"「", "«", "」", "»", "『", "‹", "』", "›",
)

// SwapCorners rewrites corner-bracket quotes to guillemets for the
// typesetting targets. Identity for every other format.
func SwapCorners(doc *doctree.Document, f Format) *doctree.Document {
	if !f.typesetting() {
		return doc
	}
	doctree.WalkText(doc.Blocks, cornerToGuillemet.Replace)
	return doc
}

// RemapQuotes is the adjacency-mode resolver: each curly quote mark is
// remapped to the format's CJK convention when an immediately adjacent
// text fragment is CJK. It never needs a matching partner, so
// unmatched and nested quotes are tolerated. For HTML and EPUB it
// covers the whole document; for LaTeX only bibliography containers.
func RemapQuotes(doc *doctree.Document, f Format) *doctree.Document {
	switch {
	case f.markupLike():
		remapBlocks(doc.Blocks, cornerGlyphs(), false)
	case f == FormatLaTeX:
		remapBlocks(doc.Blocks, guillemetGlyphs(), true)
	}
	return doc
}

func remapBlocks(blocks []doctree.Block, g glyphMap, bibOnly bool) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Para:
			if !bibOnly {
				remapAdjacent(b.Inlines, g)
			}
		case *doctree.Plain:
			if !bibOnly {
				remapAdjacent(b.Inlines, g)
			}
		case *doctree.Heading:
			if !bibOnly {
				remapAdjacent(b.Inlines, g)
			}
		case *doctree.Div:
			if bibOnly && IsBibliography(&b.Attr) {
				remapBlocks(b.Blocks, g, false)
			} else {
				remapBlocks(b.Blocks, g, bibOnly)
			}
		case *doctree.BlockQuote:
			remapBlocks(b.Blocks, g, bibOnly)
		case *doctree.BulletList:
			for _, item := range b.Items {
				remapBlocks(item, g, bibOnly)
			}
		case *doctree.OrderedList:
			for _, item := range b.Items {
				remapBlocks(item, g, bibOnly)
			}
		}
	}
}

// remapAdjacent inspects, for every quote mark, the text before and
// after it; if either fragment contains CJK the mark is remapped.
// Only the single adjacent fragment is inspected, so a CJK word split
// across several fragments by an empty span can classify as Latin.
func remapAdjacent(inlines []doctree.Inline, g glyphMap) {
	texts := collectTexts(inlines)
	for ti, t := range texts {
		if !strings.ContainsAny(t.Value, "“”‘’") {
			continue
		}
		rs := []rune(t.Value)
		for i, r := range rs {
			if r != '“' && r != '”' && r != '‘' && r != '’' {
				continue
			}
			before := string(rs[:i])
			if before == "" && ti > 0 {
				before = texts[ti-1].Value
			}
			after := string(rs[i+1:])
			if after == "" && ti+1 < len(texts) {
				after = texts[ti+1].Value
			}
			if ContainsCJK(before) || ContainsCJK(after) {
				rs[i] = g.remap(r)
			}
		}
		t.Value = string(rs)
	}
}

// collectTexts flattens an inline sequence to its text runs in
// document order, descending into formatting wrappers.
func collectTexts(inlines []doctree.Inline) []*doctree.Text {
	var texts []*doctree.Text
	var walk func([]doctree.Inline)
	walk = func(ins []doctree.Inline) {
		for _, in := range ins {
			switch in := in.(type) {
			case *doctree.Text:
				texts = append(texts, in)
			case *doctree.Emph:
				walk(in.Inlines)
			case *doctree.Strong:
				walk(in.Inlines)
			case *doctree.SmallCaps:
				walk(in.Inlines)
			case *doctree.Span:
				walk(in.Inlines)
			case *doctree.Quoted:
				walk(in.Inlines)
			}
		}
	}
	walk(inlines)
	return texts
}

// pairGlyphs matches quote glyphs left to right: a closer pairs with
// the nearest unmatched opener of the same kind. Returns the partner
// index for each glyph, or -1 when none is found. Unmatched glyphs are
// a recoverable condition, never an error.
func pairGlyphs(glyphs []rune) []int {
	partner := make([]int, len(glyphs))
	for i := range partner {
		partner[i] = -1
	}
	var dbl, sgl []int
	for i, r := range glyphs {
		switch r {
		case '“':
			dbl = append(dbl, i)
		case '‘':
			sgl = append(sgl, i)
		case '”':
			if n := len(dbl); n > 0 {
				partner[dbl[n-1]] = i
				partner[i] = dbl[n-1]
				dbl = dbl[:n-1]
			}
		case '’':
			if n := len(sgl); n > 0 {
				partner[sgl[n-1]] = i
				partner[i] = sgl[n-1]
				sgl = sgl[:n-1]
			}
		}
	}
	return partner
}

// PairQuotes is the balanced-pairing resolver, used for the Typst
// target where correct nesting matters. Matched pairs enclosing CJK
// text are rewritten to guillemets (angle quotes for single pairs);
// Latin pairs are rewritten to straight ASCII quotes so the engine's
// own quote shaping takes over. Openers without a partner stay as
// they are.
func PairQuotes(doc *doctree.Document, f Format) *doctree.Document {
	if f != FormatTypst {
		return doc
	}
	pairBlocks(doc.Blocks)
	return doc
}

func pairBlocks(blocks []doctree.Block) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Para:
			pairInlines(b.Inlines)
		case *doctree.Plain:
			pairInlines(b.Inlines)
		case *doctree.Heading:
			pairInlines(b.Inlines)
		case *doctree.Div:
			pairBlocks(b.Blocks)
		case *doctree.BlockQuote:
			pairBlocks(b.Blocks)
		case *doctree.BulletList:
			for _, item := range b.Items {
				pairBlocks(item)
			}
		case *doctree.OrderedList:
			for _, item := range b.Items {
				pairBlocks(item)
			}
		}
	}
}

// quotePos addresses one quote glyph within the flattened top-level
// text of an inline sequence.
type quotePos struct {
	node int // index into the top-level text node list
	idx  int // rune index within that node
	r    rune
}

// pairInlines resolves quote pairs over the top-level text runs of one
// inline sequence. Text inside nested wrappers is not scanned; the
// enclosed span for classification is the literal top-level text
// strictly between the two marks.
func pairInlines(inlines []doctree.Inline) {
	var nodes []*doctree.Text
	for _, in := range inlines {
		if t, ok := in.(*doctree.Text); ok {
			nodes = append(nodes, t)
		}
	}
	if len(nodes) == 0 {
		return
	}

	runes := make([][]rune, len(nodes))
	var positions []quotePos
	for ni, t := range nodes {
		runes[ni] = []rune(t.Value)
		for i, r := range runes[ni] {
			switch r {
			case '“', '”', '‘', '’':
				positions = append(positions, quotePos{node: ni, idx: i, r: r})
			}
		}
	}
	if len(positions) == 0 {
		return
	}

	glyphs := make([]rune, len(positions))
	for i, p := range positions {
		glyphs[i] = p.r
	}
	partner := pairGlyphs(glyphs)

	for i, p := range positions {
		j := partner[i]
		if j < 0 || j < i {
			continue // unmatched, or already handled from the opener side
		}
		enclosed := textBetween(runes, p, positions[j])
		single := p.r == '‘'
		if ContainsCJK(enclosed) {
			if single {
				runes[p.node][p.idx] = '‹'
				runes[positions[j].node][positions[j].idx] = '›'
			} else {
				runes[p.node][p.idx] = '«'
				runes[positions[j].node][positions[j].idx] = '»'
			}
		} else {
			if single {
				runes[p.node][p.idx] = '\''
				runes[positions[j].node][positions[j].idx] = '\''
			} else {
				runes[p.node][p.idx] = '"'
				runes[positions[j].node][positions[j].idx] = '"'
			}
		}
	}

	for ni, t := range nodes {
		t.Value = string(runes[ni])
	}
}

func textBetween(runes [][]rune, open, close quotePos) string {
	var sb strings.Builder
	if open.node == close.node {
		sb.WriteString(string(runes[open.node][open.idx+1 : close.idx]))
		return sb.String()
	}
	sb.WriteString(string(runes[open.node][open.idx+1:]))
	for n := open.node + 1; n < close.node; n++ {
		sb.WriteString(string(runes[n]))
	}
	sb.WriteString(string(runes[close.node][:close.idx]))
	return sb.String()
}

// GroupQuotes folds matched curly-quote pairs in an inline sequence
// into Quoted nodes, preserving everything between them. The markdown
// parser applies it to heading content so the LaTeX heading generator
// sees structural quotes. Unmatched marks stay literal text.
func GroupQuotes(inlines []doctree.Inline) []doctree.Inline {
	toks := explodeQuotes(inlines)
	glyphs := make([]rune, len(toks))
	for i, tk := range toks {
		glyphs[i] = tk.glyph // 0 for non-glyph tokens, ignored by the pairer
	}
	partner := pairGlyphs(glyphs)
	out, _ := buildQuoted(toks, partner, 0, len(toks))
	return out
}

// quoteTok is either one quote glyph or an ordinary inline.
type quoteTok struct {
	in    doctree.Inline
	glyph rune
}

func explodeQuotes(inlines []doctree.Inline) []quoteTok {
	var toks []quoteTok
	for _, in := range inlines {
		t, ok := in.(*doctree.Text)
		if !ok || !strings.ContainsAny(t.Value, "“”‘’") {
			toks = append(toks, quoteTok{in: in})
			continue
		}
		var run []rune
		flush := func() {
			if len(run) > 0 {
				toks = append(toks, quoteTok{in: &doctree.Text{Value: string(run)}})
				run = run[:0]
			}
		}
		for _, r := range t.Value {
			switch r {
			case '“', '”', '‘', '’':
				flush()
				toks = append(toks, quoteTok{glyph: r})
			default:
				run = append(run, r)
			}
		}
		flush()
	}
	return toks
}

func buildQuoted(toks []quoteTok, partner []int, lo, hi int) ([]doctree.Inline, int) {
	var out []doctree.Inline
	for i := lo; i < hi; {
		tk := toks[i]
		if tk.glyph == 0 {
			out = append(out, tk.in)
			i++
			continue
		}
		j := partner[i]
		if j < 0 || j <= i || j >= hi {
			// Unmatched in this range: keep the glyph as literal text.
			out = append(out, &doctree.Text{Value: string(tk.glyph)})
			i++
			continue
		}
		kind := doctree.DoubleQuote
		if tk.glyph == '‘' {
			kind = doctree.SingleQuote
		}
		inner, _ := buildQuoted(toks, partner, i+1, j)
		out = append(out, &doctree.Quoted{Kind: kind, Inlines: inner})
		i = j + 1
	}
	return out, hi
}
