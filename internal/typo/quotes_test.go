package typo

import (
	"testing"

	"github.com/dgallion1/typograph/internal/doctree"
)

func paraDoc(texts ...string) *doctree.Document {
	var inlines []doctree.Inline
	for _, s := range texts {
		inlines = append(inlines, &doctree.Text{Value: s})
	}
	return &doctree.Document{Blocks: []doctree.Block{&doctree.Para{Inlines: inlines}}}
}

func firstParaText(doc *doctree.Document) string {
	return doctree.Stringify(doc.Blocks[0].(*doctree.Para).Inlines)
}

func TestRemapQuotes_HTMLCornerBrackets(t *testing.T) {
	doc := paraDoc("“论语”与“孟子”的比较")
	RemapQuotes(doc, FormatHTML)
	want := "「论语」与「孟子」的比较"
	if got := firstParaText(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemapQuotes_LatinUntouched(t *testing.T) {
	doc := paraDoc("a “quoted” word")
	RemapQuotes(doc, FormatHTML)
	if got := firstParaText(doc); got != "a “quoted” word" {
		t.Errorf("Latin quotes changed: %q", got)
	}
}

func TestRemapQuotes_SingleQuotesNested(t *testing.T) {
	doc := paraDoc("他说‘论语’如此")
	RemapQuotes(doc, FormatEPUB)
	want := "他说『论语』如此"
	if got := firstParaText(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemapQuotes_NeighborFragment(t *testing.T) {
	// The quote mark sits alone at a fragment edge; classification must
	// fall through to the neighboring text node.
	doc := &doctree.Document{Blocks: []doctree.Block{&doctree.Para{
		Inlines: []doctree.Inline{
			&doctree.Text{Value: "“"},
			&doctree.Emph{Inlines: []doctree.Inline{&doctree.Text{Value: "论语"}}},
			&doctree.Text{Value: "”"},
		},
	}}}
	RemapQuotes(doc, FormatHTML)
	if got := firstParaText(doc); got != "「论语」" {
		t.Errorf("got %q, want %q", got, "「论语」")
	}
}

func TestRemapQuotes_LaTeXBibliographyOnly(t *testing.T) {
	body := &doctree.Para{Inlines: []doctree.Inline{&doctree.Text{Value: "“论语”正文"}}}
	bib := &doctree.Div{
		Attr: doctree.Attr{Classes: []string{"references"}},
		Blocks: []doctree.Block{&doctree.Para{
			Inlines: []doctree.Inline{&doctree.Text{Value: "“论语”条目"}},
		}},
	}
	doc := &doctree.Document{Blocks: []doctree.Block{body, bib}}
	RemapQuotes(doc, FormatLaTeX)

	if got := doctree.Stringify(body.Inlines); got != "“论语”正文" {
		t.Errorf("body changed outside bibliography: %q", got)
	}
	entry := bib.Blocks[0].(*doctree.Para)
	if got := doctree.Stringify(entry.Inlines); got != "«论语»条目" {
		t.Errorf("bibliography entry: got %q, want %q", got, "«论语»条目")
	}
}

func TestRemapQuotes_Idempotent(t *testing.T) {
	doc := paraDoc("“论语”与“hello”")
	RemapQuotes(doc, FormatHTML)
	first := firstParaText(doc)
	RemapQuotes(doc, FormatHTML)
	if got := firstParaText(doc); got != first {
		t.Errorf("second run changed output: %q -> %q", first, got)
	}
}

func TestSwapCorners(t *testing.T) {
	doc := paraDoc("「论语」与『孟子』")
	SwapCorners(doc, FormatLaTeX)
	want := "«论语»与‹孟子›"
	if got := firstParaText(doc); got != want {
		t.Errorf("latex: got %q, want %q", got, want)
	}

	doc = paraDoc("「论语」")
	SwapCorners(doc, FormatHTML)
	if got := firstParaText(doc); got != "「论语」" {
		t.Errorf("html must be identity, got %q", got)
	}
}

func TestPairQuotes_MixedScripts(t *testing.T) {
	doc := paraDoc("她说“你好”，然后说“hello”。")
	PairQuotes(doc, FormatTypst)
	want := "她说«你好»，然后说\"hello\"。"
	if got := firstParaText(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPairQuotes_SinglePair(t *testing.T) {
	doc := paraDoc("‘你好’ and ‘hi’")
	PairQuotes(doc, FormatTypst)
	want := "‹你好› and 'hi'"
	if got := firstParaText(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPairQuotes_NearestOpener(t *testing.T) {
	// A closer pairs with the nearest unmatched opener, so the outer
	// opener stays for the outer closer.
	doc := paraDoc("“外层“内层”外层”")
	PairQuotes(doc, FormatTypst)
	want := "«外层«内层»外层»"
	if got := firstParaText(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPairQuotes_UnmatchedLeftAlone(t *testing.T) {
	doc := paraDoc("“开始 without end")
	PairQuotes(doc, FormatTypst)
	if got := firstParaText(doc); got != "“开始 without end" {
		t.Errorf("unmatched opener changed: %q", got)
	}
}

func TestPairQuotes_ApostropheLeftAlone(t *testing.T) {
	doc := paraDoc("don’t stop")
	PairQuotes(doc, FormatTypst)
	if got := firstParaText(doc); got != "don’t stop" {
		t.Errorf("apostrophe changed: %q", got)
	}
}

func TestPairQuotes_OtherFormatsIdentity(t *testing.T) {
	doc := paraDoc("“你好”")
	PairQuotes(doc, FormatHTML)
	if got := firstParaText(doc); got != "“你好”" {
		t.Errorf("html must be identity, got %q", got)
	}
}

func TestPairQuotes_AcrossFragments(t *testing.T) {
	doc := paraDoc("“你", "好”")
	PairQuotes(doc, FormatTypst)
	if got := firstParaText(doc); got != "«你好»" {
		t.Errorf("got %q, want %q", got, "«你好»")
	}
}

func TestGroupQuotes(t *testing.T) {
	in := []doctree.Inline{
		&doctree.Text{Value: "The"},
		&doctree.Space{},
		&doctree.Text{Value: "“Analects”"},
		&doctree.Space{},
		&doctree.Text{Value: "Revisited"},
	}
	out := GroupQuotes(in)
	var quoted *doctree.Quoted
	for _, n := range out {
		if q, ok := n.(*doctree.Quoted); ok {
			quoted = q
		}
	}
	if quoted == nil {
		t.Fatalf("expected a Quoted node, got %#v", out)
	}
	if quoted.Kind != doctree.DoubleQuote {
		t.Errorf("kind: got %v", quoted.Kind)
	}
	if got := doctree.Stringify(quoted.Inlines); got != "Analects" {
		t.Errorf("content: got %q", got)
	}
}

func TestGroupQuotes_UnmatchedStaysLiteral(t *testing.T) {
	in := []doctree.Inline{&doctree.Text{Value: "“open only"}}
	out := GroupQuotes(in)
	for _, n := range out {
		if _, ok := n.(*doctree.Quoted); ok {
			t.Fatalf("unmatched mark must not form a Quoted node: %#v", out)
		}
	}
	if got := doctree.Stringify(out); got != "“open only" {
		t.Errorf("text changed: %q", got)
	}
}
