package bib

import (
	"strings"
	"testing"

	"github.com/dgallion1/typograph/internal/doctree"
)

func entry(text string) *doctree.Div {
	return &doctree.Div{
		Attr: doctree.Attr{Classes: []string{"csl-entry"}},
		Blocks: []doctree.Block{
			&doctree.Para{Inlines: []doctree.Inline{&doctree.Text{Value: text}}},
		},
	}
}

func refsDoc(entries ...*doctree.Div) (*doctree.Document, *doctree.Div) {
	refs := &doctree.Div{Attr: doctree.Attr{Classes: []string{"references"}}}
	for _, e := range entries {
		refs.Blocks = append(refs.Blocks, e)
	}
	return &doctree.Document{Blocks: []doctree.Block{refs}}, refs
}

func entryText(d *doctree.Div) string {
	return doctree.Stringify(d.Blocks[0].(*doctree.Para).Inlines)
}

func TestNumber_PartitionAndOrder(t *testing.T) {
	doc, refs := refsDoc(
		entry("王小明。书名。"),
		entry("Smith, John. A Title."),
		entry("Adams, Bob. Another."),
		entry("张三。另一本。"),
	)
	Number(doc)

	if len(refs.Blocks) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(refs.Blocks))
	}
	wantOrder := []string{
		"Adams, Bob. Another.",
		"Smith, John. A Title.",
		"张三。另一本。",
		"王小明。书名。",
	}
	for i, want := range wantOrder {
		got := entryText(refs.Blocks[i].(*doctree.Div))
		if !strings.HasSuffix(got, want) {
			t.Errorf("entry[%d]: got %q, want suffix %q", i, got, want)
		}
	}
}

func TestNumber_LabelInlines(t *testing.T) {
	doc, refs := refsDoc(entry("Only entry."))
	Number(doc)

	para := refs.Blocks[0].(*doctree.Div).Blocks[0].(*doctree.Para)
	if len(para.Inlines) < 7 {
		t.Fatalf("expected label and gap inlines prepended, got %d inlines", len(para.Inlines))
	}

	latex, ok := para.Inlines[0].(*doctree.RawInline)
	if !ok || latex.Format != "latex" {
		t.Fatalf("inline[0]: expected latex raw inline, got %#v", para.Inlines[0])
	}
	if !strings.Contains(latex.Text, `\makebox[`) || !strings.Contains(latex.Text, "{[1]}") {
		t.Errorf("latex label: got %q", latex.Text)
	}

	html, ok := para.Inlines[1].(*doctree.RawInline)
	if !ok || html.Format != "html" {
		t.Fatalf("inline[1]: expected html raw inline, got %#v", para.Inlines[1])
	}
	if !strings.Contains(html.Text, "inline-block") || !strings.Contains(html.Text, "[1]") {
		t.Errorf("html label: got %q", html.Text)
	}

	xml, ok := para.Inlines[2].(*doctree.RawInline)
	if !ok || xml.Format != "openxml" {
		t.Fatalf("inline[2]: expected openxml raw inline, got %#v", para.Inlines[2])
	}
	if !strings.Contains(xml.Text, "<w:r>") {
		t.Errorf("openxml label: got %q", xml.Text)
	}

	// Gap follows the label, one raw inline per family.
	gap, ok := para.Inlines[3].(*doctree.RawInline)
	if !ok || gap.Format != "latex" || !strings.Contains(gap.Text, `\hspace{0.5000em}`) {
		t.Errorf("gap: got %#v", para.Inlines[3])
	}
}

func TestNumber_LabelWidthFollowsCount(t *testing.T) {
	var entries []*doctree.Div
	for i := 0; i < 12; i++ {
		entries = append(entries, entry("Entry "+string(rune('a'+i))+"."))
	}
	doc, refs := refsDoc(entries...)
	Number(doc)

	// Twelve entries need "[12]": four label characters.
	para := refs.Blocks[0].(*doctree.Div).Blocks[0].(*doctree.Para)
	latex := para.Inlines[0].(*doctree.RawInline)
	if !strings.Contains(latex.Text, `\makebox[1.7200em][r]{[1]}`) {
		t.Errorf("label width: got %q", latex.Text)
	}

	// Word-processor labels pad short numbers with figure space.
	xml := para.Inlines[2].(*doctree.RawInline)
	if !strings.Contains(xml.Text, " [1]") {
		t.Errorf("openxml padding: got %q", xml.Text)
	}
}

func TestNumber_NoReferencesIsIdentity(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Para{Inlines: []doctree.Inline{&doctree.Text{Value: "body"}}},
	}}
	Number(doc)
	if len(doc.Blocks) != 1 {
		t.Fatalf("document changed without a references container")
	}
}

func TestNumber_NestedReferencesFound(t *testing.T) {
	refs := &doctree.Div{
		Attr:   doctree.Attr{Classes: []string{"references"}},
		Blocks: []doctree.Block{entry("Nested entry.")},
	}
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Div{Blocks: []doctree.Block{refs}},
	}}
	Number(doc)
	got := entryText(refs.Blocks[0].(*doctree.Div))
	if !strings.HasSuffix(got, "Nested entry.") {
		t.Errorf("entry text: %q", got)
	}
	para := refs.Blocks[0].(*doctree.Div).Blocks[0].(*doctree.Para)
	if _, ok := para.Inlines[0].(*doctree.RawInline); !ok {
		t.Errorf("nested references not numbered")
	}
}
