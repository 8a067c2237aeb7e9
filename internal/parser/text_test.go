package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/typograph/internal/doctree"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(doc.Blocks))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		para, ok := doc.Blocks[i].(*doctree.Para)
		if !ok {
			t.Fatalf("block[%d]: expected *Para, got %T", i, doc.Blocks[i])
		}
		if got := doctree.Stringify(para.Inlines); got != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, got)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(doc.Blocks))
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("Hello world"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	para := doc.Blocks[0].(*doctree.Para)
	wantInlines := []doctree.Inline{
		&doctree.Text{Value: "Hello"},
		&doctree.Space{},
		&doctree.Text{Value: "world"},
	}
	if len(para.Inlines) != len(wantInlines) {
		t.Fatalf("expected %d inlines, got %d: %#v", len(wantInlines), len(para.Inlines), para.Inlines)
	}
	if got := doctree.Stringify(para.Inlines); got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
}

func TestSplitInlines_SoftBreaks(t *testing.T) {
	got := splitInlines("one two\nthree")
	want := []doctree.Inline{
		&doctree.Text{Value: "one"},
		&doctree.Space{},
		&doctree.Text{Value: "two"},
		&doctree.SoftBreak{},
		&doctree.Text{Value: "three"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d inlines, got %d: %#v", len(want), len(got), got)
	}
	if s := doctree.Stringify(got); s != "one two\nthree" {
		t.Errorf("round trip mismatch: %q", s)
	}
}
