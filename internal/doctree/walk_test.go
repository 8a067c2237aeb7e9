package doctree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalkText_RewritesProseOnly(t *testing.T) {
	blocks := []Block{
		&Para{Inlines: []Inline{
			&Text{Value: "hello"},
			&Space{},
			&Emph{Inlines: []Inline{&Text{Value: "world"}}},
			&Code{Text: "code"},
			&RawInline{Format: "latex", Text: "raw"},
			&Link{URL: "http://x", Inlines: []Inline{&Text{Value: "link"}}},
			&Image{URL: "img.png", Inlines: []Inline{&Text{Value: "alt"}}},
		}},
		&CodeBlock{Text: "block"},
		&Div{Blocks: []Block{
			&Plain{Inlines: []Inline{&Text{Value: "nested"}}},
		}},
	}

	WalkText(blocks, strings.ToUpper)

	want := []Block{
		&Para{Inlines: []Inline{
			&Text{Value: "HELLO"},
			&Space{},
			&Emph{Inlines: []Inline{&Text{Value: "WORLD"}}},
			&Code{Text: "code"},
			&RawInline{Format: "latex", Text: "raw"},
			&Link{URL: "http://x", Inlines: []Inline{&Text{Value: "link"}}},
			&Image{URL: "img.png", Inlines: []Inline{&Text{Value: "ALT"}}},
		}},
		&CodeBlock{Text: "block"},
		&Div{Blocks: []Block{
			&Plain{Inlines: []Inline{&Text{Value: "NESTED"}}},
		}},
	}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestStringify(t *testing.T) {
	inlines := []Inline{
		&Text{Value: "a"},
		&Space{},
		&Quoted{Kind: DoubleQuote, Inlines: []Inline{&Text{Value: "b"}}},
		&SoftBreak{},
		&Code{Text: "c"},
		&Link{URL: "http://x", Inlines: []Inline{&Text{Value: "d"}}},
	}
	want := "a “b”\ncd"
	if got := Stringify(inlines); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStringifyBlocks(t *testing.T) {
	blocks := []Block{
		&Para{Inlines: []Inline{&Text{Value: "one"}}},
		&Heading{Level: 1, Inlines: []Inline{&Text{Value: "two"}}},
		&BulletList{Items: [][]Block{
			{&Plain{Inlines: []Inline{&Text{Value: "three"}}}},
		}},
	}
	want := "one\n\ntwo\n\nthree"
	if got := StringifyBlocks(blocks); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAttr(t *testing.T) {
	a := Attr{Classes: []string{"x", "y"}}
	if !a.HasClass("y") || a.HasClass("z") {
		t.Errorf("HasClass misbehaves: %#v", a)
	}

	a.Set("k", "v1")
	a.Set("k", "v2")
	if v, ok := a.Get("k"); !ok || v != "v2" {
		t.Errorf("Get after Set: %q %v", v, ok)
	}
	if len(a.KVs) != 1 {
		t.Errorf("Set must replace, got %#v", a.KVs)
	}

	a.Unset("k")
	if _, ok := a.Get("k"); ok {
		t.Errorf("key survives Unset")
	}
}
