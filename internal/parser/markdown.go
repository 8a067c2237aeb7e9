package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/typograph/internal/doctree"
	"github.com/dgallion1/typograph/internal/typo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. The
// Typographer extension runs during parsing, so straight quotes reach
// the tree already as curly glyphs, the same shape the quote passes
// expect from word-processor input.
type MarkdownParser struct{}

// The Typographer defaults substitute HTML entities. The quote passes
// match Unicode glyphs, so the substitution table is overridden.
var typographerGlyphs = extension.NewTypographer(
	extension.WithTypographicSubstitutions(extension.TypographicSubstitutions{
		extension.LeftSingleQuote:  []byte("‘"),
		extension.RightSingleQuote: []byte("’"),
		extension.LeftDoubleQuote:  []byte("“"),
		extension.RightDoubleQuote: []byte("”"),
		extension.EnDash:           []byte("–"),
		extension.EmDash:           []byte("—"),
		extension.Ellipsis:         []byte("…"),
		extension.LeftAngleQuote:   []byte("«"),
		extension.RightAngleQuote:  []byte("»"),
		extension.Apostrophe:       []byte("’"),
	}),
)

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(typographerGlyphs),
		goldmark.WithParserOptions(gmparser.WithAttribute()),
	)
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{Title: titleFromFilename(filename)}
	doc.Blocks = convertBlocks(root, src)
	return doc, nil
}

func convertBlocks(parent ast.Node, src []byte) []doctree.Block {
	var out []doctree.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading:
			out = append(out, &doctree.Heading{
				Level: n.Level,
				Attr:  convertAttr(n),
				// Quoted spans in headings must survive as nodes so the
				// dual-representation pass can rewrite them per target.
				Inlines: typo.GroupQuotes(convertInlines(n, src)),
			})
		case *ast.Paragraph:
			out = append(out, &doctree.Para{Inlines: convertInlines(n, src)})
		case *ast.TextBlock:
			out = append(out, &doctree.Plain{Inlines: convertInlines(n, src)})
		case *ast.Blockquote:
			out = append(out, &doctree.BlockQuote{Blocks: convertBlocks(n, src)})
		case *ast.List:
			out = append(out, convertList(n, src))
		case *ast.FencedCodeBlock:
			attr := doctree.Attr{}
			if lang := n.Language(src); lang != nil {
				attr.Classes = []string{string(lang)}
			}
			out = append(out, &doctree.CodeBlock{Attr: attr, Text: blockLines(n, src)})
		case *ast.CodeBlock:
			out = append(out, &doctree.CodeBlock{Text: blockLines(n, src)})
		case *ast.HTMLBlock:
			raw := blockLines(n, src)
			if n.HasClosure() {
				raw += string(n.ClosureLine.Value(src))
			}
			out = append(out, &doctree.RawBlock{Format: "html", Text: raw})
		case *ast.ThematicBreak:
			// No tree representation; the passes have nothing to do with it.
		}
	}
	return out
}

func convertList(l *ast.List, src []byte) doctree.Block {
	var items [][]doctree.Block
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, convertBlocks(item, src))
	}
	if l.IsOrdered() {
		return &doctree.OrderedList{Start: l.Start, Items: items}
	}
	return &doctree.BulletList{Items: items}
}

func convertInlines(parent ast.Node, src []byte) []doctree.Inline {
	var out []doctree.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			out = appendProse(out, string(n.Segment.Value(src)))
			if n.HardLineBreak() {
				out = append(out, &doctree.LineBreak{})
			} else if n.SoftLineBreak() {
				out = append(out, &doctree.SoftBreak{})
			}
		case *ast.String:
			// Typographer output: curly quotes, dashes, ellipses.
			out = append(out, &doctree.Text{Value: string(n.Value)})
		case *ast.Emphasis:
			kids := convertInlines(n, src)
			if n.Level >= 2 {
				out = append(out, &doctree.Strong{Inlines: kids})
			} else {
				out = append(out, &doctree.Emph{Inlines: kids})
			}
		case *ast.CodeSpan:
			out = append(out, &doctree.Code{Text: codeSpanText(n, src)})
		case *ast.Link:
			out = append(out, &doctree.Link{
				URL:     string(n.Destination),
				Title:   string(n.Title),
				Inlines: convertInlines(n, src),
			})
		case *ast.AutoLink:
			url := string(n.URL(src))
			out = append(out, &doctree.Link{
				URL:     url,
				Inlines: []doctree.Inline{&doctree.Text{Value: string(n.Label(src))}},
			})
		case *ast.Image:
			out = append(out, &doctree.Image{
				URL:     string(n.Destination),
				Title:   string(n.Title),
				Inlines: convertInlines(n, src),
			})
		case *ast.RawHTML:
			var sb strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				sb.Write(seg.Value(src))
			}
			out = append(out, &doctree.RawInline{Format: "html", Text: sb.String()})
		}
	}
	return out
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}

func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

func convertAttr(n ast.Node) doctree.Attr {
	var a doctree.Attr
	for _, at := range n.Attributes() {
		name := string(at.Name)
		val := attrValueString(at.Value)
		switch name {
		case "id":
			a.ID = val
		case "class":
			a.Classes = strings.Fields(val)
		default:
			a.Set(name, val)
		}
	}
	return a
}

func attrValueString(v any) string {
	switch v := v.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// appendProse splits prose into word and space nodes, preserving the
// boundary whitespace that separates it from neighboring inline nodes.
func appendProse(out []doctree.Inline, s string) []doctree.Inline {
	if s == "" {
		return out
	}
	words := strings.Fields(s)
	first, _ := utf8.DecodeRuneInString(s)
	if unicode.IsSpace(first) {
		out = appendSpace(out)
	}
	for i, w := range words {
		if i > 0 {
			out = appendSpace(out)
		}
		out = append(out, &doctree.Text{Value: w})
	}
	if len(words) > 0 {
		last, _ := utf8.DecodeLastRuneInString(s)
		if unicode.IsSpace(last) {
			out = appendSpace(out)
		}
	}
	return out
}

func appendSpace(out []doctree.Inline) []doctree.Inline {
	if len(out) == 0 {
		return out
	}
	switch out[len(out)-1].(type) {
	case *doctree.Space, *doctree.SoftBreak, *doctree.LineBreak:
		return out
	}
	return append(out, &doctree.Space{})
}
