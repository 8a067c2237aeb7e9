package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
)

// EscapeTypst escapes text for Typst markup. Straight quotes are
// deliberately left unescaped so the engine's own smart-quote shaping
// applies to them.
func EscapeTypst(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '#', '$', '*', '_', '`', '@', '<', '>', '[', ']':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Typst serializes a document to Typst source.
func Typst(doc *doctree.Document) string {
	var sb strings.Builder
	typstBlocks(&sb, doc.Blocks)
	return sb.String()
}

func typstBlocks(sb *strings.Builder, blocks []doctree.Block) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Para:
			typstInlines(sb, b.Inlines)
			sb.WriteString("\n\n")
		case *doctree.Plain:
			typstInlines(sb, b.Inlines)
			sb.WriteByte('\n')
		case *doctree.Heading:
			level := b.Level
			if level < 1 {
				level = 1
			}
			sb.WriteString(strings.Repeat("=", level))
			sb.WriteByte(' ')
			typstInlines(sb, b.Inlines)
			if b.Attr.ID != "" {
				sb.WriteString(" <" + b.Attr.ID + ">")
			}
			sb.WriteString("\n\n")
		case *doctree.Div:
			typstBlocks(sb, b.Blocks)
		case *doctree.BlockQuote:
			sb.WriteString("#quote(block: true)[\n")
			typstBlocks(sb, b.Blocks)
			sb.WriteString("]\n\n")
		case *doctree.BulletList:
			for _, item := range b.Items {
				sb.WriteString("- ")
				typstBlocks(sb, item)
			}
			sb.WriteByte('\n')
		case *doctree.OrderedList:
			for _, item := range b.Items {
				sb.WriteString("+ ")
				typstBlocks(sb, item)
			}
			sb.WriteByte('\n')
		case *doctree.CodeBlock:
			sb.WriteString("```\n")
			sb.WriteString(b.Text)
			if !strings.HasSuffix(b.Text, "\n") {
				sb.WriteByte('\n')
			}
			sb.WriteString("```\n\n")
		case *doctree.RawBlock:
			if b.Format == "typst" {
				sb.WriteString(b.Text)
				sb.WriteString("\n\n")
			}
		}
	}
}

func typstInlines(sb *strings.Builder, inlines []doctree.Inline) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *doctree.Text:
			sb.WriteString(EscapeTypst(in.Value))
		case *doctree.Space:
			sb.WriteByte(' ')
		case *doctree.SoftBreak:
			sb.WriteByte('\n')
		case *doctree.LineBreak:
			sb.WriteString(" \\\n")
		case *doctree.Emph:
			sb.WriteString("_")
			typstInlines(sb, in.Inlines)
			sb.WriteString("_")
		case *doctree.Strong:
			sb.WriteString("*")
			typstInlines(sb, in.Inlines)
			sb.WriteString("*")
		case *doctree.SmallCaps:
			sb.WriteString("#smallcaps[")
			typstInlines(sb, in.Inlines)
			sb.WriteString("]")
		case *doctree.Span:
			sb.WriteString("#[")
			typstInlines(sb, in.Inlines)
			sb.WriteString("]")
		case *doctree.Quoted:
			// Straight quotes; the engine shapes them per locale.
			if in.Kind == doctree.DoubleQuote {
				sb.WriteByte('"')
				typstInlines(sb, in.Inlines)
				sb.WriteByte('"')
			} else {
				sb.WriteByte('\'')
				typstInlines(sb, in.Inlines)
				sb.WriteByte('\'')
			}
		case *doctree.Code:
			sb.WriteByte('`')
			sb.WriteString(in.Text)
			sb.WriteByte('`')
		case *doctree.Link:
			fmt.Fprintf(sb, "#link(%q)[", in.URL)
			typstInlines(sb, in.Inlines)
			sb.WriteString("]")
		case *doctree.Image:
			fmt.Fprintf(sb, "#image(%q)", in.URL)
		case *doctree.RawInline:
			if in.Format == "typst" {
				sb.WriteString(in.Text)
			}
		}
	}
}
