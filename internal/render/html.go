package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
	"golang.org/x/net/html"
)

// HTML serializes a document to an HTML fragment.
func HTML(doc *doctree.Document) string {
	var sb strings.Builder
	htmlBlocks(&sb, doc.Blocks)
	return sb.String()
}

func htmlAttr(a *doctree.Attr) string {
	var sb strings.Builder
	if a.ID != "" {
		fmt.Fprintf(&sb, ` id="%s"`, html.EscapeString(a.ID))
	}
	if len(a.Classes) > 0 {
		fmt.Fprintf(&sb, ` class="%s"`, html.EscapeString(strings.Join(a.Classes, " ")))
	}
	for _, kv := range a.KVs {
		fmt.Fprintf(&sb, ` data-%s="%s"`, kv.Key, html.EscapeString(kv.Value))
	}
	return sb.String()
}

func htmlBlocks(sb *strings.Builder, blocks []doctree.Block) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Para:
			sb.WriteString("<p>")
			htmlInlines(sb, b.Inlines)
			sb.WriteString("</p>\n")
		case *doctree.Plain:
			htmlInlines(sb, b.Inlines)
			sb.WriteByte('\n')
		case *doctree.Heading:
			level := b.Level
			if level < 1 {
				level = 1
			}
			if level > 6 {
				level = 6
			}
			fmt.Fprintf(sb, "<h%d%s>", level, htmlAttr(&b.Attr))
			htmlInlines(sb, b.Inlines)
			fmt.Fprintf(sb, "</h%d>\n", level)
		case *doctree.Div:
			fmt.Fprintf(sb, "<div%s>\n", htmlAttr(&b.Attr))
			htmlBlocks(sb, b.Blocks)
			sb.WriteString("</div>\n")
		case *doctree.BlockQuote:
			sb.WriteString("<blockquote>\n")
			htmlBlocks(sb, b.Blocks)
			sb.WriteString("</blockquote>\n")
		case *doctree.BulletList:
			sb.WriteString("<ul>\n")
			for _, item := range b.Items {
				sb.WriteString("<li>")
				htmlBlocks(sb, item)
				sb.WriteString("</li>\n")
			}
			sb.WriteString("</ul>\n")
		case *doctree.OrderedList:
			if b.Start > 1 {
				fmt.Fprintf(sb, "<ol start=\"%d\">\n", b.Start)
			} else {
				sb.WriteString("<ol>\n")
			}
			for _, item := range b.Items {
				sb.WriteString("<li>")
				htmlBlocks(sb, item)
				sb.WriteString("</li>\n")
			}
			sb.WriteString("</ol>\n")
		case *doctree.CodeBlock:
			sb.WriteString("<pre><code>")
			sb.WriteString(html.EscapeString(b.Text))
			sb.WriteString("</code></pre>\n")
		case *doctree.RawBlock:
			if b.Format == "html" {
				sb.WriteString(b.Text)
				sb.WriteByte('\n')
			}
		}
	}
}

func htmlInlines(sb *strings.Builder, inlines []doctree.Inline) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *doctree.Text:
			sb.WriteString(html.EscapeString(in.Value))
		case *doctree.Space:
			sb.WriteByte(' ')
		case *doctree.SoftBreak:
			sb.WriteByte('\n')
		case *doctree.LineBreak:
			sb.WriteString("<br />\n")
		case *doctree.Emph:
			sb.WriteString("<em>")
			htmlInlines(sb, in.Inlines)
			sb.WriteString("</em>")
		case *doctree.Strong:
			sb.WriteString("<strong>")
			htmlInlines(sb, in.Inlines)
			sb.WriteString("</strong>")
		case *doctree.SmallCaps:
			sb.WriteString(`<span class="smallcaps">`)
			htmlInlines(sb, in.Inlines)
			sb.WriteString("</span>")
		case *doctree.Span:
			fmt.Fprintf(sb, "<span%s>", htmlAttr(&in.Attr))
			htmlInlines(sb, in.Inlines)
			sb.WriteString("</span>")
		case *doctree.Quoted:
			if in.Kind == doctree.DoubleQuote {
				sb.WriteString("“")
				htmlInlines(sb, in.Inlines)
				sb.WriteString("”")
			} else {
				sb.WriteString("‘")
				htmlInlines(sb, in.Inlines)
				sb.WriteString("’")
			}
		case *doctree.Code:
			sb.WriteString("<code>")
			sb.WriteString(html.EscapeString(in.Text))
			sb.WriteString("</code>")
		case *doctree.Link:
			fmt.Fprintf(sb, `<a href="%s"`, html.EscapeString(in.URL))
			if in.Title != "" {
				fmt.Fprintf(sb, ` title="%s"`, html.EscapeString(in.Title))
			}
			sb.WriteByte('>')
			htmlInlines(sb, in.Inlines)
			sb.WriteString("</a>")
		case *doctree.Image:
			fmt.Fprintf(sb, `<img src="%s" alt="%s" />`,
				html.EscapeString(in.URL), html.EscapeString(doctree.Stringify(in.Inlines)))
		case *doctree.RawInline:
			if in.Format == "html" {
				sb.WriteString(in.Text)
			}
		}
	}
}
