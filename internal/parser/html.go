package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. It keeps the block structure the
// typography passes depend on, in particular div classes, which mark
// bibliography containers.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &doctree.Document{Title: titleFromFilename(filename)}
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	body := findBody(root)
	if body == nil {
		body = root
	}
	doc.Blocks = htmlBlocks(body)
	return doc, nil
}

func htmlBlocks(n *html.Node) []doctree.Block {
	var out []doctree.Block
	var pending []doctree.Inline

	flush := func() {
		pending = trimInlines(pending)
		if len(pending) > 0 {
			out = append(out, &doctree.Para{Inlines: pending})
		}
		pending = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			pending = appendProse(pending, c.Data)
			continue
		}
		if c.Type != html.ElementNode {
			continue
		}
		if level := headingLevel(c.Data); level > 0 {
			flush()
			out = append(out, &doctree.Heading{
				Level:   level,
				Attr:    htmlNodeAttr(c),
				Inlines: trimInlines(htmlInlines(c)),
			})
			continue
		}
		switch c.Data {
		case "script", "style", "nav", "head":
			// Not content.
		case "p":
			flush()
			out = append(out, &doctree.Para{Inlines: trimInlines(htmlInlines(c))})
		case "div", "section", "article", "main":
			flush()
			out = append(out, &doctree.Div{Attr: htmlNodeAttr(c), Blocks: htmlBlocks(c)})
		case "blockquote":
			flush()
			out = append(out, &doctree.BlockQuote{Blocks: htmlBlocks(c)})
		case "ul":
			flush()
			out = append(out, &doctree.BulletList{Items: htmlListItems(c)})
		case "ol":
			flush()
			ol := &doctree.OrderedList{Start: 1, Items: htmlListItems(c)}
			if v := attrValue(c, "start"); v != "" {
				fmt.Sscanf(v, "%d", &ol.Start)
			}
			out = append(out, ol)
		case "pre":
			flush()
			out = append(out, &doctree.CodeBlock{Text: rawTextContent(c)})
		case "br":
			pending = append(pending, &doctree.LineBreak{})
		default:
			// Inline element loose in block context.
			pending = htmlInline(pending, c)
		}
	}
	flush()
	return out
}

func htmlListItems(n *html.Node) [][]doctree.Block {
	var items [][]doctree.Block
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			items = append(items, htmlBlocks(c))
		}
	}
	return items
}

func htmlInlines(n *html.Node) []doctree.Inline {
	var out []doctree.Inline
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = htmlInline(out, c)
	}
	return out
}

// htmlInline appends n's inline representation to out. Threading the
// accumulator lets appendProse see the preceding node, so a leading
// space in a text node after an element still separates words.
func htmlInline(out []doctree.Inline, n *html.Node) []doctree.Inline {
	switch n.Type {
	case html.TextNode:
		return appendProse(out, n.Data)
	case html.ElementNode:
	default:
		return out
	}
	switch n.Data {
	case "em", "i":
		return append(out, &doctree.Emph{Inlines: htmlInlines(n)})
	case "strong", "b":
		return append(out, &doctree.Strong{Inlines: htmlInlines(n)})
	case "span":
		attr := htmlNodeAttr(n)
		if attr.HasClass("smallcaps") {
			return append(out, &doctree.SmallCaps{Inlines: htmlInlines(n)})
		}
		return append(out, &doctree.Span{Attr: attr, Inlines: htmlInlines(n)})
	case "q":
		return append(out, &doctree.Quoted{Kind: doctree.DoubleQuote, Inlines: htmlInlines(n)})
	case "code":
		return append(out, &doctree.Code{Text: rawTextContent(n)})
	case "a":
		return append(out, &doctree.Link{
			Attr:    htmlNodeAttr(n),
			URL:     attrValue(n, "href"),
			Title:   attrValue(n, "title"),
			Inlines: htmlInlines(n),
		})
	case "img":
		var alt []doctree.Inline
		if v := attrValue(n, "alt"); v != "" {
			alt = appendProse(nil, v)
		}
		return append(out, &doctree.Image{
			URL:     attrValue(n, "src"),
			Title:   attrValue(n, "title"),
			Inlines: alt,
		})
	case "br":
		return append(out, &doctree.LineBreak{})
	case "script", "style":
		return out
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = htmlInline(out, c)
		}
		return out
	}
}

// trimInlines drops leading and trailing whitespace nodes, which HTML
// source indentation produces in bulk.
func trimInlines(inlines []doctree.Inline) []doctree.Inline {
	for len(inlines) > 0 {
		if !isWhitespaceInline(inlines[0]) {
			break
		}
		inlines = inlines[1:]
	}
	for len(inlines) > 0 {
		if !isWhitespaceInline(inlines[len(inlines)-1]) {
			break
		}
		inlines = inlines[:len(inlines)-1]
	}
	return inlines
}

func isWhitespaceInline(in doctree.Inline) bool {
	switch in.(type) {
	case *doctree.Space, *doctree.SoftBreak:
		return true
	}
	return false
}

func htmlNodeAttr(n *html.Node) doctree.Attr {
	var a doctree.Attr
	for _, at := range n.Attr {
		switch at.Key {
		case "id":
			a.ID = at.Val
		case "class":
			a.Classes = strings.Fields(at.Val)
		default:
			if strings.HasPrefix(at.Key, "data-") {
				a.Set(strings.TrimPrefix(at.Key, "data-"), at.Val)
			}
		}
	}
	return a
}

func attrValue(n *html.Node, key string) string {
	for _, at := range n.Attr {
		if at.Key == key {
			return at.Val
		}
	}
	return ""
}

func rawTextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return strings.TrimSpace(rawTextContent(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
