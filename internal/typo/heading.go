package typo

import (
	"fmt"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
	"github.com/dgallion1/typograph/internal/render"
)

// Transient attribute keys carrying the two heading renderings between
// the prepare and emit passes.
const (
	attrBody     = "latex-body"
	attrBookmark = "latex-bookmark"
)

// bookmarkQuotes maps the typesetting CJK quote glyphs back to curly
// Unicode quotes: PDF outline text must not show guillemets.
var bookmarkQuotes = strings.NewReplacer(
	"«", "“", "»", "”", "‹", "‘", "›", "’",
)

// PrepareHeadings builds, for every heading, a LaTeX body rendering
// and a plain-Unicode bookmark rendering of the same content, stored
// as transient attributes. Quoted spans become quote commands in the
// body and literal curly quotes in the bookmark. Identity for every
// format except LaTeX.
func PrepareHeadings(doc *doctree.Document, f Format) *doctree.Document {
	if f != FormatLaTeX {
		return doc
	}
	walkHeadings(doc.Blocks, func(h *doctree.Heading) {
		body := render.LaTeXInlines(quotesToCommands(h.Inlines))
		body = strings.Join(strings.Fields(body), " ")

		bookmark := doctree.Stringify(quotesToLiterals(h.Inlines))
		bookmark = bookmarkQuotes.Replace(bookmark)
		bookmark = strings.Join(strings.Fields(bookmark), " ")

		h.Attr.Set(attrBody, body)
		h.Attr.Set(attrBookmark, bookmark)
	})
	return doc
}

// quotesToCommands rewrites every quoted span into LaTeX open/close
// quote commands wrapping its children.
func quotesToCommands(inlines []doctree.Inline) []doctree.Inline {
	out := make([]doctree.Inline, 0, len(inlines))
	for _, in := range inlines {
		switch in := in.(type) {
		case *doctree.Quoted:
			open, close := `\textquoteleft{}`, `\textquoteright{}`
			if in.Kind == doctree.DoubleQuote {
				open, close = `\textquotedblleft{}`, `\textquotedblright{}`
			}
			out = append(out, &doctree.RawInline{Format: "latex", Text: open})
			out = append(out, quotesToCommands(in.Inlines)...)
			out = append(out, &doctree.RawInline{Format: "latex", Text: close})
		case *doctree.Emph:
			out = append(out, &doctree.Emph{Inlines: quotesToCommands(in.Inlines)})
		case *doctree.Strong:
			out = append(out, &doctree.Strong{Inlines: quotesToCommands(in.Inlines)})
		case *doctree.SmallCaps:
			out = append(out, &doctree.SmallCaps{Inlines: quotesToCommands(in.Inlines)})
		case *doctree.Span:
			out = append(out, &doctree.Span{Attr: in.Attr, Inlines: quotesToCommands(in.Inlines)})
		default:
			out = append(out, in)
		}
	}
	return out
}

// quotesToLiterals rewrites every quoted span into literal Unicode
// curly quotes around its children.
func quotesToLiterals(inlines []doctree.Inline) []doctree.Inline {
	out := make([]doctree.Inline, 0, len(inlines))
	for _, in := range inlines {
		switch in := in.(type) {
		case *doctree.Quoted:
			open, close := "‘", "’"
			if in.Kind == doctree.DoubleQuote {
				open, close = "“", "”"
			}
			out = append(out, &doctree.Text{Value: open})
			out = append(out, quotesToLiterals(in.Inlines)...)
			out = append(out, &doctree.Text{Value: close})
		case *doctree.Emph:
			out = append(out, &doctree.Emph{Inlines: quotesToLiterals(in.Inlines)})
		case *doctree.Strong:
			out = append(out, &doctree.Strong{Inlines: quotesToLiterals(in.Inlines)})
		case *doctree.SmallCaps:
			out = append(out, &doctree.SmallCaps{Inlines: quotesToLiterals(in.Inlines)})
		case *doctree.Span:
			out = append(out, &doctree.Span{Attr: in.Attr, Inlines: quotesToLiterals(in.Inlines)})
		default:
			out = append(out, in)
		}
	}
	return out
}

// EmitHeadings converts every heading carrying the two renderings into
// a raw LaTeX block: a sectioning command (starred when the heading is
// unnumbered) whose argument is a \texorpdfstring pairing the body
// rendering with the escaped bookmark text, followed by \label when
// the heading has an identifier and an explicit \addcontentsline
// entry when it is unnumbered. A short-title attribute overrides the
// bookmark text. Identity for every format except LaTeX.
func EmitHeadings(doc *doctree.Document, f Format) *doctree.Document {
	if f != FormatLaTeX {
		return doc
	}
	emitHeadingBlocks(doc.Blocks)
	return doc
}

func emitHeadingBlocks(blocks []doctree.Block) {
	for i, b := range blocks {
		switch b := b.(type) {
		case *doctree.Heading:
			if raw, ok := headingToRaw(b); ok {
				blocks[i] = raw
			}
		case *doctree.Div:
			emitHeadingBlocks(b.Blocks)
		case *doctree.BlockQuote:
			emitHeadingBlocks(b.Blocks)
		case *doctree.BulletList:
			for _, item := range b.Items {
				emitHeadingBlocks(item)
			}
		case *doctree.OrderedList:
			for _, item := range b.Items {
				emitHeadingBlocks(item)
			}
		}
	}
}

func headingToRaw(h *doctree.Heading) (*doctree.RawBlock, bool) {
	body, okBody := h.Attr.Get(attrBody)
	bookmark, okMark := h.Attr.Get(attrBookmark)
	if !okBody || !okMark {
		return nil, false
	}

	if short, ok := h.Attr.Get("short-title"); ok {
		bookmark = short
	} else if short, ok := h.Attr.Get("short"); ok {
		bookmark = short
	}

	cmd := render.LaTeXSectionCommand(h.Level)
	star := ""
	if isUnnumbered(&h.Attr) {
		star = "*"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `\%s%s{\texorpdfstring{%s}{%s}}`, cmd, star, body, render.EscapeLaTeX(bookmark))
	if h.Attr.ID != "" {
		fmt.Fprintf(&sb, "\n\\label{%s}", h.Attr.ID)
	}
	if star != "" {
		fmt.Fprintf(&sb, "\n\\addcontentsline{toc}{%s}{%s}", cmd, render.EscapeLaTeX(bookmark))
	}
	return &doctree.RawBlock{Format: "latex", Text: sb.String()}, true
}

// isUnnumbered reports whether the heading opts out of numbering,
// either via the unnumbered class or an explicit number attribute.
func isUnnumbered(a *doctree.Attr) bool {
	if a.HasClass("unnumbered") {
		return true
	}
	if v, ok := a.Get("number"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "no", "false", "0":
			return true
		}
	}
	return false
}

func walkHeadings(blocks []doctree.Block, fn func(*doctree.Heading)) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Heading:
			fn(b)
		case *doctree.Div:
			walkHeadings(b.Blocks, fn)
		case *doctree.BlockQuote:
			walkHeadings(b.Blocks, fn)
		case *doctree.BulletList:
			for _, item := range b.Items {
				walkHeadings(item, fn)
			}
		case *doctree.OrderedList:
			for _, item := range b.Items {
				walkHeadings(item, fn)
			}
		}
	}
}
