// Package render serializes a document tree to a target output
// format. Raw inlines and raw blocks are emitted only by the renderer
// whose format matches theirs.
package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
)

// EscapeLaTeX escapes text for safe embedding in LaTeX source. The
// characters escaped are backslash, braces, percent, ampersand, hash,
// underscore, caret, and tilde.
func EscapeLaTeX(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\textbackslash{}`)
		case '{':
			sb.WriteString(`\{`)
		case '}':
			sb.WriteString(`\}`)
		case '%':
			sb.WriteString(`\%`)
		case '&':
			sb.WriteString(`\&`)
		case '#':
			sb.WriteString(`\#`)
		case '_':
			sb.WriteString(`\_`)
		case '^':
			sb.WriteString(`\^{}`)
		case '~':
			sb.WriteString(`\~{}`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// LaTeXSectionCommand returns the sectioning command for a heading
// level. Levels beyond the deepest supported command are capped, so
// the two deepest levels share \paragraph.
func LaTeXSectionCommand(level int) string {
	switch {
	case level <= 1:
		return "section"
	case level == 2:
		return "subsection"
	case level == 3:
		return "subsubsection"
	default:
		return "paragraph"
	}
}

// LaTeXInlines serializes an inline sequence to LaTeX markup.
func LaTeXInlines(inlines []doctree.Inline) string {
	var sb strings.Builder
	latexInlines(&sb, inlines)
	return sb.String()
}

func latexInlines(sb *strings.Builder, inlines []doctree.Inline) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *doctree.Text:
			sb.WriteString(EscapeLaTeX(in.Value))
		case *doctree.Space:
			sb.WriteByte(' ')
		case *doctree.SoftBreak:
			sb.WriteByte('\n')
		case *doctree.LineBreak:
			sb.WriteString("\\\\\n")
		case *doctree.Emph:
			sb.WriteString(`\emph{`)
			latexInlines(sb, in.Inlines)
			sb.WriteByte('}')
		case *doctree.Strong:
			sb.WriteString(`\textbf{`)
			latexInlines(sb, in.Inlines)
			sb.WriteByte('}')
		case *doctree.SmallCaps:
			sb.WriteString(`\textsc{`)
			latexInlines(sb, in.Inlines)
			sb.WriteByte('}')
		case *doctree.Span:
			sb.WriteByte('{')
			latexInlines(sb, in.Inlines)
			sb.WriteByte('}')
		case *doctree.Quoted:
			if in.Kind == doctree.DoubleQuote {
				sb.WriteString("``")
				latexInlines(sb, in.Inlines)
				sb.WriteString("''")
			} else {
				sb.WriteByte('`')
				latexInlines(sb, in.Inlines)
				sb.WriteByte('\'')
			}
		case *doctree.Code:
			sb.WriteString(`\texttt{`)
			sb.WriteString(EscapeLaTeX(in.Text))
			sb.WriteByte('}')
		case *doctree.Link:
			fmt.Fprintf(sb, `\href{%s}{`, in.URL)
			latexInlines(sb, in.Inlines)
			sb.WriteByte('}')
		case *doctree.Image:
			fmt.Fprintf(sb, `\includegraphics{%s}`, in.URL)
		case *doctree.RawInline:
			if in.Format == "latex" || in.Format == "tex" {
				sb.WriteString(in.Text)
			}
		}
	}
}

// LaTeX serializes a document to LaTeX source.
func LaTeX(doc *doctree.Document) string {
	var sb strings.Builder
	latexBlocks(&sb, doc.Blocks)
	return sb.String()
}

func latexBlocks(sb *strings.Builder, blocks []doctree.Block) {
	for _, b := range blocks {
		switch b := b.(type) {
		case *doctree.Para:
			latexInlines(sb, b.Inlines)
			sb.WriteString("\n\n")
		case *doctree.Plain:
			latexInlines(sb, b.Inlines)
			sb.WriteByte('\n')
		case *doctree.Heading:
			fmt.Fprintf(sb, `\%s{`, LaTeXSectionCommand(b.Level))
			latexInlines(sb, b.Inlines)
			sb.WriteString("}\n")
			if b.Attr.ID != "" {
				fmt.Fprintf(sb, "\\label{%s}\n", b.Attr.ID)
			}
			sb.WriteByte('\n')
		case *doctree.Div:
			latexBlocks(sb, b.Blocks)
		case *doctree.BlockQuote:
			sb.WriteString("\\begin{quote}\n")
			latexBlocks(sb, b.Blocks)
			sb.WriteString("\\end{quote}\n\n")
		case *doctree.BulletList:
			sb.WriteString("\\begin{itemize}\n")
			for _, item := range b.Items {
				sb.WriteString("\\item ")
				latexBlocks(sb, item)
			}
			sb.WriteString("\\end{itemize}\n\n")
		case *doctree.OrderedList:
			sb.WriteString("\\begin{enumerate}\n")
			for _, item := range b.Items {
				sb.WriteString("\\item ")
				latexBlocks(sb, item)
			}
			sb.WriteString("\\end{enumerate}\n\n")
		case *doctree.CodeBlock:
			sb.WriteString("\\begin{verbatim}\n")
			sb.WriteString(b.Text)
			if !strings.HasSuffix(b.Text, "\n") {
				sb.WriteByte('\n')
			}
			sb.WriteString("\\end{verbatim}\n\n")
		case *doctree.RawBlock:
			if b.Format == "latex" || b.Format == "tex" {
				sb.WriteString(b.Text)
				sb.WriteString("\n\n")
			}
		}
	}
}
