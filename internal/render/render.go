package render

import "github.com/dgallion1/typograph/internal/doctree"

// Plain serializes a document to plain text, dropping all formatting.
func Plain(doc *doctree.Document) string {
	return doctree.StringifyBlocks(doc.Blocks)
}

// For returns the serializer for an output format name. EPUB shares
// the HTML serializer; the word-processor target falls back to plain
// text since the corrected tree is handed to a downstream writer.
func For(format string) func(*doctree.Document) string {
	switch format {
	case "html", "epub":
		return HTML
	case "latex":
		return LaTeX
	case "typst":
		return Typst
	default:
		return Plain
	}
}
