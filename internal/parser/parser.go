// Package parser converts raw document bytes into a document tree.
// Each supported input format gets its own parser; all of them produce
// the same tree so the typography passes never see format details.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
)

// Parser converts raw document bytes into a document tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// splitInlines tokenizes plain prose into Text, Space, and SoftBreak
// nodes. Runs of spaces and tabs collapse to one Space; newlines become
// soft breaks.
func splitInlines(s string) []doctree.Inline {
	var out []doctree.Inline
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, &doctree.Text{Value: s[start:end]})
			start = -1
		}
	}
	pendingSep := byte(0)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t':
			flush(i)
			if pendingSep != '\n' {
				pendingSep = ' '
			}
		case '\n', '\r':
			flush(i)
			pendingSep = '\n'
		default:
			if start < 0 {
				if pendingSep != 0 && len(out) > 0 {
					if pendingSep == '\n' {
						out = append(out, &doctree.SoftBreak{})
					} else {
						out = append(out, &doctree.Space{})
					}
				}
				pendingSep = 0
				start = i
			}
		}
	}
	flush(len(s))
	return out
}

// titleFromFilename derives a fallback document title by stripping the
// extension from the uploaded name.
func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
