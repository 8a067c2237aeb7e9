package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/typograph/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate
// paragraphs; line breaks inside a paragraph become soft breaks.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &doctree.Document{Title: titleFromFilename(filename)}
	doc.Blocks = proseBlocks(string(src))
	return doc, nil
}

// proseBlocks splits plain text on blank lines into paragraphs. Lines
// holding only whitespace count as blank.
func proseBlocks(s string) []doctree.Block {
	var blocks []doctree.Block
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		inlines := splitInlines(strings.Join(cur, "\n"))
		cur = nil
		if len(inlines) > 0 {
			blocks = append(blocks, &doctree.Para{Inlines: inlines})
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			cur = append(cur, line)
		}
	}
	flush()
	return blocks
}
