package doctree

import "strings"

// WalkText applies fn to the value of every Text node under blocks,
// replacing it in place. Raw inlines and code blocks are left alone:
// they carry format-specific literals, not prose.
func WalkText(blocks []Block, fn func(string) string) {
	for _, b := range blocks {
		walkBlockText(b, fn)
	}
}

func walkBlockText(b Block, fn func(string) string) {
	switch b := b.(type) {
	case *Para:
		walkInlineText(b.Inlines, fn)
	case *Plain:
		walkInlineText(b.Inlines, fn)
	case *Heading:
		walkInlineText(b.Inlines, fn)
	case *Div:
		WalkText(b.Blocks, fn)
	case *BlockQuote:
		WalkText(b.Blocks, fn)
	case *BulletList:
		for _, item := range b.Items {
			WalkText(item, fn)
		}
	case *OrderedList:
		for _, item := range b.Items {
			WalkText(item, fn)
		}
	}
}

func walkInlineText(inlines []Inline, fn func(string) string) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *Text:
			in.Value = fn(in.Value)
		case *Emph:
			walkInlineText(in.Inlines, fn)
		case *Strong:
			walkInlineText(in.Inlines, fn)
		case *SmallCaps:
			walkInlineText(in.Inlines, fn)
		case *Span:
			walkInlineText(in.Inlines, fn)
		case *Quoted:
			walkInlineText(in.Inlines, fn)
		case *Image:
			walkInlineText(in.Inlines, fn)
		}
	}
}

// Stringify flattens inline content to plain text. Spaces become " ",
// soft and hard breaks become "\n", raw inlines are skipped.
func Stringify(inlines []Inline) string {
	var sb strings.Builder
	stringifyInto(&sb, inlines)
	return sb.String()
}

func stringifyInto(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *Text:
			sb.WriteString(in.Value)
		case *Space:
			sb.WriteByte(' ')
		case *SoftBreak, *LineBreak:
			sb.WriteByte('\n')
		case *Emph:
			stringifyInto(sb, in.Inlines)
		case *Strong:
			stringifyInto(sb, in.Inlines)
		case *SmallCaps:
			stringifyInto(sb, in.Inlines)
		case *Span:
			stringifyInto(sb, in.Inlines)
		case *Quoted:
			open, close := "‘", "’"
			if in.Kind == DoubleQuote {
				open, close = "“", "”"
			}
			sb.WriteString(open)
			stringifyInto(sb, in.Inlines)
			sb.WriteString(close)
		case *Code:
			sb.WriteString(in.Text)
		case *Link:
			stringifyInto(sb, in.Inlines)
		case *Image:
			stringifyInto(sb, in.Inlines)
		}
	}
}

// StringifyBlocks flattens block content to plain text, separating
// blocks with blank lines.
func StringifyBlocks(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		switch b := b.(type) {
		case *Para:
			parts = append(parts, Stringify(b.Inlines))
		case *Plain:
			parts = append(parts, Stringify(b.Inlines))
		case *Heading:
			parts = append(parts, Stringify(b.Inlines))
		case *Div:
			parts = append(parts, StringifyBlocks(b.Blocks))
		case *BlockQuote:
			parts = append(parts, StringifyBlocks(b.Blocks))
		case *BulletList:
			for _, item := range b.Items {
				parts = append(parts, StringifyBlocks(item))
			}
		case *OrderedList:
			for _, item := range b.Items {
				parts = append(parts, StringifyBlocks(item))
			}
		case *CodeBlock:
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
