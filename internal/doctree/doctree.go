// Package doctree defines the document tree that all typography
// transforms operate on: an ordered forest of block nodes holding
// inline content, modeled after the Pandoc AST.
package doctree

// Document is the root of a parsed document.
type Document struct {
	Title  string // Document title (from metadata or filename)
	Blocks []Block
}

// Inline is the smallest unit of flowed content: a text run, a space,
// a line break, or a formatting wrapper. The set of kinds is closed.
type Inline interface {
	inline()
}

// Block is a structural unit holding inlines or nested blocks.
// The set of kinds is closed.
type Block interface {
	block()
}

// KV is one attribute key-value pair.
type KV struct {
	Key   string
	Value string
}

// Attr carries the identifier, classes, and key-value attributes of
// Span, Div, Heading, and CodeBlock nodes. Keys are unique per node.
type Attr struct {
	ID      string
	Classes []string
	KVs     []KV
}

// HasClass reports whether the attribute carries the given class.
func (a *Attr) HasClass(c string) bool {
	for _, cl := range a.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// Get returns the value for key, and whether the key is present.
func (a *Attr) Get(key string) (string, bool) {
	for _, kv := range a.KVs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set stores a value for key, replacing any existing value.
func (a *Attr) Set(key, value string) {
	for i, kv := range a.KVs {
		if kv.Key == key {
			a.KVs[i].Value = value
			return
		}
	}
	a.KVs = append(a.KVs, KV{Key: key, Value: value})
}

// Unset removes key if present.
func (a *Attr) Unset(key string) {
	for i, kv := range a.KVs {
		if kv.Key == key {
			a.KVs = append(a.KVs[:i], a.KVs[i+1:]...)
			return
		}
	}
}

// QuoteKind distinguishes single from double quoted spans.
type QuoteKind int

const (
	SingleQuote QuoteKind = iota
	DoubleQuote
)

// Text is a literal text run.
type Text struct {
	Value string
}

// Space is an inter-word space.
type Space struct{}

// SoftBreak is a soft line break.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Emph is emphasized text.
type Emph struct {
	Inlines []Inline
}

// Strong is strongly emphasized text.
type Strong struct {
	Inlines []Inline
}

// SmallCaps is text set in small capitals.
type SmallCaps struct {
	Inlines []Inline
}

// Span is a generic inline container with attributes.
type Span struct {
	Attr    Attr
	Inlines []Inline
}

// Quoted is quoted text with an explicit quote kind.
type Quoted struct {
	Kind    QuoteKind
	Inlines []Inline
}

// Code is literal inline code. Transforms treat it as an opaque
// boundary.
type Code struct {
	Text string
}

// Link is a hyperlink. Transforms treat it as an opaque boundary so
// URLs and link text are never rewritten.
type Link struct {
	Attr    Attr
	URL     string
	Title   string
	Inlines []Inline
}

// Image is an inline image with alt text.
type Image struct {
	Attr    Attr
	URL     string
	Title   string
	Inlines []Inline
}

// RawInline is literal text for one output format, passed through
// untouched by every transform and emitted only by that format's
// renderer.
type RawInline struct {
	Format string
	Text   string
}

func (*Text) inline()      {}
func (*Space) inline()     {}
func (*SoftBreak) inline() {}
func (*LineBreak) inline() {}
func (*Emph) inline()      {}
func (*Strong) inline()    {}
func (*SmallCaps) inline() {}
func (*Span) inline()      {}
func (*Quoted) inline()    {}
func (*Code) inline()      {}
func (*Link) inline()      {}
func (*Image) inline()     {}
func (*RawInline) inline() {}

// Para is a paragraph.
type Para struct {
	Inlines []Inline
}

// Plain is inline content that is not a paragraph (list items etc).
type Plain struct {
	Inlines []Inline
}

// Heading is a section heading.
type Heading struct {
	Level   int
	Attr    Attr
	Inlines []Inline
}

// Div is a generic block container with attributes.
type Div struct {
	Attr   Attr
	Blocks []Block
}

// BlockQuote is a quoted sequence of blocks.
type BlockQuote struct {
	Blocks []Block
}

// BulletList is an unordered list; each item is a block sequence.
type BulletList struct {
	Items [][]Block
}

// OrderedList is a numbered list; each item is a block sequence.
type OrderedList struct {
	Start int
	Items [][]Block
}

// CodeBlock is literal preformatted text.
type CodeBlock struct {
	Attr Attr
	Text string
}

// RawBlock is a literal block for one output format.
type RawBlock struct {
	Format string
	Text   string
}

func (*Para) block()        {}
func (*Plain) block()       {}
func (*Heading) block()     {}
func (*Div) block()         {}
func (*BlockQuote) block()  {}
func (*BulletList) block()  {}
func (*OrderedList) block() {}
func (*CodeBlock) block()   {}
func (*RawBlock) block()    {}
