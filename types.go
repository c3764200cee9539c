package html2doc

import "strings"

// Element is one converted piece of document content.
// Every Element is either a Block or an Inline; use IsBlock to tell them apart.
type Element interface {
	isElement()
}

// Block is an element that stands alone in the document flow.
type Block interface {
	Element
	isBlock()
}

// Inline is an element that flows inside a paragraph.
type Inline interface {
	Element
	isInline()
}

// IsBlock reports whether e is a Block element.
func IsBlock(e Element) bool {
	_, ok := e.(Block)
	return ok
}

// Style is a set of character formatting flags applied to runs and spans.
type Style uint16

// Character formatting flags.
const (
	Bold Style = 1 << iota
	Italic
	Underline
	Strikethrough
	Code
	Subscript
	Superscript
	Highlight
)

var styleNames = []struct {
	flag Style
	name string
}{
	{Bold, "bold"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Strikethrough, "strikethrough"},
	{Code, "code"},
	{Subscript, "subscript"},
	{Superscript, "superscript"},
	{Highlight, "highlight"},
}

// Has reports whether all flags in f are set.
func (s Style) Has(f Style) bool {
	return s&f == f
}

// String returns the set flags joined by "|", or "" when no flag is set.
func (s Style) String() string {
	var names []string
	for _, sn := range styleNames {
		if s.Has(sn.flag) {
			names = append(names, sn.name)
		}
	}
	return strings.Join(names, "|")
}

// LinkHandler is invoked when a rendered hyperlink is activated.
type LinkHandler func(url string)

// ---------------------------------------------------------------------------
// Inline elements
// ---------------------------------------------------------------------------

// Run is a piece of literal text.
type Run struct {
	Text  string
	Style Style
}

// LineBreak is an explicit line break inside a paragraph.
type LineBreak struct{}

// Span groups inlines under a common style.
type Span struct {
	Style   Style
	Inlines []Inline
}

// Hyperlink is a clickable span of inlines.
type Hyperlink struct {
	URL        string
	Title      string
	Inlines    []Inline
	OnActivate LinkHandler
}

// Image is an inline picture. Source is already resolved against the
// base URL or asset root.
type Image struct {
	Source string
	Alt    string
	Title  string
	Width  string
	Height string
}

// CheckBox is a read-only form checkbox, as found in task lists.
type CheckBox struct {
	Checked bool
}

// RawInline carries serialized markup that no converter handled.
type RawInline struct {
	Markup string
}

func (Run) isElement()       {}
func (LineBreak) isElement() {}
func (Span) isElement()      {}
func (Hyperlink) isElement() {}
func (Image) isElement()     {}
func (CheckBox) isElement()  {}
func (RawInline) isElement() {}

func (Run) isInline()       {}
func (LineBreak) isInline() {}
func (Span) isInline()      {}
func (Hyperlink) isInline() {}
func (Image) isInline()     {}
func (CheckBox) isInline()  {}
func (RawInline) isInline() {}

// ---------------------------------------------------------------------------
// Block elements
// ---------------------------------------------------------------------------

// Paragraph is a run of inlines. Converters do not build paragraphs
// directly; they come out of Group.
type Paragraph struct {
	Inlines []Inline
}

// Heading is a section title of Level 1 to 6.
type Heading struct {
	Level   int
	ID      string
	Inlines []Inline
}

// CodeToken is one highlighted fragment of a code block.
type CodeToken struct {
	Text   string
	Type   string // chroma token type, e.g. "KeywordDeclaration"
	Color  string // "#rrggbb" or "" when the style leaves it unset
	Bold   bool
	Italic bool
}

// CodeBlock is preformatted text, optionally split into highlighted tokens.
type CodeBlock struct {
	Language string
	Code     string
	Tokens   []CodeToken
}

// ListItem is one entry of a List. Checked is non-nil for task list items.
type ListItem struct {
	Checked *bool
	Blocks  []Block
}

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// Blockquote is quoted block content.
type Blockquote struct {
	Blocks []Block
}

// Section is a generic block container (div, section, article, ...).
type Section struct {
	Tag    string
	Blocks []Block
}

// Rule is a horizontal rule.
type Rule struct{}

// Alignment is the horizontal alignment of a table cell.
type Alignment int

// Table cell alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the lowercase alignment name, or "" for AlignNone.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// TableCell is one cell of a table row.
type TableCell struct {
	Header  bool
	ColSpan int
	RowSpan int
	Align   Alignment
	Blocks  []Block
}

// TableRow is one row of a table.
type TableRow struct {
	Cells []TableCell
}

// Table is a grid of cells split into head, body and foot row groups.
type Table struct {
	Caption []Inline
	Head    []TableRow
	Body    []TableRow
	Foot    []TableRow
}

// RawBlock carries serialized block-level markup that no converter handled.
type RawBlock struct {
	Markup string
}

func (Paragraph) isElement()  {}
func (Heading) isElement()    {}
func (CodeBlock) isElement()  {}
func (List) isElement()       {}
func (Blockquote) isElement() {}
func (Section) isElement()    {}
func (Rule) isElement()       {}
func (Table) isElement()      {}
func (RawBlock) isElement()   {}

func (Paragraph) isBlock()  {}
func (Heading) isBlock()    {}
func (CodeBlock) isBlock()  {}
func (List) isBlock()       {}
func (Blockquote) isBlock() {}
func (Section) isBlock()    {}
func (Rule) isBlock()       {}
func (Table) isBlock()      {}
func (RawBlock) isBlock()   {}

// Document is the result of ParseDocument.
type Document struct {
	Title  string
	Blocks []Block
}
