// Package html2doc converts HTML into a flat sequence of document blocks.
//
// # Quick Start
//
// Create a manager and parse HTML:
//
//	m, err := html2doc.NewManager()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blocks, err := m.Parse("<h1>Title</h1><p>Hello <b>world</b></p>")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The result is a []Block made of Heading, Paragraph, List, Table,
// CodeBlock and the other types in types.go. Paragraph inlines are Runs,
// Spans, Hyperlinks, Images, LineBreaks and CheckBoxes.
//
// # Conversion Pipeline
//
// A parse goes through these stages:
//
//  1. Line ending normalization and document/fragment detection
//  2. Head/body location: the body's children, or the fragment's nodes
//  3. Tree walk: each node is dispatched by tag name to its converters,
//     comments and incidental whitespace are dropped
//  4. Grouping: runs of inline elements become trimmed paragraphs
//
// # Converters
//
// A Converter declares the tag names it handles and implements one of
// InlineConverter, BlockConverter or ElementConverter. Converters for the
// same tag are tried in ascending priority; among equal priorities the most
// recently registered one goes first, so later registrations override the
// built-ins:
//
//	type noteConverter struct{}
//
//	func (noteConverter) TagNames() []string { return []string{"aside"} }
//
//	func (noteConverter) ConvertBlock(n *html.Node, m *html2doc.Manager) ([]html2doc.Block, bool, error) {
//	    blocks, err := m.ConvertChildrenGrouped(n)
//	    if err != nil {
//	        return nil, false, err
//	    }
//	    return []html2doc.Block{html2doc.Blockquote{Blocks: blocks}}, true, nil
//	}
//
//	m, err := html2doc.NewManager(html2doc.WithConverters(noteConverter{}))
//
// Returning ok=false hands the node to the next converter. When no
// converter takes a node, the UnknownTagPolicy decides: PassThrough keeps
// its markup as a RawBlock or RawInline, Drop discards it, Bypass converts
// its children as if the tag were not there.
//
// # Embedded Markdown
//
// A double newline inside a text node switches the rest of that sibling list
// to Markdown: the text after it, and the markup of every later sibling, is
// converted by the Engine (goldmark with GFM by default). HTML found in the
// Markdown comes back through the converters. Disable the switch with
// WithMarkdownEscape(false) or WithoutEngine().
//
// # Concurrency
//
// Build the Manager and register converters first. Parse and the other
// conversion methods may then be called from many goroutines.
package html2doc
