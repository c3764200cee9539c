package render

import (
	"fmt"
	"strconv"

	html2doc "github.com/alnah/go-html2doc"
)

// Node is one element of the YAML tree dump.
type Node struct {
	Type     string            `yaml:"type"`
	Text     string            `yaml:"text,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Children []Node            `yaml:"children,omitempty"`
}

// Tree is the YAML form of a converted document.
type Tree struct {
	Title  string `yaml:"title,omitempty"`
	Blocks []Node `yaml:"blocks"`
}

// NewTree builds the tree dump of doc.
func NewTree(doc *html2doc.Document) Tree {
	return Tree{Title: doc.Title, Blocks: blockNodes(doc.Blocks)}
}

func blockNodes(blocks []html2doc.Block) []Node {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Node, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockNode(b))
	}
	return out
}

func inlineNodes(inlines []html2doc.Inline) []Node {
	if len(inlines) == 0 {
		return nil
	}
	out := make([]Node, 0, len(inlines))
	for _, in := range inlines {
		out = append(out, inlineNode(in))
	}
	return out
}

func blockNode(b html2doc.Block) Node {
	switch b := b.(type) {
	case html2doc.Paragraph:
		return Node{Type: "paragraph", Children: inlineNodes(b.Inlines)}
	case html2doc.Heading:
		attrs := map[string]string{"level": strconv.Itoa(b.Level)}
		if b.ID != "" {
			attrs["id"] = b.ID
		}
		return Node{Type: "heading", Attrs: attrs, Children: inlineNodes(b.Inlines)}
	case html2doc.CodeBlock:
		n := Node{Type: "code", Text: b.Code, Children: tokenNodes(b.Tokens)}
		if b.Language != "" {
			n.Attrs = map[string]string{"language": b.Language}
		}
		return n
	case html2doc.List:
		return listNode(b)
	case html2doc.Blockquote:
		return Node{Type: "blockquote", Children: blockNodes(b.Blocks)}
	case html2doc.Section:
		return Node{Type: "section", Attrs: map[string]string{"tag": b.Tag}, Children: blockNodes(b.Blocks)}
	case html2doc.Rule:
		return Node{Type: "rule"}
	case html2doc.Table:
		return tableNode(b)
	case html2doc.RawBlock:
		return Node{Type: "raw-block", Text: b.Markup}
	default:
		return Node{Type: fmt.Sprintf("%T", b)}
	}
}

func inlineNode(in html2doc.Inline) Node {
	switch in := in.(type) {
	case html2doc.Run:
		n := Node{Type: "text", Text: in.Text}
		if in.Style != 0 {
			n.Attrs = map[string]string{"style": in.Style.String()}
		}
		return n
	case html2doc.Span:
		n := Node{Type: "span", Children: inlineNodes(in.Inlines)}
		if in.Style != 0 {
			n.Attrs = map[string]string{"style": in.Style.String()}
		}
		return n
	case html2doc.Hyperlink:
		attrs := map[string]string{"url": in.URL}
		if in.Title != "" {
			attrs["title"] = in.Title
		}
		return Node{Type: "link", Attrs: attrs, Children: inlineNodes(in.Inlines)}
	case html2doc.Image:
		attrs := map[string]string{"src": in.Source}
		for k, v := range map[string]string{"alt": in.Alt, "title": in.Title, "width": in.Width, "height": in.Height} {
			if v != "" {
				attrs[k] = v
			}
		}
		return Node{Type: "image", Attrs: attrs}
	case html2doc.LineBreak:
		return Node{Type: "break"}
	case html2doc.CheckBox:
		return Node{Type: "checkbox", Attrs: map[string]string{"checked": strconv.FormatBool(in.Checked)}}
	case html2doc.RawInline:
		return Node{Type: "raw-inline", Text: in.Markup}
	default:
		return Node{Type: fmt.Sprintf("%T", in)}
	}
}

func listNode(l html2doc.List) Node {
	n := Node{Type: "list", Attrs: map[string]string{"ordered": strconv.FormatBool(l.Ordered)}}
	if l.Ordered {
		n.Attrs["start"] = strconv.Itoa(l.Start)
	}
	for _, item := range l.Items {
		child := Node{Type: "item", Children: blockNodes(item.Blocks)}
		if item.Checked != nil {
			child.Attrs = map[string]string{"checked": strconv.FormatBool(*item.Checked)}
		}
		n.Children = append(n.Children, child)
	}
	return n
}

func tableNode(t html2doc.Table) Node {
	n := Node{Type: "table"}
	if len(t.Caption) > 0 {
		n.Children = append(n.Children, Node{Type: "caption", Children: inlineNodes(t.Caption)})
	}
	for _, group := range []struct {
		name string
		rows []html2doc.TableRow
	}{{"head", t.Head}, {"body", t.Body}, {"foot", t.Foot}} {
		if len(group.rows) == 0 {
			continue
		}
		g := Node{Type: group.name}
		for _, row := range group.rows {
			r := Node{Type: "row"}
			for _, cell := range row.Cells {
				r.Children = append(r.Children, cellNode(cell))
			}
			g.Children = append(g.Children, r)
		}
		n.Children = append(n.Children, g)
	}
	return n
}

func cellNode(c html2doc.TableCell) Node {
	n := Node{Type: "cell", Children: blockNodes(c.Blocks)}
	if c.Header {
		n.Type = "header-cell"
	}
	attrs := map[string]string{}
	if c.ColSpan > 1 {
		attrs["colspan"] = strconv.Itoa(c.ColSpan)
	}
	if c.RowSpan > 1 {
		attrs["rowspan"] = strconv.Itoa(c.RowSpan)
	}
	if c.Align != html2doc.AlignNone {
		attrs["align"] = c.Align.String()
	}
	if len(attrs) > 0 {
		n.Attrs = attrs
	}
	return n
}

func tokenNodes(tokens []html2doc.CodeToken) []Node {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]Node, 0, len(tokens))
	for _, tok := range tokens {
		attrs := map[string]string{"kind": tok.Type}
		if tok.Color != "" {
			attrs["color"] = tok.Color
		}
		if tok.Bold {
			attrs["bold"] = "true"
		}
		if tok.Italic {
			attrs["italic"] = "true"
		}
		out = append(out, Node{Type: "token", Text: tok.Text, Attrs: attrs})
	}
	return out
}
