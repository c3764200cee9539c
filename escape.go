package html2doc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2doc/internal/pipeline"
)

// escapeMarker switches a sibling list from HTML conversion to Markdown.
const escapeMarker = "\n\n"

// escapeSplit locates the first escape marker among direct text children.
type escapeSplit struct {
	index  int // sibling index of the text node
	offset int // byte offset of the marker inside the node's text
}

func (m *Manager) escapeEnabled() bool {
	return m.escape && m.engine != nil
}

// findEscape scans the direct text nodes of a sibling list for the first
// double newline.
func findEscape(nodes []*html.Node) (escapeSplit, bool) {
	for i, n := range nodes {
		if n.Type != html.TextNode {
			continue
		}
		if t := strings.Index(n.Data, escapeMarker); t >= 0 {
			return escapeSplit{index: i, offset: t}, true
		}
	}
	return escapeSplit{}, false
}

// walkEscaped converts the siblings before the split as HTML, hands the text
// before the marker to the text converters (unless it is incidental
// whitespace), and sends everything after the marker, later siblings
// included, to the engine in one call as serialized markup.
func (m *Manager) walkEscaped(nodes []*html.Node, split escapeSplit, st *walkState) ([]Element, error) {
	out, err := m.jag(nodes[:split.index], st)
	if err != nil {
		return nil, err
	}

	owner := nodes[split.index]
	// Blank text after a block is incidental, as in jag.
	if before := owner.Data[:split.offset]; before != "" && !(st.lastWasBlock && isBlank(before)) {
		head, err := m.classify(&html.Node{Type: html.TextNode, Data: before}, st)
		if err != nil {
			return nil, err
		}
		st.emit(head)
		out = append(out, head...)
	}

	var buf strings.Builder
	buf.WriteString(html.EscapeString(owner.Data[split.offset+len(escapeMarker):]))
	for _, sib := range nodes[split.index+1:] {
		markup, err := outerMarkup(sib)
		if err != nil {
			return nil, err
		}
		buf.WriteString(markup)
	}

	m.logger.Debug("escaping to markdown engine",
		"index", split.index,
		"offset", split.offset,
		"bytes", buf.Len())

	convert := m.engine.Convert
	if me, ok := m.engine.(MarkupEngine); ok {
		convert = me.ConvertMarkup
	}
	tail, err := convert(pipeline.NormalizeLineEndings(buf.String()), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarkdownEngine, err)
	}
	st.emit(tail)
	return append(out, tail...), nil
}
