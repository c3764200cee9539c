package html2doc

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// walkState is the state carried along one forward pass over siblings.
// Bypassed wrappers share the state of the list they appear in.
type walkState struct {
	ctx          context.Context
	lastWasBlock bool
}

func newWalkState(ctx context.Context) *walkState {
	return &walkState{ctx: ctx, lastWasBlock: true}
}

// walk classifies a sibling list. When the Markdown escape is active and a
// text node holds a double newline, the list is split at that point.
func (m *Manager) walk(nodes []*html.Node, st *walkState) ([]Element, error) {
	if m.escapeEnabled() {
		if split, ok := findEscape(nodes); ok {
			return m.walkEscaped(nodes, split, st)
		}
	}
	return m.jag(nodes, st)
}

// jag flattens siblings into elements in document order. Comments are
// dropped, and whitespace-only text is dropped at the start of the list or
// right after a block.
func (m *Manager) jag(nodes []*html.Node, st *walkState) ([]Element, error) {
	var out []Element
	for _, n := range nodes {
		if err := st.ctx.Err(); err != nil {
			return nil, err
		}

		switch n.Type {
		case html.CommentNode, html.DoctypeNode, html.ErrorNode:
			continue
		case html.TextNode:
			if st.lastWasBlock && isBlank(n.Data) {
				continue
			}
		}

		elements, err := m.classify(n, st)
		if err != nil {
			return nil, err
		}
		st.emit(elements)
		out = append(out, elements...)
	}
	return out, nil
}

// emit records whether the last emitted element was a block.
func (st *walkState) emit(elements []Element) {
	if len(elements) > 0 {
		st.lastWasBlock = IsBlock(elements[len(elements)-1])
	}
}

// classify dispatches one node to its converters in priority order and falls
// back to the UnknownTagPolicy when none of them matches.
func (m *Manager) classify(n *html.Node, st *walkState) ([]Element, error) {
	if n.Type == html.DocumentNode {
		return m.walk(childNodes(n), st)
	}

	tag := tagName(n)
	for _, e := range m.registry.entries(tag) {
		elements, ok, err := e.convert(n, m)
		if err != nil {
			return nil, err
		}
		if ok {
			return elements, nil
		}
	}
	return m.fallback(n, tag, st)
}

// fallback applies the UnknownTagPolicy to a node no converter matched.
func (m *Manager) fallback(n *html.Node, tag string, st *walkState) ([]Element, error) {
	switch m.policy {
	case PassThrough:
		m.logger.Debug("passing through unknown tag", "tag", tag)
		return passThrough(n, tag)
	case Drop:
		m.logger.Debug("dropping unknown tag", "tag", tag)
		return nil, nil
	case Bypass:
		// A text node has no wrapper to look through.
		if n.Type == html.TextNode {
			m.logger.Debug("passing through unhandled text", "tag", tag)
			return passThrough(n, tag)
		}
		m.logger.Debug("bypassing unknown tag", "tag", tag)
		return m.walk(childNodes(n), st)
	default:
		return nil, &UnrecognizedTagError{Node: n, Policy: m.policy}
	}
}

// passThrough keeps n as serialized markup.
func passThrough(n *html.Node, tag string) ([]Element, error) {
	markup, err := outerMarkup(n)
	if err != nil {
		return nil, err
	}
	if n.Type == html.ElementNode && IsBlockTag(tag) {
		return []Element{RawBlock{Markup: markup}}, nil
	}
	return []Element{RawInline{Markup: markup}}, nil
}

// htmlSpace is the set of HTML whitespace characters. Non-breaking spaces
// are content, not whitespace.
const htmlSpace = " \t\n\r\f"

func isBlank(s string) bool {
	return strings.Trim(s, htmlSpace) == ""
}
