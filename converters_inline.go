package html2doc

import (
	"strings"

	"golang.org/x/net/html"
)

// textConverter turns text nodes into runs, collapsing whitespace.
type textConverter struct{}

func (textConverter) TagNames() []string { return []string{TextTag} }

func (textConverter) ConvertInline(n *html.Node, _ *Manager) ([]Inline, bool, error) {
	s := collapseWhitespace(n.Data)
	if s == "" {
		return nil, true, nil
	}
	return []Inline{Run{Text: s}}, true, nil
}

// styleConverter wraps the inline content of formatting elements in a Span.
// Blocks nested inside keep their own formatting. Tags mapped to no style
// are transparent.
type styleConverter struct {
	styles map[string]Style
}

func newStyleConverter() styleConverter {
	return styleConverter{styles: map[string]Style{
		"b": Bold, "strong": Bold,
		"i": Italic, "em": Italic, "cite": Italic, "dfn": Italic, "var": Italic,
		"u": Underline, "ins": Underline,
		"s": Strikethrough, "strike": Strikethrough, "del": Strikethrough,
		"code": Code, "kbd": Code, "samp": Code, "tt": Code,
		"sub":  Subscript,
		"sup":  Superscript,
		"mark": Highlight,
		"span": 0, "small": 0, "big": 0, "font": 0, "abbr": 0, "time": 0, "label": 0,
	}}
}

func (c styleConverter) TagNames() []string {
	names := make([]string, 0, len(c.styles))
	for name := range c.styles {
		names = append(names, name)
	}
	return names
}

func (c styleConverter) Convert(n *html.Node, m *Manager) ([]Element, bool, error) {
	elements, err := m.ClassifyChildren(n)
	if err != nil {
		return nil, false, err
	}
	style := c.styles[tagName(n)]
	if style == 0 {
		return elements, true, nil
	}

	var (
		out []Element
		run []Inline
	)
	flush := func() {
		if len(run) > 0 {
			out = append(out, Span{Style: style, Inlines: run})
			run = nil
		}
	}
	for _, e := range elements {
		if in, ok := e.(Inline); ok {
			run = append(run, in)
			continue
		}
		flush()
		out = append(out, e)
	}
	flush()
	return out, true, nil
}

type lineBreakConverter struct{}

func (lineBreakConverter) TagNames() []string { return []string{"br"} }

func (lineBreakConverter) ConvertInline(*html.Node, *Manager) ([]Inline, bool, error) {
	return []Inline{LineBreak{}}, true, nil
}

// linkConverter turns anchors into hyperlinks. Anchors without href are
// plain targets and contribute only their content.
type linkConverter struct{}

func (linkConverter) TagNames() []string { return []string{"a"} }

func (linkConverter) Convert(n *html.Node, m *Manager) ([]Element, bool, error) {
	if !HasAttr(n, "href") {
		elements, err := m.ClassifyChildren(n)
		return elements, err == nil, err
	}
	inlines, err := inlineContent(n, m)
	if err != nil {
		return nil, false, err
	}
	link := Hyperlink{
		URL:        m.ResolveURL(strings.TrimSpace(Attr(n, "href"))),
		Title:      Attr(n, "title"),
		Inlines:    inlines,
		OnActivate: m.LinkHandler(),
	}
	return []Element{link}, true, nil
}

// imageConverter handles img elements with a source.
type imageConverter struct{}

func (imageConverter) TagNames() []string { return []string{"img"} }

func (imageConverter) ConvertInline(n *html.Node, m *Manager) ([]Inline, bool, error) {
	src := strings.TrimSpace(Attr(n, "src"))
	if src == "" {
		return nil, false, nil
	}
	return []Inline{Image{
		Source: m.ResolveURL(src),
		Alt:    Attr(n, "alt"),
		Title:  Attr(n, "title"),
		Width:  Attr(n, "width"),
		Height: Attr(n, "height"),
	}}, true, nil
}

// checkboxConverter handles <input type="checkbox">. Other inputs are left
// to the next converter or the unknown-tag policy.
type checkboxConverter struct{}

func (checkboxConverter) TagNames() []string { return []string{"input"} }

func (checkboxConverter) ConvertInline(n *html.Node, _ *Manager) ([]Inline, bool, error) {
	if !strings.EqualFold(strings.TrimSpace(Attr(n, "type")), "checkbox") {
		return nil, false, nil
	}
	return []Inline{CheckBox{Checked: HasAttr(n, "checked")}}, true, nil
}
