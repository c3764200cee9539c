package html2doc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// paragraphConverter groups the content of <p>. Empty paragraphs vanish.
type paragraphConverter struct{}

func (paragraphConverter) TagNames() []string { return []string{"p"} }

func (paragraphConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	blocks, err := m.ConvertChildrenGrouped(n)
	if err != nil {
		return nil, false, err
	}
	return blocks, true, nil
}

type headingConverter struct{}

func (headingConverter) TagNames() []string {
	return []string{"h1", "h2", "h3", "h4", "h5", "h6"}
}

func (headingConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	level, err := strconv.Atoi(strings.TrimPrefix(tagName(n), "h"))
	if err != nil {
		return nil, false, nil
	}
	inlines, err := inlineContent(n, m)
	if err != nil {
		return nil, false, err
	}
	return []Block{Heading{
		Level:   level,
		ID:      Attr(n, "id"),
		Inlines: trimInlines(inlines),
	}}, true, nil
}

type ruleConverter struct{}

func (ruleConverter) TagNames() []string { return []string{"hr"} }

func (ruleConverter) ConvertBlock(*html.Node, *Manager) ([]Block, bool, error) {
	return []Block{Rule{}}, true, nil
}

type blockquoteConverter struct{}

func (blockquoteConverter) TagNames() []string { return []string{"blockquote"} }

func (blockquoteConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	blocks, err := m.ConvertChildrenGrouped(n)
	if err != nil {
		return nil, false, err
	}
	return []Block{Blockquote{Blocks: blocks}}, true, nil
}

// sectionConverter maps generic containers to Section blocks.
type sectionConverter struct{}

func (sectionConverter) TagNames() []string {
	return []string{
		"div", "section", "article", "main", "header", "footer", "nav",
		"aside", "figure", "figcaption", "details", "summary", "center",
		"address", "hgroup",
	}
}

func (sectionConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	blocks, err := m.ConvertChildrenGrouped(n)
	if err != nil {
		return nil, false, err
	}
	if len(blocks) == 0 {
		return nil, true, nil
	}
	return []Block{Section{Tag: tagName(n), Blocks: blocks}}, true, nil
}

// ignoredConverter swallows elements that carry no document content.
type ignoredConverter struct{}

func (ignoredConverter) TagNames() []string {
	return []string{"script", "style", "template", "noscript", "head", "meta", "link", "title", "base"}
}

func (ignoredConverter) Convert(*html.Node, *Manager) ([]Element, bool, error) {
	return nil, true, nil
}

// preConverter turns <pre> into a code block. The language comes from a
// language-* or lang-* class on the pre or on a code child.
type preConverter struct{}

func (preConverter) TagNames() []string { return []string{"pre"} }

func (preConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	language := classLanguage(n)
	if language == "" {
		if code := onlyCodeChild(n); code != nil {
			language = classLanguage(code)
		}
	}
	code := strings.TrimSuffix(TextContent(n), "\n")
	return []Block{CodeBlock{
		Language: language,
		Code:     code,
		Tokens:   m.Highlight(language, code),
	}}, true, nil
}

// onlyCodeChild returns the code element wrapping all of n's content, if any.
func onlyCodeChild(n *html.Node) *html.Node {
	var code *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Code && code == nil:
			code = c
		case c.Type == html.TextNode && isBlank(c.Data):
		default:
			return nil
		}
	}
	return code
}

func classLanguage(n *html.Node) string {
	for _, class := range strings.Fields(Attr(n, "class")) {
		for _, prefix := range []string{"language-", "lang-"} {
			if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

// listConverter handles ul and ol. Content outside li elements is attached
// to the preceding item.
type listConverter struct{}

func (listConverter) TagNames() []string { return []string{"ul", "ol"} }

func (listConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	list := List{Ordered: n.DataAtom == atom.Ol}
	if list.Ordered {
		list.Start = 1
		if v, err := strconv.Atoi(strings.TrimSpace(Attr(n, "start"))); err == nil {
			list.Start = v
		}
	}

	var stray []*html.Node
	attachStray := func() error {
		if len(stray) == 0 {
			return nil
		}
		elements, err := m.ClassifyNodes(stray)
		stray = nil
		if err != nil {
			return err
		}
		blocks := Group(elements)
		if len(blocks) == 0 {
			return nil
		}
		if len(list.Items) == 0 {
			list.Items = append(list.Items, ListItem{})
		}
		last := &list.Items[len(list.Items)-1]
		last.Blocks = append(last.Blocks, blocks...)
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			stray = append(stray, c)
			continue
		}
		if err := attachStray(); err != nil {
			return nil, false, err
		}
		blocks, err := m.ConvertChildrenGrouped(c)
		if err != nil {
			return nil, false, err
		}
		list.Items = append(list.Items, taskItem(blocks))
	}
	if err := attachStray(); err != nil {
		return nil, false, err
	}
	return []Block{list}, true, nil
}
