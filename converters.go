package html2doc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// builtinConverters returns the converters every Manager starts with,
// unless built WithoutBuiltinConverters.
func builtinConverters() []Converter {
	return []Converter{
		textConverter{},
		paragraphConverter{},
		headingConverter{},
		newStyleConverter(),
		lineBreakConverter{},
		ruleConverter{},
		linkConverter{},
		imageConverter{},
		listConverter{},
		blockquoteConverter{},
		sectionConverter{},
		preConverter{},
		tableConverter{},
		checkboxConverter{},
		ignoredConverter{},
	}
}

// inlineContent converts the children of n and flattens any blocks among
// them into their inline text, separated by line breaks.
func inlineContent(n *html.Node, m *Manager) ([]Inline, error) {
	elements, err := m.ClassifyChildren(n)
	if err != nil {
		return nil, err
	}
	return toInlines(elements), nil
}

func toInlines(elements []Element) []Inline {
	var (
		out     []Inline
		pending []Block
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		ins := blockInlines(pending)
		if len(ins) > 0 && len(out) > 0 {
			out = append(out, LineBreak{})
		}
		out = append(out, ins...)
		pending = nil
	}
	for _, e := range elements {
		switch v := e.(type) {
		case Inline:
			flush()
			out = append(out, v)
		case Block:
			pending = append(pending, v)
		}
	}
	flush()
	return out
}

// intAttr returns the integer value of an attribute, or def when it is
// missing or not a positive number.
func intAttr(n *html.Node, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(Attr(n, key)))
	if err != nil || v < 1 {
		return def
	}
	return v
}
