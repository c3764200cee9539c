package html2doc

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// blockTags lists the element names rendered as blocks when passed through
// untouched by the PassThrough policy.
var blockTags = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Body:       true,
	atom.Caption:    true,
	atom.Center:     true,
	atom.Colgroup:   true,
	atom.Dd:         true,
	atom.Details:    true,
	atom.Dialog:     true,
	atom.Dir:        true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.Frameset:   true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Head:       true,
	atom.Header:     true,
	atom.Hgroup:     true,
	atom.Hr:         true,
	atom.Html:       true,
	atom.Legend:     true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Menu:       true,
	atom.Nav:        true,
	atom.Noframes:   true,
	atom.Noscript:   true,
	atom.Ol:         true,
	atom.Optgroup:   true,
	atom.Option:     true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Script:     true,
	atom.Section:    true,
	atom.Style:      true,
	atom.Summary:    true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Template:   true,
	atom.Tfoot:      true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

// IsBlockTag reports whether the HTML element name is block-level.
// The comparison is case-insensitive; unknown names are inline.
func IsBlockTag(name string) bool {
	a := atom.Lookup([]byte(strings.ToLower(name)))
	if a == 0 {
		return false
	}
	return blockTags[a]
}
