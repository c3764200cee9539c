package html2doc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tableConverter turns <table> into a Table. A body whose first row holds
// only header cells gets that row promoted to the head.
type tableConverter struct{}

func (tableConverter) TagNames() []string { return []string{"table"} }

func (tableConverter) ConvertBlock(n *html.Node, m *Manager) ([]Block, bool, error) {
	var t Table
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Caption:
			inlines, err := inlineContent(c, m)
			if err != nil {
				return nil, false, err
			}
			t.Caption = trimInlines(inlines)
		case atom.Thead:
			rows, err := tableRows(c, m)
			if err != nil {
				return nil, false, err
			}
			t.Head = append(t.Head, rows...)
		case atom.Tbody:
			rows, err := tableRows(c, m)
			if err != nil {
				return nil, false, err
			}
			t.Body = append(t.Body, rows...)
		case atom.Tfoot:
			rows, err := tableRows(c, m)
			if err != nil {
				return nil, false, err
			}
			t.Foot = append(t.Foot, rows...)
		case atom.Tr:
			row, err := tableRow(c, m)
			if err != nil {
				return nil, false, err
			}
			t.Body = append(t.Body, row)
		}
	}

	if len(t.Head) == 0 && len(t.Body) > 0 && allHeaderCells(t.Body[0]) {
		t.Head, t.Body = t.Body[:1], t.Body[1:]
	}
	return []Block{t}, true, nil
}

func tableRows(group *html.Node, m *Manager) ([]TableRow, error) {
	var rows []TableRow
	for c := group.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Tr {
			continue
		}
		row, err := tableRow(c, m)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func tableRow(tr *html.Node, m *Manager) (TableRow, error) {
	var row TableRow
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		blocks, err := m.ConvertChildrenGrouped(c)
		if err != nil {
			return TableRow{}, err
		}
		row.Cells = append(row.Cells, TableCell{
			Header:  c.DataAtom == atom.Th,
			ColSpan: intAttr(c, "colspan", 1),
			RowSpan: intAttr(c, "rowspan", 1),
			Align:   cellAlignment(c),
			Blocks:  blocks,
		})
	}
	return row, nil
}

func allHeaderCells(row TableRow) bool {
	if len(row.Cells) == 0 {
		return false
	}
	for _, c := range row.Cells {
		if !c.Header {
			return false
		}
	}
	return true
}

// cellAlignment reads the align attribute, then a text-align declaration
// in the style attribute.
func cellAlignment(n *html.Node) Alignment {
	if a := parseAlignment(Attr(n, "align")); a != AlignNone {
		return a
	}
	for _, decl := range strings.Split(Attr(n, "style"), ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(prop), "text-align") {
			return parseAlignment(val)
		}
	}
	return AlignNone
}

func parseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignNone
	}
}
