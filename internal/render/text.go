package render

import (
	"strconv"
	"strings"

	html2doc "github.com/alnah/go-html2doc"
)

// Text renders blocks as plain text separated by blank lines.
func Text(blocks []html2doc.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := blockText(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// InlineText renders inlines as a single string; LineBreaks become newlines.
func InlineText(inlines []html2doc.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		writeInline(&b, in)
	}
	return b.String()
}

func writeInline(b *strings.Builder, in html2doc.Inline) {
	switch in := in.(type) {
	case html2doc.Run:
		b.WriteString(in.Text)
	case html2doc.Span:
		for _, c := range in.Inlines {
			writeInline(b, c)
		}
	case html2doc.Hyperlink:
		label := InlineText(in.Inlines)
		b.WriteString(label)
		if in.URL != "" && in.URL != label {
			b.WriteString(" <" + in.URL + ">")
		}
	case html2doc.Image:
		alt := in.Alt
		if alt == "" {
			alt = in.Source
		}
		b.WriteString("[image: " + alt + "]")
	case html2doc.LineBreak:
		b.WriteString("\n")
	case html2doc.CheckBox:
		b.WriteString(checkMark(in.Checked))
	case html2doc.RawInline:
		b.WriteString(in.Markup)
	}
}

func blockText(b html2doc.Block) string {
	switch b := b.(type) {
	case html2doc.Paragraph:
		return InlineText(b.Inlines)
	case html2doc.Heading:
		return strings.Repeat("#", b.Level) + " " + InlineText(b.Inlines)
	case html2doc.CodeBlock:
		return indent(b.Code, "    ", "    ")
	case html2doc.List:
		return listText(b)
	case html2doc.Blockquote:
		return indent(Text(b.Blocks), "> ", "> ")
	case html2doc.Section:
		return Text(b.Blocks)
	case html2doc.Rule:
		return "----"
	case html2doc.Table:
		return tableText(b)
	case html2doc.RawBlock:
		return b.Markup
	default:
		return ""
	}
}

func listText(l html2doc.List) string {
	items := make([]string, 0, len(l.Items))
	for i, item := range l.Items {
		marker := "- "
		if l.Ordered {
			marker = strconv.Itoa(l.Start+i) + ". "
		}
		if item.Checked != nil {
			marker += checkMark(*item.Checked) + " "
		}
		pad := strings.Repeat(" ", len(marker))
		items = append(items, indent(Text(item.Blocks), marker, pad))
	}
	return strings.Join(items, "\n")
}

func tableText(t html2doc.Table) string {
	var lines []string
	if len(t.Caption) > 0 {
		lines = append(lines, InlineText(t.Caption))
	}
	for _, row := range t.Head {
		lines = append(lines, rowText(row))
	}
	if len(t.Head) > 0 {
		lines = append(lines, "---")
	}
	for _, row := range t.Body {
		lines = append(lines, rowText(row))
	}
	if len(t.Foot) > 0 {
		lines = append(lines, "---")
	}
	for _, row := range t.Foot {
		lines = append(lines, rowText(row))
	}
	return strings.Join(lines, "\n")
}

func rowText(row html2doc.TableRow) string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = strings.ReplaceAll(Text(c.Blocks), "\n", " ")
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func checkMark(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// indent prefixes the first line of s with first and every other non-empty
// line with rest.
func indent(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = first + line
		case line == "":
			lines[i] = strings.TrimRight(rest, " ")
		default:
			lines[i] = rest + line
		}
	}
	return strings.Join(lines, "\n")
}
