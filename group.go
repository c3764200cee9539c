package html2doc

import "strings"

// Group merges consecutive inline elements into paragraphs.
//
// Blocks are kept in place and close the current inline run. Each run is
// trimmed before it is wrapped: whitespace-only runs at either end are
// dropped, then leading and trailing whitespace is cut from the run and
// around every LineBreak. A run with nothing left produces no paragraph.
// The input is not modified.
func Group(elements []Element) []Block {
	var (
		out []Block
		run []Inline
	)
	flush := func() {
		if p, ok := paragraph(run); ok {
			out = append(out, p)
		}
		run = nil
	}

	for _, e := range elements {
		switch v := e.(type) {
		case Block:
			flush()
			out = append(out, v)
		case Inline:
			run = append(run, v)
		}
	}
	flush()
	return out
}

// paragraph trims an inline run and wraps it, reporting false when the
// trimmed run is empty.
func paragraph(run []Inline) (Paragraph, bool) {
	inlines := trimInlines(run)
	if len(inlines) == 0 {
		return Paragraph{}, false
	}
	return Paragraph{Inlines: inlines}, true
}

// trimInlines returns a trimmed copy of run. Whitespace-only runs at either
// end are dropped, then the first element, the last element and the direct
// neighbours of every LineBreak are trimmed. An element trimmed to nothing is
// dropped without trimming the one behind it.
func trimInlines(run []Inline) []Inline {
	start, end := 0, len(run)
	for start < end && isBlankRun(run[start]) {
		start++
	}
	for end > start && isBlankRun(run[end-1]) {
		end--
	}
	if start == end {
		return nil
	}

	items := make([]Inline, end-start)
	copy(items, run[start:end])
	keep := make([]bool, len(items))
	for i := range keep {
		keep[i] = true
	}
	trimAt := func(i int, trim func(Inline) (Inline, bool)) {
		if i < 0 || i >= len(items) || !keep[i] {
			return
		}
		if _, ok := items[i].(LineBreak); ok {
			return
		}
		items[i], keep[i] = trim(items[i])
	}

	trimAt(0, trimInlineStart)
	trimAt(len(items)-1, trimInlineEnd)
	for i, in := range items {
		if _, ok := in.(LineBreak); ok {
			trimAt(i-1, trimInlineEnd)
			trimAt(i+1, trimInlineStart)
		}
	}

	var out []Inline
	for i, in := range items {
		if keep[i] {
			out = append(out, in)
		}
	}
	return out
}

// isBlankRun reports whether in is a text run holding only whitespace.
func isBlankRun(in Inline) bool {
	r, ok := in.(Run)
	return ok && isBlank(r.Text)
}

// trimSequenceStart trims leading whitespace from the first inline of seq,
// dropping it when nothing is left.
func trimSequenceStart(seq []Inline) []Inline {
	return trimFirst(seq, 0, trimInlineStart)
}

// trimSequenceEnd trims trailing whitespace from the last inline of seq,
// dropping it when nothing is left.
func trimSequenceEnd(seq []Inline) []Inline {
	return trimFirst(seq, len(seq)-1, trimInlineEnd)
}

// trimFirst returns a copy of seq with the inline at i trimmed, or removed
// when trim leaves nothing. The result is nil when empty.
func trimFirst(seq []Inline, i int, trim func(Inline) (Inline, bool)) []Inline {
	if len(seq) == 0 {
		return nil
	}
	trimmed, keep := trim(seq[i])
	out := make([]Inline, 0, len(seq))
	out = append(out, seq[:i]...)
	if keep {
		out = append(out, trimmed)
	}
	out = append(out, seq[i+1:]...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// trimInlineStart cuts leading whitespace from in. Spans and hyperlinks are
// trimmed through their first child only. keep is false when nothing is left.
func trimInlineStart(in Inline) (Inline, bool) {
	switch v := in.(type) {
	case Run:
		v.Text = strings.TrimLeft(v.Text, htmlSpace)
		return v, v.Text != ""
	case Span:
		v.Inlines = trimSequenceStart(v.Inlines)
		return v, len(v.Inlines) > 0
	case Hyperlink:
		v.Inlines = trimSequenceStart(v.Inlines)
		return v, true
	default:
		return in, true
	}
}

// trimInlineEnd is the mirror of trimInlineStart.
func trimInlineEnd(in Inline) (Inline, bool) {
	switch v := in.(type) {
	case Run:
		v.Text = strings.TrimRight(v.Text, htmlSpace)
		return v, v.Text != ""
	case Span:
		v.Inlines = trimSequenceEnd(v.Inlines)
		return v, len(v.Inlines) > 0
	case Hyperlink:
		v.Inlines = trimSequenceEnd(v.Inlines)
		return v, true
	default:
		return in, true
	}
}
