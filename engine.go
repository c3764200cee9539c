package html2doc

import (
	"bytes"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/alnah/go-html2doc/internal/pipeline"
)

// Engine converts Markdown source into elements.
//
// block is true when the source stands at block level, as it does for the
// raw-markup escape. With block false, paragraphs are flattened into inlines
// separated by line breaks.
type Engine interface {
	Convert(source string, block bool) ([]Element, error)
}

// EngineHost is what an engine needs from the Manager to send embedded HTML
// back through the converters and to resolve references the same way.
type EngineHost interface {
	Parse(src string) ([]Block, error)
	ResolveURL(ref string) string
	LinkHandler() LinkHandler
	Highlight(language, code string) []CodeToken
}

// MarkupEngine is implemented by engines that also accept source rebuilt from
// parsed HTML, where text is entity-escaped. The raw-markup escape prefers it
// over Convert.
type MarkupEngine interface {
	ConvertMarkup(source string, block bool) ([]Element, error)
}

// HostBinder is implemented by engines that call back into the Manager.
// NewManager binds its engine once it is fully built.
type HostBinder interface {
	Bind(host EngineHost)
}

// GoldmarkEngine is the default Engine: CommonMark with GitHub Flavored
// Markdown and footnotes, parsed by goldmark and walked into elements.
//
// HTML found in the Markdown is handed back to the bound host, so HTML and
// Markdown can nest in both directions. A GoldmarkEngine is safe for
// concurrent use; binding it to a second Manager replaces the first.
type GoldmarkEngine struct {
	md   goldmark.Markdown
	host atomic.Pointer[EngineHost]
}

// NewGoldmarkEngine creates a GoldmarkEngine. Extra goldmark extensions are
// added after GFM and footnotes.
func NewGoldmarkEngine(extensions ...goldmark.Extender) *GoldmarkEngine {
	exts := append([]goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}, extensions...)

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Rendered HTML only ever goes back to the host's converters.
			gmhtml.WithUnsafe(),
		),
	)
	return &GoldmarkEngine{md: md}
}

// Bind implements HostBinder.
func (e *GoldmarkEngine) Bind(host EngineHost) {
	if host == nil {
		e.host.Store(nil)
		return
	}
	e.host.Store(&host)
}

// Convert implements Engine.
func (e *GoldmarkEngine) Convert(source string, block bool) ([]Element, error) {
	return e.convert(source, block, false)
}

// ConvertMarkup implements MarkupEngine. Code spans and blocks are
// unescaped, since their entities came from serialization, not the author.
func (e *GoldmarkEngine) ConvertMarkup(source string, block bool) ([]Element, error) {
	return e.convert(source, block, true)
}

func (e *GoldmarkEngine) convert(source string, block, markup bool) ([]Element, error) {
	src := []byte(pipeline.PreprocessMarkdown(source))
	doc := e.md.Parser().Parse(text.NewReader(src))

	c := &mdConverter{md: e.md, src: src, markup: markup}
	if h := e.host.Load(); h != nil {
		c.host = *h
	}

	blocks, err := c.blocks(doc)
	if err != nil {
		return nil, err
	}
	if block {
		return blocksToElements(blocks), nil
	}
	return flattenParagraphs(blocks), nil
}

// flattenParagraphs turns paragraphs into inline runs separated by line
// breaks. Other blocks are kept.
func flattenParagraphs(blocks []Block) []Element {
	var out []Element
	prevInline := false
	for _, b := range blocks {
		p, ok := b.(Paragraph)
		if !ok {
			out = append(out, b)
			prevInline = false
			continue
		}
		if prevInline {
			out = append(out, LineBreak{})
		}
		out = append(out, inlinesToElements(p.Inlines)...)
		prevInline = true
	}
	return out
}

// mdConverter walks one goldmark AST.
type mdConverter struct {
	md     goldmark.Markdown
	host   EngineHost
	src    []byte
	markup bool // source is serialized HTML
}

func (c *mdConverter) blocks(parent ast.Node) ([]Block, error) {
	var out []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		bs, err := c.block(n)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func (c *mdConverter) block(n ast.Node) ([]Block, error) {
	switch v := n.(type) {
	case *ast.Heading:
		if c.host != nil && hasRawHTML(v) {
			return c.viaHTML(v)
		}
		inlines, err := c.inlines(v)
		if err != nil {
			return nil, err
		}
		return []Block{Heading{Level: v.Level, ID: headingID(v), Inlines: trimInlines(inlines)}}, nil

	case *ast.Paragraph, *ast.TextBlock:
		if c.host != nil && hasRawHTML(v) {
			return c.viaHTML(v)
		}
		inlines, err := c.inlines(v)
		if err != nil {
			return nil, err
		}
		if p, ok := paragraph(inlines); ok {
			return []Block{p}, nil
		}
		return nil, nil

	case *ast.ThematicBreak:
		return []Block{Rule{}}, nil

	case *ast.FencedCodeBlock:
		language := ""
		if v.Info != nil {
			language = string(v.Language(c.src))
		}
		return []Block{c.codeBlock(language, c.lines(v))}, nil

	case *ast.CodeBlock:
		return []Block{c.codeBlock("", c.lines(v))}, nil

	case *ast.Blockquote:
		inner, err := c.blocks(v)
		if err != nil {
			return nil, err
		}
		return []Block{Blockquote{Blocks: inner}}, nil

	case *ast.List:
		return c.list(v)

	case *ast.HTMLBlock:
		markup := c.lines(v)
		if v.HasClosure() {
			markup += string(v.ClosureLine.Value(c.src))
		}
		markup = pipeline.RestoreHighlights(markup)
		if c.host == nil {
			return []Block{RawBlock{Markup: markup}}, nil
		}
		return c.host.Parse(markup)

	case *east.Table:
		return c.table(v)

	case *east.FootnoteList:
		return c.footnotes(v)

	default:
		if n.Type() == ast.TypeBlock {
			return c.blocks(n)
		}
		return nil, nil
	}
}

// viaHTML renders n back to HTML and converts the result with the host.
// Used for nodes mixing Markdown with inline HTML, whose tags only pair up
// once the whole node is seen as HTML.
func (c *mdConverter) viaHTML(n ast.Node) ([]Block, error) {
	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, c.src, n); err != nil {
		return nil, err
	}
	return c.host.Parse(pipeline.ConvertMarkPlaceholders(buf.String()))
}

func (c *mdConverter) codeBlock(language, code string) CodeBlock {
	code = strings.TrimSuffix(c.literalCode(pipeline.RestoreHighlights(code)), "\n")
	cb := CodeBlock{Language: language, Code: code}
	if c.host != nil {
		cb.Tokens = c.host.Highlight(language, code)
	}
	return cb
}

func (c *mdConverter) list(v *ast.List) ([]Block, error) {
	l := List{Ordered: v.IsOrdered()}
	if l.Ordered {
		l.Start = v.Start
	}
	for item := v.FirstChild(); item != nil; item = item.NextSibling() {
		blocks, err := c.blocks(item)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, taskItem(blocks))
	}
	return []Block{l}, nil
}

func (c *mdConverter) table(v *east.Table) ([]Block, error) {
	var t Table
	for row := v.FirstChild(); row != nil; row = row.NextSibling() {
		_, header := row.(*east.TableHeader)
		var r TableRow
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tc, err := c.tableCell(cell, header)
			if err != nil {
				return nil, err
			}
			r.Cells = append(r.Cells, tc)
		}
		if header {
			t.Head = append(t.Head, r)
		} else {
			t.Body = append(t.Body, r)
		}
	}
	return []Block{t}, nil
}

func (c *mdConverter) tableCell(n ast.Node, header bool) (TableCell, error) {
	tc := TableCell{Header: header, ColSpan: 1, RowSpan: 1}
	if cell, ok := n.(*east.TableCell); ok {
		tc.Align = alignmentOf(cell.Alignment)
	}
	inlines, err := c.inlines(n)
	if err != nil {
		return TableCell{}, err
	}
	if p, ok := paragraph(inlines); ok {
		tc.Blocks = []Block{p}
	}
	return tc, nil
}

func alignmentOf(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}

func (c *mdConverter) footnotes(v *east.FootnoteList) ([]Block, error) {
	l := List{Ordered: true, Start: 1}
	for fn := v.FirstChild(); fn != nil; fn = fn.NextSibling() {
		blocks, err := c.blocks(fn)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, ListItem{Blocks: blocks})
	}
	return []Block{l}, nil
}

func (c *mdConverter) inlines(parent ast.Node) ([]Inline, error) {
	var out []Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		ins, err := c.inline(n)
		if err != nil {
			return nil, err
		}
		out = append(out, ins...)
	}
	return applyMarks(mergeRuns(out)), nil
}

func (c *mdConverter) inline(n ast.Node) ([]Inline, error) {
	switch v := n.(type) {
	case *ast.Text:
		s := resolveText(v.Segment.Value(c.src))
		if v.SoftLineBreak() {
			s += " "
		}
		out := []Inline{Run{Text: s}}
		if v.HardLineBreak() {
			out = append(out, LineBreak{})
		}
		return out, nil

	case *ast.String:
		return []Inline{Run{Text: string(v.Value)}}, nil

	case *ast.CodeSpan:
		code := c.literalCode(pipeline.RestoreHighlights(c.rawText(v)))
		return []Inline{Run{Text: code, Style: Code}}, nil

	case *ast.Emphasis:
		style := Italic
		if v.Level >= 2 {
			style = Bold
		}
		return c.span(v, style)

	case *east.Strikethrough:
		return c.span(v, Strikethrough)

	case *ast.Link:
		inner, err := c.inlines(v)
		if err != nil {
			return nil, err
		}
		return []Inline{c.hyperlink(string(v.Destination), string(v.Title), inner)}, nil

	case *ast.AutoLink:
		url := string(v.URL(c.src))
		if v.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		label := []Inline{Run{Text: string(v.Label(c.src))}}
		return []Inline{c.hyperlink(url, "", label)}, nil

	case *ast.Image:
		src := pipeline.RestoreHighlights(string(v.Destination))
		if c.host != nil {
			src = c.host.ResolveURL(src)
		}
		return []Inline{Image{
			Source: src,
			Alt:    pipeline.RestoreHighlights(c.plainText(v)),
			Title:  string(v.Title),
		}}, nil

	case *east.TaskCheckBox:
		return []Inline{CheckBox{Checked: v.IsChecked}}, nil

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		markup := pipeline.RestoreHighlights(b.String())
		if c.host == nil {
			return []Inline{RawInline{Markup: markup}}, nil
		}
		blocks, err := c.host.Parse(markup)
		if err != nil {
			return nil, err
		}
		return blockInlines(blocks), nil

	case *east.FootnoteLink:
		return []Inline{Span{
			Style:   Superscript,
			Inlines: []Inline{Run{Text: strconv.Itoa(v.Index)}},
		}}, nil

	case *east.FootnoteBacklink:
		return nil, nil

	default:
		return c.inlines(n)
	}
}

func (c *mdConverter) span(n ast.Node, style Style) ([]Inline, error) {
	inner, err := c.inlines(n)
	if err != nil {
		return nil, err
	}
	return []Inline{Span{Style: style, Inlines: inner}}, nil
}

func (c *mdConverter) hyperlink(dest, title string, inner []Inline) Hyperlink {
	dest = pipeline.RestoreHighlights(dest)
	h := Hyperlink{URL: dest, Title: title, Inlines: inner}
	if c.host != nil {
		h.URL = c.host.ResolveURL(dest)
		h.OnActivate = c.host.LinkHandler()
	}
	return h
}

// lines joins the raw source lines of a block node.
func (c *mdConverter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.src))
	}
	return b.String()
}

// literalCode undoes the entity escaping of serialized markup in code.
func (c *mdConverter) literalCode(code string) string {
	if !c.markup {
		return code
	}
	return html.UnescapeString(code)
}

// resolveText applies backslash escapes and entity references to text.
func resolveText(b []byte) string {
	return string(util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(b))))
}

// plainText collects the text below n with escapes and entities resolved.
func (c *mdConverter) plainText(n ast.Node) string {
	return resolveText([]byte(c.rawText(n)))
}

// rawText collects the literal source text below n.
func (c *mdConverter) rawText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := child.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(c.src))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func headingID(h *ast.Heading) string {
	id, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch v := id.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return ""
	}
}

func hasRawHTML(n ast.Node) bool {
	found := false
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && child.Kind() == ast.KindRawHTML {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// blockInlines flattens the inline content of converted blocks, separating
// paragraphs with line breaks. Non-text blocks are dropped.
func blockInlines(blocks []Block) []Inline {
	var out []Inline
	for _, b := range blocks {
		var ins []Inline
		switch v := b.(type) {
		case Paragraph:
			ins = v.Inlines
		case Heading:
			ins = v.Inlines
		default:
			continue
		}
		if len(out) > 0 {
			out = append(out, LineBreak{})
		}
		out = append(out, ins...)
	}
	return out
}

// mergeRuns joins adjacent runs of the same style.
func mergeRuns(in []Inline) []Inline {
	if len(in) < 2 {
		return in
	}
	out := make([]Inline, 0, len(in))
	for _, x := range in {
		r, ok := x.(Run)
		if ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(Run); ok && prev.Style == r.Style {
				prev.Text += r.Text
				out[len(out)-1] = prev
				continue
			}
		}
		out = append(out, x)
	}
	return out
}

// applyMarks turns ==highlight== placeholders left in runs into highlight
// spans. Markers that do not pair up at the same level are dropped.
func applyMarks(in []Inline) []Inline {
	has := false
	for _, x := range in {
		if r, ok := x.(Run); ok && pipeline.HasPlaceholder(r.Text) {
			has = true
			break
		}
	}
	if !has {
		return in
	}

	stack := [][]Inline{nil}
	push := func(x Inline) {
		stack[len(stack)-1] = append(stack[len(stack)-1], x)
	}
	pop := func() []Inline {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	markers := pipeline.MarkStartPlaceholder + pipeline.MarkEndPlaceholder
	for _, x := range in {
		r, ok := x.(Run)
		if !ok || !pipeline.HasPlaceholder(r.Text) {
			push(x)
			continue
		}
		rest := r.Text
		for rest != "" {
			i := strings.IndexAny(rest, markers)
			if i < 0 {
				push(Run{Text: rest, Style: r.Style})
				break
			}
			if i > 0 {
				push(Run{Text: rest[:i], Style: r.Style})
			}
			rest = rest[i:]
			if strings.HasPrefix(rest, pipeline.MarkStartPlaceholder) {
				stack = append(stack, nil)
				rest = rest[len(pipeline.MarkStartPlaceholder):]
				continue
			}
			rest = rest[len(pipeline.MarkEndPlaceholder):]
			if len(stack) > 1 {
				inner := pop()
				push(Span{Style: Highlight, Inlines: mergeRuns(inner)})
			}
		}
	}
	for len(stack) > 1 {
		inner := pop()
		for _, x := range inner {
			push(x)
		}
	}
	return mergeRuns(stack[0])
}

// taskItem builds a list item, turning a leading checkbox in the first
// paragraph into the item's checked state.
func taskItem(blocks []Block) ListItem {
	if len(blocks) == 0 {
		return ListItem{}
	}
	p, ok := blocks[0].(Paragraph)
	if !ok || len(p.Inlines) == 0 {
		return ListItem{Blocks: blocks}
	}
	cb, ok := p.Inlines[0].(CheckBox)
	if !ok {
		return ListItem{Blocks: blocks}
	}

	checked := cb.Checked
	rest := trimSequenceStart(p.Inlines[1:])
	out := make([]Block, 0, len(blocks))
	if len(rest) > 0 {
		out = append(out, Paragraph{Inlines: rest})
	}
	out = append(out, blocks[1:]...)
	return ListItem{Checked: &checked, Blocks: out}
}
