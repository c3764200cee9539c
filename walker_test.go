package html2doc

// Notes:
// - Sibling lists are built with html.ParseFragment in a body context, so
//   the nodes are what a real parse would hand the walker.
// - The escape is disabled in most managers here; escape_test.go covers it.

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(opts...)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

// fragment parses src as the children of a body element.
func fragment(t *testing.T, src string) []*html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		t.Fatalf("ParseFragment(%q) error = %v", src, err)
	}
	return nodes
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func elementNode(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// ---------------------------------------------------------------------------
// TestWalk_WhitespaceAndComments
// ---------------------------------------------------------------------------

func TestWalk_WhitespaceAndComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes func() []*html.Node
		want  []Element
	}{
		{
			name: "comments and whitespace only",
			nodes: func() []*html.Node {
				return []*html.Node{
					textNode("  \n\t"),
					{Type: html.CommentNode, Data: "note"},
					textNode(" "),
					{Type: html.CommentNode, Data: "more"},
				}
			},
			want: nil,
		},
		{
			name: "leading whitespace node dropped",
			nodes: func() []*html.Node {
				return []*html.Node{textNode("  "), textNode("hello")}
			},
			want: []Element{Run{Text: "hello"}},
		},
		{
			name: "whitespace after a block dropped",
			nodes: func() []*html.Node {
				return []*html.Node{elementNode("hr"), textNode("  "), textNode("hello")}
			},
			want: []Element{Rule{}, Run{Text: "hello"}},
		},
		{
			name: "whitespace after an inline kept",
			nodes: func() []*html.Node {
				return []*html.Node{elementNode("br"), textNode("  "), textNode("x")}
			},
			want: []Element{LineBreak{}, Run{Text: " "}, Run{Text: "x"}},
		},
		{
			name: "comment does not reset block tracking",
			nodes: func() []*html.Node {
				return []*html.Node{elementNode("hr"), {Type: html.CommentNode, Data: "c"}, textNode("\n")}
			},
			want: []Element{Rule{}},
		},
		{
			name: "non-breaking space is content",
			nodes: func() []*html.Node {
				return []*html.Node{textNode("\u00a0")}
			},
			want: []Element{Run{Text: "\u00a0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, WithMarkdownEscape(false))
			got, err := m.ClassifyNodes(tt.nodes())
			if err != nil {
				t.Fatalf("ClassifyNodes() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyNodes() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWalk_UnknownTagPolicy
// ---------------------------------------------------------------------------

func TestWalk_UnknownTagPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy UnknownTagPolicy
		src    string
		want   []Element
	}{
		{
			name:   "drop discards node and children",
			policy: Drop,
			src:    "<foo>bar</foo>",
			want:   nil,
		},
		{
			name:   "bypass converts children in place",
			policy: Bypass,
			src:    "<foo><i>x</i></foo>",
			want:   []Element{Span{Style: Italic, Inlines: []Inline{Run{Text: "x"}}}},
		},
		{
			name:   "bypass nests",
			policy: Bypass,
			src:    "<foo><bar>a<hr>b</bar></foo>",
			want:   []Element{Run{Text: "a"}, Rule{}, Run{Text: "b"}},
		},
		{
			name:   "pass-through inline markup",
			policy: PassThrough,
			src:    `<foo class="x">bar</foo>`,
			want:   []Element{RawInline{Markup: `<foo class="x">bar</foo>`}},
		},
		{
			name:   "pass-through block markup",
			policy: PassThrough,
			src:    "<dl><dt>term</dt></dl>",
			want:   []Element{RawBlock{Markup: "<dl><dt>term</dt></dl>"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, WithUnknownTagPolicy(tt.policy), WithMarkdownEscape(false))
			got, err := m.ClassifyNodes(fragment(t, tt.src))
			if err != nil {
				t.Fatalf("ClassifyNodes() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyNodes() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestWalk_TextWithoutConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy UnknownTagPolicy
		src    string
		want   []Element
	}{
		{
			name:   "bypass keeps text under unknown wrapper",
			policy: Bypass,
			src:    "<foo>a &lt; b</foo>",
			want:   []Element{RawInline{Markup: "a &lt; b"}},
		},
		{
			name:   "pass-through escapes text",
			policy: PassThrough,
			src:    "a & b",
			want:   []Element{RawInline{Markup: "a &amp; b"}},
		},
		{
			name:   "drop discards text",
			policy: Drop,
			src:    "<foo>a</foo>b",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestManager(t, WithoutBuiltinConverters(), WithUnknownTagPolicy(tt.policy), WithoutEngine())
			got, err := m.ClassifyNodes(fragment(t, tt.src))
			if err != nil {
				t.Fatalf("ClassifyNodes() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyNodes() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestWalk_BypassEqualsChildren(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, WithUnknownTagPolicy(Bypass))
	wrapped, err := m.ClassifyNodes(fragment(t, "<foo><i>x</i></foo>"))
	if err != nil {
		t.Fatal(err)
	}
	bare, err := m.ClassifyNodes(fragment(t, "<i>x</i>"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(wrapped, bare) {
		t.Errorf("bypass output %#v differs from bare children %#v", wrapped, bare)
	}
}

func TestWalk_InvalidPolicy(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, WithUnknownTagPolicy(UnknownTagPolicy(42)))
	nodes := fragment(t, "<p>ok <foo>bar</foo></p>")

	_, err := m.ClassifyNodes(nodes)
	if !errors.Is(err, ErrUnrecognizedTag) {
		t.Fatalf("ClassifyNodes() error = %v, want ErrUnrecognizedTag", err)
	}
	var tagErr *UnrecognizedTagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("error %T is not *UnrecognizedTagError", err)
	}
	if tagErr.Node == nil || tagErr.Node.Data != "foo" {
		t.Errorf("error node = %v, want <foo>", tagErr.Node)
	}
	if !strings.Contains(err.Error(), "<foo>") {
		t.Errorf("error message = %q, want tag name", err)
	}

	if _, err := m.Parse("<p>ok <foo>bar</foo></p>"); !errors.Is(err, ErrUnrecognizedTag) {
		t.Errorf("Parse() error = %v, want ErrUnrecognizedTag", err)
	}
}

// ---------------------------------------------------------------------------
// TestClassify - Converter fallthrough
// ---------------------------------------------------------------------------

func TestClassify_FallsThroughDeclinedConverters(t *testing.T) {
	t.Parallel()

	declining := prio("declined", 1, "foo")
	declining.decline = true
	m := newTestManager(t,
		WithoutBuiltinConverters(),
		WithUnknownTagPolicy(Drop),
		WithConverters(conv("fallback", "foo"), declining),
	)

	got, err := m.ClassifyNode(elementNode("foo"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []Element{Run{Text: "fallback"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("ClassifyNode() = %#v, want %#v", got, want)
	}
}

func TestClassify_AllDeclineUsesPolicy(t *testing.T) {
	t.Parallel()

	declining := conv("declined", "foo")
	declining.decline = true
	m := newTestManager(t, WithoutBuiltinConverters(), WithUnknownTagPolicy(Drop), WithConverters(declining))

	got, err := m.ClassifyNode(elementNode("foo", textNode("x")))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("ClassifyNode() = %#v, want nothing", got)
	}
}

func TestClassify_UserConverterOverridesBuiltin(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, WithConverters(conv("mine", "b")))
	got, err := m.ClassifyNode(elementNode("b", textNode("x")))
	if err != nil {
		t.Fatal(err)
	}
	if want := []Element{Run{Text: "mine"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("ClassifyNode() = %#v, want %#v", got, want)
	}
}

func TestClassify_ConverterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := newTestManager(t, WithConverters(failingConverter{err: boom}))

	if _, err := m.Parse("<p>a <b>b</b></p>"); !errors.Is(err, boom) {
		t.Errorf("Parse() error = %v, want converter error", err)
	}
}

type failingConverter struct{ err error }

func (failingConverter) TagNames() []string { return []string{"b"} }

func (c failingConverter) Convert(*html.Node, *Manager) ([]Element, bool, error) {
	return nil, false, c.err
}

// ---------------------------------------------------------------------------
// TestWalk_Cancellation
// ---------------------------------------------------------------------------

func TestWalk_Cancellation(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.ParseContext(ctx, "<p>x</p>"); !errors.Is(err, context.Canceled) {
		t.Errorf("ParseContext() error = %v, want context.Canceled", err)
	}

	st := newWalkState(ctx)
	if _, err := m.walk([]*html.Node{textNode("x")}, st); !errors.Is(err, context.Canceled) {
		t.Errorf("walk() error = %v, want context.Canceled", err)
	}
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", " ", "\n\t\r\f "} {
		if !isBlank(s) {
			t.Errorf("isBlank(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"x", " x ", "\u00a0"} {
		if isBlank(s) {
			t.Errorf("isBlank(%q) = true, want false", s)
		}
	}
}
