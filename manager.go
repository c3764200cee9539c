package html2doc

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2doc/internal/highlight"
	"github.com/alnah/go-html2doc/internal/pipeline"
)

// defaultHighlightStyle is the chroma style used unless WithHighlightStyle says otherwise.
const defaultHighlightStyle = "github"

// Compile-time interface implementation checks.
var (
	_ EngineHost = (*Manager)(nil)
	_ Engine     = (*GoldmarkEngine)(nil)
	_ HostBinder = (*GoldmarkEngine)(nil)
)

// Manager converts HTML into document blocks.
//
// Build it with NewManager, add converters with Register, then call Parse
// from as many goroutines as needed: after construction a Manager is only
// read. Register must not run concurrently with parsing.
type Manager struct {
	registry    *Registry
	policy      UnknownTagPolicy
	engine      Engine
	escape      bool
	baseURL     *url.URL
	assetRoot   string
	linkHandler LinkHandler
	logger      *slog.Logger
	highlighter *highlight.Highlighter

	// construction-time settings
	engineSet       bool
	builtins        bool
	extra           []Converter
	defaultPriority int
	rawBaseURL      string
	highlightStyle  string
}

// NewManager creates a Manager with the built-in converters, the goldmark
// Markdown engine and the PassThrough policy. Options override the defaults.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		policy:          PassThrough,
		escape:          true,
		logger:          slog.New(slog.DiscardHandler),
		builtins:        true,
		defaultPriority: DefaultPriority,
		highlightStyle:  defaultHighlightStyle,
	}

	for _, opt := range opts {
		opt(m)
	}

	if !m.engineSet {
		m.engine = NewGoldmarkEngine()
	}

	if m.rawBaseURL != "" {
		u, err := url.Parse(m.rawBaseURL)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, m.rawBaseURL)
		}
		m.baseURL = u
	}

	if m.assetRoot != "" {
		abs, err := filepath.Abs(m.assetRoot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAsset, err)
		}
		m.assetRoot = abs
	}

	if m.highlightStyle != "" {
		m.highlighter = highlight.New(m.highlightStyle)
	}

	m.registry = NewRegistry(m.defaultPriority)
	if m.builtins {
		for _, c := range builtinConverters() {
			if err := m.registry.Register(c); err != nil {
				return nil, fmt.Errorf("registering built-in converter: %w", err)
			}
		}
	}
	for _, c := range m.extra {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering converter: %w", err)
		}
	}

	if b, ok := m.engine.(HostBinder); ok {
		b.Bind(m)
	}

	return m, nil
}

// Register adds a converter to the Manager's registry.
// See Registry.Register for ordering rules.
func (m *Manager) Register(c Converter) error {
	return m.registry.Register(c)
}

// Registry returns the Manager's converter registry.
func (m *Manager) Registry() *Registry { return m.registry }

// Policy returns the configured UnknownTagPolicy.
func (m *Manager) Policy() UnknownTagPolicy { return m.policy }

// Engine returns the Markdown engine, or nil when none is configured.
func (m *Manager) Engine() Engine { return m.engine }

// BaseURL returns the base URL links resolve against, or nil.
func (m *Manager) BaseURL() *url.URL { return m.baseURL }

// AssetRoot returns the absolute asset directory, or "".
func (m *Manager) AssetRoot() string { return m.assetRoot }

// LinkHandler returns the handler attached to hyperlinks, or nil.
func (m *Manager) LinkHandler() LinkHandler { return m.linkHandler }

// Logger returns the Manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Highlight splits code into colored tokens for the given language.
// It returns nil when highlighting is disabled or the language is unknown.
func (m *Manager) Highlight(language, code string) []CodeToken {
	if m.highlighter == nil {
		return nil
	}
	toks := m.highlighter.Tokens(language, code)
	if len(toks) == 0 {
		return nil
	}
	out := make([]CodeToken, len(toks))
	for i, t := range toks {
		out[i] = CodeToken{Text: t.Text, Type: t.Type, Color: t.Color, Bold: t.Bold, Italic: t.Italic}
	}
	return out
}

// Parse converts an HTML document or fragment into blocks.
func (m *Manager) Parse(src string) ([]Block, error) {
	return m.ParseContext(context.Background(), src)
}

// ParseContext is Parse with cancellation. The context is checked before
// parsing and between the top-level nodes of the document.
func (m *Manager) ParseContext(ctx context.Context, src string) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := parseHTML(src)
	if err != nil {
		return nil, err
	}
	return m.parseRoot(ctx, root)
}

// ParseNode converts an already parsed tree. The body element is used when
// it can be located; otherwise the root's content is converted as a fragment.
func (m *Manager) ParseNode(root *html.Node) ([]Block, error) {
	return m.parseRoot(context.Background(), root)
}

// ParseDocument converts src and extracts the <title> from its head.
func (m *Manager) ParseDocument(src string) (*Document, error) {
	return m.ParseDocumentContext(context.Background(), src)
}

// ParseDocumentContext is ParseDocument with cancellation.
func (m *Manager) ParseDocumentContext(ctx context.Context, src string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := parseHTML(src)
	if err != nil {
		return nil, err
	}
	blocks, err := m.parseRoot(ctx, root)
	if err != nil {
		return nil, err
	}
	return &Document{Title: Title(root), Blocks: blocks}, nil
}

func (m *Manager) parseRoot(ctx context.Context, root *html.Node) ([]Block, error) {
	elements, err := m.walk(ContentNodes(root), newWalkState(ctx))
	if err != nil {
		return nil, err
	}
	return Group(elements), nil
}

// ConvertChildrenGrouped converts the children of node and groups the
// result into blocks.
func (m *Manager) ConvertChildrenGrouped(node *html.Node) ([]Block, error) {
	elements, err := m.ClassifyChildren(node)
	if err != nil {
		return nil, err
	}
	return Group(elements), nil
}

// ClassifyChildren converts the children of node without grouping.
func (m *Manager) ClassifyChildren(node *html.Node) ([]Element, error) {
	return m.ClassifyNodes(childNodes(node))
}

// ClassifyNodes converts a list of sibling nodes without grouping.
func (m *Manager) ClassifyNodes(nodes []*html.Node) ([]Element, error) {
	return m.walk(nodes, newWalkState(context.Background()))
}

// ClassifyNode converts a single node: the first matching converter wins,
// and the UnknownTagPolicy applies when none matches.
func (m *Manager) ClassifyNode(node *html.Node) ([]Element, error) {
	return m.classify(node, newWalkState(context.Background()))
}

// parseHTML parses content as a full document when it starts like one and
// as a body fragment otherwise. Fragments are wrapped in a document node.
func parseHTML(content string) (*html.Node, error) {
	content = pipeline.NormalizeLineEndings(content)
	if looksLikeDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
		}
		return doc, nil
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// looksLikeDocument reports whether content starts with a doctype or one of
// the document-level elements.
func looksLikeDocument(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") {
		return true
	}
	for _, prefix := range []string{"<html", "<head", "<body"} {
		rest, ok := strings.CutPrefix(trimmed, prefix)
		if ok && (rest == "" || strings.ContainsRune(" \t\n\f/>", rune(rest[0]))) {
			return true
		}
	}
	return false
}
