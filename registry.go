package html2doc

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// DefaultPriority is the priority of converters that do not implement
// Prioritized, unless the Manager is built WithDefaultPriority.
const DefaultPriority = 1000

// TextTag is the pseudo tag name under which text nodes are dispatched.
const TextTag = "#text"

// Converter turns one HTML node into zero or more elements.
//
// TagNames lists the (case-insensitive) element names the converter handles.
// A Converter must also implement exactly the capability it offers:
// InlineConverter, BlockConverter or ElementConverter. Each conversion
// method returns ok=false to let the next converter registered for the same
// tag try the node.
type Converter interface {
	TagNames() []string
}

// InlineConverter produces inline elements only.
type InlineConverter interface {
	Converter
	ConvertInline(node *html.Node, m *Manager) (inlines []Inline, ok bool, err error)
}

// BlockConverter produces block elements only.
type BlockConverter interface {
	Converter
	ConvertBlock(node *html.Node, m *Manager) (blocks []Block, ok bool, err error)
}

// ElementConverter may produce a mix of blocks and inlines.
type ElementConverter interface {
	Converter
	Convert(node *html.Node, m *Manager) (elements []Element, ok bool, err error)
}

// Prioritized is implemented by converters that choose their own priority.
// Lower values are tried first.
type Prioritized interface {
	Priority() int
}

// Capability identifies which conversion method a converter offers.
type Capability int

// Converter capabilities.
const (
	CapabilityNone Capability = iota
	CapabilityInline
	CapabilityBlock
	CapabilityGeneric
)

// CapabilityOf returns the capability used to dispatch c. When a converter
// implements several conversion methods, the generic one wins, then block.
func CapabilityOf(c Converter) Capability {
	switch c.(type) {
	case ElementConverter:
		return CapabilityGeneric
	case BlockConverter:
		return CapabilityBlock
	case InlineConverter:
		return CapabilityInline
	default:
		return CapabilityNone
	}
}

type registryEntry struct {
	conv       Converter
	priority   int
	capability Capability
}

// convert runs the entry's converter and widens its result to []Element.
func (e registryEntry) convert(node *html.Node, m *Manager) ([]Element, bool, error) {
	switch e.capability {
	case CapabilityGeneric:
		return e.conv.(ElementConverter).Convert(node, m)
	case CapabilityBlock:
		blocks, ok, err := e.conv.(BlockConverter).ConvertBlock(node, m)
		if err != nil || !ok {
			return nil, ok, err
		}
		return blocksToElements(blocks), true, nil
	case CapabilityInline:
		inlines, ok, err := e.conv.(InlineConverter).ConvertInline(node, m)
		if err != nil || !ok {
			return nil, ok, err
		}
		return inlinesToElements(inlines), true, nil
	default:
		return nil, false, nil
	}
}

// Registry maps lowercase tag names to converters ordered by priority.
//
// A Registry is filled once and then only read: Resolve is safe for
// concurrent use, Register is not.
type Registry struct {
	defaultPriority int
	byTag           map[string][]registryEntry
}

// NewRegistry creates an empty registry. Converters without a Priority
// method are registered at defaultPriority.
func NewRegistry(defaultPriority int) *Registry {
	return &Registry{
		defaultPriority: defaultPriority,
		byTag:           make(map[string][]registryEntry),
	}
}

// Register adds c under each of its tag names.
//
// Entries are kept in ascending priority. A converter whose priority equals
// existing entries is inserted before them, so the most recent registration
// of a given priority is tried first. Registering the same instance twice
// creates duplicate entries.
func (r *Registry) Register(c Converter) error {
	if c == nil {
		return ErrNilConverter
	}

	var names []string
	for _, n := range c.TagNames() {
		key := normalizeTag(n)
		if key != "" && !slices.Contains(names, key) {
			names = append(names, key)
		}
	}
	if len(names) == 0 {
		return ErrNoTagNames
	}

	capability := CapabilityOf(c)
	if capability == CapabilityNone {
		return ErrNoCapability
	}

	priority := r.defaultPriority
	if p, ok := c.(Prioritized); ok {
		priority = p.Priority()
	}

	entry := registryEntry{conv: c, priority: priority, capability: capability}
	for _, name := range names {
		list := r.byTag[name]
		at := sort.Search(len(list), func(i int) bool { return list[i].priority >= priority })
		r.byTag[name] = slices.Insert(list, at, entry)
	}
	return nil
}

// Resolve returns the converters registered for tag in dispatch order.
// The result is empty when nothing is registered for the tag.
func (r *Registry) Resolve(tag string) []Converter {
	entries := r.byTag[normalizeTag(tag)]
	convs := make([]Converter, len(entries))
	for i, e := range entries {
		convs[i] = e.conv
	}
	return convs
}

// Tags returns the registered tag names in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.byTag))
	for t := range r.byTag {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func (r *Registry) entries(tag string) []registryEntry {
	return r.byTag[normalizeTag(tag)]
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// tagName returns the dispatch name of a node: the element name, TextTag for
// text nodes, and "" for anything else.
func tagName(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.ElementNode:
		return normalizeTag(n.Data)
	case html.TextNode:
		return TextTag
	default:
		return ""
	}
}

func blocksToElements(blocks []Block) []Element {
	out := make([]Element, len(blocks))
	for i, b := range blocks {
		out[i] = b
	}
	return out
}

func inlinesToElements(inlines []Inline) []Element {
	out := make([]Element, len(inlines))
	for i, in := range inlines {
		out[i] = in
	}
	return out
}
