package html2doc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FindHead returns the document's head element, or nil.
func FindHead(root *html.Node) *html.Node {
	return findSection(root, atom.Head)
}

// FindBody returns the document's body element, or nil.
func FindBody(root *html.Node) *html.Node {
	return findSection(root, atom.Body)
}

// findSection looks for head or body at the root and one level down inside
// an html element. Any element other than html, head or body ends the scan
// of the level it appears on.
func findSection(root *html.Node, want atom.Atom) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case want:
			return c
		case atom.Head, atom.Body:
			continue
		case atom.Html:
			if found := findInHTML(c, want); found != nil {
				return found
			}
		default:
			return nil
		}
	}
	return nil
}

func findInHTML(htmlNode *html.Node, want atom.Atom) *html.Node {
	for c := htmlNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case want:
			return c
		case atom.Head, atom.Body:
			continue
		default:
			return nil
		}
	}
	return nil
}

// ContentNodes returns the nodes a parse starts from: the body's children
// when a body can be located, the children of a lone html element, or the
// root's own children for fragments.
func ContentNodes(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	if body := FindBody(root); body != nil {
		return childNodes(body)
	}

	var (
		htmlNode *html.Node
		others   int
	)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode, html.CommentNode, html.DoctypeNode:
			continue
		}
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			htmlNode = c
		}
		others++
	}
	if htmlNode != nil && others == 1 {
		return childNodes(htmlNode)
	}
	return childNodes(root)
}

// Title returns the collapsed text of the head's title element, or "".
func Title(root *html.Node) string {
	head := FindHead(root)
	if head == nil {
		return ""
	}
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Title {
			return strings.TrimSpace(collapseWhitespace(TextContent(c)))
		}
	}
	return ""
}
