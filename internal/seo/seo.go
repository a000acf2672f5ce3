
// Package seo keeps a document's head metadata in sync with a PageMetadata value.
package seo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pageseo/internal/models"
)

// Titles returns the document's <title> elements. SVG titles are not document titles.
func Titles(doc *goquery.Document) *goquery.Selection {
	return doc.Find("title").Not("svg title")
}

// Descriptions returns meta elements whose name is "description", compared
// ASCII case-insensitively as HTML does.
func Descriptions(doc *goquery.Document) *goquery.Selection {
	return doc.Find("meta[name]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(s.AttrOr("name", "")), "description")
	})
}

// Canonicals returns link elements with a "canonical" rel keyword, in any case.
func Canonicals(doc *goquery.Document) *goquery.Selection {
	return doc.Find("link[rel]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, kw := range strings.Fields(s.AttrOr("rel", "")) {
			if strings.EqualFold(kw, "canonical") {
				return true
			}
		}
		return false
	})
}

// Apply sets the document title, description meta and canonical link to m.
// Missing elements are created in <head>, present ones are overwritten, and
// duplicates are removed so each managed element appears exactly once.
// A nil or empty document is left alone.
func Apply(doc *goquery.Document, m models.PageMetadata) {
	if doc == nil || len(doc.Nodes) == 0 {
		return
	}
	head := ensureHead(doc)
	if head == nil {
		return
	}

	title := first(Titles(doc), head, func() *html.Node {
		return element(atom.Title)
	})
	setText(title, m.Title)

	desc := first(Descriptions(doc), head, func() *html.Node {
		return element(atom.Meta, html.Attribute{Key: "name", Val: "description"})
	})
	setAttr(desc, "content", m.Description)

	canonical := first(Canonicals(doc), head, func() *html.Node {
		return element(atom.Link, html.Attribute{Key: "rel", Val: "canonical"})
	})
	setAttr(canonical, "href", m.CanonicalURL)
}

// first keeps the first node of sel, removes the rest, and creates one under
// head when sel is empty.
func first(sel *goquery.Selection, head *html.Node, create func() *html.Node) *html.Node {
	if sel.Length() == 0 {
		n := create()
		head.AppendChild(n)
		return n
	}
	sel.Slice(1, goquery.ToEnd).Remove()
	return sel.Get(0)
}

// ensureHead returns the <head> element, inserting one into <html> if the
// tree has none. It returns nil when there is no <html> element at all.
func ensureHead(doc *goquery.Document) *html.Node {
	if head := doc.Find("head").First(); head.Length() > 0 {
		return head.Get(0)
	}
	root := doc.Find("html").First()
	if root.Length() == 0 {
		return nil
	}
	r := root.Get(0)
	head := element(atom.Head)
	r.InsertBefore(head, r.FirstChild)
	return head
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
