
package parser

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"pageseo/internal/models"
	"pageseo/internal/seo"
)

// Parse decodes r to UTF-8 (using contentType and any <meta charset>) and
// builds a document from it.
func Parse(r io.Reader, contentType string) (*goquery.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, err
		}
		utf8data = data
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
}

// Head reads back the managed head elements. Values come from the first
// matching element; the counts expose duplicates.
func Head(doc *goquery.Document) models.Meta {
	if doc == nil {
		return models.Meta{}
	}
	titles := seo.Titles(doc)
	descs := seo.Descriptions(doc)
	links := seo.Canonicals(doc)

	return models.Meta{
		Title:          titles.First().Text(),
		Description:    descs.First().AttrOr("content", ""),
		Canonical:      links.First().AttrOr("href", ""),
		TitleCount:     titles.Length(),
		DescCount:      descs.Length(),
		CanonicalCount: links.Length(),
	}
}

// Render writes the whole document, doctype included, to w.
func Render(w io.Writer, doc *goquery.Document) error {
	for _, n := range doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}
