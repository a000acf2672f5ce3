
// Package page holds the landing page shell.
package page

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pageseo/internal/models"
	"pageseo/internal/parser"
	"pageseo/internal/seo"
)

const (
	DefaultTitle       = "Home | AI Medical Portal"
	DefaultDescription = "Modern AI-powered medical portal."
	Greeting           = "Welcome to the AI Medical Portal"
)

// The head carries no managed metadata; seo.Apply fills it on every display.
const landingHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
html, body { height: 100%; margin: 0; }
body { display: flex; align-items: center; justify-content: center; font-family: system-ui, sans-serif; }
</style>
</head>
<body>
<main><h1>` + Greeting + `</h1></main>
</body>
</html>
`

// Landing renders the landing page, a centered greeting.
type Landing struct{}

func NewLanding() *Landing { return &Landing{} }

// Document builds a fresh landing document with m applied.
func (l *Landing) Document(m models.PageMetadata) (*goquery.Document, error) {
	doc, err := parser.Parse(strings.NewReader(landingHTML), "text/html; charset=utf-8")
	if err != nil {
		return nil, err
	}
	seo.Apply(doc, m)
	return doc, nil
}

// Render writes the landing page for one display.
func (l *Landing) Render(w io.Writer, m models.PageMetadata) error {
	doc, err := l.Document(m)
	if err != nil {
		return err
	}
	return parser.Render(w, doc)
}
