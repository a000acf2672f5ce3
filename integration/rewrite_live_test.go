
//go:build integration

package integration

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"pageseo/internal/crawler"
	"pageseo/internal/models"
	"pageseo/internal/parser"
	"pageseo/internal/rewrite"
	"pageseo/pkg/logger"
)

func TestRewriteLivePage(t *testing.T) {
	url := "https://example.com/"

	client := crawler.NewHTTPClient(25*time.Second, 5*time.Second, 5*1024*1024)
	rw := rewrite.New(client, logger.NewWriter(io.Discard, false))
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if _, err := rw.Inspect(ctx, url); err != nil {
		t.Skipf("skipping: fetch failed due to network: %v", err)
	}

	var buf bytes.Buffer
	res := rw.Run(ctx, models.Job{
		Source:      url,
		Title:       "Home | AI Medical Portal",
		Description: "Modern AI-powered medical portal.",
		Canonical:   "https://portal.example.com/",
	}, &buf)
	if res.Error != "" {
		t.Fatalf("rewrite: %s", res.Error)
	}

	doc, err := parser.Parse(&buf, "text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	m := parser.Head(doc)
	if m.Title != "Home | AI Medical Portal" || m.TitleCount != 1 {
		t.Errorf("unexpected title %q (%d)", m.Title, m.TitleCount)
	}
	if m.Canonical != "https://portal.example.com/" || m.CanonicalCount != 1 {
		t.Errorf("unexpected canonical %q (%d)", m.Canonical, m.CanonicalCount)
	}
}
