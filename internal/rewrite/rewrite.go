
// Package rewrite applies page metadata to HTML read from files or URLs.
package rewrite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pageseo/internal/crawler"
	"pageseo/internal/models"
	"pageseo/internal/parser"
	"pageseo/internal/seo"
	"pageseo/pkg/logger"
)

type Rewriter struct {
	client *crawler.HTTPClient
	log    *logger.Logger
}

func New(client *crawler.HTTPClient, l *logger.Logger) *Rewriter {
	return &Rewriter{client: client, log: l}
}

// Run loads job.Source, applies the job's metadata and writes the document to
// job.Output, or to w when Output is empty. A nil w with no Output only reports
// the resulting head.
func (rw *Rewriter) Run(ctx context.Context, job models.Job, w io.Writer) models.Result {
	res := models.Result{Source: job.Source, Output: job.Output}
	if err := seo.Validate(job.Metadata()); err != nil {
		res.Error = err.Error()
		return res
	}

	doc, fetchMs, err := rw.load(ctx, job.Source)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.FetchMs = fetchMs

	seo.Apply(doc, job.Metadata())
	head := parser.Head(doc)
	res.Meta = &head

	if err := rw.write(doc, job.Output, w); err != nil {
		res.Error = err.Error()
		return res
	}
	rw.log.Debugf("rewrote %s -> %q", job.Source, job.Output)
	return res
}

// Inspect reports the head of source without changing it.
func (rw *Rewriter) Inspect(ctx context.Context, source string) (models.Meta, error) {
	doc, _, err := rw.load(ctx, source)
	if err != nil {
		return models.Meta{}, err
	}
	return parser.Head(doc), nil
}

// RunBatch runs jobs with at most concurrency in flight. Results keep job order.
// Jobs not yet started when ctx is done are reported with ctx.Err().
func (rw *Rewriter) RunBatch(ctx context.Context, jobs []models.Job, concurrency int) []models.Result {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]models.Result, len(jobs))

	sem := make(chan struct{}, concurrency)
	done := make(chan int, len(jobs))

	launched := 0
	for i, j := range jobs {
		i, j := i, j
		if ctx.Err() != nil {
			results[i] = models.Result{Source: j.Source, Output: j.Output, Error: ctx.Err().Error()}
			continue
		}
		select {
		case sem <- struct{}{}: // acquire
		case <-ctx.Done():
			results[i] = models.Result{Source: j.Source, Output: j.Output, Error: ctx.Err().Error()}
			continue
		}
		launched++
		go func() {
			defer func() { <-sem; done <- i }()
			results[i] = rw.Run(ctx, j, nil)
		}()
	}
	for k := 0; k < launched; k++ {
		<-done
	}
	return results
}

func (rw *Rewriter) load(ctx context.Context, source string) (*goquery.Document, int64, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		p, err := rw.client.Fetch(ctx, source)
		if err != nil {
			return nil, 0, err
		}
		defer p.Body.Close()
		doc, err := parser.Parse(p.Body, p.ContentType)
		if err != nil {
			return nil, 0, fmt.Errorf("parse %s: %w", source, err)
		}
		return doc, p.Elapsed.Milliseconds(), nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	doc, err := parser.Parse(f, "")
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", source, err)
	}
	return doc, 0, nil
}

func (rw *Rewriter) write(doc *goquery.Document, output string, w io.Writer) error {
	if output == "" {
		if w == nil {
			return nil
		}
		return parser.Render(w, doc)
	}
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// render next to output and rename, so a failed write never clobbers it
	tmp, err := os.CreateTemp(dir, ".pageseo-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := parser.Render(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), output)
}
