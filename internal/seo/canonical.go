
package seo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"pageseo/internal/models"
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidMetadata = errors.New("invalid page metadata")
)

// CanonicalURL joins an origin (scheme://host[:port]) and a path into an
// absolute URL. Any path on the origin, and any query or fragment on path,
// are dropped. An empty path yields the site root.
func CanonicalURL(origin, path string) (string, error) {
	o, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || o.Host == "" || (o.Scheme != "http" && o.Scheme != "https") {
		return "", fmt.Errorf("%w: origin %q", ErrInvalidURL, origin)
	}
	p, err := url.Parse(path)
	if err != nil || p.Scheme != "" || p.Host != "" {
		return "", fmt.Errorf("%w: path %q", ErrInvalidURL, path)
	}

	u := &url.URL{Scheme: o.Scheme, Host: strings.ToLower(o.Host), Path: p.Path, RawPath: p.RawPath}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
		if u.RawPath != "" {
			u.RawPath = "/" + u.RawPath
		}
	}
	return u.String(), nil
}

// Validate reports whether m satisfies the PageMetadata invariants. Apply does
// not call it; callers that accept metadata from outside should.
func Validate(m models.PageMetadata) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidMetadata)
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("%w: empty description", ErrInvalidMetadata)
	}
	u, err := url.Parse(m.CanonicalURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: canonical url %q is not absolute", ErrInvalidMetadata, m.CanonicalURL)
	}
	return nil
}
