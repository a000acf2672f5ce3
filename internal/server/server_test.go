
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageseo/internal/config"
	"pageseo/internal/models"
	"pageseo/internal/parser"
	"pageseo/pkg/logger"
)

func newTestServer(t *testing.T, origin string, trusted ...string) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Origin = origin
	cfg.TrustedHosts = trusted
	ts := httptest.NewServer(New(cfg, logger.NewWriter(io.Discard, false)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestLandingHasMetadata(t *testing.T) {
	ts := newTestServer(t, "https://example.com")

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `<https://example.com/>; rel="canonical"`, resp.Header.Get("Link"))

	doc, err := parser.Parse(resp.Body, resp.Header.Get("Content-Type"))
	require.NoError(t, err)
	m := parser.Head(doc)
	assert.Equal(t, "Home | AI Medical Portal", m.Title)
	assert.Equal(t, "Modern AI-powered medical portal.", m.Description)
	assert.Equal(t, "https://example.com/", m.Canonical)
}

func TestOriginFromRequest(t *testing.T) {
	ts := newTestServer(t, "")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/meta", nil)
	require.NoError(t, err)
	req.Host = "portal.example.org"
	req.Header.Set("X-Forwarded-Proto", "https")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var m models.Meta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "https://portal.example.org/", m.Canonical)
	assert.Equal(t, 1, m.CanonicalCount)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t, "https://example.com")

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/patients")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func getWithHost(t *testing.T, url, host string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Host = host
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUntrustedHostRejected(t *testing.T) {
	ts := newTestServer(t, "", "portal.example.org")

	resp := getWithHost(t, ts.URL+"/", "evil.example.net")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Link"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "evil.example.net/")

	resp = getWithHost(t, ts.URL+"/", "portal.example.org:8443")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `<http://portal.example.org:8443/>; rel="canonical"`, resp.Header.Get("Link"))
}

func TestNewWarnsWithoutTrustedHosts(t *testing.T) {
	var buf bytes.Buffer
	New(config.Default(), logger.NewWriter(&buf, false))
	assert.Contains(t, buf.String(), "[WARN]")

	buf.Reset()
	cfg := config.Default()
	cfg.TrustedHosts = []string{"portal.example.org"}
	New(cfg, logger.NewWriter(&buf, false))
	assert.Empty(t, buf.String())
}

func TestForwardedProtoIgnoresUnknownScheme(t *testing.T) {
	ts := newTestServer(t, "", "portal.example.org")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/meta", nil)
	require.NoError(t, err)
	req.Host = "portal.example.org"
	req.Header.Set("X-Forwarded-Proto", "javascript")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var m models.Meta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "http://portal.example.org/", m.Canonical)
}
