
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"pageseo/internal/config"
	"pageseo/internal/models"
	"pageseo/internal/page"
	"pageseo/internal/parser"
	"pageseo/internal/seo"
	"pageseo/pkg/logger"
)

// ErrUntrustedHost is returned for requests whose Host is not in the trusted list.
var ErrUntrustedHost = errors.New("untrusted host")

// Server serves the landing page and its metadata endpoints.
type Server struct {
	cfg     config.Config
	landing *page.Landing
	log     *logger.Logger
}

func New(cfg config.Config, l *logger.Logger) *Server {
	if cfg.Origin == "" && len(cfg.TrustedHosts) == 0 {
		l.Warnf("no origin or trusted hosts configured; canonical URLs follow the request Host header")
	}
	return &Server{cfg: cfg, landing: page.NewLanding(), log: l}
}

// Handler returns the routed mux wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// GET /  landing page, metadata applied per display
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		m, err := s.metadata(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Link", "<"+m.CanonicalURL+`>; rel="canonical"`)
		if err := s.landing.Render(w, m); err != nil {
			s.log.Errorf("render landing: %v", err)
		}
	})

	// GET /meta  what the landing head says after rendering
	mux.HandleFunc("/meta", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		m, err := s.metadata(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		doc, err := s.landing.Document(m)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, parser.Head(doc))
	})

	return logRequest(s.log, mux)
}

// HTTPServer wires Handler into an http.Server using the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) metadata(r *http.Request) (models.PageMetadata, error) {
	origin, err := s.origin(r)
	if err != nil {
		return models.PageMetadata{}, err
	}
	canonical, err := seo.CanonicalURL(origin, "/")
	if err != nil {
		return models.PageMetadata{}, err
	}
	return models.PageMetadata{
		Title:        s.cfg.Title,
		Description:  s.cfg.Description,
		CanonicalURL: canonical,
	}, nil
}

// origin is the configured origin, or the one the request arrived on when
// its Host is trusted.
func (s *Server) origin(r *http.Request) (string, error) {
	if s.cfg.Origin != "" {
		return s.cfg.Origin, nil
	}
	if !s.trusted(r.Host) {
		return "", fmt.Errorf("%w: %q", ErrUntrustedHost, r.Host)
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch p := strings.ToLower(strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-Proto"), ",")[0])); p {
	case "http", "https":
		scheme = p
	}
	return scheme + "://" + r.Host, nil
}

// trusted matches host against TrustedHosts. An entry without a port matches
// any port. An empty list trusts every host.
func (s *Server) trusted(host string) bool {
	if len(s.cfg.TrustedHosts) == 0 {
		return true
	}
	host = strings.ToLower(host)
	name := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		name = h
	}
	for _, t := range s.cfg.TrustedHosts {
		if strings.EqualFold(t, host) || strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		l.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
