// Package fixture serves a local replica of the playground index and the
// three demo pages, carrying the selectors the page helpers rely on.
package fixture

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
)

const (
	PlaygroundPath = "/selenium-playground"
	serviceName    = "playground-fixture"
)

//go:embed pages/*.html
var pages embed.FS

// Demos lists the demo page slugs served under PlaygroundPath.
var Demos = []string{
	"simple-form-demo",
	"drag-drop-range-sliders-demo",
	"input-form-demo",
}

type Config struct {
	Addr string
	// Quiet disables request logging.
	Quiet bool
}

func DefaultConfig() Config {
	return Config{Addr: "127.0.0.1:0"}
}

// NewHandler returns the fixture router. Unknown demos are 404.
func NewHandler(cfg Config) http.Handler {
	logger := zerolog.Nop()
	if !cfg.Quiet {
		logger = httplog.NewLogger(serviceName, httplog.Options{JSON: true})
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, PlaygroundPath, http.StatusFound)
	})
	r.Get(PlaygroundPath, servePage("index"))
	for _, demo := range Demos {
		r.Get(PlaygroundPath+"/"+demo, servePage(demo))
	}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := pages.ReadFile("pages/" + name + ".html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

// Page returns the embedded HTML of the index ("index") or a demo slug.
func Page(name string) (string, error) {
	body, err := pages.ReadFile("pages/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("fixture page %q: %w", name, err)
	}
	return string(body), nil
}

type Server struct {
	// URL is the base URL, without a trailing slash.
	URL string

	srv  *http.Server
	done chan error
}

// Start listens on cfg.Addr and serves in the background until Close.
func Start(cfg Config) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("fixture listen: %w", err)
	}
	s := &Server{
		URL: "http://" + ln.Addr().String(),
		srv: &http.Server{
			Handler:           NewHandler(cfg),
			ReadHeaderTimeout: 5 * time.Second,
		},
		done: make(chan error, 1),
	}
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return s, nil
}

// Close shuts the server down and waits for the serve loop to exit.
func (s *Server) Close(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("fixture shutdown: %w", err)
	}
	return <-s.done
}
