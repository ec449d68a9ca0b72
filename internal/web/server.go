// Package web serves the transcript viewer over HTTP. Each page is one
// rendered dialog; Previous and Next are links to the neighboring pages.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/logging"
	"github.com/colonyops/dialogview/internal/core/viewer"
)

// AssetPrefix is the route the local sticker directory is mounted on.
const AssetPrefix = "/assets/"

const shutdownTimeout = 5 * time.Second

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS
)

// Options configures a Server.
type Options struct {
	// AssetDir is a local sticker directory served under AssetPrefix, or an
	// http(s) URL used verbatim as the image prefix.
	AssetDir string
	// Location names the transcript in page titles and logs.
	Location string
}

// Server renders dialogs from a collection loaded once before serving.
type Server struct {
	opts        Options
	assetPrefix string
	viewer      *viewer.Viewer
	page        *template.Template
	router      chi.Router
	log         zerolog.Logger
}

// New creates a server. Call Load before serving requests.
func New(opts Options) (*Server, error) {
	page, err := template.New("page.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	prefix := AssetPrefix
	if dialog.IsURL(opts.AssetDir) {
		prefix = opts.AssetDir
	}

	s := &Server{
		opts:        opts,
		assetPrefix: prefix,
		viewer:      viewer.New(prefix),
		page:        page,
		log:         logging.Component("web"),
	}
	s.router = s.routes()
	return s, nil
}

// Load performs the single fetch of the transcript. A failed load is not
// fatal: every page then shows the load error.
func (s *Server) Load(ctx context.Context, f viewer.Fetcher) error {
	return s.viewer.Load(ctx, f)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/dialogs/{index}", s.handleDialog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dialogs", s.handleAPIList)
		r.Get("/dialogs/{index}", s.handleAPIDialog)
	})

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	if !dialog.IsURL(s.opts.AssetDir) && s.opts.AssetDir != "" {
		assets := http.StripPrefix(AssetPrefix, http.FileServer(http.Dir(s.opts.AssetDir)))
		r.Handle(AssetPrefix+"*", assets)
	}

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Str("source", s.opts.Location).Msg("serving dialogs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// surface renders index from the loaded collection without touching the
// viewer's own cursor, so concurrent requests never share mutable state.
func (s *Server) surface(index int) (viewer.Surface, bool) {
	st := s.viewer.State()
	switch st.Phase {
	case viewer.PhaseFailed:
		return viewer.ErrorSurface(st.Err), true
	case viewer.PhaseUnloaded:
		return viewer.Surface{}, true
	}
	return viewer.Render(st.Dialogs, index, s.assetPrefix)
}
