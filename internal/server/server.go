// Package server exposes the dashboard over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/housedash/internal/artifacts"
	"github.com/KaramelBytes/housedash/internal/dashboard"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Options configures the HTTP front end.
type Options struct {
	ExportFileName  string
	ShutdownTimeout time.Duration
}

// Server serves the dashboard page, the CSV export and the SHAP images.
type Server struct {
	dash *dashboard.Dashboard
	log  *zap.Logger
	opt  Options
	tmpl *template.Template
}

// New parses the page templates and returns a server for d.
func New(d *dashboard.Dashboard, log *zap.Logger, opt Options) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opt.ExportFileName == "" {
		opt.ExportFileName = "milan_filtered.csv"
	}
	if opt.ShutdownTimeout <= 0 {
		opt.ShutdownTimeout = 10 * time.Second
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{dash: d, log: log, opt: opt, tmpl: tmpl}, nil
}

// Handler returns the routed handler with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/export.csv", s.handleExport)
	r.Get("/artifacts/images/{name}", s.handleImage)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), s.opt.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("server stopped")
		return nil
	})
	return g.Wait()
}

type indexData struct {
	*dashboard.Page
	ExportURL template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := s.dash.Render(sel)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index.html.tmpl", indexData{Page: page, ExportURL: template.URL("/export.csv?" + encodeSelection(page.Controls))})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := s.dash.Export(&buf, sel); err != nil {
		s.renderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.opt.ExportFileName))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	im, ok := s.dash.Locator().Image(chi.URLParam(r, "name"))
	if !ok || !artifacts.Exists(im.Path) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, im.Path)
}

// renderError shows the top-level failure page; nothing else of the
// dashboard is rendered.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("render failed", zap.String("request_id", requestID(r.Context())), zap.Error(err))
	s.render(w, r, http.StatusInternalServerError, "error.html.tmpl", struct{ Message string }{err.Error()})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("template failed", zap.String("template", name), zap.String("request_id", requestID(r.Context())), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type ctxKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)))
	})
}
