package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"tourism/composer"
)

//go:embed index.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "index.html.tmpl"))

func New(service composer.Service, logger *slog.Logger) *Server {
	return &Server{service: service, logger: logger}
}

type Server struct {
	service composer.Service
	logger  *slog.Logger
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Get("/search", s.handleSearch)

	return r
}

// ListenAndServe runs the server until ctx is canceled or SIGINT/SIGTERM
// arrives, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web ui listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type pageData struct {
	Query   string
	Summary *composer.Summary
	Error   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	data := pageData{Query: query}

	if query == "" {
		data.Error = "Enter a place to look up."
		s.render(w, data)
		return
	}

	summary, err := s.service.Handle(r.Context(), query)
	if err != nil {
		data.Error = err.Error()
		s.logger.Warn("query failed", "query", query, "error", err)
	} else {
		data.Summary = &summary
		s.logger.Info("query served", "query", query, "location", summary.ShortName())
	}

	s.render(w, data)
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}
