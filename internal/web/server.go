package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vbonduro/marineit/internal/service"
)

type Server struct {
	service  *service.AppService
	metrics  http.Handler
	mux      *http.ServeMux
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer builds the HTTP API over svc. metrics serves /metrics and may be
// nil.
func NewServer(svc *service.AppService, metrics http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		service:  svc,
		metrics:  metrics,
		mux:      http.NewServeMux(),
		validate: newValidator(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /api/vat", s.handleVAT)

	s.mux.HandleFunc("GET /api/worklogs", s.handleListWorkLogs)
	s.mux.HandleFunc("POST /api/worklogs", s.handleCreateWorkLog)
	s.mux.HandleFunc("PUT /api/worklogs/{id}", s.handleUpdateWorkLog)
	s.mux.HandleFunc("PATCH /api/worklogs/{id}/status", s.handleWorkLogStatus)
	s.mux.HandleFunc("DELETE /api/worklogs/{id}", s.handleDeleteWorkLog)

	s.mux.HandleFunc("GET /api/tickets", s.handleListTickets)
	s.mux.HandleFunc("POST /api/tickets", s.handleCreateTicket)
	s.mux.HandleFunc("PUT /api/tickets/{id}", s.handleUpdateTicket)
	s.mux.HandleFunc("PATCH /api/tickets/{id}/status", s.handleTicketStatus)
	s.mux.HandleFunc("DELETE /api/tickets/{id}", s.handleDeleteTicket)
	s.mux.HandleFunc("POST /api/tickets/{id}/images", s.handleTicketImages)

	s.mux.HandleFunc("GET /api/assets", s.handleListAssets)
	s.mux.HandleFunc("GET /api/assets/summary", s.handleAssetSummary)
	s.mux.HandleFunc("GET /api/assets/drilldown", s.handleAssetDrillDown)
	s.mux.HandleFunc("POST /api/assets", s.handleCreateAsset)
	s.mux.HandleFunc("PUT /api/assets/{id}", s.handleUpdateAsset)
	s.mux.HandleFunc("PATCH /api/assets/{id}/status", s.handleAssetStatus)
	s.mux.HandleFunc("DELETE /api/assets/{id}", s.handleDeleteAsset)
	s.mux.HandleFunc("POST /api/assets/{id}/photo", s.handleAssetPhoto)
	s.mux.HandleFunc("GET /api/assets/{id}/photo", s.handleGetAssetPhoto)

	s.mux.HandleFunc("GET /api/inspections", s.handleListInspections)
	s.mux.HandleFunc("POST /api/inspections", s.handleCreateInspection)
	s.mux.HandleFunc("PUT /api/inspections/{id}", s.handleUpdateInspection)
	s.mux.HandleFunc("DELETE /api/inspections/{id}", s.handleDeleteInspection)
	s.mux.HandleFunc("PATCH /api/inspections/{id}/slots/{slotID}/status", s.handleSlotStatus)
	s.mux.HandleFunc("POST /api/inspections/{id}/slots/{slotID}/photo", s.handleSlotPhoto)

	s.mux.HandleFunc("GET /api/backup/export", s.handleExport)
	s.mux.HandleFunc("POST /api/backup/import", s.handleImport)

	s.mux.HandleFunc("GET /reports/worklogs/{date}", s.handleReportHTML)
	s.mux.HandleFunc("GET /reports/worklogs/{date}/xlsx", s.handleReportXLSX)

	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
