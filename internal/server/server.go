// Package server exposes the review pipeline over HTTP: submit a case, fetch
// its stored result, and download the XLSX report.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyunsoo-an/purchase-review/internal/export"
	"github.com/hyunsoo-an/purchase-review/internal/repository"
	"github.com/hyunsoo-an/purchase-review/internal/review"
)

type Server struct {
	review  *review.Service
	export  *export.Service
	cases   repository.CaseRepository
	pool    *pgxpool.Pool
	metrics *Metrics
	logger  *slog.Logger
}

func New(reviewSvc *review.Service, exportSvc *export.Service, cases repository.CaseRepository, pool *pgxpool.Pool, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		review:  reviewSvc,
		export:  exportSvc,
		cases:   cases,
		pool:    pool,
		metrics: metrics,
		logger:  logger,
	}
}

// Router wires all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(requestLogger(s.logger, s.metrics))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1/cases", func(r chi.Router) {
		r.Post("/", s.handleSubmitCase)
		r.Get("/", s.handleListCases)
		r.Get("/{caseID}/result", s.handleGetResult)
		r.Get("/{caseID}/report.xlsx", s.handleGetReport)
	})

	return r
}
