// Package api exposes the call audit pipeline and the aggregate coaching
// reports over HTTP. Handlers hold their collaborators on the Server struct;
// nothing is reached through package-level state.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"call-audit-go/internal/insights"
	"call-audit-go/internal/logger"
	"call-audit-go/internal/processor"
	"call-audit-go/internal/rubric"
)

// ServiceName is reported by the metadata endpoints.
const ServiceName = "call-audit-go"

type Auditor interface {
	Audit(ctx context.Context, ref string) (*processor.Result, error)
}

type Coach interface {
	Consolidated(ctx context.Context, in insights.ConsolidatedInput) (insights.Insights, error)
	Weekly(ctx context.Context, in insights.WeeklyInput) (insights.Insights, error)
	Monthly(ctx context.Context, in insights.MonthlyInput) (insights.Insights, error)
}

type Server struct {
	auditor Auditor
	coach   Coach
	rubric  rubric.Rubric
}

func NewServer(auditor Auditor, coach Coach, r rubric.Rubric) *Server {
	return &Server{auditor: auditor, coach: coach, rubric: r}
}

// Router wires the routes. CORS is wide open, matching how the service has
// always been deployed behind an internal dashboard.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleMeta)
	r.Get("/health", s.handleMeta)
	r.Post("/generate-report", s.handleGenerateReport)
	r.Post("/generate-consolidated-report", s.handleConsolidatedReport)
	r.Post("/generate-weekly-insights", s.handleWeeklyInsights)
	r.Post("/generate-monthly-insights", s.handleMonthlyInsights)
	r.Post("/export-scorecards", s.handleExportScorecards)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

// writeError produces the uniform {"error": ...} failure shape every
// endpoint shares.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
