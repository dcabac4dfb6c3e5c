package api

import (
	"encoding/json"
	"net/http"

	"call-audit-go/internal/export"
	"call-audit-go/internal/insights"
	"call-audit-go/internal/logger"
	"call-audit-go/internal/score"
)

type generateReportRequest struct {
	FileID string `json:"file_id"`
}

type generateReportResponse struct {
	Report                string                       `json:"report"`
	Scores                score.Map                    `json:"scores"`
	ConsultationChecklist *score.ConsultationChecklist `json:"consultation_checklist,omitempty"`
	ClientBehavior        *score.ClientBehavior        `json:"client_behavior,omitempty"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": ServiceName,
		"status":  "ok",
		"rubric":  s.rubric.Version,
	})
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	log := logger.New().WithRequest(r).WithField("handler", "generate-report")

	// a missing or unparseable body is the same input error as a missing
	// field: the caller did not tell us which call to audit
	var req generateReportRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.FileID == "" {
		log.Warn("missing file_id")
		writeError(w, http.StatusBadRequest, "Missing file_id")
		return
	}
	log = log.WithField("file_id", req.FileID)
	log.Info("audit requested")

	res, err := s.auditor.Audit(r.Context(), req.FileID)
	if err != nil {
		log.WithError(err).Error("audit failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.WithField("duration_ms", res.DurationMs).
		WithField("corrections", len(res.Corrections)).
		Info("audit complete")
	writeJSON(w, http.StatusOK, generateReportResponse{
		Report:                res.Report,
		Scores:                res.Scores,
		ConsultationChecklist: res.Checklist,
		ClientBehavior:        res.Behavior,
	})
}

type consolidatedReportRequest struct {
	AgentName      string           `json:"agent_name"`
	Date           string           `json:"date"`
	Calls          []map[string]any `json:"calls"`
	AggregateStats map[string]any   `json:"aggregate_stats"`
}

func (s *Server) handleConsolidatedReport(w http.ResponseWriter, r *http.Request) {
	log := logger.New().WithRequest(r).WithField("handler", "consolidated-report")

	var req consolidatedReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("bad request body")
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	out, err := s.coach.Consolidated(r.Context(), insights.ConsolidatedInput{
		AgentName: req.AgentName,
		Date:      req.Date,
		Calls:     req.Calls,
		Stats:     req.AggregateStats,
	})
	if err != nil {
		log.WithError(err).Error("consolidated report failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent_name": req.AgentName,
		"date":       req.Date,
		"insights":   out,
	})
}

type weeklyInsightsRequest struct {
	AgentName      string           `json:"agent_name"`
	WeekStart      string           `json:"week_start"`
	WeekEnd        string           `json:"week_end"`
	DailySummaries []map[string]any `json:"daily_summaries"`
	AggregateStats map[string]any   `json:"aggregate_stats"`
}

func (s *Server) handleWeeklyInsights(w http.ResponseWriter, r *http.Request) {
	log := logger.New().WithRequest(r).WithField("handler", "weekly-insights")

	var req weeklyInsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("bad request body")
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	out, err := s.coach.Weekly(r.Context(), insights.WeeklyInput{
		AgentName:      req.AgentName,
		WeekStart:      req.WeekStart,
		WeekEnd:        req.WeekEnd,
		DailySummaries: req.DailySummaries,
		Stats:          req.AggregateStats,
	})
	if err != nil {
		log.WithError(err).Error("weekly insights failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent_name": req.AgentName,
		"week_start": req.WeekStart,
		"week_end":   req.WeekEnd,
		"insights":   out,
	})
}

type monthlyInsightsRequest struct {
	AgentName          string           `json:"agent_name"`
	Month              int              `json:"month"`
	Year               int              `json:"year"`
	WeeklySummaries    []map[string]any `json:"weekly_summaries"`
	AggregateStats     map[string]any   `json:"aggregate_stats"`
	PreviousMonthStats map[string]any   `json:"previous_month_stats"`
}

func (s *Server) handleMonthlyInsights(w http.ResponseWriter, r *http.Request) {
	log := logger.New().WithRequest(r).WithField("handler", "monthly-insights")

	var req monthlyInsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("bad request body")
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	out, err := s.coach.Monthly(r.Context(), insights.MonthlyInput{
		AgentName:          req.AgentName,
		Month:              req.Month,
		Year:               req.Year,
		WeeklySummaries:    req.WeeklySummaries,
		Stats:              req.AggregateStats,
		PreviousMonthStats: req.PreviousMonthStats,
	})
	if err != nil {
		log.WithError(err).Error("monthly insights failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent_name": req.AgentName,
		"month":      req.Month,
		"year":       req.Year,
		"insights":   out,
	})
}

type exportScorecardsRequest struct {
	AgentName string             `json:"agent_name"`
	Calls     []export.Scorecard `json:"calls"`
}

func (s *Server) handleExportScorecards(w http.ResponseWriter, r *http.Request) {
	log := logger.New().WithRequest(r).WithField("handler", "export-scorecards")

	var req exportScorecardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("bad request body")
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	f, err := export.Workbook(req.AgentName, s.rubric, req.Calls)
	if err != nil {
		log.WithError(err).Error("workbook build failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="scorecards.xlsx"`)
	if err := f.Write(w); err != nil {
		log.WithError(err).Error("failed to stream workbook")
	}
}
