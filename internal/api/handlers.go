package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"analyzer/internal/analyzer"
	"analyzer/internal/domain"
	"analyzer/internal/report"

	"go.uber.org/zap"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.URLs) > 0 {
		s.analyzeBatch(w, r, req)
		return
	}
	if req.URL == "" {
		s.respondWithError(w, http.StatusBadRequest, "url or urls is required")
		return
	}
	s.analyzeSingle(w, r, req)
}

func (s *Server) analyzeSingle(w http.ResponseWriter, r *http.Request, req domain.AnalyzeRequest) {
	analysisReq, err := domain.NewAnalysisRequest(req.URL, req.CompanyName, req.Location)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pipeline.Analyze(r.Context(), analysisReq)
	if err != nil {
		s.logger.Warn("single analysis failed", zap.String("url", analysisReq.URL), zap.Error(err))
		s.respondWithJSON(w, http.StatusBadGateway,
			domain.Failure{URL: analysisReq.URL, Reason: err.Error()})
		return
	}
	s.respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) analyzeBatch(w http.ResponseWriter, r *http.Request, req domain.AnalyzeRequest) {
	items := make([]analyzer.BatchItem, 0, len(req.URLs))
	for _, u := range req.URLs {
		items = append(items, analyzer.BatchItem{
			URL:         u,
			CompanyName: req.CompanyName,
			Location:    req.Location,
		})
	}

	batch := s.orchestrator.Run(r.Context(), items)

	payload := make([]interface{}, 0, len(batch.Outcomes))
	for _, o := range batch.Outcomes {
		if o.Result != nil {
			payload = append(payload, o.Result)
		} else {
			payload = append(payload, o.Failure)
		}
	}

	// Partial failure stays 200 with embedded per-item errors; a batch where
	// every pipeline failed signals total collaborator outage.
	status := http.StatusOK
	if batch.Failed() {
		status = http.StatusBadGateway
	}
	s.respondWithJSON(w, status, payload)
}

// ExportRequest is the payload for PDF export.
type ExportRequest struct {
	Results []domain.AnalysisResult `json:"results"`
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := report.Export(req.Results)
	if err != nil {
		if err == domain.ErrEmptyInput {
			s.respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("pdf export failed", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="terratrust-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthStatus := make(map[string]string)
	isHealthy := true

	if s.pgStore == nil {
		healthStatus["postgres"] = "disabled"
	} else if err := s.pgStore.Ping(ctx); err != nil {
		healthStatus["postgres"] = "unhealthy"
		isHealthy = false
		s.logger.Error("health check failed for postgres", zap.Error(err))
	} else {
		healthStatus["postgres"] = "healthy"
	}

	if s.redisStore == nil {
		healthStatus["redis"] = "disabled"
	} else if err := s.redisStore.Ping(ctx); err != nil {
		healthStatus["redis"] = "unhealthy"
		isHealthy = false
		s.logger.Error("health check failed for redis", zap.Error(err))
	} else {
		healthStatus["redis"] = "healthy"
	}

	if !isHealthy {
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
