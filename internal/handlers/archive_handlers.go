package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"meteo-qc/internal/repository"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

// ArchiveHandler handles the read API over archived quality-control runs
type ArchiveHandler struct {
	repo    repository.ArchiveRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(repo repository.ArchiveRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ArchiveHandler {
	return &ArchiveHandler{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// ListRuns handles GET /api/runs
func (h *ArchiveHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/runs").Observe(duration.Seconds())
	}()

	page, limit := pagination(r)
	offset := (page - 1) * limit

	runs, err := h.repo.ListRuns(ctx, limit, offset)
	if err != nil {
		h.logger.Error(ctx, "[API_LIST_RUNS_ERROR] Failed to list runs", logging.Fields{}, err)
		h.metrics.RecordAPIError("internal_error", "/api/runs")
		h.sendError(w, r, "failed to retrieve runs", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/runs", "GET", "200")
	h.sendJSON(w, runs, http.StatusOK)
}

// GetRun handles GET /api/runs/{id}
func (h *ArchiveHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.sendError(w, r, "invalid run id", http.StatusBadRequest)
		return
	}

	run, err := h.repo.GetRun(ctx, id)
	if err != nil {
		if _, ok := err.(*repository.NotFoundError); ok {
			h.sendError(w, r, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error(ctx, "[API_GET_RUN_ERROR] Failed to get run", logging.Fields{
			"run_id": id,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/runs/{id}")
		h.sendError(w, r, "failed to retrieve run", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/runs/{id}", "GET", "200")
	h.sendJSON(w, run, http.StatusOK)
}

// GetObservations handles GET /api/runs/{id}/observations
func (h *ArchiveHandler) GetObservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/runs/{id}/observations").Observe(duration.Seconds())
	}()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.sendError(w, r, "invalid run id", http.StatusBadRequest)
		return
	}

	page, limit := pagination(r)
	filter := repository.ObservationFilter{
		RunID:  id,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if s := r.URL.Query().Get("start"); s != "" {
		start, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.sendError(w, r, "invalid start, expected RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		filter.StartTime = &start
	}

	if s := r.URL.Query().Get("end"); s != "" {
		end, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.sendError(w, r, "invalid end, expected RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		filter.EndTime = &end
	}

	observations, total, err := h.repo.GetObservations(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_OBSERVATIONS_ERROR] Failed to get observations", logging.Fields{
			"run_id": id,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/runs/{id}/observations")
		h.sendError(w, r, "failed to retrieve observations", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/runs/{id}/observations", "GET", "200")
	h.sendJSON(w, paginated(observations, total, page, limit), http.StatusOK)
}

// GetFindings handles GET /api/runs/{id}/findings
func (h *ArchiveHandler) GetFindings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/runs/{id}/findings").Observe(duration.Seconds())
	}()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.sendError(w, r, "invalid run id", http.StatusBadRequest)
		return
	}

	page, limit := pagination(r)
	filter := repository.FindingFilter{
		RunID:  id,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter.Kind = &kind
	}
	if channel := r.URL.Query().Get("channel"); channel != "" {
		filter.Channel = &channel
	}

	findings, total, err := h.repo.GetFindings(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_FINDINGS_ERROR] Failed to get findings", logging.Fields{
			"run_id": id,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/runs/{id}/findings")
		h.sendError(w, r, "failed to retrieve findings", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/runs/{id}/findings", "GET", "200")
	h.sendJSON(w, paginated(findings, total, page, limit), http.StatusOK)
}

// HealthCheck handles GET /health
func (h *ArchiveHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.repo.HealthCheck(ctx); err != nil {
		status["status"] = "degraded"
		h.sendJSON(w, status, http.StatusServiceUnavailable)
		return
	}

	h.sendJSON(w, status, http.StatusOK)
}

// RegisterRoutes registers all archive API routes
func (h *ArchiveHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/runs", h.ListRuns).Methods("GET")
	router.HandleFunc("/api/runs/{id}", h.GetRun).Methods("GET")
	router.HandleFunc("/api/runs/{id}/observations", h.GetObservations).Methods("GET")
	router.HandleFunc("/api/runs/{id}/findings", h.GetFindings).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

// pagination parses the page/limit query parameters with defaults
func pagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 100

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 1000 {
		limit = l
	}
	return page, limit
}

func paginated(data interface{}, total, page, limit int) PaginatedResponse {
	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}

// sendJSON sends a JSON response
func (h *ArchiveHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *ArchiveHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}
