package handler

import (
	"encoding/json"
	"net/http"

	"stayhub/internal/analytics/service"
	httputil "stayhub/pkg/http"
	"stayhub/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	log     *logger.Logger
}

func NewAnalyticsHandler(service service.AnalyticsService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log,
	}
}

type recordClickRequest struct {
	SubjectID string `json:"subject_id"`
}

func (h *AnalyticsHandler) RecordClick(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req recordClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "RecordClick", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	event, err := h.service.Record(r.Context(), req.SubjectID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RecordClick", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, event); err != nil {
		h.log.Error("failed to write created response", "handler", "RecordClick", "operation", "WriteCreated", "error", err)
	}
}

func (h *AnalyticsHandler) Metrics(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	subjectID := ps.ByName("subjectId")

	metrics, err := h.service.Metrics(r.Context(), subjectID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Metrics", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, metrics); err != nil {
		h.log.Error("failed to write success response", "handler", "Metrics", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/clicks", h.RecordClick)
	router.GET("/api/v1/metrics/:subjectId", h.Metrics)
}
