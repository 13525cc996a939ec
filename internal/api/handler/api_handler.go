package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/common"
	"github.com/shazminnasir67/tech-flow/internal/platform/config"
)

type APIHandler struct {
	statsService *service.StatsService
}

func NewAPIHandler(statsService *service.StatsService) *APIHandler {
	return &APIHandler{statsService: statsService}
}

func (h *APIHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.health)
	r.Get("/stats", h.stats)
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *APIHandler) health(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := h.statsService.HealthCheck(r.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		common.RespondWithJSON(w, http.StatusInternalServerError, healthResponse{
			Status:    "unhealthy",
			Service:   config.AppConfig.ServiceName,
			Timestamp: now,
			Error:     err.Error(),
		})
		return
	}
	common.RespondWithJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   config.AppConfig.ServiceName,
		Version:   config.AppConfig.Version,
		Timestamp: now,
		Database:  "connected",
	})
}

func (h *APIHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Overview(r.Context())
	if err != nil {
		log.Printf("Stats API error: %v", err)
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Database error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
