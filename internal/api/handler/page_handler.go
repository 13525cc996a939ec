package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shazminnasir67/tech-flow/internal/api/middleware"
	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/web"
)

type PageHandler struct {
	statsService     *service.StatsService
	dashboardService *service.DashboardService
	renderer         *web.Renderer
}

func NewPageHandler(statsService *service.StatsService, dashboardService *service.DashboardService, renderer *web.Renderer) *PageHandler {
	return &PageHandler{statsService: statsService, dashboardService: dashboardService, renderer: renderer}
}

func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.index)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireUser("Please login to access your dashboard"))
		protected.Get("/dashboard", h.dashboard)
	})
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireUser("Please login to view your profile"))
		protected.Get("/profile", h.profile)
	})
}

func (h *PageHandler) index(w http.ResponseWriter, r *http.Request) {
	landing, err := h.statsService.Landing(r.Context())
	if err != nil {
		log.Printf("Landing page error: %v", err)
		h.renderer.ServerError(w, r)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "index", pageData(r, map[string]interface{}{
		"Landing": landing,
	}))
}

func (h *PageHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	data, err := h.dashboardService.Load(r.Context(), user.ID)
	if err != nil {
		log.Printf("Dashboard error: %v", err)
		h.renderer.ServerError(w, r)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "dashboard", pageData(r, map[string]interface{}{
		"Dashboard": data,
	}))
}

func (h *PageHandler) profile(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "profile", pageData(r, nil))
}
