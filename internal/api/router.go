package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shazminnasir67/tech-flow/internal/api/handler"
	"github.com/shazminnasir67/tech-flow/internal/api/middleware"
	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/app/session"
	"github.com/shazminnasir67/tech-flow/internal/web"
)

func NewRouter(
	authService *service.AuthService,
	projectService *service.ProjectService,
	dashboardService *service.DashboardService,
	statsService *service.StatsService,
	sessions *session.Store,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	renderer := web.NewRenderer()
	sessionManager := middleware.NewSessionManager(sessions, authService)

	// Server-rendered pages (session-aware)
	r.Group(func(pages chi.Router) {
		pages.Use(sessionManager.WithSession)

		handler.NewAuthHandler(authService, sessions, renderer).RegisterRoutes(pages)
		handler.NewPageHandler(statsService, dashboardService, renderer).RegisterRoutes(pages)
		handler.NewProjectHandler(projectService, renderer).RegisterRoutes(pages)
	})

	// JSON API
	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		handler.NewAPIHandler(statsService).RegisterRoutes(apiRouter)
	})

	// Unmatched routes render the generic not-found page.
	r.NotFound(renderer.NotFound)

	return r
}
