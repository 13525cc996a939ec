package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shazminnasir67/tech-flow/internal/api/middleware"
	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/web"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	renderer       *web.Renderer
}

func NewProjectHandler(projectService *service.ProjectService, renderer *web.Renderer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, renderer: renderer}
}

func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireUser("Please login to view projects"))
		protected.Get("/projects", h.list)
	})
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireUser("Please login to create projects"))
		protected.Get("/projects/new", h.newForm)
		protected.Post("/projects/new", h.create)
	})
}

func (h *ProjectHandler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	listing, err := h.projectService.ListProjects(r.Context(), user.ID)
	if err != nil {
		log.Printf("Project listing error: %v", err)
		h.renderer.ServerError(w, r)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "projects", pageData(r, map[string]interface{}{
		"Listing": listing,
	}))
}

func (h *ProjectHandler) newForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "new_project", pageData(r, map[string]interface{}{
		"Form": service.CreateProjectRequest{Visibility: "private"},
	}))
}

func (h *ProjectHandler) create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusOK, "new_project", pageData(r, map[string]interface{}{
			"Form":    service.CreateProjectRequest{},
			"Flashes": web.ViolationFlashes([]string{"Invalid form submission"}),
		}))
		return
	}

	req := service.CreateProjectRequest{
		Name:          r.PostFormValue("name"),
		Description:   r.PostFormValue("description"),
		RepositoryURL: r.PostFormValue("repository_url"),
		Visibility:    r.PostFormValue("visibility"),
	}

	project, violations, err := h.projectService.CreateProject(r.Context(), user.ID, req)
	if err != nil {
		log.Printf("Project creation error: %v", err)
		h.renderer.Render(w, r, http.StatusOK, "new_project", pageData(r, map[string]interface{}{
			"Form":    req,
			"Flashes": web.ViolationFlashes([]string{"Failed to create project"}),
		}))
		return
	}
	if len(violations) > 0 {
		h.renderer.Render(w, r, http.StatusOK, "new_project", pageData(r, map[string]interface{}{
			"Form":    req,
			"Flashes": web.ViolationFlashes(violations),
		}))
		return
	}

	log.Printf("Project created successfully: %s", project.Name)
	web.Success(w, `Project "`+project.Name+`" created successfully!`)
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}
