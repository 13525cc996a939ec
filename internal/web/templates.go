package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "register", "login", "dashboard", "projects",
	"new_project", "profile", "404", "500",
}

// Renderer holds the precompiled page templates. Each page is parsed together
// with the base layout so pages can share chrome without colliding on block
// names.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() *Renderer {
	funcMap := template.FuncMap{
		"formatTime": func(v interface{}) string {
			var t time.Time
			switch ts := v.(type) {
			case time.Time:
				t = ts
			case *time.Time:
				if ts == nil {
					return ""
				}
				t = *ts
			default:
				return ""
			}
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"statusLabel": func(s string) string {
			labels := map[string]string{
				"todo":        "To Do",
				"in_progress": "In Progress",
				"review":      "Review",
				"done":        "Done",
				"active":      "Active",
				"archived":    "Archived",
				"completed":   "Completed",
			}
			if l, ok := labels[s]; ok {
				return l
			}
			return s
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			log.Fatalf("Error parsing template %s: %v", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}
}

// Render writes the named page. Pending flash notices are injected into the
// template data under "Flashes".
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	tmpl, ok := rn.pages[name]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown template %q", name), http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	// Pending notices are always consumed, even when the caller supplies its
	// own, so a flash cookie never outlives the next rendered page.
	flashes := PopFlashes(w, r)
	if supplied, ok := data["Flashes"].([]Flash); ok {
		flashes = append(flashes, supplied...)
	}
	data["Flashes"] = flashes

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// NotFound renders the generic not-found page.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.Render(w, r, http.StatusNotFound, "404", nil)
}

// ServerError renders the generic error page.
func (rn *Renderer) ServerError(w http.ResponseWriter, r *http.Request) {
	rn.Render(w, r, http.StatusInternalServerError, "500", nil)
}
