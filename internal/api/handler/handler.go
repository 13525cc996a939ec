package handler

import (
	"net/http"

	"github.com/shazminnasir67/tech-flow/internal/api/middleware"
)

// pageData builds the base template context: the authenticated user (when
// present) plus any page-specific entries.
func pageData(r *http.Request, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{}
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		data["User"] = user
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
