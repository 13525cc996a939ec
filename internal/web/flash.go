package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "techflow_flash"

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Category string `json:"category"` // success, error, info
	Message  string `json:"message"`
}

// SetFlashes stores notices in a short-lived cookie, read and cleared on the
// next rendered page.
func SetFlashes(w http.ResponseWriter, flashes []Flash) {
	if len(flashes) == 0 {
		return
	}
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Error and Success are shorthands for a single flash.
func Error(w http.ResponseWriter, message string) {
	SetFlashes(w, []Flash{{Category: "error", Message: message}})
}

func Success(w http.ResponseWriter, message string) {
	SetFlashes(w, []Flash{{Category: "success", Message: message}})
}

// PopFlashes returns pending notices and clears the cookie.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// ViolationFlashes converts validation messages into error notices.
func ViolationFlashes(violations []string) []Flash {
	flashes := make([]Flash, 0, len(violations))
	for _, v := range violations {
		flashes = append(flashes, Flash{Category: "error", Message: v})
	}
	return flashes
}
