package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shazminnasir67/tech-flow/internal/api/middleware"
	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/app/session"
	"github.com/shazminnasir67/tech-flow/internal/common/security"
	"github.com/shazminnasir67/tech-flow/internal/web"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Store
	renderer    *web.Renderer
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Store, renderer *web.Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, renderer: renderer}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
}

func (h *AuthHandler) registerForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register", pageData(r, map[string]interface{}{
		"Form": service.RegistrationInput{},
	}))
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusOK, "register", pageData(r, map[string]interface{}{
			"Form":    service.RegistrationInput{},
			"Flashes": web.ViolationFlashes([]string{"Invalid form submission"}),
		}))
		return
	}

	input := service.RegistrationInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		FullName:        r.PostFormValue("full_name"),
	}

	user, violations, err := h.authService.Register(r.Context(), input)
	if err != nil {
		log.Printf("Registration error: %v", err)
		h.renderer.Render(w, r, http.StatusOK, "register", pageData(r, map[string]interface{}{
			"Form":    input,
			"Flashes": web.ViolationFlashes([]string{"Registration failed. Please try again."}),
		}))
		return
	}
	if len(violations) > 0 {
		// Every violation is reported together; the form re-renders with
		// the submitted values (passwords excluded).
		input.Password = ""
		input.ConfirmPassword = ""
		h.renderer.Render(w, r, http.StatusOK, "register", pageData(r, map[string]interface{}{
			"Form":    input,
			"Flashes": web.ViolationFlashes(violations),
		}))
		return
	}

	log.Printf("User registered successfully: %s", user.Username)
	web.Success(w, "Registration successful! Welcome to TechFlow.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type loginForm struct {
	Username string
}

func (h *AuthHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login", pageData(r, map[string]interface{}{
		"Form": loginForm{},
	}))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusOK, "login", pageData(r, map[string]interface{}{
			"Form":    loginForm{},
			"Flashes": web.ViolationFlashes([]string{"Invalid form submission"}),
		}))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") == "on"

	user, violations, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		log.Printf("Login error: %v", err)
		h.renderer.Render(w, r, http.StatusOK, "login", pageData(r, map[string]interface{}{
			"Form":    loginForm{Username: username},
			"Flashes": web.ViolationFlashes([]string{"Login failed. Please try again."}),
		}))
		return
	}
	if len(violations) > 0 {
		h.renderer.Render(w, r, http.StatusOK, "login", pageData(r, map[string]interface{}{
			"Form":    loginForm{Username: username},
			"Flashes": web.ViolationFlashes(violations),
		}))
		return
	}

	sess, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		log.Printf("Session creation error: %v", err)
		h.renderer.Render(w, r, http.StatusOK, "login", pageData(r, map[string]interface{}{
			"Form":    loginForm{Username: username},
			"Flashes": web.ViolationFlashes([]string{"Login failed. Please try again."}),
		}))
		return
	}
	middleware.SetSessionCookie(w, sess.ID)

	if remember {
		token, err := security.GenerateRememberToken(user.ID)
		if err != nil {
			log.Printf("Remember token error: %v", err)
		} else {
			middleware.SetRememberCookie(w, token)
		}
	}

	web.Success(w, "Welcome back, "+user.DisplayName()+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		// Audit first, then revoke. The session is cleared regardless.
		if err := h.authService.RecordLogout(r.Context(), sess.UserID); err != nil {
			log.Printf("Logout activity error: %v", err)
		}
		if err := h.sessions.Destroy(r.Context(), sess.ID); err != nil {
			log.Printf("Session destroy error: %v", err)
		}
	}
	middleware.ClearSessionCookie(w)
	middleware.ClearRememberCookie(w)
	web.Success(w, "You have been logged out successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
