package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/app/session"
	"github.com/shazminnasir67/tech-flow/internal/common"
	"github.com/shazminnasir67/tech-flow/internal/common/security"
	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/platform/config"
	"github.com/shazminnasir67/tech-flow/internal/web"
)

const (
	SessionCookie  = "techflow_session"
	RememberCookie = "techflow_remember"
)

type contextKey string

const (
	userCtxKey    contextKey = "currentUser"
	sessionCtxKey contextKey = "currentSession"
)

// SessionManager resolves the session cookie (or a remember-me token) into
// the authenticated user for each request.
type SessionManager struct {
	store       *session.Store
	authService *service.AuthService
}

func NewSessionManager(store *session.Store, authService *service.AuthService) *SessionManager {
	return &SessionManager{store: store, authService: authService}
}

// WithSession loads the current user into the request context. Requests
// without a valid session pass through anonymously; a session whose user no
// longer exists is destroyed on the spot.
func (m *SessionManager) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, user := m.resolve(w, r)
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userCtxKey, user)
		ctx = context.WithValue(ctx, sessionCtxKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionManager) resolve(w http.ResponseWriter, r *http.Request) (*session.Session, *model.User) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		sess, err := m.store.Get(r.Context(), cookie.Value)
		switch {
		case err == nil:
			user, err := m.authService.FindUser(r.Context(), sess.UserID)
			if err == nil {
				return sess, user
			}
			if errors.Is(err, common.ErrNotFound) {
				// Stale session for a vanished user: revoke it.
				if derr := m.store.Destroy(r.Context(), sess.ID); derr != nil {
					log.Printf("Error destroying stale session: %v", derr)
				}
				ClearSessionCookie(w)
			} else {
				log.Printf("Error loading session user: %v", err)
			}
		case errors.Is(err, session.ErrNoSession):
			ClearSessionCookie(w)
		default:
			log.Printf("Error resolving session: %v", err)
			return nil, nil
		}
	}

	// No live session; a valid remember-me token re-establishes one.
	cookie, err := r.Cookie(RememberCookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	userID, err := security.ParseRememberToken(cookie.Value)
	if err != nil {
		ClearRememberCookie(w)
		return nil, nil
	}
	user, err := m.authService.FindUser(r.Context(), userID)
	if err != nil {
		ClearRememberCookie(w)
		return nil, nil
	}
	sess, err := m.store.Create(r.Context(), user)
	if err != nil {
		log.Printf("Error re-establishing session: %v", err)
		return nil, nil
	}
	SetSessionCookie(w, sess.ID)
	return sess, user
}

// RequireUser guards a protected route: anonymous requests are redirected to
// the login page with the given notice.
func RequireUser(notice string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				web.Error(w, notice)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}

// SessionFromContext returns the active session, if any.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey).(*session.Session)
	return sess, ok
}

func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(config.AppConfig.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func SetRememberCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.RememberExp.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearRememberCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
