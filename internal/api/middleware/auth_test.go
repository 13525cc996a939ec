package middleware

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/shazminnasir67/tech-flow/internal/app/service"
	"github.com/shazminnasir67/tech-flow/internal/app/session"
	"github.com/shazminnasir67/tech-flow/internal/common/security"
	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
	"github.com/shazminnasir67/tech-flow/internal/platform/config"
	"github.com/shazminnasir67/tech-flow/internal/web"
)

var testUserColumns = []string{
	"id", "username", "email", "password_hash", "full_name", "avatar_url",
	"bio", "role", "is_verified", "created_at", "last_login", "last_active",
}

type testEnv struct {
	router *chi.Mux
	store  *session.Store
	mock   sqlmock.Sqlmock
	mr     *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		SessionTTL:  time.Hour,
		RememberKey: []byte("test-secret"),
		RememberExp: time.Hour,
	}
	t.Cleanup(func() { config.AppConfig = prev })

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := session.NewStore(rdb, time.Hour)
	authService := service.NewAuthService(
		repository.NewPgUserRepository(db),
		repository.NewPgActivityRepository(db),
		db,
	)
	manager := NewSessionManager(store, authService)

	r := chi.NewRouter()
	r.Use(manager.WithSession)
	r.Group(func(protected chi.Router) {
		protected.Use(RequireUser("Please login to access your dashboard"))
		protected.Get("/dashboard", func(w http.ResponseWriter, req *http.Request) {
			user, _ := UserFromContext(req.Context())
			w.Write([]byte("hello " + user.Username))
		})
	})

	return &testEnv{router: r, store: store, mock: mock, mr: mr}
}

func generateTestRememberToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := security.GenerateRememberToken(userID)
	if err != nil {
		t.Fatalf("GenerateRememberToken: %v", err)
	}
	return token
}

func popFlashMessages(t *testing.T, res *http.Response) []web.Flash {
	t.Helper()
	for _, cookie := range res.Cookies() {
		if cookie.Name != "techflow_flash" || cookie.Value == "" {
			continue
		}
		data, err := base64.URLEncoding.DecodeString(cookie.Value)
		if err != nil {
			t.Fatalf("decode flash cookie: %v", err)
		}
		var flashes []web.Flash
		if err := json.Unmarshal(data, &flashes); err != nil {
			t.Fatalf("unmarshal flashes: %v", err)
		}
		return flashes
	}
	return nil
}

func TestAnonymousDashboardRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	flashes := popFlashMessages(t, rec.Result())
	if len(flashes) != 1 || flashes[0].Message != "Please login to access your dashboard" {
		t.Errorf("flashes = %v, want login notice", flashes)
	}
}

func TestAuthenticatedSessionPassesThrough(t *testing.T) {
	env := newTestEnv(t)

	user := &model.User{ID: "u-1", Username: "alice", Role: model.RoleDeveloper}
	sess, err := env.store.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), user)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	env.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(testUserColumns).AddRow(
			"u-1", "alice", "alice@x.com", "hash", "Alice A", "", "",
			"developer", false, time.Now(), nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "hello alice" {
		t.Errorf("body = %q", body)
	}
}

func TestStaleSessionIsDestroyedAndTreatedAsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	user := &model.User{ID: "u-gone", Username: "ghost", Role: model.RoleDeveloper}
	sess, err := env.store.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), user)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	env.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").WithArgs("u-gone").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sess.ID})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if env.mr.Exists("session:" + sess.ID) {
		t.Error("stale session was not destroyed")
	}
}

func TestRememberTokenReestablishesSession(t *testing.T) {
	env := newTestEnv(t)

	token := generateTestRememberToken(t, "u-1")
	env.mock.ExpectQuery("SELECT (.+) FROM users WHERE id").WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(testUserColumns).AddRow(
			"u-1", "alice", "alice@x.com", "hash", "Alice A", "", "",
			"developer", false, time.Now(), nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: RememberCookie, Value: token})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var newSession bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			newSession = true
		}
	}
	if !newSession {
		t.Error("expected a fresh session cookie")
	}
}
