package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

func testUser() *model.User {
	return &model.User{ID: "u-1", Username: "alice", Role: model.RoleDeveloper}
}

func TestCreateAndGetSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected opaque session id")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "u-1" || got.Username != "alice" || got.Role != model.RoleDeveloper {
		t.Errorf("unexpected session: %+v", got)
	}

	if ttl := mr.TTL("session:" + sess.ID); ttl <= 0 {
		t.Errorf("expected a TTL on the session key, got %v", ttl)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
	if _, err := store.Get(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Errorf("empty id err = %v, want ErrNoSession", err)
	}
}

func TestGetRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Burn down most of the TTL, then touch the session.
	mr.FastForward(50 * time.Minute)
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ttl := mr.TTL("session:" + sess.ID); ttl < 59*time.Minute {
		t.Errorf("TTL not refreshed, got %v", ttl)
	}
}

func TestExpiredSessionIsGone(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession after expiry", err)
	}
}

func TestDestroyRevokesImmediately(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Destroy(ctx, sess.ID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession after destroy", err)
	}

	// Destroying twice is fine.
	if err := store.Destroy(ctx, sess.ID); err != nil {
		t.Errorf("second Destroy: %v", err)
	}
}
