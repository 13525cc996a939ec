package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

// ErrNoSession indicates the session id is unknown or has expired.
var ErrNoSession = errors.New("session not found")

// Session binds an opaque identifier to an authenticated user.
type Session struct {
	ID       string
	UserID   string
	Username string
	Role     string
	IssuedAt time.Time
}

// Store keeps sessions in Redis under session:<id> hashes with a sliding TTL.
// Deleting the key revokes the session immediately.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create issues a new session for the user and returns it.
func (s *Store) Create(ctx context.Context, user *model.User) (*Session, error) {
	sess := &Session{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IssuedAt: time.Now().UTC(),
	}

	fields := map[string]interface{}{
		"user_id":   sess.UserID,
		"username":  sess.Username,
		"role":      sess.Role,
		"issued_at": sess.IssuedAt.Format(time.RFC3339Nano),
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(sess.ID), fields)
	pipe.Expire(ctx, sessionKey(sess.ID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("session.Store.Create: %w", err)
	}
	return sess, nil
}

// Get resolves a session id and refreshes its TTL. Unknown or expired ids
// return ErrNoSession.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	fields, err := s.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session.Store.Get: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNoSession
	}

	sess := &Session{
		ID:       id,
		UserID:   fields["user_id"],
		Username: fields["username"],
		Role:     fields["role"],
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["issued_at"]); err == nil {
		sess.IssuedAt = ts
	}
	if sess.UserID == "" {
		return nil, ErrNoSession
	}

	// Sliding expiry: every authenticated request extends the session.
	if err := s.rdb.Expire(ctx, sessionKey(id), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session.Store.Get: %w", err)
	}
	return sess, nil
}

// Destroy revokes the session. Destroying an unknown id is not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session.Store.Destroy: %w", err)
	}
	return nil
}
