package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shazminnasir67/tech-flow/internal/common"
	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

var (
	// ErrDuplicateUsername and ErrDuplicateEmail identify which unique
	// constraint rejected an insert, so handlers can surface the exact
	// validation message.
	ErrDuplicateUsername = fmt.Errorf("username already exists: %w", common.ErrConflict)
	ErrDuplicateEmail    = fmt.Errorf("email already registered: %w", common.ErrConflict)
)

type UserRepository interface {
	Create(ctx context.Context, tx *sql.Tx, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLoginTimestamps(ctx context.Context, tx *sql.Tx, id string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, full_name, avatar_url, bio, role, is_verified, created_at, last_login, last_active`

func (r *pgUserRepository) Create(ctx context.Context, tx *sql.Tx, user *model.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, full_name, avatar_url, bio, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FullName, user.AvatarURL, user.Bio, user.Role)
	if err != nil {
		switch {
		case common.IsUniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case common.IsUniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		case common.IsUniqueViolation(err, ""):
			return fmt.Errorf("user already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *pgUserRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.AvatarURL, &user.Bio, &user.Role,
		&user.IsVerified, &user.CreatedAt, &user.LastLogin, &user.LastActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findBy %s: %w", column, err)
	}
	return user, nil
}

func (r *pgUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.UsernameExists: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.EmailExists: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepository) UpdateLoginTimestamps(ctx context.Context, tx *sql.Tx, id string, at time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET last_login = $2, last_active = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateLoginTimestamps: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgUserRepository.Count: %w", err)
	}
	return count, nil
}
