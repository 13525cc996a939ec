package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/shazminnasir67/tech-flow/internal/common/security"
	"github.com/shazminnasir67/tech-flow/internal/platform/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'developer' CHECK (role IN ('developer','admin','manager')),
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login TIMESTAMPTZ,
		last_active TIMESTAMPTZ,
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		repository_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','archived','completed')),
		visibility TEXT NOT NULL DEFAULT 'private' CHECK (visibility IN ('private','public','team')),
		owner_id TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT projects_slug_key UNIQUE (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		project_id TEXT NOT NULL REFERENCES projects(id),
		role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('owner','admin','member','viewer')),
		joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT team_members_user_project_key UNIQUE (user_id, project_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'todo' CHECK (status IN ('todo','in_progress','review','done')),
		priority TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low','medium','high','urgent')),
		assignee_id TEXT REFERENCES users(id),
		project_id TEXT NOT NULL REFERENCES projects(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		due_date TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS user_activities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		activity_type TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		metadata TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_team_members_user ON team_members(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_activities_user ON user_activities(user_id, created_at DESC)`,
}

// Migrate applies the schema. Statements are idempotent so this is safe to
// run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	return nil
}

// Seed inserts a demo admin user and a public sample project when the users
// table is empty. Gated behind SEED_DEMO_DATA so production deployments never
// ship fixed credentials.
func Seed(ctx context.Context, db *sql.DB) error {
	if !config.AppConfig.SeedDemoData {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("database.Seed: %w", err)
	}
	if count > 0 {
		log.Println("Database already initialized")
		return nil
	}

	hash, err := security.HashPassword("admin123")
	if err != nil {
		return fmt.Errorf("database.Seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database.Seed: %w", err)
	}
	defer tx.Rollback()

	adminID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, full_name, role, is_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)`,
		adminID, "admin", "admin@techflow.com", hash, "TechFlow Admin", "admin")
	if err != nil {
		return fmt.Errorf("database.Seed: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, slug, description, visibility, owner_id)
		 VALUES ($1, $2, $3, $4, 'public', $5)`,
		uuid.NewString(), "TechFlow Platform", "techflow-platform",
		"The main TechFlow collaboration platform", adminID)
	if err != nil {
		return fmt.Errorf("database.Seed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database.Seed: %w", err)
	}
	log.Println("Database initialized with sample data")
	return nil
}
