package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shazminnasir67/tech-flow/internal/common"
	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

// ErrDuplicateSlug indicates the generated project slug is already taken.
var ErrDuplicateSlug = fmt.Errorf("project slug already exists: %w", common.ErrConflict)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.Project, error)
	ListByMember(ctx context.Context, userID string, limit int) ([]model.Project, error)
	ListPublic(ctx context.Context, limit int) ([]model.Project, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.ProjectStatus) (int, error)
}

type pgProjectRepository struct {
	db *sql.DB
}

func NewPgProjectRepository(db *sql.DB) ProjectRepository {
	return &pgProjectRepository{db: db}
}

const projectColumns = `id, name, slug, description, repository_url, status, visibility, owner_id, created_at, updated_at`

func (r *pgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `INSERT INTO projects (id, name, slug, description, repository_url, status, visibility, owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Slug, project.Description,
		project.RepositoryURL, project.Status, project.Visibility, project.OwnerID)
	if err != nil {
		if common.IsUniqueViolation(err, "projects_slug_key") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("pgProjectRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE owner_id = $1 ORDER BY updated_at DESC`
	args := []interface{}{ownerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.list(ctx, "ListByOwner", query, args...)
}

func (r *pgProjectRepository) ListByMember(ctx context.Context, userID string, limit int) ([]model.Project, error) {
	query := `SELECT p.id, p.name, p.slug, p.description, p.repository_url, p.status, p.visibility, p.owner_id, p.created_at, p.updated_at
	          FROM projects p
	          JOIN team_members tm ON tm.project_id = p.id
	          WHERE tm.user_id = $1 ORDER BY p.updated_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.list(ctx, "ListByMember", query, args...)
}

func (r *pgProjectRepository) ListPublic(ctx context.Context, limit int) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE visibility = 'public' ORDER BY updated_at DESC LIMIT $1`
	return r.list(ctx, "ListPublic", query, limit)
}

func (r *pgProjectRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProjectRepository.%s: %w", op, err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.RepositoryURL,
			&p.Status, &p.Visibility, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgProjectRepository.%s: %w", op, err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProjectRepository.%s: %w", op, err)
	}
	return projects, nil
}

func (r *pgProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgProjectRepository.Count: %w", err)
	}
	return count, nil
}

func (r *pgProjectRepository) CountByStatus(ctx context.Context, status model.ProjectStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgProjectRepository.CountByStatus: %w", err)
	}
	return count, nil
}
