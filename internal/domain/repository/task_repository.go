package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

type TaskRepository interface {
	ListOpenByAssignee(ctx context.Context, userID string, limit int) ([]model.Task, error)
	CountByAssigneeAndStatus(ctx context.Context, userID string, status model.TaskStatus) (int, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.TaskStatus) (int, error)
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, assignee_id, project_id, created_at, updated_at, due_date`

func (r *pgTaskRepository) ListOpenByAssignee(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	          WHERE assignee_id = $1 AND status IN ('todo', 'in_progress')
	          ORDER BY due_date ASC NULLS LAST LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListOpenByAssignee: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.AssigneeID, &t.ProjectID, &t.CreatedAt, &t.UpdatedAt, &t.DueDate,
		); err != nil {
			return nil, fmt.Errorf("pgTaskRepository.ListOpenByAssignee: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListOpenByAssignee: %w", err)
	}
	return tasks, nil
}

func (r *pgTaskRepository) CountByAssigneeAndStatus(ctx context.Context, userID string, status model.TaskStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE assignee_id = $1 AND status = $2`, userID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgTaskRepository.CountByAssigneeAndStatus: %w", err)
	}
	return count, nil
}

func (r *pgTaskRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgTaskRepository.Count: %w", err)
	}
	return count, nil
}

func (r *pgTaskRepository) CountByStatus(ctx context.Context, status model.TaskStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgTaskRepository.CountByStatus: %w", err)
	}
	return count, nil
}
