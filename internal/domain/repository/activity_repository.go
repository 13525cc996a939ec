package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

// ActivityRepository is append-only. There are deliberately no update or
// delete operations; activities form the audit trail.
type ActivityRepository interface {
	Append(ctx context.Context, tx *sql.Tx, activity *model.UserActivity) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.UserActivity, error)
}

type pgActivityRepository struct {
	db *sql.DB
}

func NewPgActivityRepository(db *sql.DB) ActivityRepository {
	return &pgActivityRepository{db: db}
}

func (r *pgActivityRepository) Append(ctx context.Context, tx *sql.Tx, activity *model.UserActivity) error {
	query := `INSERT INTO user_activities (id, user_id, activity_type, description, metadata)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.ExecContext(ctx, query,
		activity.ID, activity.UserID, activity.ActivityType, activity.Description, activity.Metadata)
	if err != nil {
		return fmt.Errorf("pgActivityRepository.Append: %w", err)
	}
	return nil
}

func (r *pgActivityRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.UserActivity, error) {
	query := `SELECT id, user_id, activity_type, description, metadata, created_at
	          FROM user_activities WHERE user_id = $1
	          ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgActivityRepository.ListRecentByUser: %w", err)
	}
	defer rows.Close()

	var activities []model.UserActivity
	for rows.Next() {
		var a model.UserActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.Description, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgActivityRepository.ListRecentByUser: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgActivityRepository.ListRecentByUser: %w", err)
	}
	return activities, nil
}
