package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shazminnasir67/tech-flow/internal/common"
	"github.com/shazminnasir67/tech-flow/internal/domain/model"
)

// ErrDuplicateMembership indicates the user is already a member of the project.
var ErrDuplicateMembership = fmt.Errorf("user is already a member of this project: %w", common.ErrConflict)

type TeamMemberRepository interface {
	Add(ctx context.Context, member *model.TeamMember) error
	CountByUser(ctx context.Context, userID string) (int, error)
}

type pgTeamMemberRepository struct {
	db *sql.DB
}

func NewPgTeamMemberRepository(db *sql.DB) TeamMemberRepository {
	return &pgTeamMemberRepository{db: db}
}

func (r *pgTeamMemberRepository) Add(ctx context.Context, member *model.TeamMember) error {
	query := `INSERT INTO team_members (id, user_id, project_id, role)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, member.ID, member.UserID, member.ProjectID, member.Role)
	if err != nil {
		if common.IsUniqueViolation(err, "team_members_user_project_key") {
			return ErrDuplicateMembership
		}
		return fmt.Errorf("pgTeamMemberRepository.Add: %w", err)
	}
	return nil
}

func (r *pgTeamMemberRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_members WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgTeamMemberRepository.CountByUser: %w", err)
	}
	return count, nil
}
