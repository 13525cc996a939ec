package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
)

type StatsService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	db          *sql.DB
}

func NewStatsService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	db *sql.DB,
) *StatsService {
	return &StatsService{userRepo: userRepo, projectRepo: projectRepo, taskRepo: taskRepo, db: db}
}

type PlatformStats struct {
	TotalUsers     int `json:"total_users"`
	TotalProjects  int `json:"total_projects"`
	ActiveProjects int `json:"active_projects"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// Overview returns platform-wide counters for the stats endpoint.
func (s *StatsService) Overview(ctx context.Context) (*PlatformStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.projectRepo.CountByStatus(ctx, model.ProjectStatusActive)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.taskRepo.CountByStatus(ctx, model.TaskStatusDone)
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalUsers:     users,
		TotalProjects:  projects,
		ActiveProjects: active,
		TotalTasks:     tasks,
		CompletedTasks: completed,
	}, nil
}

type LandingData struct {
	FeaturedProjects []model.Project
	TotalUsers       int
	TotalProjects    int
	ActiveProjects   int
}

// Landing returns the public landing page aggregate: up to six featured
// public projects plus headline counters.
func (s *StatsService) Landing(ctx context.Context) (*LandingData, error) {
	featured, err := s.projectRepo.ListPublic(ctx, 6)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.projectRepo.CountByStatus(ctx, model.ProjectStatusActive)
	if err != nil {
		return nil, err
	}
	return &LandingData{
		FeaturedProjects: featured,
		TotalUsers:       users,
		TotalProjects:    projects,
		ActiveProjects:   active,
	}, nil
}

// HealthCheck performs a trivial round-trip against the store.
func (s *StatsService) HealthCheck(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("health check query: %w", err)
	}
	return nil
}
