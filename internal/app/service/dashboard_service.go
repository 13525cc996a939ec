package service

import (
	"context"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
)

type DashboardService struct {
	projectRepo  repository.ProjectRepository
	memberRepo   repository.TeamMemberRepository
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityRepository
}

func NewDashboardService(
	projectRepo repository.ProjectRepository,
	memberRepo repository.TeamMemberRepository,
	taskRepo repository.TaskRepository,
	activityRepo repository.ActivityRepository,
) *DashboardService {
	return &DashboardService{
		projectRepo:  projectRepo,
		memberRepo:   memberRepo,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
	}
}

type DashboardStats struct {
	TotalProjects   int `json:"total_projects"`
	ActiveTasks     int `json:"active_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	TeamMemberships int `json:"team_memberships"`
}

type DashboardData struct {
	OwnedProjects []model.Project
	TeamProjects  []model.Project
	Activities    []model.UserActivity
	AssignedTasks []model.Task
	Stats         DashboardStats
}

// Load aggregates the dashboard view for one user: the five most recently
// updated projects on each side, the ten newest activities, the five most
// urgent open tasks by due date, and the summary counters.
func (s *DashboardService) Load(ctx context.Context, userID string) (*DashboardData, error) {
	owned, err := s.projectRepo.ListByOwner(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	team, err := s.projectRepo.ListByMember(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListRecentByUser(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListOpenByAssignee(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	completed, err := s.taskRepo.CountByAssigneeAndStatus(ctx, userID, model.TaskStatusDone)
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		OwnedProjects: owned,
		TeamProjects:  team,
		Activities:    activities,
		AssignedTasks: tasks,
		Stats: DashboardStats{
			TotalProjects:   len(owned) + len(team),
			ActiveTasks:     len(tasks),
			CompletedTasks:  completed,
			TeamMemberships: memberships,
		},
	}, nil
}
