package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
)

type fakeTaskRepo struct {
	open      []model.Task
	completed int
}

func (f *fakeTaskRepo) ListOpenByAssignee(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	if limit > 0 && len(f.open) > limit {
		return f.open[:limit], nil
	}
	return f.open, nil
}

func (f *fakeTaskRepo) CountByAssigneeAndStatus(ctx context.Context, userID string, status model.TaskStatus) (int, error) {
	if status == model.TaskStatusDone {
		return f.completed, nil
	}
	return 0, nil
}

func (f *fakeTaskRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeTaskRepo) CountByStatus(ctx context.Context, status model.TaskStatus) (int, error) {
	return 0, nil
}

type fakeActivityRepo struct {
	recent []model.UserActivity
}

func (f *fakeActivityRepo) Append(ctx context.Context, tx *sql.Tx, a *model.UserActivity) error {
	return nil
}

func (f *fakeActivityRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.UserActivity, error) {
	if limit > 0 && len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func TestDashboardAggregation(t *testing.T) {
	projects := make([]model.Project, 7)
	for i := range projects {
		projects[i] = model.Project{ID: "p", Name: "Project", UpdatedAt: time.Now()}
	}
	activities := make([]model.UserActivity, 12)
	for i := range activities {
		activities[i] = model.UserActivity{ActivityType: model.ActivityLogin}
	}
	tasks := []model.Task{
		{Title: "a", Status: model.TaskStatusTodo},
		{Title: "b", Status: model.TaskStatusInProgress},
	}

	svc := NewDashboardService(
		&fakeProjectRepo{own: projects, team: projects[:3]},
		&fakeMemberRepo{count: 3},
		&fakeTaskRepo{open: tasks, completed: 4},
		&fakeActivityRepo{recent: activities},
	)

	data, err := svc.Load(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(data.OwnedProjects) != 5 {
		t.Errorf("owned projects = %d, want 5 most recent", len(data.OwnedProjects))
	}
	if len(data.TeamProjects) != 3 {
		t.Errorf("team projects = %d, want 3", len(data.TeamProjects))
	}
	if len(data.Activities) != 10 {
		t.Errorf("activities = %d, want 10 newest", len(data.Activities))
	}
	if len(data.AssignedTasks) != 2 {
		t.Errorf("assigned tasks = %d, want 2", len(data.AssignedTasks))
	}

	want := DashboardStats{
		TotalProjects:   8, // 5 owned + 3 team
		ActiveTasks:     2,
		CompletedTasks:  4,
		TeamMemberships: 3,
	}
	if data.Stats != want {
		t.Errorf("stats = %+v, want %+v", data.Stats, want)
	}
}

var _ repository.TaskRepository = (*fakeTaskRepo)(nil)
var _ repository.ActivityRepository = (*fakeActivityRepo)(nil)
