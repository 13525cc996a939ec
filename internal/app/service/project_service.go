package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
	memberRepo  repository.TeamMemberRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, memberRepo repository.TeamMemberRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, memberRepo: memberRepo}
}

type CreateProjectRequest struct {
	Name          string
	Description   string
	RepositoryURL string
	Visibility    string
}

// CreateProject persists a project owned by ownerID. Visibility defaults to
// private when unspecified or unrecognized.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, req CreateProjectRequest) (*model.Project, []string, error) {
	if req.Name == "" {
		return nil, []string{MsgProjectNameEmpty}, nil
	}

	visibility := model.VisibilityPrivate
	if model.ValidVisibility(req.Visibility) {
		visibility = model.ProjectVisibility(req.Visibility)
	}

	project := &model.Project{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Slug:          slug.Make(req.Name),
		Description:   req.Description,
		RepositoryURL: req.RepositoryURL,
		Status:        model.ProjectStatusActive,
		Visibility:    visibility,
		OwnerID:       ownerID,
	}

	err := s.projectRepo.Create(ctx, project)
	if errors.Is(err, repository.ErrDuplicateSlug) {
		// Same name as an existing project; disambiguate with an id prefix.
		project.Slug = project.Slug + "-" + project.ID[:8]
		err = s.projectRepo.Create(ctx, project)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil, nil
}

type ProjectListing struct {
	OwnProjects    []model.Project
	TeamProjects   []model.Project
	PublicProjects []model.Project
}

// ListProjects assembles the listing page data: everything the user owns,
// every project they joined, and up to 10 public projects.
func (s *ProjectService) ListProjects(ctx context.Context, userID string) (*ProjectListing, error) {
	own, err := s.projectRepo.ListByOwner(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	team, err := s.projectRepo.ListByMember(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	public, err := s.projectRepo.ListPublic(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &ProjectListing{OwnProjects: own, TeamProjects: team, PublicProjects: public}, nil
}

// AddMember joins a user to a project. Duplicate memberships are rejected by
// the (user, project) unique constraint.
func (s *ProjectService) AddMember(ctx context.Context, userID, projectID, role string) (*model.TeamMember, error) {
	member := &model.TeamMember{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
	}
	if member.Role == "" {
		member.Role = model.MemberRoleMember
	}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
