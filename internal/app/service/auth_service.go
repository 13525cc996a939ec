package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shazminnasir67/tech-flow/internal/common"
	"github.com/shazminnasir67/tech-flow/internal/common/security"
	"github.com/shazminnasir67/tech-flow/internal/domain/model"
	"github.com/shazminnasir67/tech-flow/internal/domain/repository"
)

type AuthService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	db           *sql.DB // For transactions
}

func NewAuthService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, db *sql.DB) *AuthService {
	return &AuthService{userRepo: userRepo, activityRepo: activityRepo, db: db}
}

// Register validates the input, creates the user row and its registration
// activity in one transaction, and returns either the new user or the full
// list of validation violations. A non-nil error means a storage fault, not a
// rejected submission.
func (s *AuthService) Register(ctx context.Context, in RegistrationInput) (*model.User, []string, error) {
	violations := ValidateRegistration(in)

	// Friendly pre-checks so uniqueness failures aggregate with the field
	// violations. The unique constraints remain the authority (see below).
	if taken, err := s.userRepo.UsernameExists(ctx, in.Username); err != nil {
		return nil, nil, err
	} else if taken {
		violations = append(violations, MsgUsernameTaken)
	}
	if taken, err := s.userRepo.EmailExists(ctx, in.Email); err != nil {
		return nil, nil, err
	} else if taken {
		violations = append(violations, MsgEmailTaken)
	}
	if len(violations) > 0 {
		return nil, violations, nil
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := strings.TrimSpace(in.FullName)
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     fullName,
		AvatarURL:    avatarURL(fullName),
		Role:         model.RoleDeveloper,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		// A concurrent registration can slip past the pre-checks; the
		// constraint violation is translated back into the same response.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, []string{MsgUsernameTaken}, nil
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, []string{MsgEmailTaken}, nil
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	activity := &model.UserActivity{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ActivityType: model.ActivityRegistration,
		Description:  "User registered successfully",
	}
	if err := s.activityRepo.Append(ctx, tx, activity); err != nil {
		return nil, nil, fmt.Errorf("failed to record registration activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return user, nil, nil
}

// Login verifies credentials. Unknown username and wrong password produce the
// identical generic violation so usernames cannot be enumerated. On success
// the login timestamps and the login activity are written in one transaction.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, []string, error) {
	if violations := ValidateLogin(username, password); len(violations) > 0 {
		return nil, violations, nil
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, []string{MsgInvalidCredential}, nil
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.PasswordHash) {
		return nil, []string{MsgInvalidCredential}, nil
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.UpdateLoginTimestamps(ctx, tx, user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to update login timestamps: %w", err)
	}

	activity := &model.UserActivity{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ActivityType: model.ActivityLogin,
		Description:  "User logged in successfully",
	}
	if err := s.activityRepo.Append(ctx, tx, activity); err != nil {
		return nil, nil, fmt.Errorf("failed to record login activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.LastLogin = &now
	user.LastActive = &now
	return user, nil, nil
}

// RecordLogout appends the logout activity. It runs before the session is
// destroyed so the audit record always lands first.
func (s *AuthService) RecordLogout(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	activity := &model.UserActivity{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActivityType: model.ActivityLogout,
		Description:  "User logged out",
	}
	if err := s.activityRepo.Append(ctx, tx, activity); err != nil {
		return fmt.Errorf("failed to record logout activity: %w", err)
	}
	return tx.Commit()
}

// FindUser resolves a user by id, for session middleware and profile views.
func (s *AuthService) FindUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func avatarURL(fullName string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(fullName) + "&background=6366f1&color=fff"
}
