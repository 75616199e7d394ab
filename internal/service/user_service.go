package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"idorlab/internal/auth"
	apperrors "idorlab/internal/errors"
	"idorlab/internal/model"
	"idorlab/internal/repository"
)

// Dashboard is the role-scoped listing shown after login.
type Dashboard struct {
	Projects []model.Project
	Notes    []model.Note
	Users    []model.User
}

// UserService exposes profile, dashboard and admin listings.
type UserService interface {
	Profile(ctx context.Context, caller auth.Identity, id uint) (*model.User, error)
	Dashboard(ctx context.Context, caller auth.Identity) (*Dashboard, error)
	ListUsers(ctx context.Context, caller auth.Identity) ([]model.User, error)
}

type userService struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	notes    repository.NoteRepository
	logger   *zap.Logger
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, projects repository.ProjectRepository, notes repository.NoteRepository, logger *zap.Logger) UserService {
	return &userService{users: users, projects: projects, notes: notes, logger: logger}
}

// Profile returns the user with id. A user record is owned by itself.
func (s *userService) Profile(ctx context.Context, caller auth.Identity, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	if err := authorizeOwner(s.logger, caller, "profile", user.ID, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Dashboard lists everything for admins and only the caller's own records otherwise.
func (s *userService) Dashboard(ctx context.Context, caller auth.Identity) (*Dashboard, error) {
	if caller.IsAdmin() {
		projects, err := s.projects.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		notes, err := s.notes.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return &Dashboard{Projects: projects, Notes: notes, Users: users}, nil
	}

	projects, err := s.projects.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	notes, err := s.notes.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	self, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", caller.UserID, err)
	}
	if self == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return &Dashboard{Projects: projects, Notes: notes, Users: []model.User{*self}}, nil
}

// ListUsers is restricted to admins.
func (s *userService) ListUsers(ctx context.Context, caller auth.Identity) ([]model.User, error) {
	if auth.AuthorizeRole(caller.Role, model.RoleAdmin) != auth.Allow {
		return nil, apperrors.ErrForbidden
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
