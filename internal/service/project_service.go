package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"idorlab/internal/auth"
	apperrors "idorlab/internal/errors"
	"idorlab/internal/model"
	"idorlab/internal/repository"
)

// ProjectInput carries the editable project fields.
type ProjectInput struct {
	Name        string
	Description string
	ImageURL    string
}

// ProjectService reads and edits projects on behalf of a caller.
type ProjectService interface {
	Get(ctx context.Context, caller auth.Identity, id uint) (*model.Project, error)
	Update(ctx context.Context, caller auth.Identity, id uint, in ProjectInput) (*model.Project, error)
}

type projectService struct {
	repo   repository.ProjectRepository
	logger *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// Get returns the project if the caller may see it.
func (s *projectService) Get(ctx context.Context, caller auth.Identity, id uint) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project %d: %w", id, err)
	}
	if project == nil {
		return nil, apperrors.ErrNotFound
	}
	if err := authorizeOwner(s.logger, caller, "project", project.ID, project.OwnerID()); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies in to the project. Ownership is checked again on the locked
// row so the decision and the write see the same record.
func (s *projectService) Update(ctx context.Context, caller auth.Identity, id uint, in ProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}

	var updated *model.Project
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProjectRepository) error {
		project, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("find project %d: %w", id, err)
		}
		if project == nil {
			return apperrors.ErrNotFound
		}
		if err := authorizeOwner(s.logger, caller, "project", project.ID, project.OwnerID()); err != nil {
			return err
		}

		project.Name = in.Name
		project.Description = in.Description
		project.ImageURL = in.ImageURL
		if err := repo.Update(ctx, project); err != nil {
			return fmt.Errorf("update project %d: %w", id, err)
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated", zap.Uint("project_id", id), zap.Uint("caller_id", caller.UserID))
	return updated, nil
}
