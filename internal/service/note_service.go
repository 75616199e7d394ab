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

// NoteService reads and edits notes on behalf of a caller.
type NoteService interface {
	Get(ctx context.Context, caller auth.Identity, id uint) (*model.Note, error)
	Update(ctx context.Context, caller auth.Identity, id uint, content string) (*model.Note, error)
}

type noteService struct {
	repo   repository.NoteRepository
	logger *zap.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository, logger *zap.Logger) NoteService {
	return &noteService{repo: repo, logger: logger}
}

func (s *noteService) Get(ctx context.Context, caller auth.Identity, id uint) (*model.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	if note == nil {
		return nil, apperrors.ErrNotFound
	}
	if err := authorizeOwner(s.logger, caller, "note", note.ID, note.OwnerID()); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, caller auth.Identity, id uint, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content", "is required")
	}

	var updated *model.Note
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
		note, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("find note %d: %w", id, err)
		}
		if note == nil {
			return apperrors.ErrNotFound
		}
		if err := authorizeOwner(s.logger, caller, "note", note.ID, note.OwnerID()); err != nil {
			return err
		}

		note.Content = content
		if err := repo.Update(ctx, note); err != nil {
			return fmt.Errorf("update note %d: %w", id, err)
		}
		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated", zap.Uint("note_id", id), zap.Uint("caller_id", caller.UserID))
	return updated, nil
}
