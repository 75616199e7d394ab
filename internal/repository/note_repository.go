package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"idorlab/internal/model"
)

// NoteRepository defines note persistence operations.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id uint) (*model.Note, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Note, error)
	List(ctx context.Context) ([]model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo NoteRepository) error) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &note, nil
}

func (r *noteRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&note, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &note, nil
}

func (r *noteRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Order("id").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update writes the note content only; ownership is immutable.
func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Model(note).
		Select("content", "updated_at").
		Updates(note).Error
}

func (r *noteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo NoteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &noteRepository{db: tx})
	})
}
