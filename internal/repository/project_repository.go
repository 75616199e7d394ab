package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"idorlab/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	// WithTransaction runs fn against a repository bound to a single transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &project, nil
}

// FindByIDForUpdate finds a project by ID with a row-level lock.
func (r *projectRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&project, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &project, nil
}

// ListByOwner lists the projects owned by ownerID.
func (r *projectRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// List lists every project.
func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update writes the editable columns. user_id is never written.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Model(project).
		Select("name", "description", "image_url", "updated_at").
		Updates(project).Error
}

// WithTransaction executes a function within a database transaction.
func (r *projectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProjectRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &projectRepository{db: tx})
	})
}
