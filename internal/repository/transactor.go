package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the stores bound to one connection or transaction.
type Repositories struct {
	Users    UserRepository
	Projects ProjectRepository
	Notes    NoteRepository
}

// Transactor runs work that spans several stores atomically.
type Transactor interface {
	// WithTransaction runs fn against repositories bound to a single
	// transaction. The transaction is rolled back when fn returns an error.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a GORM-backed transactor.
func NewTransactor(db *gorm.DB) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repositories{
			Users:    &userRepository{db: tx},
			Projects: &projectRepository{db: tx},
			Notes:    &noteRepository{db: tx},
		})
	})
}
