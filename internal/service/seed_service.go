package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"idorlab/internal/model"
	"idorlab/internal/repository"
)

// SeedService creates the initial users, projects and notes.
type SeedService interface {
	// SeedIfEmpty seeds only when no user exists yet and reports whether it did.
	SeedIfEmpty(ctx context.Context) (bool, error)
	Seed(ctx context.Context) error
}

type seedService struct {
	tx       repository.Transactor
	password string
	logger   *zap.Logger
}

// NewSeedService creates a seed service. Both seeded users share password.
func NewSeedService(tx repository.Transactor, password string, logger *zap.Logger) SeedService {
	return &seedService{tx: tx, password: password, logger: logger}
}

// SeedIfEmpty checks for users and seeds in the same transaction, so a failed
// seed leaves the store empty and the next call tries again.
func (s *seedService) SeedIfEmpty(ctx context.Context) (bool, error) {
	hash, err := HashPassword(s.password)
	if err != nil {
		return false, err
	}

	seeded := false
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		count, err := repos.Users.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			return nil
		}
		if err := s.seed(ctx, repos, hash); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

// Seed writes the seed records in one transaction.
func (s *seedService) Seed(ctx context.Context) error {
	hash, err := HashPassword(s.password)
	if err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return s.seed(ctx, repos, hash)
	})
}

func (s *seedService) seed(ctx context.Context, repos repository.Repositories, hash string) error {
	admin := &model.User{ID: 1, Username: "admin", PasswordHash: hash, Role: model.RoleAdmin}
	attacker := &model.User{ID: 2, Username: "attacker", PasswordHash: hash, Role: model.RoleUser}
	for _, user := range []*model.User{admin, attacker} {
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", user.Username, err)
		}
	}

	adminProject := &model.Project{
		Name:        "Admin's Secret Project",
		Description: "This is a project only the admin should be able to edit.",
		ImageURL:    "https://placehold.co/600x400/3498db/ffffff?text=Admin's+Project",
		UserID:      admin.ID,
	}
	if err := repos.Projects.Create(ctx, adminProject); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	if err := repos.Notes.Create(ctx, &model.Note{Content: "This is a secret note for the admin.", UserID: admin.ID}); err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	attackerProject := &model.Project{
		Name:        "Attacker's Plan",
		Description: "A project belonging to the attacker.",
		UserID:      attacker.ID,
	}
	if err := repos.Projects.Create(ctx, attackerProject); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	if err := repos.Notes.Create(ctx, &model.Note{Content: "A note for the attacker.", UserID: attacker.ID}); err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("database seeded",
		zap.Uint("admin_id", admin.ID),
		zap.Uint("user_id", attacker.ID),
	)
	return nil
}
