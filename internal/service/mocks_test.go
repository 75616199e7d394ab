package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"idorlab/internal/model"
	"idorlab/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// WithTransaction runs fn against the mock itself.
func (m *MockProjectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ProjectRepository) error) error {
	return fn(ctx, m)
}

// MockNoteRepository is a mock implementation of NoteRepository.
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uint) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) List(ctx context.Context) ([]model.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.NoteRepository) error) error {
	return fn(ctx, m)
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) StoreSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, userID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (uint, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockTransactor runs fn directly against the given mock repositories and
// records what fn returned.
type MockTransactor struct {
	Repos   repository.Repositories
	results []error
}

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	err := fn(ctx, m.Repos)
	m.results = append(m.results, err)
	return err
}
