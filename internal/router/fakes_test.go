package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"idorlab/internal/auth"
	"idorlab/internal/model"
	"idorlab/internal/repository"
)

// memoryStore is an in-memory stand-in for MySQL shared by the fake
// repositories. Records are stored by value so callers never alias them.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uint]model.User
	projects map[uint]model.Project
	notes    map[uint]model.Note
	nextID   map[string]uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[uint]model.User{},
		projects: map[uint]model.Project{},
		notes:    map[uint]model.Note{},
		nextID:   map[string]uint{},
	}
}

func (s *memoryStore) assignID(table string, id uint) uint {
	if id == 0 {
		s.nextID[table]++
		return s.nextID[table]
	}
	if id > s.nextID[table] {
		s.nextID[table] = id
	}
	return id
}

func (s *memoryStore) project(id uint) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects[id]
}

func (s *memoryStore) note(id uint) model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes[id]
}

type memoryUsers struct{ s *memoryStore }

func (r memoryUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.assignID("users", user.ID)
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r memoryUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r memoryUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (r memoryUsers) List(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := make([]model.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r memoryUsers) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

type memoryProjects struct{ s *memoryStore }

func (r memoryProjects) Create(_ context.Context, project *model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	project.ID = r.s.assignID("projects", project.ID)
	r.s.projects[project.ID] = *project
	return nil
}

func (r memoryProjects) FindByID(_ context.Context, id uint) (*model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	project, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (r memoryProjects) FindByIDForUpdate(ctx context.Context, id uint) (*model.Project, error) {
	return r.FindByID(ctx, id)
}

func (r memoryProjects) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	all, _ := r.List(ctx)
	owned := make([]model.Project, 0, len(all))
	for _, project := range all {
		if project.UserID == ownerID {
			owned = append(owned, project)
		}
	}
	return owned, nil
}

func (r memoryProjects) List(_ context.Context) ([]model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	projects := make([]model.Project, 0, len(r.s.projects))
	for _, project := range r.s.projects {
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (r memoryProjects) Update(_ context.Context, project *model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.projects[project.ID]
	stored.Name = project.Name
	stored.Description = project.Description
	stored.ImageURL = project.ImageURL
	r.s.projects[project.ID] = stored
	return nil
}

func (r memoryProjects) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ProjectRepository) error) error {
	return fn(ctx, r)
}

type memoryNotes struct{ s *memoryStore }

func (r memoryNotes) Create(_ context.Context, note *model.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	note.ID = r.s.assignID("notes", note.ID)
	r.s.notes[note.ID] = *note
	return nil
}

func (r memoryNotes) FindByID(_ context.Context, id uint) (*model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	note, ok := r.s.notes[id]
	if !ok {
		return nil, nil
	}
	return &note, nil
}

func (r memoryNotes) FindByIDForUpdate(ctx context.Context, id uint) (*model.Note, error) {
	return r.FindByID(ctx, id)
}

func (r memoryNotes) ListByOwner(ctx context.Context, ownerID uint) ([]model.Note, error) {
	all, _ := r.List(ctx)
	owned := make([]model.Note, 0, len(all))
	for _, note := range all {
		if note.UserID == ownerID {
			owned = append(owned, note)
		}
	}
	return owned, nil
}

func (r memoryNotes) List(_ context.Context) ([]model.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	notes := make([]model.Note, 0, len(r.s.notes))
	for _, note := range r.s.notes {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (r memoryNotes) Update(_ context.Context, note *model.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.notes[note.ID]
	stored.Content = note.Content
	r.s.notes[note.ID] = stored
	return nil
}

func (r memoryNotes) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.NoteRepository) error) error {
	return fn(ctx, r)
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]uint
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]uint{}}
}

func (s *memorySessions) StoreSession(_ context.Context, sessionID string, userID uint, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memorySessions) GetSession(_ context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return 0, auth.ErrSessionNotFound
	}
	return userID, nil
}

func (s *memorySessions) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type memoryTransactor struct {
	users    memoryUsers
	projects memoryProjects
	notes    memoryNotes
}

func (t memoryTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return fn(ctx, repository.Repositories{Users: t.users, Projects: t.projects, Notes: t.notes})
}
