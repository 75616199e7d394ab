package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"idorlab/internal/auth"
	apperrors "idorlab/internal/errors"
	"idorlab/internal/repository"
)

const bcryptCost = 10

// ErrInvalidCredentials is returned for an unknown username and for a wrong
// password alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is an established login.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication and session resolution.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*Session, error)
	CurrentIdentity(ctx context.Context, token string) (*auth.Identity, error)
	End(ctx context.Context, sessionID string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStoreInterface
	ttl        time.Duration
	logger     *zap.Logger
	dummyHash  []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStoreInterface, ttl time.Duration, logger *zap.Logger) AuthService {
	// Compared against when the username is unknown so both failure paths
	// cost one bcrypt verification.
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	return &authService{
		users:      users,
		jwtService: jwtService,
		sessions:   sessions,
		ttl:        ttl,
		logger:     logger,
		dummyHash:  dummy,
	}
}

// HashPassword returns the bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Authenticate verifies credentials and opens a session.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.logger.Info("login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.StoreSession(ctx, sessionID, user.ID, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	token, expiresAt, err := s.jwtService.IssueSessionToken(user.ID, sessionID, s.ttl)
	if err != nil {
		_ = s.sessions.DeleteSession(ctx, sessionID)
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("login succeeded", zap.Uint("user_id", user.ID), zap.String("role", user.Role.String()))
	return &Session{
		ID:        sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// CurrentIdentity resolves the caller behind a session token. Any invalid,
// expired, revoked or orphaned session yields ErrNotAuthenticated.
func (s *authService) CurrentIdentity(ctx context.Context, token string) (*auth.Identity, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	userID, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if userID != claims.UserID {
		return nil, apperrors.ErrNotAuthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return auth.NewIdentity(user, claims.ID), nil
}

// End invalidates a session.
func (s *authService) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
