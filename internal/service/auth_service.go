package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/interfaces"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	"github.com/subhaneetshrestha/lereddit/internal/domain/repository"
	"github.com/subhaneetshrestha/lereddit/internal/utils/metrics"
)

// AuthService orchestrates registration, login, session identity and
// logout. User-facing failures come back as FieldError values inside an
// AuthResult; a returned error always means an infrastructure failure, so
// a result is never empty.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionStore
	hasher   interfaces.PasswordHasher
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionStore,
	hasher interfaces.PasswordHasher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register validates the input, hashes the password, persists the user and
// issues a session. The returned session id is empty when registration did
// not succeed.
func (s *AuthService) Register(ctx context.Context, input models.RegisterInput) (*models.AuthResult, string, error) {
	if fieldErrors := models.ValidateRegisterInput(input); fieldErrors != nil {
		metrics.RegistrationAttemptsTotal.WithLabelValues("invalid").Inc()
		return &models.AuthResult{Errors: fieldErrors}, "", nil
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		// Usernames are case-insensitive: lowercased here and on every lookup.
		Username: strings.ToLower(input.Username),
		IsActive: true,
		Password: hash,
		Phone:    input.Phone,
		Email:    input.Email,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if domainErrors.IsConflict(err) {
			// Conflicts on either unique column are reported under the
			// username field; see DESIGN.md.
			metrics.RegistrationAttemptsTotal.WithLabelValues("conflict").Inc()
			return &models.AuthResult{Errors: []models.FieldError{{
				Field:   "username",
				Message: "Username already exists",
			}}}, "", nil
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	sessionID, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.RegistrationAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return &models.AuthResult{User: user}, sessionID, nil
}

// Login verifies a credential (username or email, routed by the presence
// of '@') and a password, and issues a session on success.
func (s *AuthService) Login(ctx context.Context, uniqueCred, password string) (*models.AuthResult, string, error) {
	var user *models.User
	var err error
	if strings.Contains(uniqueCred, "@") {
		user, err = s.users.FindByEmail(ctx, uniqueCred)
	} else {
		user, err = s.users.FindByUsername(ctx, strings.ToLower(uniqueCred))
	}
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return &models.AuthResult{Errors: []models.FieldError{{
				Field:   "username",
				Message: "Username does not exist",
			}}}, "", nil
		}
		return nil, "", fmt.Errorf("look up user: %w", err)
	}

	valid, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_password").Inc()
		return &models.AuthResult{Errors: []models.FieldError{{
			Field:   "password",
			Message: "incorrect password",
		}}}, "", nil
	}

	sessionID, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return &models.AuthResult{User: user}, sessionID, nil
}

// CurrentUser resolves the session id from the cookie to a user. A missing
// or stale session is "not authenticated", reported as (nil, nil) rather
// than an error.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			// Stale session: the record behind it is gone.
			return nil, nil
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}

// Logout destroys the session. It reports false when the store fails and
// never returns an error; the caller clears the cookie either way.
func (s *AuthService) Logout(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return true
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.logger.Error("Failed to destroy session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return false
	}
	return true
}

func (s *AuthService) issueSession(ctx context.Context, userID int64) (string, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return session.ID, nil
}
