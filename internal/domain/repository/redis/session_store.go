package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	"github.com/subhaneetshrestha/lereddit/internal/domain/repository"
)

// SessionStoreRedis keeps sessions in Redis as JSON under session:<id>.
// Entries carry the configured TTL; there is no cross-session state.
type SessionStoreRedis struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSessionStoreRedis creates a new SessionStoreRedis.
func NewSessionStoreRedis(client *redis.Client, logger *zap.Logger, ttl time.Duration) *SessionStoreRedis {
	return &SessionStoreRedis{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create stores the session under its id with the store TTL.
func (s *SessionStoreRedis) Create(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to store session",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get loads a session by id. Unknown and expired ids both report
// ErrSessionNotFound.
func (s *SessionStoreRedis) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrSessionNotFound
		}
		s.logger.Error("Failed to load session", zap.Error(err), zap.String("session_id", id))
		return nil, fmt.Errorf("load session: %w", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		s.logger.Error("Failed to unmarshal session", zap.Error(err), zap.String("session_id", id))
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

// Destroy removes a session. Destroying an id that is already gone succeeds.
func (s *SessionStoreRedis) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		s.logger.Error("Failed to destroy session", zap.Error(err), zap.String("session_id", id))
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

var _ repository.SessionStore = (*SessionStoreRedis)(nil)
