package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/pitchdrop/auth-core/internal/repository"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

// SessionStore issues and checks opaque bearer tokens. Validity is
// never cached; every check re-reads storage so a revocation takes
// effect immediately.
type SessionStore struct {
	sessions repository.SessionRepository
	ttl      time.Duration
}

func NewSessionStore(sessions repository.SessionRepository, ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: sessions, ttl: ttl}
}

// GenerateToken returns 256 bits of randomness in the unpadded URL-safe
// base64 alphabet.
func GenerateToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Create mints a session for the user and returns it with the owner's
// profile loaded.
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	created, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load created session: %w", err)
	}
	return scrub(created), nil
}

// scrub strips the one profile field that must never leave this core.
func scrub(session *domain.Session) *domain.Session {
	session.User.PasswordHash = nil
	return session
}

// Validate resolves a bearer token. Unknown tokens yield (nil, nil).
// An expired session is deleted on the spot before (nil, nil) is
// returned, so this read can write; two concurrent validations of the
// same expired session are harmless, deleting a row that is already
// gone counts as success.
func (s *SessionStore) Validate(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("validate session: %w", err)
	}

	if session.Expired(time.Now()) {
		if _, err := s.sessions.DeleteByToken(ctx, token); err != nil {
			return nil, fmt.Errorf("reap expired session: %w", err)
		}
		return nil, nil
	}
	return scrub(session), nil
}

// Invalidate deletes the session and reports whether one existed.
// Safe to call with unknown tokens.
func (s *SessionStore) Invalidate(ctx context.Context, token string) (bool, error) {
	deleted, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("invalidate session: %w", err)
	}
	return deleted > 0, nil
}

// InvalidateAllForUser is the "log out everywhere" hook.
func (s *SessionStore) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.sessions.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("invalidate sessions for user: %w", err)
	}
	return count, nil
}

// SweepExpired bulk-deletes every expired session, whether or not it
// was ever validated. Housekeeping only; not meant for the request
// path.
func (s *SessionStore) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("sweep expired sessions: %w", err)
	}
	return count, nil
}
