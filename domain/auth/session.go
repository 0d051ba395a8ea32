package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coinpass/be-content-platform/utils"
)

const (
	sessionKeyPrefix = "admin:session:"
	csrfKeyPrefix    = "admin:csrf:"
	tokenTTL         = 30 * time.Minute
	tokenBytes       = 32
)

// SessionStore keeps the secondary session token and the CSRF token per
// admin in Redis. The primary JWT is the source of truth for identity; the
// secondary token is a lightweight cross-check that a logout elsewhere
// invalidates writes immediately, without waiting for JWT expiry.
//
// With a nil client (Redis not configured) every check passes: the
// deployment degrades to primary-session-only.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Start mints a fresh secondary session token and CSRF token for userID.
func (s *SessionStore) Start(ctx context.Context, userID int64) (sessionToken, csrfToken string, err error) {
	sessionToken, err = utils.SecureToken(tokenBytes)
	if err != nil {
		return "", "", err
	}
	csrfToken, err = utils.SecureToken(tokenBytes)
	if err != nil {
		return "", "", err
	}

	if s.rdb == nil {
		return sessionToken, csrfToken, nil
	}

	if err := s.rdb.Set(ctx, sessionKey(userID), sessionToken, tokenTTL).Err(); err != nil {
		return "", "", err
	}
	if err := s.rdb.Set(ctx, csrfKey(userID), csrfToken, tokenTTL).Err(); err != nil {
		return "", "", err
	}
	return sessionToken, csrfToken, nil
}

// ValidateSession checks the presented secondary token against the stored
// one in constant time.
func (s *SessionStore) ValidateSession(ctx context.Context, userID int64, token string) bool {
	if s.rdb == nil {
		return true
	}
	stored, err := s.rdb.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		return false
	}
	return utils.ConstantTimeEquals(token, stored)
}

// Resync reissues both secondary tokens. Called when the primary session
// is valid but the secondary has drifted (expired key, cleared store) so a
// healthy admin session is not kicked out needlessly.
func (s *SessionStore) Resync(ctx context.Context, userID int64) (sessionToken, csrfToken string, err error) {
	sessionToken, err = utils.SecureToken(tokenBytes)
	if err != nil {
		return "", "", err
	}
	csrfToken, err = utils.SecureToken(tokenBytes)
	if err != nil {
		return "", "", err
	}
	if s.rdb == nil {
		return sessionToken, csrfToken, nil
	}
	if err := s.rdb.Set(ctx, sessionKey(userID), sessionToken, tokenTTL).Err(); err != nil {
		return "", "", err
	}
	if err := s.rdb.Set(ctx, csrfKey(userID), csrfToken, tokenTTL).Err(); err != nil {
		return "", "", err
	}
	return sessionToken, csrfToken, nil
}

// ValidateCSRF checks the presented CSRF token in constant time.
func (s *SessionStore) ValidateCSRF(ctx context.Context, userID int64, token string) bool {
	if s.rdb == nil {
		return true
	}
	if token == "" {
		return false
	}
	stored, err := s.rdb.Get(ctx, csrfKey(userID)).Result()
	if err != nil {
		return false
	}
	return utils.ConstantTimeEquals(token, stored)
}

// Clear drops both tokens for userID.
func (s *SessionStore) Clear(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, sessionKey(userID), csrfKey(userID))
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

func csrfKey(userID int64) string {
	return fmt.Sprintf("%s%d", csrfKeyPrefix, userID)
}
