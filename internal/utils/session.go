package utils

import (
	"context" // Context for Redis operations
	"fmt"     // Error wrapping
	"time"    // Session lifetime

	"car_rental/internal/domain" // Identity and error sentinels

	"github.com/google/uuid"       // Session identifiers
	"github.com/redis/go-redis/v9" // Redis client
)

const sessionPrefix = "session:" // Redis key prefix for sessions

// Session is a live login, stored in Redis under its id
type Session struct {
	ID              string    `json:"id"` // Random session id, also the token jti
	domain.Identity           // Who is logged in
	CreatedAt       time.Time `json:"createdAt"` // Login time
}

// SessionStore keeps sessions in Redis with a fixed lifetime
type SessionStore struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Session lifetime
}

// NewSessionStore builds a session store
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// TTL is the lifetime given to new sessions
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create opens a session for user; the role comes from the identity record
func (s *SessionStore) Create(ctx context.Context, user domain.User) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Identity:  domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role},
		CreatedAt: time.Now().UTC(),
	}
	if err := SetCache(ctx, s.rdb, sessionPrefix+sess.ID, sess, s.ttl); err != nil {
		return Session{}, fmt.Errorf("store session: %w: %w", domain.ErrStorage, err)
	}
	return sess, nil
}

// Get loads a live session; a missing or expired one is ErrUnauthorized
func (s *SessionStore) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	found, err := GetCache(ctx, s.rdb, sessionPrefix+id, &sess)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w: %w", domain.ErrStorage, err)
	}
	if !found {
		return Session{}, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	return sess, nil
}

// Delete ends a session
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := DeleteCache(ctx, s.rdb, sessionPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// RevokeStaleAdmins deletes admin sessions that belong to any email other than
// adminEmail, so a rotated ADMIN_EMAIL takes effect without waiting for expiry.
func (s *SessionStore) RevokeStaleAdmins(ctx context.Context, adminEmail string) (int, error) {
	revoked := 0
	iter := s.rdb.Scan(ctx, 0, sessionPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		var sess Session
		found, err := GetCache(ctx, s.rdb, iter.Val(), &sess)
		if err != nil {
			return revoked, fmt.Errorf("load session: %w: %w", domain.ErrStorage, err)
		}
		if !found || sess.Role != domain.RoleAdmin || domain.RoleFor(sess.Email, adminEmail) == domain.RoleAdmin {
			continue
		}
		if err := DeleteCache(ctx, s.rdb, iter.Val()); err != nil {
			return revoked, fmt.Errorf("delete session: %w: %w", domain.ErrStorage, err)
		}
		revoked++
	}
	if err := iter.Err(); err != nil {
		return revoked, fmt.Errorf("scan sessions: %w: %w", domain.ErrStorage, err)
	}
	return revoked, nil
}
