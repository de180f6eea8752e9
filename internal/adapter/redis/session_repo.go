// Package redis implements session storage on Redis so several instances can
// share logins.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"petcare/internal/domain"
)

const (
	sessionKeyPrefix     = "petcare:session:"
	userSessionKeyPrefix = "petcare:user_sessions:"
)

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Connect parses url, pings the server and returns a client.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// SessionRepo stores sessions as JSON values that expire with the session.
// A per-user set of tokens supports logging a user out everywhere.
type SessionRepo struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionRepo creates a session repository on client. The client
// lifecycle is managed by the caller.
func NewSessionRepo(client *redis.Client) *SessionRepo {
	return &SessionRepo{client: client, now: time.Now}
}

func sessionKey(token string) string { return sessionKeyPrefix + token }

func userKey(userID int64) string { return userSessionKeyPrefix + strconv.FormatInt(userID, 10) }

// Create stores s until its expiry.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(s.Token), payload, ttl)
	pipe.SAdd(ctx, userKey(s.UserID), s.Token)
	// Sessions share one TTL, so the newest one outlives the rest.
	pipe.Expire(ctx, userKey(s.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	s, err := r.GetByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, userKey(s.UserID), token)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteForUser deletes every session of userID.
func (r *SessionRepo) DeleteForUser(ctx context.Context, userID int64) error {
	tokens, err := r.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(t))
	}
	keys = append(keys, userKey(userID))
	return r.client.Del(ctx, keys...).Err()
}

// DeleteExpired is a no-op: Redis expires session keys on its own.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
