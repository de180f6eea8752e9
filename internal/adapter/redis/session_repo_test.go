package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/domain"
)

func newTestRepo(t *testing.T) (*SessionRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionRepo(client), mr
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	s := &domain.Session{
		Token:     "tok",
		UserID:    7,
		UserAgent: "ua",
		IP:        "10.0.0.1",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, s.UserAgent, got.UserAgent)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, repo.Delete(ctx, "tok"))
	_, err = repo.GetByToken(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "tok"), "deleting a missing session is not an error")
}

func TestSessionRepo_Expires(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := repo.GetByToken(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepo_DeleteForUser(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, repo.Create(ctx, &domain.Session{Token: "a", UserID: 1, ExpiresAt: exp}))
	require.NoError(t, repo.Create(ctx, &domain.Session{Token: "b", UserID: 1, ExpiresAt: exp}))
	require.NoError(t, repo.Create(ctx, &domain.Session{Token: "c", UserID: 2, ExpiresAt: exp}))

	require.NoError(t, repo.DeleteForUser(ctx, 1))

	for _, tok := range []string{"a", "b"} {
		_, err := repo.GetByToken(ctx, tok)
		assert.ErrorIs(t, err, domain.ErrNotFound, tok)
	}
	_, err := repo.GetByToken(ctx, "c")
	assert.NoError(t, err)
}

func TestSessionRepo_CreateExpiredIsNoop(t *testing.T) {
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.Create(context.Background(), &domain.Session{Token: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}))
	assert.False(t, mr.Exists(sessionKey("old")))
}
