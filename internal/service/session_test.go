package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

func restoreSession() {
	newSessionID = uuid.NewString
}

func sampleUser() model.User {
	return model.User{ID: 3, Phone: "9000000001", Name: "Alice", Role: model.RoleAdmin}
}

func TestAuthenticateUser(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	u := sampleUser()
	u.PasswordHash = hash

	got, err := AuthenticateUser(context.Background(), u, "pw")
	require.NoError(t, err)
	require.Equal(t, u.Phone, got.Phone)

	_, err = AuthenticateUser(context.Background(), u, "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueAndVerifySession(t *testing.T) {
	t.Cleanup(restoreSession)
	t.Setenv("SESSION_SECRET", "test-secret")
	newSessionID = func() string { return "jti-1" }

	stored := map[string]string{}
	rdb := &cache.FakeCache{
		SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			stored[key] = value.(string)
			require.Equal(t, SessionTTL, ttl)
			return redis.NewStatusResult("OK", nil)
		},
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			if v, ok := stored[key]; ok {
				return redis.NewStringResult(v, nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			for _, k := range keys {
				delete(stored, k)
			}
			return redis.NewIntResult(1, nil)
		},
	}

	token, err := IssueSession(context.Background(), rdb, sampleUser(), SessionTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Contains(t, stored, "session:jti-1")

	s, err := VerifySession(context.Background(), rdb, token)
	require.NoError(t, err)
	require.Equal(t, "9000000001", s.Phone)
	require.Equal(t, "Alice", s.Name)
	require.True(t, s.IsAdmin())
	require.Equal(t, "jti-1", s.JTI)

	// Logout kills the session even though the JWT is still unexpired.
	require.NoError(t, RevokeSession(context.Background(), rdb, s))
	_, err = VerifySession(context.Background(), rdb, token)
	require.Error(t, err)
}

func TestIssueSessionErrors(t *testing.T) {
	t.Cleanup(restoreSession)

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := IssueSession(context.Background(), &cache.FakeCache{}, sampleUser(), SessionTTL)
		require.Error(t, err)
	})

	t.Run("cache failure", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s")
		rdb := &cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("down"))
			},
		}
		_, err := IssueSession(context.Background(), rdb, sampleUser(), SessionTTL)
		require.Error(t, err)
	})
}

func TestVerifySessionErrors(t *testing.T) {
	t.Cleanup(restoreSession)

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := VerifySession(context.Background(), &cache.FakeCache{}, "tok")
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s")
		_, err := VerifySession(context.Background(), &cache.FakeCache{}, "not-a-jwt")
		require.Error(t, err)
	})

	t.Run("wrong signature", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "right")
		rdb := &cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("OK", nil)
			},
		}
		token, err := IssueSession(context.Background(), rdb, sampleUser(), SessionTTL)
		require.NoError(t, err)

		t.Setenv("SESSION_SECRET", "wrong")
		_, err = VerifySession(context.Background(), rdb, token)
		require.Error(t, err)
	})

	t.Run("revoked session", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s")
		rdb := &cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("OK", nil)
			},
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
		}
		token, err := IssueSession(context.Background(), rdb, sampleUser(), SessionTTL)
		require.NoError(t, err)
		_, err = VerifySession(context.Background(), rdb, token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s")
		rdb := &cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("OK", nil)
			},
		}
		token, err := IssueSession(context.Background(), rdb, sampleUser(), -time.Minute)
		require.NoError(t, err)
		_, err = VerifySession(context.Background(), rdb, token)
		require.Error(t, err)
	})
}

func TestRevokeSessionError(t *testing.T) {
	rdb := &cache.FakeCache{
		DelFn: func(context.Context, ...string) *redis.IntCmd {
			return redis.NewIntResult(0, errors.New("down"))
		},
	}
	require.Error(t, RevokeSession(context.Background(), rdb, &Session{JTI: "x"}))
}
