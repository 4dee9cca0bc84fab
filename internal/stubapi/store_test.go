package stubapi

import (
	"context"
	"testing"
	"time"

	"corp-onboarding/internal/common/config"
	"corp-onboarding/internal/common/database"
	apperrors "corp-onboarding/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func storedProfile(id string) StoredProfile {
	return StoredProfile{
		ID:                id,
		CreatedAt:         time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ProfileFormValues: validProfile(),
	}
}

func TestProfileStores(t *testing.T) {
	stores := map[string]func(t *testing.T) ProfileStore{
		"memory": func(t *testing.T) ProfileStore { return NewMemoryStore() },
		"redis": func(t *testing.T) ProfileStore {
			s, _ := newRedisStore(t, 0)
			return s
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			missing, err := store.Get(ctx, "nope")
			require.NoError(t, err)
			assert.Nil(t, missing)

			require.NoError(t, store.Save(ctx, storedProfile("a")))
			require.NoError(t, store.Save(ctx, storedProfile("b")))

			got, err := store.Get(ctx, "a")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, storedProfile("a"), *got)

			n, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedProfile("a")))
	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	mr.Close()

	err := store.Save(context.Background(), storedProfile("a"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStoreFailed, apperrors.CodeOf(err))
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("memory", nil, 0)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewStore("redis", nil, 0)
	assert.Error(t, err)

	_, err = NewStore("postgres", nil, 0)
	assert.Error(t, err)
}
