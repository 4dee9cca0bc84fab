// Package stubapi is a development stand-in for the onboarding backend: a corporation
// registry and a profile store behind the two endpoints the client calls.
package stubapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"corp-onboarding/internal/common/database"
	apperrors "corp-onboarding/internal/common/errors"
	"corp-onboarding/internal/models"
)

// StoredProfile is an accepted profile.
type StoredProfile struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	models.ProfileFormValues
}

// ProfileStore keeps accepted profiles.
type ProfileStore interface {
	Save(ctx context.Context, profile StoredProfile) error
	Get(ctx context.Context, id string) (*StoredProfile, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore keeps profiles for the life of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]StoredProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: map[string]StoredProfile{}}
}

func (s *MemoryStore) Save(_ context.Context, profile StoredProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*StoredProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles), nil
}

const (
	profileKeyPrefix = "onboarding:profile:"
	profileIndexKey  = "onboarding:profiles"
)

// RedisStore keeps profiles as JSON documents with an id index set.
type RedisStore struct {
	client *database.RedisClient
	ttl    time.Duration
}

// NewRedisStore stores profiles through client. A zero ttl keeps them forever.
func NewRedisStore(client *database.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, profile StoredProfile) error {
	if err := s.client.SetJSON(ctx, profileKeyPrefix+profile.ID, profile, s.ttl, profileIndexKey, profile.ID); err != nil {
		return apperrors.NewStoreFailedError("save", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*StoredProfile, error) {
	var profile StoredProfile
	found, err := s.client.GetJSON(ctx, profileKeyPrefix+id, &profile)
	if err != nil {
		return nil, apperrors.NewStoreFailedError("get", err)
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// Count reports indexed ids; with a ttl set, expired profiles stay counted.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.SetSize(ctx, profileIndexKey)
	if err != nil {
		return 0, apperrors.NewStoreFailedError("count", err)
	}
	return int(n), nil
}

// NewStore picks the store named by kind.
func NewStore(kind string, redisClient *database.RedisClient, ttl time.Duration) (ProfileStore, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis store requires a redis client")
		}
		return NewRedisStore(redisClient, ttl), nil
	default:
		return nil, fmt.Errorf("unknown profile store %q", kind)
	}
}
