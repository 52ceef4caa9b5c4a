package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownStore grants a key at most once per window.
type CooldownStore interface {
	// Acquire returns true if the key was free and is now held for ttl.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type MemoryCooldownStore struct {
	now func() time.Time

	mu      sync.Mutex
	expires map[string]time.Time
}

func NewMemoryCooldownStore(now func() time.Time) *MemoryCooldownStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryCooldownStore{now: now, expires: make(map[string]time.Time)}
}

func (s *MemoryCooldownStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if until, ok := s.expires[key]; ok && now.Before(until) {
		return false, nil
	}
	s.expires[key] = now.Add(ttl)
	return true, nil
}

// RedisCooldownStore keeps cooldowns in Redis so they hold across instances.
type RedisCooldownStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisCooldownStore(client redis.UniversalClient, prefix string) *RedisCooldownStore {
	return &RedisCooldownStore{client: client, prefix: prefix}
}

func (s *RedisCooldownStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}
