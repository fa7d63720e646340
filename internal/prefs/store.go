// Package prefs persists small per-client preferences such as the admin
// mode flag and the profile settings.  Values are opaque strings keyed by
// client id and preference key.
package prefs

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store loads and saves preference values.
type Store interface {
	// Load returns the value and whether it was present.
	Load(ctx context.Context, clientID, key string) (string, bool, error)
	Save(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID, key string) error
}

// New returns a Redis backed store, or an in-process one when rdb is nil.
func New(rdb *redis.Client) Store {
	if rdb == nil {
		return NewMemoryStore()
	}
	return NewRedisStore(rdb)
}

// RedisStore keeps values at prefs:{client}:{key} with no expiry.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func redisKey(clientID, key string) string { return "prefs:" + clientID + ":" + key }

func (s *RedisStore) Load(ctx context.Context, clientID, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, redisKey(clientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Save(ctx context.Context, clientID, key, value string) error {
	return s.rdb.Set(ctx, redisKey(clientID, key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, clientID, key string) error {
	return s.rdb.Del(ctx, redisKey(clientID, key)).Err()
}

// MemoryStore is a mutex guarded map.  Values do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{data: make(map[string]string)} }

func (s *MemoryStore) Load(_ context.Context, clientID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[redisKey(clientID, key)]
	return v, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[redisKey(clientID, key)] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, redisKey(clientID, key))
	return nil
}
