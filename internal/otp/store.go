// Package otp stores short-lived password-reset codes keyed by phone number.
package otp

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store keeps one active code per phone. Verify burns the code on a match so
// a code can be used at most once.
type Store interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// RedisStore is the production store; TTL handling is Redis' own.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func key(phone string) string {
	return "otp:" + phone
}

func (s *RedisStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.Client.Set(ctx, key(phone), code, ttl).Err()
}

func (s *RedisStore) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.Client.Get(ctx, key(phone)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.Client.Del(ctx, key(phone)).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// MemoryStore is the fallback when no Redis is configured. Codes do not
// survive a restart, which is acceptable for a 5-minute reset window.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]memoryEntry
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = memoryEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Verify(_ context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[phone]
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, phone)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}
	delete(s.codes, phone)
	return true, nil
}
