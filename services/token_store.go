package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore remembers revoked session tokens until they would have expired.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type revokedToken struct {
	RevokedAt time.Time `json:"revokedAt"`
}

type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func revokedKey(jti string) string {
	return "session:revoked:" + jti
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetToRedis(ctx, s.rdb, revokedKey(jti), revokedToken{RevokedAt: time.Now().UTC()}, ttl)
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var entry revokedToken
	return GetFromRedis(ctx, s.rdb, revokedKey(jti), &entry)
}

// MemoryTokenStore is the TokenStore used without Redis.
type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: map[string]time.Time{}, now: time.Now}
}

func (s *MemoryTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = s.now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

// Prune forgets entries that expired before now and reports how many.
func (s *MemoryTokenStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for jti, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, jti)
			n++
		}
	}
	return n
}
