package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyRevokedToken = "lendora:revoked:%s"

// RedisRevocations implements Revocations with expiring redis keys
type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

// connects to redis and verifies the connection
func NewRedisRevocationsFromURL(ctx context.Context, redisURL string) (*RedisRevocations, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRevocations{client: client}, nil
}

func (s *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil // already expired, nothing to remember
	}

	if err := s.client.Set(ctx, fmt.Sprintf(keyRevokedToken, tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation in redis: %w", err)
	}

	return nil
}

func (s *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, fmt.Sprintf(keyRevokedToken, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation in redis: %w", err)
	}

	return n > 0, nil
}

// the underlying client, shared with other redis-backed components
func (s *RedisRevocations) Client() *redis.Client {
	return s.client
}

func (s *RedisRevocations) Close() error {
	return s.client.Close()
}

// MemoryRevocations implements Revocations in process memory.
// entries are dropped by Purge once their token would have expired.
type MemoryRevocations struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if until.After(s.now()) {
		s.revoked[tokenID] = until
	}

	return nil
}

func (s *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	until, ok := s.revoked[tokenID]
	return ok && until.After(s.now()), nil
}

// removes expired entries and returns how many were dropped
func (s *MemoryRevocations) Purge(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for id, until := range s.revoked {
		if !until.After(now) {
			delete(s.revoked, id)
			removed++
		}
	}

	return removed, nil
}

// returns the number of tracked revocations
func (s *MemoryRevocations) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

var (
	_ Revocations = (*RedisRevocations)(nil)
	_ Revocations = (*MemoryRevocations)(nil)
)
