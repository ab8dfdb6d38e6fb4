package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore holds issued admin tokens.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		ttl:    12 * time.Hour,
	}
}

// RedisTokenStore keeps tokens in Redis so admin access survives process
// restarts.
type RedisTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisTokenStore) Set(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, tokenKey(token), "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

func (r *RedisTokenStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func tokenKey(token string) string {
	return fmt.Sprintf("admin:token:%s", token)
}

// NewMemoryTokenStore backs deployments that run without Redis. Tokens do
// not survive a restart.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]struct{})}
}

type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func (m *MemoryTokenStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = struct{}{}
	return nil
}

func (m *MemoryTokenStore) Exists(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[token]
	return ok, nil
}

func (m *MemoryTokenStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}
