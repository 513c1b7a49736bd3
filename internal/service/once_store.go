package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// OnceStore 带过期时间的一次性键。Once 对同一个 key 只在第一次调用时返回 true，
// 用于提醒的防重发守卫和确认令牌的一次性消费。
type OnceStore interface {
	Once(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RedisOnceStore 多实例共享的实现，SETNX + TTL。
type RedisOnceStore struct {
	Client *redis.Client
}

func NewRedisOnceStore(client *redis.Client) *RedisOnceStore {
	return &RedisOnceStore{Client: client}
}

func (s *RedisOnceStore) Once(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.Client.SetNX(ctx, key, "1", ttl).Result()
}

// MemoryOnceStore 进程内实现，redis 未配置的单机部署和测试中使用。
type MemoryOnceStore struct {
	mu   sync.Mutex
	keys map[string]time.Time // key -> 过期时刻
}

func NewMemoryOnceStore() *MemoryOnceStore {
	return &MemoryOnceStore{keys: make(map[string]time.Time)}
}

func (s *MemoryOnceStore) Once(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, exp := range s.keys {
		if now.After(exp) {
			delete(s.keys, k)
		}
	}

	if _, exists := s.keys[key]; exists {
		return false, nil
	}
	s.keys[key] = now.Add(ttl)
	return true, nil
}
