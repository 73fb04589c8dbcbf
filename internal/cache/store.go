package cache

import (
	"context"
	"sync"
	"time"
)

// Store TTL 键值缓存的统一接口。
// 默认用进程内实现，配置了 Redis 时切换到 Redis 实现，语义一致。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// ==================== 进程内实现 ====================

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      []byte
	expiration int64
}

// MemoryStore 基于 sync.Map 的进程内 TTL 缓存，并发安全
type MemoryStore struct {
	items sync.Map
}

// NewMemoryStore 创建进程内缓存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := s.items.Load(key)
	if !ok {
		return nil, false
	}

	item := val.(cacheItem)

	// 检查是否过期（懒删除）
	if time.Now().UnixNano() > item.expiration {
		s.items.Delete(key)
		return nil, false
	}

	return item.value, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.items.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	})
}

func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.items.Delete(key)
}

// PurgeExpired 清理已过期的条目，返回清理数量。
// 懒删除只在 Get 时触发，冷 key 需要定时清扫兜底。
func (s *MemoryStore) PurgeExpired() int {
	now := time.Now().UnixNano()
	purged := 0

	s.items.Range(func(key, val interface{}) bool {
		if item, ok := val.(cacheItem); ok && now > item.expiration {
			s.items.Delete(key)
			purged++
		}
		return true
	})

	return purged
}
