package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 版 TTL 缓存，多实例部署时共享缓存用
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 缓存，启动时 Ping 一次确认可用
func NewRedisStore(addr, password string, db int, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("redis get 失败", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		zap.L().Warn("redis set 失败", zap.String("key", key), zap.Error(err))
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		zap.L().Warn("redis del 失败", zap.String("key", key), zap.Error(err))
	}
}

// Close 关闭连接
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
