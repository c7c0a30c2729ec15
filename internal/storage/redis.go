package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"analyzer/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is a short-TTL cache of fetched page snapshots. It is an
// optimization only: every miss or error falls through to a live fetch.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(addr string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: rdb, ttl: ttl, logger: logger}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// snapshotKey hashes the URL so arbitrary input makes a safe redis key.
func snapshotKey(url string) string {
	h := sha256.Sum256([]byte(url))
	return fmt.Sprintf("snapshot:%s", hex.EncodeToString(h[:]))
}

func (s *RedisStore) GetPage(ctx context.Context, url string) (*domain.RawPage, bool) {
	val, err := s.client.Get(ctx, snapshotKey(url)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("snapshot cache read failed", zap.String("url", url), zap.Error(err))
		}
		return nil, false
	}
	var page domain.RawPage
	if err := json.Unmarshal(val, &page); err != nil {
		s.logger.Warn("corrupt snapshot cache entry", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (s *RedisStore) PutPage(ctx context.Context, url string, page *domain.RawPage) {
	val, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, snapshotKey(url), val, s.ttl).Err(); err != nil {
		s.logger.Warn("snapshot cache write failed", zap.String("url", url), zap.Error(err))
	}
}
