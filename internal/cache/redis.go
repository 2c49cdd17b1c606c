package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"salon/config"
	"salon/internal/domain"
)

const keyPrefix = "salon:availability"

// store is the subset of redis commands the cache needs; *redis.Client satisfies it.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// AvailabilityCache keeps resolved availability per employee and range.
// Invalidation bumps a per-employee version, so stale ranges simply stop being read and expire by TTL.
// Get reports the version it read; Set writes under that version, so a result computed before an
// invalidation can never land under the newer version.
type AvailabilityCache struct {
	rdb store
	ttl time.Duration
}

func NewAvailabilityCache(rdb store, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("не указан адрес redis")
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ошибка подключения к redis: %w", err)
	}

	return rdb, nil
}

func (c *AvailabilityCache) Get(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.AvailabilitySlot, int64, bool, error) {
	version, err := c.version(ctx, employeeID)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.rdb.Get(ctx, rangeKey(employeeID, version, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("ошибка чтения кэша: %w", err)
	}

	var slots []domain.AvailabilitySlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, version, false, fmt.Errorf("ошибка разбора кэша: %w", err)
	}

	return slots, version, true, nil
}

// Set stores slots under the version returned by the Get that preceded the computation.
func (c *AvailabilityCache) Set(ctx context.Context, employeeID, version int64, from, to time.Time, slots []domain.AvailabilitySlot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("ошибка сериализации доступности: %w", err)
	}

	if err := c.rdb.Set(ctx, rangeKey(employeeID, version, from, to), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи кэша: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, employeeID int64) error {
	if err := c.rdb.Incr(ctx, versionKey(employeeID)).Err(); err != nil {
		return fmt.Errorf("ошибка инвалидации кэша: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) version(ctx context.Context, employeeID int64) (int64, error) {
	version, err := c.rdb.Get(ctx, versionKey(employeeID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения версии кэша: %w", err)
	}
	return version, nil
}

func versionKey(employeeID int64) string {
	return fmt.Sprintf("%s:%d:version", keyPrefix, employeeID)
}

func rangeKey(employeeID, version int64, from, to time.Time) string {
	return fmt.Sprintf("%s:%d:v%d:%s:%s", keyPrefix, employeeID, version,
		from.Format(domain.DateLayout), to.Format(domain.DateLayout))
}
