package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Values live in a hash, recency in a sorted set scored by a per-cache
// counter. Both scripts run atomically so several processes can share a cache.
var (
	getScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], ARGV[1])
if v then
  redis.call('ZADD', KEYS[2], redis.call('INCR', KEYS[3]), ARGV[1])
end
return v
`)

	setScript = redis.NewScript(`
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('ZADD', KEYS[2], redis.call('INCR', KEYS[3]), ARGV[1])
local over = redis.call('ZCARD', KEYS[2]) - tonumber(ARGV[3])
if over > 0 then
  local old = redis.call('ZRANGE', KEYS[2], 0, over - 1)
  redis.call('ZREMRANGEBYRANK', KEYS[2], 0, over - 1)
  redis.call('HDEL', KEYS[1], unpack(old))
end
return over
`)
)

type redisStore struct {
	rdb     *redis.Client
	size    int
	values  string
	recency string
	clock   string
}

// NewRedisStore creates a store shared through Redis under "{prefix}:{name}".
func NewRedisStore(rdb *redis.Client, prefix, name string, size int) (Store, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	base := fmt.Sprintf("%s:%s", prefix, name)
	return &redisStore{
		rdb:     rdb,
		size:    size,
		values:  base + ":values",
		recency: base + ":recency",
		clock:   base + ":clock",
	}, nil
}

func (s *redisStore) keys() []string {
	return []string{s.values, s.recency, s.clock}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := getScript.Run(ctx, s.rdb, s.keys(), key).Text()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return v, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := setScript.Run(ctx, s.rdb, s.keys(), key, value, s.size).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *redisStore) Len(ctx context.Context) (int, error) {
	n, err := s.rdb.HLen(ctx, s.values).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return int(n), nil
}
