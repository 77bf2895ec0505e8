package ratelimit

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the multi-process variant of the fixed-window counter.
// INCR di Redis atomik, jadi check-and-increment aman walau beberapa
// instance api melayani principal yang sama. SET NX memasang TTL sebelum
// increment; key counter tidak pernah hidup tanpa umur window.
type RedisStore struct {
	rdb *redis.Client
	cfg Config
}

func NewRedisStore(rdb *redis.Client, cfg Config) *RedisStore {
	return &RedisStore{rdb: rdb, cfg: cfg}
}

func (s *RedisStore) Check(ctx context.Context, principalID string, cat Category) (Decision, error) {
	key := bucketKey(principalID, cat)
	ceiling := s.cfg.Ceiling(cat)

	// Kalau EXPIRE terpisah setelah INCR pertama hilang, counter tidak
	// pernah kedaluwarsa dan principal terkunci permanen begitu lewat
	// plafon. SET NX membuat key lengkap dengan TTL lebih dulu, INCR
	// tinggal menaikkan.
	if err := s.rdb.SetNX(ctx, key, 0, s.cfg.Window).Err(); err != nil {
		return Decision{}, err
	}

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, err
	}

	if count > int64(ceiling) {
		ttl, err := s.rdb.PTTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = s.cfg.Window
		}
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: ttl,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Remaining: ceiling - int(count),
	}, nil
}

var (
	_ Limiter = (*RedisStore)(nil)
	_ Limiter = (*MemoryStore)(nil)
)
