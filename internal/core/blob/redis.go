package blob

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	RDB    *redis.Client
	prefix string
}

func NewRedis(addr, pass string, db int, prefix string) *Redis {
	return &Redis{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		prefix: prefix,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.RDB.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

// Put 不设置过期
func (r *Redis) Put(ctx context.Context, key string, val []byte) error {
	return r.RDB.Set(ctx, r.prefix+key, val, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.RDB.Del(ctx, r.prefix+key).Err()
}

func (r *Redis) Close() error { return r.RDB.Close() }
