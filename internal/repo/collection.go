package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"candidate-tracker/internal/core/blob"
)

// collection 一个 key 下的整个 JSON 数组。
// mutate 在同一进程内串行；不同进程之间最后写入者覆盖。
type collection[T any] struct {
	store blob.Store
	key   string
	log   *zap.Logger
	mu    sync.Mutex
}

func newCollection[T any](s blob.Store, key string, l *zap.Logger) *collection[T] {
	if l == nil {
		l = zap.NewNop()
	}
	return &collection[T]{store: s, key: key, log: l}
}

// load 缺失或损坏的数据都当作空集合
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	b, err := c.store.Get(ctx, c.key)
	if errors.Is(err, blob.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		c.log.Warn("malformed blob, treating as empty", zap.String("key", c.key), zap.Error(err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, b); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// mutate 读全量 -> fn -> 写全量；fn 返回 changed=false 时不写
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	out, changed, err := fn(items)
	if err != nil || !changed {
		return err
	}
	return c.save(ctx, out)
}
