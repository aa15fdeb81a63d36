package blob

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Coalesced 同一 key 的并发 Get 合并成一次后端读取。
// 写/删之后 Forget，之后到来的读不会拿到写之前发起的结果。
type Coalesced struct {
	inner Store
	sf    singleflight.Group
}

func NewCoalesced(s Store) *Coalesced { return &Coalesced{inner: s} }

func (c *Coalesced) Get(ctx context.Context, key string) ([]byte, error) {
	v, err, _ := c.sf.Do(key, func() (any, error) {
		return c.inner.Get(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	b := v.([]byte)
	return append([]byte(nil), b...), nil
}

func (c *Coalesced) Put(ctx context.Context, key string, val []byte) error {
	defer c.sf.Forget(key)
	return c.inner.Put(ctx, key, val)
}

func (c *Coalesced) Delete(ctx context.Context, key string) error {
	defer c.sf.Forget(key)
	return c.inner.Delete(ctx, key)
}
