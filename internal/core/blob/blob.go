// Package blob 持久化层：每个 key 对应一整块序列化数据，写入即整体覆盖。
package blob

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob: not found")

// Store 读写整块数据；没有部分更新，也没有跨 key 事务
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, val []byte) error
	// Delete key 不存在不报错
	Delete(ctx context.Context, key string) error
}

const (
	KeyUsers      = "users"
	KeyCandidates = "candidates"
)

// SessionKey 每个会话一个 key
func SessionKey(id string) string { return "session:" + id }
