package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/domain"
)

type SessionRepo struct {
	store blob.Store
	log   *zap.Logger
}

func NewSessionRepo(s blob.Store, l *zap.Logger) *SessionRepo {
	if l == nil {
		l = zap.NewNop()
	}
	return &SessionRepo{store: s, log: l}
}

func (r *SessionRepo) Save(ctx context.Context, s domain.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.store.Put(ctx, blob.SessionKey(s.ID), b)
}

// Load 损坏的会话按未登录处理
func (r *SessionRepo) Load(ctx context.Context, id string) (*domain.Session, error) {
	b, err := r.store.Get(ctx, blob.SessionKey(id))
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil || s.ID != id {
		r.log.Warn("malformed session blob", zap.String("sid", id), zap.Error(err))
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, blob.SessionKey(id))
}
