package domain

import (
	"context"
	"time"
)

// SessionUser 登录时刻的用户快照，之后不再回查用户表
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Session struct {
	ID        string      `json:"id"`
	User      SessionUser `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

type SessionRepository interface {
	Save(ctx context.Context, s Session) error
	// Load 不存在时返回 (nil, nil)
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
