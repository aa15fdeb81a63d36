package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // bcrypt 或旧数据里的明文，只做精确比对
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Public 登录后会话里保留的字段（不含密码）
func (u User) Public() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserRepository 整体读写 users 集合；每次变更都会覆盖整个集合
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Add(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u User) error
}
