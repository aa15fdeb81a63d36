package repo

import (
	"context"

	"go.uber.org/zap"

	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/domain"
)

type UserRepo struct{ c *collection[domain.User] }

func NewUserRepo(s blob.Store, l *zap.Logger) *UserRepo {
	return &UserRepo{c: newCollection[domain.User](s, blob.KeyUsers, l)}
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) { return r.c.load(ctx) }

// Add 邮箱重复返回 ErrEmailTaken（区分大小写）
func (r *UserRepo) Add(ctx context.Context, u domain.User) error {
	return r.c.mutate(ctx, func(us []domain.User) ([]domain.User, bool, error) {
		for _, x := range us {
			if x.Email == u.Email {
				return nil, false, domain.ErrEmailTaken
			}
		}
		return append(us, u), true, nil
	})
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepo) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	us, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range us {
		if match(us[i]) {
			return &us[i], nil
		}
	}
	return nil, nil
}

// Update 按 id 整条替换
func (r *UserRepo) Update(ctx context.Context, u domain.User) error {
	return r.c.mutate(ctx, func(us []domain.User) ([]domain.User, bool, error) {
		for i := range us {
			if us[i].ID == u.ID {
				us[i] = u
				return us, true, nil
			}
		}
		return nil, false, domain.ErrUserNotFound
	})
}
