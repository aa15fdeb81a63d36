package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/domain"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(blob.NewMemory(), nil)

	require.NoError(t, r.Add(ctx, domain.User{ID: "1", Email: "a@x.io", Name: "A", Role: domain.RoleAdmin}))
	require.NoError(t, r.Add(ctx, domain.User{ID: "2", Email: "b@x.io", Name: "B", Role: domain.RolePending}))
	// 大小写不同视为不同邮箱
	require.NoError(t, r.Add(ctx, domain.User{ID: "3", Email: "A@x.io", Name: "A2", Role: domain.RolePending}))
	assert.ErrorIs(t, r.Add(ctx, domain.User{ID: "4", Email: "a@x.io"}), domain.ErrEmailTaken)

	us, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, us, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{us[0].ID, us[1].ID, us[2].ID})

	u, err := r.FindByEmail(ctx, "b@x.io")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "2", u.ID)

	u, err = r.FindByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, u)

	u2 := us[1]
	u2.Role = domain.RoleLead
	require.NoError(t, r.Update(ctx, u2))
	u, _ = r.FindByID(ctx, "2")
	assert.Equal(t, domain.RoleLead, u.Role)

	assert.ErrorIs(t, r.Update(ctx, domain.User{ID: "404"}), domain.ErrUserNotFound)
}

func TestSessionRepo(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()
	r := NewSessionRepo(s, nil)

	got, err := r.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := domain.Session{ID: "sid", User: domain.SessionUser{ID: "1", Name: "A", Role: domain.RoleLead}}
	require.NoError(t, r.Save(ctx, sess))
	got, err = r.Load(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleLead, got.User.Role)

	require.NoError(t, r.Delete(ctx, "sid"))
	got, _ = r.Load(ctx, "sid")
	assert.Nil(t, got)

	require.NoError(t, s.Put(ctx, blob.SessionKey("bad"), []byte("??")))
	got, err = r.Load(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}
