package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/repo"
)

func TestEnsureDefaultAdminIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	us, _, err := f.users.List(ctx, UserQuery{})
	require.NoError(t, err)
	require.Len(t, us, 1)
	assert.Equal(t, "1", us[0].ID)
	assert.Equal(t, "admin@gmail.com", us[0].Email)
	assert.Equal(t, domain.RoleAdmin, us[0].Role)
}

func TestEnsureDefaultAdminKeepsExistingUsers(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()
	require.NoError(t, s.Put(ctx, blob.KeyUsers, []byte(`[{"id":"9","name":"Old","email":"old@x.io","password":"pw1234","role":"lead"}]`)))
	users := NewUserService(repo.NewUserRepo(s, nil), SeedAdmin{}, nil)

	_, err := users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	us, total, err := users.List(ctx, UserQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "9", us[0].ID)
	assert.Equal(t, "1", us[1].ID)

	// 旧数据明文密码仍可登录
	u, err := users.Authenticate(ctx, "old@x.io", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLead, u.Role)
}

func TestEnsureDefaultAdminRestoresRole(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()
	require.NoError(t, s.Put(ctx, blob.KeyUsers, []byte(`[{"id":"7","name":"X","email":"admin@gmail.com","password":"x","role":"pending"}]`)))
	users := NewUserService(repo.NewUserRepo(s, nil), SeedAdmin{}, nil)

	changed, err := users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	us, total, _ := users.List(ctx, UserQuery{})
	assert.Equal(t, 1, total)
	assert.Equal(t, domain.RoleAdmin, us[0].Role)
}

func TestSeededAdminLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)

	u, err := f.users.Authenticate(ctx, "admin@gmail.com", "Hari@9652")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = f.users.Authenticate(ctx, "admin@gmail.com", "hari@9652")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.users.Authenticate(ctx, "ADMIN@gmail.com", "Hari@9652")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := RegisterInput{Name: "Roja", Email: "roja@x.io", Password: "secret1", ConfirmPassword: "secret1"}
	u, err := f.users.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.RolePending, u.Role)
	assert.NotEqual(t, "secret1", u.Password)

	_, err = f.users.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = f.users.Register(ctx, RegisterInput{Name: "R", Email: "r2@x.io", Password: "secret1", ConfirmPassword: "secret2"})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	_, err = f.users.Register(ctx, RegisterInput{Name: "R", Email: "r3@x.io", Password: "123", ConfirmPassword: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	us, total, err := f.users.List(ctx, UserQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "roja@x.io", us[0].Email)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	long := strings.Repeat("p", 80)
	_, err := f.users.Register(ctx, RegisterInput{Name: "Long", Email: "long@x.io", Password: long, ConfirmPassword: long})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, total, err := f.users.List(ctx, UserQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	// 72 字节以内照常注册并可登录
	ok := strings.Repeat("p", 72)
	_, err = f.users.Register(ctx, RegisterInput{Name: "Long", Email: "long@x.io", Password: ok, ConfirmPassword: ok})
	require.NoError(t, err)
	_, err = f.users.Authenticate(ctx, "long@x.io", ok)
	assert.NoError(t, err)
}

func TestEnsureDefaultAdminRejectsOverlongSeedPassword(t *testing.T) {
	ctx := context.Background()
	s := blob.NewMemory()
	seed := DefaultSeedAdmin()
	seed.Password = strings.Repeat("p", 80)
	users := NewUserService(repo.NewUserRepo(s, nil), seed, nil)

	_, err := users.EnsureDefaultAdmin(ctx)
	require.Error(t, err)
	_, total, err := users.List(ctx, UserQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestListPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, n := range []string{"ann", "bob", "cat", "dan"} {
		_, err := f.users.Register(ctx, RegisterInput{Name: n, Email: n + "@x.io", Password: "secret1", ConfirmPassword: "secret1"})
		require.NoError(t, err)
	}
	us, total, err := f.users.List(ctx, UserQuery{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, us, 2)
	assert.Equal(t, "bob", us[0].Name)

	us, total, _ = f.users.List(ctx, UserQuery{Q: "CAT"})
	assert.Equal(t, 1, total)
	assert.Equal(t, "cat", us[0].Name)

	us, _, _ = f.users.List(ctx, UserQuery{Offset: 10})
	assert.Empty(t, us)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	u, err := f.users.Register(ctx, RegisterInput{Name: "Lead", Email: "lead@x.io", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	got, err := f.users.SetRole(ctx, u.ID, "lead")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLead, got.Role)

	_, err = f.users.SetRole(ctx, u.ID, "owner")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	_, err = f.users.SetRole(ctx, "missing", "lead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = f.users.SetRole(ctx, "1", "candidate")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
