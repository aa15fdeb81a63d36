package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/pkg/utils"
)

const MinPasswordLen = 6

// SeedAdmin 启动时保证存在的管理员
type SeedAdmin struct {
	ID       string
	Name     string
	Email    string
	Password string
}

func DefaultSeedAdmin() SeedAdmin {
	return SeedAdmin{ID: "1", Name: "Hari", Email: "admin@gmail.com", Password: "Hari@9652"}
}

type UserService struct {
	users domain.UserRepository
	seed  SeedAdmin
	log   *zap.Logger
	now   func() time.Time
}

func NewUserService(users domain.UserRepository, seed SeedAdmin, l *zap.Logger) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	def := DefaultSeedAdmin()
	if seed.ID == "" {
		seed.ID = def.ID
	}
	if seed.Name == "" {
		seed.Name = def.Name
	}
	if seed.Email == "" {
		seed.Email = def.Email
	}
	if seed.Password == "" {
		seed.Password = def.Password
	}
	return &UserService{users: users, seed: seed, log: l, now: time.Now}
}

// EnsureDefaultAdmin 幂等：已有 (seed 邮箱, admin) 则什么都不做。
// 邮箱被非 admin 账号占用时把该账号恢复为 admin，保证邮箱唯一。
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	u, err := s.users.FindByEmail(ctx, s.seed.Email)
	if err != nil {
		return false, err
	}
	if u != nil {
		if u.Role == domain.RoleAdmin {
			return false, nil
		}
		s.log.Warn("seed admin email held by non-admin account, restoring role",
			zap.String("id", u.ID), zap.String("role", string(u.Role)))
		u.Role = domain.RoleAdmin
		return true, s.users.Update(ctx, *u)
	}
	hash, err := utils.HashPassword(s.seed.Password)
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}
	err = s.users.Add(ctx, domain.User{
		ID:        s.seed.ID,
		Name:      s.seed.Name,
		Email:     s.seed.Email,
		Password:  hash,
		Role:      domain.RoleAdmin,
		CreatedAt: s.now(),
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("seeded default admin", zap.String("email", s.seed.Email))
	return true, nil
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register 新用户为 pending，等管理员提升
func (s *UserService) Register(ctx context.Context, in RegisterInput) (u domain.User, err error) {
	defer func() { registerTotal.WithLabelValues(result(err)).Inc() }()

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || len(in.Password) < MinPasswordLen || len(in.Password) > utils.MaxPasswordBytes {
		return domain.User{}, domain.ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return domain.User{}, domain.ErrPasswordMismatch
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	u = domain.User{
		ID:        utils.NewID(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      domain.RolePending,
		CreatedAt: s.now(),
	}
	if err := s.users.Add(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate 邮箱 + 密码精确匹配
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, err
	}
	if u == nil || !utils.CheckPassword(password, u.Password) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return *u, nil
}

type UserQuery struct {
	Q      string
	Offset int
	Limit  int
}

// List 按插入顺序分页；Q 对 name/email 做不区分大小写的子串匹配
func (s *UserService) List(ctx context.Context, q UserQuery) ([]domain.User, int, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	matched := make([]domain.User, 0, len(us))
	for _, u := range us {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		matched = append(matched, u)
	}
	total := len(matched)
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Offset >= total {
		return []domain.User{}, total, nil
	}
	end := min(q.Offset+q.Limit, total)
	return matched[q.Offset:end], total, nil
}

// SetRole 管理员修改角色；已登录会话要重新登录才生效
func (s *UserService) SetRole(ctx context.Context, id, role string) (domain.User, error) {
	r, ok := domain.ParseRole(role)
	if !ok {
		return domain.User{}, domain.ErrInvalidRole
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if u == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	if u.Email == s.seed.Email && r != domain.RoleAdmin {
		return domain.User{}, fmt.Errorf("%w: seeded admin must stay admin", domain.ErrInvalidRole)
	}
	u.Role = r
	if err := s.users.Update(ctx, *u); err != nil {
		return domain.User{}, err
	}
	return *u, nil
}
