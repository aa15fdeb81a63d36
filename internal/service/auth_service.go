package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"candidate-tracker/internal/core/auth"
	"candidate-tracker/internal/domain"
	"candidate-tracker/pkg/utils"
)

type LoginResult struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

// AuthService 会话：登录时落一份用户快照，注销时删除
type AuthService struct {
	users    *UserService
	sessions domain.SessionRepository
	jwt      *auth.JWTer
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(users *UserService, sessions domain.SessionRepository, j *auth.JWTer, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{users: users, sessions: sessions, jwt: j, log: l, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (res LoginResult, err error) {
	defer func() { loginTotal.WithLabelValues(result(err)).Inc() }()
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	return s.open(ctx, u)
}

// Register 注册后直接登录
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (LoginResult, error) {
	u, err := s.users.Register(ctx, in)
	if err != nil {
		return LoginResult{}, err
	}
	return s.open(ctx, u)
}

func (s *AuthService) open(ctx context.Context, u domain.User) (LoginResult, error) {
	sess := domain.Session{ID: utils.NewID(), User: u.Public(), CreatedAt: s.now()}
	tok, err := s.jwt.Issue(auth.Claims{
		SID:   sess.ID,
		UID:   u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	})
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return LoginResult{}, err
	}
	s.log.Info("session opened", zap.String("sid", sess.ID), zap.String("uid", u.ID), zap.String("role", string(u.Role)))
	return LoginResult{Token: tok, Session: sess}, nil
}

// Logout 幂等
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Delete(ctx, sid)
}

func (s *AuthService) Current(ctx context.Context, sid string) (domain.Session, error) {
	sess, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return domain.Session{}, err
	}
	if sess == nil {
		return domain.Session{}, domain.ErrNoSession
	}
	return *sess, nil
}

// Resolve token -> 持久化的会话；会话已注销视为未登录
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	c, err := s.jwt.Parse(token)
	if err != nil {
		return domain.Session{}, domain.ErrNoSession
	}
	return s.Current(ctx, c.SID)
}
