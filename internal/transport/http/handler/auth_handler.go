package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/service"
	httpez "candidate-tracker/internal/transport/http/ez"
	mdw "candidate-tracker/internal/transport/http/middleware"
)

// AuthHandler 登录 / 注册 / 注销 / 当前会话，api 与 admin 两个引擎都挂
type AuthHandler struct {
	auth  *service.AuthService
	log   *zap.Logger
	guard gin.HandlerFunc // 登录注册的限流，可为 nil
}

func NewAuthHandler(a *service.AuthService, l *zap.Logger, guard gin.HandlerFunc) *AuthHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthHandler{auth: a, log: l, guard: guard}
}

func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	h.mount(g, true)
}

// MountAdmin 管理端不开放注册
func (h *AuthHandler) MountAdmin(g *gin.RouterGroup) {
	h.mount(g, false)
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string             `json:"token"`
	User  domain.SessionUser `json:"user"`
}

func toLoginOut(r service.LoginResult) loginOut {
	return loginOut{Token: r.Token, User: r.Session.User}
}

// alreadyIn 已登录时登录/注册直接返回当前会话，不再新开
func alreadyIn(c *gin.Context) (loginOut, bool) {
	sess, ok := mdw.CurrentSession(c)
	if !ok {
		return loginOut{}, false
	}
	return loginOut{Token: mdw.BearerToken(c), User: sess.User}, true
}

func (h *AuthHandler) mount(g *gin.RouterGroup, withRegister bool) {
	public := g.Group("/auth")
	if h.guard != nil {
		public.Use(h.guard)
	}
	ezPublic := httpez.New(public, h.log)
	ez := httpez.New(g, h.log)

	if withRegister {
		httpez.Register(ezPublic, httpez.Action[service.RegisterInput, loginOut]{
			Method: http.MethodPost,
			Path:   "/register",
			Binder: httpez.BindJSON,
			Handler: func(c *gin.Context, in *service.RegisterInput) (loginOut, error) {
				if out, ok := alreadyIn(c); ok {
					return out, nil
				}
				res, err := h.auth.Register(c.Request.Context(), *in)
				if err != nil {
					return loginOut{}, err
				}
				return toLoginOut(res), nil
			},
		})
	}

	httpez.Register(ezPublic, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			if out, ok := alreadyIn(c); ok {
				return out, nil
			}
			res, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			return toLoginOut(res), nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			sess, _ := mdw.CurrentSession(c)
			if err := h.auth.Logout(c.Request.Context(), sess.ID); err != nil {
				return nil, err
			}
			return gin.H{"loggedOut": true}, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, domain.Session]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Session, error) {
			sess, _ := mdw.CurrentSession(c)
			return sess, nil
		},
	})
}
