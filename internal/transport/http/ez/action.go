package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	mdw "candidate-tracker/internal/transport/http/middleware"
	resp "candidate-tracker/internal/transport/http/response"
)

// EZ 路由分组的轻封装
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Classify 领域错误 -> 业务码；未知错误一律 500，不把内部信息带给客户端
func Classify(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidRole):
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoSession):
		return &AErr{Code: resp.CodeUnauthorized, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return &AErr{Code: resp.CodeNotFound, Msg: err.Error(), Err: err}
	}
	return &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string              // GET / POST / PUT / DELETE
	Path    string              // 例："/auth/login"、"/records/:id"
	Binder  Binder              // 绑定方式
	Auth    bool                // 是否要求登录
	Perms   []domain.Permission // 需要的权限（非空时隐含 Auth）
	Handler func(c *gin.Context, in *I) (O, error)
}

// Actor 当前登录用户快照；未登录返回零值
func Actor(c *gin.Context) domain.SessionUser {
	sess, _ := mdw.CurrentSession(c)
	return sess.User
}

// Fail 写错误信封
func (e EZ) Fail(c *gin.Context, err error) {
	ae := Classify(err)
	if ae.Code >= resp.CodeServerError {
		e.log.Error("action failed",
			zap.String("rid", mdw.RequestIDOf(c)),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
}

// Register 一行注册；Handler 自己写了响应（文件下载）时不再包信封
func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth || len(a.Perms) > 0 {
			sess, ok := mdw.CurrentSession(c)
			if !ok {
				c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "login required"))
				return
			}
			for _, p := range a.Perms {
				if !sess.User.Role.Can(p) {
					c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden: "+p.String()))
					return
				}
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.Fail(c, err)
			return
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
