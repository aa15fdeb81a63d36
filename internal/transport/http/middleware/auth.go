package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-tracker/internal/domain"
	resp "candidate-tracker/internal/transport/http/response"
)

const KeySession = "session"

// SessionResolver token -> 持久化会话
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Session, error)
}

// Session 有合法 Bearer token 时把会话挂到 ctx；没有也放行，由路由自己决定是否要求登录
func Session(r SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerToken(c)
		if tok != "" {
			if sess, err := r.Resolve(c.Request.Context(), tok); err == nil {
				c.Set(KeySession, sess)
			}
		}
		c.Next()
	}
}

func BearerToken(c *gin.Context) string {
	ah := c.GetHeader("Authorization")
	if len(ah) > 7 && strings.EqualFold(ah[:7], "Bearer ") {
		return strings.TrimSpace(ah[7:])
	}
	return ""
}

func CurrentSession(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(KeySession)
	if !ok {
		return domain.Session{}, false
	}
	sess, ok := v.(domain.Session)
	return sess, ok
}

// Require 分组级权限：未登录 401，权限不足 403
func Require(perms ...domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "login required"))
			return
		}
		for _, p := range perms {
			if !sess.User.Role.Can(p) {
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}
		c.Next()
	}
}
