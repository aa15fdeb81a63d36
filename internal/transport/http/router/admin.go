package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/transport/http/handler"
	mdw "candidate-tracker/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：/admin/v1，除登录外整组要求 PermManageUsers
func NewAdminEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := newEngine(l, "admin", d)
	admin := r.Group("/admin/v1")

	var pub Registry
	pub.Register(handler.NewAuthHandler(d.Auth, l, authGuard(d.Guard)))
	pub.MountAdmin(admin)

	var reg Registry
	reg.Register(handler.NewAdminHandler(d.Users, l))
	reg.MountAdmin(admin.Group("", mdw.Require(domain.PermManageUsers)))
	return r
}
