package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/service"
	httpez "candidate-tracker/internal/transport/http/ez"
)

// AdminHandler 用户管理，只挂在管理端
type AdminHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewAdminHandler(s *service.UserService, l *zap.Logger) *AdminHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AdminHandler{users: s, log: l}
}

type userListQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

type userRow struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type userListOut struct {
	Total int       `json:"total"`
	Items []userRow `json:"items"`
}

type roleIn struct {
	Role string `json:"role" binding:"required"`
}

func toRow(u domain.User) userRow {
	return userRow{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)
	manage := []domain.Permission{domain.PermManageUsers}

	httpez.Register(ez, httpez.Action[userListQ, userListOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Perms:  manage,
		Handler: func(c *gin.Context, in *userListQ) (userListOut, error) {
			us, total, err := h.users.List(c.Request.Context(), service.UserQuery{Q: in.Q, Offset: in.Offset, Limit: in.Limit})
			if err != nil {
				return userListOut{}, err
			}
			out := userListOut{Total: total, Items: make([]userRow, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, toRow(u))
			}
			return out, nil
		},
	})

	httpez.Register(ez, httpez.Action[roleIn, userRow]{
		Method: http.MethodPut,
		Path:   "/users/:id/role",
		Binder: httpez.BindJSON,
		Perms:  manage,
		Handler: func(c *gin.Context, in *roleIn) (userRow, error) {
			u, err := h.users.SetRole(c.Request.Context(), c.Param("id"), in.Role)
			if err != nil {
				return userRow{}, err
			}
			h.log.Info("role changed", zap.String("uid", u.ID), zap.String("role", string(u.Role)),
				zap.String("by", httpez.Actor(c).ID))
			return toRow(u), nil
		},
	})
}
