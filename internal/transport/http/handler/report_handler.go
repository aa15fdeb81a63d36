package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/export"
	"candidate-tracker/internal/report"
	"candidate-tracker/internal/service"
	httpez "candidate-tracker/internal/transport/http/ez"
)

type ReportHandler struct {
	reports *service.ReportService
	log     *zap.Logger
}

func NewReportHandler(s *service.ReportService, l *zap.Logger) *ReportHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ReportHandler{reports: s, log: l}
}

type exportQ struct {
	Format string `form:"format"`
}

func (h *ReportHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.Register(ez, httpez.Action[struct{}, report.DashboardView]{
		Method: http.MethodGet,
		Path:   "/dashboard",
		Binder: httpez.BindNone,
		Perms:  []domain.Permission{domain.PermViewDashboard},
		Handler: func(c *gin.Context, _ *struct{}) (report.DashboardView, error) {
			return h.reports.Dashboard(c.Request.Context(), httpez.Actor(c))
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, report.AnalyticsView]{
		Method: http.MethodGet,
		Path:   "/analytics",
		Binder: httpez.BindNone,
		Perms:  []domain.Permission{domain.PermViewAnalytics},
		Handler: func(c *gin.Context, _ *struct{}) (report.AnalyticsView, error) {
			return h.reports.Analytics(c.Request.Context())
		},
	})

	// 成功时直接写文件，失败走信封
	httpez.Register(ez, httpez.Action[exportQ, struct{}]{
		Method: http.MethodGet,
		Path:   "/exports/:kind",
		Binder: httpez.BindQuery,
		Perms:  []domain.Permission{domain.PermViewAnalytics},
		Handler: func(c *gin.Context, in *exportQ) (struct{}, error) {
			kind, err := export.ParseKind(c.Param("kind"))
			if err != nil {
				return struct{}{}, httpez.BadRequest(err.Error())
			}
			format, err := export.ParseFormat(in.Format)
			if err != nil {
				return struct{}{}, httpez.BadRequest(err.Error())
			}
			f, err := h.reports.Export(c.Request.Context(), kind, format)
			if err != nil {
				return struct{}{}, httpez.Internal("export failed", err)
			}
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.Name))
			c.Data(http.StatusOK, f.ContentType, f.Body)
			return struct{}{}, nil
		},
	})
}
