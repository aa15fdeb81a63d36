package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"candidate-tracker/internal/core/server"
	"candidate-tracker/internal/service"
	"candidate-tracker/internal/transport/http/handler"
	mdw "candidate-tracker/internal/transport/http/middleware"
)

// Guard 请求级保护参数，零值表示不限制
type Guard struct {
	RPS          float64
	Burst        int
	MaxInflight  int64
	MaxBodyBytes int64
	Timeout      time.Duration
	AuthRPS      float64 // 每 IP 登录/注册限速
	AuthBurst    int
}

type Deps struct {
	Auth    *service.AuthService
	Users   *service.UserService
	Records *service.RecordService
	Reports *service.ReportService
	Guard   Guard
}

func newEngine(l *zap.Logger, name string, d Deps) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l), // 之后的 panic 都回统一信封
		mdw.RateLimit(rate.Limit(d.Guard.RPS), d.Guard.Burst),
		mdw.ConcurrencyLimit(d.Guard.MaxInflight),
		mdw.MaxBodyBytes(d.Guard.MaxBodyBytes),
		mdw.Timeout(d.Guard.Timeout),
		mdw.Metrics(name),
		mdw.Session(d.Auth),
		mdw.AccessLog(l),
	)
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(mdw.MetricsHandler()))
	return r
}

func authGuard(g Guard) gin.HandlerFunc {
	if g.AuthRPS <= 0 {
		return nil
	}
	return mdw.RateLimitPerIP(rate.Limit(g.AuthRPS), max(1, g.AuthBurst))
}

// NewAPIEngine 用户端：/api/v1
func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := newEngine(l, "api", d)

	var reg Registry
	reg.Register(
		handler.NewAuthHandler(d.Auth, l, authGuard(d.Guard)),
		handler.NewRecordHandler(d.Records, l),
		handler.NewReportHandler(d.Reports, l),
	)
	reg.MountAPI(r.Group("/api/v1"))
	return r
}
