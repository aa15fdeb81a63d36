package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"candidate-tracker/internal/app"
	"candidate-tracker/internal/core/config"
	"candidate-tracker/internal/core/logger"
	"candidate-tracker/internal/core/server"
	"candidate-tracker/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	// 管理端只输出到控制台，日志文件归用户端写
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)

	if cfg.Storage.Driver == "memory" {
		log.Warn("admin server on memory storage only sees users registered through itself")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	r := router.NewAdminEngine(log, a.Deps)
	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 15*time.Second, 30*time.Second, 60*time.Second)

	log.Info("admin api", zap.String("addr", addr), zap.String("admin_v1", "http://"+addr+"/admin/v1"))
	if err := server.Run(ctx, srv, "admin api", log); err != nil {
		log.Error("admin api stopped with error", zap.Error(err))
	}
}
