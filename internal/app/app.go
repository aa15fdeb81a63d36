// Package app 两个入口共用的装配：存储 -> 仓储 -> 服务 -> 路由依赖
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"candidate-tracker/internal/core/auth"
	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/core/config"
	"candidate-tracker/internal/core/database"
	"candidate-tracker/internal/export"
	"candidate-tracker/internal/repo"
	"candidate-tracker/internal/service"
	"candidate-tracker/internal/storage"
	"candidate-tracker/internal/transport/http/router"
)

type App struct {
	Store   blob.Store
	Deps    router.Deps
	closers []func() error
	log     *zap.Logger
}

// New 打开存储并保证默认管理员存在
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{log: l}
	store, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store

	users := service.NewUserService(repo.NewUserRepo(store, l), service.SeedAdmin{
		ID:       cfg.Seed.ID,
		Name:     cfg.Seed.Name,
		Email:    cfg.Seed.Email,
		Password: cfg.Seed.Password,
	}, l)
	if _, err := users.EnsureDefaultAdmin(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	archiver, err := newArchiver(ctx, cfg.Export.Archive)
	if err != nil {
		a.Close()
		return nil, err
	}
	if archiver != nil {
		l.Info("export archive enabled", zap.String("bucket", cfg.Export.Archive.Bucket))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	records := repo.NewRecordRepo(store, l)
	g := cfg.App.Guard
	a.Deps = router.Deps{
		Auth:    service.NewAuthService(users, repo.NewSessionRepo(store, l), jwter, l),
		Users:   users,
		Records: service.NewRecordService(records, l),
		Reports: service.NewReportService(records, archiver, l),
		Guard: router.Guard{
			RPS:          g.RPS,
			Burst:        g.Burst,
			MaxInflight:  g.MaxInflight,
			MaxBodyBytes: g.MaxBodyMB << 20,
			Timeout:      time.Duration(g.TimeoutSec) * time.Second,
			AuthRPS:      g.AuthRPS,
			AuthBurst:    g.AuthBurst,
		},
	}
	return a, nil
}

func (a *App) openStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		a.log.Warn("memory storage: data is lost on exit and not shared between api and admin processes")
		return blob.NewMemory(), nil
	case "redis":
		r := blob.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := r.RDB.Ping(pctx).Err(); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		a.closers = append(a.closers, r.Close)
		a.log.Info("storage connected", zap.String("driver", "redis"), zap.String("addr", cfg.Redis.Addr))
		return blob.NewCoalesced(r), nil
	case "gorm":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
		}, a.log)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		g, err := blob.NewGorm(db, cfg.DB.AutoMigrate)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		a.log.Info("storage connected", zap.String("driver", "gorm/"+cfg.DB.Driver))
		return blob.NewCoalesced(g), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func newArchiver(ctx context.Context, c config.Archive) (export.Archiver, error) {
	if !c.Enable {
		return nil, nil
	}
	client, err := storage.NewS3Client(ctx, storage.S3Options{
		Bucket:    c.Bucket,
		Region:    c.Region,
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Prefix:    c.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return storage.NewS3Archiver(client, c.Bucket, c.Prefix)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close", zap.Error(err))
		}
	}
	a.closers = nil
}
