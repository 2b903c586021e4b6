package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"urbanvibe-api/internal/core/auth"
	"urbanvibe-api/internal/core/config"
	"urbanvibe-api/internal/core/database"
	"urbanvibe-api/internal/core/logger"
	"urbanvibe-api/internal/core/server"
	"urbanvibe-api/internal/repo"
	"urbanvibe-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.File))
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	db, err := database.NewGorm(database.Opts{
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThresholdMs:    cfg.DB.SlowThresholdMs,
		Writer:             logger.ToStdLogger(log.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("db close", zap.Error(err))
		}
	}()
	log.Info("database pool ready",
		zap.String("dsn", database.MaskDSN(cfg.DB.DSN)),
		zap.Int("max_open", cfg.DB.MaxOpenConns),
	)
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, db, "urbanvibe"); err != nil {
		log.Warn("pool metrics", zap.Error(err))
	}

	if cfg.JWT.Secret == "" {
		log.Warn("jwt secret not set; /api/v1/users/me will reject every token")
	}
	jwter := &auth.JWTer{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		Leeway:   time.Duration(cfg.JWT.LeewaySec) * time.Second,
	}

	qt := time.Duration(cfg.DB.QueryTimeoutSec) * time.Second
	r := router.NewAPIEngine(log, cfg, router.Deps{
		Listings: repo.NewListingRepo(db, log.Named("listings"), qt),
		Tags:     repo.NewTagRepo(db, qt),
		Users:    repo.NewUserRepo(db, qt),
		Health:   repo.NewHealthRepo(db, qt),
		IdP:      jwter,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		logger.ToStdLogger(log.Named("http"), zapcore.ErrorLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("urbanvibe api starting",
		zap.String("env", cfg.App.Env),
		zap.String("addr", addr),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins),
	)
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("http server", zap.Error(err))
		return
	}
	log.Info("urbanvibe api stopped gracefully")
}
