package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/schoolward/authkit/authapi"
	"github.com/schoolward/authkit/config"
	"github.com/schoolward/authkit/credentials"
	"github.com/schoolward/authkit/sessionauth"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := credentials.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to open credential store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Migrate(migrateCtx); err != nil {
		cancel()
		logger.Error("failed to migrate credential store", "error", err)
		os.Exit(1)
	}
	cancel()

	sessionOpts := []sessionauth.Option{
		sessionauth.WithSecret([]byte(cfg.Auth.Secret)),
		sessionauth.WithTokenTTL(cfg.Auth.TokenTTL),
		sessionauth.WithClockSkew(cfg.Auth.ClockSkew),
		sessionauth.WithCookie(cfg.Auth.CookieName),
		sessionauth.WithLogger(logger),
	}
	if cfg.Auth.ExposePasswordClaim {
		sessionOpts = append(sessionOpts, sessionauth.WithExposePasswordClaim())
	}
	sessionCfg, err := sessionauth.NewConfig(sessionOpts...)
	if err != nil {
		logger.Error("invalid session configuration", "error", err)
		os.Exit(1)
	}

	serverOpts := []authapi.ServerOption{}
	var limiter *authapi.LoginLimiter
	if cfg.RateLimit.LoginAttempts > 0 {
		limiter = authapi.NewLoginLimiter(cfg.RateLimit.LoginAttempts, cfg.RateLimit.Window)
		serverOpts = append(serverOpts, authapi.WithLoginLimiter(limiter))
	}
	boundary := authapi.New(sessionCfg, store, serverOpts...)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	boundary.Register(r)

	// Background health ping of the credential store, plus limiter
	// housekeeping. The only scheduled work this service runs.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Health.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Warn("credential store unreachable", "error", err)
		} else {
			logger.Debug("credential store healthy")
		}
		if limiter != nil {
			limiter.Prune()
		}
	})
	if err != nil {
		logger.Error("invalid health cron spec", "spec", cfg.Health.CronSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("auth server listening", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
