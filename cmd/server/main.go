package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"idorlab/internal/auth"
	"idorlab/internal/cache"
	"idorlab/internal/config"
	"idorlab/internal/db"
	"idorlab/internal/handler"
	"idorlab/internal/logger"
	"idorlab/internal/repository"
	"idorlab/internal/router"
	"idorlab/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.SessionSecret == "change-me" {
		zapLogger.Warn("SESSION_SECRET is not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		zapLogger.Fatal("database init", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zapLogger.Fatal("database migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "idorlab")
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(ctx); err != nil {
		zapLogger.Fatal("redis init", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore, cfg.SessionTTL, zapLogger)
	userService := service.NewUserService(userRepo, projectRepo, noteRepo, zapLogger)
	projectService := service.NewProjectService(projectRepo, zapLogger)
	noteService := service.NewNoteService(noteRepo, zapLogger)
	seedService := service.NewSeedService(repository.NewTransactor(gormDB), cfg.SeedPassword, zapLogger)

	seeded, err := seedService.SeedIfEmpty(ctx)
	if err != nil {
		zapLogger.Fatal("seed database", zap.Error(err))
	}
	if !seeded {
		zapLogger.Info("database already seeded")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	err = router.Register(e, zapLogger,
		router.Services{
			Auth:     authService,
			Users:    userService,
			Projects: projectService,
			Notes:    noteService,
		},
		router.Handlers{
			Auth:     handler.NewAuthHandler(authService, cfg.CookieSecure, zapLogger),
			Pages:    handler.NewPageHandler(userService),
			Projects: handler.NewProjectHandler(projectService),
			Notes:    handler.NewNoteHandler(noteService),
		},
	)
	if err != nil {
		zapLogger.Fatal("register routes", zap.Error(err))
	}

	addr := ":" + cfg.ServerPort
	go func() {
		zapLogger.Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown", zap.Error(err))
	}
}
