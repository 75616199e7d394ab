package main

import (
	"context"
	"log"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"idorlab/internal/config"
	"idorlab/internal/db"
	"idorlab/internal/logger"
	"idorlab/internal/repository"
	"idorlab/internal/service"
)

func main() {
	reset := pflag.Bool("reset", false, "drop all tables and seed from scratch")
	pflag.Parse()

	cfg := config.Load()

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		zapLogger.Fatal("database init", zap.Error(err))
	}

	if *reset {
		zapLogger.Info("dropping all tables")
		err = db.Reset(gormDB)
	} else {
		err = db.Migrate(gormDB)
	}
	if err != nil {
		zapLogger.Fatal("prepare schema", zap.Error(err))
	}

	seeder := service.NewSeedService(repository.NewTransactor(gormDB), cfg.SeedPassword, zapLogger)

	ctx := context.Background()
	seeded, err := seeder.SeedIfEmpty(ctx)
	if err != nil {
		zapLogger.Fatal("seed database", zap.Error(err))
	}
	if !seeded {
		zapLogger.Info("database already holds users, nothing to seed")
		return
	}
	zapLogger.Info("seed completed", zap.Bool("reset", *reset))
}
