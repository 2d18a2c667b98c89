package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/karravan/booking-backend/internal/config"
	"github.com/karravan/booking-backend/internal/db"
	"github.com/karravan/booking-backend/internal/logger"
	"github.com/karravan/booking-backend/internal/repository"
	"github.com/karravan/booking-backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	userRepo := repository.NewUserRepository(dbConn)
	caravanRepo := repository.NewCaravanRepository(dbConn)
	paymentRepo := repository.NewPaymentRepository(dbConn)

	seedService := service.NewSeedService(userRepo, caravanRepo, paymentRepo)

	if err := seedService.SeedData(ctx, int(cfg.SeedHosts), int(cfg.SeedGuests), int(cfg.SeedCaravans)); err != nil {
		log.Fatalf("main: ошибка генерации данных: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"hosts":    cfg.SeedHosts,
		"guests":   cfg.SeedGuests,
		"caravans": cfg.SeedCaravans,
	}).Info("main: демонстрационные данные созданы")
}

// safeClose закрывает соединение с базой, логируя ошибку.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		log.Printf("main: ошибка закрытия соединения с базой: %v", err)
	}
}
