// Package main — точка входа API-сервера CepteMotivasyon.
// Останавливается по SIGINT/SIGTERM: сначала HTTP, потом cron, потом БД.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/app"
	"github.com/BlqckRiad/CepteMotivasyon/internal/config"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}
	configureLogging(cfg)

	if err := run(cfg); err != nil {
		log.WithError(err).Fatal("Сервер завершился с ошибкой")
	}
	log.Info("Сервер остановлен")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Scheduler.Start(ctx); err != nil {
		return err
	}
	defer application.Scheduler.Stop()

	log.WithFields(log.Fields{
		"env":      cfg.AppEnv,
		"timezone": cfg.AppTimezone,
		"auth":     cfg.AuthMode,
	}).Info("Сервер готов к работе")

	return application.Run(ctx)
}

// configureLogging: в production — JSON для сборщика логов, локально — текст.
func configureLogging(cfg *config.Config) {
	if cfg.AppEnv == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err != nil {
		log.WithField("level", cfg.AppLogLevel).Warn("Неизвестный APP_LOG_LEVEL, оставляем info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
