// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики
// и собирает всё в HTTP-сервер и планировщик.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/config"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/admin"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/badges"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/contact"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/education"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/market"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/notes"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/points"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/profiles"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/quotes"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/streak"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/tasks"
	"github.com/BlqckRiad/CepteMotivasyon/internal/jobs"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server/middleware"
)

// shutdownTimeout — сколько ждём завершения активных запросов при остановке.
const shutdownTimeout = 15 * time.Second

// App содержит все компоненты приложения.
type App struct {
	Server    *http.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool

	limiter   *middleware.RateLimiter
	firestore *firestore.Client // nil, если цитаты берутся из встроенного списка
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Проверка токенов зависит только от конфига: ошибка здесь не должна
	// оставлять открытыми пул БД и клиент Firestore.
	verifier, err := middleware.NewVerifier(cfg)
	if err != nil {
		return nil, err
	}

	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool, migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	clock := common.NewClock(cfg.AppTimezone)

	// === 2. Репозитории ===
	profileRepo := profiles.NewRepository(pool)
	taskRepo := tasks.NewRepository(pool)
	badgeRepo := badges.NewRepository(pool)
	pointRepo := points.NewRepository(pool)
	marketRepo := market.NewRepository(pool)
	noteRepo := notes.NewRepository(pool)
	educationRepo := education.NewRepository(pool)
	contactRepo := contact.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 3. Сервисы ===
	profileService := profiles.NewService(profileRepo)
	taskService := tasks.NewService(taskRepo, clock)
	streakService := streak.NewService(taskRepo, profileRepo, clock)
	badgeService := badges.NewService(badgeRepo)
	pointService := points.NewService(pointRepo)
	marketService := market.NewService(marketRepo)
	noteService := notes.NewService(noteRepo)
	educationService := education.NewService(educationRepo)
	contactService := contact.NewService(contactRepo)
	adminService := admin.NewService(adminRepo, cfg.AdminPasswordHash, cfg.AdminSessionTTL)

	// Переключение задания пересчитывает серию, а значки следят за серией,
	// счётчиком заданий и днями входа.
	taskService.OnToggle(streakService.TaskToggled)
	if cfg.FeatureBadgesEnabled {
		taskService.OnToggle(badgeService.TaskToggled)
		taskService.OnAssign(badgeService.SetAssigned)
		streakService.OnChange(badgeService.StreakChanged)
	}

	// === 4. Цитаты ===
	var fsClient *firestore.Client
	var quoteService *quotes.Service
	if cfg.FeatureQuotesEnabled {
		source, client, err := newQuoteSource(ctx, cfg)
		if err != nil {
			pool.Close()
			return nil, err
		}
		fsClient = client
		quoteService = quotes.NewService(source)
		if err := quoteService.Refresh(ctx); err != nil {
			// Не критично: Random отдаст запасную цитату, cron попробует снова
			log.WithError(err).Warn("Не удалось загрузить цитаты при старте")
		}
	}

	// === 5. Обработчики ===
	api := []server.Registrar{
		profiles.NewHandler(profileService),
		tasks.NewHandler(taskService, clock),
		streak.NewHandler(streakService),
		points.NewHandler(pointService),
		notes.NewHandler(noteService),
		education.NewHandler(educationService),
		contact.NewHandler(contactService),
	}
	api = append(api, featureRoutes(cfg.FeatureBadgesEnabled, "/badges", func() server.Registrar {
		return badges.NewHandler(badgeService)
	}))
	api = append(api, featureRoutes(cfg.FeatureMarketEnabled, "/market", func() server.Registrar {
		return market.NewHandler(marketService)
	}))
	api = append(api, featureRoutes(cfg.FeatureQuotesEnabled, "/quotes", func() server.Registrar {
		return quotes.NewHandler(quoteService)
	}))

	adminHandler := admin.NewHandler(adminService, taskService, marketService, badgeService, pointService, educationService, contactService)

	// === 6. HTTP ===
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	router := server.NewRouter(server.Deps{
		Verifier: verifier,
		OnFirstSeen: func(ctx context.Context, id middleware.Identity) error {
			return profileService.EnsureProfile(ctx, id.UserID, id.Email)
		},
		Limiter:        limiter,
		RequestTimeout: cfg.HTTPRequestTimeout,
		TrustProxy:     cfg.HTTPTrustProxy,
		API:            api,
		Admin:          adminHandler,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// === 7. Планировщик задач ===
	var refresher jobs.QuoteRefresher
	if quoteService != nil {
		refresher = quoteService
	}
	scheduler := jobs.NewScheduler(clock.Location(), streakService, refresher)

	return &App{
		Server:    srv,
		Scheduler: scheduler,
		DB:        pool,
		limiter:   limiter,
		firestore: fsClient,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены ctx,
// после чего корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", a.Server.Addr).Info("HTTP-сервер запущен")
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP-сервер: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка HTTP-сервера: %w", err)
	}
	log.Info("HTTP-сервер остановлен")
	return nil
}

// Close освобождает ресурсы: лимитер, клиент Firestore, пул БД.
func (a *App) Close() {
	a.limiter.Close()
	if a.firestore != nil {
		if err := a.firestore.Close(); err != nil {
			log.WithError(err).Warn("Ошибка закрытия клиента Firestore")
		}
	}
	a.DB.Close()
}

// newQuoteSource подключается к Firestore, если задан проект,
// иначе возвращает встроенный список цитат.
func newQuoteSource(ctx context.Context, cfg *config.Config) (quotes.Source, *firestore.Client, error) {
	if cfg.FirestoreProjectID == "" {
		log.Info("FIRESTORE_PROJECT_ID не задан, используем встроенные цитаты")
		return quotes.NewStaticSource(), nil, nil
	}

	var opts []option.ClientOption
	if cfg.FirestoreCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка подключения к Firestore: %w", err)
	}

	log.WithFields(log.Fields{
		"project":    cfg.FirestoreProjectID,
		"collection": cfg.FirestoreQuotesCollection,
	}).Info("Цитаты читаются из Firestore")
	return quotes.NewFirestoreSource(client, cfg.FirestoreQuotesCollection), client, nil
}

// featureRoutes возвращает обработчик функции или заглушку, если флаг выключен.
func featureRoutes(enabled bool, prefix string, build func() server.Registrar) server.Registrar {
	if !enabled {
		log.WithField("prefix", prefix).Info("Функция отключена флагом")
		return server.Disabled(prefix)
	}
	return build()
}
