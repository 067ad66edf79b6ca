package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/raphaelgarcia7/decorrental-api/internal/app"
	"github.com/raphaelgarcia7/decorrental-api/internal/clock"
	"github.com/raphaelgarcia7/decorrental-api/internal/config"
	"github.com/raphaelgarcia7/decorrental-api/internal/messaging"
	"github.com/raphaelgarcia7/decorrental-api/internal/storage/postgres"
	transporthttp "github.com/raphaelgarcia7/decorrental-api/internal/transport/http"
	"github.com/raphaelgarcia7/decorrental-api/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	var publisher messaging.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	} else {
		publisher = messaging.NewNopPublisher(logger)
	}
	defer func() { _ = publisher.Close() }()

	themeRepo := postgres.NewThemeRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	kitRepo := postgres.NewKitRepository(pool)
	lineQuery := postgres.NewReservationLineQuery(pool)

	checker := app.NewAvailabilityChecker(catalogRepo, lineQuery)
	reservationSvc := app.NewReservationService(themeRepo, catalogRepo, checker, publisher, clock.NewSystem(), logger)
	themeSvc := app.NewThemeService(themeRepo)
	catalogSvc := app.NewCatalogService(catalogRepo)
	kitSvc := app.NewKitService(kitRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/themes", transporthttp.HandleThemes(themeSvc))
	mux.Handle("/themes/", transporthttp.HandleThemeTree(themeSvc, reservationSvc))
	mux.Handle("/item-types", transporthttp.HandleItemTypes(catalogSvc))
	mux.Handle("/item-types/", transporthttp.HandleItemTypeTree(catalogSvc))
	mux.Handle("/categories", transporthttp.HandleCategories(catalogSvc))
	mux.Handle("/categories/", transporthttp.HandleCategoryTree(catalogSvc))
	mux.Handle("/kits", transporthttp.HandleKits(kitSvc))
	mux.Handle("/kits/", transporthttp.HandleKitTree(kitSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
