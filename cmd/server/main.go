// Command server runs the NeuralFlow marketing site: the landing page, the
// marketing content API and the submission gateway.
//
// @title           NeuralFlow SaaS
// @version         1.0
// @description     The Future of Business Intelligence
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/neuralflow-site/internal/config"
	"github.com/tbourn/neuralflow-site/internal/content"
	httpapi "github.com/tbourn/neuralflow-site/internal/http"
	"github.com/tbourn/neuralflow-site/internal/observability"
	"github.com/tbourn/neuralflow-site/internal/repo"
	"github.com/tbourn/neuralflow-site/internal/services"
	"github.com/tbourn/neuralflow-site/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	gin.SetMode(cfg.GinMode)

	sysutil.ConfigureLogger(os.Stdout, cfg.LogPretty, cfg.ServiceName)
	sysutil.SetLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	catalog, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ContentPath).Msg("content catalog")
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store")
	}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, store, catalog, cfg); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.StoreBackend).
			Str("api_base", cfg.APIBasePath).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := closeStore(); err != nil {
		log.Error().Err(err).Msg("close store")
	}
	if err := shutdownOTel(sctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
}

// openStore builds the submission store selected by STORE_BACKEND and
// returns a func releasing its resources.
func openStore(cfg config.Config) (services.SubmissionStore, func() error, error) {
	if cfg.StoreBackend != config.StoreSQLite {
		return repo.NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, nil, err
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			return nil, nil, err
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return repo.NewGormStore(db), sqlDB.Close, nil
}
