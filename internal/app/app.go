package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"etbinflation/internal/adapters"
	"etbinflation/internal/adapters/cache"
	"etbinflation/internal/adapters/file"
	"etbinflation/internal/adapters/httpclient"
	"etbinflation/internal/adapters/postgres"
	"etbinflation/internal/api"
	"etbinflation/internal/config"
	"etbinflation/internal/dataset"
	"etbinflation/internal/inflation"
	"etbinflation/internal/inflation/handler"
	"etbinflation/internal/platform/db"
	httpserver "etbinflation/internal/platform/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const startupTimeout = 30 * time.Second

// Run wires the application components, loads the dataset and starts HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	setupLogger(appCfg.Logging)
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, dataset load)
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	var pool *pgxpool.Pool
	if appCfg.UsesPostgres() {
		pool, err = db.Open(startupCtx, appCfg.DbServer)
		if err != nil {
			logrus.WithError(err).Error("Error connecting to db")
			return err
		}
		defer pool.Close()
		logrus.Info("✅ Postgres connection successful")
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	rateSource, cpiSource, err := buildSources(appCfg, pool, baseHTTPClient)
	if err != nil {
		return err
	}
	currentRateClient := buildCurrentRateClient(appCfg.ExchangeRateAPI, baseHTTPClient)

	var conversionCache adapters.ConversionCache
	if appCfg.Cache.MaxItems > 0 {
		c, cacheErr := cache.NewConversionCache(appCfg.Cache.MaxItems)
		if cacheErr != nil {
			return cacheErr
		}
		defer c.Close()
		conversionCache = c
	}

	// Dataset snapshot
	store := dataset.NewStore(dataset.NewLoader(rateSource, cpiSource, currentRateClient), conversionCache)
	if err = store.Reload(startupCtx); err != nil {
		logrus.WithError(err).Error("Failed to load dataset")
		return err
	}
	logrus.Info("✅ Dataset loaded")

	if appCfg.Data.RefreshIntervalSec > 0 {
		scheduler := dataset.NewScheduler(store, time.Duration(appCfg.Data.RefreshIntervalSec)*time.Second)
		// Ensure scheduler stops before DB pool closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	inflationService := inflation.NewService(store, conversionCache)
	inflationHandler := handler.NewInflationHandler(inflation.NewValidator(), inflationService)
	router := api.NewRouter(inflationHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func setupLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

func buildSources(cfg *config.AppConfig, pool *pgxpool.Pool, httpClient *http.Client) (adapters.RateTableSource, adapters.CPISource, error) {
	var rateSource adapters.RateTableSource
	switch cfg.Data.Rates.Source {
	case config.SourceFile:
		rateSource = file.NewRateTableSource(cfg.Data.Rates.Path)
	case config.SourcePostgres:
		if pool == nil {
			return nil, nil, errors.New("postgres rate source requires a db pool")
		}
		rateSource = postgres.NewRateTableRepository(pool)
	default:
		return nil, nil, fmt.Errorf("unsupported rates source %q", cfg.Data.Rates.Source)
	}

	var cpiSource adapters.CPISource
	switch cfg.Data.CPI.Source {
	case config.SourceFile:
		cpiSource = file.NewCPISource(cfg.Data.CPI.Path)
	case config.SourcePostgres:
		if pool == nil {
			return nil, nil, errors.New("postgres cpi source requires a db pool")
		}
		cpiSource = postgres.NewCPIRepository(pool)
	case config.SourceBLS:
		cpiSource = httpclient.NewBLSClient(httpClient, cfg.BLSAPI.BaseURL, cfg.BLSAPI.SeriesID, cfg.BLSAPI.APIKey, cfg.BLSAPI.StartYear)
	default:
		return nil, nil, fmt.Errorf("unsupported cpi source %q", cfg.Data.CPI.Source)
	}
	return rateSource, cpiSource, nil
}

// buildCurrentRateClient returns nil when no exchange rate api key is configured.
func buildCurrentRateClient(cfg config.ExchangeRateAPI, httpClient *http.Client) adapters.CurrentRateClient {
	if cfg.APIKey == "" {
		return nil
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	return httpclient.NewExchangeRateClient(httpClient, fmt.Sprintf("%s/%s/latest", baseURL, cfg.APIKey))
}
