package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productos-api/config"
	"productos-api/internal/delivery/http/middleware"
	"productos-api/internal/delivery/http/router"
	v1 "productos-api/internal/delivery/http/v1"
	"productos-api/internal/domain"
	"productos-api/internal/infrastructure/cache"
	"productos-api/internal/repository/memory"
	pgxrepo "productos-api/internal/repository/pgx"
	"productos-api/internal/usecase"
	pkgcache "productos-api/pkg/cache"
	"productos-api/pkg/logger"
	"productos-api/pkg/utils"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const (
	serviceName    = "productos-api"
	serviceVersion = "1.0.0"
	// DB_DSN=memory runs against an in-process store.
	memoryDSN = "memory"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	repo, txManager, closeDB, err := openStore(cmd.Context(), cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open product store")
		return err
	}
	defer closeDB()

	var productCache pkgcache.CacheService = cache.NewNoopCache()
	if cfg.CacheProductTTL > 0 {
		productCache = cache.NewMemoryCache(cfg.CacheProductTTL, 2*cfg.CacheProductTTL)
	}

	catalogUC := usecase.NewCatalogUsecase(repo, txManager, productCache, cfg)
	productHandler := v1.NewProductHandler(catalogUC, cfg.DefaultPageSize)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	// sweep every minute, forget clients idle for 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
		proxies,
	)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: router.New(productHandler, router.Options{
			AllowedOrigin: cfg.AllowedOrigin,
			RateLimiter:   rateLimiter,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.ServiceStart(serviceName, serviceVersion, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		rateLimiter.Shutdown()
		log.Error().Err(err).Msg("Server failed to start")
		return err
	case <-quit:
	}

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	logger.ServiceStop(serviceName)
	return nil
}

// openStore connects the repository selected by DB_DSN.
func openStore(ctx context.Context, cfg *config.Config) (domain.ProductRepository, domain.TransactionManager, func(), error) {
	table, err := pgxrepo.TableByName(cfg.ProductsTable)
	if err != nil {
		return nil, nil, nil, err
	}
	createTable, err := pgxrepo.TableByName(cfg.CreateTable)
	if err != nil {
		return nil, nil, nil, err
	}
	if createTable.Name != table.Name {
		logger.Warn().
			Str("create_table", createTable.Name).
			Str("products_table", table.Name).
			Msg("Products are created in a different table than the one searched; set CREATE_TABLE to change this")
	}

	if cfg.DBUrl == memoryDSN {
		logger.Warn().Msg("Using in-memory product store; data is lost on exit")
		return memory.NewProductRepository(table.Name, createTable.Name), memory.TransactionManager{}, func() {}, nil
	}

	pool, err := pgxrepo.NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info().Msg("Successfully connected to PostgreSQL via pgx")

	return pgxrepo.NewProductRepository(pool, table, createTable), pgxrepo.NewTransactionManager(pool), pool.Close, nil
}
