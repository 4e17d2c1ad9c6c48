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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if !timezone.IsValid(cfg.App.Timezone) {
		log.Warn().Str("timezone", cfg.App.Timezone).Msg("unknown timezone, falling back to default")
	}
	clock := timezone.NewClock(timezone.Location(cfg.App.Timezone))

	// ======================================================
	// METRICS
	// ======================================================
	var (
		m              *metrics.Metrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		log.Info().Str("path", cfg.Metrics.Path).Msg("metrics enabled")
	}

	// ======================================================
	// STORAGE
	// ======================================================
	deps := routes.Deps{Metrics: m, Clock: clock, MetricsHandler: metricsHandler}
	var (
		auditStore interface {
			audit.Store
			audit.Reader
		}
		closeDB = func() {}
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if sqlDB, err := db.DB(); err == nil {
			closeDB = func() { _ = sqlDB.Close() }
		}

		deps.Tx = txmanager.New(db, cfg.Booking.TxMaxAttempts, m)
		deps.Bookings = infraRepo.NewBookingGormRepository(db)
		deps.Barbers = infraRepo.NewBarberGormRepository(db)
		deps.Catalog = infraRepo.NewCatalogGormRepository(db)
		deps.Reviews = infraRepo.NewReviewGormRepository(db)
		auditStore = audit.NewGormStore(db)

	case config.DriverMemory:
		store := memory.NewStore()
		seedDemo(store, cfg, clock)

		deps.Tx = store
		deps.Bookings = store
		deps.Barbers = store
		deps.Catalog = store
		deps.Reviews = store
		auditStore = store
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	}

	// ======================================================
	// CACHE
	// ======================================================
	switch cfg.Cache.Driver {
	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Cache.Redis.Addr).Msg("failed to connect to redis")
		}
		defer client.Close()
		deps.Cache = cache.NewRedisCache(client)

	case config.DriverMemory:
		deps.Cache = cache.NewMemoryCache()
	}
	deps.Invalidator = cache.NewInvalidator(deps.Cache, m)

	healCtx, stopHeal := context.WithCancel(context.Background())
	defer stopHeal()
	go deps.Invalidator.Heal(healCtx, 5*time.Second)

	dispatcher := audit.NewDispatcher(audit.New(auditStore))
	deps.Audit = dispatcher
	deps.AuditReader = auditStore

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("db", cfg.DB.Driver).Str("cache", cfg.Cache.Driver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	stopHeal()
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
	closeDB()

	log.Info().Msg("server stopped")
}
