package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-gin-event-map/config"
	"go-gin-event-map/internal/cache"
	"go-gin-event-map/internal/database"
	"go-gin-event-map/internal/handler"
	"go-gin-event-map/internal/metrics"
	"go-gin-event-map/internal/repository"
	"go-gin-event-map/internal/service"
	"go-gin-event-map/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	log := logger.WithComponent("main")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}
	if err := logger.SetLevel(cfg.Server.LogLevel); err != nil {
		log.Fatal("Invalid LOG_LEVEL", zap.String("level", cfg.Server.LogLevel), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	eventRepo, venueRepo, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize event store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	if cfg.Store.VenueCacheEnabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
		venueRepo = cache.NewVenueCache(rdb, venueRepo, cfg.Store.VenueCacheTTL, m)
		log.Info("Venue cache enabled", zap.Duration("ttl", cfg.Store.VenueCacheTTL))
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(
		service.NewEventService(eventRepo, venueRepo, m),
		service.NewVenueService(venueRepo, eventRepo, m),
		reg,
	)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", cfg.Server.Addr), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	_ = logger.L.Sync()
}

// openStore 依 EVENT_STORE 建立 repository
func openStore(cfg *config.Config) (repository.EventRepository, repository.VenueRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := database.InitDatabase(&cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.EnsureSchema(context.Background(), pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return repository.NewEventRepository(pool), repository.NewVenueRepository(pool), pool.Close, nil
	default:
		d, err := repository.LoadDataset(cfg.Store.SeedFile)
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := repository.NewMemoryStore(d)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.WithComponent("main").Info("Loaded seed dataset",
			zap.String("file", cfg.Store.SeedFile),
			zap.Int("events", len(d.Events)),
			zap.Int("venues", len(d.Venues)),
		)
		return store.Events(), store.Venues(), func() {}, nil
	}
}
