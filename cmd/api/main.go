package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dining-map/internal/config"
	httpDelivery "github.com/dining-map/internal/delivery/http"
	"github.com/dining-map/internal/delivery/http/handler"
	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/logger"
	"github.com/dining-map/internal/repository/cache"
	"github.com/dining-map/internal/repository/staticfile"
	"github.com/dining-map/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Dining Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("data_file", cfg.Data.File),
	)

	// 3. Load the restaurant dataset (Point Store, immutable after load)
	restaurantRepo, err := staticfile.Load(cfg.Data.File, log)
	if err != nil {
		log.Fatal("Failed to load restaurant dataset", zap.Error(err))
	}
	log.Info("Point store ready", zap.Int("restaurants", restaurantRepo.Count()))

	// 4. Optional Redis-backed cluster cache; degraded mode without it
	var cacheRepo repository.CacheRepository
	var redisConn *cache.Redis
	if cfg.Cache.Enabled {
		redisConn, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, running without result cache", zap.Error(err))
		} else {
			cacheRepo = cache.NewCacheRepository(redisConn)
			defer func() {
				if err := redisConn.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}()
		}
	}

	// 5. Initialize Use Cases
	filterUC := usecase.NewFilterUseCase(restaurantRepo, log)

	clusterUC := usecase.NewClusterUseCase(
		cacheRepo,
		log,
		cfg.Cluster,
		cfg.Cache.ClustersCacheTTL,
	)

	searchUC := usecase.NewSearchUseCase(log, cfg.Search)
	cityIndex := searchUC.BuildCityIndex(restaurantRepo.All())

	statsUC := usecase.NewStatsUseCase(
		restaurantRepo,
		cacheRepo,
		cityIndex,
		log,
		cfg.Cache.ClustersCacheTTL,
	)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	clusterHandler := handler.NewClusterHandler(filterUC, clusterUC, log)
	restaurantHandler := handler.NewRestaurantHandler(restaurantRepo, filterUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		clusterHandler,
		restaurantHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
