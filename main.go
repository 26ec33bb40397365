package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner/config"
	"trip-planner/data"
	"trip-planner/handlers"
	"trip-planner/logging"
	"trip-planner/metrics"
	"trip-planner/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	canonical, err := data.Canonical()
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	// Redis is shared by the redis state store and the search cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = services.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Redis unavailable: %v", err)
		}
		defer redisClient.Close()
	}

	store, closeStore, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s state store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	initial, source := services.LoadInitial(ctx, cfg.ShareFragment, store, canonical, logger)
	logger.Info(ctx, "state ready", logging.String("source", string(source)), logging.String("store", cfg.StoreBackend))

	optimizer := services.NewRouteOptimizer(services.MissingCoordsPolicy(cfg.RouteMissingCoords))
	session := services.NewSession(initial, canonical, store, optimizer, logger, collector)
	defer session.Wait()

	var searcher services.PlaceSearcher = services.NewNominatimSearcher(cfg.NominatimServer, cfg.SearchCitySuffix)
	if redisClient != nil {
		searcher = services.NewCachedSearcher(searcher, redisClient, cfg.SearchCacheTTL, logger)
	}

	var auth *services.AuthService
	if cfg.AuthEnabled() {
		auth = services.NewAuthService(cfg.AuthPasswordHash, cfg.JWTSecret)
	}

	r := handlers.NewRouter(handlers.RouterConfig{
		Session:        session,
		Searcher:       searcher,
		Auth:           auth,
		Metrics:        collector,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	logger.Info(context.Background(), "server starting", logging.String("port", cfg.Port), logging.Any("auth", auth != nil))
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// openStore builds the configured state store and its cleanup.
func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (services.StateStore, func(), error) {
	noop := func() {}
	switch cfg.StoreBackend {
	case "file":
		store, err := services.NewFileStore(cfg.StateFile)
		return store, noop, err
	case "redis":
		return services.NewRedisStore(redisClient), noop, nil
	case "mongo":
		store, err := services.NewMongoStore(ctx, cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close(context.Background()) }, nil
	case "sqlite":
		store, err := services.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil
	default:
		return services.NewMemoryStore(), noop, nil
	}
}
