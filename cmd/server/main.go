package main

import (
	"database/sql"
	"dvpr-route-scheduler/internal/adapters/cache"
	"dvpr-route-scheduler/internal/adapters/distance"
	"dvpr-route-scheduler/internal/adapters/repositories"
	"dvpr-route-scheduler/internal/api"
	"dvpr-route-scheduler/internal/api/handlers"
	"dvpr-route-scheduler/internal/assembler"
	"dvpr-route-scheduler/internal/config"
	"dvpr-route-scheduler/internal/ports"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS, optionally Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/catalogue.json")
	port := config.Get("PORT", "8080")
	aroundScope := mustParseFloat(config.Get("AROUND_SCOPE", "100"))
	maxIteration := mustParseInt(config.Get("MAX_ITERATION", "100"))

	orsKey := config.MustGet("ORS_API_KEY")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	distanceCache, geocodeCache, distanceCacheStats := buildCaches(db)

	provider, err := distance.NewORSDistanceProvider(orsKey, distanceCache, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	catalogue := repositories.NewSqliteCatalogueRepository(db)
	asm := assembler.New(catalogue, provider)

	router := api.NewRouter(asm, aroundScope, maxIteration, distanceCacheStats)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCaches wires the SQLite-backed distance/geocode caches, and
// fronts the distance cache with Redis when REDIS_ADDR is set — for
// multi-instance deployments that want to share one distance-oracle
// cache instead of each keeping its own SQLite file warm. The third
// return value reports that tier's hit/miss counters, or nil when no
// Redis tier is configured.
func buildCaches(db *sql.DB) (ports.DistanceCache, ports.GeocodeCache, func() handlers.CacheStats) {
	sqlDistanceCache := cache.NewSqliteDistanceCache(db)
	geocodeCache := cache.NewSqliteGeocodeCache(db)

	redisAddr := config.Get("REDIS_ADDR", "")
	if strings.TrimSpace(redisAddr) == "" {
		return sqlDistanceCache, geocodeCache, nil
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	redisCache := cache.NewRedisDistanceCache(client, sqlDistanceCache)
	stats := func() handlers.CacheStats {
		s := redisCache.Stats()
		return handlers.CacheStats{Hits: s.Hits, Misses: s.Misses}
	}
	return redisCache, geocodeCache, stats
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func mustParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("invalid float config value %q: %v", s, err)
	}
	return v
}

func mustParseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		log.Fatalf("invalid int config value %q: %v", s, err)
	}
	return v
}
