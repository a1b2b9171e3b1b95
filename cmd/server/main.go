package main

import (
	"collection-route-service/internal/adapters/cache"
	"collection-route-service/internal/adapters/fill"
	"collection-route-service/internal/adapters/repositories"
	"collection-route-service/internal/api"
	"collection-route-service/internal/config"
	"collection-route-service/internal/domain"
	"collection-route-service/internal/ports"
	"collection-route-service/internal/services"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, sensor backend, Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/layouts.json")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo layouts on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	store, err := loadFloors(repositories.NewSqliteLayoutRepository(db))
	if err != nil {
		log.Fatal(err)
	}

	provider, err := buildFillProvider(db)
	if err != nil {
		log.Fatal(err)
	}

	dwell := services.ComposeOptions{
		// Defaults match the cart's 8 ticks/second cadence: 4s to empty
		// a due cluster, 1s for a quick check on patrol.
		ServiceDwellTicks: getEnvInt("SERVICE_DWELL_TICKS", 32),
		CheckDwellTicks:   getEnvInt("CHECK_DWELL_TICKS", 8),
	}

	router := api.NewRouter(store, provider, dwell)

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

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Fatalf("%s must be a non-negative integer, got %q", key, raw)
	}
	return v
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

func loadFloors(repo ports.LayoutRepository) (*services.FloorStore, error) {
	layouts, err := repo.ListLayouts(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load floors: %w", err)
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("load floors: no floor layouts in database")
	}

	floors := make([]*domain.Floor, 0, len(layouts))
	for _, l := range layouts {
		f, err := domain.NewFloor(l)
		if err != nil {
			return nil, fmt.Errorf("load floors: %w", err)
		}
		floors = append(floors, f)
	}

	return services.NewFloorStore(floors), nil
}

// buildFillProvider picks the fill-level source: the sensor backend's
// REST API when SENSOR_API_URL is set, otherwise the latest readings
// stored in SQLite. A Redis cache wraps either one when REDIS_ADDR is
// set.
func buildFillProvider(db *sql.DB) (ports.FillLevelProvider, error) {
	var provider ports.FillLevelProvider

	if baseURL := strings.TrimSpace(os.Getenv("SENSOR_API_URL")); baseURL != "" {
		p, err := fill.NewHTTPFillProvider(baseURL)
		if err != nil {
			return nil, fmt.Errorf("build fill provider: %w", err)
		}
		provider = p
	} else {
		provider = fill.NewSqliteFillProvider(db)
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return provider, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ttl := time.Duration(getEnvInt("FILL_CACHE_TTL_SECONDS", 30)) * time.Second
	cached, err := cache.NewRedisFillCache(client, provider, ttl)
	if err != nil {
		return nil, fmt.Errorf("build fill provider: %w", err)
	}

	return cached, nil
}
