package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/admin"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/catalog"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cep"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/checkout"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/notify"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/session"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	h "github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/http"
)

type Config struct {
	HTTPPort        string
	CatalogDBPath   string
	CatalogMigr     string
	OrdersMigr      string
	RedisAddr       string
	KafkaBrokers    string
	AdminPassword   string
	WhatsAppNumber  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "gameplanet.db"),
		CatalogMigr:     getEnv("CATALOG_MIGRATIONS_PATH", "./migrations/catalog"),
		OrdersMigr:      getEnv("ORDERS_MIGRATIONS_PATH", "./migrations/orders"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "gameplanet2025"),
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "5548991521638"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("game-planet-store starting...")

	cfg := loadConfig()
	ctx := context.Background()

	// Catalog setup
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()

	if err := catalogRepo.RunMigrations(cfg.CatalogMigr); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}

	cat, err := catalog.Load(ctx, catalogRepo)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products", len(cat.All()))

	// Orders database setup
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	creds := &order.Credentials{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              dbPort,
		User:              getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "gameplanet"),
		MigrationsDirPath: cfg.OrdersMigr,
	}

	orderRepo, err := order.NewPostgresRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to orders database: %v", err)
	}
	defer orderRepo.Close()

	if err := orderRepo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run orders migrations: %v", err)
	}
	log.Println("Orders migrations completed")

	// Redis setup; sessions fall back to memory when unavailable
	var snapshotStore session.SnapshotStore
	var tokenStore admin.TokenStore = admin.NewMemoryTokenStore()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, sessions are memory-only: %v", cfg.RedisAddr, err)
	} else {
		snapshotStore = session.NewRedisStore(redisClient)
		tokenStore = admin.NewRedisTokenStore(redisClient)
	}
	defer redisClient.Close()

	// Kafka publisher is optional
	var events checkout.EventPublisher
	if cfg.KafkaBrokers != "" {
		publisher := notify.NewPublisher(cfg.KafkaBrokers)
		defer publisher.Close()
		events = publisher
		log.Printf("Publishing order events to %s", cfg.KafkaBrokers)
	}

	sessions := session.NewManager(snapshotStore, checkout.Config{
		Store:    orderRepo,
		Events:   events,
		WhatsApp: notify.NewWhatsApp(cfg.WhatsAppNumber),
	})

	router := h.NewRouter(h.RouterConfig{
		Catalog:        cat,
		Sessions:       sessions,
		CEP:            cep.NewClient(),
		Admin:          admin.NewService(orderRepo, tokenStore, cfg.AdminPassword),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "game-planet-store"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
