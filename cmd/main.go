package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-inventory/docs"
	"github.com/sbilibin2017/gw-inventory/internal/handlers"
	"github.com/sbilibin2017/gw-inventory/internal/jwt"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/metrics"
	"github.com/sbilibin2017/gw-inventory/internal/middlewares"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/passwords"
	"github.com/sbilibin2017/gw-inventory/internal/repositories"
	"github.com/sbilibin2017/gw-inventory/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost   string
	AppPort   string
	LogLevel  string
	LogFormat string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey        string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	BcryptCost          int
	LowStockThreshold   int
	FlagCacheTTL        time.Duration
}

// @title gw-inventory API
// @version 1.0.0
// @description Inventory service with session based authentication
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, logging and session configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", logger.FormatJSON)

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Kafka config, publishing is off without brokers
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "inventory-events")

	// Session config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	ttl, err := getInt("SESSION_TTL_SECOND", "1209600")
	if err != nil {
		return
	}
	cfg.SessionTTL = time.Duration(ttl) * time.Second
	if cfg.SessionCookieSecure, err = strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false")); err != nil {
		err = fmt.Errorf("SESSION_COOKIE_SECURE: %w", err)
		return
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", "10"); err != nil {
		return
	}

	// Inventory config
	if cfg.LowStockThreshold, err = getInt("LOW_STOCK_THRESHOLD", "5"); err != nil {
		return
	}
	flagTTL, err := getInt("FLAG_CACHE_TTL_SECOND", "30")
	if err != nil {
		return
	}
	cfg.FlagCacheTTL = time.Duration(flagTTL) * time.Second

	return
}

// run initializes the logger, database, Redis, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for inventory events
	var events services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		events = kw
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Initialize JWT service and password hasher
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.SessionTTL),
	)
	hasher := passwords.New(passwords.WithCost(cfg.BcryptCost))

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	categoryReadRepo := repositories.NewCategoryReadRepository(db, middlewares.GetTxFromContext)
	categoryWriteRepo := repositories.NewCategoryWriteRepository(db, middlewares.GetTxFromContext)
	productReadRepo := repositories.NewProductReadRepository(db, middlewares.GetTxFromContext)
	productWriteRepo := repositories.NewProductWriteRepository(db, middlewares.GetTxFromContext)
	sessionRepo := repositories.NewSessionRepository(rdb)
	flagRepo := repositories.NewFeatureFlagRepository(rdb)

	if err := flagRepo.SeedFlags(ctx, map[string]bool{
		models.FlagNewUI:     false,
		models.FlagDarkMode:  false,
		models.FlagExportCSV: false,
	}); err != nil {
		return fmt.Errorf("failed to seed feature flags: %w", err)
	}

	// Initialize services
	sessionService := services.NewSessionService(userReadRepo, sessionRepo, tokens, cfg.SessionTTL)
	authService := services.NewAuthService(userReadRepo, userWriteRepo, hasher, sessionService)
	productService := services.NewProductService(
		productReadRepo, productWriteRepo, categoryReadRepo,
		events, middlewares.AfterCommit, cfg.LowStockThreshold,
	)
	categoryService := services.NewCategoryService(categoryReadRepo, categoryWriteRepo)
	flagService := services.NewFeatureFlagService(flagRepo, cfg.FlagCacheTTL)
	reportService := services.NewReportService(productReadRepo, flagService, productService.Threshold())

	appMetrics := metrics.New()
	cookie := handlers.SessionCookie{Name: tokens.CookieName, Secure: cfg.SessionCookieSecure, TTL: cfg.SessionTTL}

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(appMetrics.Middleware)

	txMiddleware := middlewares.TxMiddleware(db)

	// Public routes
	r.With(txMiddleware).Post("/register", handlers.NewRegisterHandler(authService, cookie, appMetrics))
	r.Post(handlers.LoginPath, handlers.NewLoginHandler(authService, cookie, appMetrics))
	r.Post("/logout", handlers.NewLogoutHandler(authService, tokens, cookie))
	r.Method(http.MethodGet, "/metrics", appMetrics.Handler())

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.SessionGuard(tokens, sessionService, handlers.LoginPath, appMetrics))

		r.Get(handlers.DashboardPath, handlers.NewDashboardHandler(reportService))
		r.Get("/export/csv", handlers.NewExportCSVHandler(reportService, time.Now))

		r.Get("/products", handlers.NewListProductsHandler(productService))
		r.Get("/products/low-stock", handlers.NewLowStockHandler(productService))
		r.Get("/products/{id}", handlers.NewGetProductHandler(productService))
		r.Get("/categories", handlers.NewListCategoriesHandler(categoryService))

		r.Group(func(r chi.Router) {
			r.Use(txMiddleware)
			r.Post("/products", handlers.NewCreateProductHandler(productService))
			r.Put("/products/{id}", handlers.NewUpdateProductHandler(productService))
			r.Delete("/products/{id}", handlers.NewDeleteProductHandler(productService))
			r.Post("/categories", handlers.NewCreateCategoryHandler(categoryService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
