package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/handlers"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/jobs"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/telemetry"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/repositories/database/pgsql"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils"
	"github.com/marcobahe/projeto-clinihof-sub002/pkg/cache"
	"github.com/marcobahe/projeto-clinihof-sub002/pkg/database"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// @title CliniHOF Backend API
// @version 1.0
// @description Back office API for aesthetic clinics: patients, sales, sessions, costs and commissions.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, cfg.OtelServiceName, cfg.OtelEndpoint, cfg.OtelInsecure, logger)

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	var locker repositories.Locker = cache.NewLocalLocker()
	if redisClient != nil {
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient, "clinihof:lock:")
		logger.Info("Redis connected, using shared locks and rate limits.", slog.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, locks and rate limits are per process.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, pgsql.NewTxRunner(dbPool), locker)

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, redisClient)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.RateLimit(authLimiter))

	scheduler := jobs.NewRecurrenceScheduler(cfg.RecurrenceCron, serviceContainer.Workspace, serviceContainer.Cost, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error("Invalid RECURRENCE_CRON", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, cfg.OtelServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn("Recurrence job still running at shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracing shutdown failed", slog.String("error", err.Error()))
	}
}
