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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-study-planner/internal/config"
	"github.com/KasumiMercury/primind-study-planner/internal/domain"
	"github.com/KasumiMercury/primind-study-planner/internal/handler"
	"github.com/KasumiMercury/primind-study-planner/internal/health"
	"github.com/KasumiMercury/primind-study-planner/internal/infra/plancache"
	"github.com/KasumiMercury/primind-study-planner/internal/infra/planrecorder"
	"github.com/KasumiMercury/primind-study-planner/internal/observability/logging"
	"github.com/KasumiMercury/primind-study-planner/internal/observability/metrics"
	"github.com/KasumiMercury/primind-study-planner/internal/observability/middleware"
	"github.com/KasumiMercury/primind-study-planner/internal/service/planner"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("study-planner")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadEnv()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	obs.SetLogLevel(cfg.LogLevel)

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	plannerMetrics, err := metrics.NewPlannerMetrics()
	if err != nil {
		slog.Error("failed to initialize planner metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := planrecorder.NewRecorder(ctx, planrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize plan result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := resultRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush plan result recorder", slog.String("error", err.Error()))
		}
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close plan result recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient, err := initRedis(ctx, cfg)
	if err != nil {
		return 1
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	var planCache domain.PlanCache
	if redisClient != nil {
		planCache = plancache.NewRedisPlanCache(redisClient)
	} else {
		planCache = plancache.NewNoopPlanCache()
	}

	plannerService := planner.NewService(cfg.Planner, planCache, resultRecorder, plannerMetrics, cfg.Cache.TTL)
	planHandler := handler.NewPlanHandler(plannerService)
	formHandler := handler.NewFormHandler(plannerService)

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      moduleName,
		TracerName:  "github.com/KasumiMercury/primind-study-planner/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r, planHandler, formHandler)

	mux := http.NewServeMux()
	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	mux.Handle(grpcHealthPath, grpcHealthHandler)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Bool("plan_cache_enabled", redisClient != nil),
			slog.Float64("warn_above_hours", cfg.Planner.WarnAboveHours),
			slog.Float64("max_total_hours", cfg.Planner.MaxTotalHours),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// initRedis returns a nil client when the plan cache is disabled.
func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Cache.Disabled {
		slog.Info("plan cache disabled")
		return nil, nil
	}

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
		slog.Duration("plan_cache_ttl", cfg.Cache.TTL),
	)

	return redisClient, nil
}
