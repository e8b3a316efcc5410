package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/config"
	"github.com/makrhub/facetdex/internal/db"
	dbRedis "github.com/makrhub/facetdex/internal/db/redis"
	logpkg "github.com/makrhub/facetdex/internal/logger"
	"github.com/makrhub/facetdex/internal/metrics"
	catalogrepo "github.com/makrhub/facetdex/internal/repository/catalog"
	filtersetrepo "github.com/makrhub/facetdex/internal/repository/filterset"
	"github.com/makrhub/facetdex/internal/repository/lexicon"
	chiTransport "github.com/makrhub/facetdex/internal/transport/chi"
	"github.com/makrhub/facetdex/internal/usecase/browse"
	facetsuc "github.com/makrhub/facetdex/internal/usecase/facets"
	filtersetuc "github.com/makrhub/facetdex/internal/usecase/filterset"
	searchuc "github.com/makrhub/facetdex/internal/usecase/search"
	"github.com/makrhub/facetdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting facetdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterHTTPMetrics()

	// Seed data
	catalogRepo, err := catalogrepo.Load(cfg.Seeds.Catalog)
	if err != nil {
		logger.Fatal("Failed to load catalog seed", zap.Error(err))
	}
	synonyms, err := lexicon.LoadSynonyms(cfg.Seeds.Synonyms)
	if err != nil {
		logger.Fatal("Failed to load synonyms seed", zap.Error(err))
	}
	suggestions, err := lexicon.LoadSuggestions(cfg.Seeds.Suggestions)
	if err != nil {
		logger.Fatal("Failed to load suggestions seed", zap.Error(err))
	}
	registry, err := facetsuc.LoadRegistry(cfg.Seeds.Facets)
	if err != nil {
		logger.Fatal("Failed to load facet registry", zap.Error(err))
	}

	// Filter-set storage based on driver
	var (
		setRepo filtersetuc.Repository
		pinger  chiTransport.Pinger
	)
	switch cfg.Storage.Driver {
	case "memory":
		setRepo = filtersetrepo.NewMemory()
	case "file":
		setRepo = filtersetrepo.NewFile(cfg.Storage.FilePath)
	case "redis":
		var store db.Store
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis")

		setRepo = filtersetrepo.NewRedis(store, cfg.Storage.KeyPrefix)
		pinger = store
	default:
		logger.Fatal("Unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}

	// Create use case services
	searchSvc := searchuc.New(catalogRepo, synonyms).
		WithCaps(searchuc.Caps{
			Products:    cfg.Search.ProductCap,
			Categories:  cfg.Search.CategoryCap,
			Brands:      cfg.Search.BrandCap,
			Suggestions: cfg.Search.SuggestionCap,
		}).
		WithSuggestions(suggestions)
	setsSvc := filtersetuc.New(setRepo, logger)

	sessions := browse.NewManager(
		searchSvc,
		logger,
		time.Duration(cfg.Search.DebounceMs)*time.Millisecond,
		time.Duration(cfg.Search.PipelineTimeoutSec)*time.Second,
		time.Duration(cfg.Search.SessionTTLSec)*time.Second,
	)
	defer sessions.Close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Sweep(sweepCtx)

	// Create chi server
	server := chiTransport.NewServer(sessions, searchSvc, registry, setsSvc, pinger, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
