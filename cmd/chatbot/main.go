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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/YogeshRao005/capillary-chatbot/internal/config"
	"github.com/YogeshRao005/capillary-chatbot/internal/db"
	dbRedis "github.com/YogeshRao005/capillary-chatbot/internal/db/redis"
	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
	"github.com/YogeshRao005/capillary-chatbot/internal/fetcher"
	"github.com/YogeshRao005/capillary-chatbot/internal/index"
	logpkg "github.com/YogeshRao005/capillary-chatbot/internal/logger"
	"github.com/YogeshRao005/capillary-chatbot/internal/metrics"
	"github.com/YogeshRao005/capillary-chatbot/internal/repository/embcache"
	chiTransport "github.com/YogeshRao005/capillary-chatbot/internal/transport/chi"
	openaiEmb "github.com/YogeshRao005/capillary-chatbot/internal/transport/openai"
	"github.com/YogeshRao005/capillary-chatbot/internal/transport/openrouter"
	embeddinguc "github.com/YogeshRao005/capillary-chatbot/internal/usecase/embedding"
	healthuc "github.com/YogeshRao005/capillary-chatbot/internal/usecase/health"
	queryuc "github.com/YogeshRao005/capillary-chatbot/internal/usecase/query"
	synthesisuc "github.com/YogeshRao005/capillary-chatbot/internal/usecase/synthesis"
	"github.com/YogeshRao005/capillary-chatbot/internal/version"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting chatbot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_path", cfg.Retrieval.IndexPath),
		zap.Strings("generation_models", cfg.Generation.Models),
	)

	// The index and metadata must load before the server accepts traffic.
	flat, err := index.LoadFlat(cfg.Retrieval.IndexPath)
	if err != nil {
		logger.Fatal("Failed to load vector index", zap.Error(err))
	}
	meta, err := index.LoadMetadata(cfg.Retrieval.MetadataPath)
	if err != nil {
		logger.Fatal("Failed to load index metadata", zap.Error(err))
	}
	if flat.Len() != meta.Len() {
		logger.Warn("Index and metadata sizes differ, extra candidates will be dropped",
			zap.Int("index_len", flat.Len()),
			zap.Int("metadata_len", meta.Len()),
		)
	}
	logger.Info("Vector index loaded",
		zap.Int("vectors", flat.Len()),
		zap.Int("dimensions", flat.Dim()),
	)

	metrics.RegisterPipelineMetrics()

	ctx := context.Background()

	// Embedding cache is optional; no addrs means no cache.
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer redisStore.Close()

		readyTimeout := time.Duration(cfg.Cache.ReadyTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readyTimeout); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		store = redisStore
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder := buildEmbedder(cfg, store, logger)

	fetch := fetcher.New(fetcher.Config{
		Timeout:   time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		MaxBodyKB: cfg.Fetch.MaxBodyKB,
		Logger:    logger,
	})

	generator := openrouter.New(&openrouter.Config{
		APIKey:  cfg.Generation.APIKey,
		BaseURL: cfg.Generation.BaseURL,
		Timeout: time.Duration(cfg.Generation.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	synthSvc := synthesisuc.New(
		generator,
		cfg.Generation.Models,
		cfg.Generation.MaxTokens,
		cfg.Generation.Temperature,
		logger,
	)

	querySvc := queryuc.New(embedder, flat, meta, fetch, synthSvc, cfg.Retrieval.TopK)

	// Pass nil interface (not typed nil pointer!) if the cache is not configured.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(flat, embedder, cachePinger)

	server := chiTransport.NewServer(querySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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

// buildEmbedder assembles the embedder chain: OpenAI -> Cached -> Lazy.
// The lazy wrapper defers client construction to the first query so startup
// does not depend on the embedding provider.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) *embeddinguc.Lazy {
	return embeddinguc.NewLazy(func() (domain.Embedder, error) {
		if cfg.Embedding.APIKey == "" {
			return nil, fmt.Errorf("embedding api key is not set")
		}

		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})

		var embedder domain.Embedder = base
		if store != nil {
			ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
			embedder = embcache.New(base, store, cfg.Embedding.Model, ttl, metrics.EmbeddingCacheTotal, logger)
		}

		logger.Info("Embedder created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
			zap.Bool("cached", store != nil),
		)
		return embedder, nil
	})
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
