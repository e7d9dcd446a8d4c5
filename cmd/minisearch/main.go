// Command minisearch starts the in-memory text search service.
//
// The service indexes documents submitted via POST /api/v1/documents and
// answers exact-word searches, autocomplete suggestions, sparse-vector
// lookups, and index statistics. All index state lives in process memory.
//
// Usage:
//
//	go run ./cmd/minisearch [-config configs/development.yaml] [-samples]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"minisearch/internal/analytics"
	"minisearch/internal/docstore"
	"minisearch/internal/index"
	"minisearch/internal/service"
	"minisearch/internal/service/cache"
	"minisearch/pkg/config"
	"minisearch/pkg/health"
	"minisearch/pkg/kafka"
	"minisearch/pkg/logger"
	"minisearch/pkg/metrics"
	"minisearch/pkg/middleware"
	pkgredis "minisearch/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	loadSamples := flag.Bool("samples", false, "index the built-in sample documents at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting minisearch", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	idx := index.NewIndexer()
	docs := docstore.NewStore()
	if *loadSamples {
		for _, name := range docstore.SampleOrder {
			text := docstore.SampleDocs[name]
			if err := idx.IndexDocument(name, text); err != nil {
				slog.Error("failed to index sample document", "doc_id", name, "error", err)
				os.Exit(1)
			}
			docs.Put(name, text)
		}
		slog.Info("sample documents indexed", "count", len(docstore.SampleOrder))
	}

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, search caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis)
			slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka)
		defer producer.Close()
		slog.Info("kafka analytics publishing enabled", "topic", cfg.Kafka.Topic)
	}
	collector := analytics.NewCollector(producer, cfg.Analytics.BufferSize, cfg.Analytics.TopQueries)
	collector.Start(ctx)
	defer collector.Close()

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		stats := idx.Stats()
		return health.ComponentHealth{
			Status:  health.StatusUp,
			Message: fmt.Sprintf("%d documents, %d words", stats.DocumentCount, stats.VocabularySize),
		}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusUp, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	h := service.New(idx, docs, queryCache, collector, m, service.Options{
		DefaultSuggestLimit: cfg.Search.DefaultSuggestLimit,
		MaxSuggestLimit:     cfg.Search.MaxSuggestLimit,
		PreviewLength:       cfg.Search.PreviewLength,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/documents", h.Ingest)
	mux.HandleFunc("GET /api/v1/documents", h.Documents)
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/suggest", h.Suggest)
	mux.HandleFunc("GET /api/v1/vector", h.Vector)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("GET /api/v1/analytics", h.Analytics)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("minisearch listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("minisearch stopped")
}
