// Package service exposes the search index over HTTP: document ingestion,
// exact-word search, autocomplete suggestions, sparse-vector inspection, and
// index statistics.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"minisearch/internal/analytics"
	"minisearch/internal/docstore"
	"minisearch/internal/index"
	"minisearch/internal/service/cache"
	"minisearch/internal/service/query"
	apperrors "minisearch/pkg/errors"
	"minisearch/pkg/logger"
	"minisearch/pkg/metrics"
)

// IngestRequest is the JSON body accepted by the ingestion endpoint. ID is
// optional; a sequential doc_N identifier is assigned when absent.
type IngestRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// IngestResponse is returned after a document is indexed.
type IngestResponse struct {
	DocumentID    string `json:"document_id"`
	Status        string `json:"status"`
	DocumentCount int    `json:"document_count"`
}

// DocumentSummary is one entry of the document listing.
type DocumentSummary struct {
	DocID   string `json:"doc_id"`
	Preview string `json:"preview"`
}

// VectorResponse exposes a word's sparse frequency vector.
type VectorResponse struct {
	Word    string              `json:"word"`
	Entries []index.SparseEntry `json:"entries"`
	Nonzero int                 `json:"nonzero"`
	Density float64             `json:"density"`
}

// Options carries the query-side limits from config.
type Options struct {
	DefaultSuggestLimit int
	MaxSuggestLimit     int
	PreviewLength       int
}

// Handler serves the public API. Cache, collector, and metrics are optional;
// nil disables the corresponding concern.
type Handler struct {
	idx       *index.Indexer
	docs      *docstore.Store
	executor  *query.Executor
	cache     *cache.QueryCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	opts      Options
	autoID    atomic.Int64
	logger    *slog.Logger
}

// New wires a Handler.
func New(
	idx *index.Indexer,
	docs *docstore.Store,
	queryCache *cache.QueryCache,
	collector *analytics.Collector,
	m *metrics.Metrics,
	opts Options,
) *Handler {
	if opts.DefaultSuggestLimit <= 0 {
		opts.DefaultSuggestLimit = 10
	}
	if opts.MaxSuggestLimit < opts.DefaultSuggestLimit {
		opts.MaxSuggestLimit = opts.DefaultSuggestLimit
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = 80
	}
	return &Handler{
		idx:       idx,
		docs:      docs,
		executor:  query.NewExecutor(idx, docs, opts.PreviewLength),
		cache:     queryCache,
		collector: collector,
		metrics:   m,
		opts:      opts,
		logger:    slog.Default().With("component", "service-handler"),
	}
}

// Ingest handles POST /api/v1/documents.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := ValidateIngestRequest(&req); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			h.writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": validationErr.Fields,
			})
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docID := req.ID
	if docID == "" {
		docID = fmt.Sprintf("doc_%d", h.autoID.Add(1)-1)
	}

	if err := h.idx.IndexDocument(docID, req.Text); err != nil {
		statusCode := apperrors.HTTPStatusCode(err)
		log.Error("indexing failed", "doc_id", docID, "error", err)
		h.writeError(w, statusCode, "indexing failed")
		return
	}
	h.docs.Put(docID, req.Text)

	if h.metrics != nil {
		h.metrics.DocsIndexedTotal.Inc()
		stats := h.idx.Stats()
		h.metrics.DocumentCount.Set(float64(stats.DocumentCount))
		h.metrics.VocabularySize.Set(float64(stats.VocabularySize))
	}
	if h.collector != nil {
		h.collector.Track(analytics.Event{
			Type:      analytics.EventIndex,
			Query:     docID,
			Timestamp: time.Now().UTC(),
		})
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			log.Warn("cache invalidation after ingest failed", "error", err)
		}
	}

	log.Info("document ingested", "doc_id", docID, "bytes", len(req.Text))
	h.writeJSON(w, http.StatusAccepted, IngestResponse{
		DocumentID:    docID,
		Status:        "indexed",
		DocumentCount: h.idx.DocumentCount(),
	})
}

// Search handles GET /api/v1/search?word=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	word := r.URL.Query().Get("word")
	if word == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'word' is required")
		return
	}

	var result *query.SearchResult
	var err error
	cacheHit := false
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, word, func() (*query.SearchResult, error) {
			return h.executor.Execute(word), nil
		})
		if err != nil {
			log.Error("search failed", "word", word, "error", err)
			h.writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
	} else {
		result = h.executor.Execute(word)
	}

	latency := time.Since(start)
	if h.metrics != nil {
		outcome := "hit"
		if result.TotalDocs == 0 {
			outcome = "zero_result"
		}
		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		h.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
		h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
		if cacheHit {
			h.metrics.CacheHitsTotal.Inc()
		} else if h.cache != nil {
			h.metrics.CacheMissesTotal.Inc()
		}
	}
	if h.collector != nil {
		h.collector.Track(analytics.Event{
			Type:      analytics.EventSearch,
			Query:     word,
			Results:   result.TotalDocs,
			LatencyMs: latency.Milliseconds(),
			CacheHit:  cacheHit,
			Timestamp: time.Now().UTC(),
		})
	}
	log.Info("search completed",
		"word", word,
		"hits", result.TotalDocs,
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, result)
}

// Suggest handles GET /api/v1/suggest?prefix=&limit=.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logger.FromContext(r.Context())

	prefix := r.URL.Query().Get("prefix")
	limit := h.opts.DefaultSuggestLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed > h.opts.MaxSuggestLimit {
			parsed = h.opts.MaxSuggestLimit
		}
		limit = parsed
	}

	suggestions := h.idx.Suggest(prefix, limit)
	if h.metrics != nil {
		h.metrics.SuggestionsReturned.Observe(float64(len(suggestions)))
	}
	if h.collector != nil {
		h.collector.Track(analytics.Event{
			Type:      analytics.EventSuggest,
			Query:     prefix,
			Results:   len(suggestions),
			LatencyMs: time.Since(start).Milliseconds(),
			Timestamp: time.Now().UTC(),
		})
	}
	log.Debug("suggest completed", "prefix", prefix, "returned", len(suggestions))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"prefix":      prefix,
		"suggestions": suggestions,
	})
}

// Vector handles GET /api/v1/vector?word=.
func (h *Handler) Vector(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'word' is required")
		return
	}
	entries := h.idx.FrequencyVector(word)
	docCount := h.idx.DocumentCount()
	resp := VectorResponse{
		Word:    word,
		Entries: entries,
		Nonzero: len(entries),
	}
	if docCount > 0 {
		resp.Density = float64(len(entries)) / float64(docCount)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.idx.Stats())
}

// Documents handles GET /api/v1/documents.
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	ids := h.docs.List()
	summaries := make([]DocumentSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, DocumentSummary{
			DocID:   id,
			Preview: h.docs.Preview(id, h.opts.PreviewLength),
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"documents": summaries,
		"count":     len(summaries),
	})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// Analytics handles GET /api/v1/analytics.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	if h.collector == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	h.writeJSON(w, http.StatusOK, h.collector.Stats())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
