package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minisearch/internal/docstore"
	"minisearch/internal/index"
	"minisearch/internal/service/query"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	idx := index.NewIndexer()
	docs := docstore.NewStore()
	return New(idx, docs, nil, nil, nil, Options{
		DefaultSuggestLimit: 10,
		MaxSuggestLimit:     100,
		PreviewLength:       80,
	})
}

func ingest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)
	return rec
}

func TestIngestAndSearch(t *testing.T) {
	h := newTestHandler(t)

	rec := ingest(t, h, `{"id":"doc1","text":"the cat sat on the mat"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var ingestResp IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ingestResp))
	assert.Equal(t, "doc1", ingestResp.DocumentID)
	assert.Equal(t, "indexed", ingestResp.Status)
	assert.Equal(t, 1, ingestResp.DocumentCount)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?word=the", nil)
	rec = httptest.NewRecorder()
	h.Search(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result query.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "doc1", result.Hits[0].DocID)
	assert.Equal(t, 2, result.Hits[0].Count)
	assert.Equal(t, "the cat sat on the mat", result.Hits[0].Preview)
}

func TestSearchUnknownWord(t *testing.T) {
	h := newTestHandler(t)
	ingest(t, h, `{"id":"doc1","text":"the cat sat on the mat"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?word=dog", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result query.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Zero(t, result.TotalDocs)
	assert.Empty(t, result.Hits)
}

func TestSearchMissingWordParam(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestAutoAssignsIDs(t *testing.T) {
	h := newTestHandler(t)

	rec := ingest(t, h, `{"text":"first document"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var first IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, "doc_0", first.DocumentID)

	rec = ingest(t, h, `{"text":"second document"}`)
	var second IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, "doc_1", second.DocumentID)
}

func TestIngestInvalidJSON(t *testing.T) {
	h := newTestHandler(t)
	rec := ingest(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestValidationFailure(t *testing.T) {
	h := newTestHandler(t)
	rec := ingest(t, h, `{"id":"   ","text":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp["error"])
	fields, ok := resp["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "id")
}

func TestIngestEmptyTextIsAccepted(t *testing.T) {
	h := newTestHandler(t)
	rec := ingest(t, h, `{"id":"empty","text":""}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	statsRec := httptest.NewRecorder()
	h.Stats(statsRec, req)

	var stats index.Stats
	require.NoError(t, json.Unmarshal(statsRec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.DocumentCount)
	assert.Zero(t, stats.VocabularySize)
}

func TestSuggest(t *testing.T) {
	h := newTestHandler(t)
	ingest(t, h, `{"id":"doc1","text":"car card care cat dog"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?prefix=ca", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prefix      string   `json:"prefix"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ca", resp.Prefix)
	assert.Equal(t, []string{"car", "card", "care", "cat"}, resp.Suggestions)
}

func TestSuggestLimit(t *testing.T) {
	h := newTestHandler(t)
	ingest(t, h, `{"id":"doc1","text":"aa ab ac ad ae"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?prefix=a&limit=2", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"aa", "ab"}, resp.Suggestions)
}

func TestSuggestInvalidLimit(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?prefix=a&limit=zero", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVector(t *testing.T) {
	h := newTestHandler(t)
	ingest(t, h, `{"id":"doc1","text":"go go go"}`)
	ingest(t, h, `{"id":"doc2","text":"no go"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vector?word=go", nil)
	rec := httptest.NewRecorder()
	h.Vector(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp VectorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "go", resp.Word)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, index.SparseEntry{Key: 0, Count: 3}, resp.Entries[0])
	assert.Equal(t, index.SparseEntry{Key: 1, Count: 1}, resp.Entries[1])
	assert.Equal(t, 2, resp.Nonzero)
	assert.InDelta(t, 1.0, resp.Density, 1e-9)
}

func TestDocumentsListing(t *testing.T) {
	h := newTestHandler(t)
	ingest(t, h, `{"id":"b.txt","text":"second doc"}`)
	ingest(t, h, `{"id":"a.txt","text":"first doc"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	h.Documents(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Documents []DocumentSummary `json:"documents"`
		Count     int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "b.txt", resp.Documents[0].DocID, "insertion order preserved")
	assert.Equal(t, "second doc", resp.Documents[0].Preview)
}

func TestCacheStatsDisabled(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	h.CacheStats(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "disabled")
}

func TestAnalyticsDisabled(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil)
	rec := httptest.NewRecorder()
	h.Analytics(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "disabled")
}

func TestSampleCorpusEndToEnd(t *testing.T) {
	idx := index.NewIndexer()
	docs := docstore.NewStore()
	for _, name := range docstore.SampleOrder {
		require.NoError(t, idx.IndexDocument(name, docstore.SampleDocs[name]))
		docs.Put(name, docstore.SampleDocs[name])
	}
	h := New(idx, docs, nil, nil, nil, Options{DefaultSuggestLimit: 10, MaxSuggestLimit: 100, PreviewLength: 80})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?word=python", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result query.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 5, result.TotalDocs, "python appears in every sample document")
	assert.Equal(t, "python_intro.txt", result.Hits[0].DocID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/search?word=javascript", nil)
	rec = httptest.NewRecorder()
	h.Search(rec, req)
	var empty query.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Zero(t, empty.TotalDocs)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/suggest?prefix=prog", nil)
	rec = httptest.NewRecorder()
	h.Suggest(rec, req)
	var sugg struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sugg))
	assert.Contains(t, sugg.Suggestions, "programming")
}
