package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "hello", req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{
			Embedding: []float64{0.1, 0.2, 0.3},
		})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL, Model: "test-model"})
	defer svc.Close()

	embedding, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding)
}

func TestEmbedBatch_OneRequestPerText(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(embedResponse{
			Embedding: []float64{float64(calls)},
		})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	defer svc.Close()

	embeddings, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, embeddings, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []float32{1}, embeddings[0])
	assert.Equal(t, []float32{3}, embeddings[2])
}

func TestEmbed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	defer svc.Close()

	_, err := svc.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestEmbed_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Embed(ctx, "hello")
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	defer svc.Close()

	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	defer svc.Close()

	assert.NoError(t, svc.Ping(context.Background()))
}
