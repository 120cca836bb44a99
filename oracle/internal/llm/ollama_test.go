package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerateReport(t *testing.T) {
	var gotReq ollamaChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"message": map[string]string{
				"content": "SUMMARY:\nTruck rerouted.\n\nConfidence: 91",
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewOllama(OllamaConfig{
		URL:         srv.URL,
		Model:       "qwen3:1.7b",
		MaxTokens:   500,
		Temperature: 0.5,
	})

	report, err := client.GenerateReport(context.Background(), "Truck delayed 3 hours")
	require.NoError(t, err)

	assert.False(t, report.Degraded())
	assert.Equal(t, 91, report.Confidence)
	assert.Contains(t, report.Summary, "Truck rerouted.")

	// Request carries the model, both chat roles, and the sampling options.
	assert.Equal(t, "qwen3:1.7b", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Truck delayed 3 hours")
	assert.False(t, gotReq.Stream)
	assert.Equal(t, 500, gotReq.Options.NumPredict)
	assert.InDelta(t, 0.5, gotReq.Options.Temperature, 1e-9)
}

func TestOllamaGenerateReportLegacyResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "Confidence: 66"})
	}))
	defer srv.Close()

	client := NewOllama(OllamaConfig{URL: srv.URL, Model: "qwen3:1.7b"})

	report, err := client.GenerateReport(context.Background(), "event")
	require.NoError(t, err)
	assert.Equal(t, 66, report.Confidence)
}

func TestOllamaGenerateReportUnreachable(t *testing.T) {
	client := NewOllama(OllamaConfig{URL: "http://127.0.0.1:1", Model: "qwen3:1.7b"})

	report, err := client.GenerateReport(context.Background(), "event")
	require.NoError(t, err, "transport failures must degrade, not raise")

	assert.True(t, report.Degraded())
	assert.Equal(t, 0, report.Confidence)
	assert.Contains(t, report.Summary, "Error generating report:")
}

func TestOllamaGenerateReportServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllama(OllamaConfig{URL: srv.URL, Model: "qwen3:1.7b"})

	report, err := client.GenerateReport(context.Background(), "event")
	require.NoError(t, err)
	assert.True(t, report.Degraded())
	assert.Equal(t, 0, report.Confidence)
}

func TestOllamaCheckModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/show", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["name"] == "qwen3:1.7b" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllama(OllamaConfig{URL: srv.URL, Model: "qwen3:1.7b"})
	result := client.CheckModel(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	missing := NewOllama(OllamaConfig{URL: srv.URL, Model: "nope"})
	result = missing.CheckModel(context.Background())
	assert.False(t, result.OK)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}
