package seeder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Defaults.Count)
	assert.Equal(t, "http://localhost:8000", cfg.Defaults.ServerURL)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `version: "1"
defaults:
  server_url: http://oracle:8000
  count: 3
  interval: 10ms
scenarios:
  - delay
  - customs_hold
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Defaults.Count)
	assert.Equal(t, 10*time.Millisecond, cfg.Defaults.Interval)
	assert.Equal(t, []string{"delay", "customs_hold"}, cfg.Scenarios)
}

func TestLoadConfigRejectsUnknownScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `defaults:
  server_url: http://oracle:8000
  count: 1
scenarios:
  - alien_abduction
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alien_abduction")
}

func TestValidateRejectsBadCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.Count = 0
	assert.Error(t, cfg.Validate())
}

func TestGenerateEvent(t *testing.T) {
	for _, name := range ScenarioNames() {
		event := GenerateEvent(name)
		assert.NotEmpty(t, event, "scenario %s", name)
	}

	// Unknown scenario falls back instead of panicking
	assert.NotEmpty(t, GenerateEvent("nope"))
}

func TestRunnerSubmitsEvents(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["event_description"])

		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"shipment_id": "SHIP-1",
			"ai_report":   map[string]any{"summary": "s", "confidence_score": 82},
		})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Defaults.ServerURL = server.URL
	cfg.Defaults.Count = 5
	cfg.Defaults.Interval = 0

	result, err := NewRunner(cfg).Run()
	require.NoError(t, err)
	assert.Equal(t, 5, result.Sent)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, int64(5), calls.Load())
	assert.Len(t, result.ShipmentID, 5)
}

func TestRunnerAllFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "pipeline down"})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Defaults.ServerURL = server.URL
	cfg.Defaults.Count = 2
	cfg.Defaults.Interval = 0

	result, err := NewRunner(cfg).Run()
	require.Error(t, err)
	assert.Equal(t, 2, result.Failed)
}
