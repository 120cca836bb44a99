package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargolens-systems/cargolens-oracle/common/logging"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/chain"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/llm"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/models"
)

// mockService is a hand-rolled Service double.
type mockService struct {
	processResult *models.ProcessingResult
	queryResult   *chain.QueryResult
	queryErr      error
	checkResult   llm.CheckResult
	info          models.OracleInfo

	gotEvent      string
	gotShipmentID string
}

func (m *mockService) ProcessEvent(ctx context.Context, eventDescription, shipmentID string) *models.ProcessingResult {
	m.gotEvent = eventDescription
	m.gotShipmentID = shipmentID
	return m.processResult
}

func (m *mockService) QueryShipment(ctx context.Context, shipmentID string) (*chain.QueryResult, error) {
	return m.queryResult, m.queryErr
}

func (m *mockService) CheckModel(ctx context.Context) llm.CheckResult {
	return m.checkResult
}

func (m *mockService) Info() models.OracleInfo {
	return m.info
}

// denyAllLimiter rejects every request.
type denyAllLimiter struct{}

func (d *denyAllLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }
func (d *denyAllLimiter) Close() error                                        { return nil }

func TestProcessEventSuccess(t *testing.T) {
	svc := &mockService{
		processResult: &models.ProcessingResult{
			Success:    true,
			ShipmentID: "SHIP-1",
			AIReport:   &models.AIReport{Summary: "ok", ConfidenceScore: 82},
			Signature:  "abcd",
		},
	}
	handler := NewOracleHandler(svc, nil, logging.Default())

	body, _ := json.Marshal(models.EventRequest{
		EventDescription: "Truck delayed 3 hours",
		ShipmentID:       "SHIP-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/process-event", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ProcessEvent(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Truck delayed 3 hours", svc.gotEvent)
	assert.Equal(t, "SHIP-1", svc.gotShipmentID)

	var result models.ProcessingResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, 82, result.AIReport.ConfidenceScore)
}

func TestProcessEventPipelineFailure(t *testing.T) {
	svc := &mockService{
		processResult: &models.ProcessingResult{
			Success: false,
			Error:   "generate report: boom",
		},
	}
	handler := NewOracleHandler(svc, nil, logging.Default())

	body, _ := json.Marshal(models.EventRequest{EventDescription: "event"})
	req := httptest.NewRequest(http.MethodPost, "/api/process-event", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ProcessEvent(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "generate report: boom", resp["error"])
}

func TestProcessEventValidation(t *testing.T) {
	handler := NewOracleHandler(&mockService{}, nil, logging.Default())

	// Missing event description
	body, _ := json.Marshal(models.EventRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/process-event", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ProcessEvent(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Malformed body
	req = httptest.NewRequest(http.MethodPost, "/api/process-event", bytes.NewReader([]byte("{")))
	rr = httptest.NewRecorder()
	handler.ProcessEvent(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Wrong method
	req = httptest.NewRequest(http.MethodGet, "/api/process-event", nil)
	rr = httptest.NewRecorder()
	handler.ProcessEvent(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestProcessEventRateLimited(t *testing.T) {
	handler := NewOracleHandler(&mockService{}, &denyAllLimiter{}, logging.Default())

	body, _ := json.Marshal(models.EventRequest{EventDescription: "event"})
	req := httptest.NewRequest(http.MethodPost, "/api/process-event", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ProcessEvent(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestQueryShipment(t *testing.T) {
	svc := &mockService{
		queryResult: &chain.QueryResult{
			Success: true,
			Data:    &chain.ShipmentRecord{ShipmentID: "SHIP-9", Status: "active"},
		},
	}
	handler := NewOracleHandler(svc, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/shipment/SHIP-9", nil)
	rr := httptest.NewRecorder()
	handler.QueryShipment(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result chain.QueryResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, "SHIP-9", result.Data.ShipmentID)
}

func TestQueryShipmentNotFound(t *testing.T) {
	svc := &mockService{
		queryResult: &chain.QueryResult{Success: false, Error: "shipment SHIP-0 not found"},
	}
	handler := NewOracleHandler(svc, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/shipment/SHIP-0", nil)
	rr := httptest.NewRecorder()
	handler.QueryShipment(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestQueryShipmentMissingID(t *testing.T) {
	handler := NewOracleHandler(&mockService{}, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/shipment/", nil)
	rr := httptest.NewRecorder()
	handler.QueryShipment(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStatus(t *testing.T) {
	svc := &mockService{
		info: models.OracleInfo{
			Status:  "active",
			Network: "testnet",
			Backend: "mock",
		},
	}
	handler := NewOracleHandler(svc, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rr := httptest.NewRecorder()
	handler.Status(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var info models.OracleInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&info))
	assert.Equal(t, "testnet", info.Network)
}

func TestLLMTest(t *testing.T) {
	svc := &mockService{
		checkResult: llm.CheckResult{StatusCode: 200, OK: true, Detail: "ok"},
	}
	handler := NewOracleHandler(svc, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/llm-test", nil)
	rr := httptest.NewRecorder()
	handler.LLMTest(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, true, resp["success"])
}

func TestHealth(t *testing.T) {
	handler := NewOracleHandler(&mockService{}, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.Health(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	assert.Equal(t, "192.0.2.10", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	assert.Equal(t, "203.0.113.5", getClientIP(req))
}
