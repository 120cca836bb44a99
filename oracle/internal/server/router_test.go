package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cargolens-systems/cargolens-oracle/common/logging"
	"github.com/cargolens-systems/cargolens-oracle/common/middleware"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/chain"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/handlers"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/llm"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/models"
)

type stubService struct{}

func (s *stubService) ProcessEvent(ctx context.Context, eventDescription, shipmentID string) *models.ProcessingResult {
	return &models.ProcessingResult{Success: true, ShipmentID: shipmentID}
}

func (s *stubService) QueryShipment(ctx context.Context, shipmentID string) (*chain.QueryResult, error) {
	return &chain.QueryResult{Success: true, Data: &chain.ShipmentRecord{ShipmentID: shipmentID}}, nil
}

func (s *stubService) CheckModel(ctx context.Context) llm.CheckResult {
	return llm.CheckResult{OK: true}
}

func (s *stubService) Info() models.OracleInfo {
	return models.OracleInfo{Status: "active"}
}

func newTestRouter() http.Handler {
	h := handlers.NewOracleHandler(&stubService{}, nil, logging.Default())
	return NewRouter(h, middleware.DefaultCORSConfig())
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/status", http.StatusOK},
		{http.MethodGet, "/api/llm-test", http.StatusOK},
		{http.MethodGet, "/api/shipment/SHIP-1", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/process-event", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, tt.want, rr.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/process-event", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
