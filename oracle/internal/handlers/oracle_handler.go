package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/cargolens-systems/cargolens-oracle/common/httputil"
	"github.com/cargolens-systems/cargolens-oracle/common/logging"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/chain"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/llm"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/models"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/ratelimit"
)

// Service is the slice of the orchestrator the HTTP layer depends on.
type Service interface {
	ProcessEvent(ctx context.Context, eventDescription, shipmentID string) *models.ProcessingResult
	QueryShipment(ctx context.Context, shipmentID string) (*chain.QueryResult, error)
	CheckModel(ctx context.Context) llm.CheckResult
	Info() models.OracleInfo
}

type OracleHandler struct {
	service Service
	limiter ratelimit.RateLimiter
	logger  *logging.Logger
}

func NewOracleHandler(service Service, limiter ratelimit.RateLimiter, logger *logging.Logger) *OracleHandler {
	if limiter == nil {
		limiter = &ratelimit.NoOpRateLimiter{}
	}
	return &OracleHandler{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

// Root describes the API for browsers poking at the service.
func (h *OracleHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"name":    "CargoLens Supply Chain Oracle API",
		"version": "1.0.0",
		"status":  "active",
		"endpoints": map[string]string{
			"process_event":  "/api/process-event",
			"query_shipment": "/api/shipment/{shipment_id}",
			"oracle_status":  "/api/status",
			"llm_test":       "/api/llm-test",
		},
	})
}

// ProcessEvent runs the full pipeline for one logistics event.
func (h *OracleHandler) ProcessEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.EventDescription) == "" {
		httputil.WriteError(w, http.StatusBadRequest, "event_description is required")
		return
	}

	sourceIP := getClientIP(r)
	allowed, err := h.limiter.Allow(r.Context(), sourceIP)
	if err != nil {
		// A broken limiter must not take the oracle down with it.
		h.logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request", logging.Error(err))
		allowed = true
	}
	if !allowed {
		httputil.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	result := h.service.ProcessEvent(r.Context(), req.EventDescription, req.ShipmentID)
	if !result.Success {
		httputil.WriteError(w, http.StatusInternalServerError, result.Error)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// QueryShipment looks up on-chain shipment state.
func (h *OracleHandler) QueryShipment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	shipmentID := strings.TrimPrefix(r.URL.Path, "/api/shipment/")
	if shipmentID == "" || strings.Contains(shipmentID, "/") {
		httputil.WriteError(w, http.StatusBadRequest, "shipment id is required")
		return
	}

	result, err := h.service.QueryShipment(r.Context(), shipmentID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !result.Success {
		httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("shipment %s not found", shipmentID))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Status reports oracle metadata.
func (h *OracleHandler) Status(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Info())
}

// LLMTest probes the configured model endpoint and reports reachability.
func (h *OracleHandler) LLMTest(w http.ResponseWriter, r *http.Request) {
	result := h.service.CheckModel(r.Context())

	response := map[string]any{
		"success":     result.OK,
		"status_code": result.StatusCode,
	}
	if result.OK {
		response["message"] = "LLM endpoint reachable and working."
	} else {
		response["message"] = "LLM endpoint unreachable."
		response["details"] = result.Detail
	}

	httputil.WriteJSON(w, http.StatusOK, response)
}

// Health is the liveness probe.
func (h *OracleHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "oracle-api",
	})
}

// Ready is the readiness probe. The oracle keeps no connections open between
// requests, so readiness follows liveness.
func (h *OracleHandler) Ready(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// getClientIP extracts the real client IP, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
