package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cargolens-systems/cargolens-oracle/common/middleware"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/handlers"
)

// NewRouter constructs a ServeMux with the oracle API routes registered.
func NewRouter(h *handlers.OracleHandler, cors middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("/api/process-event", h.ProcessEvent)
	mux.HandleFunc("/api/shipment/", h.QueryShipment)
	mux.HandleFunc("/api/status", h.Status)
	mux.HandleFunc("/api/llm-test", h.LLMTest)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(middleware.CORS(cors)(mux))
}
