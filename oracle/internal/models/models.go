// Package models defines the request and response shapes of the oracle API.
// All entities are transient: created per request, returned to the caller,
// never persisted.
package models

import "github.com/cargolens-systems/cargolens-oracle/oracle/internal/chain"

// EventRequest is the process-event input.
type EventRequest struct {
	EventDescription string `json:"event_description"`
	// ShipmentID is optional; the orchestrator derives one from the current
	// time when absent. Uniqueness is the caller's responsibility.
	ShipmentID string `json:"shipment_id,omitempty"`
}

// AIReport is the model-generated portion of a processing result.
type AIReport struct {
	Summary         string `json:"summary"`
	ConfidenceScore int    `json:"confidence_score"`
}

// ProcessingResult aggregates the outcome of one pipeline run.
type ProcessingResult struct {
	Success          bool            `json:"success"`
	ShipmentID       string          `json:"shipment_id"`
	EventDescription string          `json:"event_description"`
	AIReport         *AIReport       `json:"ai_report,omitempty"`
	Signature        string          `json:"signature,omitempty"`
	Transaction      *chain.TxResult `json:"transaction,omitempty"`
	ProcessingTime   float64         `json:"processing_time"`
	Timestamp        string          `json:"timestamp"`
	Error            string          `json:"error,omitempty"`
}

// OracleInfo is the service metadata returned by the status endpoint.
type OracleInfo struct {
	Status          string `json:"status"`
	Network         string `json:"network"`
	ContractPackage string `json:"contract_package"`
	Backend         string `json:"backend"`
	Model           string `json:"ai_model"`
	MockChain       bool   `json:"mock_chain"`
	PublicKey       string `json:"oracle_public_key"`
}
