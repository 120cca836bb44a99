// Package chain submits signed oracle reports to the supply-chain Move
// contract. The Sui client builds the moveCall description but transaction
// execution is mocked until a funded oracle wallet and deployed package are
// wired in; the in-memory client backs tests and mock mode.
package chain

import "context"

// TxResult is the outcome of a contract call.
type TxResult struct {
	Success     bool       `json:"success"`
	Digest      string     `json:"digest,omitempty"`
	Transaction *TxEcho    `json:"transaction,omitempty"`
	Effects     *TxEffects `json:"effects,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// TxEcho echoes the call description back to the caller.
type TxEcho struct {
	Function  string `json:"function"`
	Arguments []any  `json:"arguments"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
}

// TxEffects mirrors the execution-effects summary of a transaction block.
type TxEffects struct {
	Status  string `json:"status"`
	GasUsed int64  `json:"gasUsed"`
}

// ShipmentRecord is the on-chain shipment state.
type ShipmentRecord struct {
	ShipmentID      string `json:"shipment_id"`
	AISummary       string `json:"ai_summary"`
	ConfidenceScore int    `json:"confidence_score"`
	Timestamp       int64  `json:"timestamp"`
	Status          string `json:"status"`
}

// QueryResult wraps a shipment query echo.
type QueryResult struct {
	Success bool            `json:"success"`
	Data    *ShipmentRecord `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client is the contract boundary for chain submission. Implementations must
// not invent chain semantics beyond the call description: oracle_update takes
// [shipment_id, summary, confidence, signature bytes] and yields a success
// flag plus a transaction digest, or a failure with an error string.
type Client interface {
	OracleUpdate(ctx context.Context, shipmentID, summary string, confidence int, signatureHex string) (*TxResult, error)
	GetShipment(ctx context.Context, shipmentID string) (*QueryResult, error)
}
