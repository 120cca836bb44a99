package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// MemoryClient keeps shipment state in memory. It backs tests and lets the
// demo round-trip /api/shipment lookups against previously processed events.
type MemoryClient struct {
	mu        sync.RWMutex
	shipments map[string]*ShipmentRecord
}

// NewMemory creates an empty in-memory chain client.
func NewMemory() *MemoryClient {
	return &MemoryClient{
		shipments: make(map[string]*ShipmentRecord),
	}
}

// OracleUpdate records the report as the shipment's current state.
func (c *MemoryClient) OracleUpdate(ctx context.Context, shipmentID, summary string, confidence int, signatureHex string) (*TxResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sigBytes, err := SignatureBytes(signatureHex)
	if err != nil {
		return &TxResult{Success: false, Error: err.Error()}, nil
	}

	now := time.Now().Unix()

	c.mu.Lock()
	c.shipments[shipmentID] = &ShipmentRecord{
		ShipmentID:      shipmentID,
		AISummary:       summary,
		ConfidenceScore: confidence,
		Timestamp:       now,
		Status:          "active",
	}
	c.mu.Unlock()

	digest := blake2b.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", shipmentID, summary, confidence, signatureHex)))

	return &TxResult{
		Success: true,
		Digest:  "0x" + hex.EncodeToString(digest[:]),
		Transaction: &TxEcho{
			Function:  "oracle_update",
			Arguments: []any{shipmentID, summary, confidence, sigBytes},
			Timestamp: now,
			Status:    "success",
		},
		Effects: &TxEffects{Status: "success", GasUsed: 1000000},
	}, nil
}

// GetShipment returns the stored record, or a not-found failure.
func (c *MemoryClient) GetShipment(ctx context.Context, shipmentID string) (*QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	record, ok := c.shipments[shipmentID]
	c.mu.RUnlock()

	if !ok {
		return &QueryResult{
			Success: false,
			Error:   fmt.Sprintf("shipment %s not found", shipmentID),
		}, nil
	}

	copied := *record
	return &QueryResult{Success: true, Data: &copied}, nil
}
