package chain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// SuiConfig holds the RPC endpoint and contract coordinates.
type SuiConfig struct {
	RPCURL     string
	Network    string
	PackageID  string
	ModuleName string
}

// SuiClient builds Move call descriptions against the configured package.
//
// Execution is mocked: the JSON-RPC payload is constructed exactly as
// sui_executeTransactionBlock expects, but submitting it requires a deployed
// package and a funded, signing wallet, neither of which exist here. No HTTP
// client is held until real submission lands; RPCURL is carried so the
// deployment target stays visible in config and status output. The mock
// response is deterministic for identical call arguments.
type SuiClient struct {
	cfg SuiConfig
}

// NewSui creates a chain client for the configured Sui network.
func NewSui(cfg SuiConfig) *SuiClient {
	return &SuiClient{cfg: cfg}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type moveCall struct {
	Kind string       `json:"kind"`
	Data moveCallData `json:"data"`
}

type moveCallData struct {
	PackageObjectID string `json:"packageObjectId"`
	Module          string `json:"module"`
	Function        string `json:"function"`
	Arguments       []any  `json:"arguments"`
	TypeArguments   []any  `json:"typeArguments"`
}

// buildMoveCall assembles the sui_executeTransactionBlock request for a
// contract function.
func (c *SuiClient) buildMoveCall(function string, arguments []any) rpcRequest {
	return rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "sui_executeTransactionBlock",
		Params: []any{
			moveCall{
				Kind: "moveCall",
				Data: moveCallData{
					PackageObjectID: c.cfg.PackageID,
					Module:          c.cfg.ModuleName,
					Function:        function,
					Arguments:       arguments,
					TypeArguments:   []any{},
				},
			},
		},
	}
}

// OracleUpdate calls oracle_update with the report fields and the signature
// decoded into the byte vector the Move contract expects.
func (c *SuiClient) OracleUpdate(ctx context.Context, shipmentID, summary string, confidence int, signatureHex string) (*TxResult, error) {
	sigBytes, err := SignatureBytes(signatureHex)
	if err != nil {
		return &TxResult{Success: false, Error: err.Error()}, nil
	}

	arguments := []any{shipmentID, summary, confidence, sigBytes}
	call := c.buildMoveCall("oracle_update", arguments)

	return c.mockExecute(ctx, call)
}

// mockExecute stands in for the RPC round trip. The digest is the Blake2b-256
// hash of the canonical call encoding, which keeps the canned response
// deterministic per call arguments while matching the hash Sui derives
// transaction digests with.
func (c *SuiClient) mockExecute(ctx context.Context, call rpcRequest) (*TxResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(call)
	if err != nil {
		return &TxResult{Success: false, Error: err.Error()}, nil
	}

	digest := blake2b.Sum256(encoded)
	data := call.Params[0].(moveCall).Data

	return &TxResult{
		Success: true,
		Digest:  "0x" + hex.EncodeToString(digest[:]),
		Transaction: &TxEcho{
			Function:  data.Function,
			Arguments: data.Arguments,
			Timestamp: time.Now().Unix(),
			Status:    "success",
		},
		Effects: &TxEffects{
			Status:  "success",
			GasUsed: 1000000,
		},
	}, nil
}

// GetShipment queries shipment state. The sui_getObject call is built but,
// like execution, answered with a canned record until a package is deployed.
func (c *SuiClient) GetShipment(ctx context.Context, shipmentID string) (*QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &QueryResult{
		Success: true,
		Data: &ShipmentRecord{
			ShipmentID:      shipmentID,
			AISummary:       "Mock shipment data",
			ConfidenceScore: 85,
			Timestamp:       time.Now().Unix(),
			Status:          "active",
		},
	}, nil
}

// SignatureBytes decodes a hex signature into the numeric byte vector used
// for the Move vector<u8> argument.
func SignatureBytes(signatureHex string) ([]int, error) {
	raw, err := hex.DecodeString(signatureHex)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	out := make([]int, len(raw))
	for i, b := range raw {
		out[i] = int(b)
	}
	return out, nil
}
