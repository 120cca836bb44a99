package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OracleClient talks to the oracle REST API.
type OracleClient struct {
	baseURL string
	client  *http.Client
}

func NewOracleClient(baseURL string) *OracleClient {
	return &OracleClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 6 * time.Minute},
	}
}

// ProcessResult mirrors the pipeline response from /api/process-event.
type ProcessResult struct {
	Success          bool      `json:"success"`
	ShipmentID       string    `json:"shipment_id"`
	EventDescription string    `json:"event_description"`
	AIReport         *AIReport `json:"ai_report,omitempty"`
	Signature        string    `json:"signature,omitempty"`
	Transaction      *TxResult `json:"transaction,omitempty"`
	ProcessingTime   float64   `json:"processing_time"`
	Timestamp        string    `json:"timestamp"`
	Error            string    `json:"error,omitempty"`
}

type AIReport struct {
	Summary         string `json:"summary"`
	ConfidenceScore int    `json:"confidence_score"`
}

type TxResult struct {
	Success bool   `json:"success"`
	Digest  string `json:"digest"`
}

type ShipmentResult struct {
	Success bool            `json:"success"`
	Data    *ShipmentRecord `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type ShipmentRecord struct {
	ShipmentID      string `json:"shipment_id"`
	AISummary       string `json:"ai_summary"`
	ConfidenceScore int    `json:"confidence_score"`
	Timestamp       int64  `json:"timestamp"`
	Status          string `json:"status"`
}

type OracleStatus struct {
	Status          string `json:"status"`
	Network         string `json:"network"`
	ContractPackage string `json:"contract_package"`
	Backend         string `json:"backend"`
	AIModel         string `json:"ai_model"`
	MockChain       bool   `json:"mock_chain"`
	OraclePublicKey string `json:"oracle_public_key"`
}

type LLMTestResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// ProcessEvent submits a logistics event for processing. A pipeline failure
// comes back as an API error body, which is surfaced as an error here.
func (c *OracleClient) ProcessEvent(eventDescription, shipmentID string) (*ProcessResult, error) {
	payload := map[string]string{"event_description": eventDescription}
	if shipmentID != "" {
		payload["shipment_id"] = shipmentID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Post(c.baseURL+"/api/process-event", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result ProcessResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// GetShipment fetches the recorded state for a shipment.
func (c *OracleClient) GetShipment(shipmentID string) (*ShipmentResult, error) {
	resp, err := c.client.Get(c.baseURL + "/api/shipment/" + shipmentID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result ShipmentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// Status fetches oracle metadata.
func (c *OracleClient) Status() (*OracleStatus, error) {
	resp, err := c.client.Get(c.baseURL + "/api/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var status OracleStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

// LLMTest probes the oracle's model endpoint.
func (c *OracleClient) LLMTest() (*LLMTestResult, error) {
	resp, err := c.client.Get(c.baseURL + "/api/llm-test")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result LLMTestResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// apiError extracts the {"error": "..."} body the API uses for failures.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("oracle returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("oracle returned %d", resp.StatusCode)
}
