package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HuggingFaceConfig holds settings for the hosted inference API.
type HuggingFaceConfig struct {
	APIToken    string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	// BaseURL overrides the inference API root, used by tests.
	BaseURL string
}

// HuggingFaceClient talks to the HuggingFace hosted inference API.
type HuggingFaceClient struct {
	cfg        HuggingFaceConfig
	apiURL     string
	httpClient *http.Client
}

const huggingFaceBaseURL = "https://api-inference.huggingface.co/models"

// NewHuggingFace creates a client for the hosted inference endpoint.
func NewHuggingFace(cfg HuggingFaceConfig) *HuggingFaceClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = huggingFaceBaseURL
	}
	return &HuggingFaceClient{
		cfg:        cfg,
		apiURL:     base + "/" + cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HuggingFaceClient) Name() string  { return "huggingface" }
func (c *HuggingFaceClient) Model() string { return c.cfg.Model }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfCompletion struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateReport calls the hosted inference endpoint with the report prompt.
// Transport and HTTP errors return a degraded report with a nil error; a 404
// gets a clearer message since it usually means a misconfigured model id.
func (c *HuggingFaceClient) GenerateReport(ctx context.Context, eventDescription string) (Report, error) {
	reqBody := hfRequest{
		Inputs: BuildPrompt(eventDescription),
		Parameters: hfParameters{
			MaxNewTokens:   c.cfg.MaxTokens,
			Temperature:    c.cfg.Temperature,
			TopP:           0.9,
			ReturnFullText: false,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Report{}, fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return Report{}, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return degradedReport(err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var msg error
		if resp.StatusCode == http.StatusNotFound {
			msg = fmt.Errorf("model not found (404) at %s: check that model %q exists and is accessible with your token", c.apiURL, c.cfg.Model)
		} else {
			msg = fmt.Errorf("HTTP error %d when calling model endpoint", resp.StatusCode)
		}
		degraded := degradedReport(msg)
		if len(respBody) > 0 {
			degraded.Raw = string(respBody)
		}
		return degraded, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return degradedReport(fmt.Errorf("read response: %w", err)), nil
	}

	generated := parseHFCompletion(respBody)
	if generated == "" {
		return degradedReport(fmt.Errorf("no generated text in response")), nil
	}

	generated = strings.TrimSpace(generated)

	return Report{
		Summary:    generated,
		Confidence: ExtractConfidence(generated),
		Raw:        generated,
	}, nil
}

// parseHFCompletion handles both response shapes the inference API uses:
// a list of completions or a bare object.
func parseHFCompletion(body []byte) string {
	var list []hfCompletion
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText
	}

	var single hfCompletion
	if err := json.Unmarshal(body, &single); err == nil {
		return single.GeneratedText
	}
	return ""
}

// CheckModel probes the model endpoint to verify the token can access it.
func (c *HuggingFaceClient) CheckModel(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return CheckResult{Detail: err.Error()}
	}
	request.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return CheckResult{Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	return CheckResult{
		StatusCode: resp.StatusCode,
		OK:         resp.StatusCode == http.StatusOK,
		Detail:     string(body),
	}
}
