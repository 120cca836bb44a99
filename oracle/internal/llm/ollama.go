package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaConfig holds connection settings for a local Ollama endpoint.
type OllamaConfig struct {
	URL         string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// OllamaClient talks to the Ollama chat API.
type OllamaClient struct {
	cfg        OllamaConfig
	httpClient *http.Client
}

// NewOllama creates a client for a local Ollama endpoint.
func NewOllama(cfg OllamaConfig) *OllamaClient {
	if cfg.Timeout == 0 {
		// Local models can take minutes on first load.
		cfg.Timeout = 5 * time.Minute
	}
	return &OllamaClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *OllamaClient) Name() string  { return "ollama" }
func (c *OllamaClient) Model() string { return c.cfg.Model }

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  ollamaOptions       `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	// Older Ollama versions return the text on the generate-style field.
	Response string `json:"response"`
}

// GenerateReport calls the Ollama chat endpoint with the report prompt.
// Transport failures return a degraded report with a nil error.
func (c *OllamaClient) GenerateReport(ctx context.Context, eventDescription string) (Report, error) {
	reqBody := ollamaChatRequest{
		Model: c.cfg.Model,
		Messages: []ollamaChatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: BuildPrompt(eventDescription)},
		},
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.cfg.Temperature,
			NumPredict:  c.cfg.MaxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Report{}, fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return Report{}, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return degradedReport(err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return degradedReport(fmt.Errorf("ollama returned status %d", resp.StatusCode)), nil
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return degradedReport(fmt.Errorf("decode response: %w", err)), nil
	}

	generated := result.Message.Content
	if generated == "" {
		generated = result.Response
	}
	if generated == "" {
		return degradedReport(errors.New("ollama returned an empty completion")), nil
	}

	generated = strings.TrimSpace(generated)

	return Report{
		Summary:    generated,
		Confidence: ExtractConfidence(generated),
		Raw:        generated,
	}, nil
}

// CheckModel verifies that Ollama is running and the configured model is
// loaded, via the show endpoint.
func (c *OllamaClient) CheckModel(ctx context.Context) CheckResult {
	body, _ := json.Marshal(map[string]string{"name": c.cfg.Model})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/api/show", bytes.NewReader(body))
	if err != nil {
		return CheckResult{Detail: err.Error()}
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return CheckResult{Detail: fmt.Sprintf("failed to connect to Ollama API: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CheckResult{
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("model %s not found or not loaded", c.cfg.Model),
		}
	}

	return CheckResult{
		StatusCode: resp.StatusCode,
		OK:         true,
		Detail:     fmt.Sprintf("Ollama is running and %s is available", c.cfg.Model),
	}
}
