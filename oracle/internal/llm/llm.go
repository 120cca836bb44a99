// Package llm generates structured incident reports from free-text logistics
// events. Three backends share one contract: a local Ollama endpoint, the
// HuggingFace hosted inference API, and a deterministic mock for tests and
// offline demos.
package llm

import (
	"context"
	"fmt"
)

// Report is the output of a generation call.
type Report struct {
	Summary    string
	Confidence int
	Raw        string

	// Err marks a degraded report: the backend was unreachable or returned an
	// error status, Confidence is 0 and Summary carries the error text. The
	// pipeline continues with a degraded report instead of aborting, but the
	// distinction stays visible to the orchestrator and to tests.
	Err error
}

// Degraded reports carry a transport error instead of model output.
func (r Report) Degraded() bool {
	return r.Err != nil
}

// CheckResult is the outcome of a model reachability probe.
type CheckResult struct {
	StatusCode int    `json:"status_code"`
	OK         bool   `json:"ok"`
	Detail     string `json:"detail,omitempty"`
}

// Client is the capability contract shared by all backends.
// GenerateReport returns a degraded Report (never an error) for transport
// failures; the error return is reserved for hard failures such as a
// cancelled context.
type Client interface {
	GenerateReport(ctx context.Context, eventDescription string) (Report, error)
	CheckModel(ctx context.Context) CheckResult
	Name() string
	Model() string
}

const systemMessage = "You are a logistics AI assistant. Analyze the supply chain event and provide a structured report."

const promptTemplate = `Analyze this supply chain event and provide a detailed report. End your analysis with a confidence score.

EVENT: %s

Format your response exactly as follows:

SUMMARY:
[Provide a brief overview]
Severity: [Low/Medium/High]

IMPACT ANALYSIS:
- Delay Duration: [Specify expected delays]
- Cost Impact: [Estimate financial impact]
- Affected Areas: [List affected operations]

RECOMMENDED ACTIONS:
1. [Most urgent action]
2. [Second priority]
3. [Additional step if needed]

End your response with one line showing your confidence score like this:
Confidence: [X] (where X is a number between 0-100)`

// BuildPrompt substitutes the event description into the report prompt.
func BuildPrompt(eventDescription string) string {
	return fmt.Sprintf(promptTemplate, eventDescription)
}

// degradedReport wraps a transport error into the degraded-report shape all
// backends return when the model cannot be reached.
func degradedReport(err error) Report {
	return Report{
		Summary:    fmt.Sprintf("Error generating report: %v", err),
		Confidence: 0,
		Raw:        err.Error(),
		Err:        err,
	}
}
