package llm

import (
	"context"
	"fmt"
)

// MockConfidence is the fixed score reported by the mock backend.
const MockConfidence = 82

// MockClient returns a canned report without any network calls. It backs the
// "mock" backend setting and the test suites.
type MockClient struct{}

// NewMock creates the mock backend.
func NewMock() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Name() string  { return "mock" }
func (c *MockClient) Model() string { return "mock" }

// GenerateReport produces a deterministic report embedding the event text.
func (c *MockClient) GenerateReport(ctx context.Context, eventDescription string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	summary := fmt.Sprintf(`INCIDENT SUMMARY
Event: %s
Severity: Medium
Status: Active monitoring required

IMPACT ANALYSIS
- Estimated delay: 2-4 hours
- Affected shipments: 1-3 units
- Financial impact: $2,000 - $5,000
- Customer notification: Required

RECOMMENDED ACTIONS
1. Contact carrier for updated ETA
2. Notify affected customers within 1 hour
3. Assess alternative routing options
4. Document incident for insurance purposes
5. Update tracking systems

CONFIDENCE SCORE
This analysis has a confidence score of %d based on historical incident patterns and current data.`,
		eventDescription, MockConfidence)

	return Report{
		Summary:    summary,
		Confidence: MockConfidence,
		Raw:        summary,
	}, nil
}

// CheckModel always reports reachable.
func (c *MockClient) CheckModel(ctx context.Context) CheckResult {
	return CheckResult{StatusCode: 200, OK: true, Detail: "mock backend is always available"}
}
