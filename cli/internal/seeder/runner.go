package seeder

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cargolens-systems/cargolens-oracle/cli/internal/client"
)

// Runner drives a seeding run against a live oracle.
type Runner struct {
	Config *Config
	Client *client.OracleClient
}

// Result summarizes a completed run.
type Result struct {
	Sent       int
	Failed     int
	Degraded   int
	Elapsed    time.Duration
	ShipmentID []string
}

func NewRunner(config *Config) *Runner {
	return &Runner{
		Config: config,
		Client: client.NewOracleClient(config.Defaults.ServerURL),
	}
}

// Run generates Count events across the configured scenarios and submits
// each one through the full pipeline.
func (r *Runner) Run() (*Result, error) {
	gofakeit.Seed(time.Now().UnixNano())

	names := r.Config.Scenarios
	if len(names) == 0 {
		names = ScenarioNames()
	}

	log.Printf("Starting event seeder:")
	log.Printf("  Server: %s", r.Config.Defaults.ServerURL)
	log.Printf("  Event count: %d", r.Config.Defaults.Count)
	log.Printf("  Interval: %v", r.Config.Defaults.Interval)
	log.Printf("  Scenarios: %v", names)

	start := time.Now()
	result := &Result{}

	for i := 0; i < r.Config.Defaults.Count; i++ {
		name := names[rand.Intn(len(names))]
		event := GenerateEvent(name)

		processed, err := r.Client.ProcessEvent(event, "")
		if err != nil {
			log.Printf("  [%d/%d] %s: FAILED: %v", i+1, r.Config.Defaults.Count, name, err)
			result.Failed++
		} else {
			confidence := 0
			if processed.AIReport != nil {
				confidence = processed.AIReport.ConfidenceScore
			}
			if confidence == 0 {
				result.Degraded++
			}
			log.Printf("  [%d/%d] %s: %s (confidence %d)",
				i+1, r.Config.Defaults.Count, name, processed.ShipmentID, confidence)
			result.Sent++
			result.ShipmentID = append(result.ShipmentID, processed.ShipmentID)
		}

		if i < r.Config.Defaults.Count-1 && r.Config.Defaults.Interval > 0 {
			time.Sleep(r.Config.Defaults.Interval)
		}
	}

	result.Elapsed = time.Since(start)

	log.Printf("Seeding complete:")
	log.Printf("  Sent: %d", result.Sent)
	log.Printf("  Failed: %d", result.Failed)
	log.Printf("  Degraded reports: %d", result.Degraded)
	log.Printf("  Elapsed: %v", result.Elapsed.Round(time.Millisecond))

	if result.Sent == 0 {
		return result, fmt.Errorf("all %d events failed", result.Failed)
	}
	return result, nil
}
