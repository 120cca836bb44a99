// Package service orchestrates the oracle pipeline: generate an incident
// report, sign it, submit it to the chain, and assemble the result.
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cargolens-systems/cargolens-oracle/common/logging"
	"github.com/cargolens-systems/cargolens-oracle/common/signer"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/chain"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/llm"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/metrics"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/models"
)

// Options carry the deployment metadata surfaced by the status endpoint.
type Options struct {
	Network         string
	ContractPackage string
	MockChain       bool
}

// OracleService runs the linear process-event pipeline. The pipeline is not
// idempotent: nothing is persisted or deduplicated, so two calls with the
// same shipment id each generate, sign and submit independently.
type OracleService struct {
	llm    llm.Client
	chain  chain.Client
	signer *signer.Signer
	logger *logging.Logger
	opts   Options
}

// New wires the pipeline collaborators together.
func New(llmClient llm.Client, chainClient chain.Client, s *signer.Signer, logger *logging.Logger, opts Options) *OracleService {
	return &OracleService{
		llm:    llmClient,
		chain:  chainClient,
		signer: s,
		logger: logger,
		opts:   opts,
	}
}

// ProcessEvent runs the pipeline end to end. Errors anywhere in the flow are
// converted into a failure result exactly once at this level; there are no
// retries, rollbacks or partial results.
func (s *OracleService) ProcessEvent(ctx context.Context, eventDescription, shipmentID string) *models.ProcessingResult {
	start := time.Now()

	if shipmentID == "" {
		shipmentID = GenerateShipmentID()
	}

	s.logger.InfoContext(ctx, "processing event",
		logging.ShipmentID(shipmentID),
		logging.Backend(s.llm.Name()),
	)

	// Step 1: generate the report
	llmStart := time.Now()
	report, err := s.llm.GenerateReport(ctx, eventDescription)
	metrics.LLMRequestDuration.Observe(time.Since(llmStart).Seconds())
	if err != nil {
		return s.failure(ctx, shipmentID, eventDescription, fmt.Errorf("generate report: %w", err), start)
	}
	if report.Degraded() {
		// The degraded report is still signed and submitted; only the
		// confidence and summary reflect the outage.
		metrics.LLMDegradedReports.Inc()
		s.logger.WarnContext(ctx, "model unreachable, continuing with degraded report",
			logging.ShipmentID(shipmentID),
			logging.Error(report.Err),
		)
	}

	s.logger.InfoContext(ctx, "report generated",
		logging.ShipmentID(shipmentID),
		logging.Confidence(report.Confidence),
	)

	// Step 2: sign the canonical payload
	payload := signer.ReportPayload(shipmentID, report.Summary, report.Confidence)
	signature := s.signer.Sign(payload)

	// Step 3: submit to the chain
	tx, err := s.chain.OracleUpdate(ctx, shipmentID, report.Summary, report.Confidence, signature)
	if err != nil {
		metrics.ChainSubmissions.WithLabelValues("error").Inc()
		return s.failure(ctx, shipmentID, eventDescription, fmt.Errorf("submit report: %w", err), start)
	}

	if tx.Success {
		metrics.ChainSubmissions.WithLabelValues("success").Inc()
		s.logger.InfoContext(ctx, "transaction submitted",
			logging.ShipmentID(shipmentID),
			logging.Digest(tx.Digest),
		)
	} else {
		metrics.ChainSubmissions.WithLabelValues("failure").Inc()
		s.logger.ErrorContext(ctx, "transaction failed",
			logging.ShipmentID(shipmentID),
			logging.Error(fmt.Errorf("%s", tx.Error)),
		)
	}

	elapsed := roundSeconds(time.Since(start))
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	if tx.Success {
		metrics.EventsTotal.WithLabelValues("success").Inc()
	} else {
		metrics.EventsTotal.WithLabelValues("failure").Inc()
	}

	return &models.ProcessingResult{
		Success:          tx.Success,
		ShipmentID:       shipmentID,
		EventDescription: eventDescription,
		AIReport: &models.AIReport{
			Summary:         report.Summary,
			ConfidenceScore: report.Confidence,
		},
		Signature:      signature,
		Transaction:    tx,
		ProcessingTime: elapsed,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
}

// QueryShipment passes a shipment lookup through to the chain client.
func (s *OracleService) QueryShipment(ctx context.Context, shipmentID string) (*chain.QueryResult, error) {
	s.logger.InfoContext(ctx, "querying shipment", logging.ShipmentID(shipmentID))
	return s.chain.GetShipment(ctx, shipmentID)
}

// CheckModel probes the configured LLM backend.
func (s *OracleService) CheckModel(ctx context.Context) llm.CheckResult {
	return s.llm.CheckModel(ctx)
}

// Info reports service metadata for the status endpoint.
func (s *OracleService) Info() models.OracleInfo {
	contractPackage := s.opts.ContractPackage
	if contractPackage == "" {
		contractPackage = "Not configured"
	}
	return models.OracleInfo{
		Status:          "active",
		Network:         s.opts.Network,
		ContractPackage: contractPackage,
		Backend:         s.llm.Name(),
		Model:           s.llm.Model(),
		MockChain:       s.opts.MockChain,
		PublicKey:       s.signer.PublicKeyHex(),
	}
}

func (s *OracleService) failure(ctx context.Context, shipmentID, eventDescription string, err error, start time.Time) *models.ProcessingResult {
	metrics.EventsTotal.WithLabelValues("failure").Inc()
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())

	s.logger.ErrorContext(ctx, "event processing failed",
		logging.ShipmentID(shipmentID),
		logging.Error(err),
	)

	return &models.ProcessingResult{
		Success:          false,
		ShipmentID:       shipmentID,
		EventDescription: eventDescription,
		Error:            err.Error(),
		ProcessingTime:   roundSeconds(time.Since(start)),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

// GenerateShipmentID derives a shipment id from the current time.
func GenerateShipmentID() string {
	return fmt.Sprintf("SHIP-%d", time.Now().Unix())
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
