package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/internal/client"
	"github.com/cargolens-systems/cargolens-oracle/cli/pkg/output"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a logistics event",
	Long:  "Run a free-text logistics event through the oracle pipeline: AI report, signature, chain submission",
	Example: `  cargoctl process --event "Truck delayed 3 hours due to storm"
  cargoctl process --event "Container seal broken" --shipment SHIP-1001
  cargoctl process --event "Customs hold at Rotterdam" --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		event, _ := cmd.Flags().GetString("event")
		shipment, _ := cmd.Flags().GetString("shipment")

		if event == "" {
			return fmt.Errorf("--event is required")
		}

		oracleClient := client.NewOracleClient(serverURL(cmd))
		result, err := oracleClient.ProcessEvent(event, shipment)
		if err != nil {
			return fmt.Errorf("failed to process event: %w", err)
		}

		format, _ := cmd.Flags().GetString("output")
		if format == "json" {
			return output.JSON(result)
		}

		output.Success("Event processed in %.2fs", result.ProcessingTime)
		output.Info("Shipment:   %s", result.ShipmentID)
		if result.AIReport != nil {
			output.Info("Confidence: %d", result.AIReport.ConfidenceScore)
			fmt.Println()
			fmt.Println(result.AIReport.Summary)
			fmt.Println()
		}
		output.Info("Signature:  %s", result.Signature)
		if result.Transaction != nil {
			output.Info("Tx digest:  %s", result.Transaction.Digest)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("event", "e", "", "Free-text event description")
	processCmd.Flags().StringP("shipment", "s", "", "Shipment ID (generated when omitted)")
	processCmd.Flags().String("server", "http://localhost:8000", "Oracle API URL")
}
