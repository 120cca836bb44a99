package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/internal/client"
	"github.com/cargolens-systems/cargolens-oracle/cli/pkg/output"
)

var shipmentCmd = &cobra.Command{
	Use:   "shipment",
	Short: "Shipment query commands",
	Long:  "Query on-chain shipment state recorded by the oracle",
}

var shipmentGetCmd = &cobra.Command{
	Use:   "get <shipment-id>",
	Short: "Get a shipment record",
	Example: `  cargoctl shipment get SHIP-1001
  cargoctl shipment get SHIP-1001 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		oracleClient := client.NewOracleClient(serverURL(cmd))
		result, err := oracleClient.GetShipment(args[0])
		if err != nil {
			return fmt.Errorf("failed to query shipment: %w", err)
		}

		format, _ := cmd.Flags().GetString("output")
		if format == "json" {
			return output.JSON(result)
		}

		record := result.Data
		table := output.NewTable([]string{"FIELD", "VALUE"})
		table.AddRow([]string{"Shipment", record.ShipmentID})
		table.AddRow([]string{"Status", record.Status})
		table.AddRow([]string{"Confidence", fmt.Sprintf("%d", record.ConfidenceScore)})
		table.AddRow([]string{"Recorded", time.Unix(record.Timestamp, 0).UTC().Format(time.RFC3339)})
		table.AddRow([]string{"Summary", record.AISummary})
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shipmentCmd)
	shipmentCmd.AddCommand(shipmentGetCmd)

	shipmentGetCmd.Flags().String("server", "http://localhost:8000", "Oracle API URL")
}
