package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/internal/client"
	"github.com/cargolens-systems/cargolens-oracle/cli/pkg/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show oracle status",
	Long:  "Display oracle metadata: network, contract package, AI backend, signing identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		oracleClient := client.NewOracleClient(serverURL(cmd))
		status, err := oracleClient.Status()
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		format, _ := cmd.Flags().GetString("output")
		if format == "json" {
			return output.JSON(status)
		}

		table := output.NewTable([]string{"FIELD", "VALUE"})
		table.AddRow([]string{"Status", status.Status})
		table.AddRow([]string{"Network", status.Network})
		table.AddRow([]string{"Contract", status.ContractPackage})
		table.AddRow([]string{"Chain backend", status.Backend})
		table.AddRow([]string{"AI model", status.AIModel})
		table.AddRow([]string{"Mock chain", fmt.Sprintf("%t", status.MockChain)})
		table.AddRow([]string{"Public key", status.OraclePublicKey})
		table.Render()
		return nil
	},
}

var llmTestCmd = &cobra.Command{
	Use:   "llm-test",
	Short: "Test the oracle's LLM endpoint",
	Long:  "Ask the oracle to probe its configured model endpoint and report reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		oracleClient := client.NewOracleClient(serverURL(cmd))
		result, err := oracleClient.LLMTest()
		if err != nil {
			return fmt.Errorf("failed to test LLM endpoint: %w", err)
		}

		format, _ := cmd.Flags().GetString("output")
		if format == "json" {
			return output.JSON(result)
		}

		if result.Success {
			output.Success("%s (status %d)", result.Message, result.StatusCode)
		} else {
			output.Error("%s (status %d)", result.Message, result.StatusCode)
			if result.Details != "" {
				output.Info("Details: %s", result.Details)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(llmTestCmd)

	statusCmd.Flags().String("server", "http://localhost:8000", "Oracle API URL")
	llmTestCmd.Flags().String("server", "http://localhost:8000", "Oracle API URL")
}
