package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/internal/seeder"
	"github.com/cargolens-systems/cargolens-oracle/cli/pkg/output"
)

var (
	seedCfgFile   string
	seedServer    string
	seedCount     int
	seedInterval  time.Duration
	seedScenarios string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Event seeder commands",
	Long:  "Generate realistic logistics events and run them through the oracle pipeline",
}

var seedRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the event seeder",
	Long: `Generate and submit logistics events.

Configuration cascade (priority order):
  1. Command-line flags
  2. ./seed.yaml (project directory)
  3. ~/.cargoctl/seed.yaml (user directory)
  4. Built-in defaults

Examples:
  # Submit 10 events to the local oracle
  cargoctl seed run

  # Heavier run against a remote oracle
  cargoctl seed run --server http://oracle.staging:8000 --count 100

  # Only delay and customs scenarios
  cargoctl seed run --scenarios delay,customs_hold`,
	RunE: runSeed,
}

var seedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		output.Info("Available scenarios:")
		for _, name := range seeder.ScenarioNames() {
			fmt.Printf("  - %s\n", name)
		}
	},
}

var seedValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate seeder configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := seeder.LoadConfig(seedCfgFile)
		if err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}

		output.Success("Configuration is valid")
		output.Info("  Server: %s", config.Defaults.ServerURL)
		output.Info("  Event count: %d", config.Defaults.Count)
		output.Info("  Interval: %v", config.Defaults.Interval)
		if len(config.Scenarios) > 0 {
			output.Info("  Scenarios: %s", strings.Join(config.Scenarios, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedRunCmd)
	seedCmd.AddCommand(seedListCmd)
	seedCmd.AddCommand(seedValidateCmd)

	seedCmd.PersistentFlags().StringVar(&seedCfgFile, "config", "", "config file (default: ./seed.yaml or ~/.cargoctl/seed.yaml)")

	seedRunCmd.Flags().StringVar(&seedServer, "server", "", "Oracle API URL")
	seedRunCmd.Flags().IntVarP(&seedCount, "count", "c", 0, "Number of events to submit")
	seedRunCmd.Flags().DurationVarP(&seedInterval, "interval", "i", 0, "Delay between events")
	seedRunCmd.Flags().StringVar(&seedScenarios, "scenarios", "", "Comma-separated scenario names")
}

func runSeed(cmd *cobra.Command, args []string) error {
	config, err := seeder.LoadConfig(seedCfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("server") {
		config.Defaults.ServerURL = seedServer
	}
	if cmd.Flags().Changed("count") {
		config.Defaults.Count = seedCount
	}
	if cmd.Flags().Changed("interval") {
		config.Defaults.Interval = seedInterval
	}
	if cmd.Flags().Changed("scenarios") {
		names := strings.Split(seedScenarios, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		config.Scenarios = names
	}

	if err := config.Validate(); err != nil {
		return err
	}

	result, err := seeder.NewRunner(config).Run()
	if err != nil {
		return fmt.Errorf("seeder failed: %w", err)
	}

	output.Success("Submitted %d events in %v (%d failed, %d degraded)",
		result.Sent, result.Elapsed.Round(time.Millisecond), result.Failed, result.Degraded)
	return nil
}
