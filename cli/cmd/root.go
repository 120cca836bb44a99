package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cargoctl",
	Short: "CargoLens Oracle CLI",
	Long: `cargoctl is the command-line interface for the CargoLens supply chain oracle.

Process logistics events through the AI pipeline, query on-chain shipment
state, manage oracle signing keys, and seed demo traffic from your terminal.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.cargoctl/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "default", "profile to use")
	rootCmd.PersistentFlags().String("output", "table", "output format: table, json")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}
}

// serverURL resolves the oracle URL: --server flag if changed, then the
// active profile, then the default.
func serverURL(cmd *cobra.Command) string {
	if cmd.Flags().Changed("server") {
		url, _ := cmd.Flags().GetString("server")
		return url
	}

	profileName, _ := cmd.Flags().GetString("profile")
	if profile, err := cfg.GetProfile(profileName); err == nil && profile.ServerURL != "" {
		return profile.ServerURL
	}

	url, _ := cmd.Flags().GetString("server")
	return url
}
