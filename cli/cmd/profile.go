package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/pkg/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile management commands",
	Long:  "Manage named oracle endpoints in the cargoctl config file",
}

var profileSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or update a profile",
	Example: `  cargoctl profile set local --server http://localhost:8000
  cargoctl profile set staging --server http://oracle.staging:8000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		if err := cfg.SaveProfile(args[0], server); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		output.Success("Profile '%s' saved and set as current", args[0])
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Profiles) == 0 {
			output.Info("No profiles configured. Create one with 'cargoctl profile set'.")
			return nil
		}

		table := output.NewTable([]string{"NAME", "SERVER", "CURRENT"})
		for name, profile := range cfg.Profiles {
			current := ""
			if name == cfg.CurrentProfile {
				current = "*"
			}
			table.AddRow([]string{name, profile.ServerURL, current})
		}
		table.Render()
		return nil
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveProfile(args[0]); err != nil {
			return fmt.Errorf("failed to remove profile: %w", err)
		}
		output.Success("Profile '%s' removed", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileRemoveCmd)

	profileSetCmd.Flags().String("server", "http://localhost:8000", "Oracle API URL")
}
