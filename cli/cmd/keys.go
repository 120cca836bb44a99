package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cargolens-systems/cargolens-oracle/cli/pkg/output"
	"github.com/cargolens-systems/cargolens-oracle/common/signer"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Oracle signing key commands",
	Long:  "Generate Ed25519 keypairs and verify report signatures offline",
}

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new Ed25519 keypair",
	Long: `Generate a new Ed25519 keypair for oracle signing.

Set the private key as oracle.private_key (or ORACLE_ORACLE_PRIVATE_KEY)
on the oracle service, and distribute the public key to verifiers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := signer.Generate()
		if err != nil {
			return fmt.Errorf("failed to generate keypair: %w", err)
		}

		format, _ := cmd.Flags().GetString("output")
		if format == "json" {
			return output.JSON(map[string]string{
				"private_key": s.PrivateKeyHex(),
				"public_key":  s.PublicKeyHex(),
			})
		}

		output.Success("Generated Ed25519 keypair")
		output.Info("Private key: %s", s.PrivateKeyHex())
		output.Info("Public key:  %s", s.PublicKeyHex())
		output.Warn("Store the private key securely. It is not recoverable.")
		return nil
	},
}

var keysVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a signed report",
	Long:  "Rebuild the report payload and check its signature against the oracle public key",
	Example: `  cargoctl keys verify --shipment SHIP-1001 --summary "Truck delayed" \
    --confidence 82 --signature <hex> --public-key <hex>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shipment, _ := cmd.Flags().GetString("shipment")
		summary, _ := cmd.Flags().GetString("summary")
		confidence, _ := cmd.Flags().GetInt("confidence")
		signature, _ := cmd.Flags().GetString("signature")
		publicKey, _ := cmd.Flags().GetString("public-key")

		if shipment == "" || summary == "" || signature == "" || publicKey == "" {
			return fmt.Errorf("--shipment, --summary, --signature and --public-key are required")
		}

		payload := signer.ReportPayload(shipment, summary, confidence)
		if !signer.Verify(payload, signature, publicKey) {
			output.Error("Signature is INVALID for payload %q", payload)
			return fmt.Errorf("signature verification failed")
		}

		output.Success("Signature is valid for payload %q", payload)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysGenerateCmd)
	keysCmd.AddCommand(keysVerifyCmd)

	keysVerifyCmd.Flags().StringP("shipment", "s", "", "Shipment ID")
	keysVerifyCmd.Flags().String("summary", "", "Report summary text")
	keysVerifyCmd.Flags().IntP("confidence", "c", 0, "Confidence score")
	keysVerifyCmd.Flags().String("signature", "", "Hex signature to verify")
	keysVerifyCmd.Flags().String("public-key", "", "Hex Ed25519 public key")
}
