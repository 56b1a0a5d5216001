package cli

import (
	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/service/transaction"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// assetCreateName is the asset's full name.
	assetCreateName string
	// assetCreateUnit is the asset's unit ticker.
	assetCreateUnit string
	// assetCreateURL is an optional metadata URL.
	assetCreateURL string
	// assetCreateTotal is the total supply in base units.
	assetCreateTotal uint64
	// assetCreateDecimals is the display precision.
	assetCreateDecimals uint32
	// assetCreateFrozen marks holdings frozen by default.
	assetCreateFrozen bool

	// assetTransferTo is the receiver address.
	assetTransferTo string
	// assetTransferID selects the asset.
	assetTransferID uint64
	// assetTransferAmount is the amount in display units.
	assetTransferAmount string
	// assetTransferNote is an optional note.
	assetTransferNote string

	// assetOptInID selects the asset to opt in to.
	assetOptInID uint64

	// assetOptOutID selects the asset to opt out of.
	assetOptOutID uint64
	// assetOptOutYes skips the interactive confirmation.
	assetOptOutYes bool

	// assetDryRun builds without signing or submitting.
	assetDryRun bool
)

// assetCmd is the parent command for asset operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Create and move assets",
	Long:  `Create assets, transfer them, and manage asset opt-ins.`,
}

// assetCreateCmd creates a new asset.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var assetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new asset",
	Long: `Create a new asset with the stored wallet as creator and manager.

Names longer than 32 bytes are truncated. If no unit ticker is given,
one is derived from the name.

Example:
  atomix asset create --name "My Token" --total 1000000 --decimals 2
  atomix asset create --name "One of One" --unit NFT --total 1`,
	RunE: runAssetCreate,
}

// assetTransferCmd transfers asset units.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var assetTransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer asset units",
	Long: `Transfer asset units from the stored wallet.

Amounts are given in display units and converted using the asset's
on-ledger precision. The receiver must have opted in to the asset.

Example:
  atomix asset transfer --to ADDR --asset 123 --amount 10.5`,
	RunE: runAssetTransfer,
}

// assetOptInCmd opts the wallet in to an asset.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var assetOptInCmd = &cobra.Command{
	Use:   "optin",
	Short: "Opt in to an asset",
	Long: `Opt the stored wallet in to an asset so it can receive units.

Example:
  atomix asset optin --asset 123`,
	RunE: runAssetOptIn,
}

// assetOptOutCmd opts the wallet out of an asset.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var assetOptOutCmd = &cobra.Command{
	Use:   "optout",
	Short: "Opt out of an asset",
	Long: `Opt the stored wallet out of an asset and remove the holding.

WARNING: any remaining balance of the asset is permanently destroyed.

Example:
  atomix asset optout --asset 123`,
	RunE: runAssetOptOut,
}

func runAssetCreate(cmd *cobra.Command, _ []string) error {
	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	op := &transaction.CreateAsset{
		Creator:       signer.Address(),
		Name:          assetCreateName,
		UnitName:      assetCreateUnit,
		URL:           assetCreateURL,
		Total:         assetCreateTotal,
		Decimals:      assetCreateDecimals,
		DefaultFrozen: assetCreateFrozen,
	}

	return executeOperations(cmd, signer, []transaction.Operation{op}, transaction.Options{
		DryRun: assetDryRun,
	})
}

func runAssetTransfer(cmd *cobra.Command, _ []string) error {
	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	op := &transaction.AssetTransfer{
		Sender:   signer.Address(),
		Receiver: assetTransferTo,
		AssetID:  assetTransferID,
		Amount:   assetTransferAmount,
		Note:     assetTransferNote,
	}

	return executeOperations(cmd, signer, []transaction.Operation{op}, transaction.Options{
		DryRun: assetDryRun,
	})
}

func runAssetOptIn(cmd *cobra.Command, _ []string) error {
	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	op := &transaction.OptIn{
		Account: signer.Address(),
		AssetID: assetOptInID,
	}

	return executeOperations(cmd, signer, []transaction.Operation{op}, transaction.Options{
		DryRun: assetDryRun,
	})
}

func runAssetOptOut(cmd *cobra.Command, _ []string) error {
	if !assetDryRun && !assetOptOutYes {
		if !promptConfirmFn("Opting out destroys any remaining balance of this asset. Continue?") {
			return atomixerr.WithSuggestion(atomixerr.ErrInvalidInput, "opt-out canceled")
		}
	}

	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	op := &transaction.OptOut{
		Account: signer.Address(),
		AssetID: assetOptOutID,
	}

	return executeOperations(cmd, signer, []transaction.Operation{op}, transaction.Options{
		DryRun: assetDryRun,
	})
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(assetCmd)
	assetCmd.AddCommand(assetCreateCmd)
	assetCmd.AddCommand(assetTransferCmd)
	assetCmd.AddCommand(assetOptInCmd)
	assetCmd.AddCommand(assetOptOutCmd)

	assetCmd.PersistentFlags().BoolVar(&assetDryRun, "dry-run", false, "build without signing or submitting")

	assetCreateCmd.Flags().StringVar(&assetCreateName, "name", "", "asset name (required)")
	assetCreateCmd.Flags().StringVar(&assetCreateUnit, "unit", "", "unit ticker (derived from name if empty)")
	assetCreateCmd.Flags().StringVar(&assetCreateURL, "url", "", "metadata URL")
	assetCreateCmd.Flags().Uint64Var(&assetCreateTotal, "total", 0, "total supply in base units (required)")
	assetCreateCmd.Flags().Uint32Var(&assetCreateDecimals, "decimals", 0, "display precision")
	assetCreateCmd.Flags().BoolVar(&assetCreateFrozen, "frozen", false, "freeze holdings by default")
	_ = assetCreateCmd.MarkFlagRequired("name")
	_ = assetCreateCmd.MarkFlagRequired("total")

	assetTransferCmd.Flags().StringVar(&assetTransferTo, "to", "", "receiver address (required)")
	assetTransferCmd.Flags().Uint64Var(&assetTransferID, "asset", 0, "asset identifier (required)")
	assetTransferCmd.Flags().StringVar(&assetTransferAmount, "amount", "", "amount in display units (required)")
	assetTransferCmd.Flags().StringVar(&assetTransferNote, "note", "", "optional note")
	_ = assetTransferCmd.MarkFlagRequired("to")
	_ = assetTransferCmd.MarkFlagRequired("asset")
	_ = assetTransferCmd.MarkFlagRequired("amount")

	assetOptInCmd.Flags().Uint64Var(&assetOptInID, "asset", 0, "asset identifier (required)")
	_ = assetOptInCmd.MarkFlagRequired("asset")

	assetOptOutCmd.Flags().Uint64Var(&assetOptOutID, "asset", 0, "asset identifier (required)")
	assetOptOutCmd.Flags().BoolVar(&assetOptOutYes, "yes", false, "skip confirmation prompt")
	_ = assetOptOutCmd.MarkFlagRequired("asset")
}
