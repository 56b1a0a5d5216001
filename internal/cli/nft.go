package cli

import (
	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/service/transaction"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// nftSendTo is the receiver address.
	nftSendTo string
	// nftSendID selects the token.
	nftSendID uint64
	// nftSendNote is an optional note.
	nftSendNote string
	// nftSendDryRun builds without signing or submitting.
	nftSendDryRun bool
)

// nftCmd is the parent command for one-of-one token operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "Transfer one-of-one tokens",
	Long:  `Transfer tokens whose supply is a single indivisible unit.`,
}

// nftSendCmd transfers exactly one unit of a token.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var nftSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a one-of-one token",
	Long: `Send exactly one unit of a token. No amount is taken; ownership
moves whole. The receiver must have opted in to the token.

Example:
  atomix nft send --to ADDR --asset 456`,
	RunE: runNFTSend,
}

func runNFTSend(cmd *cobra.Command, _ []string) error {
	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	op := &transaction.NFTTransfer{
		Sender:   signer.Address(),
		Receiver: nftSendTo,
		AssetID:  nftSendID,
		Note:     nftSendNote,
	}

	return executeOperations(cmd, signer, []transaction.Operation{op}, transaction.Options{
		DryRun: nftSendDryRun,
	})
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(nftCmd)
	nftCmd.AddCommand(nftSendCmd)

	nftSendCmd.Flags().StringVar(&nftSendTo, "to", "", "receiver address (required)")
	nftSendCmd.Flags().Uint64Var(&nftSendID, "asset", 0, "token identifier (required)")
	nftSendCmd.Flags().StringVar(&nftSendNote, "note", "", "optional note")
	nftSendCmd.Flags().BoolVar(&nftSendDryRun, "dry-run", false, "build without signing or submitting")
	_ = nftSendCmd.MarkFlagRequired("to")
	_ = nftSendCmd.MarkFlagRequired("asset")
}
