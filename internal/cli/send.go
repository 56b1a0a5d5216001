package cli

import (
	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/output"
	"github.com/algointent/atomix/internal/service/transaction"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// sendTo is the receiver address.
	sendTo string
	// sendAmount is the payment amount in native units.
	sendAmount string
	// sendNote is an optional note attached to the transaction.
	sendNote string
	// sendDryRun builds the transaction without signing or submitting.
	sendDryRun bool
	// sendCheckBalance verifies funds before submission.
	sendCheckBalance bool
)

// sendCmd sends a native-unit payment.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a payment",
	Long: `Send a native-unit payment from the stored wallet.

Amounts are given in native units and converted to micro-units exactly;
2.5 means 2500000 micro-units.

Example:
  atomix send --to ADDR --amount 2.5
  atomix send --to ADDR --amount 0.1 --note "invoice 42" --dry-run`,
	RunE: runSend,
}

func runSend(cmd *cobra.Command, _ []string) error {
	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	op := &transaction.Pay{
		Sender:   signer.Address(),
		Receiver: sendTo,
		Amount:   sendAmount,
		Note:     sendNote,
	}

	return executeOperations(cmd, signer, []transaction.Operation{op}, transaction.Options{
		DryRun:       sendDryRun,
		CheckBalance: sendCheckBalance,
	})
}

// executeOperations wires a service, runs the batch, and renders the result.
// Post-submission failures still carry a result; it is rendered before the
// error is returned so the user sees the batch's actual fate.
func executeOperations(cmd *cobra.Command, signer transaction.Signer, ops []transaction.Operation, opts transaction.Options) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}
	svc := newService(gateway, signer)

	ctx, cancel := contextWithTimeout(cmd, confirmationTimeout())
	defer cancel()

	result, execErr := svc.ExecuteBatch(ctx, ops, opts)
	if result != nil {
		for _, warning := range result.Warnings {
			output.Warnf("%s", warning)
		}
		if ferr := output.FormatResult(cmd.OutOrStdout(), result, formatter.Format()); ferr != nil {
			return ferr
		}
	}
	return execErr
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendTo, "to", "", "receiver address (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "amount in native units (required)")
	sendCmd.Flags().StringVar(&sendNote, "note", "", "optional note")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "build without signing or submitting")
	sendCmd.Flags().BoolVar(&sendCheckBalance, "check-balance", false, "verify funds before submitting")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("amount")
}
