package cli

import (
	"github.com/spf13/cobra"
)

// statusCmd reports node or transaction status.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var statusCmd = &cobra.Command{
	Use:   "status [txid]",
	Short: "Show node or transaction status",
	Long: `Without arguments, show the connected node's latest round. With a
transaction id, query that transaction's fate. Querying is always safe;
it never resubmits anything.

Example:
  atomix status
  atomix status H4GZ6...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

// nodeStatusView is the JSON shape for node status output.
type nodeStatusView struct {
	Round   uint64 `json:"round"`
	NodeURL string `json:"node_url"`
}

// txnStatusView is the JSON shape for transaction status output.
type txnStatusView struct {
	TxID           string `json:"txid"`
	Confirmed      bool   `json:"confirmed"`
	ConfirmedRound uint64 `json:"confirmed_round,omitempty"`
	AssetID        uint64 `json:"asset_id,omitempty"`
	PoolError      string `json:"pool_error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	gateway, err := newGateway()
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, defaultCommandTimeout)
	defer cancel()

	w := cmd.OutOrStdout()

	if len(args) == 0 {
		status, err := gateway.Status(ctx)
		if err != nil {
			return err
		}
		view := nodeStatusView{Round: status.LastRound, NodeURL: cfg.GetNodeURL()}
		if formatter.IsJSON() {
			return formatter.Print(view)
		}
		out(w, "Node: %s\n", view.NodeURL)
		out(w, "Round: %d\n", view.Round)
		return nil
	}

	txid := args[0]
	pending, err := gateway.PendingTransactionInformation(ctx, txid)
	if err != nil {
		return err
	}

	view := txnStatusView{
		TxID:           txid,
		Confirmed:      pending.ConfirmedRound > 0,
		ConfirmedRound: pending.ConfirmedRound,
		AssetID:        pending.AssetIndex,
		PoolError:      pending.PoolError,
	}
	if formatter.IsJSON() {
		return formatter.Print(view)
	}

	out(w, "Transaction: %s\n", view.TxID)
	switch {
	case view.PoolError != "":
		out(w, "Status: rejected (%s)\n", view.PoolError)
	case view.Confirmed:
		out(w, "Status: confirmed in round %d\n", view.ConfirmedRound)
		if view.AssetID != 0 {
			out(w, "Created asset: %d\n", view.AssetID)
		}
	default:
		outln(w, "Status: pending")
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(statusCmd)
}
