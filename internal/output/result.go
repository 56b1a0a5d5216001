package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/service/transaction"
)

// ResultOutput is the JSON shape of an execution result.
type ResultOutput struct {
	Status         string   `json:"status"`
	TxIDs          []string `json:"txids"`
	GroupID        string   `json:"group_id,omitempty"`
	ConfirmedRound uint64   `json:"confirmed_round,omitempty"`
	AssetID        uint64   `json:"asset_id,omitempty"`
	FeePaid        string   `json:"fee_paid"`
	Operations     []string `json:"operations"`
	Warnings       []string `json:"warnings,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// FormatResult renders an execution result.
func FormatResult(w io.Writer, r *transaction.Result, format Format) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(ResultOutput{
			Status:         r.Status,
			TxIDs:          r.TxIDs,
			GroupID:        r.GroupID,
			ConfirmedRound: r.ConfirmedRound,
			AssetID:        r.AssetID,
			FeePaid:        ledger.FormatDecimalAmount(r.FeePaid, ledger.NativeDecimals),
			Operations:     r.Summaries,
			Warnings:       r.Warnings,
			Message:        r.Message,
		})
	}
	return formatResultText(w, r)
}

func formatResultText(w io.Writer, r *transaction.Result) error {
	var sb strings.Builder

	switch r.Status {
	case transaction.StatusConfirmed:
		sb.WriteString(fmt.Sprintf("Confirmed in round %d\n", r.ConfirmedRound))
	case transaction.StatusRejected:
		sb.WriteString("Rejected by the ledger\n")
		if r.Message != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", r.Message))
		}
	case transaction.StatusIndeterminate:
		sb.WriteString("Outcome unknown: the confirmation wait ran out\n")
		sb.WriteString("  Re-query the transaction below before doing anything else. Do not resubmit.\n")
	case transaction.StatusDryRun:
		sb.WriteString("Dry run: batch built and linked, nothing submitted\n")
	}

	for i, summary := range r.Summaries {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, summary))
		if i < len(r.TxIDs) {
			sb.WriteString(fmt.Sprintf("     txid %s\n", r.TxIDs[i]))
		}
	}

	if r.GroupID != "" {
		sb.WriteString(fmt.Sprintf("Group: %s\n", r.GroupID))
	}
	if r.AssetID != 0 {
		sb.WriteString(fmt.Sprintf("Created asset: %d\n", r.AssetID))
	}
	if r.FeePaid > 0 && r.Status != transaction.StatusDryRun {
		sb.WriteString(fmt.Sprintf("Fee paid: %s\n", ledger.FormatDecimalAmount(r.FeePaid, ledger.NativeDecimals)))
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}
