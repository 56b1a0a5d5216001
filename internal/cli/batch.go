package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/algointent/atomix/internal/service/transaction"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// batchDryRun builds and links the group without signing or submitting.
	batchDryRun bool
	// batchCheckBalance verifies funds before submission.
	batchCheckBalance bool
)

// batchCmd is the parent command for batch operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run atomic batches",
	Long:  `Run a file of operations as a single all-or-nothing group.`,
}

// batchRunCmd executes a batch file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var batchRunCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a batch file as an atomic group",
	Long: `Run the operations in a YAML batch file as a single atomic group.
Either every operation commits or none do. A group holds at most 16
operations.

The file is a list of operations, each with a type and its fields:

  - type: pay
    to: ADDR
    amount: "2.5"
  - type: optin
    asset: 123
  - type: asset-transfer
    to: ADDR
    asset: 123
    amount: "10"

Supported types: pay, asset-transfer, optin, optout, nft-transfer, create-asset.
The sender for every operation is the stored wallet.

Example:
  atomix batch run payments.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchRun,
}

// batchEntry is one operation in a batch file.
type batchEntry struct {
	Type     string `yaml:"type"`
	To       string `yaml:"to"`
	Amount   string `yaml:"amount"`
	Asset    uint64 `yaml:"asset"`
	Note     string `yaml:"note"`
	Name     string `yaml:"name"`
	Unit     string `yaml:"unit"`
	URL      string `yaml:"url"`
	Total    uint64 `yaml:"total"`
	Decimals uint32 `yaml:"decimals"`
	Frozen   bool   `yaml:"frozen"`
}

func runBatchRun(cmd *cobra.Command, args []string) error {
	entries, err := loadBatchFile(args[0])
	if err != nil {
		return err
	}

	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	ops, err := batchOperations(entries, signer.Address())
	if err != nil {
		return err
	}

	return executeOperations(cmd, signer, ops, transaction.Options{
		DryRun:       batchDryRun,
		CheckBalance: batchCheckBalance,
	})
}

// loadBatchFile reads and parses a YAML batch file.
func loadBatchFile(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the user's own command line
	if err != nil {
		return nil, atomixerr.Wrap(err, "reading batch file %s", path)
	}

	var entries []batchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, atomixerr.WithSuggestion(
			atomixerr.Wrap(err, "parsing batch file %s", path),
			"the file must be a YAML list of operations",
		)
	}
	if len(entries) == 0 {
		return nil, atomixerr.ErrEmptyBatch
	}
	return entries, nil
}

// batchOperations maps file entries to operations, all sent from sender.
func batchOperations(entries []batchEntry, sender string) ([]transaction.Operation, error) {
	ops := make([]transaction.Operation, 0, len(entries))
	for i, e := range entries {
		op, err := entryOperation(e, sender)
		if err != nil {
			return nil, atomixerr.WithDetails(err, map[string]string{
				"entry": fmt.Sprintf("%d", i+1),
			})
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func entryOperation(e batchEntry, sender string) (transaction.Operation, error) {
	switch e.Type {
	case "pay":
		return &transaction.Pay{
			Sender:   sender,
			Receiver: e.To,
			Amount:   e.Amount,
			Note:     e.Note,
		}, nil
	case "asset-transfer":
		return &transaction.AssetTransfer{
			Sender:   sender,
			Receiver: e.To,
			AssetID:  e.Asset,
			Amount:   e.Amount,
			Note:     e.Note,
		}, nil
	case "optin":
		return &transaction.OptIn{
			Account: sender,
			AssetID: e.Asset,
			Note:    e.Note,
		}, nil
	case "optout":
		return &transaction.OptOut{
			Account: sender,
			AssetID: e.Asset,
			Note:    e.Note,
		}, nil
	case "nft-transfer":
		return &transaction.NFTTransfer{
			Sender:   sender,
			Receiver: e.To,
			AssetID:  e.Asset,
			Note:     e.Note,
		}, nil
	case "create-asset":
		return &transaction.CreateAsset{
			Creator:       sender,
			Name:          e.Name,
			UnitName:      e.Unit,
			URL:           e.URL,
			Total:         e.Total,
			Decimals:      e.Decimals,
			DefaultFrozen: e.Frozen,
			Note:          e.Note,
		}, nil
	case "":
		return nil, atomixerr.WithSuggestion(atomixerr.ErrMissingField, "every entry needs a type")
	default:
		return nil, atomixerr.WithDetails(atomixerr.ErrUnsupportedOperation, map[string]string{
			"type": e.Type,
		})
	}
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchRunCmd)

	batchRunCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "build without signing or submitting")
	batchRunCmd.Flags().BoolVar(&batchCheckBalance, "check-balance", false, "verify funds before submitting")
}
