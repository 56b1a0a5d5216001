package transaction

import (
	"bytes"
	"context"
	"fmt"

	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/txn"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Service executes batches of operations as atomic groups. Every failure
// mode before submission is detected before anything reaches the ledger;
// after submission the service never retries, because a resubmitted batch
// could apply twice.
type Service struct {
	gateway Gateway
	signer  Signer
	config  ConfigProvider
	logger  LogWriter
}

// Config holds dependencies for the transaction service.
type Config struct {
	Gateway Gateway
	Signer  Signer
	Config  ConfigProvider
	Logger  LogWriter
}

// NewService creates a new transaction service.
func NewService(cfg *Config) *Service {
	return &Service{
		gateway: cfg.Gateway,
		signer:  cfg.Signer,
		config:  cfg.Config,
		logger:  cfg.Logger,
	}
}

// Options controls execution behavior.
type Options struct {
	// DryRun builds and links the batch but stops before signing and
	// submission.
	DryRun bool
	// CheckBalance verifies the signer's native balance covers the
	// batch's payments and fees before submitting.
	CheckBalance bool
}

// Execute runs a single operation as a batch of one.
func (s *Service) Execute(ctx context.Context, op Operation, opts Options) (*Result, error) {
	return s.ExecuteBatch(ctx, []Operation{op}, opts)
}

// ExecuteBatch validates, builds, links, signs, submits and confirms a
// batch of operations. Validation of every member completes before the
// first node call; one invalid member fails the whole batch with nothing
// submitted. Once the batch has been handed to the ledger, failures return
// both a non-nil Result describing the outcome and the error, so callers
// can report what happened without resubmitting.
func (s *Service) ExecuteBatch(ctx context.Context, ops []Operation, opts Options) (*Result, error) {
	if len(ops) == 0 {
		return nil, atomixerr.ErrEmptyBatch
	}
	if len(ops) > ledger.MaxGroupSize {
		return nil, atomixerr.WithDetails(atomixerr.ErrGroupTooLarge,
			map[string]string{
				"size": fmt.Sprintf("%d", len(ops)),
				"max":  fmt.Sprintf("%d", ledger.MaxGroupSize),
			})
	}

	// Static validation over the whole batch, before any node call.
	for i, op := range ops {
		if err := ValidateOperation(op); err != nil {
			return nil, withOpIndex(err, i)
		}
	}

	// One parameter fetch per batch: group members must share a validity
	// window.
	params, err := s.gateway.SuggestedParams(ctx)
	if err != nil {
		return nil, atomixerr.Wrap(err, "fetching transaction parameters")
	}

	normalizer := NewNormalizer(s.gateway, s.config.GetFallbackAssetDecimals(), s.logger)
	builder := NewBuilder(normalizer)

	built := make([]BuiltTransaction, len(ops))
	for i, op := range ops {
		bt, buildErr := builder.Build(ctx, op, params)
		if buildErr != nil {
			return nil, withOpIndex(buildErr, i)
		}
		built[i] = bt
	}

	group, err := Compose(built)
	if err != nil {
		return nil, err
	}

	result := &Result{
		GroupID:   group.GroupID,
		Summaries: summaries(group),
		Warnings:  warnings(group),
		FeePaid:   totalFee(group),
	}
	result.TxIDs, err = transactionIDs(group)
	if err != nil {
		return nil, err
	}

	if opts.CheckBalance {
		if err = s.checkBalances(ctx, group); err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		result.Status = StatusDryRun
		s.logger.Debug("dry run: batch of %d linked, nothing submitted", len(ops))
		return result, nil
	}

	raw, err := s.sign(group)
	if err != nil {
		return nil, err
	}

	// Point of no return. From here the batch may exist on the ledger even
	// if we never hear back.
	txid, err := s.gateway.SubmitRawTransaction(ctx, raw)
	if err != nil {
		if atomixerr.Is(err, atomixerr.ErrSubmissionRejected) {
			result.Status = StatusRejected
			result.Message = rejectionMessage(err)
			s.logger.Error("batch rejected by ledger: %s", result.Message)
			return result, err
		}
		// Transport failure after submission started: the outcome is
		// unknown, not a rejection.
		result.Status = StatusIndeterminate
		s.logger.Error("submission outcome unknown: %v", err)
		return result, atomixerr.WithSuggestion(
			atomixerr.Wrap(atomixerr.ErrConfirmationTimeout, "submission outcome unknown"),
			"re-query the ledger for transaction "+result.TxIDs[0]+" before doing anything else; do not resubmit")
	}
	s.logger.Debug("submitted batch, lead transaction %s", txid)

	pending, err := s.gateway.WaitForConfirmation(ctx, result.TxIDs[0], s.config.GetWaitRounds())
	switch {
	case err == nil:
		result.Status = StatusConfirmed
		result.ConfirmedRound = pending.ConfirmedRound
		result.AssetID = pending.AssetIndex
		s.logger.Info("batch confirmed in round %d", pending.ConfirmedRound)
		return result, nil
	case atomixerr.Is(err, atomixerr.ErrSubmissionRejected):
		result.Status = StatusRejected
		result.Message = rejectionMessage(err)
		return result, err
	case atomixerr.Is(err, atomixerr.ErrConfirmationTimeout):
		result.Status = StatusIndeterminate
		return result, err
	default:
		result.Status = StatusIndeterminate
		return result, atomixerr.Wrap(err, "waiting for confirmation")
	}
}

// sign hands the whole group to the signer and concatenates the encoded
// signed members in execution order, the wire form of an atomic group.
func (s *Service) sign(group *AtomicGroup) ([]byte, error) {
	signed, err := s.signer.SignTransactions(group.Transactions())
	if err != nil {
		return nil, atomixerr.Wrap(err, "signing batch")
	}
	if len(signed) != len(group.Built) {
		return nil, atomixerr.New("SIGNER_MISMATCH",
			fmt.Sprintf("signer returned %d transactions for a batch of %d", len(signed), len(group.Built)))
	}
	return bytes.Join(signed, nil), nil
}

// checkBalances verifies each sending account's native balance covers its
// payments plus its share of fees. Asset balances are left to the ledger:
// holdings can change between check and apply, and the group is atomic
// either way.
func (s *Service) checkBalances(ctx context.Context, group *AtomicGroup) error {
	required := make(map[string]uint64)
	for i := range group.Built {
		t := &group.Built[i].Txn
		required[t.Sender] += t.Fee
		if t.Type == txn.TypePayment {
			required[t.Sender] += t.Amount
		}
	}

	for sender, need := range required {
		account, err := s.gateway.AccountInformation(ctx, sender)
		if err != nil {
			return atomixerr.Wrap(err, "checking balance of %s", short(sender))
		}
		available := account.Amount - min(account.Amount, account.MinBalance)
		if available < need {
			return atomixerr.WithDetails(atomixerr.ErrInsufficientFunds,
				map[string]string{
					"account":   sender,
					"required":  ledger.FormatDecimalAmount(need, ledger.NativeDecimals),
					"available": ledger.FormatDecimalAmount(available, ledger.NativeDecimals),
				})
		}
	}
	return nil
}

func transactionIDs(group *AtomicGroup) ([]string, error) {
	ids := make([]string, len(group.Built))
	for i := range group.Built {
		id, err := txn.ID(&group.Built[i].Txn)
		if err != nil {
			return nil, atomixerr.Wrap(err, "computing transaction ID")
		}
		ids[i] = id
	}
	return ids, nil
}

func summaries(group *AtomicGroup) []string {
	out := make([]string, len(group.Built))
	for i := range group.Built {
		out[i] = group.Built[i].Summary
	}
	return out
}

func warnings(group *AtomicGroup) []string {
	var out []string
	for i := range group.Built {
		if w := group.Built[i].Warning; w != "" {
			out = append(out, w)
		}
	}
	return out
}

func totalFee(group *AtomicGroup) uint64 {
	var fee uint64
	for i := range group.Built {
		fee += group.Built[i].Txn.Fee
	}
	return fee
}

// withOpIndex tags an error with the failing batch position, keeping any
// details the error already carries.
func withOpIndex(err error, i int) error {
	details := map[string]string{"operation_index": fmt.Sprintf("%d", i)}
	var ae *atomixerr.AtomixError
	if atomixerr.As(err, &ae) {
		for k, v := range ae.Details {
			details[k] = v
		}
	}
	return atomixerr.WithDetails(err, details)
}

// rejectionMessage pulls the ledger's own message out of a rejection error.
func rejectionMessage(err error) string {
	var ae *atomixerr.AtomixError
	if atomixerr.As(err, &ae) {
		if msg, ok := ae.Details["node_message"]; ok {
			return msg
		}
	}
	return err.Error()
}
