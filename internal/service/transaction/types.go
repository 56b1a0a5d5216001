// Package transaction composes, signs and submits atomic transaction
// groups: a batch of heterogeneous operations that the ledger executes
// all-or-nothing.
package transaction

import (
	"github.com/algointent/atomix/internal/ledger/txn"
)

// OpType identifies an operation variant.
type OpType string

// Supported operation types. The set is closed: the builder rejects
// anything else.
const (
	OpPay           OpType = "pay"
	OpAssetTransfer OpType = "asset-transfer"
	OpOptIn         OpType = "opt-in"
	OpOptOut        OpType = "opt-out"
	OpNFTTransfer   OpType = "nft-transfer"
	OpCreateAsset   OpType = "create-asset"
)

// Operation is one member of an atomic batch. The concrete types below are
// the only implementations; the unexported method keeps the set closed.
type Operation interface {
	OperationType() OpType
	isOperation()
}

// Pay transfers native units.
type Pay struct {
	Sender   string
	Receiver string
	Amount   string // Decimal string in native units, e.g. "2.5"
	Note     string
}

// OperationType implements Operation.
func (Pay) OperationType() OpType { return OpPay }
func (Pay) isOperation()          {}

// AssetTransfer transfers units of an asset. The sender must hold the
// asset and the receiver must have opted in.
type AssetTransfer struct {
	Sender   string
	Receiver string
	AssetID  uint64
	Amount   string // Decimal string in the asset's own precision
	Note     string
}

// OperationType implements Operation.
func (AssetTransfer) OperationType() OpType { return OpAssetTransfer }
func (AssetTransfer) isOperation()          {}

// OptIn registers the account as a holder of the asset via a zero
// self-transfer.
type OptIn struct {
	Account string
	AssetID uint64
	Note    string
}

// OperationType implements Operation.
func (OptIn) OperationType() OpType { return OpOptIn }
func (OptIn) isOperation()          {}

// OptOut deregisters the account's holding by closing it back to its own
// account. Any residual balance is burned with the holding; this is
// destructive and the caller is warned at build time.
type OptOut struct {
	Account string
	AssetID uint64
	Note    string
}

// OperationType implements Operation.
func (OptOut) OperationType() OpType { return OpOptOut }
func (OptOut) isOperation()          {}

// NFTTransfer transfers a single indivisible token: an asset transfer with
// the amount pinned to one whole unit.
type NFTTransfer struct {
	Sender   string
	Receiver string
	AssetID  uint64
	Note     string
}

// OperationType implements Operation.
func (NFTTransfer) OperationType() OpType { return OpNFTTransfer }
func (NFTTransfer) isOperation()          {}

// CreateAsset mints a new asset. Name, unit name and URL are truncated to
// the protocol's limits; an empty unit name is derived from the name.
type CreateAsset struct {
	Creator       string
	Name          string
	UnitName      string
	URL           string
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	Note          string
}

// OperationType implements Operation.
func (CreateAsset) OperationType() OpType { return OpCreateAsset }
func (CreateAsset) isOperation()          {}

// BuiltTransaction pairs a protocol transaction with the operation it was
// built from and a human-readable summary.
type BuiltTransaction struct {
	Txn     txn.Transaction
	Op      Operation
	Summary string
	// Warning is set when the operation has a destructive side effect the
	// caller should surface, such as an opt-out burning residual balance.
	Warning string
}

// AtomicGroup is an ordered, group-linked batch ready for signing. A
// single-operation batch is not grouped and GroupID is empty.
type AtomicGroup struct {
	Built   []BuiltTransaction
	GroupID string // base64 of the 32-byte group digest; empty for singletons
}

// Transactions returns the group members in execution order.
func (g *AtomicGroup) Transactions() []txn.Transaction {
	txns := make([]txn.Transaction, len(g.Built))
	for i := range g.Built {
		txns[i] = g.Built[i].Txn
	}
	return txns
}

// Status values for an execution result.
const (
	// StatusConfirmed means every transaction in the batch is final.
	StatusConfirmed = "confirmed"
	// StatusRejected means the ledger definitively refused the batch;
	// nothing was applied.
	StatusRejected = "rejected"
	// StatusIndeterminate means the confirmation wait budget ran out.
	// The batch may still confirm; the caller must re-query, not resubmit.
	StatusIndeterminate = "indeterminate"
	// StatusDryRun means the batch was built and linked but not submitted.
	StatusDryRun = "dry-run"
)

// Result is the outcome of executing a batch.
type Result struct {
	Status         string
	TxIDs          []string // Per-member transaction IDs, execution order
	GroupID        string
	ConfirmedRound uint64
	// AssetID is the identifier of a newly created asset, when the batch
	// contained an asset creation and confirmed.
	AssetID   uint64
	Summaries []string // Per-member summaries, execution order
	Warnings  []string
	FeePaid   uint64 // Total fee across the batch, in micro-units
	// Message carries the ledger's own words on rejection, verbatim.
	Message string
}
