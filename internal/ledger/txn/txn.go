// Package txn defines protocol-level transaction types and their canonical
// wire encoding, including atomic group linkage.
package txn

import (
	"github.com/algointent/atomix/internal/ledger"
)

// Type identifies a transaction type on the ledger.
type Type string

// Supported transaction types.
const (
	// TypePayment transfers native micro-units.
	TypePayment Type = "pay"
	// TypeAssetTransfer moves asset units; also used for opt-in (zero
	// self-transfer) and opt-out (zero transfer with asset close-to).
	TypeAssetTransfer Type = "axfer"
	// TypeAssetConfig creates or reconfigures an asset.
	TypeAssetConfig Type = "acfg"
)

// Params holds the network parameters shared by every transaction in one
// batch. Grouping requires an identical validity window, so Params is fetched
// once per batch and threaded through the build pipeline.
type Params struct {
	Fee         uint64 // Suggested flat fee in micro-units
	MinFee      uint64 // Protocol minimum fee
	FirstValid  uint64 // First round the transaction is valid
	LastValid   uint64 // Last round the transaction is valid
	GenesisID   string // Human-readable network identifier
	GenesisHash []byte // 32-byte network genesis hash
}

// FlatFee returns the fee to embed: the suggested fee, floored at the
// protocol minimum.
func (p Params) FlatFee() uint64 {
	if p.Fee < p.MinFee {
		return p.MinFee
	}
	return p.Fee
}

// Header carries the fields common to every transaction type.
type Header struct {
	Sender      string
	Fee         uint64
	FirstValid  uint64
	LastValid   uint64
	GenesisID   string
	GenesisHash []byte
	Note        []byte
	Group       [32]byte
}

// AssetConfigParams describes the asset created by an asset-config
// transaction.
type AssetConfigParams struct {
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	UnitName      string
	AssetName     string
	URL           string
	Manager       string
	Reserve       string
	Freeze        string
	Clawback      string
}

// Transaction is a protocol-correct transaction. Only the fields relevant to
// its Type are set; the canonical encoding omits zero values.
type Transaction struct {
	Type Type
	Header

	// Payment fields
	Receiver         string
	Amount           uint64
	CloseRemainderTo string

	// Asset transfer fields
	XferAsset     uint64
	AssetAmount   uint64
	AssetReceiver string
	AssetCloseTo  string

	// Asset config fields
	AssetParams *AssetConfigParams
}

// NewPayment builds a native-unit payment transaction.
func NewPayment(sender, receiver string, amount uint64, params Params, note []byte) Transaction {
	return Transaction{
		Type:     TypePayment,
		Header:   newHeader(sender, params, note),
		Receiver: receiver,
		Amount:   amount,
	}
}

// NewAssetTransfer builds an asset transfer transaction.
func NewAssetTransfer(sender, receiver string, amount, assetID uint64, params Params, note []byte) Transaction {
	return Transaction{
		Type:          TypeAssetTransfer,
		Header:        newHeader(sender, params, note),
		XferAsset:     assetID,
		AssetAmount:   amount,
		AssetReceiver: receiver,
	}
}

// NewAssetOptIn builds the zero self-transfer that registers the sender as a
// holder of the asset.
func NewAssetOptIn(sender string, assetID uint64, params Params, note []byte) Transaction {
	return NewAssetTransfer(sender, sender, 0, assetID, params, note)
}

// NewAssetOptOut builds the zero transfer that deregisters the sender's
// holding. Receiver and close-to are both the sender: closing a holding to
// its own account removes it from the ledger, so any residual balance is
// burned with it, not returned. The canonical encoding omits all-zero
// addresses entirely, so a close to the null address would never reach the
// wire; closing to the sender is the form a node can actually see.
func NewAssetOptOut(sender string, assetID uint64, params Params, note []byte) Transaction {
	t := NewAssetTransfer(sender, sender, 0, assetID, params, note)
	t.AssetCloseTo = sender
	return t
}

// NewAssetCreation builds an asset-config transaction creating a new asset.
// All management addresses default to the sender.
func NewAssetCreation(sender string, cfg AssetConfigParams, params Params, note []byte) Transaction {
	if cfg.Manager == "" {
		cfg.Manager = sender
	}
	if cfg.Reserve == "" {
		cfg.Reserve = sender
	}
	if cfg.Freeze == "" {
		cfg.Freeze = sender
	}
	if cfg.Clawback == "" {
		cfg.Clawback = sender
	}
	return Transaction{
		Type:        TypeAssetConfig,
		Header:      newHeader(sender, params, note),
		AssetParams: &cfg,
	}
}

func newHeader(sender string, params Params, note []byte) Header {
	if len(note) > ledger.MaxNoteLen {
		note = note[:ledger.MaxNoteLen]
	}
	return Header{
		Sender:      sender,
		Fee:         params.FlatFee(),
		FirstValid:  params.FirstValid,
		LastValid:   params.LastValid,
		GenesisID:   params.GenesisID,
		GenesisHash: params.GenesisHash,
		Note:        note,
	}
}
