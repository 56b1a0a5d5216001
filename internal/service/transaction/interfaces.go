package transaction

import (
	"context"

	"github.com/algointent/atomix/internal/ledger/algod"
	"github.com/algointent/atomix/internal/ledger/txn"
)

// Gateway is the ledger node surface the service needs. *algod.Client
// satisfies it.
type Gateway interface {
	SuggestedParams(ctx context.Context) (txn.Params, error)
	AssetByID(ctx context.Context, assetID uint64) (algod.Asset, error)
	AccountInformation(ctx context.Context, address string) (algod.Account, error)
	SubmitRawTransaction(ctx context.Context, raw []byte) (string, error)
	WaitForConfirmation(ctx context.Context, txid string, waitRounds uint64) (algod.PendingTransaction, error)
}

// Signer authorizes transactions. It receives the whole batch in execution
// order and must return one encoded signed transaction per member, in the
// same order. The service never sees key material.
type Signer interface {
	Address() string
	SignTransactions(txns []txn.Transaction) ([][]byte, error)
}

// ConfigProvider provides configuration values needed for execution.
type ConfigProvider interface {
	GetWaitRounds() uint64
	GetFallbackAssetDecimals() int
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}
