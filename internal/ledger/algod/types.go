package algod

// TransactionParams holds the suggested parameters returned by the node.
type TransactionParams struct {
	ConsensusVersion string `json:"consensus-version"`
	Fee              uint64 `json:"fee"`
	GenesisHash      string `json:"genesis-hash"` // base64
	GenesisID        string `json:"genesis-id"`
	LastRound        uint64 `json:"last-round"`
	MinFee           uint64 `json:"min-fee"`
}

// Asset describes an asset as reported by the node.
type Asset struct {
	Index  uint64      `json:"index"`
	Params AssetParams `json:"params"`
}

// AssetParams holds the creation-time parameters of an asset.
type AssetParams struct {
	Creator       string `json:"creator"`
	Decimals      uint32 `json:"decimals"`
	DefaultFrozen bool   `json:"default-frozen"`
	Manager       string `json:"manager,omitempty"`
	Name          string `json:"name,omitempty"`
	Reserve       string `json:"reserve,omitempty"`
	Total         uint64 `json:"total"`
	URL           string `json:"url,omitempty"`
	UnitName      string `json:"unit-name,omitempty"`
}

// AssetHolding is one asset balance held by an account.
type AssetHolding struct {
	Amount   uint64 `json:"amount"`
	AssetID  uint64 `json:"asset-id"`
	IsFrozen bool   `json:"is-frozen"`
}

// Account describes an account as reported by the node.
type Account struct {
	Address       string         `json:"address"`
	Amount        uint64         `json:"amount"`
	MinBalance    uint64         `json:"min-balance"`
	Assets        []AssetHolding `json:"assets,omitempty"`
	CreatedAssets []Asset        `json:"created-assets,omitempty"`
	Status        string         `json:"status"`
}

// PendingTransaction is the node's view of a submitted transaction.
type PendingTransaction struct {
	// AssetIndex is set once an asset creation transaction confirms.
	AssetIndex uint64 `json:"asset-index,omitempty"`
	// ConfirmedRound is zero while the transaction is still pending.
	ConfirmedRound uint64 `json:"confirmed-round,omitempty"`
	// PoolError is non-empty when the node has rejected the transaction
	// after accepting it into the pool.
	PoolError string `json:"pool-error"`
}

// NodeStatus is a subset of the node's status report.
type NodeStatus struct {
	LastRound          uint64 `json:"last-round"`
	TimeSinceLastRound uint64 `json:"time-since-last-round"`
}

// submitResponse is the body returned by a successful submission.
type submitResponse struct {
	TxID string `json:"txId"`
}
