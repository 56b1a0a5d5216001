package algod

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/algointent/atomix/internal/cache"
	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/txn"
	"github.com/algointent/atomix/internal/metrics"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// SuggestedParams fetches the current transaction parameters from the node.
// Retried on transient failures because the call is read-only.
func (c *Client) SuggestedParams(ctx context.Context) (txn.Params, error) {
	tp, err := ledger.Retry(ctx, func() (TransactionParams, error) {
		var out TransactionParams
		err := c.get(ctx, "/v2/transactions/params", "params", &out)
		return out, err
	})
	if err != nil {
		return txn.Params{}, err
	}

	gh, err := base64.StdEncoding.DecodeString(tp.GenesisHash)
	if err != nil {
		return txn.Params{}, atomixerr.Wrap(ErrInvalidResponse, "decoding genesis hash")
	}

	return txn.Params{
		Fee:         tp.Fee,
		MinFee:      tp.MinFee,
		FirstValid:  tp.LastRound,
		LastValid:   tp.LastRound + ledger.DefaultValidRounds,
		GenesisID:   tp.GenesisID,
		GenesisHash: gh,
	}, nil
}

// AssetByID fetches the parameters of an asset. A fresh cache hit is
// served without a node call; cached assets carry only their display
// parameters.
func (c *Client) AssetByID(ctx context.Context, assetID uint64) (Asset, error) {
	if c.assetCache != nil {
		if entry, ok, _ := c.assetCache.Get(assetID); ok && !c.assetCache.IsStale(assetID) {
			return Asset{
				Index: entry.AssetID,
				Params: AssetParams{
					Decimals: entry.Decimals,
					Name:     entry.Name,
					UnitName: entry.UnitName,
				},
			}, nil
		}
	}

	out, err := ledger.Retry(ctx, func() (Asset, error) {
		var a Asset
		err := c.get(ctx, fmt.Sprintf("/v2/assets/%d", assetID), "asset", &a)
		return a, err
	})
	if err != nil {
		if atomixerr.Is(err, atomixerr.ErrNotFound) {
			return Asset{}, atomixerr.WithDetails(atomixerr.ErrAssetNotFound,
				map[string]string{"asset_id": fmt.Sprintf("%d", assetID)})
		}
		return Asset{}, err
	}

	if c.assetCache != nil {
		c.assetCache.Set(cache.Entry{
			AssetID:  out.Index,
			Decimals: out.Params.Decimals,
			Name:     out.Params.Name,
			UnitName: out.Params.UnitName,
		})
		if c.cacheStore != nil {
			_ = c.cacheStore.Save(c.assetCache)
		}
	}
	return out, nil
}

// AssetDecimals returns the decimal precision of an asset.
func (c *Client) AssetDecimals(ctx context.Context, assetID uint64) (uint32, error) {
	a, err := c.AssetByID(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return a.Params.Decimals, nil
}

// AccountInformation fetches the current state of an account.
func (c *Client) AccountInformation(ctx context.Context, address string) (Account, error) {
	if err := ledger.ValidateAddress(address); err != nil {
		return Account{}, err
	}
	return ledger.Retry(ctx, func() (Account, error) {
		var a Account
		err := c.get(ctx, "/v2/accounts/"+escapePath(address), "account", &a)
		return a, err
	})
}

// SubmitRawTransaction broadcasts a signed transaction (or a concatenation
// of signed transactions forming an atomic group) and returns the reported
// transaction ID. Submissions are never retried: a timed-out submission may
// still have reached the network, and resubmitting risks a duplicate.
func (c *Client) SubmitRawTransaction(ctx context.Context, raw []byte) (string, error) {
	var out submitResponse
	err := c.post(ctx, "/v2/transactions", "submit", raw, "application/x-binary", &out)
	metrics.Global.RecordSubmission(err)
	if err != nil {
		return "", rejectionError(err)
	}
	if out.TxID == "" {
		return "", atomixerr.Wrap(ErrInvalidResponse, "submission returned no transaction ID")
	}
	return out.TxID, nil
}

// rejectionError classifies a submission failure. A definitive node
// rejection becomes ErrSubmissionRejected, preserving the node's message;
// transport failures pass through so the caller can report the outcome as
// unknown rather than rejected.
func rejectionError(err error) error {
	var ae *atomixerr.AtomixError
	if atomixerr.As(err, &ae) {
		if msg, ok := ae.Details["node_message"]; ok {
			return atomixerr.WithDetails(atomixerr.ErrSubmissionRejected,
				map[string]string{"node_message": msg})
		}
	}
	return err
}

// PendingTransactionInformation fetches the pending status of a
// transaction by ID.
func (c *Client) PendingTransactionInformation(ctx context.Context, txid string) (PendingTransaction, error) {
	return ledger.Retry(ctx, func() (PendingTransaction, error) {
		var p PendingTransaction
		err := c.get(ctx, "/v2/transactions/pending/"+escapePath(txid), "pending", &p)
		return p, err
	})
}

// StatusAfterBlock blocks until the node has seen the given round.
func (c *Client) StatusAfterBlock(ctx context.Context, round uint64) (NodeStatus, error) {
	var s NodeStatus
	err := c.get(ctx, fmt.Sprintf("/v2/status/wait-for-block-after/%d", round), "status", &s)
	return s, err
}

// Status reports the node's current round.
func (c *Client) Status(ctx context.Context) (NodeStatus, error) {
	return ledger.Retry(ctx, func() (NodeStatus, error) {
		var s NodeStatus
		err := c.get(ctx, "/v2/status", "status", &s)
		return s, err
	})
}

// WaitForConfirmation polls the node until the transaction confirms, the
// node reports a pool error, or waitRounds rounds elapse. On exhaustion it
// returns ErrConfirmationTimeout: the transaction's fate is indeterminate
// and the caller must re-query rather than resubmit.
func (c *Client) WaitForConfirmation(ctx context.Context, txid string, waitRounds uint64) (PendingTransaction, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return PendingTransaction{}, err
	}
	current := status.LastRound
	deadline := current + waitRounds

	for current <= deadline {
		if err := ctx.Err(); err != nil {
			return PendingTransaction{}, atomixerr.Wrap(atomixerr.ErrConfirmationTimeout, "context canceled while waiting for %s", txid)
		}

		pending, err := c.PendingTransactionInformation(ctx, txid)
		if err != nil {
			return PendingTransaction{}, err
		}
		if pending.PoolError != "" {
			return pending, atomixerr.WithDetails(atomixerr.ErrSubmissionRejected,
				map[string]string{"node_message": pending.PoolError, "txid": txid})
		}
		if pending.ConfirmedRound > 0 {
			metrics.Global.RecordConfirmation(false)
			return pending, nil
		}

		s, err := c.StatusAfterBlock(ctx, current)
		if err != nil {
			return PendingTransaction{}, err
		}
		if s.LastRound > current {
			current = s.LastRound
		} else {
			current++
		}
	}

	metrics.Global.RecordConfirmation(true)
	return PendingTransaction{}, atomixerr.WithDetails(atomixerr.ErrConfirmationTimeout,
		map[string]string{"txid": txid, "rounds_waited": fmt.Sprintf("%d", waitRounds)})
}
