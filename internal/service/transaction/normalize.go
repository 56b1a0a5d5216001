package transaction

import (
	"context"
	"strings"

	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/metrics"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Normalizer converts user-facing decimal amount strings into the atomic
// integer units transactions carry. Native amounts always use the
// protocol's fixed precision; asset amounts use the asset's own precision,
// fetched from the ledger with a configured fallback.
type Normalizer struct {
	gateway  Gateway
	fallback int
	logger   LogWriter

	// decimals caches per-asset precision for the lifetime of one batch so
	// repeated transfers of the same asset cost one lookup.
	decimals map[uint64]int
}

// NewNormalizer creates a normalizer. fallback is the precision assumed
// when an asset's parameters cannot be fetched.
func NewNormalizer(gateway Gateway, fallback int, logger LogWriter) *Normalizer {
	return &Normalizer{
		gateway:  gateway,
		fallback: fallback,
		logger:   logger,
		decimals: make(map[uint64]int),
	}
}

// CheckAmountSyntax validates an amount string without converting it:
// non-empty, strictly positive, plain decimal notation. It needs no
// network access, so batch validation can fail fast before any node call.
func CheckAmountSyntax(amount string) error {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return atomixerr.WithDetails(atomixerr.ErrMissingField,
			map[string]string{"field": "amount"})
	}

	invalid := func(reason string) error {
		return atomixerr.WithDetails(atomixerr.ErrInvalidAmount,
			map[string]string{"amount": amount, "reason": reason})
	}

	if trimmed == "." {
		return invalid("no digits")
	}

	dotSeen := false
	positive := false
	for _, c := range trimmed {
		switch {
		case c == '.':
			if dotSeen {
				return invalid("multiple decimal points")
			}
			dotSeen = true
		case c < '0' || c > '9':
			// Signs, exponents and unicode digits are all rejected here;
			// only plain decimal notation reaches the converter.
			return invalid("not a plain decimal number")
		case c != '0':
			positive = true
		}
	}
	if !positive {
		return invalid("amount must be positive")
	}
	return nil
}

// ToMicroUnits converts a native-unit decimal string to micro-units.
// "2.5" becomes 2500000.
func (n *Normalizer) ToMicroUnits(amount string) (uint64, error) {
	if err := CheckAmountSyntax(amount); err != nil {
		return 0, err
	}
	v, err := ledger.ParseDecimalAmount(strings.TrimSpace(amount), ledger.NativeDecimals, atomixerr.ErrInvalidAmount)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, atomixerr.WithDetails(atomixerr.ErrInvalidAmount,
			map[string]string{"amount": amount, "reason": "amount rounds to zero"})
	}
	return v, nil
}

// ToAssetUnits converts a decimal string to an asset's base units, using
// the asset's on-ledger precision. When the precision cannot be fetched
// the configured fallback is used, and every such use is logged.
func (n *Normalizer) ToAssetUnits(ctx context.Context, amount string, assetID uint64) (uint64, error) {
	if err := CheckAmountSyntax(amount); err != nil {
		return 0, err
	}

	decimals, err := n.assetDecimals(ctx, assetID)
	if err != nil {
		return 0, err
	}

	v, err := ledger.ParseDecimalAmount(strings.TrimSpace(amount), decimals, atomixerr.ErrInvalidAmount)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, atomixerr.WithDetails(atomixerr.ErrInvalidAmount,
			map[string]string{"amount": amount, "reason": "amount rounds to zero at asset precision"})
	}
	return v, nil
}

// assetDecimals resolves an asset's precision, consulting the batch-local
// cache first.
func (n *Normalizer) assetDecimals(ctx context.Context, assetID uint64) (int, error) {
	if d, ok := n.decimals[assetID]; ok {
		return d, nil
	}

	asset, err := n.gateway.AssetByID(ctx, assetID)
	if err != nil {
		if atomixerr.Is(err, atomixerr.ErrAssetNotFound) {
			return 0, err
		}
		// A dead context means the batch is being aborted; guessing a
		// precision and continuing would be wrong.
		if ctx.Err() != nil {
			return 0, err
		}
		// Transient node failure: fall back to the configured precision
		// rather than failing the batch, and record that we did.
		n.logger.Info("asset %d precision unavailable, using fallback of %d decimals: %v", assetID, n.fallback, err)
		metrics.Global.RecordDecimalFallback()
		n.decimals[assetID] = n.fallback
		return n.fallback, nil
	}

	d := int(asset.Params.Decimals)
	n.decimals[assetID] = d
	return d, nil
}
