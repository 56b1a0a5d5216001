package transaction

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/txn"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// optOutWarning is surfaced whenever an opt-out is built.
const optOutWarning = "opt-out closes out the asset holding: any remaining balance of the asset is burned"

// Builder turns operations into protocol transactions. Validation is split
// in two: ValidateOperation needs no network access and runs over the whole
// batch before any node call; Build performs amount normalization (which
// may consult the ledger for asset precision) and construction.
type Builder struct {
	normalizer *Normalizer
}

// NewBuilder creates a builder using the given normalizer.
func NewBuilder(n *Normalizer) *Builder {
	return &Builder{normalizer: n}
}

// ValidateOperation checks an operation's addresses and fields. It is
// exhaustive over the closed operation set; an unknown implementation is
// rejected, not skipped.
func ValidateOperation(op Operation) error {
	switch o := op.(type) {
	case Pay:
		if err := validateAddrField(o.Sender, "sender"); err != nil {
			return err
		}
		if err := validateAddrField(o.Receiver, "receiver"); err != nil {
			return err
		}
		return CheckAmountSyntax(o.Amount)

	case AssetTransfer:
		if err := validateAddrField(o.Sender, "sender"); err != nil {
			return err
		}
		if err := validateAddrField(o.Receiver, "receiver"); err != nil {
			return err
		}
		if err := validateAssetID(o.AssetID); err != nil {
			return err
		}
		return CheckAmountSyntax(o.Amount)

	case OptIn:
		if err := validateAddrField(o.Account, "account"); err != nil {
			return err
		}
		return validateAssetID(o.AssetID)

	case OptOut:
		if err := validateAddrField(o.Account, "account"); err != nil {
			return err
		}
		return validateAssetID(o.AssetID)

	case NFTTransfer:
		if err := validateAddrField(o.Sender, "sender"); err != nil {
			return err
		}
		if err := validateAddrField(o.Receiver, "receiver"); err != nil {
			return err
		}
		return validateAssetID(o.AssetID)

	case CreateAsset:
		if err := validateAddrField(o.Creator, "creator"); err != nil {
			return err
		}
		if strings.TrimSpace(o.Name) == "" {
			return atomixerr.WithDetails(atomixerr.ErrMissingField,
				map[string]string{"field": "name"})
		}
		if o.Total == 0 {
			return atomixerr.WithDetails(atomixerr.ErrInvalidAmount,
				map[string]string{"field": "total", "reason": "total supply must be positive"})
		}
		if o.Decimals > 19 {
			return atomixerr.WithDetails(atomixerr.ErrInvalidAmount,
				map[string]string{"field": "decimals", "reason": "precision beyond 19 decimals is not representable"})
		}
		return nil

	default:
		return atomixerr.WithDetails(atomixerr.ErrUnsupportedOperation,
			map[string]string{"type": fmt.Sprintf("%T", op)})
	}
}

// Build constructs the protocol transaction for an operation. The caller
// must have run ValidateOperation first; Build repeats no address checks.
func (b *Builder) Build(ctx context.Context, op Operation, params txn.Params) (BuiltTransaction, error) {
	switch o := op.(type) {
	case Pay:
		amount, err := b.normalizer.ToMicroUnits(o.Amount)
		if err != nil {
			return BuiltTransaction{}, err
		}
		return BuiltTransaction{
			Txn:     txn.NewPayment(o.Sender, o.Receiver, amount, params, note(o.Note)),
			Op:      op,
			Summary: fmt.Sprintf("pay %s native units to %s", ledger.FormatDecimalAmount(amount, ledger.NativeDecimals), short(o.Receiver)),
		}, nil

	case AssetTransfer:
		amount, err := b.normalizer.ToAssetUnits(ctx, o.Amount, o.AssetID)
		if err != nil {
			return BuiltTransaction{}, err
		}
		return BuiltTransaction{
			Txn:     txn.NewAssetTransfer(o.Sender, o.Receiver, amount, o.AssetID, params, note(o.Note)),
			Op:      op,
			Summary: fmt.Sprintf("transfer %d base units of asset %d to %s", amount, o.AssetID, short(o.Receiver)),
		}, nil

	case OptIn:
		return BuiltTransaction{
			Txn:     txn.NewAssetOptIn(o.Account, o.AssetID, params, note(o.Note)),
			Op:      op,
			Summary: fmt.Sprintf("opt %s in to asset %d", short(o.Account), o.AssetID),
		}, nil

	case OptOut:
		return BuiltTransaction{
			Txn:     txn.NewAssetOptOut(o.Account, o.AssetID, params, note(o.Note)),
			Op:      op,
			Summary: fmt.Sprintf("opt %s out of asset %d", short(o.Account), o.AssetID),
			Warning: optOutWarning,
		}, nil

	case NFTTransfer:
		return BuiltTransaction{
			Txn:     txn.NewAssetTransfer(o.Sender, o.Receiver, 1, o.AssetID, params, note(o.Note)),
			Op:      op,
			Summary: fmt.Sprintf("transfer token %d to %s", o.AssetID, short(o.Receiver)),
		}, nil

	case CreateAsset:
		cfg := txn.AssetConfigParams{
			Total:         o.Total,
			Decimals:      o.Decimals,
			DefaultFrozen: o.DefaultFrozen,
			AssetName:     truncate(o.Name, ledger.MaxAssetNameLen),
			UnitName:      truncate(unitNameOrDerive(o.UnitName, o.Name), ledger.MaxUnitNameLen),
			URL:           truncate(o.URL, ledger.MaxAssetURLLen),
		}
		return BuiltTransaction{
			Txn:     txn.NewAssetCreation(o.Creator, cfg, params, note(o.Note)),
			Op:      op,
			Summary: fmt.Sprintf("create asset %q (%s), total supply %d", cfg.AssetName, cfg.UnitName, o.Total),
		}, nil

	default:
		return BuiltTransaction{}, atomixerr.WithDetails(atomixerr.ErrUnsupportedOperation,
			map[string]string{"type": fmt.Sprintf("%T", op)})
	}
}

func validateAddrField(address, field string) error {
	if strings.TrimSpace(address) == "" {
		return atomixerr.WithDetails(atomixerr.ErrMissingField,
			map[string]string{"field": field})
	}
	if err := ledger.ValidateAddress(address); err != nil {
		return atomixerr.WithDetails(err, map[string]string{"field": field})
	}
	return nil
}

func validateAssetID(assetID uint64) error {
	if assetID == 0 {
		return atomixerr.WithDetails(atomixerr.ErrMissingField,
			map[string]string{"field": "asset_id"})
	}
	return nil
}

// unitNameOrDerive derives a unit name from the asset name when none is
// given: the name uppercased with spaces removed, left for truncation.
func unitNameOrDerive(unit, name string) string {
	if strings.TrimSpace(unit) != "" {
		return unit
	}
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
}

// truncate clips s to at most n bytes without splitting a rune, so the
// clipped string stays valid UTF-8 in the encoded fields.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// short abbreviates an address for summaries.
func short(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + ".." + address[len(address)-6:]
}

func note(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
