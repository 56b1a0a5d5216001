package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/config"
	"github.com/algointent/atomix/internal/ledger/algod"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

func TestToMicroUnits(t *testing.T) {
	n := NewNormalizer(newMockGateway(), 6, config.NullLogger())

	tests := []struct {
		amount   string
		expected uint64
	}{
		{"2.5", 2_500_000},
		{"1", 1_000_000},
		{"0.000001", 1},
		{"1000000", 1_000_000_000_000},
		{"0.1234567", 123_456}, // excess precision floors
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			v, err := n.ToMicroUnits(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestToMicroUnits_Invalid(t *testing.T) {
	n := NewNormalizer(newMockGateway(), 6, config.NullLogger())

	tests := []struct {
		name     string
		amount   string
		expected error
	}{
		{"empty", "", atomixerr.ErrMissingField},
		{"whitespace only", "   ", atomixerr.ErrMissingField},
		{"zero", "0", atomixerr.ErrInvalidAmount},
		{"zero point zero", "0.0", atomixerr.ErrInvalidAmount},
		{"negative", "-1", atomixerr.ErrInvalidAmount},
		{"plus sign", "+1", atomixerr.ErrInvalidAmount},
		{"lone dot", ".", atomixerr.ErrInvalidAmount},
		{"two dots", "1.2.3", atomixerr.ErrInvalidAmount},
		{"exponent", "1e6", atomixerr.ErrInvalidAmount},
		{"words", "ten", atomixerr.ErrInvalidAmount},
		{"infinity", "Inf", atomixerr.ErrInvalidAmount},
		{"nan", "NaN", atomixerr.ErrInvalidAmount},
		{"rounds to zero", "0.0000001", atomixerr.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.ToMicroUnits(tt.amount)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestToAssetUnits_UsesAssetPrecision(t *testing.T) {
	gw := newMockGateway()
	gw.assets[7] = algod.Asset{Index: 7, Params: algod.AssetParams{Decimals: 2}}
	n := NewNormalizer(gw, 6, config.NullLogger())

	v, err := n.ToAssetUnits(context.Background(), "2.5", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), v)
}

func TestToAssetUnits_CachesPrecisionPerBatch(t *testing.T) {
	gw := newMockGateway()
	gw.assets[7] = algod.Asset{Index: 7, Params: algod.AssetParams{Decimals: 2}}
	n := NewNormalizer(gw, 6, config.NullLogger())

	_, err := n.ToAssetUnits(context.Background(), "1", 7)
	require.NoError(t, err)
	_, err = n.ToAssetUnits(context.Background(), "2", 7)
	require.NoError(t, err)

	assert.Equal(t, 1, gw.countCalls("asset"))
}

func TestToAssetUnits_FallbackOnNodeFailure(t *testing.T) {
	gw := newMockGateway()
	gw.assetErr = atomixerr.ErrNetworkError
	n := NewNormalizer(gw, 3, config.NullLogger())

	v, err := n.ToAssetUnits(context.Background(), "2.5", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(2500), v, "fallback precision of 3 decimals applies")
}

func TestToAssetUnits_CanceledContextIsFatal(t *testing.T) {
	gw := newMockGateway()
	gw.assetErr = context.Canceled
	n := NewNormalizer(gw, 3, config.NullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// An aborted batch must not guess a precision and continue.
	_, err := n.ToAssetUnits(ctx, "2.5", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToAssetUnits_UnknownAssetIsFatal(t *testing.T) {
	gw := newMockGateway()
	n := NewNormalizer(gw, 6, config.NullLogger())

	_, err := n.ToAssetUnits(context.Background(), "1", 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrAssetNotFound)
}

func TestToAssetUnits_ZeroAtAssetPrecision(t *testing.T) {
	gw := newMockGateway()
	gw.assets[7] = algod.Asset{Index: 7, Params: algod.AssetParams{Decimals: 0}}
	n := NewNormalizer(gw, 6, config.NullLogger())

	// A whole-unit asset cannot carry a fractional amount.
	_, err := n.ToAssetUnits(context.Background(), "0.5", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrInvalidAmount)
}
