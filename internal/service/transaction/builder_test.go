package transaction

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/config"
	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/algod"
	"github.com/algointent/atomix/internal/ledger/txn"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

func newTestBuilder(gw *mockGateway) *Builder {
	return NewBuilder(NewNormalizer(gw, 6, config.NullLogger()))
}

func buildParams() txn.Params {
	gh := make([]byte, 32)
	for i := range gh {
		gh[i] = byte(i + 1)
	}
	return txn.Params{
		MinFee:      ledger.MinFee,
		FirstValid:  1000,
		LastValid:   2000,
		GenesisID:   "testnet-v1.0",
		GenesisHash: gh,
	}
}

func TestValidateOperation(t *testing.T) {
	valid := []struct {
		name string
		op   Operation
	}{
		{"pay", Pay{Sender: testAddr(1), Receiver: testAddr(2), Amount: "1.5"}},
		{"asset transfer", AssetTransfer{Sender: testAddr(1), Receiver: testAddr(2), AssetID: 7, Amount: "1"}},
		{"opt-in", OptIn{Account: testAddr(1), AssetID: 7}},
		{"opt-out", OptOut{Account: testAddr(1), AssetID: 7}},
		{"nft transfer", NFTTransfer{Sender: testAddr(1), Receiver: testAddr(2), AssetID: 7}},
		{"create asset", CreateAsset{Creator: testAddr(1), Name: "Widget", Total: 100}},
	}

	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateOperation(tt.op))
		})
	}
}

func TestValidateOperation_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		expected error
	}{
		{"pay bad sender", Pay{Sender: "bogus", Receiver: testAddr(2), Amount: "1"}, atomixerr.ErrInvalidAddress},
		{"pay bad receiver", Pay{Sender: testAddr(1), Receiver: strings.Repeat("A", 57), Amount: "1"}, atomixerr.ErrInvalidAddress},
		{"pay missing sender", Pay{Receiver: testAddr(2), Amount: "1"}, atomixerr.ErrMissingField},
		{"pay missing amount", Pay{Sender: testAddr(1), Receiver: testAddr(2)}, atomixerr.ErrMissingField},
		{"pay zero amount", Pay{Sender: testAddr(1), Receiver: testAddr(2), Amount: "0"}, atomixerr.ErrInvalidAmount},
		{"transfer zero asset id", AssetTransfer{Sender: testAddr(1), Receiver: testAddr(2), Amount: "1"}, atomixerr.ErrMissingField},
		{"opt-in bad account", OptIn{Account: "xyz", AssetID: 7}, atomixerr.ErrInvalidAddress},
		{"opt-out zero asset id", OptOut{Account: testAddr(1)}, atomixerr.ErrMissingField},
		{"nft missing receiver", NFTTransfer{Sender: testAddr(1), AssetID: 7}, atomixerr.ErrMissingField},
		{"create missing name", CreateAsset{Creator: testAddr(1), Total: 100}, atomixerr.ErrMissingField},
		{"create blank name", CreateAsset{Creator: testAddr(1), Name: "   ", Total: 100}, atomixerr.ErrMissingField},
		{"create zero total", CreateAsset{Creator: testAddr(1), Name: "Widget"}, atomixerr.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOperation(tt.op)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestValidateOperation_RejectsUnknownType(t *testing.T) {
	err := ValidateOperation(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrUnsupportedOperation)
}

func TestBuild_Pay(t *testing.T) {
	b := newTestBuilder(newMockGateway())

	bt, err := b.Build(context.Background(),
		Pay{Sender: testAddr(1), Receiver: testAddr(2), Amount: "2.5", Note: "rent"}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, txn.TypePayment, bt.Txn.Type)
	assert.Equal(t, uint64(2_500_000), bt.Txn.Amount)
	assert.Equal(t, testAddr(2), bt.Txn.Receiver)
	assert.Equal(t, []byte("rent"), bt.Txn.Note)
	assert.Equal(t, uint64(ledger.MinFee), bt.Txn.Fee)
	assert.Contains(t, bt.Summary, "2.5")
	assert.Empty(t, bt.Warning)
}

func TestBuild_OptInIsZeroSelfTransfer(t *testing.T) {
	b := newTestBuilder(newMockGateway())

	bt, err := b.Build(context.Background(), OptIn{Account: testAddr(1), AssetID: 7}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, txn.TypeAssetTransfer, bt.Txn.Type)
	assert.Equal(t, uint64(0), bt.Txn.AssetAmount)
	assert.Equal(t, testAddr(1), bt.Txn.Sender)
	assert.Equal(t, testAddr(1), bt.Txn.AssetReceiver)
	assert.Empty(t, bt.Txn.AssetCloseTo)
}

func TestBuild_OptOutClosesOutHolding(t *testing.T) {
	b := newTestBuilder(newMockGateway())

	bt, err := b.Build(context.Background(), OptOut{Account: testAddr(1), AssetID: 7}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, testAddr(1), bt.Txn.AssetReceiver)
	assert.Equal(t, testAddr(1), bt.Txn.AssetCloseTo)
	assert.Contains(t, bt.Warning, "burned")
}

func TestBuild_NFTTransferSendsOneUnit(t *testing.T) {
	b := newTestBuilder(newMockGateway())

	bt, err := b.Build(context.Background(),
		NFTTransfer{Sender: testAddr(1), Receiver: testAddr(2), AssetID: 7}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, txn.TypeAssetTransfer, bt.Txn.Type)
	assert.Equal(t, uint64(1), bt.Txn.AssetAmount)
	assert.Equal(t, uint64(7), bt.Txn.XferAsset)
}

func TestBuild_CreateAssetTruncatesName(t *testing.T) {
	b := newTestBuilder(newMockGateway())
	longName := strings.Repeat("x", 40)

	bt, err := b.Build(context.Background(),
		CreateAsset{Creator: testAddr(1), Name: longName, UnitName: "WIDGETTOKEN", Total: 100}, buildParams())
	require.NoError(t, err)

	require.NotNil(t, bt.Txn.AssetParams)
	assert.Len(t, bt.Txn.AssetParams.AssetName, ledger.MaxAssetNameLen)
	assert.Equal(t, longName[:ledger.MaxAssetNameLen], bt.Txn.AssetParams.AssetName)
	assert.Len(t, bt.Txn.AssetParams.UnitName, ledger.MaxUnitNameLen)
}

func TestBuild_CreateAssetTruncatesOnRuneBoundary(t *testing.T) {
	b := newTestBuilder(newMockGateway())
	// 30 ASCII bytes then a 3-byte rune straddling the 32-byte limit.
	longName := strings.Repeat("x", 30) + "日本語"

	bt, err := b.Build(context.Background(),
		CreateAsset{Creator: testAddr(1), Name: longName, UnitName: "UNIT", Total: 100}, buildParams())
	require.NoError(t, err)

	require.NotNil(t, bt.Txn.AssetParams)
	assert.True(t, utf8.ValidString(bt.Txn.AssetParams.AssetName))
	assert.LessOrEqual(t, len(bt.Txn.AssetParams.AssetName), ledger.MaxAssetNameLen)
	assert.Equal(t, strings.Repeat("x", 30), bt.Txn.AssetParams.AssetName)
}

func TestBuild_CreateAssetDerivesUnitName(t *testing.T) {
	b := newTestBuilder(newMockGateway())

	bt, err := b.Build(context.Background(),
		CreateAsset{Creator: testAddr(1), Name: "My Widget Token", Total: 100}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, "MYWIDGET", bt.Txn.AssetParams.UnitName)
}

func TestBuild_CreateAssetManagementDefaultsToCreator(t *testing.T) {
	b := newTestBuilder(newMockGateway())

	bt, err := b.Build(context.Background(),
		CreateAsset{Creator: testAddr(1), Name: "Widget", Total: 100}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, testAddr(1), bt.Txn.AssetParams.Manager)
	assert.Equal(t, testAddr(1), bt.Txn.AssetParams.Reserve)
}

func TestBuild_AssetTransferUsesOnLedgerPrecision(t *testing.T) {
	gw := newMockGateway()
	gw.assets[7] = algod.Asset{Index: 7, Params: algod.AssetParams{Decimals: 2}}
	b := newTestBuilder(gw)

	bt, err := b.Build(context.Background(),
		AssetTransfer{Sender: testAddr(1), Receiver: testAddr(2), AssetID: 7, Amount: "2.5"}, buildParams())
	require.NoError(t, err)

	assert.Equal(t, uint64(250), bt.Txn.AssetAmount)
}
