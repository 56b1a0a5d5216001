package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/service/transaction"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBatchFile(t *testing.T) {
	path := writeBatchFile(t, `
- type: pay
  to: RECEIVER
  amount: "2.5"
  note: invoice 42
- type: optin
  asset: 123
- type: asset-transfer
  to: RECEIVER
  asset: 123
  amount: "10"
`)

	entries, err := loadBatchFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "pay", entries[0].Type)
	assert.Equal(t, "2.5", entries[0].Amount)
	assert.Equal(t, "invoice 42", entries[0].Note)
	assert.Equal(t, uint64(123), entries[1].Asset)
	assert.Equal(t, "asset-transfer", entries[2].Type)
}

func TestLoadBatchFile_Missing(t *testing.T) {
	_, err := loadBatchFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBatchFile_NotYAML(t *testing.T) {
	path := writeBatchFile(t, "{{{not yaml")
	_, err := loadBatchFile(path)
	require.Error(t, err)
}

func TestLoadBatchFile_Empty(t *testing.T) {
	path := writeBatchFile(t, "")
	_, err := loadBatchFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrEmptyBatch)
}

func TestBatchOperations(t *testing.T) {
	entries := []batchEntry{
		{Type: "pay", To: "RCV", Amount: "1"},
		{Type: "asset-transfer", To: "RCV", Asset: 7, Amount: "2"},
		{Type: "optin", Asset: 7},
		{Type: "optout", Asset: 7},
		{Type: "nft-transfer", To: "RCV", Asset: 9},
		{Type: "create-asset", Name: "Token", Total: 100, Decimals: 2},
	}

	ops, err := batchOperations(entries, "SENDER")
	require.NoError(t, err)
	require.Len(t, ops, 6)

	pay, ok := ops[0].(*transaction.Pay)
	require.True(t, ok)
	assert.Equal(t, "SENDER", pay.Sender)

	optOut, ok := ops[3].(*transaction.OptOut)
	require.True(t, ok)
	assert.Equal(t, "SENDER", optOut.Account)

	create, ok := ops[5].(*transaction.CreateAsset)
	require.True(t, ok)
	assert.Equal(t, "SENDER", create.Creator)
	assert.Equal(t, uint64(100), create.Total)
}

func TestBatchOperations_UnknownType(t *testing.T) {
	_, err := batchOperations([]batchEntry{{Type: "teleport"}}, "SENDER")
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrUnsupportedOperation)
}

func TestBatchOperations_MissingType(t *testing.T) {
	_, err := batchOperations([]batchEntry{{To: "RCV"}}, "SENDER")
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrMissingField)
}

func TestBatchOperations_ReportsEntryNumber(t *testing.T) {
	_, err := batchOperations([]batchEntry{
		{Type: "pay", To: "RCV", Amount: "1"},
		{Type: "teleport"},
	}, "SENDER")
	require.Error(t, err)

	var aerr *atomixerr.AtomixError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "2", aerr.Details["entry"])
}
