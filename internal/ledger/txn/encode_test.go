package txn

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack"

	"github.com/algointent/atomix/internal/ledger"
)

func encodeParams() Params {
	gh := make([]byte, 32)
	for i := range gh {
		gh[i] = byte(i + 1)
	}
	return Params{
		Fee:         1000,
		MinFee:      1000,
		FirstValid:  5000,
		LastValid:   6000,
		GenesisID:   "testnet-v1.0",
		GenesisHash: gh,
	}
}

func decodeMap(t *testing.T, encoded []byte) map[string]any {
	t.Helper()
	var m map[string]any
	dec := msgpack.NewDecoder(bytes.NewReader(encoded))
	require.NoError(t, dec.Decode(&m))
	return m
}

func TestEncodeDeterministic(t *testing.T) {
	t.Parallel()

	tx := NewPayment(testAddr(1), testAddr(2), 2500000, encodeParams(), []byte("note"))

	first, err := Encode(&tx)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Encode(&tx)
		require.NoError(t, err)
		assert.Equal(t, first, again, "encoding must be byte-identical across calls")
	}
}

func TestEncodeOmitsZeroFields(t *testing.T) {
	t.Parallel()

	tx := NewPayment(testAddr(1), testAddr(2), 0, encodeParams(), nil)
	encoded, err := Encode(&tx)
	require.NoError(t, err)

	m := decodeMap(t, encoded)
	assert.NotContains(t, m, "amt", "zero amount must be omitted")
	assert.NotContains(t, m, "note", "empty note must be omitted")
	assert.NotContains(t, m, "grp", "unset group must be omitted")
	assert.NotContains(t, m, "close", "unset close-to must be omitted")
	assert.Contains(t, m, "snd")
	assert.Contains(t, m, "rcv")
	assert.Contains(t, m, "type")
}

func TestEncodePaymentFields(t *testing.T) {
	t.Parallel()

	tx := NewPayment(testAddr(1), testAddr(2), 42, encodeParams(), []byte("hello"))
	encoded, err := Encode(&tx)
	require.NoError(t, err)

	m := decodeMap(t, encoded)
	assert.Equal(t, "pay", m["type"])
	assert.Equal(t, "testnet-v1.0", m["gen"])

	rcv, err := ledger.DecodeAddress(testAddr(2))
	require.NoError(t, err)
	assert.Equal(t, rcv[:], m["rcv"])
}

func TestEncodeOptOutCarriesCloseTo(t *testing.T) {
	t.Parallel()

	// The close-to must survive encoding. A node treats a missing aclose
	// as "don't close", which would leave the holding registered.
	tx := NewAssetOptOut(testAddr(1), 777, encodeParams(), nil)
	encoded, err := Encode(&tx)
	require.NoError(t, err)

	sender, err := ledger.DecodeAddress(testAddr(1))
	require.NoError(t, err)

	m := decodeMap(t, encoded)
	assert.Equal(t, "axfer", m["type"])
	assert.Contains(t, m, "xaid")
	assert.Equal(t, sender[:], m["arcv"])
	assert.Equal(t, sender[:], m["aclose"])

	// An opt-out is not byte-identical to a plain zero-value transfer
	// that never asked to close.
	plain := NewAssetTransfer(testAddr(1), "", 0, 777, encodeParams(), nil)
	plainEncoded, err := Encode(&plain)
	require.NoError(t, err)
	assert.NotEqual(t, plainEncoded, encoded)
}

func TestEncodeAssetConfig(t *testing.T) {
	t.Parallel()

	tx := NewAssetCreation(testAddr(1), AssetConfigParams{
		Total:     1,
		AssetName: "Dragon",
		UnitName:  "DRGN",
		URL:       "ipfs://example",
	}, encodeParams(), nil)

	encoded, err := Encode(&tx)
	require.NoError(t, err)

	m := decodeMap(t, encoded)
	assert.Equal(t, "acfg", m["type"])

	apar, ok := m["apar"].(map[string]any)
	require.True(t, ok, "apar must be a nested map")
	assert.Equal(t, "Dragon", apar["an"])
	assert.Equal(t, "DRGN", apar["un"])
	assert.Equal(t, "ipfs://example", apar["au"])
	assert.Contains(t, apar, "m")
	assert.Contains(t, apar, "r")
	assert.Contains(t, apar, "f")
	assert.Contains(t, apar, "c")
}

func TestEncodeRejectsInvalidAddress(t *testing.T) {
	t.Parallel()

	tx := NewPayment(testAddr(1), "NOT-AN-ADDRESS", 1, encodeParams(), nil)
	_, err := Encode(&tx)
	assert.Error(t, err)
}

func TestEncodeSigned(t *testing.T) {
	t.Parallel()

	tx := NewPayment(testAddr(1), testAddr(2), 5, encodeParams(), nil)
	sig := make([]byte, 64)
	for i := range sig {
		sig[i] = byte(i)
	}

	encoded, err := EncodeSigned(&tx, sig)
	require.NoError(t, err)

	m := decodeMap(t, encoded)
	assert.Contains(t, m, "sig")
	assert.Contains(t, m, "txn")

	_, err = EncodeSigned(&tx, sig[:10])
	assert.Error(t, err, "short signature must be rejected")
}

func TestTransactionID(t *testing.T) {
	t.Parallel()

	tx := NewPayment(testAddr(1), testAddr(2), 5, encodeParams(), nil)

	id1, err := ID(&tx)
	require.NoError(t, err)
	id2, err := ID(&tx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 52, "transaction ID is 52 base32 characters")

	// A different amount yields a different ID
	tx.Amount = 6
	id3, err := ID(&tx)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}
