package txn

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack"

	"github.com/algointent/atomix/internal/ledger"
)

// Canonical encoding rules: msgpack maps with lexicographically sorted keys,
// zero-value fields omitted, addresses as raw 32-byte public keys, integers
// in their most compact representation. The encoding must be byte-identical
// across calls for the same transaction, or group IDs and signatures break.

// Encode returns the canonical encoding of the transaction.
func Encode(t *Transaction) ([]byte, error) {
	m, err := encodeToMap(t)
	if err != nil {
		return nil, err
	}
	return marshalCanonical(m)
}

// EncodeSigned returns the canonical encoding of a signed transaction: the
// 64-byte signature alongside the transaction body.
func EncodeSigned(t *Transaction, sig []byte) ([]byte, error) {
	if len(sig) != 64 {
		return nil, fmt.Errorf("signature must be 64 bytes, got %d", len(sig))
	}
	m, err := encodeToMap(t)
	if err != nil {
		return nil, err
	}
	return marshalCanonical(map[string]any{
		"sig": sig,
		"txn": m,
	})
}

// marshalCanonical encodes a value with sorted map keys and compact integers.
func marshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SortMapKeys(true)
	enc.UseCompactEncoding(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeToMap lowers a transaction to its canonical key/value form with zero
// values omitted.
func encodeToMap(t *Transaction) (map[string]any, error) {
	m := make(map[string]any)

	if err := putAddr(m, "snd", t.Sender); err != nil {
		return nil, err
	}
	putUint(m, "fee", t.Fee)
	putUint(m, "fv", t.FirstValid)
	putUint(m, "lv", t.LastValid)
	putStr(m, "gen", t.GenesisID)
	putBytes(m, "gh", t.GenesisHash)
	putBytes(m, "note", t.Note)
	putBytes(m, "grp", t.Group[:])
	putStr(m, "type", string(t.Type))

	switch t.Type {
	case TypePayment:
		if err := putAddr(m, "rcv", t.Receiver); err != nil {
			return nil, err
		}
		putUint(m, "amt", t.Amount)
		if err := putAddr(m, "close", t.CloseRemainderTo); err != nil {
			return nil, err
		}

	case TypeAssetTransfer:
		putUint(m, "xaid", t.XferAsset)
		putUint(m, "aamt", t.AssetAmount)
		if err := putAddr(m, "arcv", t.AssetReceiver); err != nil {
			return nil, err
		}
		if err := putAddr(m, "aclose", t.AssetCloseTo); err != nil {
			return nil, err
		}

	case TypeAssetConfig:
		if t.AssetParams == nil {
			return nil, fmt.Errorf("asset config transaction without parameters")
		}
		apar, err := encodeAssetParams(t.AssetParams)
		if err != nil {
			return nil, err
		}
		if len(apar) > 0 {
			m["apar"] = apar
		}

	default:
		return nil, fmt.Errorf("unknown transaction type %q", t.Type)
	}

	return m, nil
}

func encodeAssetParams(p *AssetConfigParams) (map[string]any, error) {
	m := make(map[string]any)
	putUint(m, "t", p.Total)
	putUint(m, "dc", uint64(p.Decimals))
	if p.DefaultFrozen {
		m["df"] = true
	}
	putStr(m, "un", p.UnitName)
	putStr(m, "an", p.AssetName)
	putStr(m, "au", p.URL)
	for key, addr := range map[string]string{
		"m": p.Manager,
		"r": p.Reserve,
		"f": p.Freeze,
		"c": p.Clawback,
	} {
		if err := putAddr(m, key, addr); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// putAddr stores an address as its raw public key, omitting empty and
// all-zero addresses.
func putAddr(m map[string]any, key, address string) error {
	if address == "" {
		return nil
	}
	pk, err := ledger.DecodeAddress(address)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	if pk == ([32]byte{}) {
		return nil
	}
	m[key] = pk[:]
	return nil
}

func putUint(m map[string]any, key string, v uint64) {
	if v != 0 {
		m[key] = v
	}
}

func putStr(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putBytes(m map[string]any, key string, v []byte) {
	if allZero(v) {
		return
	}
	m[key] = v
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
