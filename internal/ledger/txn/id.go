package txn

import (
	"crypto/sha512"
	"encoding/base32"
)

// Domain-separation prefixes for transaction and group hashing.
const (
	txIDPrefix    = "TX"
	groupIDPrefix = "TG"
)

//nolint:gochecknoglobals // Protocol constant
var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// rawID computes the 32-byte transaction digest.
func rawID(t *Transaction) ([32]byte, error) {
	encoded, err := Encode(t)
	if err != nil {
		return [32]byte{}, err
	}
	return sha512.Sum512_256(append([]byte(txIDPrefix), encoded...)), nil
}

// SignBytes returns the domain-separated bytes a signer authorizes: the
// transaction-digest preimage. Signatures are taken over these bytes, never
// over the bare encoding.
func SignBytes(t *Transaction) ([]byte, error) {
	encoded, err := Encode(t)
	if err != nil {
		return nil, err
	}
	return append([]byte(txIDPrefix), encoded...), nil
}

// ID returns the transaction identifier: the base32 form of the transaction
// digest. The ID covers the group field, so it is only stable once grouping
// is complete.
func ID(t *Transaction) (string, error) {
	digest, err := rawID(t)
	if err != nil {
		return "", err
	}
	return idEncoding.EncodeToString(digest[:]), nil
}
