package txn

import (
	"crypto/sha512"
	"fmt"

	"github.com/algointent/atomix/internal/ledger"
)

// ComputeGroupID derives the atomic group identifier from the ordered
// transaction list: the SHA-512/256 digest, domain-separated, of the encoded
// list of member transaction digests. Member group fields must be unset when
// the digests are taken; the result is deterministic for identical ordered
// input.
func ComputeGroupID(txns []Transaction) ([32]byte, error) {
	if len(txns) == 0 {
		return [32]byte{}, fmt.Errorf("empty transaction list")
	}
	if len(txns) > ledger.MaxGroupSize {
		return [32]byte{}, fmt.Errorf("%d transactions exceed maximum group size %d", len(txns), ledger.MaxGroupSize)
	}

	digests := make([]any, len(txns))
	for i := range txns {
		if txns[i].Group != ([32]byte{}) {
			return [32]byte{}, fmt.Errorf("transaction %d already has a group assigned", i)
		}
		d, err := rawID(&txns[i])
		if err != nil {
			return [32]byte{}, fmt.Errorf("hashing transaction %d: %w", i, err)
		}
		digests[i] = d[:]
	}

	encoded, err := marshalCanonical(map[string]any{"txlist": digests})
	if err != nil {
		return [32]byte{}, err
	}

	return sha512.Sum512_256(append([]byte(groupIDPrefix), encoded...)), nil
}

// AssignGroup computes the group identifier and embeds it into each member,
// in place. Order is preserved; the caller's order is execution order.
func AssignGroup(txns []Transaction) ([32]byte, error) {
	gid, err := ComputeGroupID(txns)
	if err != nil {
		return [32]byte{}, err
	}
	for i := range txns {
		txns[i].Group = gid
	}
	return gid, nil
}
