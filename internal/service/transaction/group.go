package transaction

import (
	"encoding/base64"
	"fmt"

	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/txn"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Compose links built transactions into an atomic group, preserving the
// caller's order. Composition is deterministic: the same ordered input
// always yields the same group identifier. A single-member batch stays
// ungrouped, matching how the ledger treats lone transactions.
func Compose(built []BuiltTransaction) (*AtomicGroup, error) {
	if len(built) == 0 {
		return nil, atomixerr.ErrEmptyBatch
	}
	if len(built) > ledger.MaxGroupSize {
		return nil, atomixerr.WithDetails(atomixerr.ErrGroupTooLarge,
			map[string]string{
				"size": fmt.Sprintf("%d", len(built)),
				"max":  fmt.Sprintf("%d", ledger.MaxGroupSize),
			})
	}

	if len(built) == 1 {
		return &AtomicGroup{Built: built}, nil
	}

	txns := make([]txn.Transaction, len(built))
	for i := range built {
		txns[i] = built[i].Txn
	}

	gid, err := txn.AssignGroup(txns)
	if err != nil {
		return nil, atomixerr.Wrap(err, "linking atomic group")
	}

	linked := make([]BuiltTransaction, len(built))
	copy(linked, built)
	for i := range linked {
		linked[i].Txn = txns[i]
	}

	return &AtomicGroup{
		Built:   linked,
		GroupID: base64.StdEncoding.EncodeToString(gid[:]),
	}, nil
}
