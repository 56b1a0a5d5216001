package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/ledger"
)

func paymentList(n int) []Transaction {
	txns := make([]Transaction, n)
	for i := range txns {
		txns[i] = NewPayment(testAddr(1), testAddr(byte(i+2)), uint64(i+1), encodeParams(), nil)
	}
	return txns
}

func TestComputeGroupIDDeterministic(t *testing.T) {
	t.Parallel()

	a := paymentList(3)
	b := paymentList(3)

	gidA, err := ComputeGroupID(a)
	require.NoError(t, err)
	gidB, err := ComputeGroupID(b)
	require.NoError(t, err)

	assert.Equal(t, gidA, gidB, "identical ordered input must yield identical group IDs")
	assert.NotEqual(t, [32]byte{}, gidA)
}

func TestComputeGroupIDOrderSensitive(t *testing.T) {
	t.Parallel()

	forward := paymentList(2)
	reversed := []Transaction{forward[1], forward[0]}

	gidF, err := ComputeGroupID(forward)
	require.NoError(t, err)
	gidR, err := ComputeGroupID(reversed)
	require.NoError(t, err)

	assert.NotEqual(t, gidF, gidR, "member order is part of the group identity")
}

func TestComputeGroupIDBounds(t *testing.T) {
	t.Parallel()

	_, err := ComputeGroupID(nil)
	assert.Error(t, err, "empty list must be rejected")

	_, err = ComputeGroupID(paymentList(ledger.MaxGroupSize + 1))
	assert.Error(t, err, "oversized list must be rejected")

	_, err = ComputeGroupID(paymentList(ledger.MaxGroupSize))
	assert.NoError(t, err, "maximum size is allowed")
}

func TestComputeGroupIDRejectsPreGrouped(t *testing.T) {
	t.Parallel()

	txns := paymentList(2)
	txns[0].Group = [32]byte{1}

	_, err := ComputeGroupID(txns)
	assert.Error(t, err)
}

func TestAssignGroupEmbedsID(t *testing.T) {
	t.Parallel()

	txns := paymentList(4)
	gid, err := AssignGroup(txns)
	require.NoError(t, err)

	for i := range txns {
		assert.Equal(t, gid, txns[i].Group, "member %d must carry the group ID", i)
	}
}

func TestAssignGroupSingleton(t *testing.T) {
	t.Parallel()

	txns := paymentList(1)
	gid, err := AssignGroup(txns)
	require.NoError(t, err)
	assert.Equal(t, gid, txns[0].Group)
}

func TestGroupChangesTransactionID(t *testing.T) {
	t.Parallel()

	grouped := paymentList(2)
	ungrouped := paymentList(2)

	_, err := AssignGroup(grouped)
	require.NoError(t, err)

	idGrouped, err := ID(&grouped[0])
	require.NoError(t, err)
	idUngrouped, err := ID(&ungrouped[0])
	require.NoError(t, err)

	assert.NotEqual(t, idGrouped, idUngrouped, "the ID covers the group field")
}
