package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/ledger"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

func builtPayments(t *testing.T, n int) []BuiltTransaction {
	t.Helper()
	b := newTestBuilder(newMockGateway())
	out := make([]BuiltTransaction, n)
	for i := range out {
		bt, err := b.Build(context.Background(),
			Pay{Sender: testAddr(1), Receiver: testAddr(byte(i + 2)), Amount: "1"}, buildParams())
		require.NoError(t, err)
		out[i] = bt
	}
	return out
}

func TestCompose_EmptyBatch(t *testing.T) {
	_, err := Compose(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrEmptyBatch)
}

func TestCompose_GroupTooLarge(t *testing.T) {
	_, err := Compose(builtPayments(t, ledger.MaxGroupSize+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, atomixerr.ErrGroupTooLarge)
}

func TestCompose_SingletonStaysUngrouped(t *testing.T) {
	group, err := Compose(builtPayments(t, 1))
	require.NoError(t, err)

	assert.Empty(t, group.GroupID)
	assert.Equal(t, [32]byte{}, group.Built[0].Txn.Group)
}

func TestCompose_LinksEveryMember(t *testing.T) {
	group, err := Compose(builtPayments(t, 3))
	require.NoError(t, err)

	require.NotEmpty(t, group.GroupID)
	for i := range group.Built {
		assert.NotEqual(t, [32]byte{}, group.Built[i].Txn.Group, "member %d", i)
		assert.Equal(t, group.Built[0].Txn.Group, group.Built[i].Txn.Group)
	}
}

func TestCompose_AlreadyGroupedKeepsCause(t *testing.T) {
	built := builtPayments(t, 2)
	built[1].Txn.Group = [32]byte{1}

	_, err := Compose(built)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has a group")
}

func TestCompose_Deterministic(t *testing.T) {
	a, err := Compose(builtPayments(t, 3))
	require.NoError(t, err)
	b, err := Compose(builtPayments(t, 3))
	require.NoError(t, err)

	assert.Equal(t, a.GroupID, b.GroupID)
}

func TestCompose_OrderChangesGroupID(t *testing.T) {
	members := builtPayments(t, 3)
	a, err := Compose([]BuiltTransaction{members[0], members[1], members[2]})
	require.NoError(t, err)

	members = builtPayments(t, 3)
	b, err := Compose([]BuiltTransaction{members[2], members[1], members[0]})
	require.NoError(t, err)

	assert.NotEqual(t, a.GroupID, b.GroupID)
}

func TestCompose_DoesNotMutateInput(t *testing.T) {
	members := builtPayments(t, 2)
	_, err := Compose(members)
	require.NoError(t, err)

	assert.Equal(t, [32]byte{}, members[0].Txn.Group, "the caller's batch must stay unlinked")
}

func TestCompose_MaxGroupSizeAccepted(t *testing.T) {
	group, err := Compose(builtPayments(t, ledger.MaxGroupSize))
	require.NoError(t, err)
	assert.Len(t, group.Built, ledger.MaxGroupSize)
}
