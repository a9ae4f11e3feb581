package ledger

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/raulk/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/types"
)

func mockClock(t *testing.T) *clock.Mock {
	mc := clock.NewMock()
	prev := build.Clock
	build.Clock = mc
	t.Cleanup(func() {
		build.Clock = prev
	})
	return mc
}

func testAddr(t *testing.T, id uint64) address.Address {
	addr, err := address.NewIDAddress(id)
	require.NoError(t, err)
	return addr
}

func TestStateRoundtrip(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	key := testAddr(t, 100)
	err := l.Apply(ctx, func(tx *Txn) error {
		return tx.PutState(key, &types.Escrow{CreatedSlot: 42})
	})
	require.NoError(t, err)

	var out types.Escrow
	require.NoError(t, l.GetState(ctx, key, &out))
	assert.Equal(t, uint64(42), out.CreatedSlot)

	has, err := l.HasState(ctx, key)
	require.NoError(t, err)
	assert.True(t, has)

	var missing types.Escrow
	err = l.GetState(ctx, testAddr(t, 101), &missing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTxnReadsOwnWrites(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	key := testAddr(t, 100)
	err := l.Apply(ctx, func(tx *Txn) error {
		if err := tx.PutState(key, &types.Escrow{CreatedSlot: 7}); err != nil {
			return err
		}

		var out types.Escrow
		if err := tx.GetState(key, &out); err != nil {
			return err
		}
		assert.Equal(t, uint64(7), out.CreatedSlot)

		tx.DeleteState(key)
		has, err := tx.HasState(key)
		if err != nil {
			return err
		}
		assert.False(t, has)
		return nil
	})
	require.NoError(t, err)

	has, err := l.HasState(ctx, key)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestApplyRollbackOnError(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	key := testAddr(t, 100)
	acct := testAddr(t, 200)

	boom := xerrors.New("boom")
	err := l.Apply(ctx, func(tx *Txn) error {
		if err := tx.PutState(key, &types.Escrow{CreatedSlot: 1}); err != nil {
			return err
		}
		if err := tx.Credit(acct, big.NewInt(500)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	has, err := l.HasState(ctx, key)
	require.NoError(t, err)
	assert.False(t, has)

	bal, err := l.BalanceOf(ctx, acct)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	alice := testAddr(t, 1)
	bob := testAddr(t, 2)

	err := l.Apply(ctx, func(tx *Txn) error {
		return tx.Credit(alice, big.NewInt(1000))
	})
	require.NoError(t, err)

	err = l.Apply(ctx, func(tx *Txn) error {
		return tx.Transfer(alice, bob, big.NewInt(300))
	})
	require.NoError(t, err)

	aliceBal, err := l.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(700), aliceBal)

	bobBal, err := l.BalanceOf(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(300), bobBal)

	err = l.Apply(ctx, func(tx *Txn) error {
		return tx.Transfer(alice, bob, big.NewInt(10_000))
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// the failed transfer must not have moved anything
	aliceBal, err = l.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(700), aliceBal)
}

func TestTransferSelfAndZero(t *testing.T) {
	ctx := context.Background()
	l := NewMemLedger()

	alice := testAddr(t, 1)
	require.NoError(t, l.Apply(ctx, func(tx *Txn) error {
		return tx.Credit(alice, big.NewInt(50))
	}))

	require.NoError(t, l.Apply(ctx, func(tx *Txn) error {
		if err := tx.Transfer(alice, alice, big.NewInt(50)); err != nil {
			return err
		}
		return tx.Transfer(alice, testAddr(t, 2), big.Zero())
	}))

	bal, err := l.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), bal)
}

func TestCurrentSlot(t *testing.T) {
	mc := mockClock(t)

	l := NewMemLedger()
	assert.Equal(t, uint64(0), l.CurrentSlot())

	mc.Add(build.SlotDuration * 10)
	assert.Equal(t, uint64(10), l.CurrentSlot())

	mc.Add(build.SlotDuration / 2)
	assert.Equal(t, uint64(10), l.CurrentSlot())
}
