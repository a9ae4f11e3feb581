package stmgr

import (
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// registerCandidates registers n nodes at the minimum stake and returns them.
func registerCandidates(env *testEnv, n int) []address.Address {
	owners := make([]address.Address, n)
	for i := range owners {
		owners[i] = testAddr(env.t, uint64(10+i))
		env.registerNode(owners[i], big.NewInt(100_000_000))
	}
	return owners
}

func TestUploadFee(t *testing.T) {
	cfg := &types.StorageConfig{PricePerGB: big.NewInt(100_000)}

	// one gigabyte for a year over two shards:
	// GiB * 100000 * 2 * 365 / (GiB * 7300) = 10000
	fee := UploadFee(cfg, build.GiB, 2, 365)
	assert.Equal(t, big.NewInt(10_000), fee)

	// sub-amortization parameters round down to zero
	fee = UploadFee(cfg, build.MiB, 1, 1)
	assert.True(t, fee.IsZero())
}

func TestSplitShardSizes(t *testing.T) {
	assert.Equal(t, []uint64{4, 3, 3}, splitShardSizes(10, 3))
	assert.Equal(t, []uint64{5, 5}, splitShardSizes(10, 2))
	assert.Equal(t, []uint64{1, 1, 0}, splitShardSizes(2, 3))
}

func TestUploadData(t *testing.T) {
	env := newTestEnv(t)
	owners := registerCandidates(env, 3)

	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))

	up, err := env.sm.UploadData(env.ctx, payer, "deadbeef", build.GiB, 2, 365, owners)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), up.ShardCount)
	assert.Equal(t, big.NewInt(9000), up.NodeEscrow)

	// fee 10000 split 10/90 between treasury and upload escrow
	assert.Equal(t, big.NewInt(990_000), env.balance(payer))
	assert.Equal(t, big.NewInt(1000), env.balance(env.treasury))
	assert.Equal(t, big.NewInt(9000), env.balance(types.EscrowAddress("deadbeef", payer)))

	// shard sizes cover the ceiling-megabyte total exactly
	var totalMB uint64
	for _, s := range up.Shards {
		totalMB += s.SizeMB
		assert.LessOrEqual(t, len(s.NodeKeys), build.MaxShardNodes)
		assert.NotEmpty(t, s.NodeKeys)
		for _, owner := range s.NodeKeys {
			assert.Contains(t, owners, owner)
		}
	}
	assert.Equal(t, uint64(1024), totalMB)

	// every assigned node carries the upload obligation
	for _, owner := range owners {
		nd, err := env.sm.GetNode(env.ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), nd.UploadCount)
	}

	got, err := env.sm.GetUpload(env.ctx, "deadbeef", payer)
	require.NoError(t, err)
	assert.Equal(t, up.DataHash, got.DataHash)
	assert.Equal(t, up.ShardCount, got.ShardCount)

	// the creation landed in the journal
	var found bool
	for _, e := range env.jrnl.Entries() {
		if e.EventType.String() == "storage:upload_created" {
			found = true
			evt, ok := e.Data.(UploadCreatedEvt)
			require.True(t, ok)
			assert.Equal(t, "deadbeef", evt.DataHash)
		}
	}
	assert.True(t, found)
}

func TestUploadDataValidation(t *testing.T) {
	env := newTestEnv(t)
	owners := registerCandidates(env, 2)
	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(10_000_000))

	_, err := env.sm.UploadData(env.ctx, payer, "", build.GiB, 1, 365, owners)
	require.ErrorIs(t, err, ErrInvalidHash)

	longHash := make([]byte, build.MaxDataHashLength+1)
	for i := range longHash {
		longHash[i] = 'a'
	}
	_, err = env.sm.UploadData(env.ctx, payer, string(longHash), build.GiB, 1, 365, owners)
	require.ErrorIs(t, err, ErrInvalidHash)

	_, err = env.sm.UploadData(env.ctx, payer, "h", 512, 1, 365, owners)
	require.ErrorIs(t, err, ErrInvalidSize)

	// a size past the int64 range trips the overflow guard, not the fee check
	_, err = env.sm.UploadData(env.ctx, payer, "h", build.MaxDataSizeBytes+1, 1, 365, owners)
	require.ErrorIs(t, err, ErrMathOverflow)

	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 1, 0, owners)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 1, build.MaxStorageDurationDays+1, owners)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 6, 365, owners)
	require.ErrorIs(t, err, ErrInvalidShardCount)

	// more shards than eligible nodes
	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 3, 365, owners)
	require.ErrorIs(t, err, ErrInvalidShardCount)

	// duplicate candidate
	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 1, 365, []address.Address{owners[0], owners[0]})
	require.ErrorIs(t, err, ErrInvalidSubmission)

	// unregistered candidate
	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 1, 365, []address.Address{testAddr(t, 99)})
	require.ErrorIs(t, err, ErrInsufficientNodes)

	// empty candidate list
	_, err = env.sm.UploadData(env.ctx, payer, "h", build.GiB, 1, 365, nil)
	require.ErrorIs(t, err, ErrInsufficientNodes)

	// fee below the configured minimum
	_, err = env.sm.UploadData(env.ctx, payer, "h", build.MiB, 1, 1, owners)
	require.ErrorIs(t, err, ErrInsufficientFee)
}

func TestUploadDuplicateHash(t *testing.T) {
	env := newTestEnv(t)
	owners := registerCandidates(env, 1)
	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))

	_, err := env.sm.UploadData(env.ctx, payer, "dup", build.GiB, 1, 365, owners)
	require.NoError(t, err)
	_, err = env.sm.UploadData(env.ctx, payer, "dup", build.GiB, 1, 365, owners)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUploadLimit(t *testing.T) {
	env := newTestEnv(t) // MaxUserUploads: 2
	owners := registerCandidates(env, 1)
	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))

	for i := 0; i < 2; i++ {
		_, err := env.sm.UploadData(env.ctx, payer, fmt.Sprintf("hash-%d", i), build.GiB, 1, 365, owners)
		require.NoError(t, err)
	}
	_, err := env.sm.UploadData(env.ctx, payer, "hash-2", build.GiB, 1, 365, owners)
	require.ErrorIs(t, err, ErrUploadLimitExceeded)
}

func TestUploadInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	owners := registerCandidates(env, 1)
	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(100)) // fee is 5000

	_, err := env.sm.UploadData(env.ctx, payer, "h", build.GiB, 1, 365, owners)
	require.Error(t, err)

	// nothing committed
	assert.Equal(t, big.NewInt(100), env.balance(payer))
	treasuryBal := env.balance(env.treasury)
	assert.True(t, treasuryBal.IsZero())
}

func TestUploadShardMinShrink(t *testing.T) {
	env := newTestEnvWith(t, func(p *InitParams) {
		p.ShardMinMB = 500
	})
	owners := registerCandidates(env, 3)
	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(10_000_000))

	// 600MB over 3 shards would leave 200MB shards; the count shrinks to
	// the largest one satisfying the 500MB minimum
	up, err := env.sm.UploadData(env.ctx, payer, "big", 600*build.MiB, 3, 365, owners)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), up.ShardCount)
	assert.Equal(t, uint64(600), up.Shards[0].SizeMB)
}

func TestUploadSkipsInactiveCandidates(t *testing.T) {
	env := newTestEnv(t)
	owners := registerCandidates(env, 4)
	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))

	// park one node mid-exit; it stays in the registry but is not sampled
	_, err := env.sm.UploadData(env.ctx, payer, "first", build.GiB, 1, 365, owners[:3])
	require.NoError(t, err)
	require.NoError(t, env.sm.RequestReplacement(env.ctx, owners[0], "first", payer, 0))

	up, err := env.sm.UploadData(env.ctx, payer, "second", build.GiB, 1, 365, owners)
	require.NoError(t, err)
	assert.False(t, up.Shards[0].HasNode(owners[0]))
}
