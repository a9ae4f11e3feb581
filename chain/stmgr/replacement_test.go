package stmgr

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// replacementFixture: an upload held by two secp-keyed nodes, with a third
// registered node standing by as the only possible replacement.
type replacementFixture struct {
	env   *testEnv
	keys  []secpKey // keys[0], keys[1] hold the shard; keys[2] stands by
	payer address.Address
	hash  string
	stake big.Int
}

func newReplacementFixture(t *testing.T) *replacementFixture {
	env := newTestEnv(t)
	stake := big.NewInt(100_000_000)

	keys := make([]secpKey, 3)
	for i := range keys {
		keys[i] = genSecpKey(t)
		env.registerNode(keys[i].addr, stake)
	}

	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))
	_, err := env.sm.UploadData(env.ctx, payer, "deadbeef", build.GiB, 1, 365,
		[]address.Address{keys[0].addr, keys[1].addr})
	require.NoError(t, err)

	return &replacementFixture{env: env, keys: keys, payer: payer, hash: "deadbeef", stake: stake}
}

func TestRequestReplacement(t *testing.T) {
	f := newReplacementFixture(t)
	env := f.env

	require.NoError(t, env.sm.RequestReplacement(env.ctx, f.keys[0].addr, f.hash, f.payer, 0))

	up, err := env.sm.GetUpload(env.ctx, f.hash, f.payer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), up.PendingReplacements)

	// the only eligible node took over the slot
	shard := up.Shard(0)
	assert.False(t, shard.HasNode(f.keys[0].addr))
	assert.True(t, shard.HasNode(f.keys[2].addr))

	exiting, err := env.sm.GetNode(env.ctx, f.keys[0].addr)
	require.NoError(t, err)
	assert.False(t, exiting.IsActive)

	replacement, err := env.sm.GetNode(env.ctx, f.keys[2].addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), replacement.UploadCount)
}

func TestRequestReplacementRejections(t *testing.T) {
	f := newReplacementFixture(t)
	env := f.env

	// caller not in the shard
	err := env.sm.RequestReplacement(env.ctx, f.keys[2].addr, f.hash, f.payer, 0)
	require.ErrorIs(t, err, ErrUnauthorized)

	err = env.sm.RequestReplacement(env.ctx, f.keys[0].addr, f.hash, f.payer, 9)
	require.ErrorIs(t, err, ErrInvalidShardId)

	// exhaust the candidate pool: both shard holders leaving means the
	// second one finds nobody outside the shard
	require.NoError(t, env.sm.RequestReplacement(env.ctx, f.keys[0].addr, f.hash, f.payer, 0))
	err = env.sm.RequestReplacement(env.ctx, f.keys[1].addr, f.hash, f.payer, 0)
	require.ErrorIs(t, err, ErrNoReplacementAvailable)
}

func TestTerminalExit(t *testing.T) {
	env := newTestEnv(t)
	stake := big.NewInt(100_000_000)
	owner := testAddr(t, 10)
	env.registerNode(owner, stake)

	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))
	_, err := env.sm.UploadData(env.ctx, payer, "solo", build.GiB, 1, 365, []address.Address{owner})
	require.NoError(t, err)

	// sole shard holder: the exit is terminal, slot vacated, stake refunded
	require.NoError(t, env.sm.RequestReplacement(env.ctx, owner, "solo", payer, 0))

	assert.Equal(t, stake, env.balance(owner))
	escrowBal := env.balance(types.StakeEscrowAddress(owner))
	assert.True(t, escrowBal.IsZero())

	_, err = env.sm.GetNode(env.ctx, owner)
	require.Error(t, err)

	nodes, err := env.sm.ListNodes(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	up, err := env.sm.GetUpload(env.ctx, "solo", payer)
	require.NoError(t, err)
	assert.Zero(t, up.Shards[0].LiveNodeCount())
	assert.Zero(t, up.PendingReplacements)
}

func TestReplacementProofClosesRecord(t *testing.T) {
	f := newReplacementFixture(t)
	env := f.env

	require.NoError(t, env.sm.RequestReplacement(env.ctx, f.keys[0].addr, f.hash, f.payer, 0))

	// the replacement proves possession in time, co-signed by the remaining
	// shard holder; the exiting node's stake is released in full
	sub := possessionProof(t, f.hash, 0, f.keys[1], env.sm.Ledger().Timestamp())
	sub.ExitingNode = f.keys[0].addr
	require.NoError(t, env.sm.SubmitPoS(env.ctx, f.keys[2].addr, f.payer, []types.ShardSubmission{sub}))

	assert.Equal(t, f.stake, env.balance(f.keys[0].addr))
	escrowBal := env.balance(types.StakeEscrowAddress(f.keys[0].addr))
	assert.True(t, escrowBal.IsZero())

	_, err := env.sm.GetNode(env.ctx, f.keys[0].addr)
	require.Error(t, err)

	up, err := env.sm.GetUpload(env.ctx, f.hash, f.payer)
	require.NoError(t, err)
	assert.Zero(t, up.PendingReplacements)
	assert.Equal(t, uint64(1), up.Shards[0].VerifiedCount)

	// the record is gone; slashing it is no longer possible
	err = env.sm.SlashTimeout(env.ctx, testAddr(t, 30), f.hash, f.payer, f.keys[0].addr, 0)
	require.ErrorIs(t, err, ErrPoSAlreadySubmitted)
}

func TestSlashTimeout(t *testing.T) {
	f := newReplacementFixture(t)
	env := f.env
	caller := testAddr(t, 30)

	require.NoError(t, env.sm.RequestReplacement(env.ctx, f.keys[0].addr, f.hash, f.payer, 0))

	err := env.sm.SlashTimeout(env.ctx, caller, f.hash, f.payer, f.keys[0].addr, 0)
	require.ErrorIs(t, err, ErrTimeoutNotExpired)

	env.advanceEpochs(2)
	require.NoError(t, env.sm.SlashTimeout(env.ctx, caller, f.hash, f.payer, f.keys[0].addr, 0))

	// 10% of the stake slashed, split 90/10 between treasury and caller;
	// the treasury already held its 500 cut of the upload fee
	assert.Equal(t, big.NewInt(9_000_500), env.balance(env.treasury))
	assert.Equal(t, big.NewInt(1_000_000), env.balance(caller))
	assert.Equal(t, big.NewInt(90_000_000), env.balance(types.StakeEscrowAddress(f.keys[0].addr)))

	nd, err := env.sm.GetNode(env.ctx, f.keys[0].addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(90_000_000), nd.StakeAmount)

	up, err := env.sm.GetUpload(env.ctx, f.hash, f.payer)
	require.NoError(t, err)
	assert.Zero(t, up.PendingReplacements)

	// a second slash finds the record closed
	err = env.sm.SlashTimeout(env.ctx, caller, f.hash, f.payer, f.keys[0].addr, 0)
	require.ErrorIs(t, err, ErrPoSAlreadySubmitted)
}

func TestBatchRequestReplacement(t *testing.T) {
	f := newReplacementFixture(t)
	env := f.env

	err := env.sm.BatchRequestReplacement(env.ctx, f.keys[0].addr, nil)
	require.ErrorIs(t, err, ErrInvalidSubmission)

	err = env.sm.BatchRequestReplacement(env.ctx, f.keys[0].addr, []ReplacementRef{{DataHash: f.hash, ShardID: 0}})
	require.ErrorIs(t, err, ErrNoReplacementAvailable)

	require.NoError(t, env.sm.RequestReplacement(env.ctx, f.keys[0].addr, f.hash, f.payer, 0))
	require.NoError(t, env.sm.BatchRequestReplacement(env.ctx, f.keys[0].addr, []ReplacementRef{{DataHash: f.hash, ShardID: 0}}))

	nd, err := env.sm.GetNode(env.ctx, f.keys[0].addr)
	require.NoError(t, err)
	assert.Zero(t, nd.UploadCount)
}
