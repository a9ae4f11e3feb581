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

// posFixture sets up an upload over secp256k1-keyed nodes so submissions can
// carry real challenger signatures.
type posFixture struct {
	env   *testEnv
	keys  []secpKey
	payer address.Address
	hash  string
}

func newPosFixture(t *testing.T, nodes int) *posFixture {
	env := newTestEnv(t)

	keys := make([]secpKey, nodes)
	owners := make([]address.Address, nodes)
	for i := range keys {
		keys[i] = genSecpKey(t)
		owners[i] = keys[i].addr
		env.registerNode(owners[i], big.NewInt(100_000_000))
	}

	payer := testAddr(t, 20)
	env.credit(payer, big.NewInt(1_000_000))
	_, err := env.sm.UploadData(env.ctx, payer, "deadbeef", build.GiB, 1, 365, owners)
	require.NoError(t, err)

	return &posFixture{env: env, keys: keys, payer: payer, hash: "deadbeef"}
}

func (f *posFixture) shard(t *testing.T, id uint64) *types.ShardInfo {
	up, err := f.env.sm.GetUpload(f.env.ctx, f.hash, f.payer)
	require.NoError(t, err)
	shard := up.Shard(id)
	require.NotNil(t, shard)
	return shard
}

func TestSubmitPoS(t *testing.T) {
	f := newPosFixture(t, 2)
	env := f.env

	sub := possessionProof(t, f.hash, 0, f.keys[1], env.sm.Ledger().Timestamp())
	require.NoError(t, env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub}))

	shard := f.shard(t, 0)
	assert.Equal(t, uint64(1), shard.VerifiedCount)
	require.NotNil(t, shard.Challenger)
	assert.Equal(t, f.keys[1].addr, *shard.Challenger)
	assert.False(t, shard.IsSettled())

	// the counterpart proof completes verification and releases both nodes
	sub = possessionProof(t, f.hash, 0, f.keys[0], env.sm.Ledger().Timestamp())
	require.NoError(t, env.sm.SubmitPoS(env.ctx, f.keys[1].addr, f.payer, []types.ShardSubmission{sub}))

	shard = f.shard(t, 0)
	assert.Equal(t, uint64(2), shard.VerifiedCount)
	assert.True(t, shard.IsSettled())

	for _, k := range f.keys {
		nd, err := env.sm.GetNode(env.ctx, k.addr)
		require.NoError(t, err)
		assert.Zero(t, nd.UploadCount)
	}

	// fully verified shard accepts no further proofs
	sub = possessionProof(t, f.hash, 0, f.keys[1], env.sm.Ledger().Timestamp())
	err := env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrPoSAlreadySubmitted)
}

func TestSubmitPoSRejections(t *testing.T) {
	f := newPosFixture(t, 2)
	env := f.env
	ts := env.sm.Ledger().Timestamp()

	err := env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, nil)
	require.ErrorIs(t, err, ErrInvalidSubmission)

	// unknown shard
	sub := possessionProof(t, f.hash, 7, f.keys[1], ts)
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrInvalidShardId)

	// submitter not assigned to the shard
	outsider := genSecpKey(t)
	env.registerNode(outsider.addr, big.NewInt(100_000_000))
	sub = possessionProof(t, f.hash, 0, f.keys[1], ts)
	err = env.sm.SubmitPoS(env.ctx, outsider.addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrUnauthorized)

	// missing proof material
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{{
		DataHash: f.hash, ShardID: 0,
	}})
	require.ErrorIs(t, err, ErrMissingPoSData)

	// corrupted leaf breaks the Merkle path
	sub = possessionProof(t, f.hash, 0, f.keys[1], ts)
	sub.Leaf = []byte("tampered")
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrInvalidMerkleProof)

	// declared public key differs from the signing key
	sub = possessionProof(t, f.hash, 0, f.keys[1], ts)
	sub.ChallengerPub = f.keys[0].pub
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrInvalidChallengerSignature)

	// node vouching for itself
	sub = possessionProof(t, f.hash, 0, f.keys[0], ts)
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrChallengerIsNode)

	// challenger outside the shard membership
	sub = possessionProof(t, f.hash, 0, outsider, ts)
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrInvalidChallenger)

	// nothing above left residue
	shard := f.shard(t, 0)
	assert.Zero(t, shard.VerifiedCount)
}

func TestSubmitPoSSingleNodeShard(t *testing.T) {
	f := newPosFixture(t, 1)
	env := f.env

	challenger := genSecpKey(t)
	sub := possessionProof(t, f.hash, 0, challenger, env.sm.Ledger().Timestamp())
	err := env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrSingleNodeShard)
}

func TestOversizedReportInvalidation(t *testing.T) {
	f := newPosFixture(t, 3)
	env := f.env

	report := func(key secpKey) error {
		return env.sm.SubmitPoS(env.ctx, key.addr, f.payer, []types.ShardSubmission{{
			DataHash:     f.hash,
			ShardID:      0,
			ActualSizeMB: 2048,
		}})
	}

	// threshold for 3 live nodes at 66% is 2 reports
	require.NoError(t, report(f.keys[0]))
	assert.False(t, f.shard(t, 0).IsInvalid())

	// same reporter cannot stack reports
	err := report(f.keys[0])
	require.ErrorIs(t, err, ErrInvalidSizeReport)

	require.NoError(t, report(f.keys[1]))
	shard := f.shard(t, 0)
	assert.True(t, shard.IsInvalid())
	assert.True(t, shard.IsSettled())
	assert.Len(t, shard.OversizedReports, 2)

	// invalidated shards accept nothing further
	err = report(f.keys[2])
	require.ErrorIs(t, err, ErrInvalidSubmission)
}

func TestOversizedReportValidation(t *testing.T) {
	f := newPosFixture(t, 3)
	env := f.env

	// claimed size must exceed the declared shard size
	err := env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{{
		DataHash:     f.hash,
		ShardID:      0,
		ActualSizeMB: 100,
	}})
	require.ErrorIs(t, err, ErrInvalidSizeReport)

	// a submission cannot be both report and proof
	sub := possessionProof(t, f.hash, 0, f.keys[1], env.sm.Ledger().Timestamp())
	sub.ActualSizeMB = 2048
	err = env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{sub})
	require.ErrorIs(t, err, ErrInvalidSubmission)
}

func TestOversizedReportWindow(t *testing.T) {
	f := newPosFixture(t, 3)
	env := f.env

	// the reporting window is one epoch; move well past it
	env.advanceEpochs(2)

	err := env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{{
		DataHash:     f.hash,
		ShardID:      0,
		ActualSizeMB: 2048,
	}})
	require.ErrorIs(t, err, ErrSizeReportTimeout)
}

func TestSubmitPoSBatchAtomicity(t *testing.T) {
	f := newPosFixture(t, 2)
	env := f.env
	ts := env.sm.Ledger().Timestamp()

	good := possessionProof(t, f.hash, 0, f.keys[1], ts)
	bad := possessionProof(t, f.hash, 0, f.keys[1], ts)
	bad.Leaf = []byte("tampered")

	err := env.sm.SubmitPoS(env.ctx, f.keys[0].addr, f.payer, []types.ShardSubmission{good, bad})
	require.ErrorIs(t, err, ErrInvalidMerkleProof)

	// the valid entry must not have landed either
	assert.Zero(t, f.shard(t, 0).VerifiedCount)
}
