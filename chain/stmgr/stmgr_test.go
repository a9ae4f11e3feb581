package stmgr

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/filecoin-project/go-address"
	gocrypto "github.com/filecoin-project/go-crypto"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/raulk/clock"
	"github.com/stretchr/testify/require"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
	"github.com/cenwadike/solad-sub000/journal"
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

// secpKey is a node operator identity for submissions that need a real
// recoverable signature.
type secpKey struct {
	priv []byte
	pub  []byte
	addr address.Address
}

func genSecpKey(t *testing.T) secpKey {
	priv, err := gocrypto.GenerateKey()
	require.NoError(t, err)
	pub := gocrypto.PublicKey(priv)
	addr, err := address.NewSecp256k1Address(pub)
	require.NoError(t, err)
	return secpKey{priv: priv, pub: pub, addr: addr}
}

type testEnv struct {
	t    *testing.T
	ctx  context.Context
	mc   *clock.Mock
	sm   *StateManager
	jrnl *journal.MemJournal

	params    InitParams
	authority address.Address
	treasury  address.Address
}

func defaultInitParams(treasury address.Address) InitParams {
	return InitParams{
		Treasury:                  treasury,
		PricePerGB:                big.NewInt(100_000),
		TreasuryFeePercent:        10,
		NodeFeePercent:            90,
		ShardMinMB:                0,
		EpochsTotal:               2,
		SlashPenaltyPercent:       10,
		MinShardCount:             1,
		MaxShardCount:             5,
		SlotsPerEpoch:             10,
		MinNodeStake:              big.NewInt(100_000_000),
		ReplacementTimeoutEpochs:  2,
		MinUploadFee:              big.NewInt(5000),
		UserSlashPenaltyPercent:   10,
		OversizedThresholdPercent: 66,
		ReportingWindowEpochs:     1,
		MaxUserUploads:            2,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, nil)
}

func newTestEnvWith(t *testing.T, tweak func(*InitParams)) *testEnv {
	mc := mockClock(t)
	jrnl := journal.NewMemJournal(nil)
	sm := NewStateManager(ledger.NewMemLedger(), jrnl)

	env := &testEnv{
		t:         t,
		ctx:       context.Background(),
		mc:        mc,
		sm:        sm,
		jrnl:      jrnl,
		authority: testAddr(t, 1),
		treasury:  testAddr(t, 2),
	}
	env.params = defaultInitParams(env.treasury)
	if tweak != nil {
		tweak(&env.params)
	}
	require.NoError(t, sm.Initialize(env.ctx, env.authority, env.params))
	return env
}

func (e *testEnv) credit(addr address.Address, amt abi.TokenAmount) {
	require.NoError(e.t, e.sm.Ledger().Apply(e.ctx, func(tx *ledger.Txn) error {
		return tx.Credit(addr, amt)
	}))
}

func (e *testEnv) balance(addr address.Address) abi.TokenAmount {
	bal, err := e.sm.Ledger().BalanceOf(e.ctx, addr)
	require.NoError(e.t, err)
	return bal
}

func (e *testEnv) registerNode(owner address.Address, stake abi.TokenAmount) {
	e.credit(owner, stake)
	require.NoError(e.t, e.sm.RegisterNode(e.ctx, owner, stake))
}

func (e *testEnv) advanceEpochs(n uint64) {
	e.mc.Add(time.Duration(n*e.params.SlotsPerEpoch) * build.SlotDuration)
}

// hashPair mirrors the canonical pair ordering used by possession proofs.
func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	sum := sha256.Sum256(append(append([]byte{}, a...), b...))
	return sum[:]
}

// possessionProof builds a one-level possession proof for the shard,
// co-signed by the given challenger key.
func possessionProof(t *testing.T, dataHash string, shardID uint64, challenger secpKey, ts int64) types.ShardSubmission {
	leaf := []byte("shard-chunk")
	sibling := sha256.Sum256([]byte("neighbour-chunk"))
	rootHex := hex.EncodeToString(hashPair(leaf, sibling[:]))

	sig, err := gocrypto.Sign(challenger.priv, challengerDigest(dataHash, shardID, rootHex, ts))
	require.NoError(t, err)

	return types.ShardSubmission{
		DataHash:      dataHash,
		ShardID:       shardID,
		MerkleRoot:    rootHex,
		MerkleProof:   [][]byte{sibling[:]},
		Leaf:          leaf,
		ChallengerSig: sig,
		ChallengerPub: challenger.pub,
		Timestamp:     ts,
	}
}
