package stmgr

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
	"github.com/cenwadike/solad-sub000/journal"
)

func TestInitializeOnce(t *testing.T) {
	env := newTestEnv(t)

	cfg, err := env.sm.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, env.authority, cfg.Authority)
	assert.Equal(t, env.treasury, cfg.Treasury)
	assert.True(t, cfg.IsInitialized)

	err = env.sm.Initialize(env.ctx, env.authority, env.params)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInitializeValidation(t *testing.T) {
	cases := []struct {
		name  string
		tweak func(*InitParams)
		want  error
	}{
		{"zero price", func(p *InitParams) { p.PricePerGB = big.Zero() }, ErrInvalidPaymentRate},
		{"fee split over 100", func(p *InitParams) { p.TreasuryFeePercent = 20 }, ErrInvalidFeeSplit},
		{"max shards over cap", func(p *InitParams) { p.MaxShardCount = 11 }, ErrInvalidShardRange},
		{"min above max", func(p *InitParams) { p.MinShardCount = 6 }, ErrInvalidShardRange},
		{"zero epochs", func(p *InitParams) { p.EpochsTotal = 0 }, ErrInvalidEpochs},
		{"penalty over 50", func(p *InitParams) { p.SlashPenaltyPercent = 51 }, ErrInvalidPenalty},
		{"zero slots per epoch", func(p *InitParams) { p.SlotsPerEpoch = 0 }, ErrInvalidSlotsPerEpoch},
		{"stake below floor", func(p *InitParams) { p.MinNodeStake = big.NewInt(1) }, ErrInvalidStake},
		{"zero timeout", func(p *InitParams) { p.ReplacementTimeoutEpochs = 0 }, ErrInvalidTimeout},
		{"fee below floor", func(p *InitParams) { p.MinUploadFee = big.NewInt(1) }, ErrInvalidMinFee},
		{"user penalty over 50", func(p *InitParams) { p.UserSlashPenaltyPercent = 51 }, ErrInvalidUserPenalty},
		{"zero threshold", func(p *InitParams) { p.OversizedThresholdPercent = 0 }, ErrInvalidThreshold},
		{"threshold over 100", func(p *InitParams) { p.OversizedThresholdPercent = 101 }, ErrInvalidThreshold},
		{"zero window", func(p *InitParams) { p.ReportingWindowEpochs = 0 }, ErrInvalidWindow},
		{"zero upload limit", func(p *InitParams) { p.MaxUserUploads = 0 }, ErrInvalidUploadLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockClock(t)
			sm := NewStateManager(ledger.NewMemLedger(), journal.NewMemJournal(nil))
			p := defaultInitParams(testAddr(t, 2))
			tc.tweak(&p)
			err := sm.Initialize(context.Background(), testAddr(t, 1), p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateConfigAuthority(t *testing.T) {
	env := newTestEnv(t)

	price := big.NewInt(200_000)
	err := env.sm.UpdateConfig(env.ctx, testAddr(t, 50), types.ConfigUpdate{PricePerGB: &price})
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.sm.UpdateConfig(env.ctx, env.authority, types.ConfigUpdate{PricePerGB: &price}))
	cfg, err := env.sm.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, price, cfg.PricePerGB)
}

func TestUpdateConfigPairedFields(t *testing.T) {
	env := newTestEnv(t)

	// one half of a paired invariant on its own is rejected
	forty := uint64(40)
	err := env.sm.UpdateConfig(env.ctx, env.authority, types.ConfigUpdate{TreasuryFeePercent: &forty})
	require.ErrorIs(t, err, ErrInvalidFeeSplit)

	three := uint64(3)
	err = env.sm.UpdateConfig(env.ctx, env.authority, types.ConfigUpdate{MinShardCount: &three})
	require.ErrorIs(t, err, ErrInvalidShardRange)

	sixty := uint64(60)
	require.NoError(t, env.sm.UpdateConfig(env.ctx, env.authority, types.ConfigUpdate{
		TreasuryFeePercent: &forty,
		NodeFeePercent:     &sixty,
	}))
	cfg, err := env.sm.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, forty, cfg.TreasuryFeePercent)
	assert.Equal(t, sixty, cfg.NodeFeePercent)
}

func TestUpdateConfigRevalidates(t *testing.T) {
	env := newTestEnv(t)

	epochs := abi.ChainEpoch(0)
	err := env.sm.UpdateConfig(env.ctx, env.authority, types.ConfigUpdate{EpochsTotal: &epochs})
	require.ErrorIs(t, err, ErrInvalidEpochs)

	// failed update leaves the previous config intact
	cfg, err := env.sm.GetConfig(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, env.params.EpochsTotal, cfg.EpochsTotal)
}

func TestOperationsBeforeInitialize(t *testing.T) {
	mockClock(t)
	sm := NewStateManager(ledger.NewMemLedger(), nil)
	ctx := context.Background()

	_, err := sm.GetConfig(ctx)
	require.ErrorIs(t, err, ErrNotInitialized)

	err = sm.RegisterNode(ctx, testAddr(t, 10), big.NewInt(100_000_000))
	require.ErrorIs(t, err, ErrNotInitialized)

	_, err = sm.UploadData(ctx, testAddr(t, 11), "hash", 1<<20, 1, 30, nil)
	require.ErrorIs(t, err, ErrNotInitialized)
}
