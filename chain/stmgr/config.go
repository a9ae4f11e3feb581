package stmgr

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// InitParams carries the full parameter set for one-time initialization.
type InitParams struct {
	Treasury                  address.Address
	PricePerGB                abi.TokenAmount
	TreasuryFeePercent        uint64
	NodeFeePercent            uint64
	ShardMinMB                uint64
	EpochsTotal               abi.ChainEpoch
	SlashPenaltyPercent       uint64
	MinShardCount             uint64
	MaxShardCount             uint64
	SlotsPerEpoch             uint64
	MinNodeStake              abi.TokenAmount
	ReplacementTimeoutEpochs  abi.ChainEpoch
	MinUploadFee              abi.TokenAmount
	UserSlashPenaltyPercent   uint64
	OversizedThresholdPercent uint64
	ReportingWindowEpochs     abi.ChainEpoch
	MaxUserUploads            uint64
}

// validateConfig applies the full rule set; both Initialize and UpdateConfig
// funnel through it so a partial update can never leave an invalid whole.
func validateConfig(cfg *types.StorageConfig) error {
	if cfg.PricePerGB.Nil() || cfg.PricePerGB.LessThanEqual(big.Zero()) {
		return ErrInvalidPaymentRate
	}
	if cfg.TreasuryFeePercent+cfg.NodeFeePercent != 100 {
		return ErrInvalidFeeSplit
	}
	if cfg.MinShardCount < 1 || cfg.MinShardCount > cfg.MaxShardCount || cfg.MaxShardCount > 10 {
		return ErrInvalidShardRange
	}
	if cfg.EpochsTotal <= 0 {
		return ErrInvalidEpochs
	}
	if cfg.SlashPenaltyPercent > 50 {
		return ErrInvalidPenalty
	}
	if cfg.SlotsPerEpoch == 0 {
		return ErrInvalidSlotsPerEpoch
	}
	if cfg.MinNodeStake.Nil() || cfg.MinNodeStake.LessThan(build.MinNodeStakeFloor) {
		return ErrInvalidStake
	}
	if cfg.ReplacementTimeoutEpochs <= 0 {
		return ErrInvalidTimeout
	}
	if cfg.MinUploadFee.Nil() || cfg.MinUploadFee.LessThan(build.MinUploadFeeFloor) {
		return ErrInvalidMinFee
	}
	if cfg.UserSlashPenaltyPercent > 50 {
		return ErrInvalidUserPenalty
	}
	if cfg.OversizedThresholdPercent == 0 || cfg.OversizedThresholdPercent > 100 {
		return ErrInvalidThreshold
	}
	if cfg.ReportingWindowEpochs <= 0 {
		return ErrInvalidWindow
	}
	if cfg.MaxUserUploads == 0 {
		return ErrInvalidUploadLimit
	}
	return nil
}

// Initialize writes the storage config. One-time: a second call fails
// ErrAlreadyInitialized. The caller becomes the update authority.
func (sm *StateManager) Initialize(ctx context.Context, authority address.Address, p InitParams) error {
	var cfg types.StorageConfig

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		exists, err := tx.HasState(types.ConfigAddress())
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyInitialized
		}

		cfg = types.StorageConfig{
			Authority:                 authority,
			Treasury:                  p.Treasury,
			PricePerGB:                p.PricePerGB,
			TreasuryFeePercent:        p.TreasuryFeePercent,
			NodeFeePercent:            p.NodeFeePercent,
			ShardMinMB:                p.ShardMinMB,
			EpochsTotal:               p.EpochsTotal,
			SlashPenaltyPercent:       p.SlashPenaltyPercent,
			MinShardCount:             p.MinShardCount,
			MaxShardCount:             p.MaxShardCount,
			SlotsPerEpoch:             p.SlotsPerEpoch,
			MinNodeStake:              p.MinNodeStake,
			ReplacementTimeoutEpochs:  p.ReplacementTimeoutEpochs,
			MinUploadFee:              p.MinUploadFee,
			UserSlashPenaltyPercent:   p.UserSlashPenaltyPercent,
			OversizedThresholdPercent: p.OversizedThresholdPercent,
			ReportingWindowEpochs:     p.ReportingWindowEpochs,
			MaxUserUploads:            p.MaxUserUploads,
			IsInitialized:             true,
		}
		if err := validateConfig(&cfg); err != nil {
			return err
		}
		return tx.PutState(types.ConfigAddress(), &cfg)
	})
	if err != nil {
		return err
	}

	log.Infow("storage config initialized", "authority", authority, "treasury", p.Treasury)
	sm.record(evtTypeConfigInitialized, func() interface{} {
		return ConfigInitializedEvt{Config: cfg}
	})
	return nil
}

// UpdateConfig applies a partial configuration change. Only the recorded
// authority may call it; nil fields in upd are left untouched, the rest are
// re-validated against the full rule set before anything is written.
func (sm *StateManager) UpdateConfig(ctx context.Context, caller address.Address, upd types.ConfigUpdate) error {
	var cfg *types.StorageConfig

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		var err error
		cfg, err = loadConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Authority {
			return xerrors.Errorf("config update by %s: %w", caller, ErrUnauthorized)
		}

		// paired fields must arrive together so the joint invariant can be
		// checked against the new values, not a mix of old and new
		if (upd.TreasuryFeePercent == nil) != (upd.NodeFeePercent == nil) {
			return ErrInvalidFeeSplit
		}
		if (upd.MinShardCount == nil) != (upd.MaxShardCount == nil) {
			return ErrInvalidShardRange
		}

		if upd.PricePerGB != nil {
			cfg.PricePerGB = *upd.PricePerGB
		}
		if upd.TreasuryFeePercent != nil {
			cfg.TreasuryFeePercent = *upd.TreasuryFeePercent
			cfg.NodeFeePercent = *upd.NodeFeePercent
		}
		if upd.ShardMinMB != nil {
			cfg.ShardMinMB = *upd.ShardMinMB
		}
		if upd.EpochsTotal != nil {
			cfg.EpochsTotal = *upd.EpochsTotal
		}
		if upd.SlashPenaltyPercent != nil {
			cfg.SlashPenaltyPercent = *upd.SlashPenaltyPercent
		}
		if upd.MinShardCount != nil {
			cfg.MinShardCount = *upd.MinShardCount
			cfg.MaxShardCount = *upd.MaxShardCount
		}
		if upd.SlotsPerEpoch != nil {
			cfg.SlotsPerEpoch = *upd.SlotsPerEpoch
		}
		if upd.MinNodeStake != nil {
			cfg.MinNodeStake = *upd.MinNodeStake
		}
		if upd.ReplacementTimeoutEpochs != nil {
			cfg.ReplacementTimeoutEpochs = *upd.ReplacementTimeoutEpochs
		}
		if upd.MinUploadFee != nil {
			cfg.MinUploadFee = *upd.MinUploadFee
		}
		if upd.UserSlashPenaltyPercent != nil {
			cfg.UserSlashPenaltyPercent = *upd.UserSlashPenaltyPercent
		}
		if upd.OversizedThresholdPercent != nil {
			cfg.OversizedThresholdPercent = *upd.OversizedThresholdPercent
		}
		if upd.ReportingWindowEpochs != nil {
			cfg.ReportingWindowEpochs = *upd.ReportingWindowEpochs
		}
		if upd.MaxUserUploads != nil {
			cfg.MaxUserUploads = *upd.MaxUserUploads
		}

		if err := validateConfig(cfg); err != nil {
			return err
		}
		return tx.PutState(types.ConfigAddress(), cfg)
	})
	if err != nil {
		return err
	}

	log.Infow("storage config updated", "authority", caller)
	sm.record(evtTypeConfigUpdated, func() interface{} {
		return ConfigUpdatedEvt{Config: *cfg}
	})
	return nil
}

// GetConfig reads the committed storage config.
func (sm *StateManager) GetConfig(ctx context.Context) (*types.StorageConfig, error) {
	var cfg types.StorageConfig
	switch err := sm.ledger.GetState(ctx, types.ConfigAddress(), &cfg); err {
	case nil:
	case ledger.ErrNotFound:
		return nil, ErrNotInitialized
	default:
		return nil, err
	}
	if !cfg.IsInitialized {
		return nil, ErrNotInitialized
	}
	return &cfg, nil
}
