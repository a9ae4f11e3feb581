package types

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// StorageConfig holds the global economic and operational parameters of the
// protocol. It lives at ConfigAddress() and is written once by Initialize,
// then amended field-by-field by the recorded authority.
type StorageConfig struct {
	Authority                 address.Address
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
	IsInitialized             bool
}

// ConfigUpdate carries a partial configuration change. Nil fields are left
// untouched; present fields are re-validated individually with the same rules
// as initialization. Fee percentages and the shard count range are validated
// jointly, so both halves of each pair must be supplied together.
type ConfigUpdate struct {
	PricePerGB                *abi.TokenAmount
	TreasuryFeePercent        *uint64
	NodeFeePercent            *uint64
	ShardMinMB                *uint64
	EpochsTotal               *abi.ChainEpoch
	SlashPenaltyPercent       *uint64
	MinShardCount             *uint64
	MaxShardCount             *uint64
	SlotsPerEpoch             *uint64
	MinNodeStake              *abi.TokenAmount
	ReplacementTimeoutEpochs  *abi.ChainEpoch
	MinUploadFee              *abi.TokenAmount
	UserSlashPenaltyPercent   *uint64
	OversizedThresholdPercent *uint64
	ReportingWindowEpochs     *abi.ChainEpoch
	MaxUserUploads            *uint64
}

// EpochAt converts an absolute slot number to an epoch under this config.
func (sc *StorageConfig) EpochAt(slot uint64) abi.ChainEpoch {
	if sc.SlotsPerEpoch == 0 {
		return 0
	}
	return abi.ChainEpoch(slot / sc.SlotsPerEpoch)
}
