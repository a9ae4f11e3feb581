package stmgr

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/cenwadike/solad-sub000/chain/types"
)

// Journal event payloads. One struct per emitted record; consumed by
// off-chain listeners (gossip nodes pick up UploadCreated to start moving
// shard bytes, indexers follow settlement).

type ConfigInitializedEvt struct {
	Config types.StorageConfig
}

type ConfigUpdatedEvt struct {
	Config types.StorageConfig
}

type NodeRegisteredEvt struct {
	Owner address.Address
	Stake abi.TokenAmount
}

type NodeDeregisteredEvt struct {
	Owner         address.Address
	StakeReturned abi.TokenAmount
}

// NodeExitedEvt marks a terminal exit from a single-node shard: no
// replacement was appointed and the stake was refunded in full.
type NodeExitedEvt struct {
	Owner         address.Address
	DataHash      string
	ShardID       uint64
	StakeReturned abi.TokenAmount
}

type UploadCreatedEvt struct {
	DataHash     string
	SizeBytes    uint64
	ShardCount   uint64
	Payer        address.Address
	Nodes        []address.Address
	DurationDays uint64
	Timestamp    int64
}

type PoSSubmittedEvt struct {
	DataHash      string
	ShardID       uint64
	Node          address.Address
	Challenger    address.Address
	VerifiedCount uint64
}

type OversizedReportedEvt struct {
	DataHash     string
	ShardID      uint64
	Node         address.Address
	ActualSizeMB uint64
	Invalidated  bool
}

type ReplacementRequestedEvt struct {
	DataHash        string
	ShardID         uint64
	ExitingNode     address.Address
	ReplacementNode address.Address
	RequestEpoch    abi.ChainEpoch
}

type ReplacementVerifiedEvt struct {
	DataHash        string
	ShardID         uint64
	ExitingNode     address.Address
	ReplacementNode address.Address
	StakeReleased   abi.TokenAmount
}

type TimeoutSlashedEvt struct {
	DataHash      string
	ShardID       uint64
	ExitingNode   address.Address
	Caller        address.Address
	SlashAmount   abi.TokenAmount
	TreasuryShare abi.TokenAmount
	CallerShare   abi.TokenAmount
}

type RewardPaidEvt struct {
	DataHash  string
	ShardID   uint64
	Node      address.Address
	Amount    abi.TokenAmount
	Epoch     abi.ChainEpoch
	Penalized bool
}

type UserSlashedEvt struct {
	DataHash string
	ShardID  uint64
	Payer    address.Address
	Penalty  abi.TokenAmount
	Refund   abi.TokenAmount
}
