package types

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Replacement tracks a pending node substitution on one shard. It is created
// when a node requests exit from a multi-node shard and destroyed either by
// the replacement's successful possession proof or by a timeout slash.
type Replacement struct {
	ExitingNode     address.Address
	ReplacementNode address.Address
	DataHash        string
	ShardID         uint64
	PoSSubmitted    bool
	RequestEpoch    abi.ChainEpoch
}
