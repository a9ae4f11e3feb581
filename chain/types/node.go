package types

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Node is the registry record for a storage node. The staked amount is held
// in the node's stake escrow account; StakeAmount mirrors the outstanding
// (unslashed) principal the node can recover on exit.
type Node struct {
	Owner            address.Address
	StakeAmount      abi.TokenAmount
	UploadCount      uint64
	LastPoSTime      int64
	LastClaimedEpoch abi.ChainEpoch
	IsActive         bool
}

// NodeRegistry is the ordered set of registered node owners, used as the
// sampling universe for shard assignment and replacement selection.
// It never contains duplicates.
type NodeRegistry struct {
	Nodes []address.Address
}

func (nr *NodeRegistry) Has(owner address.Address) bool {
	for _, n := range nr.Nodes {
		if n == owner {
			return true
		}
	}
	return false
}

// Remove deletes owner from the registry, preserving order.
func (nr *NodeRegistry) Remove(owner address.Address) bool {
	for i, n := range nr.Nodes {
		if n == owner {
			nr.Nodes = append(nr.Nodes[:i], nr.Nodes[i+1:]...)
			return true
		}
	}
	return false
}
