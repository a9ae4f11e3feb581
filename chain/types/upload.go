package types

import (
	"math"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/cenwadike/solad-sub000/build"
)

// VerifiedInvalid is the sentinel VerifiedCount marking a shard permanently
// invalidated by oversized-data reports. An invalidated shard is barred from
// the normal verification and reward paths.
const VerifiedInvalid = uint64(math.MaxUint64)

// Upload records a single client upload: its content identity, declared
// size, escrowed node fee and shard assignments. Shard count is immutable
// after creation; node membership within a shard changes only through the
// replacement protocol.
type Upload struct {
	DataHash            string
	SizeBytes           uint64
	ShardCount          uint64
	NodeEscrow          abi.TokenAmount
	Payer               address.Address
	UploadTime          int64
	StorageDurationDays uint64
	ExpiryTime          int64
	CreationSlot        uint64
	PendingReplacements uint64
	Shards              []ShardInfo
}

// ShardInfo is the per-shard assignment and verification state. NodeKeys
// holds up to build.MaxShardNodes entries, every one a defined address: a
// replacement swaps its slot in place, and a terminal exit removes the slot
// outright. Challenger is nil until the first possession proof pins one.
type ShardInfo struct {
	ShardID          uint64
	NodeKeys         []address.Address
	VerifiedCount    uint64
	SizeMB           uint64
	Challenger       *address.Address
	OversizedReports []OversizedReport
	RewardedNodes    []address.Address
	ReleasedNodes    []address.Address
}

// OversizedReport is a node's claim that the shard's actual payload exceeds
// its declared size. At most one report per node per shard.
type OversizedReport struct {
	Node         address.Address
	ActualSizeMB uint64
}

// UserUploadKeys indexes a payer's upload accounts, bounded by the
// configured per-user upload limit.
type UserUploadKeys struct {
	User    address.Address
	Uploads []address.Address
}

// SizeMB returns the upload's size rounded up to whole megabytes.
func (u *Upload) SizeMB() uint64 {
	return (u.SizeBytes + build.MiB - 1) / build.MiB
}

// Shard returns the shard at the given index, or nil if out of range.
func (u *Upload) Shard(id uint64) *ShardInfo {
	if id >= uint64(len(u.Shards)) {
		return nil
	}
	return &u.Shards[id]
}

// LiveNodes returns the shard's currently assigned nodes.
func (s *ShardInfo) LiveNodes() []address.Address {
	return s.NodeKeys
}

func (s *ShardInfo) LiveNodeCount() uint64 {
	return uint64(len(s.NodeKeys))
}

func (s *ShardInfo) HasNode(owner address.Address) bool {
	for _, k := range s.NodeKeys {
		if k == owner {
			return true
		}
	}
	return false
}

// RemoveNode drops the node's slot from the shard. Returns false if the
// node is not a member.
func (s *ShardInfo) RemoveNode(owner address.Address) bool {
	for i, k := range s.NodeKeys {
		if k == owner {
			s.NodeKeys = append(s.NodeKeys[:i], s.NodeKeys[i+1:]...)
			return true
		}
	}
	return false
}

// IsInvalid reports whether the shard has been invalidated by the
// oversized-report threshold.
func (s *ShardInfo) IsInvalid() bool {
	return s.VerifiedCount == VerifiedInvalid
}

// IsSettled reports whether the shard needs no further verification: either
// every live node's possession was verified, or the shard was invalidated.
func (s *ShardInfo) IsSettled() bool {
	return s.IsInvalid() || s.VerifiedCount >= s.LiveNodeCount()
}

func (s *ShardInfo) HasReport(node address.Address) bool {
	for _, r := range s.OversizedReports {
		if r.Node == node {
			return true
		}
	}
	return false
}

// Released reports whether the node's storage obligation for this shard has
// already been released (its upload count decremented). Every release path
// checks this so a node is never double-released for one shard.
func (s *ShardInfo) Released(node address.Address) bool {
	for _, n := range s.ReleasedNodes {
		if n == node {
			return true
		}
	}
	return false
}

// Release marks the node's obligation for this shard released. Returns
// false if it was released before.
func (s *ShardInfo) Release(node address.Address) bool {
	if s.Released(node) {
		return false
	}
	s.ReleasedNodes = append(s.ReleasedNodes, node)
	return true
}

func (s *ShardInfo) Rewarded(node address.Address) bool {
	for _, n := range s.RewardedNodes {
		if n == node {
			return true
		}
	}
	return false
}

func (uk *UserUploadKeys) Has(upload address.Address) bool {
	for _, u := range uk.Uploads {
		if u == upload {
			return true
		}
	}
	return false
}

func (uk *UserUploadKeys) Remove(upload address.Address) bool {
	for i, u := range uk.Uploads {
		if u == upload {
			uk.Uploads = append(uk.Uploads[:i], uk.Uploads[i+1:]...)
			return true
		}
	}
	return false
}
