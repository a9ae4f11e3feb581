package build

import (
	"math"
	"time"

	"github.com/filecoin-project/go-state-types/big"
)

// Byte size units used throughout shard accounting.
const (
	KiB = uint64(1) << 10
	MiB = uint64(1) << 20
	GiB = uint64(1) << 30
)

// SlotDuration is the wall-clock length of a single ledger slot. Epoch
// length on top of this is a protocol parameter (SlotsPerEpoch).
const SlotDuration = 400 * time.Millisecond

// MaxShardNodes is the redundancy factor: each shard is assigned to at
// most this many nodes.
const MaxShardNodes = 3

// AmortizationBaseDays is the denominator of the upload fee formula,
// amortizing the per-gigabyte price over a 20 year storage horizon.
const AmortizationBaseDays = 7300

// MaxStorageDurationDays bounds the declared storage duration of an upload.
const MaxStorageDurationDays = 730000

// MinDataSizeBytes is the smallest upload the protocol accepts.
const MinDataSizeBytes = uint64(1024)

// MaxDataSizeBytes bounds the declared upload size so the fee arithmetic
// stays within int64 range.
const MaxDataSizeBytes = uint64(math.MaxInt64)

// MaxDataHashLength bounds the content hash identifying an upload.
const MaxDataHashLength = 64

// MinRewardAmount is the dust floor for a single reward claim. Claims
// computing to less than this are rejected rather than paid out.
var MinRewardAmount = big.NewInt(1000)

// MinNodeStakeFloor is the absolute lower bound for the configurable
// minimum node stake, in base units.
var MinNodeStakeFloor = big.NewInt(100_000_000)

// MinUploadFeeFloor is the absolute lower bound for the configurable
// minimum upload fee, in base units.
var MinUploadFeeFloor = big.NewInt(5000)

// TimeoutSlashTreasuryPercent is the share of a timeout slash that goes
// to the treasury; the remainder pays the caller that policed the timeout.
const TimeoutSlashTreasuryPercent = 90
