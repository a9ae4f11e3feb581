package stmgr

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Deterministic pseudo-randomness for node selection. The protocol has no
// private entropy source: the seed is derived from identifiers fixed only at
// assignment time (content hash, shard index, slot, wall timestamp), making
// selection reproducible-given-inputs but unpredictable before the fact.
// The seed construction and xorshift constants are part of the protocol and
// must not change.

// xorshiftRand is a 64-bit xorshift PRNG seeded from the first 8 bytes
// (little endian) of the SHA-256 digest of the seed string.
type xorshiftRand struct {
	state uint64
}

func newXorshiftRand(seed string) *xorshiftRand {
	digest := sha256.Sum256([]byte(seed))
	return &xorshiftRand{state: binary.LittleEndian.Uint64(digest[:8])}
}

func (r *xorshiftRand) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// candidate is one entry of the weighted sampling pool.
type candidate struct {
	owner address.Address
	stake abi.TokenAmount
}

// selectWeighted draws up to n candidates from the pool without replacement,
// each draw weighted by remaining stake: target = rng mod total_stake, then a
// cumulative walk over the pool picks the first candidate whose running sum
// exceeds the target. If every remaining candidate has zero stake the pool is
// taken in list order.
func selectWeighted(rng *xorshiftRand, pool []candidate, n int) []address.Address {
	remaining := make([]candidate, len(pool))
	copy(remaining, pool)

	var selected []address.Address
	for len(selected) < n && len(remaining) > 0 {
		var total uint64
		for _, c := range remaining {
			total += c.stake.Uint64()
		}

		if total == 0 {
			// all zero stake; should not occur given the stake floor
			for _, c := range remaining {
				if len(selected) == n {
					break
				}
				selected = append(selected, c.owner)
			}
			break
		}

		target := rng.next() % total
		var cum uint64
		idx := len(remaining) - 1
		for i, c := range remaining {
			cum += c.stake.Uint64()
			if cum > target {
				idx = i
				break
			}
		}

		selected = append(selected, remaining[idx].owner)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return selected
}
