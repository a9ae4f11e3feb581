package stmgr

import (
	"context"
	"fmt"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/build"
	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// feeDenominator amortizes the per-gigabyte price over the protocol's
// 20-year base: fee = size * price * shards * days / (1GiB * 7300).
var feeDenominator = big.Mul(big.NewInt(int64(build.GiB)), big.NewInt(build.AmortizationBaseDays))

// UploadFee computes the total upload fee for the given parameters under cfg.
func UploadFee(cfg *types.StorageConfig, sizeBytes, shardCount, durationDays uint64) abi.TokenAmount {
	n := big.Mul(big.NewInt(int64(sizeBytes)), cfg.PricePerGB)
	n = big.Mul(n, big.NewInt(int64(shardCount)))
	n = big.Mul(n, big.NewInt(int64(durationDays)))
	return big.Div(n, feeDenominator)
}

// splitShardSizes divides totalMB evenly across count shards, handing the
// remainder to the first shards one megabyte each.
func splitShardSizes(totalMB, count uint64) []uint64 {
	per := totalMB / count
	rem := totalMB % count
	sizes := make([]uint64, count)
	for i := range sizes {
		sizes[i] = per
		if uint64(i) < rem {
			sizes[i]++
		}
	}
	return sizes
}

func violatesShardMin(sizes []uint64, minMB uint64) bool {
	for _, s := range sizes {
		if s > 0 && s < minMB {
			return true
		}
	}
	return false
}

// UploadData accepts an upload: it validates the request, escrows the fee,
// sizes the shards, and assigns each shard up to three nodes by
// stake-weighted sampling over the caller-supplied candidate set. The whole
// operation commits atomically; no partial escrow or assignment is ever
// observable.
func (sm *StateManager) UploadData(ctx context.Context, payer address.Address, dataHash string, sizeBytes, shardCount, durationDays uint64, candidates []address.Address) (*types.Upload, error) {
	var up *types.Upload
	var assigned []address.Address

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}

		if dataHash == "" || len(dataHash) > build.MaxDataHashLength {
			return xerrors.Errorf("data hash of length %d: %w", len(dataHash), ErrInvalidHash)
		}
		if sizeBytes < build.MinDataSizeBytes {
			return xerrors.Errorf("size %d below minimum %d: %w", sizeBytes, build.MinDataSizeBytes, ErrInvalidSize)
		}
		if sizeBytes > build.MaxDataSizeBytes {
			return xerrors.Errorf("size %d exceeds maximum %d: %w", sizeBytes, build.MaxDataSizeBytes, ErrMathOverflow)
		}
		if durationDays < 1 || durationDays > build.MaxStorageDurationDays {
			return xerrors.Errorf("duration %d days: %w", durationDays, ErrInvalidDuration)
		}
		if shardCount < cfg.MinShardCount || shardCount > cfg.MaxShardCount {
			return xerrors.Errorf("requested %d shards, allowed [%d, %d]: %w",
				shardCount, cfg.MinShardCount, cfg.MaxShardCount, ErrInvalidShardCount)
		}

		uploadAddr := types.UploadAddress(dataHash, payer)
		exists, err := tx.HasState(uploadAddr)
		if err != nil {
			return err
		}
		if exists {
			return xerrors.Errorf("upload %q already exists for payer %s: %w", dataHash, payer, ErrInvalidState)
		}

		var keys types.UserUploadKeys
		switch err := tx.GetState(types.UploadKeysAddress(payer), &keys); err {
		case nil, ledger.ErrNotFound:
		default:
			return err
		}
		keys.User = payer
		if uint64(len(keys.Uploads)) >= cfg.MaxUserUploads {
			return xerrors.Errorf("payer %s at %d uploads: %w", payer, len(keys.Uploads), ErrUploadLimitExceeded)
		}

		// Candidate vetting: the caller supplies an explicit node list;
		// each entry must be a registered, sufficiently staked node, with
		// no duplicates. Nodes mid-exit (inactive) are skipped.
		reg, err := loadRegistry(tx)
		if err != nil {
			return err
		}
		seen := map[address.Address]struct{}{}
		var pool []candidate
		for _, c := range candidates {
			if _, dup := seen[c]; dup {
				return xerrors.Errorf("duplicate candidate %s: %w", c, ErrInvalidSubmission)
			}
			seen[c] = struct{}{}
			if !reg.Has(c) {
				return xerrors.Errorf("candidate %s not in registry: %w", c, ErrInsufficientNodes)
			}
			nd, err := loadNode(tx, c)
			if err != nil {
				return xerrors.Errorf("loading candidate %s: %w", c, err)
			}
			if !nd.IsActive {
				continue
			}
			if nd.StakeAmount.LessThan(cfg.MinNodeStake) {
				return xerrors.Errorf("candidate %s staked %s: %w", c, nd.StakeAmount, ErrInsufficientStake)
			}
			pool = append(pool, candidate{owner: c, stake: nd.StakeAmount})
		}
		if len(pool) == 0 {
			return ErrInsufficientNodes
		}

		maxPossible := cfg.MaxShardCount
		if uint64(len(pool)) < maxPossible {
			maxPossible = uint64(len(pool))
		}
		if shardCount > maxPossible {
			return xerrors.Errorf("requested %d shards with %d eligible nodes: %w",
				shardCount, len(pool), ErrInvalidShardCount)
		}

		fee := UploadFee(cfg, sizeBytes, shardCount, durationDays)
		if fee.LessThan(cfg.MinUploadFee) {
			return xerrors.Errorf("fee %s below minimum %s: %w", fee, cfg.MinUploadFee, ErrInsufficientFee)
		}
		treasuryAmt := big.Div(big.Mul(fee, big.NewInt(int64(cfg.TreasuryFeePercent))), big.NewInt(100))
		nodeAmt := big.Sub(fee, treasuryAmt)

		// Shard sizing: even split; shrink the shard count when the split
		// would undercut the per-shard minimum, bounded below by the
		// config floor and above by both the request and the eligible pool.
		totalMB := (sizeBytes + build.MiB - 1) / build.MiB
		sizes := splitShardSizes(totalMB, shardCount)
		if cfg.ShardMinMB > 0 && violatesShardMin(sizes, cfg.ShardMinMB) {
			shrunk := totalMB / cfg.ShardMinMB
			upper := shardCount
			if maxPossible < upper {
				upper = maxPossible
			}
			if shrunk > upper {
				shrunk = upper
			}
			if shrunk < cfg.MinShardCount {
				shrunk = cfg.MinShardCount
			}
			if shrunk > upper {
				return xerrors.Errorf("cannot satisfy %dMB minimum shard size: %w", cfg.ShardMinMB, ErrInvalidShardCount)
			}
			shardCount = shrunk
			sizes = splitShardSizes(totalMB, shardCount)
			if violatesShardMin(sizes, cfg.ShardMinMB) && shardCount > cfg.MinShardCount {
				return xerrors.Errorf("cannot satisfy %dMB minimum shard size: %w", cfg.ShardMinMB, ErrInvalidShardCount)
			}
		}

		escrowAddr := types.EscrowAddress(dataHash, payer)
		if err := tx.Transfer(payer, cfg.Treasury, treasuryAmt); err != nil {
			return xerrors.Errorf("paying treasury fee: %w", err)
		}
		if err := tx.Transfer(payer, escrowAddr, nodeAmt); err != nil {
			return xerrors.Errorf("escrowing node fee: %w", err)
		}
		slot := tx.CurrentSlot()
		if err := tx.PutState(escrowAddr, &types.Escrow{CreatedSlot: slot}); err != nil {
			return err
		}

		// Per-shard stake-weighted assignment. Each shard draws from the
		// full pool without replacement within the shard, seeded by the
		// identifiers fixed at assignment time.
		now := tx.Timestamp()
		shards := make([]types.ShardInfo, shardCount)
		distinct := map[address.Address]struct{}{}
		for i := range shards {
			want := build.MaxShardNodes
			if len(pool) < want {
				want = len(pool)
			}
			rng := newXorshiftRand(fmt.Sprintf("%s:%d:%d:%d", dataHash, i, slot, now))
			nodes := selectWeighted(rng, pool, want)
			if len(nodes) == 0 {
				return xerrors.Errorf("shard %d: %w", i, ErrInsufficientNodes)
			}
			shards[i] = types.ShardInfo{
				ShardID:  uint64(i),
				NodeKeys: nodes,
				SizeMB:   sizes[i],
			}
			for _, n := range nodes {
				distinct[n] = struct{}{}
			}
		}

		for owner := range distinct {
			nd, err := loadNode(tx, owner)
			if err != nil {
				return xerrors.Errorf("loading node %s: %w", owner, err)
			}
			nd.UploadCount++
			if err := tx.PutState(types.NodeAddress(owner), nd); err != nil {
				return err
			}
			assigned = append(assigned, owner)
		}

		up = &types.Upload{
			DataHash:            dataHash,
			SizeBytes:           sizeBytes,
			ShardCount:          shardCount,
			NodeEscrow:          nodeAmt,
			Payer:               payer,
			UploadTime:          now,
			StorageDurationDays: durationDays,
			ExpiryTime:          now + int64(durationDays)*86400,
			CreationSlot:        slot,
			Shards:              shards,
		}
		if err := tx.PutState(uploadAddr, up); err != nil {
			return err
		}

		keys.Uploads = append(keys.Uploads, uploadAddr)
		return tx.PutState(types.UploadKeysAddress(payer), &keys)
	})
	if err != nil {
		return nil, err
	}

	log.Infow("upload created", "hash", up.DataHash, "payer", payer,
		"shards", up.ShardCount, "escrow", up.NodeEscrow.String())
	sm.record(evtTypeUploadCreated, func() interface{} {
		return UploadCreatedEvt{
			DataHash:     up.DataHash,
			SizeBytes:    up.SizeBytes,
			ShardCount:   up.ShardCount,
			Payer:        payer,
			Nodes:        assigned,
			DurationDays: up.StorageDurationDays,
			Timestamp:    up.UploadTime,
		}
	})
	return up, nil
}

// GetUpload reads the committed upload record for (dataHash, payer).
func (sm *StateManager) GetUpload(ctx context.Context, dataHash string, payer address.Address) (*types.Upload, error) {
	var up types.Upload
	switch err := sm.ledger.GetState(ctx, types.UploadAddress(dataHash, payer), &up); err {
	case nil:
		return &up, nil
	case ledger.ErrNotFound:
		return nil, xerrors.Errorf("no upload %q for payer %s: %w", dataHash, payer, ErrInvalidHash)
	default:
		return nil, err
	}
}
