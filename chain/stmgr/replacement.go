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

// ReplacementRef identifies one pending replacement in a batch request.
type ReplacementRef struct {
	DataHash string
	ShardID  uint64
}

// RequestReplacement lets a node exit a shard mid-term. A single-member
// shard makes the exit terminal (slot vacated, full stake refunded); a
// multi-member shard appoints a stake-weighted replacement that must prove
// possession before the configured timeout or see the exiting stake slashed.
func (sm *StateManager) RequestReplacement(ctx context.Context, caller address.Address, dataHash string, payer address.Address, shardID uint64) error {
	var terminal bool
	var refunded abi.TokenAmount
	var pick address.Address
	var reqEpoch abi.ChainEpoch

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}
		up, err := loadUpload(tx, dataHash, payer)
		if err != nil {
			return err
		}
		shard := up.Shard(shardID)
		if shard == nil {
			return xerrors.Errorf("upload %q has %d shards, got %d: %w", dataHash, len(up.Shards), shardID, ErrInvalidShardId)
		}
		if !shard.HasNode(caller) {
			return xerrors.Errorf("node %s not assigned to shard %d: %w", caller, shardID, ErrUnauthorized)
		}
		nd, err := loadNode(tx, caller)
		if err != nil {
			if err == ledger.ErrNotFound {
				return xerrors.Errorf("no node registered for %s: %w", caller, ErrUnauthorized)
			}
			return err
		}

		if shard.LiveNodeCount() == 1 {
			// sole member: terminal exit, no replacement possible
			terminal = true
			shard.RemoveNode(caller)

			escrowAddr := types.StakeEscrowAddress(caller)
			refunded, err = tx.BalanceOf(escrowAddr)
			if err != nil {
				return err
			}
			if err := tx.Transfer(escrowAddr, caller, refunded); err != nil {
				return xerrors.Errorf("refunding stake: %w", err)
			}

			reg, err := loadRegistry(tx)
			if err != nil {
				return err
			}
			reg.Remove(caller)
			if err := tx.PutState(types.RegistryAddress(), reg); err != nil {
				return err
			}
			tx.DeleteState(types.NodeAddress(caller))
			tx.DeleteState(escrowAddr)

			return tx.PutState(types.UploadAddress(dataHash, payer), up)
		}

		// exit needs a substitute; the node goes inactive while the
		// replacement is pending
		nd.IsActive = false
		if err := tx.PutState(types.NodeAddress(caller), nd); err != nil {
			return err
		}

		reg, err := loadRegistry(tx)
		if err != nil {
			return err
		}
		var pool []candidate
		for _, owner := range reg.Nodes {
			if owner == caller || shard.HasNode(owner) {
				continue
			}
			cand, err := loadNode(tx, owner)
			if err != nil {
				return xerrors.Errorf("loading candidate %s: %w", owner, err)
			}
			if !cand.IsActive || cand.StakeAmount.LessThan(cfg.MinNodeStake) {
				continue
			}
			pool = append(pool, candidate{owner: owner, stake: cand.StakeAmount})
		}
		if len(pool) == 0 {
			return xerrors.Errorf("shard %d: %w", shardID, ErrNoReplacementAvailable)
		}

		slot := tx.CurrentSlot()
		rng := newXorshiftRand(fmt.Sprintf("%s:%d:%d", dataHash, shardID, slot))
		pick = selectWeighted(rng, pool, 1)[0]
		reqEpoch = cfg.EpochAt(slot)

		repAddr := types.ReplacementAddress(caller, dataHash, shardID)
		existed, err := tx.HasState(repAddr)
		if err != nil {
			return err
		}
		rep := types.Replacement{
			ExitingNode:     caller,
			ReplacementNode: pick,
			DataHash:        dataHash,
			ShardID:         shardID,
			PoSSubmitted:    false,
			RequestEpoch:    reqEpoch,
		}
		if err := tx.PutState(repAddr, &rep); err != nil {
			return err
		}
		if !existed {
			up.PendingReplacements++
		}

		for i, k := range shard.NodeKeys {
			if k == caller {
				shard.NodeKeys[i] = pick
			}
		}

		picked, err := loadNode(tx, pick)
		if err != nil {
			return xerrors.Errorf("loading replacement node %s: %w", pick, err)
		}
		picked.UploadCount++
		if err := tx.PutState(types.NodeAddress(pick), picked); err != nil {
			return err
		}

		return tx.PutState(types.UploadAddress(dataHash, payer), up)
	})
	if err != nil {
		return err
	}

	if terminal {
		log.Infow("node exited single-member shard", "owner", caller, "hash", dataHash, "shard", shardID)
		sm.record(evtTypeNodeExited, func() interface{} {
			return NodeExitedEvt{
				Owner:         caller,
				DataHash:      dataHash,
				ShardID:       shardID,
				StakeReturned: refunded,
			}
		})
		return nil
	}

	log.Infow("replacement requested", "exiting", caller, "replacement", pick,
		"hash", dataHash, "shard", shardID, "epoch", reqEpoch)
	sm.record(evtTypeReplacementRequested, func() interface{} {
		return ReplacementRequestedEvt{
			DataHash:        dataHash,
			ShardID:         shardID,
			ExitingNode:     caller,
			ReplacementNode: pick,
			RequestEpoch:    reqEpoch,
		}
	})
	return nil
}

// SlashTimeout penalizes an exit whose replacement never proved possession.
// It is callable by anyone once the timeout has elapsed: the slash splits
// 90% to the treasury and 10% to the caller, which is the protocol's
// incentive for third parties to police stale replacements.
func (sm *StateManager) SlashTimeout(ctx context.Context, caller address.Address, dataHash string, payer, exiting address.Address, shardID uint64) error {
	var slashAmt, treasuryShare, callerShare abi.TokenAmount

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}

		repAddr := types.ReplacementAddress(exiting, dataHash, shardID)
		var rep types.Replacement
		switch err := tx.GetState(repAddr, &rep); err {
		case nil:
		case ledger.ErrNotFound:
			return xerrors.Errorf("replacement record closed: %w", ErrPoSAlreadySubmitted)
		default:
			return err
		}
		if rep.PoSSubmitted {
			return xerrors.Errorf("shard %d: %w", shardID, ErrPoSAlreadySubmitted)
		}
		if currentEpoch(tx, cfg) < rep.RequestEpoch+cfg.ReplacementTimeoutEpochs {
			return xerrors.Errorf("request epoch %d, timeout %d epochs: %w",
				rep.RequestEpoch, cfg.ReplacementTimeoutEpochs, ErrTimeoutNotExpired)
		}

		nd, err := loadNode(tx, exiting)
		if err != nil {
			return xerrors.Errorf("loading exiting node %s: %w", exiting, err)
		}

		slashAmt = big.Div(big.Mul(nd.StakeAmount, big.NewInt(int64(cfg.SlashPenaltyPercent))), big.NewInt(100))
		treasuryShare = big.Div(big.Mul(slashAmt, big.NewInt(build.TimeoutSlashTreasuryPercent)), big.NewInt(100))
		callerShare = big.Sub(slashAmt, treasuryShare)

		escrowAddr := types.StakeEscrowAddress(exiting)
		if err := tx.Transfer(escrowAddr, cfg.Treasury, treasuryShare); err != nil {
			return xerrors.Errorf("slashing to treasury: %w", err)
		}
		if err := tx.Transfer(escrowAddr, caller, callerShare); err != nil {
			return xerrors.Errorf("paying slash caller: %w", err)
		}

		nd.StakeAmount = big.Sub(nd.StakeAmount, slashAmt)
		if err := tx.PutState(types.NodeAddress(exiting), nd); err != nil {
			return err
		}

		tx.DeleteState(repAddr)

		up, err := loadUpload(tx, dataHash, payer)
		if err != nil {
			return err
		}
		if up.PendingReplacements > 0 {
			up.PendingReplacements--
		}
		return tx.PutState(types.UploadAddress(dataHash, payer), up)
	})
	if err != nil {
		return err
	}

	log.Warnw("replacement timeout slashed", "exiting", exiting, "hash", dataHash,
		"shard", shardID, "amount", slashAmt.String(), "caller", caller)
	sm.record(evtTypeTimeoutSlashed, func() interface{} {
		return TimeoutSlashedEvt{
			DataHash:      dataHash,
			ShardID:       shardID,
			ExitingNode:   exiting,
			Caller:        caller,
			SlashAmount:   slashAmt,
			TreasuryShare: treasuryShare,
			CallerShare:   callerShare,
		}
	})
	return nil
}

// BatchRequestReplacement is the accounting companion to RequestReplacement:
// for a set of shards the caller has pending replacements on, it verifies the
// records and decrements the caller's outstanding upload count once per
// batch. It introduces no new protocol state.
func (sm *StateManager) BatchRequestReplacement(ctx context.Context, caller address.Address, refs []ReplacementRef) error {
	if len(refs) == 0 {
		return xerrors.Errorf("empty batch: %w", ErrInvalidSubmission)
	}

	return sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		if _, err := loadConfig(tx); err != nil {
			return err
		}

		valid := 0
		for _, ref := range refs {
			var rep types.Replacement
			switch err := tx.GetState(types.ReplacementAddress(caller, ref.DataHash, ref.ShardID), &rep); err {
			case nil:
			case ledger.ErrNotFound:
				continue
			default:
				return err
			}
			if rep.ExitingNode == caller {
				valid++
			}
		}
		if valid == 0 {
			return xerrors.Errorf("no matching replacements in batch: %w", ErrNoReplacementAvailable)
		}

		nd, err := loadNode(tx, caller)
		if err != nil {
			return xerrors.Errorf("loading node %s: %w", caller, err)
		}
		if nd.UploadCount > 0 {
			nd.UploadCount--
		}
		return tx.PutState(types.NodeAddress(caller), nd)
	})
}
