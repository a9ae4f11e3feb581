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

// ClaimRewards pays a node its per-epoch share of the upload escrow for one
// shard. The base reward is the escrow prorated by the shard's size share,
// the shard's live membership, and the configured reward horizon. A shard
// left unverified this epoch costs the claimant both a reward haircut and a
// stake slash. One claim per node per epoch.
func (sm *StateManager) ClaimRewards(ctx context.Context, caller address.Address, dataHash string, payer address.Address, shardID uint64) (abi.TokenAmount, error) {
	var reward abi.TokenAmount
	var penalized bool
	var epoch abi.ChainEpoch

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
		if shard.IsInvalid() {
			return xerrors.Errorf("shard %d invalidated: %w", shardID, ErrInvalidState)
		}
		if !shard.HasNode(caller) {
			return xerrors.Errorf("node %s not assigned to shard %d: %w", caller, shardID, ErrUnauthorized)
		}

		nd, err := loadNode(tx, caller)
		if err != nil {
			return xerrors.Errorf("loading node %s: %w", caller, err)
		}
		epoch = currentEpoch(tx, cfg)
		if nd.LastClaimedEpoch >= epoch {
			return xerrors.Errorf("epoch %d: %w", epoch, ErrAlreadyClaimed)
		}

		totalMB := up.SizeMB()
		live := shard.LiveNodeCount()
		if totalMB == 0 || live == 0 {
			return xerrors.Errorf("shard %d has no payable share: %w", shardID, ErrMathOverflow)
		}

		reward = big.Div(big.Mul(up.NodeEscrow, big.NewInt(int64(shard.SizeMB))), big.NewInt(int64(totalMB)))
		reward = big.Div(reward, big.NewInt(int64(live)))
		reward = big.Div(reward, big.NewInt(int64(cfg.EpochsTotal)))

		// a multi-node, multi-shard upload with nothing verified is
		// evidence the node is not doing its job
		penalized = live > 1 && up.ShardCount > 1 && shard.VerifiedCount == 0
		if penalized {
			reward = big.Div(big.Mul(reward, big.NewInt(int64(100-cfg.SlashPenaltyPercent))), big.NewInt(100))

			stakeSlash := big.Div(big.Mul(nd.StakeAmount, big.NewInt(int64(cfg.SlashPenaltyPercent))), big.NewInt(100))
			if err := tx.Transfer(types.StakeEscrowAddress(caller), cfg.Treasury, stakeSlash); err != nil {
				return xerrors.Errorf("slashing stake: %w", err)
			}
			nd.StakeAmount = big.Sub(nd.StakeAmount, stakeSlash)
		}

		if reward.LessThan(build.MinRewardAmount) {
			return xerrors.Errorf("reward %s below dust floor: %w", reward, ErrInsufficientReward)
		}

		if err := tx.Transfer(types.EscrowAddress(dataHash, payer), caller, reward); err != nil {
			return xerrors.Errorf("paying reward: %w", err)
		}

		nd.LastClaimedEpoch = epoch
		if err := tx.PutState(types.NodeAddress(caller), nd); err != nil {
			return err
		}

		if !shard.Rewarded(caller) {
			shard.RewardedNodes = append(shard.RewardedNodes, caller)
		}

		// the reward horizon has run out; the node's obligation ends here
		if epoch >= cfg.EpochsTotal {
			if err := releaseObligation(tx, shard, caller); err != nil {
				return err
			}
		}

		return tx.PutState(types.UploadAddress(dataHash, payer), up)
	})
	if err != nil {
		return abi.TokenAmount{}, err
	}

	log.Infow("reward claimed", "node", caller, "hash", dataHash, "shard", shardID,
		"amount", reward.String(), "penalized", penalized)
	sm.record(evtTypeRewardPaid, func() interface{} {
		return RewardPaidEvt{
			DataHash:  dataHash,
			ShardID:   shardID,
			Node:      caller,
			Amount:    reward,
			Epoch:     epoch,
			Penalized: penalized,
		}
	})
	return reward, nil
}

// SlashUser settles an invalidated shard against the payer: the payer lied
// about the upload's size, so a penalty share of the shard's escrow goes to
// the treasury, the rest is refunded, and the assigned nodes are released
// from the voided obligation. Clearing the report list makes a replay fail
// the threshold re-validation.
func (sm *StateManager) SlashUser(ctx context.Context, dataHash string, payer address.Address, shardID uint64) error {
	var penalty, refund abi.TokenAmount

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
		if !shard.IsInvalid() {
			return xerrors.Errorf("shard %d: %w", shardID, ErrShardNotInvalid)
		}

		live := shard.LiveNodeCount()
		threshold := (live*cfg.OversizedThresholdPercent + 99) / 100
		if uint64(len(shard.OversizedReports)) < threshold {
			return xerrors.Errorf("%d reports, need %d: %w", len(shard.OversizedReports), threshold, ErrInsufficientReports)
		}

		totalMB := up.SizeMB()
		if totalMB == 0 {
			return xerrors.Errorf("upload %q has zero size: %w", dataHash, ErrMathOverflow)
		}
		share := big.Div(big.Mul(up.NodeEscrow, big.NewInt(int64(shard.SizeMB))), big.NewInt(int64(totalMB)))
		penalty = big.Div(big.Mul(share, big.NewInt(int64(cfg.UserSlashPenaltyPercent))), big.NewInt(100))
		refund = big.Sub(share, penalty)

		escrowAddr := types.EscrowAddress(dataHash, payer)
		if err := tx.Transfer(escrowAddr, cfg.Treasury, penalty); err != nil {
			return xerrors.Errorf("paying user penalty: %w", err)
		}
		if err := tx.Transfer(escrowAddr, payer, refund); err != nil {
			return xerrors.Errorf("refunding payer: %w", err)
		}

		for _, owner := range shard.LiveNodes() {
			if err := releaseObligation(tx, shard, owner); err != nil {
				return err
			}
		}

		// settled; a second slash fails the report re-validation above
		shard.OversizedReports = nil

		return tx.PutState(types.UploadAddress(dataHash, payer), up)
	})
	if err != nil {
		return err
	}

	log.Warnw("user slashed for oversized upload", "hash", dataHash, "payer", payer,
		"shard", shardID, "penalty", penalty.String(), "refund", refund.String())
	sm.record(evtTypeUserSlashed, func() interface{} {
		return UserSlashedEvt{
			DataHash: dataHash,
			ShardID:  shardID,
			Payer:    payer,
			Penalty:  penalty,
			Refund:   refund,
		}
	})
	return nil
}
