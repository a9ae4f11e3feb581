package stmgr

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/filecoin-project/go-address"
	gocrypto "github.com/filecoin-project/go-crypto"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// challengerDigest is the message a challenger co-signs: the SHA-256 of the
// submission's identifying tuple. The format string is part of the protocol.
func challengerDigest(dataHash string, shardID uint64, merkleRoot string, timestamp int64) []byte {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s:%d", dataHash, shardID, merkleRoot, timestamp)))
	return sum[:]
}

// posEvent is a journal record staged during a submission batch and emitted
// only once the whole batch has committed.
type posEvent struct {
	evt int
	sup func() interface{}
}

// SubmitPoS processes a batch of shard submissions from one node against one
// payer's uploads. Each submission is either an oversized-data report or a
// challenger-co-signed possession proof; the batch commits atomically.
func (sm *StateManager) SubmitPoS(ctx context.Context, nodeOwner, payer address.Address, subs []types.ShardSubmission) error {
	if len(subs) == 0 {
		return xerrors.Errorf("empty batch: %w", ErrInvalidSubmission)
	}

	var out []posEvent

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		out = out[:0]
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}

		for i := range subs {
			sub := &subs[i]
			up, err := loadUpload(tx, sub.DataHash, payer)
			if err != nil {
				return err
			}
			shard := up.Shard(sub.ShardID)
			if shard == nil {
				return xerrors.Errorf("upload %q has %d shards, got %d: %w",
					sub.DataHash, len(up.Shards), sub.ShardID, ErrInvalidShardId)
			}
			if !shard.HasNode(nodeOwner) {
				return xerrors.Errorf("node %s not assigned to shard %d: %w", nodeOwner, sub.ShardID, ErrUnauthorized)
			}
			if shard.IsInvalid() {
				return xerrors.Errorf("shard %d invalidated: %w", sub.ShardID, ErrInvalidSubmission)
			}

			var evts []posEvent
			if sub.IsReport() {
				evts, err = applyOversizedReport(tx, cfg, up, shard, nodeOwner, sub)
			} else {
				evts, err = applyPossessionProof(tx, cfg, up, shard, nodeOwner, sub)
			}
			if err != nil {
				return err
			}
			out = append(out, evts...)

			if err := tx.PutState(types.UploadAddress(sub.DataHash, payer), up); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, o := range out {
		sm.record(o.evt, o.sup)
	}
	return nil
}

// applyOversizedReport records a node's claim that the shard's payload
// exceeds its declared size. Crossing the configured threshold of distinct
// reporters invalidates the shard permanently.
func applyOversizedReport(tx *ledger.Txn, cfg *types.StorageConfig, up *types.Upload, shard *types.ShardInfo, nodeOwner address.Address, sub *types.ShardSubmission) ([]posEvent, error) {
	if sub.HasProofData() {
		return nil, xerrors.Errorf("submission carries both report and proof: %w", ErrInvalidSubmission)
	}
	if sub.ActualSizeMB <= shard.SizeMB {
		return nil, xerrors.Errorf("reported %dMB not above declared %dMB: %w",
			sub.ActualSizeMB, shard.SizeMB, ErrInvalidSizeReport)
	}

	windowSlots := uint64(cfg.ReportingWindowEpochs) * cfg.SlotsPerEpoch
	if tx.CurrentSlot() > up.CreationSlot+windowSlots {
		return nil, xerrors.Errorf("shard %d: %w", sub.ShardID, ErrSizeReportTimeout)
	}
	if shard.HasReport(nodeOwner) {
		return nil, xerrors.Errorf("node %s already reported shard %d: %w", nodeOwner, sub.ShardID, ErrInvalidSizeReport)
	}

	shard.OversizedReports = append(shard.OversizedReports, types.OversizedReport{
		Node:         nodeOwner,
		ActualSizeMB: sub.ActualSizeMB,
	})

	live := shard.LiveNodeCount()
	threshold := (live*cfg.OversizedThresholdPercent + 99) / 100
	invalidated := uint64(len(shard.OversizedReports)) >= threshold
	if invalidated {
		shard.VerifiedCount = types.VerifiedInvalid
		log.Warnw("shard invalidated by oversized reports",
			"hash", up.DataHash, "shard", shard.ShardID, "reports", len(shard.OversizedReports))
	}

	hash, shardID, actual := up.DataHash, shard.ShardID, sub.ActualSizeMB
	return []posEvent{{evtTypeOversizedReported, func() interface{} {
		return OversizedReportedEvt{
			DataHash:     hash,
			ShardID:      shardID,
			Node:         nodeOwner,
			ActualSizeMB: actual,
			Invalidated:  invalidated,
		}
	}}}, nil
}

// applyPossessionProof verifies a Merkle possession proof co-signed by a
// challenger node from the same shard, advancing the shard's verification
// state and closing a pending replacement when the submitter is one.
func applyPossessionProof(tx *ledger.Txn, cfg *types.StorageConfig, up *types.Upload, shard *types.ShardInfo, nodeOwner address.Address, sub *types.ShardSubmission) ([]posEvent, error) {
	live := shard.LiveNodes()
	if len(live) <= 1 {
		return nil, xerrors.Errorf("shard %d: %w", shard.ShardID, ErrSingleNodeShard)
	}
	if sub.MerkleRoot == "" || len(sub.MerkleProof) == 0 || len(sub.Leaf) == 0 ||
		len(sub.ChallengerSig) == 0 || len(sub.ChallengerPub) == 0 {
		return nil, xerrors.Errorf("shard %d: %w", shard.ShardID, ErrMissingPoSData)
	}
	if shard.VerifiedCount >= uint64(len(live)) {
		return nil, xerrors.Errorf("shard %d fully verified: %w", shard.ShardID, ErrPoSAlreadySubmitted)
	}

	if !verifyMerkleProof(sub.MerkleRoot, sub.MerkleProof, sub.Leaf) {
		return nil, xerrors.Errorf("shard %d: %w", shard.ShardID, ErrInvalidMerkleProof)
	}

	digest := challengerDigest(up.DataHash, shard.ShardID, sub.MerkleRoot, sub.Timestamp)
	recovered, err := gocrypto.EcRecover(digest, sub.ChallengerSig)
	if err != nil {
		return nil, xerrors.Errorf("recovering challenger key: %w", ErrInvalidChallengerSignature)
	}
	if !bytes.Equal(recovered, sub.ChallengerPub) {
		return nil, xerrors.Errorf("recovered key mismatch: %w", ErrInvalidChallengerSignature)
	}
	challenger, err := address.NewSecp256k1Address(recovered)
	if err != nil {
		return nil, xerrors.Errorf("deriving challenger address: %w", ErrInvalidChallengerSignature)
	}
	if challenger == nodeOwner {
		return nil, xerrors.Errorf("shard %d: %w", shard.ShardID, ErrChallengerIsNode)
	}
	if !shard.HasNode(challenger) {
		return nil, xerrors.Errorf("challenger %s on shard %d: %w", challenger, shard.ShardID, ErrInvalidChallenger)
	}

	shard.VerifiedCount++
	shard.Challenger = &challenger

	nd, err := loadNode(tx, nodeOwner)
	if err != nil {
		return nil, xerrors.Errorf("loading node %s: %w", nodeOwner, err)
	}
	nd.LastPoSTime = tx.Timestamp()
	if err := tx.PutState(types.NodeAddress(nodeOwner), nd); err != nil {
		return nil, err
	}

	var evts []posEvent

	// A proof from a pending replacement, landed before the timeout,
	// releases the exiting node's stake and closes the replacement.
	if sub.ExitingNode != address.Undef {
		closeEvt, err := closeReplacement(tx, cfg, up, shard, nodeOwner, sub.ExitingNode)
		if err != nil {
			return nil, err
		}
		if closeEvt != nil {
			evts = append(evts, *closeEvt)
		}
	}

	// full verification releases every live node's obligation for the shard
	if shard.VerifiedCount >= shard.LiveNodeCount() {
		for _, owner := range shard.LiveNodes() {
			if err := releaseObligation(tx, shard, owner); err != nil {
				return nil, err
			}
		}
	}

	hash, shardID, verified := up.DataHash, shard.ShardID, shard.VerifiedCount
	evts = append(evts, posEvent{evtTypePoSSubmitted, func() interface{} {
		return PoSSubmittedEvt{
			DataHash:      hash,
			ShardID:       shardID,
			Node:          nodeOwner,
			Challenger:    challenger,
			VerifiedCount: verified,
		}
	}})
	return evts, nil
}

// closeReplacement settles a pending replacement on successful proof: the
// exiting node's stake is refunded in full and its records are closed. If
// the timeout already elapsed the record is left for SlashTimeout; the proof
// itself still counts.
func closeReplacement(tx *ledger.Txn, cfg *types.StorageConfig, up *types.Upload, shard *types.ShardInfo, nodeOwner, exiting address.Address) (*posEvent, error) {
	repAddr := types.ReplacementAddress(exiting, up.DataHash, shard.ShardID)
	var rep types.Replacement
	switch err := tx.GetState(repAddr, &rep); err {
	case nil:
	case ledger.ErrNotFound:
		return nil, xerrors.Errorf("no pending replacement for exiting node %s: %w", exiting, ErrInvalidSubmission)
	default:
		return nil, err
	}
	if rep.ReplacementNode != nodeOwner {
		return nil, xerrors.Errorf("replacement belongs to %s: %w", rep.ReplacementNode, ErrUnauthorized)
	}
	if rep.PoSSubmitted {
		return nil, xerrors.Errorf("shard %d: %w", shard.ShardID, ErrPoSAlreadySubmitted)
	}
	if currentEpoch(tx, cfg) >= rep.RequestEpoch+cfg.ReplacementTimeoutEpochs {
		log.Warnw("replacement proof after timeout, stake release withheld",
			"hash", up.DataHash, "shard", shard.ShardID, "exiting", exiting)
		return nil, nil
	}

	escrowAddr := types.StakeEscrowAddress(exiting)
	released, err := tx.BalanceOf(escrowAddr)
	if err != nil {
		return nil, err
	}
	if err := tx.Transfer(escrowAddr, exiting, released); err != nil {
		return nil, xerrors.Errorf("releasing exiting stake: %w", err)
	}

	reg, err := loadRegistry(tx)
	if err != nil {
		return nil, err
	}
	reg.Remove(exiting)
	if err := tx.PutState(types.RegistryAddress(), reg); err != nil {
		return nil, err
	}
	tx.DeleteState(types.NodeAddress(exiting))
	tx.DeleteState(escrowAddr)
	tx.DeleteState(repAddr)

	if up.PendingReplacements > 0 {
		up.PendingReplacements--
	}

	hash, shardID := up.DataHash, shard.ShardID
	return &posEvent{evtTypeReplacementVerified, func() interface{} {
		return ReplacementVerifiedEvt{
			DataHash:        hash,
			ShardID:         shardID,
			ExitingNode:     exiting,
			ReplacementNode: nodeOwner,
			StakeReleased:   released,
		}
	}}, nil
}
