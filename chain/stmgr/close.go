package stmgr

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// CloseUpload is the payer's terminal cleanup: once every shard is fully
// verified or invalidated and no replacement is pending, outstanding node
// obligations are released, the residual escrow refunded, and the upload's
// records removed.
func (sm *StateManager) CloseUpload(ctx context.Context, payer address.Address, dataHash string) (abi.TokenAmount, error) {
	var residual abi.TokenAmount

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		if _, err := loadConfig(tx); err != nil {
			return err
		}
		up, err := loadUpload(tx, dataHash, payer)
		if err != nil {
			return err
		}
		if up.Payer != payer {
			return xerrors.Errorf("upload %q belongs to %s: %w", dataHash, up.Payer, ErrUnauthorized)
		}
		if up.PendingReplacements > 0 {
			return xerrors.Errorf("%d replacements outstanding: %w", up.PendingReplacements, ErrPendingReplacement)
		}
		for i := range up.Shards {
			if !up.Shards[i].IsSettled() {
				return xerrors.Errorf("shard %d not settled: %w", up.Shards[i].ShardID, ErrInvalidState)
			}
		}

		for i := range up.Shards {
			shard := &up.Shards[i]
			for _, owner := range shard.LiveNodes() {
				if err := releaseObligation(tx, shard, owner); err != nil {
					return err
				}
			}
		}

		escrowAddr := types.EscrowAddress(dataHash, payer)
		residual, err = tx.BalanceOf(escrowAddr)
		if err != nil {
			return err
		}
		if err := tx.Transfer(escrowAddr, payer, residual); err != nil {
			return xerrors.Errorf("refunding residual escrow: %w", err)
		}

		tx.DeleteState(types.UploadAddress(dataHash, payer))
		tx.DeleteState(escrowAddr)

		var keys types.UserUploadKeys
		switch err := tx.GetState(types.UploadKeysAddress(payer), &keys); err {
		case nil:
			keys.Remove(types.UploadAddress(dataHash, payer))
			return tx.PutState(types.UploadKeysAddress(payer), &keys)
		case ledger.ErrNotFound:
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return abi.TokenAmount{}, err
	}

	log.Infow("upload closed", "hash", dataHash, "payer", payer, "refunded", residual.String())
	return residual, nil
}
