package stmgr

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
)

// RegisterNode stakes the owner into the network: the stake moves into the
// node's stake escrow and the owner joins the sampling registry.
func (sm *StateManager) RegisterNode(ctx context.Context, owner address.Address, stake abi.TokenAmount) error {
	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		cfg, err := loadConfig(tx)
		if err != nil {
			return err
		}
		if stake.Nil() || stake.LessThan(cfg.MinNodeStake) {
			return xerrors.Errorf("stake %s below minimum %s: %w", stake, cfg.MinNodeStake, ErrInvalidStake)
		}

		reg, err := loadRegistry(tx)
		if err != nil {
			return err
		}
		if reg.Has(owner) {
			return xerrors.Errorf("node %s: %w", owner, ErrNodeAlreadyRegistered)
		}

		if err := tx.Transfer(owner, types.StakeEscrowAddress(owner), stake); err != nil {
			return xerrors.Errorf("escrowing stake: %w", err)
		}
		if err := tx.PutState(types.StakeEscrowAddress(owner), &types.Escrow{CreatedSlot: tx.CurrentSlot()}); err != nil {
			return err
		}

		nd := types.Node{
			Owner:            owner,
			StakeAmount:      stake,
			UploadCount:      0,
			LastPoSTime:      tx.Timestamp(),
			LastClaimedEpoch: 0,
			IsActive:         true,
		}
		if err := tx.PutState(types.NodeAddress(owner), &nd); err != nil {
			return err
		}

		reg.Nodes = append(reg.Nodes, owner)
		return tx.PutState(types.RegistryAddress(), reg)
	})
	if err != nil {
		return err
	}

	log.Infow("node registered", "owner", owner, "stake", stake.String())
	sm.record(evtTypeNodeRegistered, func() interface{} {
		return NodeRegisteredEvt{Owner: owner, Stake: stake}
	})
	return nil
}

// DeregisterNode removes a node with no outstanding obligations, returning
// its remaining stake and closing the node and stake escrow accounts.
func (sm *StateManager) DeregisterNode(ctx context.Context, owner address.Address) error {
	var returned abi.TokenAmount

	err := sm.ledger.Apply(ctx, func(tx *ledger.Txn) error {
		if _, err := loadConfig(tx); err != nil {
			return err
		}

		nd, err := loadNode(tx, owner)
		if err != nil {
			if err == ledger.ErrNotFound {
				return xerrors.Errorf("no node registered for %s: %w", owner, ErrUnauthorized)
			}
			return err
		}
		if nd.UploadCount != 0 {
			return xerrors.Errorf("node %s holds %d active uploads: %w", owner, nd.UploadCount, ErrNodeHasActiveUploads)
		}

		escrowAddr := types.StakeEscrowAddress(owner)
		returned, err = tx.BalanceOf(escrowAddr)
		if err != nil {
			return err
		}
		if err := tx.Transfer(escrowAddr, owner, returned); err != nil {
			return xerrors.Errorf("returning stake: %w", err)
		}

		reg, err := loadRegistry(tx)
		if err != nil {
			return err
		}
		reg.Remove(owner)
		if err := tx.PutState(types.RegistryAddress(), reg); err != nil {
			return err
		}

		tx.DeleteState(types.NodeAddress(owner))
		tx.DeleteState(escrowAddr)
		return nil
	})
	if err != nil {
		return err
	}

	log.Infow("node deregistered", "owner", owner, "returned", returned.String())
	sm.record(evtTypeNodeDeregistered, func() interface{} {
		return NodeDeregisteredEvt{Owner: owner, StakeReturned: returned}
	})
	return nil
}

// GetNode reads the committed node record for owner.
func (sm *StateManager) GetNode(ctx context.Context, owner address.Address) (*types.Node, error) {
	var nd types.Node
	if err := sm.ledger.GetState(ctx, types.NodeAddress(owner), &nd); err != nil {
		return nil, err
	}
	return &nd, nil
}

// ListNodes returns the registry's node set in registration order.
func (sm *StateManager) ListNodes(ctx context.Context) ([]address.Address, error) {
	var reg types.NodeRegistry
	switch err := sm.ledger.GetState(ctx, types.RegistryAddress(), &reg); err {
	case nil, ledger.ErrNotFound:
		return reg.Nodes, nil
	default:
		return nil, err
	}
}
