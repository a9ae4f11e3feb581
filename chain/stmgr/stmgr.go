package stmgr

import (
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/cenwadike/solad-sub000/chain/ledger"
	"github.com/cenwadike/solad-sub000/chain/types"
	"github.com/cenwadike/solad-sub000/journal"
)

var log = logging.Logger("stmgr")

const (
	evtTypeConfigInitialized = iota
	evtTypeConfigUpdated
	evtTypeNodeRegistered
	evtTypeNodeDeregistered
	evtTypeNodeExited
	evtTypeUploadCreated
	evtTypePoSSubmitted
	evtTypeOversizedReported
	evtTypeReplacementRequested
	evtTypeReplacementVerified
	evtTypeTimeoutSlashed
	evtTypeRewardPaid
	evtTypeUserSlashed
)

// StateManager executes the protocol's state transitions against a ledger.
// Every operation is a single ledger.Apply: preconditions are verified
// against the transaction's view, mutations staged, and the whole effect
// committed atomically; a failed operation leaves no residue. Successful
// operations emit their record to the journal.
type StateManager struct {
	ledger  *ledger.Ledger
	journal journal.Journal

	evtTypes [13]journal.EventType
}

func NewStateManager(l *ledger.Ledger, j journal.Journal) *StateManager {
	if j == nil {
		j = journal.NilJournal()
	}
	sm := &StateManager{
		ledger:  l,
		journal: j,
	}
	sm.evtTypes = [...]journal.EventType{
		evtTypeConfigInitialized:    j.RegisterEventType("storage", "config_initialized"),
		evtTypeConfigUpdated:        j.RegisterEventType("storage", "config_updated"),
		evtTypeNodeRegistered:       j.RegisterEventType("node", "registered"),
		evtTypeNodeDeregistered:     j.RegisterEventType("node", "deregistered"),
		evtTypeNodeExited:           j.RegisterEventType("node", "exited"),
		evtTypeUploadCreated:        j.RegisterEventType("storage", "upload_created"),
		evtTypePoSSubmitted:         j.RegisterEventType("storage", "pos_submitted"),
		evtTypeOversizedReported:    j.RegisterEventType("storage", "oversized_reported"),
		evtTypeReplacementRequested: j.RegisterEventType("replacement", "requested"),
		evtTypeReplacementVerified:  j.RegisterEventType("replacement", "verified"),
		evtTypeTimeoutSlashed:       j.RegisterEventType("replacement", "timeout_slashed"),
		evtTypeRewardPaid:           j.RegisterEventType("settlement", "reward_paid"),
		evtTypeUserSlashed:          j.RegisterEventType("settlement", "user_slashed"),
	}
	return sm
}

// Ledger exposes the underlying ledger for read-only inspection (CLI, tests).
func (sm *StateManager) Ledger() *ledger.Ledger {
	return sm.ledger
}

func (sm *StateManager) record(evt int, supplier func() interface{}) {
	journal.MaybeRecordEvent(sm.journal, sm.evtTypes[evt], supplier)
}

// loadConfig fetches the storage config, failing ErrNotInitialized when the
// protocol has not been initialized on this ledger.
func loadConfig(tx *ledger.Txn) (*types.StorageConfig, error) {
	var cfg types.StorageConfig
	switch err := tx.GetState(types.ConfigAddress(), &cfg); err {
	case nil:
	case ledger.ErrNotFound:
		return nil, ErrNotInitialized
	default:
		return nil, xerrors.Errorf("loading storage config: %w", err)
	}
	if !cfg.IsInitialized {
		return nil, ErrNotInitialized
	}
	return &cfg, nil
}

func loadRegistry(tx *ledger.Txn) (*types.NodeRegistry, error) {
	var reg types.NodeRegistry
	switch err := tx.GetState(types.RegistryAddress(), &reg); err {
	case nil, ledger.ErrNotFound:
		return &reg, nil
	default:
		return nil, xerrors.Errorf("loading node registry: %w", err)
	}
}

func loadNode(tx *ledger.Txn, owner address.Address) (*types.Node, error) {
	var nd types.Node
	if err := tx.GetState(types.NodeAddress(owner), &nd); err != nil {
		return nil, err
	}
	return &nd, nil
}

func loadUpload(tx *ledger.Txn, dataHash string, payer address.Address) (*types.Upload, error) {
	var up types.Upload
	switch err := tx.GetState(types.UploadAddress(dataHash, payer), &up); err {
	case nil:
		return &up, nil
	case ledger.ErrNotFound:
		return nil, xerrors.Errorf("no upload %q for payer %s: %w", dataHash, payer, ErrInvalidHash)
	default:
		return nil, xerrors.Errorf("loading upload: %w", err)
	}
}

// currentEpoch derives the epoch from the transaction's slot clock.
func currentEpoch(tx *ledger.Txn, cfg *types.StorageConfig) abi.ChainEpoch {
	return cfg.EpochAt(tx.CurrentSlot())
}

// releaseObligation decrements the node's outstanding upload count, guarded
// by the shard's released-set so one shard can never release a node twice.
func releaseObligation(tx *ledger.Txn, shard *types.ShardInfo, owner address.Address) error {
	if !shard.Release(owner) {
		return nil
	}
	nd, err := loadNode(tx, owner)
	if err != nil {
		if err == ledger.ErrNotFound {
			// node already deregistered or fully exited
			return nil
		}
		return xerrors.Errorf("loading node %s: %w", owner, err)
	}
	if nd.UploadCount > 0 {
		nd.UploadCount--
	}
	return tx.PutState(types.NodeAddress(owner), nd)
}
