package ledger

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/filecoin-project/go-address"
	cborutil "github.com/filecoin-project/go-cbor-util"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	dssync "github.com/ipfs/go-datastore/sync"
	logging "github.com/ipfs/go-log/v2"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"

	"github.com/cenwadike/solad-sub000/build"
)

var log = logging.Logger("ledger")

var (
	// ErrNotFound is returned when no record exists at the requested address.
	ErrNotFound = xerrors.New("ledger: record not found")

	// ErrInsufficientBalance is returned by Transfer when the source account
	// holds less than the requested amount.
	ErrInsufficientBalance = xerrors.New("ledger: insufficient balance")
)

var (
	statePrefix   = datastore.NewKey("/state")
	balancePrefix = datastore.NewKey("/balance")
)

// Ledger keeps protocol records and token balances in a datastore. Records are
// CBOR-encoded structs addressed by derived account addresses; balances are
// serialized big.Ints. Slot time is measured from the genesis instant using
// build.Clock, so tests can drive it with a mock clock.
//
// All mutations go through Apply, which stages writes in a transaction and
// commits them in a single datastore batch. A failed transaction leaves the
// ledger untouched.
type Ledger struct {
	lk sync.Mutex

	ds      datastore.Batching
	genesis time.Time
}

func NewLedger(ds datastore.Batching, genesis time.Time) *Ledger {
	return &Ledger{
		ds:      namespace.Wrap(ds, datastore.NewKey("/ledger")),
		genesis: genesis,
	}
}

// NewMemLedger returns a ledger over an in-memory datastore with genesis at
// the current clock time. Intended for tests and dry runs.
func NewMemLedger() *Ledger {
	ds := dssync.MutexWrap(datastore.NewMapDatastore())
	return NewLedger(ds, build.Clock.Now())
}

// CurrentSlot returns the number of whole slots elapsed since genesis.
func (l *Ledger) CurrentSlot() uint64 {
	elapsed := build.Clock.Since(l.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / build.SlotDuration)
}

// Timestamp returns the current unix time per the ledger clock.
func (l *Ledger) Timestamp() int64 {
	return build.Clock.Now().Unix()
}

func (l *Ledger) Genesis() time.Time {
	return l.genesis
}

func stateKey(addr address.Address) datastore.Key {
	return statePrefix.ChildString(addr.String())
}

func balanceKey(addr address.Address) datastore.Key {
	return balancePrefix.ChildString(addr.String())
}

// Apply runs fn inside a transaction. Writes made through the transaction are
// invisible to readers until fn returns nil, at which point they are committed
// atomically. If fn returns an error nothing is written.
func (l *Ledger) Apply(ctx context.Context, fn func(tx *Txn) error) error {
	l.lk.Lock()
	defer l.lk.Unlock()

	tx := &Txn{
		ctx:    ctx,
		ledger: l,
		writes: map[datastore.Key][]byte{},
	}

	if err := fn(tx); err != nil {
		return err
	}

	batch, err := l.ds.Batch(ctx)
	if err != nil {
		return xerrors.Errorf("creating batch: %w", err)
	}
	for k, v := range tx.writes {
		if v == nil {
			if err := batch.Delete(ctx, k); err != nil {
				return xerrors.Errorf("staging delete of %s: %w", k, err)
			}
			continue
		}
		if err := batch.Put(ctx, k, v); err != nil {
			return xerrors.Errorf("staging put of %s: %w", k, err)
		}
	}
	if err := batch.Commit(ctx); err != nil {
		return xerrors.Errorf("committing ledger batch: %w", err)
	}
	return nil
}

// GetState reads a committed record outside of any transaction.
func (l *Ledger) GetState(ctx context.Context, addr address.Address, out cbg.CBORUnmarshaler) error {
	raw, err := l.ds.Get(ctx, stateKey(addr))
	switch err {
	case nil:
	case datastore.ErrNotFound:
		return ErrNotFound
	default:
		return xerrors.Errorf("reading state at %s: %w", addr, err)
	}
	return out.UnmarshalCBOR(bytes.NewReader(raw))
}

// HasState reports whether a committed record exists at addr.
func (l *Ledger) HasState(ctx context.Context, addr address.Address) (bool, error) {
	return l.ds.Has(ctx, stateKey(addr))
}

// BalanceOf returns the committed balance of addr, zero if the account has
// never been funded.
func (l *Ledger) BalanceOf(ctx context.Context, addr address.Address) (big.Int, error) {
	raw, err := l.ds.Get(ctx, balanceKey(addr))
	switch err {
	case nil:
	case datastore.ErrNotFound:
		return big.Zero(), nil
	default:
		return big.Int{}, xerrors.Errorf("reading balance of %s: %w", addr, err)
	}
	var amt big.Int
	if err := amt.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return big.Int{}, xerrors.Errorf("decoding balance of %s: %w", addr, err)
	}
	return amt, nil
}

// Txn is a staged view over the ledger. Reads see the transaction's own writes
// first, then the committed store. Nil values in the write set mark deletes.
type Txn struct {
	ctx    context.Context
	ledger *Ledger
	writes map[datastore.Key][]byte
}

func (tx *Txn) get(k datastore.Key) ([]byte, error) {
	if raw, ok := tx.writes[k]; ok {
		if raw == nil {
			return nil, datastore.ErrNotFound
		}
		return raw, nil
	}
	return tx.ledger.ds.Get(tx.ctx, k)
}

func (tx *Txn) has(k datastore.Key) (bool, error) {
	if raw, ok := tx.writes[k]; ok {
		return raw != nil, nil
	}
	return tx.ledger.ds.Has(tx.ctx, k)
}

// GetState decodes the record at addr into out.
func (tx *Txn) GetState(addr address.Address, out cbg.CBORUnmarshaler) error {
	raw, err := tx.get(stateKey(addr))
	switch err {
	case nil:
	case datastore.ErrNotFound:
		return ErrNotFound
	default:
		return xerrors.Errorf("reading state at %s: %w", addr, err)
	}
	return out.UnmarshalCBOR(bytes.NewReader(raw))
}

// PutState stages a record write at addr, replacing any existing record.
func (tx *Txn) PutState(addr address.Address, val cbg.CBORMarshaler) error {
	raw, err := cborutil.Dump(val)
	if err != nil {
		return xerrors.Errorf("encoding state for %s: %w", addr, err)
	}
	tx.writes[stateKey(addr)] = raw
	return nil
}

// DeleteState stages removal of the record at addr. Deleting a missing record
// is not an error.
func (tx *Txn) DeleteState(addr address.Address) {
	tx.writes[stateKey(addr)] = nil
}

func (tx *Txn) HasState(addr address.Address) (bool, error) {
	return tx.has(stateKey(addr))
}

// BalanceOf returns the balance of addr as seen by this transaction.
func (tx *Txn) BalanceOf(addr address.Address) (big.Int, error) {
	raw, err := tx.get(balanceKey(addr))
	switch err {
	case nil:
	case datastore.ErrNotFound:
		return big.Zero(), nil
	default:
		return big.Int{}, xerrors.Errorf("reading balance of %s: %w", addr, err)
	}
	var amt big.Int
	if err := amt.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return big.Int{}, xerrors.Errorf("decoding balance of %s: %w", addr, err)
	}
	return amt, nil
}

func (tx *Txn) setBalance(addr address.Address, amt big.Int) error {
	raw, err := cborutil.Dump(&amt)
	if err != nil {
		return xerrors.Errorf("encoding balance for %s: %w", addr, err)
	}
	tx.writes[balanceKey(addr)] = raw
	return nil
}

// Transfer moves amt from one account to another. It fails with
// ErrInsufficientBalance if the source holds less than amt. Zero-amount
// transfers are allowed and do nothing.
func (tx *Txn) Transfer(from, to address.Address, amt big.Int) error {
	if amt.LessThan(big.Zero()) {
		return xerrors.Errorf("transfer of negative amount %s", amt)
	}
	if amt.IsZero() || from == to {
		return nil
	}

	fromBal, err := tx.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.LessThan(amt) {
		return xerrors.Errorf("transfer of %s from %s (balance %s): %w", amt, from, fromBal, ErrInsufficientBalance)
	}
	toBal, err := tx.BalanceOf(to)
	if err != nil {
		return err
	}

	if err := tx.setBalance(from, big.Sub(fromBal, amt)); err != nil {
		return err
	}
	return tx.setBalance(to, big.Add(toBal, amt))
}

// Credit mints amt into addr. This is the genesis/faucet path; protocol
// operations themselves only move existing funds with Transfer.
func (tx *Txn) Credit(addr address.Address, amt big.Int) error {
	if amt.LessThan(big.Zero()) {
		return xerrors.Errorf("credit of negative amount %s", amt)
	}
	bal, err := tx.BalanceOf(addr)
	if err != nil {
		return err
	}
	log.Debugw("crediting account", "addr", addr, "amount", amt.String())
	return tx.setBalance(addr, big.Add(bal, amt))
}

// CurrentSlot mirrors Ledger.CurrentSlot for use inside transactions.
func (tx *Txn) CurrentSlot() uint64 {
	return tx.ledger.CurrentSlot()
}

// Timestamp mirrors Ledger.Timestamp for use inside transactions.
func (tx *Txn) Timestamp() int64 {
	return tx.ledger.Timestamp()
}
