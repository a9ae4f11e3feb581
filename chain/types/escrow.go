package types

// Escrow marks an escrow account created by the protocol: the node-fee pool
// of an upload, or a node's stake pool. The held amount is the account's
// ledger balance; the record itself only pins the account's existence and
// creation slot so it can be addressed and closed deterministically.
type Escrow struct {
	CreatedSlot uint64
}
