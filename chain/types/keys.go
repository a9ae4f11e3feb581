package types

import (
	"bytes"
	"encoding/binary"

	"github.com/filecoin-project/go-address"
)

// Deterministic account addressing. Every protocol record lives at an actor
// address derived from a named seed tuple; the derivation is part of the
// public contract consumed by off-chain collaborators (gossip nodes, SDK
// clients), so the seed names and part ordering here must not change.
const (
	ConfigSeed      = "storage_config"
	UploadSeed      = "upload"
	UploadKeysSeed  = "upload_keys"
	NodeSeed        = "node"
	EscrowSeed      = "escrow"
	StakeEscrowSeed = "stake_escrow"
	ReplacementSeed = "replacement"
	RegistrySeed    = "node_registry"
)

// deriveAddress hashes a seed tuple into an actor address. Each part is
// length-prefixed so distinct tuples can never collide byte-wise.
func deriveAddress(seed string, parts ...[]byte) address.Address {
	buf := new(bytes.Buffer)
	buf.WriteString(seed)
	for _, p := range parts {
		var lb [4]byte
		binary.BigEndian.PutUint32(lb[:], uint32(len(p)))
		buf.Write(lb[:])
		buf.Write(p)
	}
	a, err := address.NewActorAddress(buf.Bytes())
	if err != nil {
		// NewActorAddress only fails on a hasher error, which cannot
		// happen for an in-memory payload.
		panic(err)
	}
	return a
}

func ConfigAddress() address.Address {
	return deriveAddress(ConfigSeed)
}

func RegistryAddress() address.Address {
	return deriveAddress(RegistrySeed)
}

func NodeAddress(owner address.Address) address.Address {
	return deriveAddress(NodeSeed, owner.Bytes())
}

func StakeEscrowAddress(owner address.Address) address.Address {
	return deriveAddress(StakeEscrowSeed, owner.Bytes())
}

func UploadAddress(dataHash string, payer address.Address) address.Address {
	return deriveAddress(UploadSeed, []byte(dataHash), payer.Bytes())
}

func EscrowAddress(dataHash string, payer address.Address) address.Address {
	return deriveAddress(EscrowSeed, []byte(dataHash), payer.Bytes())
}

func UploadKeysAddress(payer address.Address) address.Address {
	return deriveAddress(UploadKeysSeed, payer.Bytes())
}

func ReplacementAddress(exiting address.Address, dataHash string, shardID uint64) address.Address {
	var sb [8]byte
	binary.BigEndian.PutUint64(sb[:], shardID)
	return deriveAddress(ReplacementSeed, exiting.Bytes(), []byte(dataHash), sb[:])
}
