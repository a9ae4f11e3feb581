package stmgr

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// verifyMerkleProof checks a possession proof: starting from the leaf, each
// sibling on the path is hashed with the running value in canonical order
// (lexicographically smaller operand first), and the result must equal the
// claimed root. Canonical ordering lets the path omit left/right markers.
func verifyMerkleProof(rootHex string, proof [][]byte, leaf []byte) bool {
	root, err := hex.DecodeString(rootHex)
	if err != nil || len(root) != sha256.Size {
		return false
	}

	current := leaf
	for _, sibling := range proof {
		var sum [sha256.Size]byte
		if bytes.Compare(current, sibling) <= 0 {
			sum = sha256.Sum256(append(append([]byte{}, current...), sibling...))
		} else {
			sum = sha256.Sum256(append(append([]byte{}, sibling...), current...))
		}
		current = sum[:]
	}

	return bytes.Equal(current, root)
}
