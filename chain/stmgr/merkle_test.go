package stmgr

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyMerkleProof(t *testing.T) {
	// four leaves, two levels
	leaves := [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d")}
	l0 := hashPair(leaves[0], leaves[1])
	l1 := hashPair(leaves[2], leaves[3])
	root := hex.EncodeToString(hashPair(l0, l1))

	// path for leaf "c": sibling "d", then the left subtree hash
	assert.True(t, verifyMerkleProof(root, [][]byte{leaves[3], l0}, leaves[2]))
	assert.True(t, verifyMerkleProof(root, [][]byte{leaves[1], l1}, leaves[0]))

	// wrong leaf
	assert.False(t, verifyMerkleProof(root, [][]byte{leaves[3], l0}, []byte("x")))

	// truncated path
	assert.False(t, verifyMerkleProof(root, [][]byte{leaves[3]}, leaves[2]))

	// corrupted sibling
	assert.False(t, verifyMerkleProof(root, [][]byte{leaves[0], l1}, leaves[2]))
}

func TestVerifyMerkleProofRootEncoding(t *testing.T) {
	leaf := []byte("leaf")
	sibling := sha256.Sum256([]byte("sibling"))
	root := hashPair(leaf, sibling[:])

	assert.True(t, verifyMerkleProof(hex.EncodeToString(root), [][]byte{sibling[:]}, leaf))

	// not hex
	assert.False(t, verifyMerkleProof("zz", [][]byte{sibling[:]}, leaf))

	// wrong digest length
	assert.False(t, verifyMerkleProof(hex.EncodeToString(root[:16]), [][]byte{sibling[:]}, leaf))

	// byte flip in the root
	flipped := append([]byte{}, root...)
	flipped[0] ^= 0xff
	assert.False(t, verifyMerkleProof(hex.EncodeToString(flipped), [][]byte{sibling[:]}, leaf))
}
