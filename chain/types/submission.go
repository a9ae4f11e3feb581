package types

import (
	"github.com/filecoin-project/go-address"
)

// ShardSubmission is one entry of a submit_pos batch. It is either an
// oversized-data report (ActualSizeMB set) or a possession proof (the Merkle
// and challenger fields set), never both.
type ShardSubmission struct {
	DataHash string `json:"data_hash"`
	ShardID  uint64 `json:"shard_id"`

	// Possession proof. MerkleProof is the sibling path from Leaf to
	// MerkleRoot (hex encoded root, 32-byte siblings). The challenger
	// co-signs SHA256("hash:shard:root:ts") with a recoverable secp256k1
	// signature; Timestamp is the ts the signature covers.
	MerkleRoot    string   `json:"merkle_root,omitempty"`
	MerkleProof   [][]byte `json:"merkle_proof,omitempty"`
	Leaf          []byte   `json:"leaf,omitempty"`
	ChallengerSig []byte   `json:"challenger_sig,omitempty"`
	ChallengerPub []byte   `json:"challenger_pub,omitempty"`
	Timestamp     int64    `json:"timestamp,omitempty"`

	// ExitingNode, when set, identifies the pending replacement this proof
	// closes: the submitter took over the exiting node's shard slot and this
	// proof releases the exiting node's stake.
	ExitingNode address.Address `json:"exiting_node,omitempty"`

	// Oversized-data report. Zero means "not a report".
	ActualSizeMB uint64 `json:"actual_size_mb,omitempty"`
}

// IsReport reports whether the submission takes the oversized-data path.
func (s *ShardSubmission) IsReport() bool {
	return s.ActualSizeMB > 0
}

// HasProofData reports whether any possession-proof field is present.
func (s *ShardSubmission) HasProofData() bool {
	return s.MerkleRoot != "" || len(s.MerkleProof) > 0 || len(s.Leaf) > 0 ||
		len(s.ChallengerSig) > 0 || len(s.ChallengerPub) > 0
}
