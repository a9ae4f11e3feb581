package stmgr

import "golang.org/x/xerrors"

// Every protocol precondition failure is a named sentinel. Operations wrap
// these with xerrors.Errorf("...: %w", Err...) so callers can test with
// errors.Is while logs keep the context. A failed operation leaves no state
// behind; retries are always safe.
var (
	ErrNotInitialized     = xerrors.New("storage config not initialized")
	ErrAlreadyInitialized = xerrors.New("storage config already initialized")
	ErrUnauthorized       = xerrors.New("unauthorized")
	ErrInvalidState       = xerrors.New("invalid state")
	ErrMathOverflow       = xerrors.New("arithmetic overflow")

	// configuration validation
	ErrInvalidPaymentRate   = xerrors.New("invalid payment rate")
	ErrInvalidFeeSplit      = xerrors.New("fee percentages must sum to 100")
	ErrInvalidShardRange    = xerrors.New("invalid shard count range")
	ErrInvalidEpochs        = xerrors.New("invalid total epochs")
	ErrInvalidPenalty       = xerrors.New("invalid slash penalty")
	ErrInvalidSlotsPerEpoch = xerrors.New("invalid slots per epoch")
	ErrInvalidStake         = xerrors.New("invalid stake amount")
	ErrInvalidTimeout       = xerrors.New("invalid replacement timeout")
	ErrInvalidMinFee        = xerrors.New("invalid minimum upload fee")
	ErrInvalidUserPenalty   = xerrors.New("invalid user slash penalty")
	ErrInvalidThreshold     = xerrors.New("invalid oversized report threshold")
	ErrInvalidWindow        = xerrors.New("invalid reporting window")
	ErrInvalidUploadLimit   = xerrors.New("invalid per-user upload limit")

	// node registry
	ErrNodeAlreadyRegistered = xerrors.New("node already registered")
	ErrNodeHasActiveUploads  = xerrors.New("node has active uploads")
	ErrInsufficientStake     = xerrors.New("insufficient stake")

	// upload
	ErrInvalidHash         = xerrors.New("invalid data hash")
	ErrInvalidSize         = xerrors.New("invalid data size")
	ErrInvalidDuration     = xerrors.New("invalid storage duration")
	ErrInvalidShardCount   = xerrors.New("invalid shard count")
	ErrInvalidShardId      = xerrors.New("invalid shard id")
	ErrInsufficientNodes   = xerrors.New("insufficient candidate nodes")
	ErrInsufficientFee     = xerrors.New("upload fee below minimum")
	ErrUploadLimitExceeded = xerrors.New("per-user upload limit exceeded")

	// proof of storage
	ErrInvalidSubmission          = xerrors.New("invalid shard submission")
	ErrMissingPoSData             = xerrors.New("missing proof-of-storage data")
	ErrInvalidMerkleProof         = xerrors.New("invalid merkle proof")
	ErrInvalidChallengerSignature = xerrors.New("invalid challenger signature")
	ErrInvalidChallenger          = xerrors.New("challenger is not an assigned node")
	ErrChallengerIsNode           = xerrors.New("challenger is the submitting node")
	ErrSingleNodeShard            = xerrors.New("single-node shard cannot be challenger-verified")
	ErrInvalidSizeReport          = xerrors.New("invalid oversized report")
	ErrSizeReportTimeout          = xerrors.New("oversized reporting window elapsed")

	// replacement
	ErrNoReplacementAvailable = xerrors.New("no replacement node available")
	ErrTimeoutNotExpired      = xerrors.New("replacement timeout not expired")
	ErrPoSAlreadySubmitted    = xerrors.New("replacement proof already submitted")
	ErrPendingReplacement     = xerrors.New("pending replacement outstanding")

	// settlement
	ErrAlreadyClaimed      = xerrors.New("rewards already claimed this epoch")
	ErrInsufficientReward  = xerrors.New("reward below minimum payout")
	ErrShardNotInvalid     = xerrors.New("shard not invalidated")
	ErrInsufficientReports = xerrors.New("insufficient oversized reports")
)
