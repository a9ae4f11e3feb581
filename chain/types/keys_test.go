package types

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddressDeterministic(t *testing.T) {
	payer, err := address.NewIDAddress(42)
	require.NoError(t, err)

	assert.Equal(t, UploadAddress("hash", payer), UploadAddress("hash", payer))
	assert.Equal(t, ConfigAddress(), ConfigAddress())
	assert.Equal(t, ReplacementAddress(payer, "hash", 3), ReplacementAddress(payer, "hash", 3))
}

func TestDeriveAddressDistinct(t *testing.T) {
	a, err := address.NewIDAddress(1)
	require.NoError(t, err)
	b, err := address.NewIDAddress(2)
	require.NoError(t, err)

	// distinct seed tuples land on distinct accounts
	addrs := []address.Address{
		ConfigAddress(),
		RegistryAddress(),
		NodeAddress(a),
		NodeAddress(b),
		StakeEscrowAddress(a),
		UploadAddress("hash", a),
		UploadAddress("hash", b),
		UploadAddress("other", a),
		EscrowAddress("hash", a),
		UploadKeysAddress(a),
		ReplacementAddress(a, "hash", 0),
		ReplacementAddress(a, "hash", 1),
		ReplacementAddress(b, "hash", 0),
	}
	seen := map[address.Address]struct{}{}
	for _, addr := range addrs {
		_, dup := seen[addr]
		assert.False(t, dup, "address collision: %s", addr)
		seen[addr] = struct{}{}
	}
}

func TestDeriveAddressLengthPrefixing(t *testing.T) {
	payer, err := address.NewIDAddress(7)
	require.NoError(t, err)

	// "ab"+"c" and "a"+"bc" concatenate identically; the length prefixes
	// must still keep them apart
	assert.NotEqual(t, UploadAddress("ab", payer), UploadAddress("a", payer))
}
