package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/custodiatest"
)

func TestDeriveDeterministic(t *testing.T) {
	depositor := custodiatest.NewCondition().Address()

	addr, bump, err := Derive(SeedTokenVault, depositor, 7)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())
	assert.Len(t, []byte(addr), custodia.AddressLength)

	again, againBump, err := Derive(SeedTokenVault, depositor, 7)
	require.NoError(t, err)
	assert.True(t, addr.Equals(again))
	assert.Equal(t, bump, againBump)
}

func TestDeriveDistinct(t *testing.T) {
	alice := custodiatest.NewCondition().Address()
	bob := custodiatest.NewCondition().Address()

	vault, _, err := Derive(SeedTokenVault, alice, 1)
	require.NoError(t, err)

	cases := map[string]struct {
		tag       string
		depositor custodia.Address
		nonce     uint64
	}{
		"different tag":       {SeedVaultAuthority, alice, 1},
		"different depositor": {SeedTokenVault, bob, 1},
		"different nonce":     {SeedTokenVault, alice, 2},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			other, _, err := Derive(tc.tag, tc.depositor, tc.nonce)
			require.NoError(t, err)
			assert.False(t, vault.Equals(other))
		})
	}
}

func TestDeriveAtRecordedBump(t *testing.T) {
	depositor := custodiatest.NewCondition().Address()

	addr, bump, err := Derive(SeedVaultAuthority, depositor, 3)
	require.NoError(t, err)

	// Skipping the search with the recorded bump reproduces the address.
	again, err := DeriveAt(SeedVaultAuthority, depositor, 3, bump)
	require.NoError(t, err)
	assert.True(t, addr.Equals(again))

	// Any other off-curve bump yields a different address.
	for b := 255; b >= 0; b-- {
		if uint8(b) == bump {
			continue
		}
		other, err := DeriveAt(SeedVaultAuthority, depositor, 3, uint8(b))
		if err != nil {
			continue
		}
		assert.False(t, addr.Equals(other))
		break
	}
}

func TestDeriveManySlots(t *testing.T) {
	depositor := custodiatest.NewCondition().Address()

	seen := make(map[string]bool)
	for nonce := uint64(0); nonce < 64; nonce++ {
		addr, _, err := Derive(SeedEscrowRecord, depositor, nonce)
		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.False(t, seen[addr.String()], "collision at nonce %d", nonce)
		seen[addr.String()] = true
	}
}
