package custodiatest

import (
	"testing"

	"github.com/custodia-one/custodia"
)

// ParseAddress takes an address in a hex format and returns its binary
// representation, failing the test on bad input.
func ParseAddress(t testing.TB, encodedAddress string) custodia.Address {
	t.Helper()

	addr, err := custodia.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
