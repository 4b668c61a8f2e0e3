package custodiatest

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/crypto"
)

// NewKey returns a random keypair signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random keypair.
func NewCondition() custodia.Condition {
	return NewKey().PublicKey().Condition()
}
