package crypto

import (
	"github.com/custodia-one/custodia"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() custodia.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey carries the raw bytes of a public key. Only the ed25519
// scheme is supported.
type PublicKey struct {
	Ed25519 []byte
}

// PrivateKey carries the raw bytes of a private key. Only the ed25519
// scheme is supported.
type PrivateKey struct {
	Ed25519 []byte
}

// Signature is a detached signature created by a private key.
type Signature struct {
	Ed25519 []byte
}
