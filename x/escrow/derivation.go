package escrow

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/agl/ed25519/edwards25519"
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
)

// Seed tags of the three addresses derived per escrow.
const (
	// SeedTokenVault yields the vault token account address.
	SeedTokenVault = "token_seed"
	// SeedVaultAuthority yields the keyless authority owning the vault.
	SeedVaultAuthority = "vault_auth"
	// SeedEscrowRecord yields the escrow record condition.
	SeedEscrowRecord = "escrow"
)

// ProgramCondition is the identity of this custody program. All derived
// addresses are bound to it, so no other extension can produce a
// colliding authority.
var ProgramCondition = custodia.NewCondition("escrow", "program", []byte("custodia/1"))

// Derive computes the deterministic address for the given seed tag,
// scoped to one escrow instance (depositor, nonce). The derivation is
// pure: any caller with the same inputs reproduces the same address.
//
// A bump byte is searched from 255 down to 0 and every candidate digest
// that decodes as a valid ed25519 curve point is rejected. A derived
// address therefore can never correspond to a usable keypair, which is
// what makes the custody authority keyless. If all 256 candidates land
// on the curve the derivation fails with ErrDerivationExhausted.
func Derive(tag string, depositor custodia.Address, nonce uint64) (custodia.Address, uint8, error) {
	preimage := derivePreimage(tag, depositor, nonce)
	for bump := 255; bump >= 0; bump-- {
		digest := sha256.Sum256(append(preimage, byte(bump)))
		if isCurvePoint(digest) {
			continue
		}
		return custodia.Address(digest[:custodia.AddressLength]), uint8(bump), nil
	}
	return nil, 0, ErrDerivationExhausted
}

// DeriveAt computes the address at a fixed bump, skipping the search.
// It fails if the candidate decodes as a curve point, since such an
// address could belong to a keypair and must never act as a custody
// authority.
func DeriveAt(tag string, depositor custodia.Address, nonce uint64, bump uint8) (custodia.Address, error) {
	digest := sha256.Sum256(append(derivePreimage(tag, depositor, nonce), bump))
	if isCurvePoint(digest) {
		return nil, errors.Wrapf(errors.ErrInvalidState,
			"%s bump %d lands on the curve", tag, bump)
	}
	return custodia.Address(digest[:custodia.AddressLength]), nil
}

func derivePreimage(tag string, depositor custodia.Address, nonce uint64) []byte {
	var nonceRaw [8]byte
	binary.BigEndian.PutUint64(nonceRaw[:], nonce)

	preimage := make([]byte, 0, len(ProgramCondition)+len(tag)+len(depositor)+8+1)
	preimage = append(preimage, ProgramCondition...)
	preimage = append(preimage, tag...)
	preimage = append(preimage, depositor...)
	return append(preimage, nonceRaw[:]...)
}

// isCurvePoint reports whether the digest is a valid compressed
// ed25519 point, ie. whether a private key could exist for it.
func isCurvePoint(digest [32]byte) bool {
	var A edwards25519.ExtendedGroupElement
	return A.FromBytes(&digest)
}
