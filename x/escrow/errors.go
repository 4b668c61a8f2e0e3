package escrow

import (
	"github.com/custodia-one/custodia/errors"
)

var (
	// ErrSlotOccupied is raised when opening an escrow under a
	// (depositor, nonce) slot that already holds an open escrow.
	ErrSlotOccupied = errors.Register(1010, "escrow slot occupied")

	// ErrAlreadyFinalized is raised when a settle or abort hits a
	// record that already reached a terminal status.
	ErrAlreadyFinalized = errors.Register(1011, "escrow already finalized")

	// ErrAccountMismatch is raised when the receiving account presented
	// at settle time differs from the one recorded at open time.
	ErrAccountMismatch = errors.Register(1012, "receiving account mismatch")

	// ErrDerivationExhausted is raised when no valid bump exists in the
	// derivation search range. Practically unreachable, but handled.
	ErrDerivationExhausted = errors.Register(1013, "derivation exhausted")
)
