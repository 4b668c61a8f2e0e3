package sigs

import "github.com/custodia-one/custodia/errors"

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of a signer without executing
// any other state change. It can be used to invalidate transactions that
// were signed but never submitted.
type BumpSequenceMsg struct {
	Increment uint32
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrInvalidMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrInvalidMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (*BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
