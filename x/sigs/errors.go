package sigs

import (
	"github.com/custodia-one/custodia/errors"
)

// ErrInvalidSequence is raised whenever the sequence number of a
// signature does not match the expected replay protection counter.
var ErrInvalidSequence = errors.Register(1100, "invalid sequence")
