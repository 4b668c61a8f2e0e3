package utils

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
)

// Recovery is a decorator that catches panics raised by the wrapped
// handler and converts them into normal errors, so one transaction
// cannot take down the whole process.
type Recovery struct{}

var _ custodia.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check passes the call down the stack, turning panics into errors
func (Recovery) Check(ctx custodia.Context, store custodia.KVStore, tx custodia.Tx, next custodia.Checker) (res *custodia.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver passes the call down the stack, turning panics into errors
func (Recovery) Deliver(ctx custodia.Context, store custodia.KVStore, tx custodia.Tx, next custodia.Deliverer) (res *custodia.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
