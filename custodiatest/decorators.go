package custodiatest

import "github.com/custodia-one/custodia"

// Decorator is a test double implementing the custodia.Decorator
// interface.
//
// Every call is counted, even when it errors. Set CheckErr or
// DeliverErr to short circuit the corresponding method with an error
// instead of calling the wrapped handler.
type Decorator struct {
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error
	// DeliverErr if set is returned by the Deliver method before
	// calling the wrapped handler.
	DeliverErr error

	checkCall   int
	deliverCall int
}

var _ custodia.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx, next custodia.Checker) (*custodia.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx, next custodia.Deliverer) (*custodia.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps a handler with a single decorator.
func Decorate(h custodia.Handler, d custodia.Decorator) custodia.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn custodia.Handler
	dc custodia.Decorator
}

var _ custodia.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
