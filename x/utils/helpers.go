package utils

import "github.com/custodia-one/custodia"

//--------------- expose helpers -----

// TestHelpers returns helper objects for tests,
// encapsulated in one object to be easily imported in other packages
type TestHelpers struct{}

// CountingDecorator passes tx along, and counts how many times it was called.
// Adds one on input down, one on output up,
// to differentiate panic from error
func (TestHelpers) CountingDecorator() CountingDecorator {
	return &countingDecorator{}
}

// ErrorDecorator always returns the given error when called
func (TestHelpers) ErrorDecorator(err error) custodia.Decorator {
	return errorDecorator{err}
}

// ErrorHandler always returns the given error when called
func (TestHelpers) ErrorHandler(err error) custodia.Handler {
	return errorHandler{err}
}

// PanicHandler always panics with the given error when called
func (TestHelpers) PanicHandler(err error) custodia.Handler {
	return panicHandler{err}
}

// WriteHandler will write the given key/value pair to the KVStore,
// and return the error (use nil for success)
func (TestHelpers) WriteHandler(key, value []byte, err error) custodia.Handler {
	return writeHandler{
		key:   key,
		value: value,
		err:   err,
	}
}

// WriteDecorator will write the given key/value pair to the KVStore,
// either before or after calling down the stack.
// Returns (res, err) from child handler untouched
func (TestHelpers) WriteDecorator(key, value []byte, after bool) custodia.Decorator {
	return writeDecorator{
		key:   key,
		value: value,
		after: after,
	}
}

// CountingDecorator keeps track of number of times called.
// 2x per call, 1x per call with panic inside
type CountingDecorator interface {
	GetCount() int
	custodia.Decorator
}

//-------------- counting -------------------------

type countingDecorator struct {
	called int
}

var _ custodia.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx, next custodia.Checker) (*custodia.CheckResult, error) {

	c.called++
	res, err := next.Check(ctx, store, tx)
	c.called++
	return res, err
}

func (c *countingDecorator) Deliver(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx, next custodia.Deliverer) (*custodia.DeliverResult, error) {

	c.called++
	res, err := next.Deliver(ctx, store, tx)
	c.called++
	return res, err
}

func (c *countingDecorator) GetCount() int {
	return c.called
}

//----------- errors ------------

// errorDecorator returns the given error
type errorDecorator struct {
	err error
}

var _ custodia.Decorator = errorDecorator{}

func (e errorDecorator) Check(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx, next custodia.Checker) (*custodia.CheckResult, error) {

	return nil, e.err
}

func (e errorDecorator) Deliver(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx, next custodia.Deliverer) (*custodia.DeliverResult, error) {

	return nil, e.err
}

// errorHandler returns the given error
type errorHandler struct {
	err error
}

var _ custodia.Handler = errorHandler{}

func (e errorHandler) Check(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx) (*custodia.CheckResult, error) {

	return nil, e.err
}

func (e errorHandler) Deliver(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx) (*custodia.DeliverResult, error) {

	return nil, e.err
}

// panicHandler always panics
type panicHandler struct {
	err error
}

var _ custodia.Handler = panicHandler{}

func (p panicHandler) Check(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx) (*custodia.CheckResult, error) {

	panic(p.err)
}

func (p panicHandler) Deliver(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx) (*custodia.DeliverResult, error) {

	panic(p.err)
}

//----------------- writers --------

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ custodia.Handler = writeHandler{}

func (h writeHandler) Check(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx) (*custodia.CheckResult, error) {

	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &custodia.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx) (*custodia.DeliverResult, error) {

	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &custodia.DeliverResult{}, h.err
}

// writeDecorator writes the key, value pair.
// either before or after calling the handlers
type writeDecorator struct {
	key   []byte
	value []byte
	after bool
}

var _ custodia.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx, next custodia.Checker) (*custodia.CheckResult, error) {

	if !d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Check(ctx, store, tx)
	if d.after {
		if serr := store.Set(d.key, d.value); serr != nil {
			return nil, serr
		}
	}
	return res, err
}

func (d writeDecorator) Deliver(ctx custodia.Context, store custodia.KVStore,
	tx custodia.Tx, next custodia.Deliverer) (*custodia.DeliverResult, error) {

	if !d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Deliver(ctx, store, tx)
	if d.after {
		if serr := store.Set(d.key, d.value); serr != nil {
			return nil, serr
		}
	}
	return res, err
}
