package app

import (
	"fmt"
	"regexp"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
)

// isPath defines which message paths are valid
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router maps message paths to handlers.
type Router struct {
	handlers map[string]custodia.Handler
}

var _ custodia.Registry = Router{}
var _ custodia.Handler = Router{}

// NewRouter initializes a router with no routes
func NewRouter() Router {
	return Router{
		handlers: make(map[string]custodia.Handler),
	}
}

// Handle assigns the handler to handle all messages of the given type.
// The path of the message instance decides the route. It panics on an
// invalid path or a duplicate registration.
func (r Router) Handle(m custodia.Msg, h custodia.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path: %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering message path: %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message. Always
// returns a non-nil handler, using noSuchPathHandler as fallback.
func (r Router) handler(m custodia.Msg) custodia.Handler {
	if h, ok := r.handlers[m.Path()]; ok {
		return h
	}
	return noSuchPathHandler{path: m.Path()}
}

// Check dispatches to the proper handler based on the message path
func (r Router) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on the message path
func (r Router) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, db, tx)
}

// noSuchPathHandler always returns ErrNotFound for the path it was
// created with.
type noSuchPathHandler struct {
	path string
}

var _ custodia.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(custodia.Context, custodia.KVStore, custodia.Tx) (*custodia.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(custodia.Context, custodia.KVStore, custodia.Tx) (*custodia.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
