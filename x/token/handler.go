package token

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x"
)

const sendTxCost int64 = 100

// RegisterRoutes attaches the message handlers of this extension to the
// given registry.
func RegisterRoutes(r custodia.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, ctrl))
}

// RegisterQuery will register the token bucket as "/tokens"
func RegisterQuery(qr custodia.QueryRouter) {
	NewBucket().Register("tokens", qr)
}

// SendHandler moves an amount between accounts, if authorized by the
// owner of the source account.
type SendHandler struct {
	auth   x.Authenticator
	ctrl   Controller
	bucket Bucket
}

var _ custodia.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{
		auth:   auth,
		ctrl:   ctrl,
		bucket: NewBucket(),
	}
}

// Check verifies the transfer is authorized and formally valid
func (h SendHandler) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}

	return &custodia.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from sender to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.Move(db, msg.Src, msg.Dest, *msg.Amount); err != nil {
		return nil, err
	}

	return &custodia.DeliverResult{}, nil
}

// validate resolves the source account and ensures the transaction is
// signed by its owner. Only owned accounts can be spent from directly,
// keyless accounts (vaults) move funds through their custodian
// extension instead.
func (h SendHandler) validate(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := custodia.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	msg = *msg.DefaultSource(AccountAddress(signer.Address(), msg.Amount.Ticker))

	acct, err := h.bucket.Get(db, msg.Src)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "source account %s", msg.Src)
	}
	owner := acct.Data().Owner
	if owner == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "keyless account")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not source owner")
	}
	return &msg, nil
}
