package escrow

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x"
	"github.com/custodia-one/custodia/x/token"
)

const (
	openEscrowCost   int64 = 300
	settleEscrowCost int64 = 200
	abortEscrowCost  int64 = 200
)

// RegisterRoutes attaches the escrow message handlers to the given
// registry.
func RegisterRoutes(r custodia.Registry, auth x.Authenticator, tc token.Controller) {
	ctrl := NewController(tc)
	r.Handle(&OpenMsg{}, OpenHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SettleMsg{}, SettleHandler{auth: auth, ctrl: ctrl})
	r.Handle(&AbortMsg{}, AbortHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the escrow bucket under "/escrows".
func RegisterQuery(qr custodia.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// OpenHandler creates an escrow, moving the deposit from the signer's
// associated account into a freshly derived keyless vault.
type OpenHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custodia.Handler = OpenHandler{}

func (h OpenHandler) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custodia.CheckResult{GasAllocated: openEscrowCost}, nil
}

// Deliver opens the escrow and returns the escrow reference as result
// data, so the caller can settle or abort it later.
func (h OpenHandler) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.DeliverResult, error) {
	msg, depositor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	blockTime, err := custodia.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	ref, err := h.ctrl.Deposit(db, depositor, msg.Nonce,
		*msg.Amount, msg.ReceivingAccount, custodia.AsUnixTime(blockTime))
	if err != nil {
		return nil, err
	}
	return &custodia.DeliverResult{Data: ref}, nil
}

func (h OpenHandler) validate(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*OpenMsg, custodia.Address, error) {
	var msg OpenMsg
	if err := custodia.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return &msg, signer.Address(), nil
}

// SettleHandler finalizes an open escrow by paying the custodied
// amount out to the receiving account fixed at open time. Any signed
// party may trigger settlement, the payout destination cannot be
// altered.
type SettleHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custodia.Handler = SettleHandler{}

func (h SettleHandler) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custodia.CheckResult{GasAllocated: settleEscrowCost}, nil
}

func (h SettleHandler) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Release(db, msg.Ref, msg.ReceivingAccount); err != nil {
		return nil, err
	}
	return &custodia.DeliverResult{}, nil
}

func (h SettleHandler) validate(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*SettleMsg, error) {
	var msg SettleMsg
	if err := custodia.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return &msg, nil
}

// AbortHandler cancels an open escrow and returns the custodied amount
// to the depositor. Only the depositor may abort.
type AbortHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custodia.Handler = AbortHandler{}

func (h AbortHandler) Check(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custodia.CheckResult{GasAllocated: abortEscrowCost}, nil
}

func (h AbortHandler) Deliver(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*custodia.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Refund(db, msg.Ref); err != nil {
		return nil, err
	}
	return &custodia.DeliverResult{}, nil
}

func (h AbortHandler) validate(ctx custodia.Context, db custodia.KVStore, tx custodia.Tx) (*AbortMsg, error) {
	var msg AbortMsg
	if err := custodia.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	rec, err := h.ctrl.Load(db, msg.Ref)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, rec.Depositor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the depositor can abort")
	}
	return &msg, nil
}
