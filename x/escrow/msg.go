package escrow

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
)

const (
	pathOpenMsg   = "escrow/open"
	pathSettleMsg = "escrow/settle"
	pathAbortMsg  = "escrow/abort"
)

// OpenMsg moves funds from the depositor's associated account into a
// freshly derived vault and creates the escrow record. The depositor is
// the main signer of the transaction; the nonce lets one depositor keep
// any number of independent escrows open.
type OpenMsg struct {
	// Amount is the asset and quantity to custody.
	Amount *coin.Coin
	// Nonce disambiguates escrows of the same depositor.
	Nonce uint64
	// ReceivingAccount is the token account that will be credited when
	// a counterparty settles. It must already exist and hold the same
	// asset.
	ReceivingAccount custodia.Address
}

var _ custodia.Msg = (*OpenMsg)(nil)

func (*OpenMsg) Path() string {
	return pathOpenMsg
}

func (msg *OpenMsg) Validate() error {
	if msg.Amount == nil {
		return errors.Field("Amount", errors.ErrInvalidAmount, "missing amount")
	}
	if err := msg.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !msg.Amount.IsPositive() {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	if err := msg.ReceivingAccount.Validate(); err != nil {
		return errors.Wrap(err, "receiving account")
	}
	return nil
}

// SettleMsg claims an open escrow: the custodied balance moves to the
// receiving account recorded at open time. Any signer may settle, but
// the receiving account they present must match the record exactly.
type SettleMsg struct {
	// Ref addresses the escrow slot, see NewRef.
	Ref []byte
	// ReceivingAccount must equal the account recorded at open time.
	ReceivingAccount custodia.Address
}

var _ custodia.Msg = (*SettleMsg)(nil)

func (*SettleMsg) Path() string {
	return pathSettleMsg
}

func (msg *SettleMsg) Validate() error {
	if _, _, err := ParseRef(msg.Ref); err != nil {
		return errors.Wrap(err, "ref")
	}
	if err := msg.ReceivingAccount.Validate(); err != nil {
		return errors.Wrap(err, "receiving account")
	}
	return nil
}

// AbortMsg returns the custodied balance to the depositor. Only the
// depositor recorded on the escrow may abort.
type AbortMsg struct {
	// Ref addresses the escrow slot, see NewRef.
	Ref []byte
}

var _ custodia.Msg = (*AbortMsg)(nil)

func (*AbortMsg) Path() string {
	return pathAbortMsg
}

func (msg *AbortMsg) Validate() error {
	if _, _, err := ParseRef(msg.Ref); err != nil {
		return errors.Wrap(err, "ref")
	}
	return nil
}
