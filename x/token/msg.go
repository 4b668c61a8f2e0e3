package token

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
)

const (
	pathSendMsg = "token/send"

	maxMemoSize = 128
)

// SendMsg transfers an amount between two token accounts. If Src is
// unset, the main signer of the transaction is used as the sender
// (their associated account for the asset).
type SendMsg struct {
	Src    custodia.Address
	Dest   custodia.Address
	Amount *coin.Coin
	Memo   string
}

var _ custodia.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (*SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (msg *SendMsg) Validate() error {
	if msg.Amount == nil {
		return errors.Field("Amount", errors.ErrInvalidAmount, "missing amount")
	}
	if err := msg.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !msg.Amount.IsPositive() {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	if err := msg.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if msg.Src != nil {
		if err := msg.Src.Validate(); err != nil {
			return errors.Wrap(err, "src")
		}
	}
	if len(msg.Memo) > maxMemoSize {
		return errors.Field("Memo", errors.ErrInvalidInput, "memo too long")
	}
	return nil
}

// DefaultSource makes sure there is a payer.
// If it was already set, returns msg unchanged,
// otherwise returns a message with the source set.
func (msg *SendMsg) DefaultSource(addr custodia.Address) *SendMsg {
	if len(msg.Src) != 0 {
		return msg
	}
	return &SendMsg{
		Src:    addr,
		Dest:   msg.Dest,
		Amount: msg.Amount,
		Memo:   msg.Memo,
	}
}
