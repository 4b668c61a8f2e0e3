package app

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x/escrow"
	"github.com/custodia-one/custodia/x/sigs"
	"github.com/custodia-one/custodia/x/token"
)

// Tx is the transaction envelope: signatures plus exactly one message.
type Tx struct {
	Signatures []*sigs.StdSignature

	// The message fields act as a oneof, exactly one may be set.
	SendMsg         *token.SendMsg
	OpenMsg         *escrow.OpenMsg
	SettleMsg       *escrow.SettleMsg
	AbortMsg        *escrow.AbortMsg
	BumpSequenceMsg *sigs.BumpSequenceMsg
}

// make sure tx fulfills all interfaces
var _ custodia.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custodia.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message carried by the envelope. An
// envelope with no message or with more than one is rejected.
func (tx *Tx) GetMsg() (custodia.Msg, error) {
	var msg custodia.Msg
	set := 0
	if tx.SendMsg != nil {
		msg, set = tx.SendMsg, set+1
	}
	if tx.OpenMsg != nil {
		msg, set = tx.OpenMsg, set+1
	}
	if tx.SettleMsg != nil {
		msg, set = tx.SettleMsg, set+1
	}
	if tx.AbortMsg != nil {
		msg, set = tx.AbortMsg, set+1
	}
	if tx.BumpSequenceMsg != nil {
		msg, set = tx.BumpSequenceMsg, set+1
	}
	switch set {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "transaction without message")
	case 1:
		return msg, nil
	}
	return nil, errors.Wrapf(errors.ErrInvalidMsg, "%d messages in one transaction", set)
}

// GetSignatures returns the signature of signers who signed the Msg.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. The sign bytes only come
// from the message itself, never from previous signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	s := tx.Signatures
	tx.Signatures = nil
	defer func() { tx.Signatures = s }()

	return tx.Marshal()
}
