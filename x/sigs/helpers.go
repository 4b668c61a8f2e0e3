package sigs

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/custodiatest"
)

//----- mock objects for testing...

type StdTx struct {
	custodia.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ custodia.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &custodiatest.Msg{Serialized: payload}
	tx := &custodiatest.Tx{Msg: msg}
	return &StdTx{Tx: tx}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	// marshal self w/o sigs
	s := tx.Signatures
	tx.Signatures = nil
	defer func() { tx.Signatures = s }()

	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
