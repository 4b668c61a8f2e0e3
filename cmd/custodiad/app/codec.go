package app

import (
	"github.com/gogo/protobuf/proto"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x/escrow"
	"github.com/custodia-one/custodia/x/sigs"
	"github.com/custodia-one/custodia/x/token"
)

// Wire format of Tx:
//   1: signatures (repeated message)
//   2: send_msg (message)
//   3: open_msg (message)
//   4: settle_msg (message)
//   5: abort_msg (message)
//   6: bump_sequence_msg (message)

func (tx *Tx) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	for _, sig := range tx.Signatures {
		if err := encodeEmbedded(buf, 1, sig); err != nil {
			return nil, errors.Wrap(err, "signature")
		}
	}
	msgs := []struct {
		field uint64
		msg   custodia.Marshaller
		set   bool
	}{
		{2, tx.SendMsg, tx.SendMsg != nil},
		{3, tx.OpenMsg, tx.OpenMsg != nil},
		{4, tx.SettleMsg, tx.SettleMsg != nil},
		{5, tx.AbortMsg, tx.AbortMsg != nil},
		{6, tx.BumpSequenceMsg, tx.BumpSequenceMsg != nil},
	}
	for _, m := range msgs {
		if !m.set {
			continue
		}
		if err := encodeEmbedded(buf, m.field, m.msg); err != nil {
			return nil, errors.Wrap(err, "message")
		}
	}
	return buf.Bytes(), nil
}

func (tx *Tx) Unmarshal(data []byte) error {
	*tx = Tx{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]

		raw, rest, err := decodeBytesField(data)
		if err != nil {
			return err
		}
		data = rest

		switch tag {
		case 1<<3 | 2:
			sig := new(sigs.StdSignature)
			if err := sig.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "signature")
			}
			tx.Signatures = append(tx.Signatures, sig)
		case 2<<3 | 2:
			tx.SendMsg = new(token.SendMsg)
			if err := tx.SendMsg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "send msg")
			}
		case 3<<3 | 2:
			tx.OpenMsg = new(escrow.OpenMsg)
			if err := tx.OpenMsg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "open msg")
			}
		case 4<<3 | 2:
			tx.SettleMsg = new(escrow.SettleMsg)
			if err := tx.SettleMsg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "settle msg")
			}
		case 5<<3 | 2:
			tx.AbortMsg = new(escrow.AbortMsg)
			if err := tx.AbortMsg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "abort msg")
			}
		case 6<<3 | 2:
			tx.BumpSequenceMsg = new(sigs.BumpSequenceMsg)
			if err := tx.BumpSequenceMsg.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "bump sequence msg")
			}
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

func encodeEmbedded(buf *proto.Buffer, field uint64, m custodia.Marshaller) error {
	raw, err := m.Marshal()
	if err != nil {
		return err
	}
	_ = buf.EncodeVarint(field<<3 | 2)
	return buf.EncodeRawBytes(raw)
}

// decodeBytesField reads a length-delimited field payload and returns
// it together with the remaining buffer.
func decodeBytesField(data []byte) ([]byte, []byte, error) {
	size, n := proto.DecodeVarint(data)
	if n == 0 || uint64(len(data)-n) < size {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, "broken field size")
	}
	out := append([]byte(nil), data[n:n+int(size)]...)
	return out, data[n+int(size):], nil
}
