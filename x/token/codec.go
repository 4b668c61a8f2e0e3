package token

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
	"github.com/gogo/protobuf/proto"
)

// Wire format of AccountData:
//   1: owner (bytes)
//   2: ticker (string)
//   3: balance (int64 varint)

func (a *AccountData) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(a.Owner) > 0 {
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(a.Owner)
	}
	if a.Ticker != "" {
		_ = buf.EncodeVarint(2<<3 | 2)
		if err := buf.EncodeStringBytes(a.Ticker); err != nil {
			return nil, errors.Wrap(err, "encode ticker")
		}
	}
	if a.Balance != 0 {
		_ = buf.EncodeVarint(3<<3 | 0)
		_ = buf.EncodeVarint(uint64(a.Balance))
	}
	return buf.Bytes(), nil
}

func (a *AccountData) Unmarshal(data []byte) error {
	*a = AccountData{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		switch tag {
		case 1<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "owner")
			}
			a.Owner = custodia.Address(raw)
			data = rest
		case 2<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "ticker")
			}
			a.Ticker = string(raw)
			data = rest
		case 3<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken balance field")
			}
			a.Balance = int64(val)
			data = data[n:]
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// Wire format of SendMsg:
//   1: src (bytes)
//   2: dest (bytes)
//   3: amount (message)
//   4: memo (string)

func (msg *SendMsg) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(msg.Src) > 0 {
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(msg.Src)
	}
	if len(msg.Dest) > 0 {
		_ = buf.EncodeVarint(2<<3 | 2)
		_ = buf.EncodeRawBytes(msg.Dest)
	}
	if msg.Amount != nil {
		raw, err := msg.Amount.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal amount")
		}
		_ = buf.EncodeVarint(3<<3 | 2)
		_ = buf.EncodeRawBytes(raw)
	}
	if msg.Memo != "" {
		_ = buf.EncodeVarint(4<<3 | 2)
		if err := buf.EncodeStringBytes(msg.Memo); err != nil {
			return nil, errors.Wrap(err, "encode memo")
		}
	}
	return buf.Bytes(), nil
}

func (msg *SendMsg) Unmarshal(data []byte) error {
	*msg = SendMsg{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		switch tag {
		case 1<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "src")
			}
			msg.Src = custodia.Address(raw)
			data = rest
		case 2<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "dest")
			}
			msg.Dest = custodia.Address(raw)
			data = rest
		case 3<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "amount")
			}
			msg.Amount = new(coin.Coin)
			if err := msg.Amount.Unmarshal(raw); err != nil {
				return err
			}
			data = rest
		case 4<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "memo")
			}
			msg.Memo = string(raw)
			data = rest
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
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
