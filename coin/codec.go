package coin

import (
	"github.com/custodia-one/custodia/errors"
	"github.com/gogo/protobuf/proto"
)

// Wire format:
//   1: ticker (string)
//   2: amount (int64 varint)

func (c *Coin) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if c.Ticker != "" {
		_ = buf.EncodeVarint(1<<3 | 2)
		if err := buf.EncodeStringBytes(c.Ticker); err != nil {
			return nil, errors.Wrap(err, "encode ticker")
		}
	}
	if c.Amount != 0 {
		_ = buf.EncodeVarint(2<<3 | 0)
		_ = buf.EncodeVarint(uint64(c.Amount))
	}
	return buf.Bytes(), nil
}

func (c *Coin) Unmarshal(data []byte) error {
	*c = Coin{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		switch tag {
		case 1<<3 | 2:
			size, n := proto.DecodeVarint(data)
			if n == 0 || uint64(len(data)-n) < size {
				return errors.Wrap(errors.ErrInvalidInput, "broken ticker field")
			}
			c.Ticker = string(data[n : n+int(size)])
			data = data[n+int(size):]
		case 2<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken amount field")
			}
			c.Amount = int64(val)
			data = data[n:]
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}
