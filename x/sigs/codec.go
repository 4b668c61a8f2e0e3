package sigs

import (
	"github.com/custodia-one/custodia/crypto"
	"github.com/custodia-one/custodia/errors"
	"github.com/gogo/protobuf/proto"
)

// Wire format of UserData:
//   1: pubkey (message)
//   2: sequence (int64 varint)

func (u *UserData) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if u.Pubkey != nil {
		raw, err := u.Pubkey.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal pubkey")
		}
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(raw)
	}
	if u.Sequence != 0 {
		_ = buf.EncodeVarint(2<<3 | 0)
		_ = buf.EncodeVarint(uint64(u.Sequence))
	}
	return buf.Bytes(), nil
}

func (u *UserData) Unmarshal(data []byte) error {
	*u = UserData{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		switch tag {
		case 1<<3 | 2:
			raw, rest, err := decodeEmbedded(data)
			if err != nil {
				return errors.Wrap(err, "pubkey")
			}
			u.Pubkey = new(crypto.PublicKey)
			if err := u.Pubkey.Unmarshal(raw); err != nil {
				return err
			}
			data = rest
		case 2<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken sequence field")
			}
			u.Sequence = int64(val)
			data = data[n:]
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// Wire format of StdSignature:
//   1: sequence (int64 varint)
//   2: pubkey (message)
//   3: signature (message)

func (s *StdSignature) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if s.Sequence != 0 {
		_ = buf.EncodeVarint(1<<3 | 0)
		_ = buf.EncodeVarint(uint64(s.Sequence))
	}
	if s.Pubkey != nil {
		raw, err := s.Pubkey.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal pubkey")
		}
		_ = buf.EncodeVarint(2<<3 | 2)
		_ = buf.EncodeRawBytes(raw)
	}
	if s.Signature != nil {
		raw, err := s.Signature.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal signature")
		}
		_ = buf.EncodeVarint(3<<3 | 2)
		_ = buf.EncodeRawBytes(raw)
	}
	return buf.Bytes(), nil
}

func (s *StdSignature) Unmarshal(data []byte) error {
	*s = StdSignature{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		switch tag {
		case 1<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken sequence field")
			}
			s.Sequence = int64(val)
			data = data[n:]
		case 2<<3 | 2:
			raw, rest, err := decodeEmbedded(data)
			if err != nil {
				return errors.Wrap(err, "pubkey")
			}
			s.Pubkey = new(crypto.PublicKey)
			if err := s.Pubkey.Unmarshal(raw); err != nil {
				return err
			}
			data = rest
		case 3<<3 | 2:
			raw, rest, err := decodeEmbedded(data)
			if err != nil {
				return errors.Wrap(err, "signature")
			}
			s.Signature = new(crypto.Signature)
			if err := s.Signature.Unmarshal(raw); err != nil {
				return err
			}
			data = rest
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// Wire format of BumpSequenceMsg:
//   1: increment (uint32 varint)

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if msg.Increment != 0 {
		_ = buf.EncodeVarint(1<<3 | 0)
		_ = buf.EncodeVarint(uint64(msg.Increment))
	}
	return buf.Bytes(), nil
}

func (msg *BumpSequenceMsg) Unmarshal(data []byte) error {
	*msg = BumpSequenceMsg{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		switch tag {
		case 1<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken increment field")
			}
			msg.Increment = uint32(val)
			data = data[n:]
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// decodeEmbedded reads a length-delimited field payload and returns it
// together with the remaining buffer.
func decodeEmbedded(data []byte) ([]byte, []byte, error) {
	size, n := proto.DecodeVarint(data)
	if n == 0 || uint64(len(data)-n) < size {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, "broken field size")
	}
	return data[n : n+int(size)], data[n+int(size):], nil
}
