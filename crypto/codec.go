package crypto

import (
	"github.com/custodia-one/custodia/errors"
	"github.com/gogo/protobuf/proto"
)

// Wire format of all three types is a single length-delimited field
// holding the raw ed25519 bytes.

func marshalKeyBytes(raw []byte) ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(raw) > 0 {
		_ = buf.EncodeVarint(1<<3 | 2)
		if err := buf.EncodeRawBytes(raw); err != nil {
			return nil, errors.Wrap(err, "encode bytes")
		}
	}
	return buf.Bytes(), nil
}

func unmarshalKeyBytes(data []byte) ([]byte, error) {
	var raw []byte
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return nil, errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		data = data[n:]
		if tag != 1<<3|2 {
			return nil, errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
		size, n := proto.DecodeVarint(data)
		if n == 0 || uint64(len(data)-n) < size {
			return nil, errors.Wrap(errors.ErrInvalidInput, "broken field size")
		}
		raw = append([]byte(nil), data[n:n+int(size)]...)
		data = data[n+int(size):]
	}
	return raw, nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return marshalKeyBytes(p.Ed25519)
}

func (p *PublicKey) Unmarshal(data []byte) error {
	raw, err := unmarshalKeyBytes(data)
	if err != nil {
		return err
	}
	*p = PublicKey{Ed25519: raw}
	return nil
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return marshalKeyBytes(p.Ed25519)
}

func (p *PrivateKey) Unmarshal(data []byte) error {
	raw, err := unmarshalKeyBytes(data)
	if err != nil {
		return err
	}
	*p = PrivateKey{Ed25519: raw}
	return nil
}

func (s *Signature) Marshal() ([]byte, error) {
	return marshalKeyBytes(s.Ed25519)
}

func (s *Signature) Unmarshal(data []byte) error {
	raw, err := unmarshalKeyBytes(data)
	if err != nil {
		return err
	}
	*s = Signature{Ed25519: raw}
	return nil
}
