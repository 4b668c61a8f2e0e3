package escrow

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
	"github.com/gogo/protobuf/proto"
)

// Wire format of EscrowData:
//   1: depositor (bytes)
//   2: ticker (string)
//   3: amount (int64 varint)
//   4: receiving_account (bytes)
//   5: vault (bytes)
//   6: vault_authority (bytes)
//   7: vault_bump (varint)
//   8: authority_bump (varint)
//   9: status (varint)
//  10: created_at (int64 varint)

func (e *EscrowData) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(e.Depositor) > 0 {
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(e.Depositor)
	}
	if e.Ticker != "" {
		_ = buf.EncodeVarint(2<<3 | 2)
		if err := buf.EncodeStringBytes(e.Ticker); err != nil {
			return nil, errors.Wrap(err, "encode ticker")
		}
	}
	if e.Amount != 0 {
		_ = buf.EncodeVarint(3<<3 | 0)
		_ = buf.EncodeVarint(uint64(e.Amount))
	}
	if len(e.ReceivingAccount) > 0 {
		_ = buf.EncodeVarint(4<<3 | 2)
		_ = buf.EncodeRawBytes(e.ReceivingAccount)
	}
	if len(e.Vault) > 0 {
		_ = buf.EncodeVarint(5<<3 | 2)
		_ = buf.EncodeRawBytes(e.Vault)
	}
	if len(e.VaultAuthority) > 0 {
		_ = buf.EncodeVarint(6<<3 | 2)
		_ = buf.EncodeRawBytes(e.VaultAuthority)
	}
	if e.VaultBump != 0 {
		_ = buf.EncodeVarint(7<<3 | 0)
		_ = buf.EncodeVarint(uint64(e.VaultBump))
	}
	if e.AuthorityBump != 0 {
		_ = buf.EncodeVarint(8<<3 | 0)
		_ = buf.EncodeVarint(uint64(e.AuthorityBump))
	}
	if e.Status != StatusInvalid {
		_ = buf.EncodeVarint(9<<3 | 0)
		_ = buf.EncodeVarint(uint64(e.Status))
	}
	if e.CreatedAt != 0 {
		_ = buf.EncodeVarint(10<<3 | 0)
		_ = buf.EncodeVarint(uint64(e.CreatedAt))
	}
	return buf.Bytes(), nil
}

func (e *EscrowData) Unmarshal(data []byte) error {
	*e = EscrowData{}
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
				return errors.Wrap(err, "depositor")
			}
			e.Depositor = custodia.Address(raw)
			data = rest
		case 2<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "ticker")
			}
			e.Ticker = string(raw)
			data = rest
		case 3<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken amount field")
			}
			e.Amount = int64(val)
			data = data[n:]
		case 4<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "receiving account")
			}
			e.ReceivingAccount = custodia.Address(raw)
			data = rest
		case 5<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "vault")
			}
			e.Vault = custodia.Address(raw)
			data = rest
		case 6<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "vault authority")
			}
			e.VaultAuthority = custodia.Address(raw)
			data = rest
		case 7<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken vault bump field")
			}
			e.VaultBump = uint32(val)
			data = data[n:]
		case 8<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken authority bump field")
			}
			e.AuthorityBump = uint32(val)
			data = data[n:]
		case 9<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken status field")
			}
			e.Status = Status(val)
			data = data[n:]
		case 10<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken created_at field")
			}
			e.CreatedAt = custodia.UnixTime(val)
			data = data[n:]
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// Wire format of OpenMsg:
//   1: amount (message)
//   2: nonce (varint)
//   3: receiving_account (bytes)

func (msg *OpenMsg) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if msg.Amount != nil {
		raw, err := msg.Amount.Marshal()
		if err != nil {
			return nil, errors.Wrap(err, "marshal amount")
		}
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(raw)
	}
	if msg.Nonce != 0 {
		_ = buf.EncodeVarint(2<<3 | 0)
		_ = buf.EncodeVarint(msg.Nonce)
	}
	if len(msg.ReceivingAccount) > 0 {
		_ = buf.EncodeVarint(3<<3 | 2)
		_ = buf.EncodeRawBytes(msg.ReceivingAccount)
	}
	return buf.Bytes(), nil
}

func (msg *OpenMsg) Unmarshal(data []byte) error {
	*msg = OpenMsg{}
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
				return errors.Wrap(err, "amount")
			}
			msg.Amount = new(coin.Coin)
			if err := msg.Amount.Unmarshal(raw); err != nil {
				return err
			}
			data = rest
		case 2<<3 | 0:
			val, n := proto.DecodeVarint(data)
			if n == 0 {
				return errors.Wrap(errors.ErrInvalidInput, "broken nonce field")
			}
			msg.Nonce = val
			data = data[n:]
		case 3<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "receiving account")
			}
			msg.ReceivingAccount = custodia.Address(raw)
			data = rest
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// Wire format of SettleMsg:
//   1: ref (bytes)
//   2: receiving_account (bytes)

func (msg *SettleMsg) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(msg.Ref) > 0 {
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(msg.Ref)
	}
	if len(msg.ReceivingAccount) > 0 {
		_ = buf.EncodeVarint(2<<3 | 2)
		_ = buf.EncodeRawBytes(msg.ReceivingAccount)
	}
	return buf.Bytes(), nil
}

func (msg *SettleMsg) Unmarshal(data []byte) error {
	*msg = SettleMsg{}
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
				return errors.Wrap(err, "ref")
			}
			msg.Ref = raw
			data = rest
		case 2<<3 | 2:
			raw, rest, err := decodeBytesField(data)
			if err != nil {
				return errors.Wrap(err, "receiving account")
			}
			msg.ReceivingAccount = custodia.Address(raw)
			data = rest
		default:
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
	}
	return nil
}

// Wire format of AbortMsg:
//   1: ref (bytes)

func (msg *AbortMsg) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	if len(msg.Ref) > 0 {
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(msg.Ref)
	}
	return buf.Bytes(), nil
}

func (msg *AbortMsg) Unmarshal(data []byte) error {
	*msg = AbortMsg{}
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
				return errors.Wrap(err, "ref")
			}
			msg.Ref = raw
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
