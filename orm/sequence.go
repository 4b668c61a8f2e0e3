package orm

import (
	"encoding/binary"
	"fmt"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
)

// Sequence maintains a counter in the database. Sequence values are
// serialized as 8 byte big endian integers, so they sort correctly
// when used as keys.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequences are kept in their
// own namespace, scoped by bucket and name.
func NewSequence(bucket, name string) Sequence {
	id := fmt.Sprintf("_s.%s:%s", bucket, name)
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes
func (s Sequence) NextVal(db custodia.KVStore) ([]byte, error) {
	val, _, err := s.increment(db)
	return val, err
}

// NextInt increments the sequence and returns its state as int
func (s Sequence) NextInt(db custodia.KVStore) (int64, error) {
	_, val, err := s.increment(db)
	return val, err
}

// Latest returns the current value of this sequence, without
// incrementing. A sequence that was never incremented reports zero.
func (s Sequence) Latest(db custodia.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	val, err := DecodeSequence(raw)
	if err != nil {
		return 0, err
	}
	return int64(val), nil
}

func (s Sequence) increment(db custodia.KVStore) ([]byte, int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, 0, err
	}
	var val uint64
	if raw != nil {
		val, err = DecodeSequence(raw)
		if err != nil {
			return nil, 0, err
		}
	}
	val++
	raw = EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return nil, 0, err
	}
	return raw, int64(val), nil
}

// EncodeSequence serializes a sequence value as 8 byte big endian.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// DecodeSequence interprets raw bytes as a sequence value.
func DecodeSequence(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "sequence value must be 8 bytes, got %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
