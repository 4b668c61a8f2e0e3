package orm

import (
	"testing"

	"github.com/custodia-one/custodia/custodiatest/assert"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/store"
)

// badModel implements Model but not CloneableData.
type badModel struct{}

func (badModel) Marshal() ([]byte, error)   { return nil, nil }
func (*badModel) Unmarshal(raw []byte) error { return nil }
func (badModel) Validate() error            { return nil }

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &CounterModel{})

	key, err := b.Put(db, []byte("c1"), &CounterModel{Count: 1})
	assert.Nil(t, err)
	assert.Equal(t, []byte("c1"), key)

	var c CounterModel
	assert.Nil(t, b.One(db, []byte("c1"), &c))
	assert.Equal(t, int64(1), c.Count)

	assert.Nil(t, b.Delete(db, []byte("c1")))
	if err := b.Delete(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting nonexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
}

func TestModelBucketPutSequence(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &CounterModel{})

	// Using a nil key triggers the ID sequence.
	key, err := b.Put(db, nil, &CounterModel{Count: 111})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), key)

	key, err = b.Put(db, nil, &CounterModel{Count: 222})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), key)

	var c CounterModel
	assert.Nil(t, b.One(db, EncodeSequence(2), &c))
	assert.Equal(t, int64(222), c.Count)
}

func TestModelBucketPutWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &CounterModel{})

	if _, err := b.Put(db, nil, &badModel{}); !errors.ErrInvalidType.Is(err) {
		t.Fatalf("unexpected error when storing wrong model type value: %s", err)
	}
}

func TestModelBucketOneWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &CounterModel{})

	_, err := b.Put(db, []byte("c1"), &CounterModel{Count: 1})
	assert.Nil(t, err)

	var dest badModel
	if err := b.One(db, []byte("c1"), &dest); !errors.ErrInvalidType.Is(err) {
		t.Fatalf("unexpected error when loading into wrong model type: %s", err)
	}
}

func TestModelBucketHas(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &CounterModel{})

	_, err := b.Put(db, []byte("c1"), &CounterModel{Count: 1})
	assert.Nil(t, err)

	assert.Nil(t, b.Has(db, []byte("c1")))
	if err := b.Has(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model has check: %s", err)
	}
}
