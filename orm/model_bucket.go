package orm

import (
	"reflect"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x"
)

// Model is implemented by any entity that can be stored using ModelBucket.
//
// This is a superset of the Object interface, it does not maintain its
// own key but is instead addressed by the bucket.
type Model interface {
	custodia.Persistent
	x.Validater
}

// ModelBucket is implemented by buckets that operates on a single model
// type. All type checks are done at runtime using reflection.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is
	// done by the primary key. Result is loaded into given destination
	// model pointer. If a value is not found, ErrNotFound is returned.
	One(db custodia.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator is
	// used to create a unique key value.
	// Using a key that already exists in the database overwrites the
	// stored entity.
	Put(db custodia.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the
	// database. It returns ErrNotFound if an entity with given key
	// does not exist.
	Delete(db custodia.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value
	// exists, and ErrNotFound otherwise.
	Has(db custodia.KVStore, key []byte) error

	// Register registers this buckets content to be accessible via
	// query requests under the given name.
	Register(name string, r custodia.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance. The type of the model
// must not change between the calls.
func NewModelBucket(name string, m Model) ModelBucket {
	value, ok := m.(CloneableData)
	if !ok {
		panic("model must implement CloneableData")
	}
	b := NewBucket(name, &SimpleObj{value: value})

	tp := reflect.TypeOf(m)
	if tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}

	return &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: tp,
	}
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (b *modelBucket) Register(name string, r custodia.QueryRouter) {
	b.b.Register(name, r)
}

func (b *modelBucket) One(db custodia.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := b.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", res, dest)
	}

	ptr := reflect.ValueOf(dest)
	ptr.Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (b *modelBucket) Put(db custodia.KVStore, key []byte, m Model) ([]byte, error) {
	mTp := reflect.TypeOf(m)
	if mTp.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrInvalidType, "model destination must be a pointer")
	}
	if b.model != mTp.Elem() {
		return nil, errors.Wrapf(errors.ErrInvalidType, "cannot store %T type in this bucket", m)
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		var err error
		key, err = b.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	obj := NewSimpleObj(key, m.(CloneableData))
	if err := b.b.Save(db, obj); err != nil {
		return nil, err
	}
	return key, nil
}

func (b *modelBucket) Delete(db custodia.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	return b.b.Delete(db, key)
}

func (b *modelBucket) Has(db custodia.KVStore, key []byte) error {
	dbkey := b.b.DBKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}
