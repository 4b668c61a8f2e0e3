package orm

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/x"
)

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into
type Cloneable interface {
	Clone() Object
}

// Object is what a bucket stores. The key is joined with the bucket
// prefix to form the full db key, the value is the serialized data.
// Usually a light wrapper around a codec-defined type.
type Object interface {
	Keyed
	Cloneable
	// Validate returns an error if the object is not in a valid state
	// to save to the db (field missing, out of range, ...)
	x.Validater
	Value() custodia.Persistent
}

// Reader can load objects from the db
type Reader interface {
	Get(db custodia.ReadOnlyKVStore, key []byte) (Object, error)
}

// CloneableData is an intelligent Value that can be embedded in a
// simple object to handle much of the details.
type CloneableData interface {
	x.Validater
	custodia.Persistent
	Copy() CloneableData
}
