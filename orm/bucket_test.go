package orm

import (
	"testing"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/custodiatest/assert"
	"github.com/custodia-one/custodia/store"
)

func count(t testing.TB, val int64) Object {
	t.Helper()
	return NewSimpleObj(nil, &CounterModel{Count: val})
}

func TestBucketSaveGet(t *testing.T) {
	db := store.MemStore()
	b := NewCounterBucket("cnts")

	// Missing entries are returned as nil, no error.
	obj, err := b.Get(db, []byte("unknown"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	// An object without a key cannot be saved.
	if err := b.Save(db, count(t, 5)); err == nil {
		t.Fatal("saved an object with no key")
	}

	obj = count(t, 5)
	obj.SetKey([]byte("five"))
	assert.Nil(t, b.Save(db, obj))

	loaded, err := b.Get(db, []byte("five"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("five"), loaded.Key())
	assert.Equal(t, int64(5), loaded.Value().(*CounterModel).Count)

	// Buckets with different names do not see each other's data.
	other := NewCounterBucket("other")
	obj, err = other.Get(db, []byte("five"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Delete(db, []byte("five")))
	obj, err = b.Get(db, []byte("five"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewCounterBucket("mine")

	set := func(key string, val int64) {
		t.Helper()
		obj := count(t, val)
		obj.SetKey([]byte(key))
		assert.Nil(t, b.Save(db, obj))
	}
	set("aab", 1)
	set("aac", 2)
	set("bcd", 3)

	qr := custodia.NewQueryRouter()
	b.Register("counters", qr)

	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("no handler registered")
	}

	// Exact key lookup.
	models, err := h.Query(db, custodia.KeyQueryMod, []byte("aac"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, b.DBKey([]byte("aac")), models[0].Key)

	// Missing key gives an empty result, no error.
	models, err = h.Query(db, custodia.KeyQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))

	// Prefix scan.
	models, err = h.Query(db, custodia.PrefixQueryMod, []byte("aa"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(models))
	assert.Equal(t, b.DBKey([]byte("aab")), models[0].Key)
	assert.Equal(t, b.DBKey([]byte("aac")), models[1].Key)

	// Unknown query modifier is rejected.
	if _, err := h.Query(db, "unknown", []byte("aa")); err == nil {
		t.Fatal("expected unknown mod to fail")
	}
}

func TestBucketName(t *testing.T) {
	assert.Equal(t, "somename", NewCounterBucket("somename").Name())

	assert.Panics(t, func() { NewCounterBucket("UpperCase") })
	assert.Panics(t, func() { NewCounterBucket("with space") })
	assert.Panics(t, func() { NewCounterBucket("toolongbucketname") })
}
