package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, db ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := db.Get(key)
	require.NoError(t, err)
	return v
}

func mustHas(t *testing.T, db ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := db.Has(key)
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{KVStore: EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, mustGet(t, base, k))
	assert.False(t, mustHas(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, mustGet(t, base, k))
	assert.True(t, mustHas(t, base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, cache, k))
	assert.True(t, mustHas(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, mustGet(t, cache, k2))
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))
	assert.True(t, mustHas(t, cache, k2))
	assert.False(t, mustHas(t, base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, c2, k))
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assert.Equal(t, v2, mustGet(t, c3, k2))
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
	assert.Nil(t, mustGet(t, base, k3))
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	k1, k2, k3 := []byte("alice"), []byte("bob"), []byte("carl")
	v1, v2, v1x, v3 := []byte("1"), []byte("2"), []byte("11"), []byte("3")

	parent := MemStore()
	require.NoError(t, parent.Set(k1, v1))
	require.NoError(t, parent.Set(k2, v2))

	child := parent.CacheWrap()
	require.NoError(t, child.Set(k1, v1x))
	require.NoError(t, child.Set(k3, v3))
	require.NoError(t, child.Delete(k2))

	// parent is unaffected until the write
	assert.Equal(t, v1, mustGet(t, parent, k1))
	assert.Equal(t, v2, mustGet(t, parent, k2))
	assert.Nil(t, mustGet(t, parent, k3))

	// child sees its own state
	assert.Equal(t, v1x, mustGet(t, child, k1))
	assert.Nil(t, mustGet(t, child, k2))
	assert.False(t, mustHas(t, child, k2))
	assert.Equal(t, v3, mustGet(t, child, k3))

	require.NoError(t, child.Write())
	assert.Equal(t, v1x, mustGet(t, parent, k1))
	assert.Nil(t, mustGet(t, parent, k2))
	assert.Equal(t, v3, mustGet(t, parent, k3))
}

func TestBTreeCacheIterator(t *testing.T) {
	parent := MemStore()
	require.NoError(t, parent.Set([]byte("a"), []byte("1")))
	require.NoError(t, parent.Set([]byte("c"), []byte("3")))

	child := parent.CacheWrap()
	require.NoError(t, child.Set([]byte("b"), []byte("2")))
	require.NoError(t, child.Delete([]byte("c")))
	require.NoError(t, child.Set([]byte("d"), []byte("4")))

	// merged view over both layers, deletes are skipped
	it, err := child.Iterator(nil, nil)
	require.NoError(t, err)
	var keys, values []string
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key()))
		values = append(values, string(it.Value()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "b", "d"}, keys)
	assert.Equal(t, []string{"1", "2", "4"}, values)

	// reverse order
	rit, err := child.ReverseIterator(nil, nil)
	require.NoError(t, err)
	keys = nil
	for ; rit.Valid(); require.NoError(t, rit.Next()) {
		keys = append(keys, string(rit.Key()))
	}
	rit.Close()
	assert.Equal(t, []string{"d", "b", "a"}, keys)

	// bounded range: start inclusive, end exclusive
	bit, err := child.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	keys = nil
	for ; bit.Valid(); require.NoError(t, bit.Next()) {
		keys = append(keys, string(bit.Key()))
	}
	bit.Close()
	assert.Equal(t, []string{"b"}, keys)
}

func TestSliceIterator(t *testing.T) {
	models := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
	}
	it := NewSliceIterator(models)
	require.True(t, it.Valid())
	assert.True(t, bytes.Equal([]byte("a"), it.Key()))
	require.NoError(t, it.Next())
	assert.True(t, bytes.Equal([]byte("2"), it.Value()))
	require.NoError(t, it.Next())
	assert.False(t, it.Valid())
	assert.Panics(t, func() { it.Key() })
	it.Close()
}
