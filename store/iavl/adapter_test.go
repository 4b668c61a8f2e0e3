package iavl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStoreWriteCommit(t *testing.T) {
	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("open"), []byte("sesame")))

	// not yet visible below
	v, err := s.Get([]byte("open"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, cache.Write())
	v, err = s.Get([]byte("open"))
	require.NoError(t, err)
	assert.Equal(t, []byte("sesame"), v)

	id, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)
	assert.Equal(t, id.Version, s.LatestVersion().Version)
}

func TestCommitStoreDiscard(t *testing.T) {
	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("gone"), []byte("src")))
	cache.Discard()

	v, err := s.Get([]byte("gone"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCommitStoreIterate(t *testing.T) {
	s := MockCommitStore()
	require.NoError(t, s.LoadLatestVersion())
	require.NoError(t, s.Set([]byte("a"), []byte("1")))
	require.NoError(t, s.Set([]byte("b"), []byte("2")))
	require.NoError(t, s.Set([]byte("c"), []byte("3")))

	it, err := s.Iterator([]byte("a"), []byte("c"))
	require.NoError(t, err)
	var keys []string
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "b"}, keys)

	rit, err := s.ReverseIterator(nil, nil)
	require.NoError(t, err)
	keys = nil
	for ; rit.Valid(); require.NoError(t, rit.Next()) {
		keys = append(keys, string(rit.Key()))
	}
	rit.Close()
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}
