package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/custodia-one/custodia/errors"
)

// BTreeCacheable adds a btree-based CacheWrap
// strategy to a KVStore
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser returns an ordered list of all operations performed
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore will return a store, along with insight into all
// operations that were run on it
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	kv := NewBTreeCacheWrap(e, b, nil)
	return kv, b
}

// BTreeCacheWrap places a btree overlay over a backing store. Reads
// prefer the overlay, writes go both to the overlay and to the batch,
// so the whole wrap can be flushed or discarded as one.
type BTreeCacheWrap struct {
	overlay *btree.BTree
	free    *btree.FreeList
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a btree overlay around this kv store.
// Use ReadOnlyKVStore to emphasize that all writes must go through
// the Batch.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch,
	free *btree.FreeList) BTreeCacheWrap {

	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		overlay: btree.NewWithFreeList(2, free),
		free:    free,
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap layers another overlay on top of this one.
//
// Uses NonAtomicBatch as it is only backed by another in-memory overlay
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to
// our cachewrap
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the batch to the underlying store.
// And then cleans up
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap, returning the btree nodes to
// the free list
func (b BTreeCacheWrap) Discard() {
	for b.overlay.DeleteMin() != nil {
	}
}

// Set stores the pair in the overlay and the batch
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.overlay.ReplaceOrInsert(&treeEntry{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete shadows the key in the overlay and deletes in the batch
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.overlay.ReplaceOrInsert(&treeEntry{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get reads from the overlay if present, else the backing store
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch ent := b.overlay.Get(&treeEntry{key: key}).(type) {
	case nil:
		return b.back.Get(key)
	case *treeEntry:
		if ent.deleted {
			return nil, nil
		}
		return ent.value, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unexpected item in overlay: %#v", ent)
	}
}

// Has reads from the overlay if present, else the backing store
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch ent := b.overlay.Get(&treeEntry{key: key}).(type) {
	case nil:
		return b.back.Has(key)
	case *treeEntry:
		return !ent.deleted, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unexpected item in overlay: %#v", ent)
	}
}

// Iterator over a domain of keys in ascending order.
// Combines results from the overlay and the backing store
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return mergeIterators(ascendOverlay(b.overlay, start, end), parent, false)
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from the overlay and the backing store
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return mergeIterators(descendOverlay(b.overlay, start, end), parent, true)
}

//---- overlay entries

// keyed lets entries and range pivots order against each other
type keyed interface {
	entryKey() []byte
}

// treeEntry is a pending write. A deletion is stored as an entry with
// the deleted flag, so it can shadow the backing store on reads.
type treeEntry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ keyed = (*treeEntry)(nil)
var _ btree.Item = (*treeEntry)(nil)

func (e *treeEntry) entryKey() []byte {
	return e.key
}

// Less orders entries by key.
//
// panics if the item to compare doesn't implement keyed.
func (e *treeEntry) Less(item btree.Item) bool {
	return bytes.Compare(e.key, item.(keyed).entryKey()) < 0
}

// pivot is a range bound that sorts just below the exact key, so we
// can express the exclusive bounds of descending traversals.
type pivot struct {
	key []byte
}

var _ keyed = pivot{}
var _ btree.Item = pivot{}

func (p pivot) entryKey() []byte {
	return p.key
}

// Less orders the pivot before any entry with the same key.
//
// panics if the item to compare doesn't implement keyed.
func (p pivot) Less(item btree.Item) bool {
	return bytes.Compare(p.key, item.(keyed).entryKey()) <= 0
}

// ascendOverlay snapshots the overlay entries in [start, end) in
// ascending order. nil bounds mean unbounded.
func ascendOverlay(bt *btree.BTree, start, end []byte) []*treeEntry {
	var entries []*treeEntry
	collect := func(item btree.Item) bool {
		entries = append(entries, item.(*treeEntry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(&treeEntry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(&treeEntry{key: start}, collect)
	default:
		bt.AscendRange(&treeEntry{key: start}, &treeEntry{key: end}, collect)
	}
	return entries
}

// descendOverlay snapshots the overlay entries in [start, end) in
// descending order. nil bounds mean unbounded.
func descendOverlay(bt *btree.BTree, start, end []byte) []*treeEntry {
	var entries []*treeEntry
	collect := func(item btree.Item) bool {
		entries = append(entries, item.(*treeEntry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Descend(collect)
	case start == nil:
		bt.DescendLessOrEqual(pivot{end}, collect)
	case end == nil:
		bt.DescendGreaterThan(pivot{start}, collect)
	default:
		bt.DescendRange(pivot{end}, pivot{start}, collect)
	}
	return entries
}
