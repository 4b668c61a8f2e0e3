package iavl

import (
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// default cache for the working tree nodes
const cacheSize = 10000

// CommitStore manages an iavl committed state backed by leveldb.
//
// Writes always go through a CacheWrap. On Write the batched operations
// are applied to the working tree, and Commit persists the next version
// to disk.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}
var _ store.CacheableKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing under the given
// path. The name is used as the leveldb database name.
func NewCommitStore(path, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, path)
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}
}

// MockCommitStore returns a db-less CommitStore for tests.
func MockCommitStore() CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize)}
}

// Get returns the value stored in the working tree,
// nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks if a key exists in the working tree.
func (s CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes directly to the working tree. Prefer writes through a
// CacheWrap so a failed block leaves no partial state behind.
func (s CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes the key from the working tree.
func (s CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.iterate(start, end, false), nil
}

// iterate materializes the requested range. The iavl callback API forces
// us to walk the whole range up front.
func (s CommitStore) iterate(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	s.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(models)
}

// NewBatch returns a batch that applies all its operations to the
// working tree at once.
func (s CommitStore) NewBatch() store.Batch {
	return &treeBatch{tree: s.tree}
}

// CacheWrap gives us a savepoint to perform actions
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot save version")
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return errors.Wrap(err, "cannot load latest version")
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// treeBatch piles up operations and writes them to the tree at once.
type treeBatch struct {
	tree *iavl.MutableTree
	ops  []treeOp
}

type treeOp struct {
	delete bool
	key    []byte
	value  []byte
}

var _ store.Batch = (*treeBatch)(nil)

func (b *treeBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, treeOp{key: key, value: value})
	return nil
}

func (b *treeBatch) Delete(key []byte) error {
	b.ops = append(b.ops, treeOp{delete: true, key: key})
	return nil
}

func (b *treeBatch) Write() error {
	for _, op := range b.ops {
		if op.delete {
			b.tree.Remove(op.key)
		} else {
			b.tree.Set(op.key, op.value)
		}
	}
	b.ops = nil
	return nil
}
