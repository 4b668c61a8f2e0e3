package store

import "github.com/custodia-one/custodia"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = custodia.ReadOnlyKVStore
type KVStore = custodia.KVStore
type SetDeleter = custodia.SetDeleter
type Batch = custodia.Batch
type Iterator = custodia.Iterator
type CacheableKVStore = custodia.CacheableKVStore
type KVCacheWrap = custodia.KVCacheWrap
type CommitKVStore = custodia.CommitKVStore
type CommitID = custodia.CommitID
type Model = custodia.Model
