package custodiatest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/store/iavl"
)

// CommitKVStore returns a store backed by the filesystem, together
// with a cleanup function removing it. Use this instead of MemStore
// when the test needs the exact storage engine of a production
// instance.
func CommitKVStore(t testing.TB) (custodia.CommitKVStore, func()) {
	dbpath, err := ioutil.TempDir("", t.Name())
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	cleanup := func() {
		os.RemoveAll(dbpath)
	}
	return iavl.NewCommitStore(dbpath, "db"), cleanup
}
