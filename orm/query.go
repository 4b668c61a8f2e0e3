package orm

import (
	"github.com/custodia-one/custodia"
)

// queryPrefix returns all models with keys that begin with the
// given prefix, in ascending key order.
func queryPrefix(db custodia.ReadOnlyKVStore, prefix []byte) ([]custodia.Model, error) {
	itr, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	var res []custodia.Model
	for itr.Valid() {
		res = append(res, custodia.Model{
			Key:   copyBytes(itr.Key()),
			Value: copyBytes(itr.Value()),
		})
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixEnd returns the smallest key strictly greater than all keys
// that begin with prefix, or nil if no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := copyBytes(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func copyBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	return append([]byte(nil), in...)
}
