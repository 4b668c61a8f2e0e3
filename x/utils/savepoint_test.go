package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/store"
)

func TestSavepoint(t *testing.T) {
	var help TestHelpers

	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    custodia.Decorator // decorator at savepoint
		handler custodia.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		written [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		"savepoint deactivated, returns error, both written": {
			save:    NewSavepoint(),
			handler: help.WriteHandler(nk, nv, derr),
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one written": {
			save:    NewSavepoint().OnCheck(),
			handler: help.WriteHandler(nk, nv, derr),
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, one written": {
			save:    NewSavepoint().OnDeliver(),
			handler: help.WriteHandler(nk, nv, derr),
			check:   false,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double-activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: help.WriteHandler(nk, nv, derr),
			check:   false,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint check doesn't affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: help.WriteHandler(nk, nv, derr),
			check:   false,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"don't rollback when success returned": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: help.WriteHandler(nk, nv, nil),
			check:   false,
			isError: false,
			written: [][]byte{ok, nk},
		},
		"writes applied also when savepoint not used": {
			save:    help.WriteDecorator([]byte{1}, []byte{2}, false),
			handler: help.WriteHandler(nk, nv, nil),
			check:   true,
			isError: false,
			written: [][]byte{ok, nk, {1}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "missing key %v", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "unexpected key %v", k)
			}
		})
	}
}
