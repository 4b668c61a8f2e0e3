package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-one/custodia/custodiatest"
	"github.com/custodia-one/custodia/errors"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	counter := &custodiatest.Handler{}
	r.Handle(&custodiatest.Msg{RoutePath: "test/good"}, counter)
	r.Handle(&custodiatest.Msg{RoutePath: "test/bad"}, &custodiatest.Handler{
		CheckErr:   errors.ErrHuman.New("foo"),
		DeliverErr: errors.ErrHuman.New("foo"),
	})

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle(&custodiatest.Msg{RoutePath: "test/good"}, counter) })
	assert.Panics(t, func() { r.Handle(&custodiatest.Msg{RoutePath: "l:7"}, counter) })

	// check proper paths work
	goodTx := &custodiatest.Tx{Msg: &custodiatest.Msg{RoutePath: "test/good"}}
	_, err := r.Check(nil, nil, goodTx)
	require.NoError(t, err)
	_, err = r.Deliver(nil, nil, goodTx)
	require.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	// an error handler is also looked up
	badTx := &custodiatest.Tx{Msg: &custodiatest.Msg{RoutePath: "test/bad"}}
	_, err = r.Deliver(nil, nil, badTx)
	assert.True(t, errors.ErrHuman.Is(err), "%+v", err)

	// make sure not found returns an error as well
	missingTx := &custodiatest.Tx{Msg: &custodiatest.Msg{RoutePath: "test/missing"}}
	_, err = r.Deliver(nil, nil, missingTx)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
	_, err = r.Check(nil, nil, missingTx)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
	assert.Equal(t, 2, counter.CallCount())
}
