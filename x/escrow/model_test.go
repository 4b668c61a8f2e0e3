package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-one/custodia/custodiatest"
	"github.com/custodia-one/custodia/errors"
)

func TestRefRoundtrip(t *testing.T) {
	depositor := custodiatest.NewCondition().Address()

	ref := NewRef(depositor, 88)
	require.Len(t, ref, RefLength)

	gotAddr, gotNonce, err := ParseRef(ref)
	require.NoError(t, err)
	assert.True(t, depositor.Equals(gotAddr))
	assert.Equal(t, uint64(88), gotNonce)

	_, _, err = ParseRef(ref[:10])
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusInvalid.Terminal())
	assert.False(t, StatusOpen.Terminal())
	assert.True(t, StatusSettled.Terminal())
	assert.True(t, StatusAborted.Terminal())
}
