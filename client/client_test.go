package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abci "github.com/tendermint/tendermint/abci/types"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"

	"github.com/custodia-one/custodia/errors"
)

func TestQueryTxByID(t *testing.T) {
	id := TransactionID{0xCA, 0xFE}
	assert.Equal(t, "tx.hash='CAFE'", QueryTxByID(id))
}

func TestResultTxToCommitResult(t *testing.T) {
	ok := &ctypes.ResultTx{
		Hash:   []byte{1, 2},
		Height: 77,
		TxResult: abci.ResponseDeliverTx{
			Data: []byte("payload"),
		},
	}
	res := resultTxToCommitResult(ok)
	require.NoError(t, res.Err)
	assert.Equal(t, int64(77), res.Height)
	assert.Equal(t, []byte("payload"), res.Result.Data)

	code, _ := errors.ABCIInfo(errors.ErrUnauthorized, false)
	failed := &ctypes.ResultTx{
		Hash:   []byte{1, 2},
		Height: 78,
		TxResult: abci.ResponseDeliverTx{
			Code: code,
			Log:  "unauthorized",
		},
	}
	res = resultTxToCommitResult(failed)
	assert.Nil(t, res.Result)
	assert.True(t, errors.ErrUnauthorized.Is(res.Err), "%+v", res.Err)
}
