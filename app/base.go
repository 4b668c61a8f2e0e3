package app

import (
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
)

// BaseApp adds DeliverTx and CheckTx
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder custodia.TxDecoder
	handler custodia.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder custodia.TxDecoder,
	handler custodia.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return custodia.DeliverTxError(err, b.debug)
	}

	ctx := custodia.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", custodia.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return custodia.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return custodia.CheckTxError(err, b.debug)
	}

	ctx := custodia.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", custodia.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return custodia.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and captures any panics
func (b BaseApp) loadTx(txBytes []byte) (tx custodia.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
