/*
Package app wires together the extensions into the custodiad ABCI
application: the transaction envelope, the decorator stack and the
message router.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/app"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/store/iavl"
	"github.com/custodia-one/custodia/x"
	"github.com/custodia-one/custodia/x/escrow"
	"github.com/custodia-one/custodia/x/sigs"
	"github.com/custodia-one/custodia/x/token"
	"github.com/custodia-one/custodia/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// TokenControl returns a controller for the token accounts
func TokenControl() token.Controller {
	return token.NewController(token.NewBucket())
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a default router, dispatching to the
// token, escrow and sigs handlers
func Router(authFn x.Authenticator) app.Router {
	r := app.NewRouter()
	ctrl := TokenControl()
	token.RegisterRoutes(r, authFn, ctrl)
	escrow.RegisterRoutes(r, authFn, ctrl)
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/tokens", "/escrows" and "/auth"
func QueryRouter() custodia.QueryRouter {
	r := custodia.NewQueryRouter()
	r.RegisterAll(
		token.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializer combines the genesis initializers of all extensions
func Initializer() custodia.Initializer {
	return chainInitializers(
		token.Initializer{},
		escrow.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() custodia.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h custodia.Handler,
	tx custodia.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	store = store.WithInit(Initializer())
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (custodia.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", path)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into its components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

// chainInitializers lets you initialize many extensions with one function
func chainInitializers(inits ...custodia.Initializer) custodia.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []custodia.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts custodia.Options, kv custodia.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
