package token

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
)

// GenesisAccount is one entry of the "tokens" genesis option. It
// credits the owner's associated account for the given asset.
type GenesisAccount struct {
	Owner  custodia.Address `json:"owner"`
	Ticker string           `json:"ticker"`
	Amount int64            `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ custodia.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account balances from the genesis and
// credit the associated accounts.
func (Initializer) FromGenesis(opts custodia.Options, kv custodia.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("tokens", &accounts); err != nil {
		return err
	}

	ctrl := NewController(NewBucket())
	for i, acct := range accounts {
		addr, err := ctrl.GetOrCreateAccount(kv, acct.Owner, acct.Ticker)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := ctrl.Issue(kv, addr, coin.NewCoin(acct.Amount, acct.Ticker)); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
