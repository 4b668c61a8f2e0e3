package escrow

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x/token"
)

// GenesisEscrow is one entry of the "escrow" genesis option. It funds
// the depositor's associated account with the deposit amount, makes
// sure the receiving party has an account for the asset and opens the
// escrow.
type GenesisEscrow struct {
	Depositor custodia.Address `json:"depositor"`
	Receiver  custodia.Address `json:"receiver"`
	Ticker    string           `json:"ticker"`
	Amount    int64            `json:"amount"`
	Nonce     uint64           `json:"nonce"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ custodia.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial escrows from the genesis and open
// them. Genesis escrows are recorded with a zero creation time.
func (Initializer) FromGenesis(opts custodia.Options, kv custodia.KVStore) error {
	var escrows []GenesisEscrow
	if err := opts.ReadOptions("escrow", &escrows); err != nil {
		return err
	}

	tc := token.NewController(token.NewBucket())
	ctrl := NewController(tc)
	for i, esc := range escrows {
		amount := coin.NewCoin(esc.Amount, esc.Ticker)
		src, err := tc.GetOrCreateAccount(kv, esc.Depositor, esc.Ticker)
		if err != nil {
			return errors.Wrapf(err, "escrow #%d", i)
		}
		if err := tc.Issue(kv, src, amount); err != nil {
			return errors.Wrapf(err, "escrow #%d", i)
		}
		recv, err := tc.GetOrCreateAccount(kv, esc.Receiver, esc.Ticker)
		if err != nil {
			return errors.Wrapf(err, "escrow #%d", i)
		}
		if _, err := ctrl.Deposit(kv, esc.Depositor, esc.Nonce, amount, recv, 0); err != nil {
			return errors.Wrapf(err, "escrow #%d", i)
		}
	}
	return nil
}
