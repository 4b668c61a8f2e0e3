package token

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
)

// Controller is the functionality needed by handlers and by other
// extensions moving funds around. BaseController is the standard
// implementation.
type Controller interface {
	// Balance returns the amount held on the account.
	Balance(db custodia.KVStore, addr custodia.Address) (coin.Coin, error)

	// Move transfers the amount between two accounts.
	Move(db custodia.KVStore, src, dest custodia.Address, amount coin.Coin) error

	// Issue credits the account with the given amount, creating it if
	// needed.
	Issue(db custodia.KVStore, dest custodia.Address, amount coin.Coin) error

	// GetOrCreateAccount resolves the associated account of (owner,
	// ticker), creating an empty one if none exists yet, and returns
	// its address.
	GetOrCreateAccount(db custodia.KVStore, owner custodia.Address, ticker string) (custodia.Address, error)

	// CloseAccount removes an empty account from the store.
	CloseAccount(db custodia.KVStore, addr custodia.Address) error
}

// BaseController implements Controller backed by the token bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held on the account. A missing account is
// an error, distinct from an existing account with a zero balance.
func (c BaseController) Balance(db custodia.KVStore, addr custodia.Address) (coin.Coin, error) {
	acct, err := c.bucket.Get(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	if acct == nil {
		return coin.Coin{}, errors.Wrapf(errors.ErrNotFound, "token account %s", addr)
	}
	return acct.Balance(), nil
}

// Move transfers the given amount from src to dest.
// If src doesn't exist, holds a different asset, or doesn't have
// sufficient funds, it fails without touching the store.
func (c BaseController) Move(db custodia.KVStore, src, dest custodia.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive transfer: %v", &amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrNotFound, "source account %s", src)
	}
	if !sender.Balance().SameType(amount) {
		return errors.Wrapf(ErrInvalidAsset, "account holds %s, not %s",
			sender.Data().Ticker, amount.Ticker)
	}
	if !sender.Balance().IsGTE(amount) {
		return errors.Wrap(ErrInsufficientFunds, sender.Balance().String())
	}

	recipient, err := c.bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if recipient == nil {
		recipient = NewAccount(dest, &AccountData{Ticker: amount.Ticker})
	} else if !recipient.Balance().SameType(amount) {
		return errors.Wrapf(ErrInvalidAsset, "destination holds %s, not %s",
			recipient.Data().Ticker, amount.Ticker)
	}

	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Issue attempts to add the given amount to the destination account,
// creating it when missing. Fails if it overflows the account.
func (c BaseController) Issue(db custodia.KVStore, dest custodia.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	recipient, err := c.bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if recipient == nil {
		recipient = NewAccount(dest, &AccountData{Ticker: amount.Ticker})
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	return c.bucket.Save(db, recipient)
}

// GetOrCreateAccount resolves the associated account of (owner, ticker)
// and returns its address. The account is created empty when missing.
func (c BaseController) GetOrCreateAccount(db custodia.KVStore, owner custodia.Address, ticker string) (custodia.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(ErrInvalidAsset, "invalid currency: %s", ticker)
	}

	addr := AccountAddress(owner, ticker)
	acct, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		return addr, nil
	}

	acct = NewAccount(addr, &AccountData{Owner: owner, Ticker: ticker})
	if err := c.bucket.Save(db, acct); err != nil {
		return nil, err
	}
	return addr, nil
}

// CloseAccount removes an account from the store. Only an empty account
// can be closed.
func (c BaseController) CloseAccount(db custodia.KVStore, addr custodia.Address) error {
	acct, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if acct == nil {
		return errors.Wrapf(errors.ErrNotFound, "token account %s", addr)
	}
	if !acct.Balance().IsZero() {
		return errors.Wrapf(errors.ErrInvalidState, "cannot close account holding %s", acct.Balance())
	}
	return c.bucket.Delete(db, addr)
}
