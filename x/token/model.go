package token

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/orm"
)

// BucketName is where we store the token accounts
const BucketName = "token"

//---- AccountData

// AccountData is the persistent state of a single token account. The
// account holds a balance of exactly one asset.
type AccountData struct {
	// Owner is the address controlling this account. Derived accounts
	// (vaults) have no owner and are controlled by their authority
	// condition instead.
	Owner custodia.Address
	// Ticker is the asset held by this account.
	Ticker string
	// Balance is the amount held, in whole units of the asset.
	Balance int64
}

var _ orm.CloneableData = (*AccountData)(nil)

func (a *AccountData) Validate() error {
	if !coin.IsCC(a.Ticker) {
		return errors.Field("Ticker", coin.ErrInvalidAsset, "invalid currency: %s", a.Ticker)
	}
	if a.Balance < 0 {
		return errors.Field("Balance", errors.ErrInvalidAmount, "negative balance")
	}
	if a.Owner != nil {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

// Copy makes a new AccountData with the same values
func (a *AccountData) Copy() orm.CloneableData {
	return &AccountData{
		Owner:   append(custodia.Address(nil), a.Owner...),
		Ticker:  a.Ticker,
		Balance: a.Balance,
	}
}

//--- Account (AccountData + key)

// Account is a type-safe wrapper connecting account state to its
// address, usable with the Bucket.
type Account struct {
	key   []byte
	value *AccountData
}

var _ orm.Object = (*Account)(nil)

// NewAccount creates an account under the given address
func NewAccount(key custodia.Address, data *AccountData) *Account {
	if data == nil {
		data = new(AccountData)
	}
	return &Account{key: key, value: data}
}

// Value gets the value stored in the object
func (a Account) Value() custodia.Persistent {
	return a.value
}

// Key returns the key to store the object under
func (a Account) Key() []byte {
	return a.key
}

// Data returns the typed account state
func (a Account) Data() *AccountData {
	return a.value
}

// Balance returns the account balance as a coin
func (a Account) Balance() coin.Coin {
	return coin.NewCoin(a.value.Balance, a.value.Ticker)
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator
func (a Account) Validate() error {
	if len(a.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	return a.value.Validate()
}

// SetKey may be used to update the account key
func (a *Account) SetKey(key []byte) {
	a.key = key
}

// Clone will make a copy of this object
func (a *Account) Clone() orm.Object {
	res := &Account{
		value: a.value.Copy().(*AccountData),
	}
	if len(a.key) > 0 {
		res.key = append([]byte(nil), a.key...)
	}
	return res
}

// Add modifies the account balance by the given amount
func (a *Account) Add(c coin.Coin) error {
	sum, err := a.Balance().Add(c)
	if err != nil {
		return err
	}
	if sum.Amount < 0 {
		return errors.Wrap(ErrInsufficientFunds, a.Balance().String())
	}
	a.value.Ticker = sum.Ticker
	a.value.Balance = sum.Amount
	return nil
}

// Subtract modifies the account balance to remove the given amount
func (a *Account) Subtract(c coin.Coin) error {
	return a.Add(c.Negative())
}

//--- token.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a token.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewAccount(nil, nil)),
	}
}

func (b Bucket) Get(db custodia.KVStore, key custodia.Address) (*Account, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Account), nil
}

func (b Bucket) Save(db custodia.KVStore, acct *Account) error {
	return b.Bucket.Save(db, acct)
}

// AccountAddress returns the deterministic associated address holding
// the given owner's balance of the given asset.
func AccountAddress(owner custodia.Address, ticker string) custodia.Address {
	data := make([]byte, 0, len(owner)+len(ticker))
	data = append(data, owner...)
	data = append(data, ticker...)
	return custodia.NewCondition("token", "account", data).Address()
}
