package escrow

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/x/token"
)

//----------------- Controller ------------------
//
// The settlement executor: every transition performs its precondition
// checks before the first mutation, and all mutations of one
// transition land in the same cache wrap, so they commit or roll back
// as one unit.

// Controller performs the three escrow transitions.
type Controller struct {
	bucket Bucket
	token  token.Controller
}

// NewController builds the settlement executor on top of the token
// custody operations.
func NewController(tc token.Controller) Controller {
	return Controller{
		bucket: NewBucket(),
		token:  tc,
	}
}

// Load returns the escrow record stored under ref, or ErrNotFound.
func (c Controller) Load(db custodia.KVStore, ref []byte) (*EscrowData, error) {
	obj, err := c.bucket.Get(db, ref)
	if err != nil {
		return nil, err
	}
	rec := AsEscrow(obj)
	if rec == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow record %X", ref)
	}
	return rec, nil
}

// Deposit opens an escrow: it derives the vault and its authority for
// the (depositor, nonce) slot, moves the amount from the depositor's
// associated account into the vault and writes the open record.
// Returns the escrow reference.
//
// A slot holding an open escrow cannot be reused (ErrSlotOccupied). A
// slot whose previous escrow reached a terminal status is reclaimed.
func (c Controller) Deposit(db custodia.KVStore, depositor custodia.Address, nonce uint64,
	amount coin.Coin, receiving custodia.Address, now custodia.UnixTime) ([]byte, error) {

	ref := NewRef(depositor, nonce)

	obj, err := c.bucket.Get(db, ref)
	if err != nil {
		return nil, err
	}
	if prev := AsEscrow(obj); prev != nil && !prev.Status.Terminal() {
		return nil, errors.Wrapf(ErrSlotOccupied, "escrow %X is open", ref)
	}

	// The receiving account must exist and hold the escrowed asset
	// before any funds move.
	held, err := c.token.Balance(db, receiving)
	if err != nil {
		return nil, errors.Wrap(err, "receiving account")
	}
	if held.Ticker != amount.Ticker {
		return nil, errors.Wrapf(token.ErrInvalidAsset,
			"receiving account holds %s, not %s", held.Ticker, amount.Ticker)
	}

	vault, vaultBump, err := Derive(SeedTokenVault, depositor, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	authority, authBump, err := Derive(SeedVaultAuthority, depositor, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "vault authority")
	}

	src := token.AccountAddress(depositor, amount.Ticker)
	if err := c.token.Move(db, src, vault, amount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	rec := &EscrowData{
		Depositor:        depositor,
		Ticker:           amount.Ticker,
		Amount:           amount.Amount,
		ReceivingAccount: receiving,
		Vault:            vault,
		VaultAuthority:   authority,
		VaultBump:        uint32(vaultBump),
		AuthorityBump:    uint32(authBump),
		Status:           StatusOpen,
		CreatedAt:        now,
	}
	if err := c.bucket.Save(db, NewEscrow(ref, rec)); err != nil {
		return nil, err
	}
	return ref, nil
}

// Release settles an open escrow: the full custodied balance moves to
// the receiving account recorded at open time, the vault is retired
// and the record is rewritten in terminal status.
func (c Controller) Release(db custodia.KVStore, ref []byte, receiving custodia.Address) (*EscrowData, error) {
	rec, err := c.Load(db, ref)
	if err != nil {
		return nil, err
	}
	if rec.Status.Terminal() {
		return nil, errors.Wrapf(ErrAlreadyFinalized, "escrow is %s", rec.Status)
	}
	if !receiving.Equals(rec.ReceivingAccount) {
		return nil, errors.Wrapf(ErrAccountMismatch,
			"expected %s, got %s", rec.ReceivingAccount, receiving)
	}
	if err := verifyCustody(ref, rec); err != nil {
		return nil, err
	}

	amount := coin.NewCoin(rec.Amount, rec.Ticker)
	if err := c.token.Move(db, rec.Vault, rec.ReceivingAccount, amount); err != nil {
		return nil, errors.Wrap(err, "release")
	}
	if err := c.token.CloseAccount(db, rec.Vault); err != nil {
		return nil, errors.Wrap(err, "retire vault")
	}

	rec.Status = StatusSettled
	if err := c.bucket.Save(db, NewEscrow(ref, rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

// verifyCustody re-derives the vault and its authority at the bumps
// recorded in the escrow record and checks they match the stored
// addresses. No funds leave a vault whose custody chain cannot be
// reproduced from the slot.
func verifyCustody(ref []byte, rec *EscrowData) error {
	depositor, nonce, err := ParseRef(ref)
	if err != nil {
		return err
	}

	vault, err := DeriveAt(SeedTokenVault, depositor, nonce, uint8(rec.VaultBump))
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if !vault.Equals(rec.Vault) {
		return errors.Wrapf(errors.ErrInvalidModel,
			"vault %s does not match its derivation %s", rec.Vault, vault)
	}

	authority, err := DeriveAt(SeedVaultAuthority, depositor, nonce, uint8(rec.AuthorityBump))
	if err != nil {
		return errors.Wrap(err, "vault authority")
	}
	if !authority.Equals(rec.VaultAuthority) {
		return errors.Wrapf(errors.ErrInvalidModel,
			"vault authority %s does not match its derivation %s", rec.VaultAuthority, authority)
	}
	return nil
}

// Refund aborts an open escrow: the full custodied balance returns to
// the depositor's associated account, the vault is retired and the
// record is rewritten in terminal status.
func (c Controller) Refund(db custodia.KVStore, ref []byte) (*EscrowData, error) {
	rec, err := c.Load(db, ref)
	if err != nil {
		return nil, err
	}
	if rec.Status.Terminal() {
		return nil, errors.Wrapf(ErrAlreadyFinalized, "escrow is %s", rec.Status)
	}
	if err := verifyCustody(ref, rec); err != nil {
		return nil, err
	}

	dest, err := c.token.GetOrCreateAccount(db, rec.Depositor, rec.Ticker)
	if err != nil {
		return nil, errors.Wrap(err, "depositor account")
	}
	amount := coin.NewCoin(rec.Amount, rec.Ticker)
	if err := c.token.Move(db, rec.Vault, dest, amount); err != nil {
		return nil, errors.Wrap(err, "refund")
	}
	if err := c.token.CloseAccount(db, rec.Vault); err != nil {
		return nil, errors.Wrap(err, "retire vault")
	}

	rec.Status = StatusAborted
	if err := c.bucket.Save(db, NewEscrow(ref, rec)); err != nil {
		return nil, err
	}
	return rec, nil
}
