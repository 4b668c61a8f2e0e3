package escrow

import (
	"encoding/binary"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/orm"
)

// BucketName is where we store the escrow records
const BucketName = "esc"

// RefLength is the size of an escrow reference:
// depositor address plus big endian nonce.
const RefLength = 28

// Status is the escrow state machine position.
type Status int32

const (
	StatusInvalid Status = 0
	StatusOpen    Status = 1
	StatusSettled Status = 2
	StatusAborted Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusSettled:
		return "settled"
	case StatusAborted:
		return "aborted"
	default:
		return "invalid"
	}
}

// Terminal returns true once no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusSettled || s == StatusAborted
}

// NewRef builds the escrow reference addressing one escrow slot.
func NewRef(depositor custodia.Address, nonce uint64) []byte {
	ref := make([]byte, 0, RefLength)
	ref = append(ref, depositor...)
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], nonce)
	return append(ref, raw[:]...)
}

// ParseRef splits an escrow reference into its components.
func ParseRef(ref []byte) (custodia.Address, uint64, error) {
	if len(ref) != RefLength {
		return nil, 0, errors.Wrapf(errors.ErrInvalidInput, "reference must be %d bytes, got %d", RefLength, len(ref))
	}
	depositor := custodia.Address(ref[:custodia.AddressLength])
	nonce := binary.BigEndian.Uint64(ref[custodia.AddressLength:])
	return depositor, nonce, nil
}

//---- EscrowData

// EscrowData is the persistent escrow record. While the status is open
// the Amount field equals the balance custodied by the Vault account.
type EscrowData struct {
	// Depositor is the identity that opened the escrow and is the only
	// one allowed to abort it.
	Depositor custodia.Address
	// Ticker is the escrowed asset.
	Ticker string
	// Amount is the custodied quantity, fixed at open time.
	Amount int64
	// ReceivingAccount is where proceeds must land on settle.
	ReceivingAccount custodia.Address
	// Vault is the derived token account holding the funds.
	Vault custodia.Address
	// VaultAuthority is the derived keyless owner of the vault.
	VaultAuthority custodia.Address
	// VaultBump and AuthorityBump record the derivation bumps, so the
	// addresses can be re-verified without a search.
	VaultBump     uint32
	AuthorityBump uint32
	// Status is the state machine position.
	Status Status
	// CreatedAt is the block time at open. Recorded only, nothing
	// enforces an expiry.
	CreatedAt custodia.UnixTime
}

var _ orm.CloneableData = (*EscrowData)(nil)

func (e *EscrowData) Validate() error {
	if err := e.Depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	if !coin.IsCC(e.Ticker) {
		return errors.Field("Ticker", coin.ErrInvalidAsset, "invalid currency: %s", e.Ticker)
	}
	if e.Amount <= 0 {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	if err := e.ReceivingAccount.Validate(); err != nil {
		return errors.Wrap(err, "receiving account")
	}
	if err := e.Vault.Validate(); err != nil {
		return errors.Wrap(err, "vault")
	}
	if err := e.VaultAuthority.Validate(); err != nil {
		return errors.Wrap(err, "vault authority")
	}
	if e.VaultBump > 255 || e.AuthorityBump > 255 {
		return errors.Field("VaultBump", errors.ErrInvalidModel, "bump out of range")
	}
	switch e.Status {
	case StatusOpen, StatusSettled, StatusAborted:
	default:
		return errors.Field("Status", errors.ErrInvalidState, "unknown status %d", e.Status)
	}
	return nil
}

// Copy makes a new EscrowData with the same values
func (e *EscrowData) Copy() orm.CloneableData {
	return &EscrowData{
		Depositor:        append(custodia.Address(nil), e.Depositor...),
		Ticker:           e.Ticker,
		Amount:           e.Amount,
		ReceivingAccount: append(custodia.Address(nil), e.ReceivingAccount...),
		Vault:            append(custodia.Address(nil), e.Vault...),
		VaultAuthority:   append(custodia.Address(nil), e.VaultAuthority...),
		VaultBump:        e.VaultBump,
		AuthorityBump:    e.AuthorityBump,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
	}
}

//-------------------- Object Wrapper -------

// AsEscrow will safely type-cast any value from the Bucket
func AsEscrow(obj orm.Object) *EscrowData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*EscrowData)
}

// NewEscrow wraps the data into an object storable under its reference
func NewEscrow(ref []byte, data *EscrowData) orm.Object {
	return orm.NewSimpleObj(ref, data)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the bucket holding the escrow records
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewEscrow(nil, new(EscrowData))),
	}
}
