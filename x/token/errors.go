package token

import (
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/errors"
)

var (
	// ErrInsufficientFunds is raised when a move would overdraw the
	// source account.
	ErrInsufficientFunds = errors.Register(1020, "insufficient funds")

	// ErrInvalidAsset covers malformed tickers and operations mixing
	// two different assets.
	ErrInvalidAsset = coin.ErrInvalidAsset
)
