package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/custodiatest"
	"github.com/custodia-one/custodia/errors"
	"github.com/custodia-one/custodia/store"
)

func TestGetOrCreateAccount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	owner := custodiatest.NewCondition().Address()

	addr, err := ctrl.GetOrCreateAccount(db, owner, "FUD")
	require.NoError(t, err)
	assert.Equal(t, AccountAddress(owner, "FUD"), addr)

	// Resolving again yields the same address and does not reset state.
	require.NoError(t, ctrl.Issue(db, addr, coin.NewCoin(50, "FUD")))
	again, err := ctrl.GetOrCreateAccount(db, owner, "FUD")
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	// Different asset, different account.
	other, err := ctrl.GetOrCreateAccount(db, owner, "DOGE")
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)

	// Bad ticker is rejected.
	if _, err := ctrl.GetOrCreateAccount(db, owner, "bad ticker"); !ErrInvalidAsset.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestIssueAndBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := custodiatest.NewCondition().Address()

	// Missing account has no balance, not a zero balance.
	if _, err := ctrl.Balance(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	require.NoError(t, ctrl.Issue(db, addr, coin.NewCoin(123, "FUD")))
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(123, "FUD").Equals(got))

	// Issue is additive.
	require.NoError(t, ctrl.Issue(db, addr, coin.NewCoin(7, "FUD")))
	got, err = ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, coin.NewCoin(130, "FUD").Equals(got))

	// Issuing more than the account can hold fails.
	err = ctrl.Issue(db, addr, coin.NewCoin(coin.MaxAmount, "FUD"))
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
}

func TestMoveCoins(t *testing.T) {
	type account struct {
		addr    custodia.Address
		balance coin.Coin
	}

	src := custodiatest.NewCondition().Address()
	dest := custodiatest.NewCondition().Address()

	cases := map[string]struct {
		initSrc  *coin.Coin
		initDest *coin.Coin
		amount   coin.Coin
		wantErr  *errors.Error
		wantSrc  coin.Coin
		wantDest coin.Coin
	}{
		"happy path": {
			initSrc:  coin.NewCoinp(100, "FUD"),
			amount:   coin.NewCoin(40, "FUD"),
			wantSrc:  coin.NewCoin(60, "FUD"),
			wantDest: coin.NewCoin(40, "FUD"),
		},
		"entire balance": {
			initSrc:  coin.NewCoinp(100, "FUD"),
			initDest: coin.NewCoinp(5, "FUD"),
			amount:   coin.NewCoin(100, "FUD"),
			wantSrc:  coin.NewCoin(0, "FUD"),
			wantDest: coin.NewCoin(105, "FUD"),
		},
		"insufficient funds": {
			initSrc: coin.NewCoinp(30, "FUD"),
			amount:  coin.NewCoin(40, "FUD"),
			wantErr: ErrInsufficientFunds,
		},
		"missing source": {
			amount:  coin.NewCoin(40, "FUD"),
			wantErr: errors.ErrNotFound,
		},
		"asset mismatch on source": {
			initSrc: coin.NewCoinp(100, "DOGE"),
			amount:  coin.NewCoin(40, "FUD"),
			wantErr: ErrInvalidAsset,
		},
		"asset mismatch on destination": {
			initSrc:  coin.NewCoinp(100, "FUD"),
			initDest: coin.NewCoinp(5, "DOGE"),
			amount:   coin.NewCoin(40, "FUD"),
			wantErr:  ErrInvalidAsset,
		},
		"non-positive amount": {
			initSrc: coin.NewCoinp(100, "FUD"),
			amount:  coin.NewCoin(0, "FUD"),
			wantErr: errors.ErrInvalidAmount,
		},
		"negative amount": {
			initSrc: coin.NewCoinp(100, "FUD"),
			amount:  coin.NewCoin(-4, "FUD"),
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())

			if tc.initSrc != nil {
				require.NoError(t, ctrl.Issue(db, src, *tc.initSrc))
			}
			if tc.initDest != nil {
				require.NoError(t, ctrl.Issue(db, dest, *tc.initDest))
			}

			err := ctrl.Move(db, src, dest, tc.amount)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)

			gotSrc, err := ctrl.Balance(db, src)
			require.NoError(t, err)
			assert.True(t, tc.wantSrc.Equals(gotSrc))
			gotDest, err := ctrl.Balance(db, dest)
			require.NoError(t, err)
			assert.True(t, tc.wantDest.Equals(gotDest))
		})
	}
}

func TestCloseAccount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := custodiatest.NewCondition().Address()
	sink := custodiatest.NewCondition().Address()

	// Missing account cannot be closed.
	if err := ctrl.CloseAccount(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	require.NoError(t, ctrl.Issue(db, addr, coin.NewCoin(10, "FUD")))

	// Funded account cannot be closed.
	if err := ctrl.CloseAccount(db, addr); !errors.ErrInvalidState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	// Drained account can.
	require.NoError(t, ctrl.Move(db, addr, sink, coin.NewCoin(10, "FUD")))
	require.NoError(t, ctrl.CloseAccount(db, addr))

	if _, err := ctrl.Balance(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("closed account still present: %+v", err)
	}
}
