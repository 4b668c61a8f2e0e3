package coin

import (
	"testing"

	"github.com/custodia-one/custodia/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinValidation(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid positive": {
			coin: NewCoin(42, "FUD"),
		},
		"valid negative": {
			coin: NewCoin(-42, "FUD"),
		},
		"four letter ticker": {
			coin: NewCoin(1, "USDX"),
		},
		"missing ticker": {
			coin:    NewCoin(5, ""),
			wantErr: ErrInvalidAsset,
		},
		"lowercase ticker": {
			coin:    NewCoin(5, "eth"),
			wantErr: ErrInvalidAsset,
		},
		"too long ticker": {
			coin:    NewCoin(5, "DINGDONG"),
			wantErr: ErrInvalidAsset,
		},
		"amount out of range": {
			coin:    NewCoin(MaxAmount+1, "FUD"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
			}
		})
	}
}

func TestAddCombinations(t *testing.T) {
	base := NewCoin(17, "ABC")
	cases := map[string]struct {
		other   Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same currency": {
			other: NewCoin(3, "ABC"),
			want:  NewCoin(20, "ABC"),
		},
		"negative result": {
			other: NewCoin(-42, "ABC"),
			want:  NewCoin(-25, "ABC"),
		},
		"zero with no ticker acts as identity": {
			other: Coin{},
			want:  base,
		},
		"different currency": {
			other:   NewCoin(3, "XYZ"),
			wantErr: ErrInvalidAsset,
		},
		"overflow": {
			other:   NewCoin(MaxAmount, "ABC"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := base.Add(tc.other)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got))
		})
	}
}

func TestSubtract(t *testing.T) {
	got, err := NewCoin(10, "FUD").Subtract(NewCoin(4, "FUD"))
	require.NoError(t, err)
	assert.True(t, NewCoin(6, "FUD").Equals(got))

	// Subtracting below zero is allowed, the caller decides if the
	// result is acceptable.
	got, err = NewCoin(3, "FUD").Subtract(NewCoin(4, "FUD"))
	require.NoError(t, err)
	assert.True(t, NewCoin(-1, "FUD").Equals(got))
}

func TestCompareCoins(t *testing.T) {
	assert.Equal(t, 1, NewCoin(2, "FUD").Compare(NewCoin(1, "FUD")))
	assert.Equal(t, -1, NewCoin(-2, "FUD").Compare(NewCoin(1, "FUD")))
	assert.Equal(t, 0, NewCoin(5, "FUD").Compare(NewCoin(5, "FUD")))

	assert.True(t, NewCoin(5, "FUD").IsGTE(NewCoin(5, "FUD")))
	assert.True(t, NewCoin(6, "FUD").IsGTE(NewCoin(5, "FUD")))
	assert.False(t, NewCoin(4, "FUD").IsGTE(NewCoin(5, "FUD")))
	// Different currencies never compare as greater-or-equal.
	assert.False(t, NewCoin(6, "ABC").IsGTE(NewCoin(5, "FUD")))
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr bool
	}{
		"positive":       {raw: "42 FUD", want: NewCoin(42, "FUD")},
		"negative":       {raw: "-17 ABC", want: NewCoin(-17, "ABC")},
		"no space":       {raw: "5IOV", want: NewCoin(5, "IOV")},
		"missing ticker": {raw: "42", wantErr: true},
		"fractional":     {raw: "1.5 FUD", wantErr: true},
		"garbage":        {raw: "the price is 42 FUD", wantErr: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got))
		})
	}
}

func TestCoinJSONUnmarshal(t *testing.T) {
	var human Coin
	require.NoError(t, human.UnmarshalJSON([]byte(`"250 DOGE"`)))
	assert.True(t, NewCoin(250, "DOGE").Equals(human))

	var obj Coin
	require.NoError(t, obj.UnmarshalJSON([]byte(`{"ticker": "DOGE", "amount": 250}`)))
	assert.True(t, NewCoin(250, "DOGE").Equals(obj))
}

func TestCoinSerialization(t *testing.T) {
	orig := NewCoin(-7, "FUD")
	bz, err := orig.Marshal()
	require.NoError(t, err)

	var loaded Coin
	require.NoError(t, loaded.Unmarshal(bz))
	assert.True(t, orig.Equals(loaded))

	var empty Coin
	require.NoError(t, empty.Unmarshal(nil))
	assert.True(t, Coin{}.Equals(empty))
}
