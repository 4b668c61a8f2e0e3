package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-one/custodia/x/token"
)

func TestGenInitOptions(t *testing.T) {
	addr := "C28AE9A6C2D024B8FFF0D2F3D1111DE298AE9A6C"

	cases := map[string]struct {
		args       []string
		wantTicker string
		wantOwner  string
	}{
		"default ticker, generated account": {
			args:       nil,
			wantTicker: "CSD",
		},
		"custom ticker": {
			args:       []string{"FOO"},
			wantTicker: "FOO",
		},
		"custom ticker and account": {
			args:       []string{"BAR", addr},
			wantTicker: "BAR",
			wantOwner:  addr,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := GenInitOptions(tc.args)
			require.NoError(t, err)

			var state struct {
				Tokens []token.GenesisAccount `json:"tokens"`
			}
			require.NoError(t, json.Unmarshal(bz, &state))
			require.Len(t, state.Tokens, 1)

			acct := state.Tokens[0]
			assert.Equal(t, tc.wantTicker, acct.Ticker)
			assert.Equal(t, int64(123456789), acct.Amount)
			require.NoError(t, acct.Owner.Validate())
			if tc.wantOwner != "" {
				assert.Equal(t, tc.wantOwner, acct.Owner.String())
			}
		})
	}
}
