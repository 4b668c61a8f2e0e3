package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/crypto"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the ticker as the first argument and the account
// address (hex) as the second one.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "CSD"
	if len(args) > 0 {
		ticker = args[0]
	}

	var addr string
	if len(args) > 1 {
		addr = args[1]
	} else {
		// if no address provided, auto-generate one
		// and print out a recovery phrase
		bz, phrase, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz.String()
		fmt.Println(phrase)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"tokens": array{
			dict{
				"owner":  addr,
				"ticker": ticker,
				"amount": 123456789,
			},
		},
	})
}

// GenerateApp is used to create a stub for the server start command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "abci.db")
	}

	stack := Stack()
	application, err := Application("custodia", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// GenerateCoinKey returns the address of a public key,
// along with the secret phrase to recover the private key.
// You can give tokens to this address and return the recovery
// phrase to the user to access them.
func GenerateCoinKey() (custodia.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()
	return addr, "TODO: add a recovery phrase", nil
}
