package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGenesisOptions(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	genFile := filepath.Join(dir, "genesis.json")
	orig := `{"chain_id": "test-chain-QmrGRt", "validators": []}`
	require.NoError(t, ioutil.WriteFile(genFile, []byte(orig), 0600))

	options := json.RawMessage(`{"tokens": [{"owner": "CAFE00", "ticker": "CSD", "amount": 1}]}`)
	require.NoError(t, addGenesisOptions(genFile, options))

	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))

	// existing fields survive, app_state is added
	assert.Equal(t, json.RawMessage(`"test-chain-QmrGRt"`), doc["chain_id"])
	assert.JSONEq(t, string(options), string(doc["app_state"]))
}

func TestAddGenesisOptionsMissingFile(t *testing.T) {
	err := addGenesisOptions("/does/not/exist/genesis.json", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	f, err := ioutil.TempFile("", "exists")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	f.Close()

	assert.True(t, fileExists(f.Name()))
	assert.False(t, fileExists(f.Name()+".nope"))
}
