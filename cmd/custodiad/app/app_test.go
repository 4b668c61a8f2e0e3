package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/app"
	"github.com/custodia-one/custodia/coin"
	"github.com/custodia-one/custodia/crypto"
	"github.com/custodia-one/custodia/x/escrow"
	"github.com/custodia-one/custodia/x/sigs"
	"github.com/custodia-one/custodia/x/token"
)

const testTicker = "CSD"

func testInitChain(t *testing.T, myApp app.BaseApp, chainID string, depositor, receiver custodia.Address) {
	appState := fmt.Sprintf(`{
            "tokens": [{
                "owner": "%s",
                "ticker": "%s",
                "amount": 50000
            }, {
                "owner": "%s",
                "ticker": "%s",
                "amount": 100
            }]}`, depositor, testTicker, receiver, testTicker)
	assert.Equal(t, "", myApp.GetChainID())
	myApp.InitChain(abci.RequestInitChain{
		AppStateBytes: []byte(appState),
		ChainId:       chainID,
	})
	assert.Equal(t, chainID, myApp.GetChainID())
}

// testCommit will commit at height h and return the new app hash
func testCommit(t *testing.T, myApp app.BaseApp, h int64) []byte {
	header := abci.Header{
		Height:  h,
		ChainID: myApp.GetChainID(),
		Time:    time.Unix(5000+h, 0),
	}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: header})
	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.NotEmpty(t, cres.Data)
	return cres.Data
}

func testQuery(t *testing.T, myApp app.BaseApp, path string, key []byte, obj custodia.Persistent) {
	qres := myApp.Query(abci.RequestQuery{
		Path: path,
		Data: key,
	})
	require.Equal(t, uint32(0), qres.Code, "%#v", qres)
	require.NotEmpty(t, qres.Value, "%s %X", path, key)
	err := app.UnmarshalOneResult(qres.Value, obj)
	require.NoError(t, err)
}

func testBalance(t *testing.T, myApp app.BaseApp, owner custodia.Address) int64 {
	var acct token.AccountData
	testQuery(t, myApp, "/tokens", token.AccountAddress(owner, testTicker), &acct)
	assert.Equal(t, testTicker, acct.Ticker)
	return acct.Balance
}

// testDeliverTx signs the tx and sends it through the full stack
// in a block at height h, requiring both check and deliver to pass
func testDeliverTx(t *testing.T, myApp app.BaseApp, h int64,
	tx *Tx, signer *crypto.PrivateKey, seq int64) abci.ResponseDeliverTx {

	sig, err := sigs.SignTx(signer, tx, myApp.GetChainID(), seq)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	txBytes, err := tx.Marshal()
	require.NoError(t, err)
	require.NotEmpty(t, txBytes)

	header := abci.Header{
		Height:  h,
		ChainID: myApp.GetChainID(),
		Time:    time.Unix(5000+h, 0),
	}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: header})
	chres := myApp.CheckTx(txBytes)
	require.Equal(t, uint32(0), chres.Code, chres.Log)
	dres := myApp.DeliverTx(txBytes)
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	return dres
}

func TestAppSettlement(t *testing.T) {
	chainID := "test-net-22"
	abciApp, err := GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)
	myApp := abciApp.(app.BaseApp)

	depositor := crypto.GenPrivKeyEd25519()
	depositorAddr := depositor.PublicKey().Address()
	receiver := crypto.GenPrivKeyEd25519()
	receiverAddr := receiver.PublicKey().Address()
	recvAcct := token.AccountAddress(receiverAddr, testTicker)

	testInitChain(t, myApp, chainID, depositorAddr, receiverAddr)
	hash1 := testCommit(t, myApp, 1)

	assert.Equal(t, int64(50000), testBalance(t, myApp, depositorAddr))
	assert.Equal(t, int64(100), testBalance(t, myApp, receiverAddr))

	// open an escrow for 2000 CSD
	open := &Tx{OpenMsg: &escrow.OpenMsg{
		Amount:           coin.NewCoinp(2000, testTicker),
		Nonce:            1,
		ReceivingAccount: recvAcct,
	}}
	dres := testDeliverTx(t, myApp, 2, open, depositor, 0)
	ref := dres.Data
	require.Len(t, ref, escrow.RefLength)
	// the deliver result is tagged with the message path
	if assert.Equal(t, 1, len(dres.Tags)) {
		assert.Equal(t, []byte("action"), dres.Tags[0].Key)
		assert.Equal(t, []byte("escrow/open"), dres.Tags[0].Value)
	}
	hash2 := testCommit(t, myApp, 2)
	assert.NotEqual(t, hash1, hash2)

	// funds moved into the vault, record is open
	assert.Equal(t, int64(48000), testBalance(t, myApp, depositorAddr))
	var rec escrow.EscrowData
	testQuery(t, myApp, "/escrows", ref, &rec)
	assert.Equal(t, escrow.StatusOpen, rec.Status)
	assert.Equal(t, int64(2000), rec.Amount)
	assert.Equal(t, depositorAddr, rec.Depositor)
	assert.Equal(t, recvAcct, rec.ReceivingAccount)
	assert.Equal(t, custodia.AsUnixTime(time.Unix(5002, 0)), rec.CreatedAt)

	// anyone may settle, paying the recorded account
	settle := &Tx{SettleMsg: &escrow.SettleMsg{
		Ref:              ref,
		ReceivingAccount: recvAcct,
	}}
	testDeliverTx(t, myApp, 3, settle, receiver, 0)
	testCommit(t, myApp, 3)

	assert.Equal(t, int64(2100), testBalance(t, myApp, receiverAddr))
	assert.Equal(t, int64(48000), testBalance(t, myApp, depositorAddr))
	var done escrow.EscrowData
	testQuery(t, myApp, "/escrows", ref, &done)
	assert.Equal(t, escrow.StatusSettled, done.Status)
}

func TestAppAbort(t *testing.T) {
	chainID := "test-net-23"
	abciApp, err := GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)
	myApp := abciApp.(app.BaseApp)

	depositor := crypto.GenPrivKeyEd25519()
	depositorAddr := depositor.PublicKey().Address()
	receiver := crypto.GenPrivKeyEd25519()
	receiverAddr := receiver.PublicKey().Address()

	testInitChain(t, myApp, chainID, depositorAddr, receiverAddr)
	testCommit(t, myApp, 1)

	open := &Tx{OpenMsg: &escrow.OpenMsg{
		Amount:           coin.NewCoinp(700, testTicker),
		Nonce:            9,
		ReceivingAccount: token.AccountAddress(receiverAddr, testTicker),
	}}
	dres := testDeliverTx(t, myApp, 2, open, depositor, 0)
	ref := dres.Data
	testCommit(t, myApp, 2)
	assert.Equal(t, int64(49300), testBalance(t, myApp, depositorAddr))

	// the depositor walks away with a full refund
	abort := &Tx{AbortMsg: &escrow.AbortMsg{Ref: ref}}
	testDeliverTx(t, myApp, 3, abort, depositor, 1)
	testCommit(t, myApp, 3)

	assert.Equal(t, int64(50000), testBalance(t, myApp, depositorAddr))
	assert.Equal(t, int64(100), testBalance(t, myApp, receiverAddr))
	var rec escrow.EscrowData
	testQuery(t, myApp, "/escrows", ref, &rec)
	assert.Equal(t, escrow.StatusAborted, rec.Status)

	// a finalized escrow cannot be settled afterwards
	settle := &Tx{SettleMsg: &escrow.SettleMsg{
		Ref:              ref,
		ReceivingAccount: token.AccountAddress(receiverAddr, testTicker),
	}}
	sig, err := sigs.SignTx(receiver, settle, myApp.GetChainID(), 0)
	require.NoError(t, err)
	settle.Signatures = []*sigs.StdSignature{sig}
	txBytes, err := settle.Marshal()
	require.NoError(t, err)

	header := abci.Header{Height: 4, ChainID: chainID, Time: time.Unix(5004, 0)}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: header})
	res := myApp.DeliverTx(txBytes)
	assert.NotEqual(t, uint32(0), res.Code)
	testCommit(t, myApp, 4)
}

func TestAppSendTx(t *testing.T) {
	chainID := "test-net-24"
	abciApp, err := GenerateApp("", log.NewNopLogger(), true)
	require.NoError(t, err)
	myApp := abciApp.(app.BaseApp)

	sender := crypto.GenPrivKeyEd25519()
	senderAddr := sender.PublicKey().Address()
	rcpt := crypto.GenPrivKeyEd25519()
	rcptAddr := rcpt.PublicKey().Address()

	testInitChain(t, myApp, chainID, senderAddr, rcptAddr)
	testCommit(t, myApp, 1)

	// Src is left empty so the handler resolves the signer's own account.
	send := &Tx{SendMsg: &token.SendMsg{
		Dest:   token.AccountAddress(rcptAddr, testTicker),
		Amount: coin.NewCoinp(123, testTicker),
		Memo:   "have a great trip",
	}}
	testDeliverTx(t, myApp, 2, send, sender, 0)
	testCommit(t, myApp, 2)

	assert.Equal(t, int64(49877), testBalance(t, myApp, senderAddr))
	assert.Equal(t, int64(223), testBalance(t, myApp, rcptAddr))
}
