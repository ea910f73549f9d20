package wallet_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/0glabs/0g-provider-router/router"
	"github.com/0glabs/0g-provider-router/wallet"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey1 = "0x289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	testKey2 = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
)

const typedDataJSON = `{
	"types": {
		"EIP712Domain": [
			{"name": "name", "type": "string"},
			{"name": "version", "type": "string"},
			{"name": "chainId", "type": "uint256"},
			{"name": "verifyingContract", "type": "address"}
		],
		"Person": [
			{"name": "name", "type": "string"},
			{"name": "wallet", "type": "address"}
		],
		"Mail": [
			{"name": "from", "type": "Person"},
			{"name": "to", "type": "Person"},
			{"name": "contents", "type": "string"}
		]
	},
	"primaryType": "Mail",
	"domain": {
		"name": "Ether Mail",
		"version": "1",
		"chainId": 1,
		"verifyingContract": "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
	},
	"message": {
		"from": {"name": "Cow", "wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"},
		"to": {"name": "Bob", "wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"},
		"contents": "Hello, Bob!"
	}
}`

func newTestProvider(t *testing.T) (*wallet.Provider, *router.Router) {
	provider, err := wallet.NewProvider("", []string{testKey1, testKey2, testKey1})
	require.NoError(t, err)

	r, err := router.NewRouter("http://127.0.0.1:8545", router.Option{
		Locator: func() interface{} { return provider },
	})
	require.NoError(t, err)

	return provider, r
}

func call[T any](t *testing.T, r *router.Router, method string, params ...interface{}) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return router.CallResult[T](ctx, r, method, params...)
}

func recoverSigner(t *testing.T, hash []byte, sig hexutil.Bytes) common.Address {
	require.Len(t, sig, 65)

	sig = append(hexutil.Bytes(nil), sig...)
	sig[crypto.RecoveryIDOffset] -= 27

	pub, err := crypto.SigToPub(hash, sig)
	require.NoError(t, err)

	return crypto.PubkeyToAddress(*pub)
}

func requireResponseError(t *testing.T, err error, code int) {
	var respErr *router.ResponseError
	require.True(t, errors.As(err, &respErr), "unexpected error %v", err)
	assert.Equal(t, code, respErr.Code)
}

func TestNewProvider(t *testing.T) {
	_, err := wallet.NewProvider("", nil)
	assert.Error(t, err)

	_, err = wallet.NewProvider("", []string{"not a key"})
	assert.Error(t, err)

	provider, _ := newTestProvider(t)
	assert.Len(t, provider.Accounts(), 2)
}

func TestAccounts(t *testing.T) {
	provider, r := newTestProvider(t)

	result, err := call[[]common.Address](t, r, "eth_accounts")
	assert.NoError(t, err)
	assert.Equal(t, provider.Accounts(), result)
}

func TestPersonalSign(t *testing.T) {
	provider, r := newTestProvider(t)
	account := provider.Accounts()[1]

	message := []byte("hello world")

	sig, err := call[hexutil.Bytes](t, r, "personal_sign", hexutil.Encode(message), account.Hex())
	assert.NoError(t, err)
	assert.Equal(t, account, recoverSigner(t, accounts.TextHash(message), sig))

	// plain text message
	sig, err = call[hexutil.Bytes](t, r, "personal_sign", "hello world", account.Hex())
	assert.NoError(t, err)
	assert.Equal(t, account, recoverSigner(t, accounts.TextHash(message), sig))
}

func TestEthSign(t *testing.T) {
	provider, r := newTestProvider(t)
	account := provider.Accounts()[0]

	message := crypto.Keccak256([]byte("data"))

	sig, err := call[hexutil.Bytes](t, r, "eth_sign", account.Hex(), hexutil.Encode(message))
	assert.NoError(t, err)
	assert.Equal(t, account, recoverSigner(t, accounts.TextHash(message), sig))
}

func TestSignTypedData(t *testing.T) {
	provider, r := newTestProvider(t)
	account := provider.Accounts()[0]

	var typedData apitypes.TypedData
	require.NoError(t, json.Unmarshal([]byte(typedDataJSON), &typedData))
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	require.NoError(t, err)

	// typed data as JSON string
	sig, err := call[hexutil.Bytes](t, r, "eth_signTypedData_v3", account.Hex(), typedDataJSON)
	assert.NoError(t, err)
	assert.Equal(t, account, recoverSigner(t, hash, sig))

	// typed data as object
	var object map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(typedDataJSON), &object))
	sig, err = call[hexutil.Bytes](t, r, "eth_signTypedData", account.Hex(), object)
	assert.NoError(t, err)
	assert.Equal(t, account, recoverSigner(t, hash, sig))
}

func TestSignTypedDataLegacy(t *testing.T) {
	provider, r := newTestProvider(t)

	legacy := []map[string]string{{"type": "string", "name": "message", "value": "hi"}}

	_, err := call[hexutil.Bytes](t, r, "eth_signTypedData", legacy, provider.Accounts()[0].Hex())
	requireResponseError(t, err, 4200)
}

func TestSignUnknownAccount(t *testing.T) {
	_, r := newTestProvider(t)

	_, err := call[hexutil.Bytes](t, r, "personal_sign", "0x01", "0x0000000000000000000000000000000000000001")
	requireResponseError(t, err, 4100)
}

func TestSignInvalidParams(t *testing.T) {
	_, r := newTestProvider(t)

	_, err := call[hexutil.Bytes](t, r, "personal_sign", "0x01")
	requireResponseError(t, err, -32602)

	_, err = call[hexutil.Bytes](t, r, "eth_sign", "not an address", "0x01")
	requireResponseError(t, err, -32602)
}

func TestSendTransactionWithoutNode(t *testing.T) {
	provider, r := newTestProvider(t)

	tx := map[string]string{
		"from":  provider.Accounts()[0].Hex(),
		"to":    "0x0000000000000000000000000000000000000001",
		"value": "0x1",
	}

	_, err := call[common.Hash](t, r, "eth_sendTransaction", tx)
	requireResponseError(t, err, -32603)

	tx["from"] = "0x0000000000000000000000000000000000000002"
	_, err = call[common.Hash](t, r, "eth_sendTransaction", tx)
	requireResponseError(t, err, 4100)

	delete(tx, "from")
	_, err = call[common.Hash](t, r, "eth_sendTransaction", tx)
	requireResponseError(t, err, -32602)
}

func TestUnsupportedMethod(t *testing.T) {
	provider, _ := newTestProvider(t)

	ch := make(chan error, 1)
	provider.SendAsync(router.NewPayload("eth_chainId"), func(err error, result json.RawMessage) {
		ch <- err
	})

	requireResponseError(t, <-ch, 4200)
}

func TestResponseEnvelope(t *testing.T) {
	provider, _ := newTestProvider(t)

	payload := router.NewPayload("eth_accounts")

	ch := make(chan json.RawMessage, 1)
	provider.SendAsync(payload, func(err error, result json.RawMessage) {
		ch <- result
	})

	var resp router.Response
	require.NoError(t, json.Unmarshal(<-ch, &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, string(payload.ID), string(resp.ID))
	assert.Nil(t, resp.Error)
}
