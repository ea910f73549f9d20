package wallet

import (
	"context"
	"encoding/json"

	"github.com/0glabs/0g-provider-router/router"
	"github.com/ethereum/go-ethereum/accounts"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/openweb3/web3go/types"
	"github.com/pkg/errors"
)

// personal_sign: [message, account]
func (p *Provider) personalSign(payload *router.Payload) (hexutil.Bytes, error) {
	message, err := decodeMessage(payload, 0)
	if err != nil {
		return nil, err
	}

	account, err := decodeAddress(payload, 1)
	if err != nil {
		return nil, err
	}

	return p.signHash(account, accounts.TextHash(message))
}

// eth_sign: [account, message]
func (p *Provider) ethSign(payload *router.Payload) (hexutil.Bytes, error) {
	account, err := decodeAddress(payload, 0)
	if err != nil {
		return nil, err
	}

	var message hexutil.Bytes
	if err = decodeParam(payload, 1, &message); err != nil {
		return nil, err
	}

	return p.signHash(account, accounts.TextHash(message))
}

// signTypedData signs EIP-712 typed data.
func (p *Provider) signTypedData(payload *router.Payload, accountIndex, dataIndex int) (hexutil.Bytes, error) {
	account, err := decodeAddress(payload, accountIndex)
	if err != nil {
		return nil, err
	}

	raw, err := decodeRaw(payload, dataIndex)
	if err != nil {
		return nil, err
	}

	var typedData apitypes.TypedData
	if err = json.Unmarshal(raw, &typedData); err != nil {
		return nil, errInvalidParams("Invalid typed data: %v", err)
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, errInvalidParams("Failed to hash typed data: %v", err)
	}

	return p.signHash(account, hash)
}

// signTypedDataLegacy serves eth_signTypedData. Many dapps send EIP-712 typed
// data to it in the [account, data] order, which is accepted. The legacy
// array layout ([data, account]) is not supported.
func (p *Provider) signTypedDataLegacy(payload *router.Payload) (hexutil.Bytes, error) {
	if _, err := decodeAddress(payload, 0); err == nil {
		return p.signTypedData(payload, 0, 1)
	}

	return nil, errUnsupportedMethod("eth_signTypedData with legacy typed data")
}

// signHash signs hash with the key of account, in the [R || S || V] format
// where V is 27 or 28.
func (p *Provider) signHash(account ethCommon.Address, hash []byte) (hexutil.Bytes, error) {
	key, err := p.key(account)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, errInternal(err)
	}

	sig[crypto.RecoveryIDOffset] += 27

	return sig, nil
}

// eth_sendTransaction: [transaction]
func (p *Provider) sendTransaction(ctx context.Context, payload *router.Payload) (ethCommon.Hash, error) {
	var args types.TransactionArgs
	if err := decodeParam(payload, 0, &args); err != nil {
		return ethCommon.Hash{}, err
	}

	if args.From == nil {
		return ethCommon.Hash{}, errInvalidParams("Transaction sender not specified")
	}

	if _, err := p.key(*args.From); err != nil {
		return ethCommon.Hash{}, err
	}

	if p.client == nil {
		return ethCommon.Hash{}, errInternal(errors.New("Node not configured to send transaction"))
	}

	txHash, err := p.client.WithContext(ctx).Eth.SendTransactionByArgs(args)
	if err != nil {
		return ethCommon.Hash{}, errInternal(errors.WithMessage(err, "Failed to send transaction"))
	}

	p.logger.WithField("hash", txHash).WithField("from", args.From).Info("Transaction sent to blockchain")

	return txHash, nil
}
