package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"strings"

	"github.com/0glabs/0g-provider-router/common"
	"github.com/0glabs/0g-provider-router/common/blockchain"
	"github.com/0glabs/0g-provider-router/router"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	providers "github.com/openweb3/go-rpc-provider/provider_wrapper"
	"github.com/openweb3/web3go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Requires `Provider` could be injected into a router.
var _ router.AsyncSender = (*Provider)(nil)

// Option configures a Provider.
type Option struct {
	NodeOption providers.Option // options of the node to send transactions
	LogOption  *common.LogOption
}

// Provider is a wallet provider that holds private keys locally. It serves
// the wallet methods of a router and sends signed transactions to the node.
type Provider struct {
	accounts []ethCommon.Address
	keys     map[ethCommon.Address]*ecdsa.PrivateKey

	client *web3go.Client // nil if node not configured
	logger *logrus.Logger
}

// NewProvider creates a provider for the hex encoded private keys. The
// optional nodeURL is required to serve eth_sendTransaction.
func NewProvider(nodeURL string, keys []string, option ...Option) (*Provider, error) {
	if len(keys) == 0 {
		return nil, errors.New("Private keys not specified")
	}

	var opt Option
	if len(option) > 0 {
		opt = option[0]
	}

	provider := Provider{
		keys:   make(map[ethCommon.Address]*ecdsa.PrivateKey),
		logger: common.NewLogger(),
	}

	if opt.LogOption != nil {
		provider.logger = common.NewLogger(*opt.LogOption)
	}

	hexKeys := make([]string, 0, len(keys))
	for i, v := range keys {
		hexKey := strings.TrimPrefix(v, "0x")

		key, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			return nil, errors.WithMessagef(err, "Invalid private key #%v", i)
		}

		account := crypto.PubkeyToAddress(key.PublicKey)
		if _, ok := provider.keys[account]; ok {
			continue
		}

		provider.accounts = append(provider.accounts, account)
		provider.keys[account] = key
		hexKeys = append(hexKeys, hexKey)
	}

	if len(nodeURL) > 0 {
		client, err := blockchain.NewWeb3(nodeURL, hexKeys, opt.NodeOption)
		if err != nil {
			return nil, errors.WithMessage(err, "Failed to create web3 client")
		}

		provider.client = client
	}

	return &provider, nil
}

// MustNewProvider creates a provider and exits the program if failed.
func MustNewProvider(nodeURL string, keys []string, option ...Option) *Provider {
	provider, err := NewProvider(nodeURL, keys, option...)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create wallet provider")
	}

	return provider
}

// Accounts returns the managed accounts in the order of keys.
func (p *Provider) Accounts() []ethCommon.Address {
	return append([]ethCommon.Address(nil), p.accounts...)
}

// SendAsync serves the payload in background and reports a JSON-RPC response
// through callback. Failures are reported as *router.ResponseError.
func (p *Provider) SendAsync(payload *router.Payload, callback router.Callback) {
	go func() {
		result, err := p.handle(context.Background(), payload)
		if err != nil {
			p.logger.WithError(err).WithField("method", payload.Method).Debug("Failed to serve wallet method")
			callback(err, nil)
			return
		}

		resp, err := router.NewResponse(payload, result)
		if err != nil {
			callback(errInternal(err), nil)
			return
		}

		callback(nil, resp)
	}()
}

func (p *Provider) handle(ctx context.Context, payload *router.Payload) (interface{}, error) {
	switch payload.Method {
	case "eth_accounts":
		return p.Accounts(), nil
	case "personal_sign":
		return p.personalSign(payload)
	case "eth_sign":
		return p.ethSign(payload)
	case "eth_signTypedData_v3":
		return p.signTypedData(payload, 0, 1)
	case "eth_signTypedData":
		return p.signTypedDataLegacy(payload)
	case "eth_sendTransaction":
		return p.sendTransaction(ctx, payload)
	default:
		return nil, errUnsupportedMethod(payload.Method)
	}
}

func (p *Provider) key(account ethCommon.Address) (*ecdsa.PrivateKey, error) {
	key, ok := p.keys[account]
	if !ok {
		return nil, errUnauthorized(account)
	}

	return key, nil
}

// decodeRaw decodes the index-th param, unquoting JSON documents passed as string.
func decodeRaw(payload *router.Payload, index int) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := decodeParam(payload, index, &raw); err != nil {
		return nil, err
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return json.RawMessage(str), nil
	}

	return raw, nil
}
