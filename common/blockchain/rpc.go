package blockchain

import (
	"github.com/mcuadros/go-defaults"
	providers "github.com/openweb3/go-rpc-provider/provider_wrapper"
	"github.com/openweb3/web3go"
	"github.com/openweb3/web3go/signers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var Web3LogEnabled bool

func MustNewWeb3(url string, keys []string, opt ...providers.Option) *web3go.Client {
	client, err := NewWeb3(url, keys, opt...)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Fatal("Failed to connect to fullnode")
	}

	return client
}

// NewWeb3 creates a web3 client that signs transactions with the specified
// hex encoded private keys.
func NewWeb3(url string, keys []string, opt ...providers.Option) (*web3go.Client, error) {
	if len(keys) == 0 {
		return nil, errors.New("Private keys not specified")
	}

	sm := signers.MustNewSignerManagerByPrivateKeyStrings(keys)

	option := new(web3go.ClientOption)
	if len(opt) > 0 {
		option.Option = opt[0]
	}
	defaults.SetDefaults(&option.Option)
	option.WithSignerManager(sm)

	if Web3LogEnabled {
		option = option.WithLooger(logrus.StandardLogger().Out)
	}

	return web3go.NewClientWithOption(url, *option)
}
