package cmd

import (
	"time"

	"github.com/0glabs/0g-provider-router/common"
	"github.com/0glabs/0g-provider-router/router"
	"github.com/0glabs/0g-provider-router/wallet"
	providers "github.com/openweb3/go-rpc-provider/provider_wrapper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// routerArgs are flags shared by commands that dispatch calls.
type routerArgs struct {
	url        string
	maxRetries int

	retryInterval    time.Duration
	maxRetryInterval time.Duration
	requestTimeout   time.Duration

	keys []string
}

func (args *routerArgs) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&args.url, "url", "", "Fullnode URL to post non wallet RPC requests")
	cmd.MarkFlagRequired("url")
	cmd.Flags().IntVar(&args.maxRetries, "max-retries", router.DefaultMaxRetries, "Max number of retries on transient HTTP failures")
	cmd.Flags().DurationVar(&args.retryInterval, "retry-interval", 300*time.Millisecond, "Wait before the first retry, doubled for every retry")
	cmd.Flags().DurationVar(&args.maxRetryInterval, "max-retry-interval", 30*time.Second, "Max wait between retries")
	cmd.Flags().DurationVar(&args.requestTimeout, "request-timeout", 0, "Timeout of a single HTTP attempt, 0 for no timeout")

	cmd.Flags().StringSliceVar(&args.keys, "key", nil, "Private keys of the local wallet provider to serve wallet methods")
}

// mustNewRouter creates the router, and installs a wallet provider into the
// injected slot if any key specified.
func (args *routerArgs) mustNewRouter() *router.Router {
	logOption := common.LogOption{Logger: logrus.StandardLogger()}

	if len(args.keys) > 0 {
		provider := wallet.MustNewProvider(args.url, args.keys, wallet.Option{
			NodeOption: providers.Option{
				RetryCount:     args.maxRetries,
				RetryInterval:  args.retryInterval,
				RequestTimeout: args.requestTimeout,
			},
			LogOption: &logOption,
		})

		router.Injected.Set(provider)

		logrus.WithField("accounts", provider.Accounts()).Info("Wallet provider injected")
	}

	option := router.Option{
		Retry: router.RetryOption{
			Interval:    args.retryInterval,
			MaxInterval: args.maxRetryInterval,
		},
		RequestTimeout: args.requestTimeout,
		LogOption:      &logOption,
	}

	return router.MustNewRouter(args.url, *option.WithMaxRetries(args.maxRetries))
}
