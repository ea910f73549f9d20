package router

import (
	"net/http"
	"time"

	"github.com/0glabs/0g-provider-router/common"
	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
)

// DefaultMaxRetries is the retry limit of the HTTP path when not configured.
const DefaultMaxRetries = 10

// RetryOption configures the backoff between HTTP retries.
type RetryOption struct {
	Interval    time.Duration `default:"300ms"` // wait before the first retry, doubled afterwards
	MaxInterval time.Duration `default:"30s"`   // upper bound of a single wait, Retry-After included
}

// Option configures a Router. Zero values fall back to defaults.
type Option struct {
	MaxRetries     *int          // retries after the first attempt, DefaultMaxRetries if nil
	Retry          RetryOption   // backoff between retries
	RequestTimeout time.Duration // per attempt timeout, none if 0
	HTTPClient     *http.Client  // overrides RequestTimeout if specified
	Locator        ProviderLocator
	LogOption      *common.LogOption
}

// WithMaxRetries sets the retry limit, negative values are clamped to 0.
func (opt *Option) WithMaxRetries(maxRetries int) *Option {
	opt.MaxRetries = &maxRetries
	return opt
}

// WithLocator sets where the injected provider is looked up.
func (opt *Option) WithLocator(locator ProviderLocator) *Option {
	opt.Locator = locator
	return opt
}

func (opt *Option) maxRetries() int {
	if opt.MaxRetries == nil {
		return DefaultMaxRetries
	}

	return max(*opt.MaxRetries, 0)
}

func (opt *Option) httpClient() *http.Client {
	if opt.HTTPClient != nil {
		return opt.HTTPClient
	}

	return &http.Client{Timeout: opt.RequestTimeout}
}

func (opt *Option) locator() ProviderLocator {
	if opt.Locator != nil {
		return opt.Locator
	}

	return Injected.Locator()
}

func (opt *Option) logger() *logrus.Logger {
	if opt.LogOption == nil {
		return common.NewLogger()
	}

	return common.NewLogger(*opt.LogOption)
}

func (opt *Option) normalize() {
	defaults.SetDefaults(&opt.Retry)

	if opt.Retry.MaxInterval < opt.Retry.Interval {
		opt.Retry.MaxInterval = opt.Retry.Interval
	}
}
