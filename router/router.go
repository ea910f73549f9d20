package router

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Router decides per call whether a JSON-RPC payload goes to the remote node
// over HTTP, or to the injected wallet provider for methods that need local
// key custody.
//
// Routing failures are returned synchronously by Dispatch, while outcomes of
// started calls are reported through the callback. Router is safe for
// concurrent use.
type Router struct {
	url     string
	locator ProviderLocator
	sender  *httpSender
	logger  *logrus.Logger
}

// NewRouter creates a router that posts non wallet methods to url. It does
// not perform any I/O.
func NewRouter(url string, option ...Option) (*Router, error) {
	if len(url) == 0 {
		return nil, errors.New("URL not specified")
	}

	var opt Option
	if len(option) > 0 {
		opt = option[0]
	}
	opt.normalize()

	logger := opt.logger()

	return &Router{
		url:     url,
		locator: opt.locator(),
		sender: &httpSender{
			url:        url,
			client:     opt.httpClient(),
			maxRetries: opt.maxRetries(),
			retry:      opt.Retry,
			logger:     logger,
		},
		logger: logger,
	}, nil
}

// MustNewRouter creates a router and exits the program if failed.
func MustNewRouter(url string, option ...Option) *Router {
	router, err := NewRouter(url, option...)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Fatal("Failed to create provider router")
	}

	return router
}

// URL returns the remote node URL.
func (r *Router) URL() string {
	return r.url
}

// MaxRetries returns the retry limit of the HTTP path.
func (r *Router) MaxRetries() int {
	return r.sender.maxRetries
}

// Dispatch routes the payload and returns immediately.
//
// Non wallet methods are posted to the remote node in background, and the
// callback is invoked exactly once with either the result or the error.
//
// Wallet methods are forwarded to the injected provider, preferring SendAsync
// over Send. The provider owns the callback from then on. If there is no usable
// provider, a *RoutingError is returned and the callback is never invoked.
func (r *Router) Dispatch(payload *Payload, callback Callback) error {
	if payload == nil {
		return errors.New("Payload not specified")
	}

	if callback == nil {
		return errors.New("Callback not specified")
	}

	if !IsWalletMethod(payload.Method) {
		dispatchCounter.WithLabelValues(routeHTTP).Inc()
		go r.sender.send(payload, callback)
		return nil
	}

	provider := r.locator()
	if provider == nil {
		dispatchCounter.WithLabelValues(routeRejected).Inc()
		return &RoutingError{payload.Method, ErrNoProvider}
	}

	send, ok := resolveSendFunc(provider)
	if !ok {
		dispatchCounter.WithLabelValues(routeRejected).Inc()
		return &RoutingError{payload.Method, ErrProviderUnsupported}
	}

	dispatchCounter.WithLabelValues(routeWallet).Inc()

	r.logger.WithField("method", payload.Method).Debug("Forward RPC request to injected provider")

	send(payload, callback)

	return nil
}

// WalletAvailable returns whether wallet methods could be routed to an
// injected provider at the moment.
func (r *Router) WalletAvailable() bool {
	provider := r.locator()
	if provider == nil {
		return false
	}

	_, ok := resolveSendFunc(provider)
	return ok
}
