package router

import "github.com/prometheus/client_golang/prometheus"

// routes of dispatched calls
const (
	routeHTTP     = "http"
	routeWallet   = "wallet"
	routeRejected = "rejected"
)

// outcomes of calls on the HTTP path
const (
	outcomeSuccess     = "success"
	outcomeServerError = "server_error"
	outcomeHTTPError   = "http_error"
	outcomeFailure     = "failure"
)

var (
	dispatchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provider_router",
			Name:      "dispatch_total",
			Help:      "Number of dispatched calls by route",
		},
		[]string{"route"},
	)

	httpAttemptCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "provider_router",
			Name:      "http_attempts_total",
			Help:      "Number of HTTP requests posted to the node, retries included",
		},
	)

	httpOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "provider_router",
			Name:      "http_outcomes_total",
			Help:      "Number of calls on the HTTP path by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(dispatchCounter, httpAttemptCounter, httpOutcomeCounter)
}

func outcomeOf(err error) string {
	switch err.(type) {
	case nil:
		return outcomeSuccess
	case *ServerError:
		return outcomeServerError
	case *HTTPError:
		return outcomeHTTPError
	default:
		return outcomeFailure
	}
}
