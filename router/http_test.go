package router

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServerErrorPayload(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusBadRequest, `{"error": "boom"}`))
	router := newTestRouter(t, node.server.URL, 3, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	assert.Nil(t, res.result)

	var serverErr *ServerError
	require.True(t, errors.As(res.err, &serverErr))
	assert.Equal(t, http.StatusBadRequest, serverErr.StatusCode)
	assert.JSONEq(t, `{"error":"boom"}`, string(serverErr.Payload))

	var decoded map[string]string
	assert.NoError(t, serverErr.Decode(&decoded))
	assert.Equal(t, "boom", decoded["error"])

	var httpErr *HTTPError
	assert.False(t, errors.As(res.err, &httpErr))

	// 400 is not transient
	assert.Equal(t, int32(1), node.requests.Load())
}

func TestHTTPUnparsableErrorBody(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusBadGateway, `<html>bad gateway</html>`))
	router := newTestRouter(t, node.server.URL, 1, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	assert.Nil(t, res.result)

	var httpErr *HTTPError
	require.True(t, errors.As(res.err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, node.server.URL, httpErr.URL)
	assert.Equal(t, "eth_call", httpErr.Method)
	assert.Equal(t, "<html>bad gateway</html>", string(httpErr.Body))

	var serverErr *ServerError
	assert.False(t, errors.As(res.err, &serverErr))
}

func TestHTTPEmptyErrorBody(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusNotFound, ``))
	router := newTestRouter(t, node.server.URL, 0, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	var httpErr *HTTPError
	assert.True(t, errors.As(res.err, &httpErr))
}

func TestHTTPUnparsableResult(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusOK, `not json`))
	router := newTestRouter(t, node.server.URL, 0, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	assert.Error(t, res.err)
	assert.Nil(t, res.result)
}

func TestHTTPEmptyResult(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusNoContent, ``))
	router := newTestRouter(t, node.server.URL, 0, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	assert.NoError(t, res.err)
	assert.Nil(t, res.result)
}

func TestHTTPTransportFailure(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusOK, `{}`))
	endpoint := node.server.URL
	node.server.Close()

	router := newTestRouter(t, endpoint, 2, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	assert.Nil(t, res.result)

	var urlErr *url.Error
	assert.True(t, errors.As(res.err, &urlErr))
}

func TestHTTPNoRetry(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusServiceUnavailable, `{"error":"busy"}`))
	router := newTestRouter(t, node.server.URL, 0, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	assert.Error(t, res.err)
	assert.Equal(t, int32(1), node.requests.Load())
}

func TestHTTPRetryLimit(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusServiceUnavailable, `{"error":"busy"}`))
	router := newTestRouter(t, node.server.URL, 3, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_call"))

	var serverErr *ServerError
	require.True(t, errors.As(res.err, &serverErr))
	assert.Equal(t, http.StatusServiceUnavailable, serverErr.StatusCode)
	assert.Equal(t, int32(4), node.requests.Load())
}

func TestHTTPRetryThenSucceed(t *testing.T) {
	var node *nodeStub
	node = newNodeStub(t, func(w http.ResponseWriter, r *http.Request) {
		if node.requests.Load() < 3 {
			respond(http.StatusInternalServerError, ``)(w, r)
			return
		}

		respond(http.StatusOK, `{"result":"0x1"}`)(w, r)
	})
	router := newTestRouter(t, node.server.URL, 5, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_chainId"))

	assert.NoError(t, res.err)
	assert.JSONEq(t, `{"result":"0x1"}`, string(res.result))
	assert.Equal(t, int32(3), node.requests.Load())
}

func TestHTTPPayloadTooLarge(t *testing.T) {
	node := newNodeStub(t, respond(http.StatusRequestEntityTooLarge, ``))
	router := newTestRouter(t, node.server.URL, 3, noProvider)

	dispatchAndWait(t, router, NewPayload("eth_call"))

	// retried only with Retry-After
	assert.Equal(t, int32(1), node.requests.Load())
}

func TestHTTPRetryAfter(t *testing.T) {
	var node *nodeStub
	node = newNodeStub(t, func(w http.ResponseWriter, r *http.Request) {
		if node.requests.Load() == 1 {
			w.Header().Set("Retry-After", "0")
			respond(http.StatusTooManyRequests, ``)(w, r)
			return
		}

		respond(http.StatusOK, `{"result":true}`)(w, r)
	})
	router := newTestRouter(t, node.server.URL, 1, noProvider)

	res := dispatchAndWait(t, router, NewPayload("eth_syncing"))

	assert.NoError(t, res.err)
	assert.Equal(t, int32(2), node.requests.Load())
}

func TestParseRetryAfter(t *testing.T) {
	_, ok := parseRetryAfter("")
	assert.False(t, ok)

	_, ok = parseRetryAfter("soon")
	assert.False(t, ok)

	after, ok := parseRetryAfter("3")
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, after)

	after, ok = parseRetryAfter(time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	assert.True(t, ok)
	assert.Greater(t, after, 59*time.Minute)

	after, ok = parseRetryAfter(time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat))
	assert.True(t, ok)
	assert.Equal(t, time.Millisecond, after)
}

func TestRetryPolicy(t *testing.T) {
	policy := newRetryPolicy(RetryOption{Interval: time.Second, MaxInterval: 3 * time.Second}, 4)
	policy.Reset()

	assert.Equal(t, time.Second, policy.NextBackOff())
	assert.Equal(t, 2*time.Second, policy.NextBackOff())

	policy.after = time.Minute
	assert.Equal(t, 3*time.Second, policy.NextBackOff())

	assert.Equal(t, 3*time.Second, policy.NextBackOff())
	assert.Equal(t, time.Duration(-1), policy.NextBackOff())
}
