package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// status codes that are retried
var retryStatusCodes = map[int]bool{
	http.StatusRequestTimeout:        true,
	http.StatusRequestEntityTooLarge: true,
	http.StatusTooManyRequests:       true,
	http.StatusInternalServerError:   true,
	http.StatusBadGateway:            true,
	http.StatusServiceUnavailable:    true,
	http.StatusGatewayTimeout:        true,
}

// status codes for which Retry-After is honored
var retryAfterStatusCodes = map[int]bool{
	http.StatusRequestEntityTooLarge: true,
	http.StatusTooManyRequests:       true,
	http.StatusServiceUnavailable:    true,
}

// httpSender posts payloads to the remote node.
type httpSender struct {
	url        string
	client     *http.Client
	maxRetries int
	retry      RetryOption
	logger     *logrus.Logger
}

// send posts the payload and reports the outcome through callback exactly once.
func (s *httpSender) send(payload *Payload, callback Callback) {
	result, err := s.post(payload)
	if err != nil {
		err = recoverServerError(err)
	}

	httpOutcomeCounter.WithLabelValues(outcomeOf(err)).Inc()

	if err != nil {
		callback(err, nil)
		return
	}

	callback(nil, result)
}

func (s *httpSender) post(payload *Payload) (json.RawMessage, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to marshal payload")
	}

	policy := newRetryPolicy(s.retry, s.maxRetries)

	var data []byte
	attempt := 0
	err = backoff.RetryNotify(func() error {
		attempt++

		var postErr error
		if data, postErr = s.postOnce(payload.Method, body); postErr != nil {
			return policy.classify(postErr)
		}

		return nil
	}, policy, func(err error, wait time.Duration) {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"method":  payload.Method,
			"url":     s.url,
			"attempt": attempt,
			"wait":    wait,
		}).Debug("Failed to post RPC request, retrying")
	})

	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"method":   payload.Method,
			"url":      s.url,
			"attempts": attempt,
		}).Debug("Failed to post RPC request")
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var result json.RawMessage
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, errors.WithMessage(err, "Failed to parse response")
	}

	return result, nil
}

// postOnce performs a single attempt. Non 2xx responses are returned as *HTTPError.
func (s *httpSender) postOnce(method string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpAttemptCounter.Inc()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     method,
			URL:        s.url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header,
			Body:       data,
		}
	}

	return data, nil
}

// retryPolicy is an exponential backoff limited to maxRetries, where a
// Retry-After header replaces the next wait.
type retryPolicy struct {
	backoff.BackOff
	maxInterval time.Duration
	after       time.Duration
}

func newRetryPolicy(opt RetryOption, maxRetries int) *retryPolicy {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = opt.Interval
	exp.MaxInterval = opt.MaxInterval
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0

	return &retryPolicy{
		BackOff:     backoff.WithMaxRetries(exp, uint64(maxRetries)),
		maxInterval: opt.MaxInterval,
	}
}

func (p *retryPolicy) NextBackOff() time.Duration {
	next := p.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}

	if p.after > 0 {
		next = min(p.after, p.maxInterval)
		p.after = 0
	}

	return next
}

// classify marks errors that must not be retried as permanent.
func (p *retryPolicy) classify(err error) error {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		// transport failure
		return err
	}

	if !retryStatusCodes[httpErr.StatusCode] {
		return backoff.Permanent(err)
	}

	if retryAfterStatusCodes[httpErr.StatusCode] {
		if after, ok := parseRetryAfter(httpErr.Header.Get("Retry-After")); ok {
			p.after = after
			return err
		}
	}

	if httpErr.StatusCode == http.StatusRequestEntityTooLarge {
		return backoff.Permanent(err)
	}

	return err
}

// parseRetryAfter parses the header value in either delay seconds or HTTP date.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.ParseUint(value, 10, 32); err == nil {
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), time.Millisecond), true
	}

	return 0, false
}
