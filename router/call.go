package router

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

type outcome struct {
	result json.RawMessage
	err    error
}

// Call dispatches the method with params and waits for the outcome.
func (r *Router) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	return r.CallPayload(ctx, NewPayload(method, params...))
}

// CallPayload dispatches the payload and waits for the outcome. Routing
// failures are returned as *RoutingError.
//
// The context only bounds the wait, the underlying transport is not canceled.
func (r *Router) CallPayload(ctx context.Context, payload *Payload) (json.RawMessage, error) {
	ch := make(chan outcome, 1)

	// injected providers may invoke the callback more than once
	var once sync.Once
	err := r.Dispatch(payload, func(err error, result json.RawMessage) {
		once.Do(func() {
			ch <- outcome{result, err}
		})
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		return out.result, out.err
	}
}

// CallResult is a generic method to call RPC and decode the result of the
// JSON-RPC response. An error object in the response is returned as
// *ResponseError.
func CallResult[T any](ctx context.Context, r *Router, method string, params ...interface{}) (result T, err error) {
	data, err := r.Call(ctx, method, params...)
	if err != nil {
		return
	}

	var resp Response
	if err = json.Unmarshal(data, &resp); err != nil {
		err = errors.WithMessage(err, "Failed to unmarshal response")
		return
	}

	if resp.Error != nil {
		err = resp.Error
		return
	}

	if len(resp.Result) > 0 {
		if err = json.Unmarshal(resp.Result, &result); err != nil {
			err = errors.WithMessage(err, "Failed to unmarshal result")
		}
	}

	return
}
