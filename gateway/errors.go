package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/0glabs/0g-provider-router/common/api"
	"github.com/0glabs/0g-provider-router/router"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// JSON-RPC error codes of the gateway.
const (
	codeParseError        = -32700
	codeInvalidRequest    = -32600
	codeInternal          = -32603
	codeUnsupportedMethod = 4200 // EIP-1193
	codeNodeUnavailable   = -32000
	codeTimeout           = -32001
)

var ErrWalletUnavailable = api.NewBusinessError(101, "Wallet provider not available")

// errorResponse maps a failed call to the HTTP status and JSON-RPC response.
// Payloads returned by the node are relayed verbatim.
func errorResponse(id json.RawMessage, err error) (int, interface{}) {
	var serverErr *router.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode, serverErr.Payload
	}

	status, respErr := http.StatusOK, &router.ResponseError{Code: codeInternal, Message: err.Error()}

	var (
		responseErr   *router.ResponseError
		routingErr    *router.RoutingError
		httpErr       *router.HTTPError
		validationErr validator.ValidationErrors
		urlErr        *url.Error
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &responseErr):
		respErr = responseErr
	case errors.As(err, &routingErr):
		respErr.Code = codeUnsupportedMethod
	case errors.As(err, &httpErr), errors.As(err, &urlErr):
		status, respErr.Code = http.StatusBadGateway, codeNodeUnavailable
	case errors.As(err, &validationErr), errors.As(err, &typeErr):
		status, respErr.Code = http.StatusBadRequest, codeInvalidRequest
	case errors.As(err, &syntaxErr):
		status, respErr.Code = http.StatusBadRequest, codeParseError
	case errors.Is(err, context.DeadlineExceeded):
		status, respErr.Code = http.StatusGatewayTimeout, codeTimeout
	}

	return status, router.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   respErr,
	}
}
