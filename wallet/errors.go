package wallet

import (
	"fmt"

	"github.com/0glabs/0g-provider-router/router"
)

// Provider errors, codes defined by EIP-1193 and JSON-RPC.
const (
	codeUnauthorized      = 4100
	codeUnsupportedMethod = 4200
	codeInvalidParams     = -32602
	codeInternal          = -32603
)

func errUnsupportedMethod(method string) error {
	return &router.ResponseError{
		Code:    codeUnsupportedMethod,
		Message: fmt.Sprintf("The provider does not support method %v", method),
	}
}

func errUnauthorized(account fmt.Stringer) error {
	return &router.ResponseError{
		Code:    codeUnauthorized,
		Message: fmt.Sprintf("Account %v not managed by the provider", account),
	}
}

func errInvalidParams(format string, args ...interface{}) error {
	return &router.ResponseError{
		Code:    codeInvalidParams,
		Message: fmt.Sprintf(format, args...),
	}
}

func errInternal(err error) error {
	return &router.ResponseError{
		Code:    codeInternal,
		Message: err.Error(),
	}
}
