package router

import "sort"

// methods that require local key custody and never go to the remote node
var walletMethods = map[string]struct{}{
	"eth_accounts":         {},
	"eth_sendTransaction":  {},
	"eth_sign":             {},
	"eth_signTypedData_v3": {},
	"eth_signTypedData":    {},
	"personal_sign":        {},
}

// IsWalletMethod returns whether the specified RPC method must be served by
// an injected wallet provider. The match is exact and case sensitive.
func IsWalletMethod(method string) bool {
	_, ok := walletMethods[method]
	return ok
}

// WalletMethods returns all methods served by an injected wallet provider in
// alphabetical order.
func WalletMethods() []string {
	methods := make([]string, 0, len(walletMethods))
	for method := range walletMethods {
		methods = append(methods, method)
	}

	sort.Strings(methods)

	return methods
}
