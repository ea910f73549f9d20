package wallet

import (
	"encoding/json"
	"strings"

	"github.com/0glabs/0g-provider-router/router"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// decodeParam decodes the index-th param of payload into v.
func decodeParam(payload *router.Payload, index int, v interface{}) error {
	if index >= len(payload.Params) {
		return errInvalidParams("Missing param #%v of method %v", index, payload.Method)
	}

	data, err := json.Marshal(payload.Params[index])
	if err != nil {
		return errInvalidParams("Invalid param #%v of method %v: %v", index, payload.Method, err)
	}

	if err = json.Unmarshal(data, v); err != nil {
		return errInvalidParams("Invalid param #%v of method %v: %v", index, payload.Method, err)
	}

	return nil
}

// decodeAddress decodes the index-th param as a hex address.
func decodeAddress(payload *router.Payload, index int) (common.Address, error) {
	var str string
	if err := decodeParam(payload, index, &str); err != nil {
		return common.Address{}, err
	}

	if !common.IsHexAddress(str) {
		return common.Address{}, errInvalidParams("Invalid address %v", str)
	}

	return common.HexToAddress(str), nil
}

// decodeMessage decodes the index-th param as hex bytes, or as UTF-8 text if
// it is not hex encoded.
func decodeMessage(payload *router.Payload, index int) ([]byte, error) {
	var str string
	if err := decodeParam(payload, index, &str); err != nil {
		return nil, err
	}

	if strings.HasPrefix(str, "0x") {
		if data, err := hexutil.Decode(str); err == nil {
			return data, nil
		}
	}

	return []byte(str), nil
}
