package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Payload is a JSON-RPC shaped call. Only Method is inspected by the router,
// the rest is forwarded to the selected transport as is.
//
// Numbers in decoded params are kept as json.Number, and nil Params are
// omitted when encoded, so that a decoded payload is encoded to what the
// caller sent.
type Payload struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method" binding:"required"`
	Params  []interface{}   `json:"params"`
}

type payloadJSON Payload

func (p Payload) MarshalJSON() ([]byte, error) {
	if p.Params != nil {
		return encodeJSON(payloadJSON(p))
	}

	// params absent in request
	return encodeJSON(struct {
		payloadJSON
		Params []interface{} `json:"params,omitempty"`
	}{payloadJSON: payloadJSON(p)})
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	return decoder.Decode((*payloadJSON)(p))
}

// encodeJSON encodes v without escaping HTML characters in strings.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var nextPayloadID atomic.Uint64

// NewPayload creates a payload for the specified method and params.
func NewPayload(method string, params ...interface{}) *Payload {
	if params == nil {
		params = []interface{}{}
	}

	id := nextPayloadID.Add(1)

	return &Payload{
		JSONRPC: "2.0",
		ID:      json.RawMessage(strconv.FormatUint(id, 10)),
		Method:  method,
		Params:  params,
	}
}

// Callback receives the outcome of a dispatched call. On success err is nil
// and result holds the JSON document returned by the transport. On failure
// result is nil.
type Callback func(err error, result json.RawMessage)

// Response is a JSON-RPC response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the error object of a JSON-RPC response.
type ResponseError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%v (code %v)", e.Message, e.Code)
}

// NewResponse returns the JSON-RPC response of payload with the specified result.
func NewResponse(payload *Payload, result interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to marshal result")
	}

	return json.Marshal(Response{
		JSONRPC: "2.0",
		ID:      payload.ID,
		Result:  data,
	})
}
