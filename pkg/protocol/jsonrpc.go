// Package protocol provides the JSON-RPC 2.0 envelope types for the MCP
// server: request parsing and response construction, independent of wire
// framing.
package protocol

import (
	"encoding/json"

	"github.com/finlabs/ynab-mcp/pkg/errors"
)

// Version is the only protocol tag a request may carry.
const Version = "2.0"

// Request is a parsed JSON-RPC request envelope. The ID and Params are kept
// raw so that string and number ids round-trip byte-exact.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no id at all. A literal
// null id still expects a response (with a null id echoed back).
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// ParseRequest parses a JSON-RPC request from text. Syntactically invalid
// JSON yields a parse fault; a valid document missing the mandatory jsonrpc
// or method fields yields an invalid-request fault.
func ParseRequest(text string) (*Request, error) {
	var envelope struct {
		JSONRPC *string         `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  *string         `json:"method"`
		Params  json.RawMessage `json:"params"`
	}

	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, errors.Wrap(errors.KindParse, "invalid JSON", err)
	}

	if envelope.JSONRPC == nil {
		return nil, errors.New(errors.KindInvalidRequest, "missing jsonrpc field")
	}
	if *envelope.JSONRPC != Version {
		return nil, errors.Newf(errors.KindInvalidRequest, "unsupported jsonrpc version %q", *envelope.JSONRPC)
	}
	if envelope.Method == nil || *envelope.Method == "" {
		return nil, errors.New(errors.KindInvalidRequest, "missing method field")
	}

	return &Request{
		JSONRPC: Version,
		ID:      envelope.ID,
		Method:  *envelope.Method,
		Params:  envelope.Params,
	}, nil
}

// ErrorObject carries the code, message and optional data of an error
// response.
type ErrorObject struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Response is a JSON-RPC response envelope. Exactly one of Result and Error
// is set; the constructors below enforce this.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// NewResponse creates a success response. A nil result is replaced with an
// empty object so that the result member is always present on the wire.
func NewResponse(id json.RawMessage, result interface{}) *Response {
	if result == nil {
		result = struct{}{}
	}
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse creates an error response. Data may be nil.
func NewErrorResponse(id json.RawMessage, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// Encode serializes the response to its wire form. A nil ID encodes as null,
// which is what a parse failure with an undeterminable id requires.
func (r *Response) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(errors.KindUnknown, "marshaling response", err)
	}
	return string(data), nil
}

// ServerInfo identifies the server implementation in initialize results.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability advertises tool support.
type ToolsCapability struct{}

// ServerCapabilities lists the capabilities advertised during initialize.
type ServerCapabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// InitializeResult is the fixed result of the initialize method.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}
