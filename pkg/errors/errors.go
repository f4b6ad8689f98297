// Package errors defines the closed error taxonomy for the server.
//
// Every fault the protocol stack or a tool handler can produce carries one of
// the kinds below, so callers map errors to JSON-RPC codes without matching
// on message strings.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	// KindUnknown is the zero value for errors of no recognized kind.
	KindUnknown Kind = iota
	// KindFraming marks a malformed Content-Length header.
	KindFraming
	// KindEncoding marks a message body that is not valid UTF-8.
	KindEncoding
	// KindParse marks a malformed JSON-RPC envelope.
	KindParse
	// KindInvalidRequest marks a syntactically valid envelope that violates
	// the JSON-RPC request shape, such as an empty method.
	KindInvalidRequest
	// KindUnknownMethod marks a request for an unsupported protocol method.
	KindUnknownMethod
	// KindInvalidParams marks missing or malformed request parameters.
	KindInvalidParams
	// KindUnknownTool marks a tools/call naming an unregistered tool.
	KindUnknownTool
	// KindToolExecution marks a failure raised by a tool handler.
	KindToolExecution
	// KindProvider marks a failure in the external data provider.
	KindProvider
	// KindIO marks a transport read or write fault, including truncation.
	KindIO
)

// JSON-RPC error codes from the fixed table.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeToolError      = -32000
)

// RPCCode returns the JSON-RPC error code a fault of this kind maps to.
func (k Kind) RPCCode() int {
	switch k {
	case KindParse:
		return CodeParseError
	case KindInvalidRequest:
		return CodeInvalidRequest
	case KindUnknownMethod:
		return CodeMethodNotFound
	case KindInvalidParams:
		return CodeInvalidParams
	case KindUnknownTool, KindToolExecution, KindProvider:
		return CodeToolError
	default:
		return CodeInternalError
	}
}

func (k Kind) String() string {
	switch k {
	case KindFraming:
		return "framing"
	case KindEncoding:
		return "encoding"
	case KindParse:
		return "parse"
	case KindInvalidRequest:
		return "invalid request"
	case KindUnknownMethod:
		return "unknown method"
	case KindInvalidParams:
		return "invalid params"
	case KindUnknownTool:
		return "unknown tool"
	case KindToolExecution:
		return "tool execution"
	case KindProvider:
		return "provider"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a classified server error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err is not a classified
// error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
