// Package server wires the framed transport, the JSON-RPC envelope and the
// tool registry into a single-session stdio server: one message is fully
// read, dispatched and answered before the next read begins.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/finlabs/ynab-mcp/pkg/errors"
	"github.com/finlabs/ynab-mcp/pkg/logging"
	"github.com/finlabs/ynab-mcp/pkg/protocol"
	"github.com/finlabs/ynab-mcp/pkg/tools"
	"github.com/finlabs/ynab-mcp/pkg/transport"
)

const protocolVersion = "2024-11-05"

// Server dispatches JSON-RPC requests to the tool registry.
type Server struct {
	name     string
	version  string
	registry *tools.Registry
	framer   *transport.Framer
	logger   logging.Logger
}

// NewServer creates a server for one framed stream.
func NewServer(name, version string, registry *tools.Registry, framer *transport.Framer, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Server{
		name:     name,
		version:  version,
		registry: registry,
		framer:   framer,
		logger:   logger,
	}
}

// Serve runs the session loop until the stream ends or a hard I/O fault
// occurs. A clean end of stream returns nil; every recoverable fault is
// answered on the wire and the loop continues.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("session started", "server", s.name, "version", s.version)

	for {
		text, err := s.framer.ReadMessage()
		if err != nil {
			if stderrors.Is(err, transport.ErrEndOfStream) {
				s.logger.Info("session ended")
				return nil
			}
			// The stream position is unknown after a read fault, so no
			// response can be addressed to anything.
			s.logger.Error("read failed", "error", err)
			return err
		}

		req, err := protocol.ParseRequest(text)
		if err != nil {
			s.logger.Warn("parse failed", "error", err)
			if writeErr := s.write(protocol.NewErrorResponse(nil, errors.CodeParseError, "Parse error", err.Error())); writeErr != nil {
				return writeErr
			}
			continue
		}

		if req.IsNotification() {
			s.logger.Debug("notification received", "method", req.Method)
			continue
		}

		resp := s.dispatch(ctx, req)
		if err := s.write(resp); err != nil {
			return err
		}
	}
}

func (s *Server) write(resp *protocol.Response) error {
	text, err := resp.Encode()
	if err != nil {
		s.logger.Error("encode failed", "error", err)
		return err
	}
	if err := s.framer.WriteMessage(text); err != nil {
		s.logger.Error("write failed", "error", err)
		return err
	}
	return nil
}

// dispatch routes one request. It never returns nil and never panics; a
// handler panic becomes an internal error response.
func (s *Server) dispatch(ctx context.Context, req *protocol.Request) (resp *protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch panicked", "method", req.Method, "panic", r)
			resp = protocol.NewErrorResponse(req.ID, errors.CodeInternalError, "Internal error", nil)
		}
	}()

	s.logger.Debug("dispatching", "method", req.Method)

	switch req.Method {
	case "initialize":
		return protocol.NewResponse(req.ID, s.initializeResult())
	case "ping":
		return protocol.NewResponse(req.ID, struct{}{})
	case "tools/list":
		return protocol.NewResponse(req.ID, map[string]interface{}{
			"tools": s.registry.List(),
		})
	case "tools/call":
		return s.callTool(ctx, req)
	default:
		return protocol.NewErrorResponse(req.ID, errors.CodeMethodNotFound, "Method not found", req.Method)
	}
}

func (s *Server) initializeResult() protocol.InitializeResult {
	return protocol.InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: protocol.ServerCapabilities{
			Tools: protocol.ToolsCapability{},
		},
		ServerInfo: protocol.ServerInfo{
			Name:    s.name,
			Version: s.version,
		},
	}
}

type callToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

func (s *Server) callTool(ctx context.Context, req *protocol.Request) *protocol.Response {
	var params callToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return protocol.NewErrorResponse(req.ID, errors.CodeInvalidParams, "Invalid params", err.Error())
		}
	}
	if params.Name == "" {
		return protocol.NewErrorResponse(req.ID, errors.CodeInvalidParams, "Invalid params", "missing tool name")
	}
	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}

	result, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		return protocol.NewErrorResponse(req.ID, errors.KindOf(err).RPCCode(), err.Error(), nil)
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		return protocol.NewErrorResponse(req.ID, errors.CodeInternalError, "Internal error", err.Error())
	}

	return protocol.NewResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(serialized)},
		},
	})
}
