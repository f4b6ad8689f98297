// Package tools holds the fixed analysis tool catalog: an ordered registry
// mapping tool names to handlers, and the five budget-analysis tools exposed
// over tools/list and tools/call.
package tools

import (
	"context"

	"github.com/finlabs/ynab-mcp/pkg/errors"
	"github.com/finlabs/ynab-mcp/pkg/logging"
)

// Tool is one catalog entry, exposed verbatim by tools/list.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Handler executes one tool against its raw arguments. Handlers extract and
// validate their own fields, defaulting absent or malformed values rather
// than failing the call.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry is an ordered tool catalog. Registration order is the order
// tools/list reports.
type Registry struct {
	tools    []Tool
	handlers map[string]Handler
	logger   logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register adds a tool and its handler. Names are unique.
func (r *Registry) Register(tool Tool, handler Handler) error {
	if _, exists := r.handlers[tool.Name]; exists {
		return errors.Newf(errors.KindToolExecution, "tool already registered: %s", tool.Name)
	}
	r.tools = append(r.tools, tool)
	r.handlers[tool.Name] = handler
	return nil
}

// List returns the catalog in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Execute runs the named tool. An unknown name is a domain error, not a
// silent empty result.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, errors.Newf(errors.KindUnknownTool, "unknown tool: %s", name)
	}

	r.logger.Debug("executing tool", "name", name)
	result, err := handler(ctx, args)
	if err != nil {
		r.logger.Warn("tool failed", "name", name, "error", err)
		return nil, err
	}
	return result, nil
}
