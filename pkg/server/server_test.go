package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlabs/ynab-mcp/pkg/domain"
	"github.com/finlabs/ynab-mcp/pkg/errors"
	"github.com/finlabs/ynab-mcp/pkg/tools"
	"github.com/finlabs/ynab-mcp/pkg/transport"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()

	budget := domain.NewBudget("b1", "Household")
	transactions := []domain.Transaction{
		domain.NewTransaction("t1", "a1", "groceries", domain.FromMilliunits(-5000)),
		domain.NewTransaction("t2", "a1", "groceries", domain.FromMilliunits(-3000)),
		domain.NewTransaction("t3", "a1", "gas", domain.FromMilliunits(-4000)),
	}
	source := tools.NewLocalSource(budget, nil, transactions)

	registry := tools.NewRegistry(nil)
	require.NoError(t, tools.NewAnalyzer(source, nil).RegisterAll(registry))
	return registry
}

// runSession feeds framed input through a server and returns the decoded
// response bodies along with Serve's return value.
func runSession(t *testing.T, registry *tools.Registry, input string) ([]map[string]interface{}, error) {
	t.Helper()

	var out bytes.Buffer
	framer := transport.NewFramer(strings.NewReader(input), &out)
	srv := NewServer("ynab-mcp", "0.1.0", registry, framer, nil)

	err := srv.Serve(context.Background())

	readBack := transport.NewFramer(&out, &bytes.Buffer{})
	var responses []map[string]interface{}
	for {
		body, readErr := readBack.ReadMessage()
		if readErr != nil {
			break
		}
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(body), &decoded))
		responses = append(responses, decoded)
	}
	return responses, err
}

func TestInitialize(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"clientInfo":{"name":"test"}}}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	result := responses[0]["result"].(map[string]interface{})
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	serverInfo := result["serverInfo"].(map[string]interface{})
	assert.Equal(t, "ynab-mcp", serverInfo["name"])
}

func TestToolsList(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	assert.Equal(t, float64(1), responses[0]["id"])
	result := responses[0]["result"].(map[string]interface{})
	listed := result["tools"].([]interface{})
	require.Len(t, listed, 5)
	for _, entry := range listed {
		tool := entry.(map[string]interface{})
		assert.NotEmpty(t, tool["name"])
		assert.NotEmpty(t, tool["description"])
	}
}

func TestToolsCall(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"analyze_category_spending","arguments":{"category_id":"groceries"}}}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	result := responses[0]["result"].(map[string]interface{})
	content := result["content"].([]interface{})
	require.Len(t, content, 1)

	block := content[0].(map[string]interface{})
	assert.Equal(t, "text", block["type"])

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(block["text"].(string)), &payload))
	spending := payload["category_spending"].(map[string]interface{})
	assert.Equal(t, float64(8000), spending["total_spent_milliunits"])
}

func TestToolsCallMissingName(t *testing.T) {
	registry := tools.NewRegistry(nil)
	invoked := false
	require.NoError(t, registry.Register(tools.Tool{Name: "spy", Description: "records invocation"},
		func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			invoked = true
			return nil, nil
		}))

	input := frame(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"arguments":{}}}`)

	responses, err := runSession(t, registry, input)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(errors.CodeInvalidParams), rpcErr["code"])
	assert.False(t, invoked, "no handler may run when name is missing")
}

func TestToolsCallUnknownTool(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"no_such_tool"}}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(errors.CodeToolError), rpcErr["code"])
}

func TestUnknownMethod(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(errors.CodeMethodNotFound), rpcErr["code"])
}

func TestPing(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":3,"method":"ping"}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.NotNil(t, responses[0]["result"])
	assert.Nil(t, responses[0]["error"])
}

func TestParseErrorThenRecovery(t *testing.T) {
	input := frame(`{"invalid":json`) + frame(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 2, "session must continue past a parse failure")

	first := responses[0]
	assert.Nil(t, first["id"])
	rpcErr := first["error"].(map[string]interface{})
	assert.Equal(t, float64(errors.CodeParseError), rpcErr["code"])

	second := responses[1]
	assert.Equal(t, float64(2), second["id"])
	assert.NotNil(t, second["result"])
}

func TestNotificationGetsNoResponse(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","method":"notifications/initialized"}`) +
		frame(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, float64(1), responses[0]["id"])
}

func TestNullIDIsAnswered(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":null,"method":"ping"}`)

	responses, err := runSession(t, testRegistry(t), input)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0]["id"])
	assert.NotNil(t, responses[0]["result"])
}

func TestCleanEndOfStream(t *testing.T) {
	responses, err := runSession(t, testRegistry(t), "")
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestReadFaultTerminatesWithoutResponse(t *testing.T) {
	responses, err := runSession(t, testRegistry(t), "Bogus-Header: 3\r\n\r\nabc")
	require.Error(t, err)
	assert.Equal(t, errors.KindFraming, errors.KindOf(err))
	assert.Empty(t, responses)
}

func TestHandlerPanicBecomesInternalError(t *testing.T) {
	registry := tools.NewRegistry(nil)
	require.NoError(t, registry.Register(tools.Tool{Name: "explode", Description: "panics"},
		func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			panic("boom")
		}))

	input := frame(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"explode"}}`) +
		frame(`{"jsonrpc":"2.0","id":2,"method":"ping"}`)

	responses, err := runSession(t, registry, input)
	require.NoError(t, err)
	require.Len(t, responses, 2, "session must continue after a handler panic")

	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(errors.CodeInternalError), rpcErr["code"])
	assert.NotNil(t, responses[1]["result"])
}
