package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlabs/ynab-mcp/pkg/errors"
)

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewRegistry(nil)

	names := []string{"first", "second", "third"}
	for _, name := range names {
		name := name
		err := r.Register(Tool{Name: name, Description: name + " tool"}, func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return name, nil
		})
		require.NoError(t, err)
	}

	listed := r.List()
	require.Len(t, listed, 3)
	for i, name := range names {
		assert.Equal(t, name, listed[i].Name, "registration order must be preserved")
	}

	got, err := r.Execute(context.Background(), "second", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry(nil)
	handler := func(ctx context.Context, args map[string]interface{}) (interface{}, error) { return nil, nil }

	require.NoError(t, r.Register(Tool{Name: "dup"}, handler))
	assert.Error(t, r.Register(Tool{Name: "dup"}, handler))
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Execute(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindUnknownTool, errors.KindOf(err))
}

func TestRegistryListReturnsCopy(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(Tool{Name: "a", Description: "d"}, nil))

	listed := r.List()
	listed[0].Name = "mutated"

	assert.Equal(t, "a", r.List()[0].Name)
}
