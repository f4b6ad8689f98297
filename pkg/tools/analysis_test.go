package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlabs/ynab-mcp/pkg/domain"
	"github.com/finlabs/ynab-mcp/pkg/errors"
)

func fixtureSource() *LocalSource {
	budget := domain.NewBudget("b1", "Household")
	categories := []domain.Category{
		domain.NewCategory("groceries", "Groceries"),
		domain.NewCategory("gas", "Gas"),
		domain.NewCategory("rent", "Rent"),
	}
	transactions := []domain.Transaction{
		domain.NewTransactionBuilder().ID("t1").CategoryID("groceries").
			Amount(domain.FromMilliunits(-5000)).Date("2024-01-10").Description("Market run").Build(),
		domain.NewTransactionBuilder().ID("t2").CategoryID("groceries").
			Amount(domain.FromMilliunits(-3000)).Date("2024-02-05").Description("Corner store").Build(),
		domain.NewTransactionBuilder().ID("t3").CategoryID("gas").
			Amount(domain.FromMilliunits(-4000)).Date("2024-02-12").Description("Fuel").Build(),
		domain.NewTransactionBuilder().ID("t4").CategoryID("rent").
			Amount(domain.FromMilliunits(-90000)).Date("2024-02-01").Description("February rent").Build(),
		domain.NewTransactionBuilder().ID("t5").CategoryID("salary").
			Amount(domain.FromMilliunits(200000)).Date("2024-02-01").Description("Paycheck").Build(),
	}
	return NewLocalSource(budget, categories, transactions)
}

func fixtureRegistry(t *testing.T) *Registry {
	t.Helper()
	registry := NewRegistry(nil)
	require.NoError(t, NewAnalyzer(fixtureSource(), nil).RegisterAll(registry))
	return registry
}

func execute(t *testing.T, registry *Registry, name string, args map[string]interface{}) map[string]interface{} {
	t.Helper()
	result, err := registry.Execute(context.Background(), name, args)
	require.NoError(t, err)
	payload, ok := result.(map[string]interface{})
	require.True(t, ok, "tool result must be a JSON object")
	return payload
}

func TestCatalogHasFiveToolsWithDescriptions(t *testing.T) {
	listed := fixtureRegistry(t).List()

	want := []string{
		"analyze_category_spending",
		"get_budget_overview",
		"search_transactions",
		"analyze_spending_trends",
		"budget_health_check",
	}
	require.Len(t, listed, len(want))
	for i, tool := range listed {
		assert.Equal(t, want[i], tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
}

func TestAnalyzeCategorySpending(t *testing.T) {
	payload := execute(t, fixtureRegistry(t), "analyze_category_spending", map[string]interface{}{
		"budget_id":   "b1",
		"category_id": "groceries",
	})

	spending, ok := payload["category_spending"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(8000), spending["total_spent_milliunits"])
	assert.Equal(t, 2, spending["transaction_count"])
}

func TestAnalyzeCategorySpendingDateRange(t *testing.T) {
	payload := execute(t, fixtureRegistry(t), "analyze_category_spending", map[string]interface{}{
		"category_id": "groceries",
		"start_date":  "2024-02-01",
	})

	spending := payload["category_spending"].(map[string]interface{})
	assert.Equal(t, int64(3000), spending["total_spent_milliunits"])
	assert.Equal(t, 1, spending["transaction_count"])
}

func TestGetBudgetOverview(t *testing.T) {
	payload := execute(t, fixtureRegistry(t), "get_budget_overview", map[string]interface{}{
		"budget_id": "b1",
	})

	overview, ok := payload["budget_overview"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Household", overview["budget_name"])
	assert.Equal(t, int64(200000), overview["income_milliunits"])
	assert.Equal(t, int64(102000), overview["expenses_milliunits"])
	assert.Equal(t, int64(98000), overview["net_milliunits"])
	assert.Equal(t, 3, overview["category_count"])
	assert.InDelta(t, 49, overview["savings_rate"].(float64), 0.001)
}

func TestSearchTransactions(t *testing.T) {
	registry := fixtureRegistry(t)

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantIDs []string
	}{
		{
			name:    "text search",
			args:    map[string]interface{}{"query": "rent"},
			wantIDs: []string{"t4"},
		},
		{
			name:    "amount range",
			args:    map[string]interface{}{"min_amount": float64(-10000), "max_amount": float64(-1000)},
			wantIDs: []string{"t1", "t2", "t3"},
		},
		{
			name:    "category with sort",
			args:    map[string]interface{}{"category_id": "groceries", "sort": "amount_desc"},
			wantIDs: []string{"t2", "t1"},
		},
		{
			name:    "limit",
			args:    map[string]interface{}{"sort": "date", "limit": float64(2)},
			wantIDs: []string{"t1", "t4"},
		},
		{
			name:    "no arguments returns everything",
			args:    map[string]interface{}{},
			wantIDs: []string{"t1", "t2", "t3", "t4", "t5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := execute(t, registry, "search_transactions", tt.args)
			rows, ok := payload["transactions"].([]map[string]interface{})
			require.True(t, ok)

			var gotIDs []string
			for _, row := range rows {
				gotIDs = append(gotIDs, row["id"].(string))
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestAnalyzeSpendingTrends(t *testing.T) {
	payload := execute(t, fixtureRegistry(t), "analyze_spending_trends", map[string]interface{}{
		"category_id": "groceries",
	})

	rows, ok := payload["spending_trends"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01", rows[0]["month"])
	assert.Equal(t, int64(5000), rows[0]["spend_milliunits"])
	assert.Equal(t, "2024-02", rows[1]["month"])
	assert.Equal(t, int64(3000), rows[1]["spend_milliunits"])
}

func TestAnalyzeSpendingTrendsMonthLimit(t *testing.T) {
	payload := execute(t, fixtureRegistry(t), "analyze_spending_trends", map[string]interface{}{
		"months": float64(1),
	})

	rows := payload["spending_trends"].([]map[string]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-02", rows[0]["month"], "month limit keeps the most recent buckets")
}

func TestBudgetHealthCheck(t *testing.T) {
	payload := execute(t, fixtureRegistry(t), "budget_health_check", map[string]interface{}{
		"budget_id": "b1",
	})

	health, ok := payload["budget_health"].(map[string]interface{})
	require.True(t, ok)

	// Mean per-category spend is 34000; only rent exceeds twice that.
	assert.Equal(t, []string{"rent"}, health["overspent_categories"])
	assert.InDelta(t, 49, health["savings_rate"].(float64), 0.001)
}

func TestHandlersDefaultMalformedArguments(t *testing.T) {
	registry := fixtureRegistry(t)

	payload := execute(t, registry, "search_transactions", map[string]interface{}{
		"query":      42,
		"min_amount": "not a number",
		"limit":      nil,
	})

	rows := payload["transactions"].([]map[string]interface{})
	assert.Len(t, rows, 5, "malformed arguments fall back to neutral values")
}

type failingSource struct{}

func (failingSource) Budget(ctx context.Context, budgetID string) (domain.Budget, error) {
	return domain.Budget{}, errors.New(errors.KindProvider, "connection refused")
}

func (failingSource) Categories(ctx context.Context, budgetID string) ([]domain.Category, error) {
	return nil, errors.New(errors.KindProvider, "connection refused")
}

func (failingSource) Transactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	return nil, errors.New(errors.KindProvider, "connection refused")
}

func TestProviderFailurePropagates(t *testing.T) {
	registry := NewRegistry(nil)
	require.NoError(t, NewAnalyzer(failingSource{}, nil).RegisterAll(registry))

	_, err := registry.Execute(context.Background(), "get_budget_overview", map[string]interface{}{})
	require.Error(t, err)
	assert.Equal(t, errors.KindProvider, errors.KindOf(err))
}
