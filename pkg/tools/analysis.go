package tools

import (
	"context"

	"github.com/finlabs/ynab-mcp/pkg/domain"
	"github.com/finlabs/ynab-mcp/pkg/logging"
)

// Analyzer binds the five analysis tools to a data source.
type Analyzer struct {
	source DataSource
	logger logging.Logger
}

// NewAnalyzer creates an analyzer over the given source.
func NewAnalyzer(source DataSource, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Analyzer{source: source, logger: logger}
}

// RegisterAll adds the full tool catalog to a registry, in catalog order.
func (a *Analyzer) RegisterAll(registry *Registry) error {
	catalog := []struct {
		tool    Tool
		handler Handler
	}{
		{
			tool: Tool{
				Name:        "analyze_category_spending",
				Description: "Analyze total spending in a category, optionally restricted to a date range.",
			},
			handler: a.analyzeCategorySpending,
		},
		{
			tool: Tool{
				Name:        "get_budget_overview",
				Description: "Summarize a budget: income, expenses, net and savings rate.",
			},
			handler: a.getBudgetOverview,
		},
		{
			tool: Tool{
				Name:        "search_transactions",
				Description: "Search transactions by text, category and amount range, with optional sorting and limit.",
			},
			handler: a.searchTransactions,
		},
		{
			tool: Tool{
				Name:        "analyze_spending_trends",
				Description: "Report month-by-month spending, optionally for a single category or the most recent months.",
			},
			handler: a.analyzeSpendingTrends,
		},
		{
			tool: Tool{
				Name:        "budget_health_check",
				Description: "Check budget health: savings rate and categories spending far above the mean.",
			},
			handler: a.budgetHealthCheck,
		},
	}

	for _, entry := range catalog {
		if err := registry.Register(entry.tool, entry.handler); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeCategorySpending(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	budgetID := stringArg(args, "budget_id")
	categoryID := stringArg(args, "category_id")
	dateRange := domain.NewDateRange(stringArg(args, "start_date"), stringArg(args, "end_date"))

	transactions, err := a.source.Transactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	matched := domain.NewQuery().WithCategory(categoryID).Apply(transactions)
	var total domain.Money
	count := 0
	for _, t := range matched {
		if t.Date() != "" && !dateRange.Contains(t.Date()) {
			continue
		}
		total = total.Add(t.Amount())
		count++
	}

	return map[string]interface{}{
		"category_spending": map[string]interface{}{
			"category_id":            categoryID,
			"total_spent_milliunits": total.Abs().Milliunits(),
			"transaction_count":      count,
		},
	}, nil
}

func (a *Analyzer) getBudgetOverview(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	budgetID := stringArg(args, "budget_id")

	budget, err := a.source.Budget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	categories, err := a.source.Categories(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	transactions, err := a.source.Transactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	service := domain.NewServiceWith(transactions)
	totals := service.Totals()

	return map[string]interface{}{
		"budget_overview": map[string]interface{}{
			"budget_id":           budget.ID(),
			"budget_name":         budget.Name(),
			"income_milliunits":   totals.Income.Milliunits(),
			"expenses_milliunits": totals.Expenses.Milliunits(),
			"net_milliunits":      totals.Net.Milliunits(),
			"savings_rate":        service.SavingsRate(),
			"category_count":      len(categories),
			"transaction_count":   service.Count(),
		},
	}, nil
}

func (a *Analyzer) searchTransactions(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	budgetID := stringArg(args, "budget_id")

	transactions, err := a.source.Transactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	query := domain.NewQuery().WithSearchText(stringArg(args, "query"))
	if categoryID := stringArg(args, "category_id"); categoryID != "" {
		query = query.WithCategory(categoryID)
	}
	if min, ok := intArg(args, "min_amount"); ok {
		query = query.WithMinAmount(domain.FromMilliunits(min))
	}
	if max, ok := intArg(args, "max_amount"); ok {
		query = query.WithMaxAmount(domain.FromMilliunits(max))
	}
	switch stringArg(args, "sort") {
	case "amount_asc":
		query = query.SortByAmountAscending()
	case "amount_desc":
		query = query.SortByAmountDescending()
	case "date":
		query = query.SortByDate()
	}

	matched := query.Apply(transactions)
	if limit, ok := intArg(args, "limit"); ok && limit >= 0 && int(limit) < len(matched) {
		matched = matched[:limit]
	}

	rows := make([]map[string]interface{}, 0, len(matched))
	for _, t := range matched {
		rows = append(rows, map[string]interface{}{
			"id":                t.ID(),
			"date":              t.Date(),
			"amount_milliunits": t.Amount().Milliunits(),
			"category_id":       t.CategoryID(),
			"description":       t.Description(),
		})
	}

	return map[string]interface{}{"transactions": rows}, nil
}

func (a *Analyzer) analyzeSpendingTrends(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	budgetID := stringArg(args, "budget_id")

	transactions, err := a.source.Transactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	query := domain.NewQuery()
	if categoryID := stringArg(args, "category_id"); categoryID != "" {
		query = query.WithCategory(categoryID)
	}

	buckets := domain.NewServiceWith(transactions).MonthlySpend(query)
	if months, ok := intArg(args, "months"); ok && months > 0 && int(months) < len(buckets) {
		buckets = buckets[len(buckets)-int(months):]
	}

	rows := make([]map[string]interface{}, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, map[string]interface{}{
			"month":            b.Month,
			"spend_milliunits": b.Spend.Milliunits(),
		})
	}

	return map[string]interface{}{"spending_trends": rows}, nil
}

func (a *Analyzer) budgetHealthCheck(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	budgetID := stringArg(args, "budget_id")

	transactions, err := a.source.Transactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	report := domain.NewServiceWith(transactions).HealthCheck()

	categories := make([]map[string]interface{}, 0, len(report.Categories))
	overspent := make([]string, 0)
	for _, c := range report.Categories {
		categories = append(categories, map[string]interface{}{
			"category_id":      c.CategoryID,
			"spend_milliunits": c.Spend.Milliunits(),
			"overspent":        c.Overspent,
		})
		if c.Overspent {
			overspent = append(overspent, c.CategoryID)
		}
	}

	return map[string]interface{}{
		"budget_health": map[string]interface{}{
			"savings_rate":         report.SavingsRate,
			"income_milliunits":    report.Totals.Income.Milliunits(),
			"expenses_milliunits":  report.Totals.Expenses.Milliunits(),
			"net_milliunits":       report.Totals.Net.Milliunits(),
			"overspent_categories": overspent,
			"categories":           categories,
		},
	}, nil
}

// stringArg extracts a string argument, defaulting absent or non-string
// values to "".
func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg extracts a numeric argument. JSON numbers decode as float64;
// anything else reports absent.
func intArg(args map[string]interface{}, key string) (int64, bool) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
