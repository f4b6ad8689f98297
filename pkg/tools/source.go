package tools

import (
	"context"

	"github.com/finlabs/ynab-mcp/pkg/domain"
	"github.com/finlabs/ynab-mcp/pkg/ynab"
)

// DataSource supplies the budget data the analysis tools operate on. The
// executor is constructed with exactly one implementation; handlers never
// branch on where the data comes from.
type DataSource interface {
	Budget(ctx context.Context, budgetID string) (domain.Budget, error)
	Categories(ctx context.Context, budgetID string) ([]domain.Category, error)
	Transactions(ctx context.Context, budgetID string) ([]domain.Transaction, error)
}

// LocalSource serves a fixed in-memory data set. Used for demos and tests.
type LocalSource struct {
	budget       domain.Budget
	categories   []domain.Category
	transactions []domain.Transaction
}

// NewLocalSource creates a source over an in-memory data set.
func NewLocalSource(budget domain.Budget, categories []domain.Category, transactions []domain.Transaction) *LocalSource {
	return &LocalSource{
		budget:       budget,
		categories:   categories,
		transactions: transactions,
	}
}

func (s *LocalSource) Budget(ctx context.Context, budgetID string) (domain.Budget, error) {
	return s.budget, nil
}

func (s *LocalSource) Categories(ctx context.Context, budgetID string) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *LocalSource) Transactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	return s.transactions, nil
}

// RemoteSource fetches data from the YNAB API and maps it into domain
// entities. Provider failures propagate to the handler as-is so the
// dispatcher sees one error surface.
type RemoteSource struct {
	client *ynab.Client
	mapper ynab.ResponseMapper
}

// NewRemoteSource creates a source backed by a YNAB client.
func NewRemoteSource(client *ynab.Client) *RemoteSource {
	return &RemoteSource{client: client, mapper: ynab.NewResponseMapper()}
}

func (s *RemoteSource) Budget(ctx context.Context, budgetID string) (domain.Budget, error) {
	raw, err := s.client.GetBudget(ctx, budgetID)
	if err != nil {
		return domain.Budget{}, err
	}
	return s.mapper.Budget(raw)
}

func (s *RemoteSource) Categories(ctx context.Context, budgetID string) ([]domain.Category, error) {
	raw, err := s.client.GetCategories(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	categories, _, err := s.mapper.Categories(raw)
	return categories, err
}

func (s *RemoteSource) Transactions(ctx context.Context, budgetID string) ([]domain.Transaction, error) {
	raw, err := s.client.GetTransactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Transactions(raw)
}
