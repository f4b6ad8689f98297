package ynab

import (
	"encoding/json"

	"github.com/finlabs/ynab-mcp/pkg/domain"
	"github.com/finlabs/ynab-mcp/pkg/errors"
)

// ResponseMapper converts raw YNAB API payloads into domain entities. The
// mapping is lenient: absent optional fields become zero values, never
// errors. YNAB's "memo" field maps to the domain description.
type ResponseMapper struct{}

// NewResponseMapper creates a mapper.
func NewResponseMapper() ResponseMapper {
	return ResponseMapper{}
}

type budgetPayload struct {
	Data struct {
		Budget struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"budget"`
	} `json:"data"`
}

// Budget maps a /budgets/:id response.
func (m ResponseMapper) Budget(raw []byte) (domain.Budget, error) {
	var payload budgetPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Budget{}, errors.Wrap(errors.KindProvider, "decode budget response", err)
	}
	return domain.NewBudget(payload.Data.Budget.ID, payload.Data.Budget.Name), nil
}

type categoriesPayload struct {
	Data struct {
		CategoryGroups []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Categories []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"categories"`
		} `json:"category_groups"`
	} `json:"data"`
}

// Categories maps a /budgets/:id/categories response into the flat category
// list and the groups they belong to.
func (m ResponseMapper) Categories(raw []byte) ([]domain.Category, []domain.CategoryGroup, error) {
	var payload categoriesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, errors.Wrap(errors.KindProvider, "decode categories response", err)
	}

	var categories []domain.Category
	var groups []domain.CategoryGroup
	for _, group := range payload.Data.CategoryGroups {
		groups = append(groups, domain.NewCategoryGroup(group.ID, group.Name))
		for _, c := range group.Categories {
			categories = append(categories, domain.NewCategoryWithGroup(c.ID, c.Name, group.ID))
		}
	}
	return categories, groups, nil
}

type transactionsPayload struct {
	Data struct {
		Transactions []struct {
			ID         string `json:"id"`
			AccountID  string `json:"account_id"`
			CategoryID string `json:"category_id"`
			PayeeID    string `json:"payee_id"`
			Amount     int64  `json:"amount"`
			Date       string `json:"date"`
			Memo       string `json:"memo"`
		} `json:"transactions"`
	} `json:"data"`
}

// Transactions maps a /budgets/:id/transactions response. Amounts are
// already milliunits on the wire.
func (m ResponseMapper) Transactions(raw []byte) ([]domain.Transaction, error) {
	var payload transactionsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(errors.KindProvider, "decode transactions response", err)
	}

	out := make([]domain.Transaction, 0, len(payload.Data.Transactions))
	for _, t := range payload.Data.Transactions {
		out = append(out, domain.NewTransactionBuilder().
			ID(t.ID).
			AccountID(t.AccountID).
			CategoryID(t.CategoryID).
			PayeeID(t.PayeeID).
			Amount(domain.FromMilliunits(t.Amount)).
			Date(t.Date).
			Description(t.Memo).
			Build())
	}
	return out, nil
}

type accountsPayload struct {
	Data struct {
		Accounts []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Balance int64  `json:"balance"`
		} `json:"accounts"`
	} `json:"data"`
}

// Accounts maps a /budgets/:id/accounts response.
func (m ResponseMapper) Accounts(raw []byte) ([]domain.Account, error) {
	var payload accountsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(errors.KindProvider, "decode accounts response", err)
	}

	out := make([]domain.Account, 0, len(payload.Data.Accounts))
	for _, a := range payload.Data.Accounts {
		out = append(out, domain.NewAccount(a.ID, a.Name, domain.FromMilliunits(a.Balance)))
	}
	return out, nil
}
