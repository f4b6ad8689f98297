package domain

import (
	"sort"
	"strings"
)

// SortBy selects the ordering Apply imposes on matching transactions.
type SortBy int

const (
	// SortNone keeps the input's relative order.
	SortNone SortBy = iota
	SortAmountAscending
	SortAmountDescending
	SortDate
)

// Query is an immutable filter and sort specification. Each With method
// returns a new value; a zero Query matches every transaction in input
// order.
//
// An empty category list means "no category filter", not "match nothing".
// That asymmetry is deliberate: it is the builder's documented default.
type Query struct {
	minAmount  *Money
	maxAmount  *Money
	categories []string
	searchText string
	sortBy     SortBy
}

// NewQuery creates an empty query.
func NewQuery() Query {
	return Query{}
}

// WithMinAmount keeps transactions with amount >= min.
func (q Query) WithMinAmount(min Money) Query {
	q.minAmount = &min
	return q
}

// WithMaxAmount keeps transactions with amount <= max.
func (q Query) WithMaxAmount(max Money) Query {
	q.maxAmount = &max
	return q
}

// WithAmountRange keeps transactions within [min, max], inclusive.
func (q Query) WithAmountRange(min, max Money) Query {
	return q.WithMinAmount(min).WithMaxAmount(max)
}

// WithCategories keeps transactions whose category id is in the allow-list.
func (q Query) WithCategories(categoryIDs []string) Query {
	q.categories = append([]string(nil), categoryIDs...)
	return q
}

// WithCategory keeps transactions belonging to a single category.
func (q Query) WithCategory(categoryID string) Query {
	return q.WithCategories([]string{categoryID})
}

// WithSearchText keeps transactions whose description contains text,
// case-insensitively. An empty string clears the filter.
func (q Query) WithSearchText(text string) Query {
	q.searchText = text
	return q
}

// SortByAmountAscending orders results by signed amount, smallest first.
func (q Query) SortByAmountAscending() Query {
	q.sortBy = SortAmountAscending
	return q
}

// SortByAmountDescending orders results by signed amount, largest first.
func (q Query) SortByAmountDescending() Query {
	q.sortBy = SortAmountDescending
	return q
}

// SortByDate orders results by date ascending. Dated transactions always
// precede undated ones.
func (q Query) SortByDate() Query {
	q.sortBy = SortDate
	return q
}

// Apply evaluates the query against a transaction collection and returns
// references to the matches. The input is never mutated; ties and unsorted
// results keep the input's relative order.
func (q Query) Apply(transactions []Transaction) []*Transaction {
	matched := make([]*Transaction, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		if q.matchesAmount(t) && q.matchesCategory(t) && q.matchesText(t) {
			matched = append(matched, t)
		}
	}

	switch q.sortBy {
	case SortAmountAscending:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Amount().Milliunits() < matched[j].Amount().Milliunits()
		})
	case SortAmountDescending:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Amount().Milliunits() > matched[j].Amount().Milliunits()
		})
	case SortDate:
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i].Date(), matched[j].Date()
			switch {
			case a != "" && b != "":
				return a < b
			case a != "":
				// Dated sorts before undated.
				return true
			default:
				return false
			}
		})
	}

	return matched
}

func (q Query) matchesAmount(t *Transaction) bool {
	amount := t.Amount().Milliunits()
	if q.minAmount != nil && amount < q.minAmount.Milliunits() {
		return false
	}
	if q.maxAmount != nil && amount > q.maxAmount.Milliunits() {
		return false
	}
	return true
}

func (q Query) matchesCategory(t *Transaction) bool {
	if len(q.categories) == 0 {
		return true
	}
	for _, id := range q.categories {
		if t.CategoryID() == id {
			return true
		}
	}
	return false
}

func (q Query) matchesText(t *Transaction) bool {
	if q.searchText == "" {
		return true
	}
	if t.Description() == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.Description()), strings.ToLower(q.searchText))
}
