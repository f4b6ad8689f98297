package domain

import "sort"

// Service holds an in-memory transaction collection and provides the
// aggregation helpers the analysis tools are built on.
type Service struct {
	transactions []Transaction
}

// NewService creates an empty service.
func NewService() *Service {
	return &Service{}
}

// NewServiceWith creates a service seeded with a transaction collection.
func NewServiceWith(transactions []Transaction) *Service {
	s := &Service{}
	s.AddAll(transactions)
	return s
}

// Add appends one transaction.
func (s *Service) Add(t Transaction) {
	s.transactions = append(s.transactions, t)
}

// AddAll appends a batch of transactions, preserving their order.
func (s *Service) AddAll(transactions []Transaction) {
	s.transactions = append(s.transactions, transactions...)
}

// Count returns the number of transactions held.
func (s *Service) Count() int {
	return len(s.transactions)
}

// Query runs a query against the collection.
func (s *Service) Query(q Query) []*Transaction {
	return q.Apply(s.transactions)
}

// CategorySpend returns the total spend in a category as a positive
// magnitude. Expenses are stored negative; the report flips the sign.
func (s *Service) CategorySpend(categoryID string) Money {
	matched := NewQuery().WithCategory(categoryID).Apply(s.transactions)
	var total Money
	for _, t := range matched {
		total = total.Add(t.Amount())
	}
	return total.Abs()
}

// Totals is the income/expense/net split of a collection. Expenses is a
// positive magnitude; Net is Income minus Expenses.
type Totals struct {
	Income   Money
	Expenses Money
	Net      Money
}

// Totals splits the collection on the sign of each amount. Zero amounts are
// neither income nor expense.
func (s *Service) Totals() Totals {
	var income, expenses Money
	for i := range s.transactions {
		amount := s.transactions[i].Amount()
		switch {
		case amount.IsPositive():
			income = income.Add(amount)
		case amount.IsNegative():
			expenses = expenses.Add(amount.Abs())
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses,
		Net:      FromMilliunits(income.Milliunits() - expenses.Milliunits()),
	}
}

// SavingsRate returns net over income as a percentage, or 0 when there is no
// income.
func (s *Service) SavingsRate() float64 {
	totals := s.Totals()
	if totals.Income.Milliunits() == 0 {
		return 0
	}
	return totals.Net.Units() / totals.Income.Units() * 100
}

// MonthSpend is the expense magnitude booked in one calendar month.
type MonthSpend struct {
	Month string
	Spend Money
}

// MonthlySpend buckets the query's expense matches by the YYYY-MM prefix of
// their dates and returns the buckets in month order. Undated transactions
// have no month and are skipped.
func (s *Service) MonthlySpend(q Query) []MonthSpend {
	buckets := make(map[string]Money)
	for _, t := range q.Apply(s.transactions) {
		month := t.Month()
		if month == "" || !t.Amount().IsNegative() {
			continue
		}
		buckets[month] = buckets[month].Add(t.Amount().Abs())
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthSpend, 0, len(months))
	for _, month := range months {
		out = append(out, MonthSpend{Month: month, Spend: buckets[month]})
	}
	return out
}

// CategoryHealth is one category's standing in a health check.
type CategoryHealth struct {
	CategoryID string
	Spend      Money
	Overspent  bool
}

// HealthReport combines the savings rate with per-category over-spending
// flags.
type HealthReport struct {
	SavingsRate float64
	Totals      Totals
	Categories  []CategoryHealth
}

// HealthCheck flags a category as overspent when its spend exceeds twice the
// mean spend across all categories with expenses. Categories are reported in
// id order.
func (s *Service) HealthCheck() HealthReport {
	spendByCategory := make(map[string]Money)
	for i := range s.transactions {
		t := &s.transactions[i]
		if !t.Amount().IsNegative() {
			continue
		}
		spendByCategory[t.CategoryID()] = spendByCategory[t.CategoryID()].Add(t.Amount().Abs())
	}

	report := HealthReport{
		SavingsRate: s.SavingsRate(),
		Totals:      s.Totals(),
	}
	if len(spendByCategory) == 0 {
		return report
	}

	var total int64
	for _, spend := range spendByCategory {
		total += spend.Milliunits()
	}
	mean := total / int64(len(spendByCategory))

	categoryIDs := make([]string, 0, len(spendByCategory))
	for id := range spendByCategory {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Strings(categoryIDs)

	for _, id := range categoryIDs {
		spend := spendByCategory[id]
		report.Categories = append(report.Categories, CategoryHealth{
			CategoryID: id,
			Spend:      spend,
			Overspent:  spend.Milliunits() > 2*mean,
		})
	}
	return report
}
