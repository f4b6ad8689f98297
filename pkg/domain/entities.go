package domain

// Budget is a top-level budget container.
type Budget struct {
	id   string
	name string
}

// NewBudget creates a Budget.
func NewBudget(id, name string) Budget {
	return Budget{id: id, name: name}
}

func (b Budget) ID() string   { return b.id }
func (b Budget) Name() string { return b.name }

// Category is a spending category, optionally belonging to a group.
type Category struct {
	id      string
	name    string
	groupID string
}

// NewCategory creates a Category without a group.
func NewCategory(id, name string) Category {
	return Category{id: id, name: name}
}

// NewCategoryWithGroup creates a Category belonging to a category group.
func NewCategoryWithGroup(id, name, groupID string) Category {
	return Category{id: id, name: name, groupID: groupID}
}

func (c Category) ID() string   { return c.id }
func (c Category) Name() string { return c.name }

// GroupID returns the owning group id, or "" when ungrouped.
func (c Category) GroupID() string { return c.groupID }

// CategoryGroup bundles related categories.
type CategoryGroup struct {
	id   string
	name string
}

// NewCategoryGroup creates a CategoryGroup.
func NewCategoryGroup(id, name string) CategoryGroup {
	return CategoryGroup{id: id, name: name}
}

func (g CategoryGroup) ID() string   { return g.id }
func (g CategoryGroup) Name() string { return g.name }

// Account is a budget account transactions are booked against.
type Account struct {
	id      string
	name    string
	balance Money
}

// NewAccount creates an Account.
func NewAccount(id, name string, balance Money) Account {
	return Account{id: id, name: name, balance: balance}
}

func (a Account) ID() string     { return a.id }
func (a Account) Name() string   { return a.name }
func (a Account) Balance() Money { return a.balance }

// Payee is the counterparty of a transaction.
type Payee struct {
	id   string
	name string
}

// NewPayee creates a Payee.
func NewPayee(id, name string) Payee {
	return Payee{id: id, name: name}
}

func (p Payee) ID() string   { return p.id }
func (p Payee) Name() string { return p.name }

// DateRange is an inclusive date interval over ISO YYYY-MM-DD strings, which
// order correctly under lexicographic comparison.
type DateRange struct {
	start string
	end   string
}

// NewDateRange creates a DateRange.
func NewDateRange(start, end string) DateRange {
	return DateRange{start: start, end: end}
}

func (r DateRange) Start() string { return r.start }
func (r DateRange) End() string   { return r.end }

// Contains reports whether date falls within the range, inclusive on both
// ends. Empty bounds are open.
func (r DateRange) Contains(date string) bool {
	if r.start != "" && date < r.start {
		return false
	}
	if r.end != "" && date > r.end {
		return false
	}
	return true
}
